// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bench

import (
	"errors"
	"fmt"
	"sync"

	"code.hybscloud.com/fifo"
	"github.com/eapache/queue"
	ring "github.com/randomizedcoder/go-lock-free-ring"
	"golang.org/x/sys/cpu"
)

// Target is a queue under benchmark.
//
// Push is called by producer goroutines with their index in
// [0, producers); Pop by consumer goroutines. Neither blocks.
type Target interface {
	Name() string
	Push(producer int, v uint64) bool
	Pop() (uint64, bool)
}

// ErrUnsupportedShape reports a target that cannot serve the requested
// number of producers or consumers.
var ErrUnsupportedShape = errors.New("bench: unsupported producer/consumer shape")

// Third-party baseline names.
const (
	Channel = "channel"
	Eapache = "eapache"
	LFRing  = "lfring"
)

// Names returns every target name NewTarget accepts, fifo variants first.
func Names() []string {
	var names []string
	for _, v := range fifo.Variants() {
		names = append(names, v.String())
	}
	return append(names, Channel, Eapache, LFRing)
}

// NewTarget builds the named target for the given shape.
//
// Fifo variants are accepted by name or by their fifo1..fifo6a aliases.
// Returns ErrUnsupportedShape when the target cannot serve the shape.
func NewTarget(name string, capacity, producers, consumers int) (Target, error) {
	if producers < 1 || consumers < 1 {
		return nil, fmt.Errorf("%w: %d producers, %d consumers", ErrUnsupportedShape, producers, consumers)
	}
	switch name {
	case Channel:
		if capacity < 1 {
			return nil, fmt.Errorf("%w: %d", fifo.ErrInvalidCapacity, capacity)
		}
		return &channelTarget{ch: make(chan uint64, capacity)}, nil
	case Eapache:
		if capacity < 1 {
			return nil, fmt.Errorf("%w: %d", fifo.ErrInvalidCapacity, capacity)
		}
		return &eapacheTarget{q: queue.New(), capacity: capacity}, nil
	case LFRing:
		if consumers != 1 {
			return nil, fmt.Errorf("%w: %s reads from one consumer", ErrUnsupportedShape, name)
		}
		shards := uint64(1)
		for shards < uint64(producers) {
			shards <<= 1
		}
		r, err := ring.NewShardedRing(uint64(capacity), shards)
		if err != nil {
			return nil, fmt.Errorf("bench: %s: %w", name, err)
		}
		return &lfringTarget{r: r}, nil
	}

	v, err := fifo.ParseVariant(name)
	if err != nil || v == fifo.VariantAuto {
		return nil, fmt.Errorf("bench: unknown target %q", name)
	}
	if (v.SingleProducer() && producers > 1) || (v.SingleConsumer() && consumers > 1) {
		return nil, fmt.Errorf("%w: %s with %d producers, %d consumers", ErrUnsupportedShape, v, producers, consumers)
	}
	q, err := fifo.Build[uint64](fifo.New(capacity).Variant(v))
	if err != nil {
		return nil, err
	}
	return &queueTarget{name: v.String(), q: q, scratch: make([]scratch, producers)}, nil
}

// scratch is a per-producer staging cell so TryPush(&v) does not allocate.
type scratch struct {
	v uint64
	_ cpu.CacheLinePad
}

type queueTarget struct {
	name    string
	q       fifo.Queue[uint64]
	scratch []scratch
}

func (t *queueTarget) Name() string { return t.name }

func (t *queueTarget) Push(producer int, v uint64) bool {
	s := &t.scratch[producer]
	s.v = v
	return t.q.TryPush(&s.v) == nil
}

func (t *queueTarget) Pop() (uint64, bool) {
	v, err := t.q.TryPop()
	return v, err == nil
}

type channelTarget struct {
	ch chan uint64
}

func (t *channelTarget) Name() string { return Channel }

func (t *channelTarget) Push(_ int, v uint64) bool {
	select {
	case t.ch <- v:
		return true
	default:
		return false
	}
}

func (t *channelTarget) Pop() (uint64, bool) {
	select {
	case v := <-t.ch:
		return v, true
	default:
		return 0, false
	}
}

// eapacheTarget bounds an unsynchronized growable deque with a mutex.
type eapacheTarget struct {
	mu       sync.Mutex
	q        *queue.Queue
	capacity int
}

func (t *eapacheTarget) Name() string { return Eapache }

func (t *eapacheTarget) Push(_ int, v uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.q.Length() >= t.capacity {
		return false
	}
	t.q.Add(v)
	return true
}

func (t *eapacheTarget) Pop() (uint64, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.q.Length() == 0 {
		return 0, false
	}
	return t.q.Remove().(uint64), true
}

type lfringTarget struct {
	r *ring.ShardedRing
}

func (t *lfringTarget) Name() string { return LFRing }

func (t *lfringTarget) Push(producer int, v uint64) bool {
	return t.r.Write(uint64(producer), v)
}

func (t *lfringTarget) Pop() (uint64, bool) {
	v, ok := t.r.TryRead()
	if !ok {
		return 0, false
	}
	return v.(uint64), true
}
