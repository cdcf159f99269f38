// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fifo

import (
	"code.hybscloud.com/atomix"
	"golang.org/x/sys/cpu"
)

// SPSCPadded is SPSCAtomic with each cursor on its own cache line.
//
// Padding removes false sharing between the producer-owned push cursor
// and the consumer-owned pop cursor. Both sides still load the other
// side's cursor on every operation.
//
// Memory: n optional slots + 3 cache lines
type SPSCPadded[T any] struct {
	_    cpu.CacheLinePad
	push atomix.Uint64 // Producer writes here
	_    cpu.CacheLinePad
	pop  atomix.Uint64 // Consumer writes here
	_    cpu.CacheLinePad
	ring ring[optSlot[T]]
}

// NewSPSCPadded creates a cache-line padded SPSC queue.
// Any capacity >= 1 is accepted.
func NewSPSCPadded[T any](capacity int) (*SPSCPadded[T], error) {
	r, err := makeRing[optSlot[T]](capacity)
	if err != nil {
		return nil, err
	}
	return &SPSCPadded[T]{ring: r}, nil
}

// TryPush adds an element to the queue (producer only).
// Returns ErrFull if the queue is full.
func (q *SPSCPadded[T]) TryPush(elem *T) error {
	push := q.push.LoadRelaxed()
	pop := q.pop.LoadAcquire()
	if push-pop >= q.ring.n {
		return ErrFull
	}
	putOpt(&q.ring, push, *elem)
	q.push.StoreRelease(push + 1)
	return nil
}

// TryPop removes and returns an element (consumer only).
// Returns (zero-value, ErrEmpty) if the queue is empty.
func (q *SPSCPadded[T]) TryPop() (T, error) {
	push := q.push.LoadAcquire()
	pop := q.pop.LoadRelaxed()
	if push == pop {
		var zero T
		return zero, ErrEmpty
	}
	elem, ok := takeOpt(&q.ring, pop)
	q.pop.StoreRelease(pop + 1)
	if !ok {
		return elem, ErrEmpty
	}
	return elem, nil
}

// Cap returns the queue capacity.
func (q *SPSCPadded[T]) Cap() int {
	return int(q.ring.n)
}
