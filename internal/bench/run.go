// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bench

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
	"github.com/valyala/fastrand"
)

// seqBits is the width of the per-producer sequence in a pushed value.
// The producer index occupies the bits above it.
const seqBits = 40

// Config describes one benchmark run.
type Config struct {
	// Iterations is the total number of values pushed across producers.
	Iterations int
	Producers  int
	Consumers  int

	// Pin locks each worker to an OS thread bound to one CPU (Linux only).
	Pin bool

	// Jitter makes producers yield on a random 1/64 of their pushes,
	// shaking up interleavings.
	Jitter bool
}

// Result is the outcome of one run.
type Result struct {
	Target    string
	Producers int
	Consumers int
	Ops       int
	Elapsed   time.Duration
}

// OpsPerSec returns completed push/pop pairs per second.
func (r Result) OpsPerSec() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Ops) / r.Elapsed.Seconds()
}

// NsPerOp returns elapsed nanoseconds per push/pop pair.
func (r Result) NsPerOp() float64 {
	if r.Ops == 0 {
		return 0
	}
	return float64(r.Elapsed.Nanoseconds()) / float64(r.Ops)
}

// ErrLost reports values that were pushed but never popped, or popped twice.
var ErrLost = errors.New("bench: conservation violated")

// ErrOrder reports a producer's values popped out of order.
var ErrOrder = errors.New("bench: fifo order violated")

// Run pushes cfg.Iterations values through t and waits until all of them
// are popped. Producer p pushes p<<40 | i for i in its share, so values
// are disjoint across producers.
//
// Run returns ctx.Err() if ctx is done before the run completes.
func Run(ctx context.Context, t Target, cfg Config) (Result, error) {
	if cfg.Producers < 1 || cfg.Consumers < 1 || cfg.Iterations < 1 {
		return Result{}, fmt.Errorf("bench: invalid config %+v", cfg)
	}
	if share := int64(cfg.Iterations / cfg.Producers); share >= int64(1)<<seqBits {
		return Result{}, fmt.Errorf("bench: %d iterations per producer exceeds %d", share, int64(1)<<seqBits)
	}

	total := int64(cfg.Iterations)
	var (
		pushedSum atomix.Uint64
		poppedSum atomix.Uint64
		popped    atomix.Int64
		stop      atomix.Bool
		orderErr  atomix.Bool
		pinErr    error
		pinOnce   sync.Once
	)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		<-ctx.Done()
		stop.Store(true)
	}()

	var ready, done sync.WaitGroup
	start := make(chan struct{})
	worker := func(cpuID int, body func()) {
		ready.Add(1)
		done.Add(1)
		go func() {
			defer done.Done()
			if cfg.Pin {
				runtime.LockOSThread()
				defer runtime.UnlockOSThread()
				if err := pinCPU(cpuID % runtime.NumCPU()); err != nil {
					pinOnce.Do(func() { pinErr = err })
				}
			}
			ready.Done()
			<-start
			body()
		}()
	}

	for p := range cfg.Producers {
		lo := cfg.Iterations * p / cfg.Producers
		hi := cfg.Iterations * (p + 1) / cfg.Producers
		worker(p, func() {
			var sum uint64
			sw := spin.Wait{}
			for i := range hi - lo {
				v := uint64(p)<<seqBits | uint64(i)
				for !t.Push(p, v) {
					if stop.Load() {
						return
					}
					sw.Once()
				}
				sw.Reset()
				sum += v
				if cfg.Jitter && fastrand.Uint32n(64) == 0 {
					runtime.Gosched()
				}
			}
			pushedSum.Add(sum)
		})
	}

	ordered := cfg.Consumers == 1
	for c := range cfg.Consumers {
		worker(cfg.Producers+c, func() {
			var last []int64
			if ordered {
				last = make([]int64, cfg.Producers)
				for i := range last {
					last[i] = -1
				}
			}
			var sum uint64
			sw := spin.Wait{}
			for popped.Load() < total {
				v, ok := t.Pop()
				if !ok {
					if stop.Load() {
						break
					}
					sw.Once()
					continue
				}
				sw.Reset()
				sum += v
				popped.Add(1)
				if ordered {
					p, seq := int(v>>seqBits), int64(v&(1<<seqBits-1))
					if p >= len(last) || seq <= last[p] {
						orderErr.Store(true)
					} else {
						last[p] = seq
					}
				}
			}
			poppedSum.Add(sum)
		})
	}

	ready.Wait()
	began := time.Now()
	close(start)
	done.Wait()
	elapsed := time.Since(began)

	res := Result{
		Target:    t.Name(),
		Producers: cfg.Producers,
		Consumers: cfg.Consumers,
		Ops:       int(popped.Load()),
		Elapsed:   elapsed,
	}
	if stop.Load() && popped.Load() < total {
		return res, ctx.Err()
	}
	if pinErr != nil {
		return res, fmt.Errorf("bench: pin: %w", pinErr)
	}
	if n := popped.Load(); n != total || pushedSum.Load() != poppedSum.Load() {
		return res, fmt.Errorf("%w: %s popped %d of %d", ErrLost, t.Name(), n, total)
	}
	if orderErr.Load() {
		return res, fmt.Errorf("%w: %s", ErrOrder, t.Name())
	}
	return res, nil
}
