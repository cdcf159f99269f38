// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package fifo provides bounded, fixed-capacity, non-blocking FIFO queues.
//
// The package is a progression of ring-buffer queues sharing one contract,
// each refining the concurrency strategy of the previous one:
//
//	Locked      - one mutex over cursors and storage (baseline)
//	SPSCAtomic  - atomic cursors with acquire/release hand-off
//	SPSCPadded  - cursors on separate cache lines
//	SPSCShadow  - private shadow copies of the other side's cursor
//	SPSC        - shadow cursors and raw payload slots
//	MPSC, SPMC  - per-slot sequence numbers on the shared side
//	MPMCMod     - Vyukov MPMC, modulo indexing
//	MPMC        - Vyukov MPMC, bitmask indexing
//
// # Quick Start
//
// Direct constructors:
//
//	q, err := fifo.NewSPSC[Event](1000)
//	q, err := fifo.NewMPMC[*Request](4096)
//
// Builder API auto-selects the algorithm from constraints:
//
//	q, err := fifo.Build[Event](fifo.New(1024).SingleProducer().SingleConsumer()) // → SPSC
//	q, err := fifo.Build[Event](fifo.New(1024).SingleConsumer())                  // → MPSC
//	q, err := fifo.Build[Event](fifo.New(1024).SingleProducer())                  // → SPMC
//	q, err := fifo.Build[Event](fifo.New(1024))                                   // → MPMC
//	q, err := fifo.Build[Event](fifo.New(1000))                                   // → MPMCMod
//
// # Basic Usage
//
//	q := fifo.Must(fifo.NewMPMC[int](1024))
//
//	value := 42
//	if err := q.TryPush(&value); fifo.IsFull(err) {
//	    // Queue is full - handle backpressure
//	}
//
//	elem, err := q.TryPop()
//	if fifo.IsEmpty(err) {
//	    // Queue is empty - try again later
//	}
//
// # Vyukov MPMC
//
// Each slot of MPMC carries a sequence number. A slot is free for the push
// at absolute position p when its sequence equals p, holds data for the pop
// at p when it equals p+1, and after that pop becomes p+Cap(), the next
// push position that maps to it. TryPush and TryPop classify
// diff = seq - expected:
//
//	diff == 0  claim the position with CAS, then write/read the slot
//	diff <  0  the ring is full (push) or empty (pop)
//	diff >  0  another goroutine advanced the cursor; reload and retry
//
// Only one CAS succeeds per position, so a payload has exactly one owner
// at any time. The release store of the sequence number publishes the
// payload; the acquire load on the other side observes it.
//
// # Capacity
//
// Capacity is fixed at construction and never rounded silently:
//
//	Locked, SPSC*       any capacity >= 1 (mask if power of 2, else modulo)
//	MPMCMod             any capacity >= 2
//	MPMC, MPSC, SPMC    power of 2 >= 2
//
// Invalid capacities return ErrInvalidCapacity or ErrNotPowerOfTwo.
// Builder.RoundUp rounds up to the next power of 2 before construction.
//
// # Error Handling
//
// TryPush returns [ErrFull] and TryPop returns [ErrEmpty]. Both wrap
// [ErrWouldBlock], sourced from [code.hybscloud.com/iox]:
//
//	backoff := iox.Backoff{}
//	for {
//	    err := q.TryPush(&item)
//	    if err == nil {
//	        break
//	    }
//	    if !fifo.IsWouldBlock(err) {
//	        return err
//	    }
//	    backoff.Wait()
//	}
//
// PushWait and PopWait implement that loop with context cancellation.
// Internal CAS races are retried immediately and never surface.
//
// # Thread Safety
//
//   - SPSCAtomic, SPSCPadded, SPSCShadow, SPSC: one producer, one consumer
//   - MPSC: multiple producers, one consumer
//   - SPMC: one producer, multiple consumers
//   - Locked, MPMCMod, MPMC: multiple producers and consumers
//
// Violating these constraints causes undefined behavior including data
// corruption.
//
// # Race Detection
//
// Go's race detector cannot observe happens-before edges established by
// acquire/release orderings on a separate variable. Tests that drive
// generic queues concurrently are skipped when [RaceEnabled] is true.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/iox] for semantic errors,
// [code.hybscloud.com/atomix] for atomic primitives with explicit memory
// ordering, and [golang.org/x/sys/cpu] for cache line padding.
package fifo
