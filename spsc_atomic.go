// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fifo

import "code.hybscloud.com/atomix"

// SPSCAtomic is a single-producer single-consumer queue with atomic cursors.
//
// Each cursor is written by exactly one side and read by the other. The
// producer publishes a slot with a release store of the push cursor; the
// consumer frees it with a release store of the pop cursor. The cursors
// share a cache line, so every push and pop invalidates the other side.
//
// Memory: n optional slots
type SPSCAtomic[T any] struct {
	push atomix.Uint64 // Producer writes here
	pop  atomix.Uint64 // Consumer writes here
	ring ring[optSlot[T]]
}

// NewSPSCAtomic creates an unpadded atomic SPSC queue.
// Any capacity >= 1 is accepted.
func NewSPSCAtomic[T any](capacity int) (*SPSCAtomic[T], error) {
	r, err := makeRing[optSlot[T]](capacity)
	if err != nil {
		return nil, err
	}
	return &SPSCAtomic[T]{ring: r}, nil
}

// TryPush adds an element to the queue (producer only).
// Returns ErrFull if the queue is full.
func (q *SPSCAtomic[T]) TryPush(elem *T) error {
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
func (q *SPSCAtomic[T]) TryPop() (T, error) {
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

// Len returns the number of unread elements.
//
// Under concurrent use the result is a snapshot that may already be stale,
// clamped to [0, Cap()].
func (q *SPSCAtomic[T]) Len() int {
	pop := q.pop.LoadAcquire()
	push := q.push.LoadRelaxed()
	if push < pop {
		return 0
	}
	return int(min(push-pop, q.ring.n))
}

// Cap returns the queue capacity.
func (q *SPSCAtomic[T]) Cap() int {
	return int(q.ring.n)
}
