// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fifo

import "golang.org/x/sys/cpu"

// SPSC is a single-producer single-consumer bounded queue.
//
// Based on Lamport's ring buffer with shadow cursors. The producer caches
// the consumer's position, and vice versa, reducing cross-core cache line
// traffic. Slots hold the payload directly: a slot between consumption and
// the next production is logically uninitialized and is simply overwritten.
//
// Memory: O(capacity) with no per-slot overhead
type SPSC[T any] struct {
	_    cpu.CacheLinePad
	prod producerCursor
	_    cpu.CacheLinePad
	cons consumerCursor
	_    cpu.CacheLinePad
	ring ring[T]
}

// NewSPSC creates a new SPSC queue. Any capacity >= 1 is accepted;
// power-of-2 capacities index with a mask instead of a modulo.
func NewSPSC[T any](capacity int) (*SPSC[T], error) {
	r, err := makeRing[T](capacity)
	if err != nil {
		return nil, err
	}
	return &SPSC[T]{ring: r}, nil
}

// TryPush adds an element to the queue (producer only).
// Returns ErrFull if the queue is full.
func (q *SPSC[T]) TryPush(elem *T) error {
	push, ok := q.prod.reserve(&q.cons, q.ring.n)
	if !ok {
		return ErrFull
	}
	q.ring.write(push, *elem)
	q.prod.publish(push)
	return nil
}

// TryPop removes and returns an element (consumer only).
// Returns (zero-value, ErrEmpty) if the queue is empty.
func (q *SPSC[T]) TryPop() (T, error) {
	pop, ok := q.cons.claim(&q.prod)
	if !ok {
		var zero T
		return zero, ErrEmpty
	}
	// Zeroing drops references held by the slot; it is not a presence flag.
	elem := q.ring.take(pop)
	q.cons.release(pop)
	return elem, nil
}

// Cap returns the queue capacity.
func (q *SPSC[T]) Cap() int {
	return int(q.ring.n)
}
