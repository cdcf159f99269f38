// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fifo

import "golang.org/x/sys/cpu"

// SPSCShadow is a padded SPSC queue with shadow cursors and optional slots.
//
// Each side keeps a private copy of the other side's cursor and only
// reloads the shared one when the ring looks full (producer) or empty
// (consumer). Slots carry a presence flag alongside the payload.
//
// Memory: n optional slots + 3 cache lines
type SPSCShadow[T any] struct {
	_    cpu.CacheLinePad
	prod producerCursor
	_    cpu.CacheLinePad
	cons consumerCursor
	_    cpu.CacheLinePad
	ring ring[optSlot[T]]
}

// NewSPSCShadow creates a shadow-cursor SPSC queue with optional slots.
// Any capacity >= 1 is accepted.
func NewSPSCShadow[T any](capacity int) (*SPSCShadow[T], error) {
	r, err := makeRing[optSlot[T]](capacity)
	if err != nil {
		return nil, err
	}
	return &SPSCShadow[T]{ring: r}, nil
}

// TryPush adds an element to the queue (producer only).
// Returns ErrFull if the queue is full.
func (q *SPSCShadow[T]) TryPush(elem *T) error {
	push, ok := q.prod.reserve(&q.cons, q.ring.n)
	if !ok {
		return ErrFull
	}
	putOpt(&q.ring, push, *elem)
	q.prod.publish(push)
	return nil
}

// TryPop removes and returns an element (consumer only).
// Returns (zero-value, ErrEmpty) if the queue is empty.
func (q *SPSCShadow[T]) TryPop() (T, error) {
	pop, ok := q.cons.claim(&q.prod)
	if !ok {
		var zero T
		return zero, ErrEmpty
	}
	elem, ok := takeOpt(&q.ring, pop)
	q.cons.release(pop)
	if !ok {
		return elem, ErrEmpty
	}
	return elem, nil
}

// Cap returns the queue capacity.
func (q *SPSCShadow[T]) Cap() int {
	return int(q.ring.n)
}
