// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fifo

import "sync"

// Locked is a mutex-guarded bounded queue.
//
// One lock covers both cursors and the slot storage. It is safe for any
// number of producers and consumers and serves as the performance
// baseline the lock-free variants are measured against.
//
// Memory: n optional slots
type Locked[T any] struct {
	mu   sync.Mutex
	push uint64 // next position to write
	pop  uint64 // next position to read
	ring ring[optSlot[T]]
}

// NewLocked creates a mutex-guarded queue. Any capacity >= 1 is accepted.
func NewLocked[T any](capacity int) (*Locked[T], error) {
	r, err := makeRing[optSlot[T]](capacity)
	if err != nil {
		return nil, err
	}
	return &Locked[T]{ring: r}, nil
}

// TryPush adds an element to the queue.
// Returns ErrFull if the queue holds Cap() elements.
func (q *Locked[T]) TryPush(elem *T) error {
	q.mu.Lock()
	if q.push-q.pop == q.ring.n {
		q.mu.Unlock()
		return ErrFull
	}
	putOpt(&q.ring, q.push, *elem)
	q.push++
	q.mu.Unlock()
	return nil
}

// TryPop removes and returns the oldest element.
// Returns (zero-value, ErrEmpty) if the queue is empty.
func (q *Locked[T]) TryPop() (T, error) {
	q.mu.Lock()
	if q.push == q.pop {
		q.mu.Unlock()
		var zero T
		return zero, ErrEmpty
	}
	elem, ok := takeOpt(&q.ring, q.pop)
	q.pop++
	q.mu.Unlock()
	if !ok {
		return elem, ErrEmpty
	}
	return elem, nil
}

// Len returns the number of unread elements.
func (q *Locked[T]) Len() int {
	q.mu.Lock()
	n := q.push - q.pop
	q.mu.Unlock()
	return int(n)
}

// Cap returns the queue capacity.
func (q *Locked[T]) Cap() int {
	return int(q.ring.n)
}
