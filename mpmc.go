// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fifo

import (
	"code.hybscloud.com/atomix"
	"golang.org/x/sys/cpu"
)

// MPMC is a multi-producer multi-consumer bounded queue (Vyukov).
//
// Every slot carries a sequence number that encodes its generation and
// readiness: a free slot for position p holds p, a published one holds
// p+1, and a consumed one holds p+capacity, which is the next push
// position that lands on it. Producers and consumers synchronize only on
// the slot they touch, so contention is spread across the ring instead of
// concentrated on one shared state word.
//
// Positions are claimed with CAS on the enqueue/dequeue cursors. Payload
// visibility is carried entirely by the release store and acquire load of
// the slot's sequence number, so the cursors themselves are accessed with
// relaxed ordering.
//
// Capacity must be a power of 2; indices are computed with a bitmask.
//
// Memory: n slots, one cache line each
type MPMC[T any] struct {
	_        cpu.CacheLinePad
	tail     atomix.Uint64 // Enqueue position
	_        cpu.CacheLinePad
	head     atomix.Uint64 // Dequeue position
	_        cpu.CacheLinePad
	buffer   []seqSlot[T]
	mask     uint64
	capacity uint64
}

type seqSlot[T any] struct {
	seq  atomix.Uint64
	data T
	_    padSeq
}

// makeSeqSlots allocates n slots with sequence numbers set to their index.
func makeSeqSlots[T any](n uint64) []seqSlot[T] {
	buf := make([]seqSlot[T], n)
	for i := uint64(0); i < n; i++ {
		buf[i].seq.StoreRelaxed(i)
	}
	return buf
}

// NewMPMC creates a Vyukov MPMC queue.
// Returns ErrNotPowerOfTwo unless capacity is a power of 2 >= 2.
func NewMPMC[T any](capacity int) (*MPMC[T], error) {
	if err := checkPow2(capacity); err != nil {
		return nil, err
	}
	n := uint64(capacity)
	return &MPMC[T]{
		buffer:   makeSeqSlots[T](n),
		mask:     n - 1,
		capacity: n,
	}, nil
}

// TryPush adds an element to the queue.
// Returns ErrFull if the slot for the current position has not been
// consumed in its previous generation.
func (q *MPMC[T]) TryPush(elem *T) error {
	pos := q.tail.LoadRelaxed()
	for {
		slot := &q.buffer[pos&q.mask]
		seq := slot.seq.LoadAcquire()
		diff := int64(seq - pos)
		if diff == 0 {
			if q.tail.CompareAndSwapRelaxed(pos, pos+1) {
				slot.data = *elem
				slot.seq.StoreRelease(pos + 1)
				return nil
			}
		} else if diff < 0 {
			return ErrFull
		}
		// Another producer moved the cursor; retry at its position.
		pos = q.tail.LoadRelaxed()
	}
}

// TryPop removes and returns the oldest element.
// Returns (zero-value, ErrEmpty) if the slot for the current position has
// not been published.
func (q *MPMC[T]) TryPop() (T, error) {
	pos := q.head.LoadRelaxed()
	for {
		slot := &q.buffer[pos&q.mask]
		seq := slot.seq.LoadAcquire()
		diff := int64(seq - (pos + 1))
		if diff == 0 {
			if q.head.CompareAndSwapRelaxed(pos, pos+1) {
				elem := slot.data
				var zero T
				slot.data = zero
				slot.seq.StoreRelease(pos + q.capacity)
				return elem, nil
			}
		} else if diff < 0 {
			var zero T
			return zero, ErrEmpty
		}
		pos = q.head.LoadRelaxed()
	}
}

// Cap returns the queue capacity.
func (q *MPMC[T]) Cap() int {
	return int(q.capacity)
}
