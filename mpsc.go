// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fifo

import (
	"code.hybscloud.com/atomix"
	"golang.org/x/sys/cpu"
)

// MPSC is a multi-producer single-consumer bounded queue.
//
// Producers claim positions with the Vyukov CAS protocol. The single
// consumer owns the dequeue position outright: it checks the slot's
// sequence number and advances with a plain store, no CAS.
//
// Capacity must be a power of 2.
//
// Memory: n slots, one cache line each
type MPSC[T any] struct {
	_        cpu.CacheLinePad
	head     atomix.Uint64 // Consumer reads from here
	_        cpu.CacheLinePad
	tail     atomix.Uint64 // Producers CAS here
	_        cpu.CacheLinePad
	buffer   []seqSlot[T]
	mask     uint64
	capacity uint64
}

// NewMPSC creates a sequence-based MPSC queue.
// Returns ErrNotPowerOfTwo unless capacity is a power of 2 >= 2.
func NewMPSC[T any](capacity int) (*MPSC[T], error) {
	if err := checkPow2(capacity); err != nil {
		return nil, err
	}
	n := uint64(capacity)
	return &MPSC[T]{
		buffer:   makeSeqSlots[T](n),
		mask:     n - 1,
		capacity: n,
	}, nil
}

// TryPush adds an element to the queue (multiple producers safe).
// Returns ErrFull if the queue is full.
func (q *MPSC[T]) TryPush(elem *T) error {
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
		pos = q.tail.LoadRelaxed()
	}
}

// TryPop removes and returns an element (single consumer only).
// Returns (zero-value, ErrEmpty) if the queue is empty.
func (q *MPSC[T]) TryPop() (T, error) {
	pos := q.head.LoadRelaxed()
	slot := &q.buffer[pos&q.mask]
	if slot.seq.LoadAcquire() != pos+1 {
		var zero T
		return zero, ErrEmpty
	}

	elem := slot.data
	var zero T
	slot.data = zero
	slot.seq.StoreRelease(pos + q.capacity)
	q.head.StoreRelease(pos + 1)
	return elem, nil
}

// Cap returns the queue capacity.
func (q *MPSC[T]) Cap() int {
	return int(q.capacity)
}
