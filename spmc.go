// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fifo

import (
	"code.hybscloud.com/atomix"
	"golang.org/x/sys/cpu"
)

// SPMC is a single-producer multi-consumer bounded queue.
//
// The single producer writes sequentially and publishes through the
// slot's sequence number. Consumers claim positions with the Vyukov CAS
// protocol.
//
// Capacity must be a power of 2.
//
// Memory: n slots, one cache line each
type SPMC[T any] struct {
	_        cpu.CacheLinePad
	head     atomix.Uint64 // Consumers CAS here
	_        cpu.CacheLinePad
	tail     atomix.Uint64 // Producer writes here
	_        cpu.CacheLinePad
	buffer   []seqSlot[T]
	mask     uint64
	capacity uint64
}

// NewSPMC creates a sequence-based SPMC queue.
// Returns ErrNotPowerOfTwo unless capacity is a power of 2 >= 2.
func NewSPMC[T any](capacity int) (*SPMC[T], error) {
	if err := checkPow2(capacity); err != nil {
		return nil, err
	}
	n := uint64(capacity)
	return &SPMC[T]{
		buffer:   makeSeqSlots[T](n),
		mask:     n - 1,
		capacity: n,
	}, nil
}

// TryPush adds an element to the queue (single producer only).
// Returns ErrFull if the queue is full.
func (q *SPMC[T]) TryPush(elem *T) error {
	pos := q.tail.LoadRelaxed()
	slot := &q.buffer[pos&q.mask]
	if slot.seq.LoadAcquire() != pos {
		return ErrFull
	}

	slot.data = *elem
	slot.seq.StoreRelease(pos + 1)
	q.tail.StoreRelease(pos + 1)
	return nil
}

// TryPop removes and returns an element (multiple consumers safe).
// Returns (zero-value, ErrEmpty) if the queue is empty.
func (q *SPMC[T]) TryPop() (T, error) {
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
func (q *SPMC[T]) Cap() int {
	return int(q.capacity)
}
