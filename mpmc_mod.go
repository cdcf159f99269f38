// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fifo

import (
	"code.hybscloud.com/atomix"
	"golang.org/x/sys/cpu"
)

// MPMCMod is the Vyukov MPMC queue with modulo indexing.
//
// The protocol is identical to MPMC. Any capacity >= 2 is accepted at the
// cost of an integer division on every slot lookup.
//
// Memory: n slots, one cache line each
type MPMCMod[T any] struct {
	_        cpu.CacheLinePad
	tail     atomix.Uint64
	_        cpu.CacheLinePad
	head     atomix.Uint64
	_        cpu.CacheLinePad
	buffer   []seqSlot[T]
	capacity uint64
}

// NewMPMCMod creates a modulo-indexed Vyukov MPMC queue.
func NewMPMCMod[T any](capacity int) (*MPMCMod[T], error) {
	if err := checkSeq(capacity); err != nil {
		return nil, err
	}
	n := uint64(capacity)
	return &MPMCMod[T]{
		buffer:   makeSeqSlots[T](n),
		capacity: n,
	}, nil
}

// TryPush adds an element to the queue.
// Returns ErrFull if the queue is full.
func (q *MPMCMod[T]) TryPush(elem *T) error {
	pos := q.tail.LoadRelaxed()
	for {
		slot := &q.buffer[pos%q.capacity]
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

// TryPop removes and returns the oldest element.
// Returns (zero-value, ErrEmpty) if the queue is empty.
func (q *MPMCMod[T]) TryPop() (T, error) {
	pos := q.head.LoadRelaxed()
	for {
		slot := &q.buffer[pos%q.capacity]
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
func (q *MPMCMod[T]) Cap() int {
	return int(q.capacity)
}
