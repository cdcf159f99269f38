// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fifo

// Seqs returns a snapshot of every slot's sequence number.
func (q *MPMC[T]) Seqs() []uint64 { return seqs(q.buffer) }

// Seqs returns a snapshot of every slot's sequence number.
func (q *MPMCMod[T]) Seqs() []uint64 { return seqs(q.buffer) }

// Seqs returns a snapshot of every slot's sequence number.
func (q *MPSC[T]) Seqs() []uint64 { return seqs(q.buffer) }

// Seqs returns a snapshot of every slot's sequence number.
func (q *SPMC[T]) Seqs() []uint64 { return seqs(q.buffer) }

func seqs[T any](buf []seqSlot[T]) []uint64 {
	out := make([]uint64, len(buf))
	for i := range buf {
		out[i] = buf[i].seq.Load()
	}
	return out
}

// VacateHead empties the slot at the pop position without moving cursors.
func (q *Locked[T]) VacateHead() { vacate(&q.ring, q.pop) }

// VacateHead empties the slot at the pop position without moving cursors.
func (q *SPSCAtomic[T]) VacateHead() { vacate(&q.ring, q.pop.Load()) }

// VacateHead empties the slot at the pop position without moving cursors.
func (q *SPSCPadded[T]) VacateHead() { vacate(&q.ring, q.pop.Load()) }

// VacateHead empties the slot at the pop position without moving cursors.
func (q *SPSCShadow[T]) VacateHead() { vacate(&q.ring, q.cons.pos.Load()) }

func vacate[T any](r *ring[optSlot[T]], pos uint64) {
	*r.slot(pos) = optSlot[T]{}
}

// RingIndex maps pos to a slot index in a ring of the given capacity.
func RingIndex(capacity int, pos uint64) uint64 {
	r, err := makeRing[int](capacity)
	if err != nil {
		panic(err)
	}
	return r.index(pos)
}

// RoundToPow2 exposes roundToPow2.
var RoundToPow2 = roundToPow2
