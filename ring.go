// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fifo

import "fmt"

// cacheLineSize is the padding unit for per-slot layouts.
// Cursor padding uses cpu.CacheLinePad, which tracks the target architecture.
const cacheLineSize = 64

// padSeq fills the cache line after an 8-byte sequence number.
type padSeq [cacheLineSize - 8]byte

// ring is fixed-capacity slot storage addressed by absolute position.
//
// Positions grow monotonically; slot(pos) maps one to an index in
// [0, capacity) with a bitwise AND when capacity is a power of 2 and a
// modulo otherwise. The backing array is allocated once and never resized.
type ring[T any] struct {
	slots []T
	n     uint64
	mask  uint64
	pow2  bool
}

// makeRing allocates storage for capacity slots.
func makeRing[T any](capacity int) (ring[T], error) {
	if capacity < 1 {
		return ring[T]{}, fmt.Errorf("%w: %d (must be >= 1)", ErrInvalidCapacity, capacity)
	}
	n := uint64(capacity)
	return ring[T]{
		slots: make([]T, n),
		n:     n,
		mask:  n - 1,
		pow2:  isPow2(n),
	}, nil
}

// index maps an absolute position onto the ring.
func (r *ring[T]) index(pos uint64) uint64 {
	if r.pow2 {
		return pos & r.mask
	}
	return pos % r.n
}

// slot returns the slot that absolute position pos lands on.
func (r *ring[T]) slot(pos uint64) *T {
	return &r.slots[r.index(pos)]
}

// write overwrites the slot at pos.
func (r *ring[T]) write(pos uint64, v T) {
	r.slots[r.index(pos)] = v
}

// take returns the slot at pos and resets it to the zero value.
func (r *ring[T]) take(pos uint64) T {
	p := r.slot(pos)
	v := *p
	var zero T
	*p = zero
	return v
}

// optSlot holds an optional payload.
type optSlot[T any] struct {
	val T
	ok  bool
}

// takeOpt empties the optional slot at pos and returns its payload.
// ok is false if the slot was vacant; callers still consume the position.
func takeOpt[T any](r *ring[optSlot[T]], pos uint64) (T, bool) {
	s := r.slot(pos)
	v, ok := s.val, s.ok
	*s = optSlot[T]{}
	return v, ok
}

// putOpt fills the optional slot at pos.
func putOpt[T any](r *ring[optSlot[T]], pos uint64, v T) {
	*r.slot(pos) = optSlot[T]{val: v, ok: true}
}

func isPow2(n uint64) bool {
	return n != 0 && n&(n-1) == 0
}

// checkPow2 validates capacities for bitmask-indexed variants.
func checkPow2(capacity int) error {
	if capacity < 2 {
		return fmt.Errorf("%w: %d (must be >= 2)", ErrInvalidCapacity, capacity)
	}
	if !isPow2(uint64(capacity)) {
		return fmt.Errorf("%w: %d", ErrNotPowerOfTwo, capacity)
	}
	return nil
}

// checkSeq validates capacities for modulo-indexed sequence variants.
// One slot is not enough: after a push its sequence equals the next
// push position.
func checkSeq(capacity int) error {
	if capacity < 2 {
		return fmt.Errorf("%w: %d (must be >= 2)", ErrInvalidCapacity, capacity)
	}
	return nil
}

// roundToPow2 rounds n up to the next power of 2.
func roundToPow2(n int) int {
	if n < 2 {
		return 2
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return n + 1
}

// Must unwraps a constructor result, panicking on error.
//
//	q := fifo.Must(fifo.NewMPMC[int](1024))
func Must[Q any](q Q, err error) Q {
	if err != nil {
		panic(err)
	}
	return q
}
