// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fifo

import (
	"fmt"
	"strings"
)

// Variant names one queue implementation.
type Variant uint8

const (
	// VariantAuto selects an implementation from the builder constraints.
	VariantAuto Variant = iota
	// VariantLocked is the mutex-guarded baseline (Locked).
	VariantLocked
	// VariantSPSCAtomic uses unpadded atomic cursors (SPSCAtomic).
	VariantSPSCAtomic
	// VariantSPSCPadded pads each cursor to a cache line (SPSCPadded).
	VariantSPSCPadded
	// VariantSPSCShadow adds shadow cursors (SPSCShadow).
	VariantSPSCShadow
	// VariantSPSC adds raw payload slots (SPSC).
	VariantSPSC
	// VariantMPSC is the sequence-based MPSC queue (MPSC).
	VariantMPSC
	// VariantSPMC is the sequence-based SPMC queue (SPMC).
	VariantSPMC
	// VariantMPMCMod is Vyukov with modulo indexing (MPMCMod).
	VariantMPMCMod
	// VariantMPMC is Vyukov with bitmask indexing (MPMC).
	VariantMPMC
)

var variantNames = [...]string{
	VariantAuto:       "auto",
	VariantLocked:     "locked",
	VariantSPSCAtomic: "spsc-atomic",
	VariantSPSCPadded: "spsc-padded",
	VariantSPSCShadow: "spsc-shadow",
	VariantSPSC:       "spsc",
	VariantMPSC:       "mpsc",
	VariantSPMC:       "spmc",
	VariantMPMCMod:    "mpmc-mod",
	VariantMPMC:       "mpmc",
}

// Historical names of the progression, fifo1 through fifo6a.
var variantAliases = map[string]Variant{
	"fifo1":  VariantLocked,
	"fifo2":  VariantSPSCAtomic,
	"fifo3":  VariantSPSCPadded,
	"fifo4":  VariantSPSCShadow,
	"fifo5":  VariantSPSC,
	"fifo6":  VariantMPMCMod,
	"fifo6a": VariantMPMC,
}

// String returns the variant name accepted by ParseVariant.
func (v Variant) String() string {
	if int(v) < len(variantNames) {
		return variantNames[v]
	}
	return fmt.Sprintf("Variant(%d)", uint8(v))
}

// SingleProducer reports whether the variant allows only one producer.
func (v Variant) SingleProducer() bool {
	switch v {
	case VariantSPSCAtomic, VariantSPSCPadded, VariantSPSCShadow, VariantSPSC, VariantSPMC:
		return true
	}
	return false
}

// SingleConsumer reports whether the variant allows only one consumer.
func (v Variant) SingleConsumer() bool {
	switch v {
	case VariantSPSCAtomic, VariantSPSCPadded, VariantSPSCShadow, VariantSPSC, VariantMPSC:
		return true
	}
	return false
}

// ParseVariant parses a variant name or one of the fifo1..fifo6a aliases.
// Matching is case-insensitive.
func ParseVariant(s string) (Variant, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range variantNames {
		if n == name {
			return Variant(i), nil
		}
	}
	if v, ok := variantAliases[name]; ok {
		return v, nil
	}
	return VariantAuto, fmt.Errorf("fifo: unknown variant %q", s)
}

// Variants returns every concrete variant in progression order.
func Variants() []Variant {
	return []Variant{
		VariantLocked,
		VariantSPSCAtomic,
		VariantSPSCPadded,
		VariantSPSCShadow,
		VariantSPSC,
		VariantMPSC,
		VariantSPMC,
		VariantMPMCMod,
		VariantMPMC,
	}
}

// Options configures queue creation and algorithm selection.
type Options struct {
	// Producer/Consumer constraints (determines queue type)
	singleProducer bool
	singleConsumer bool

	// Explicit implementation; VariantAuto defers to the constraints
	variant Variant

	// Round capacity up to the next power of 2
	roundUp bool

	capacity int
}

// Builder creates queues with fluent configuration.
//
// The builder selects the algorithm from producer/consumer constraints
// unless a Variant is set explicitly.
//
// Example:
//
//	// SPSC queue (optimal for single producer/consumer)
//	q, err := fifo.Build[Event](fifo.New(1024).SingleProducer().SingleConsumer())
//
//	// MPMC queue (default, general purpose)
//	q, err := fifo.Build[Request](fifo.New(4096))
//
//	// Benchmark a specific implementation
//	q, err := fifo.Build[uint64](fifo.New(1000).Variant(fifo.VariantMPMCMod))
type Builder struct {
	opts Options
}

// New creates a queue builder with the given capacity.
// Capacity is validated by Build against the selected variant.
func New(capacity int) *Builder {
	return &Builder{opts: Options{capacity: capacity}}
}

// SingleProducer declares that only one goroutine will push.
func (b *Builder) SingleProducer() *Builder {
	b.opts.singleProducer = true
	return b
}

// SingleConsumer declares that only one goroutine will pop.
func (b *Builder) SingleConsumer() *Builder {
	b.opts.singleConsumer = true
	return b
}

// Variant forces a specific implementation.
// The caller is responsible for honoring its producer/consumer limits.
func (b *Builder) Variant(v Variant) *Builder {
	b.opts.variant = v
	return b
}

// RoundUp rounds the capacity up to the next power of 2 so that bitmask
// variants accept it. For example, 1000 becomes 1024.
func (b *Builder) RoundUp() *Builder {
	b.opts.roundUp = true
	return b
}

// Capacity returns the capacity Build will use.
func (b *Builder) Capacity() int {
	if b.opts.roundUp && b.opts.capacity > 0 {
		return roundToPow2(b.opts.capacity)
	}
	return b.opts.capacity
}

// Selected returns the variant Build will construct.
//
// Automatic selection:
//
//	SingleProducer + SingleConsumer → SPSC
//	SingleProducer only             → SPMC     (MPMCMod if not a power of 2)
//	SingleConsumer only             → MPSC     (MPMCMod if not a power of 2)
//	Neither                         → MPMC     (MPMCMod if not a power of 2)
func (b *Builder) Selected() Variant {
	if b.opts.variant != VariantAuto {
		return b.opts.variant
	}
	pow2 := isPow2(uint64(max(b.Capacity(), 0)))
	switch {
	case b.opts.singleProducer && b.opts.singleConsumer:
		return VariantSPSC
	case !pow2:
		return VariantMPMCMod
	case b.opts.singleProducer:
		return VariantSPMC
	case b.opts.singleConsumer:
		return VariantMPSC
	default:
		return VariantMPMC
	}
}

// Build creates a Queue[T] for the selected variant.
// Returns the constructor's capacity error if the capacity is invalid.
func Build[T any](b *Builder) (Queue[T], error) {
	n := b.Capacity()
	switch v := b.Selected(); v {
	case VariantLocked:
		return asQueue[T](NewLocked[T](n))
	case VariantSPSCAtomic:
		return asQueue[T](NewSPSCAtomic[T](n))
	case VariantSPSCPadded:
		return asQueue[T](NewSPSCPadded[T](n))
	case VariantSPSCShadow:
		return asQueue[T](NewSPSCShadow[T](n))
	case VariantSPSC:
		return asQueue[T](NewSPSC[T](n))
	case VariantMPSC:
		return asQueue[T](NewMPSC[T](n))
	case VariantSPMC:
		return asQueue[T](NewSPMC[T](n))
	case VariantMPMCMod:
		return asQueue[T](NewMPMCMod[T](n))
	case VariantMPMC:
		return asQueue[T](NewMPMC[T](n))
	default:
		return nil, fmt.Errorf("fifo: unknown variant %v", v)
	}
}

// asQueue keeps a typed nil pointer out of the returned interface.
func asQueue[T any, Q Queue[T]](q Q, err error) (Queue[T], error) {
	if err != nil {
		return nil, err
	}
	return q, nil
}
