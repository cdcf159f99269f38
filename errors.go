// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fifo

import (
	"errors"

	"code.hybscloud.com/iox"
)

// ErrWouldBlock indicates the operation cannot proceed immediately.
//
// ErrFull and ErrEmpty both wrap ErrWouldBlock, so callers that only care
// about backpressure can test for it without distinguishing direction.
//
// This is an alias for [iox.ErrWouldBlock] for ecosystem consistency.
var ErrWouldBlock = iox.ErrWouldBlock

// ErrFull is returned by TryPush when the ring holds Cap() unread elements.
//
// ErrFull is a control flow signal, not a failure. The caller should
// retry later (with backoff or yield) or drop the element.
var ErrFull error = &wouldBlockError{msg: "fifo: queue full"}

// ErrEmpty is returned by TryPop when no element has been published.
//
// ErrEmpty is a control flow signal, not a failure.
var ErrEmpty error = &wouldBlockError{msg: "fifo: queue empty"}

// ErrInvalidCapacity is returned by constructors when the capacity is
// below the variant's minimum.
var ErrInvalidCapacity = errors.New("fifo: invalid capacity")

// ErrNotPowerOfTwo is returned by constructors of bitmask-indexed variants
// when the capacity is not a power of two.
var ErrNotPowerOfTwo = errors.New("fifo: capacity must be a power of 2")

type wouldBlockError struct {
	msg string
}

func (e *wouldBlockError) Error() string { return e.msg }

func (e *wouldBlockError) Unwrap() error { return iox.ErrWouldBlock }

// IsWouldBlock reports whether err indicates the operation would block.
// True for ErrFull, ErrEmpty and ErrWouldBlock, including wrapped forms.
// Delegates to [iox.IsWouldBlock] for errors outside this package.
func IsWouldBlock(err error) bool {
	return errors.Is(err, ErrWouldBlock) || iox.IsWouldBlock(err)
}

// IsFull reports whether err is ErrFull.
func IsFull(err error) bool {
	return errors.Is(err, ErrFull)
}

// IsEmpty reports whether err is ErrEmpty.
func IsEmpty(err error) bool {
	return errors.Is(err, ErrEmpty)
}

// IsSemantic reports whether err is a control flow signal (not a failure).
// Delegates to [iox.IsSemantic] for anything that is not a would-block.
func IsSemantic(err error) bool {
	return IsWouldBlock(err) || iox.IsSemantic(err)
}

// IsNonFailure reports whether err represents a non-failure condition.
// Returns true for nil, ErrFull, ErrEmpty and ErrWouldBlock.
// Delegates to [iox.IsNonFailure] for anything that is not a would-block.
func IsNonFailure(err error) bool {
	return err == nil || IsWouldBlock(err) || iox.IsNonFailure(err)
}
