// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fifo

// Queue is the combined producer-consumer interface for a bounded FIFO queue.
//
// Queue provides non-blocking TryPush and TryPop operations. TryPush returns
// ErrFull when no slot is free for the current generation; TryPop returns
// ErrEmpty when no element has been published. Both errors wrap
// ErrWouldBlock.
//
// The interface intentionally excludes length because accurate counts in
// lock-free algorithms require expensive cross-core synchronization.
// Track counts in application logic when needed.
//
// Example:
//
//	q, err := fifo.NewMPMC[int](1024)
//	if err != nil {
//	    return err
//	}
//
//	val := 42
//	if err := q.TryPush(&val); err != nil {
//	    // Handle full queue
//	}
//
//	elem, err := q.TryPop()
//	if err == nil {
//	    fmt.Println(elem)
//	}
type Queue[T any] interface {
	Producer[T]
	Consumer[T]
	Cap() int
}

// Producer is the interface for pushing elements.
//
// The element is passed by pointer to avoid copying large structs. The
// queue stores a copy of the pointed-to value, so the original can be
// modified after TryPush returns. Ownership of the copy moves to the queue,
// and from the queue to exactly one consumer.
type Producer[T any] interface {
	// TryPush adds an element to the queue (non-blocking).
	// Returns nil on success, ErrFull if the queue is full.
	//
	// Thread safety depends on queue type:
	//   - SPSC variants, SPMC: single producer only
	//   - Locked, MPSC, MPMC, MPMCMod: multiple producers safe
	TryPush(elem *T) error
}

// Consumer is the interface for popping elements.
//
// The element is returned by value. The slot it occupied is cleared so
// the queue does not retain references after hand-off.
type Consumer[T any] interface {
	// TryPop removes and returns the oldest element (non-blocking).
	// Returns (zero-value, ErrEmpty) if the queue is empty.
	//
	// Thread safety depends on queue type:
	//   - SPSC variants, MPSC: single consumer only
	//   - Locked, SPMC, MPMC, MPMCMod: multiple consumers safe
	TryPop() (T, error)
}
