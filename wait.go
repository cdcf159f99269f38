// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fifo

import (
	"context"

	"code.hybscloud.com/iox"
)

// PushWait pushes elem, backing off while the queue is full.
//
// PushWait is a convenience layered over the non-blocking contract; the
// queues themselves never wait. It returns nil on success, ctx.Err() once
// ctx is done, or any error from TryPush that is not a would-block.
func PushWait[T any](ctx context.Context, p Producer[T], elem *T) error {
	backoff := iox.Backoff{}
	for {
		err := p.TryPush(elem)
		if err == nil || !IsWouldBlock(err) {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		backoff.Wait()
	}
}

// PopWait pops an element, backing off while the queue is empty.
// It returns ctx.Err() once ctx is done.
func PopWait[T any](ctx context.Context, c Consumer[T]) (T, error) {
	backoff := iox.Backoff{}
	for {
		elem, err := c.TryPop()
		if err == nil || !IsWouldBlock(err) {
			return elem, err
		}
		if err := ctx.Err(); err != nil {
			var zero T
			return zero, err
		}
		backoff.Wait()
	}
}
