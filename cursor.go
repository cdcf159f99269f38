// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fifo

import "code.hybscloud.com/atomix"

// producerCursor groups the fields only the producer writes.
//
// shadowPop is the producer's private copy of the consumer's position. It
// is refreshed from the shared cursor only when the ring looks full, so
// the common case reads no cache line owned by the consumer.
type producerCursor struct {
	pos       atomix.Uint64
	shadowPop uint64
}

// consumerCursor groups the fields only the consumer writes.
type consumerCursor struct {
	pos        atomix.Uint64
	shadowPush uint64
}

// reserve returns the next push position if a slot is free among n.
func (p *producerCursor) reserve(c *consumerCursor, n uint64) (uint64, bool) {
	push := p.pos.LoadRelaxed()
	if push-p.shadowPop >= n {
		p.shadowPop = c.pos.LoadAcquire()
		if push-p.shadowPop >= n {
			return push, false
		}
	}
	return push, true
}

// publish makes the slot written at push visible to the consumer.
func (p *producerCursor) publish(push uint64) {
	p.pos.StoreRelease(push + 1)
}

// claim returns the next pop position if an element has been published.
func (c *consumerCursor) claim(p *producerCursor) (uint64, bool) {
	pop := c.pos.LoadRelaxed()
	if pop >= c.shadowPush {
		c.shadowPush = p.pos.LoadAcquire()
		if pop >= c.shadowPush {
			return pop, false
		}
	}
	return pop, true
}

// release hands the slot read at pop back to the producer.
func (c *consumerCursor) release(pop uint64) {
	c.pos.StoreRelease(pop + 1)
}
