// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package bench drives queue implementations with concurrent producers
// and consumers and measures throughput.
//
// A Target adapts one queue to a uniform Push/Pop surface. Besides every
// fifo variant, the package provides third-party baselines: a buffered
// channel, a mutex around github.com/eapache/queue, and the sharded ring
// from github.com/randomizedcoder/go-lock-free-ring.
//
// Run verifies what it measures: every pushed value is popped exactly
// once, and with a single consumer each producer's values arrive in order.
package bench
