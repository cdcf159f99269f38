// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bench_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"code.hybscloud.com/fifo"
	"code.hybscloud.com/fifo/internal/bench"
)

// =============================================================================
// Targets
// =============================================================================

func TestNames(t *testing.T) {
	names := bench.Names()
	if got, want := len(names), len(fifo.Variants())+3; got != want {
		t.Fatalf("Names: got %d, want %d", got, want)
	}
	for _, name := range names {
		if _, err := bench.NewTarget(name, 64, 1, 1); err != nil {
			t.Fatalf("NewTarget(%q, 1P1C): %v", name, err)
		}
	}
}

func TestNewTargetShapes(t *testing.T) {
	tests := []struct {
		name      string
		producers int
		consumers int
		wantShape bool
	}{
		{"spsc", 2, 1, true},
		{"spsc-shadow", 1, 2, true},
		{"fifo2", 2, 2, true},
		{"mpsc", 4, 1, false},
		{"mpsc", 4, 2, true},
		{"spmc", 1, 4, false},
		{"spmc", 2, 4, true},
		{"mpmc", 4, 4, false},
		{"fifo6", 4, 4, false},
		{"locked", 4, 4, false},
		{bench.Channel, 4, 4, false},
		{bench.Eapache, 4, 4, false},
		{bench.LFRing, 4, 1, false},
		{bench.LFRing, 4, 2, true},
		{"mpmc", 0, 1, true},
	}
	for _, tt := range tests {
		_, err := bench.NewTarget(tt.name, 64, tt.producers, tt.consumers)
		if got := errors.Is(err, bench.ErrUnsupportedShape); got != tt.wantShape {
			t.Errorf("NewTarget(%q, %dP%dC): got %v, want unsupported=%v", tt.name, tt.producers, tt.consumers, err, tt.wantShape)
		}
		if !tt.wantShape && err != nil {
			t.Errorf("NewTarget(%q, %dP%dC): %v", tt.name, tt.producers, tt.consumers, err)
		}
	}
}

func TestNewTargetErrors(t *testing.T) {
	if _, err := bench.NewTarget("fifo9", 64, 1, 1); err == nil {
		t.Error("NewTarget(fifo9): expected error")
	}
	if _, err := bench.NewTarget("auto", 64, 1, 1); err == nil {
		t.Error("NewTarget(auto): expected error")
	}
	if _, err := bench.NewTarget("mpmc", 100, 1, 1); !errors.Is(err, fifo.ErrNotPowerOfTwo) {
		t.Errorf("NewTarget(mpmc, 100): got %v, want ErrNotPowerOfTwo", err)
	}
	if _, err := bench.NewTarget(bench.Channel, 0, 1, 1); !errors.Is(err, fifo.ErrInvalidCapacity) {
		t.Errorf("NewTarget(channel, 0): got %v, want ErrInvalidCapacity", err)
	}
}

func TestTargetBounds(t *testing.T) {
	for _, name := range []string{"locked", "spsc", "mpmc", bench.Channel, bench.Eapache} {
		tg, err := bench.NewTarget(name, 4, 1, 1)
		if err != nil {
			t.Fatalf("NewTarget(%q): %v", name, err)
		}
		for i := range uint64(4) {
			if !tg.Push(0, i) {
				t.Fatalf("%s: Push(%d) failed below capacity", name, i)
			}
		}
		if tg.Push(0, 99) {
			t.Fatalf("%s: Push succeeded at capacity", name)
		}
		for want := range uint64(4) {
			got, ok := tg.Pop()
			if !ok || got != want {
				t.Fatalf("%s: Pop: got (%d, %v), want (%d, true)", name, got, ok, want)
			}
		}
		if _, ok := tg.Pop(); ok {
			t.Fatalf("%s: Pop succeeded on empty", name)
		}
	}
}

// =============================================================================
// Run
// =============================================================================

func TestRunAllTargets(t *testing.T) {
	if fifo.RaceEnabled {
		t.Skip("skip: harness runs lock-free queues concurrently")
	}
	shapes := []struct{ p, c int }{{1, 1}, {4, 1}, {1, 4}, {4, 4}}
	for _, shape := range shapes {
		for _, name := range bench.Names() {
			tg, err := bench.NewTarget(name, 1024, shape.p, shape.c)
			if errors.Is(err, bench.ErrUnsupportedShape) {
				continue
			}
			if err != nil {
				t.Fatalf("NewTarget(%q): %v", name, err)
			}
			cfg := bench.Config{
				Iterations: 50_000,
				Producers:  shape.p,
				Consumers:  shape.c,
				Jitter:     true,
			}
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			res, err := bench.Run(ctx, tg, cfg)
			cancel()
			if err != nil {
				t.Fatalf("Run(%s, %dP%dC): %v", name, shape.p, shape.c, err)
			}
			if res.Ops != cfg.Iterations {
				t.Fatalf("Run(%s): Ops got %d, want %d", name, res.Ops, cfg.Iterations)
			}
			if res.Target != tg.Name() || res.Producers != shape.p || res.Consumers != shape.c {
				t.Fatalf("Run(%s): unexpected result %+v", name, res)
			}
		}
	}
}

func TestRunInvalidConfig(t *testing.T) {
	tg, _ := bench.NewTarget("locked", 8, 1, 1)
	for _, cfg := range []bench.Config{
		{Iterations: 0, Producers: 1, Consumers: 1},
		{Iterations: 10, Producers: 0, Consumers: 1},
		{Iterations: 10, Producers: 1, Consumers: 0},
	} {
		if _, err := bench.Run(context.Background(), tg, cfg); err == nil {
			t.Errorf("Run(%+v): expected error", cfg)
		}
	}
}

// stuckTarget never accepts a push.
type stuckTarget struct{}

func (stuckTarget) Name() string          { return "stuck" }
func (stuckTarget) Push(int, uint64) bool { return false }
func (stuckTarget) Pop() (uint64, bool)   { return 0, false }

func TestRunDeadline(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := bench.Run(ctx, stuckTarget{}, bench.Config{Iterations: 10, Producers: 2, Consumers: 2})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Run: got %v, want DeadlineExceeded", err)
	}
}

// doubleTarget delivers every pushed value twice.
type doubleTarget struct {
	mu    sync.Mutex
	items []uint64
}

func (*doubleTarget) Name() string { return "double" }

func (d *doubleTarget) Push(_ int, v uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.items = append(d.items, v, v)
	return true
}

func (d *doubleTarget) Pop() (uint64, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.items) == 0 {
		return 0, false
	}
	v := d.items[0]
	d.items = d.items[1:]
	return v, true
}

func TestRunDetectsDuplicates(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := bench.Run(ctx, &doubleTarget{}, bench.Config{Iterations: 1000, Producers: 1, Consumers: 2})
	if !errors.Is(err, bench.ErrLost) {
		t.Fatalf("Run: got %v, want ErrLost", err)
	}
}

// reverseTarget holds every value until all total have been pushed, then
// hands them out newest first.
type reverseTarget struct {
	mu       sync.Mutex
	total    int
	released bool
	items    []uint64
}

func (*reverseTarget) Name() string { return "reverse" }

func (r *reverseTarget) Push(_ int, v uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, v)
	if len(r.items) == r.total {
		r.released = true
	}
	return true
}

func (r *reverseTarget) Pop() (uint64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.released || len(r.items) == 0 {
		return 0, false
	}
	v := r.items[len(r.items)-1]
	r.items = r.items[:len(r.items)-1]
	return v, true
}

func TestRunDetectsReorder(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	const n = 100
	_, err := bench.Run(ctx, &reverseTarget{total: n}, bench.Config{Iterations: n, Producers: 1, Consumers: 1})
	if !errors.Is(err, bench.ErrOrder) {
		t.Fatalf("Run: got %v, want ErrOrder", err)
	}
}

// =============================================================================
// Report
// =============================================================================

func TestWriteReport(t *testing.T) {
	results := []bench.Result{
		{Target: "mpmc", Producers: 4, Consumers: 4, Ops: 1_000_000, Elapsed: 50 * time.Millisecond},
		{Target: "channel", Producers: 4, Consumers: 4, Ops: 1_000_000, Elapsed: 200 * time.Millisecond},
	}
	var buf bytes.Buffer
	if err := bench.WriteReport(&buf, results); err != nil {
		t.Fatalf("WriteReport: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("WriteReport: got %d lines, want 3:\n%s", len(lines), buf.String())
	}
	for i, want := range []string{"Mops/s", "mpmc", "channel"} {
		if !strings.Contains(lines[i], want) {
			t.Errorf("line %d: %q does not contain %q", i, lines[i], want)
		}
	}
	if !strings.Contains(lines[1], "20.00") || !strings.Contains(lines[2], "5.00") {
		t.Errorf("throughput columns wrong:\n%s", buf.String())
	}
}

func TestResultRates(t *testing.T) {
	r := bench.Result{Ops: 1000, Elapsed: time.Millisecond}
	if got := r.OpsPerSec(); got != 1e6 {
		t.Errorf("OpsPerSec: got %v, want 1e6", got)
	}
	if got := r.NsPerOp(); got != 1000 {
		t.Errorf("NsPerOp: got %v, want 1000", got)
	}
	var zero bench.Result
	if zero.OpsPerSec() != 0 || zero.NsPerOp() != 0 {
		t.Error("zero Result: rates must be 0")
	}
}
