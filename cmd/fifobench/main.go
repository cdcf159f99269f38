// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command fifobench measures queue throughput with concurrent producers
// and consumers.
//
// Usage:
//
//	go run ./cmd/fifobench -n 100000000 -capacity 131072
//	go run ./cmd/fifobench -producers 4 -consumers 4 -targets mpmc,mpmc-mod,locked
//
// Without -targets every target that supports the producer/consumer shape
// is run, fifo variants first, then the channel, eapache and lfring
// baselines.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"code.hybscloud.com/fifo/internal/bench"
)

func main() {
	iterations := flag.Int("n", 10_000_000, "total values pushed per target")
	capacity := flag.Int("capacity", 131_072, "queue capacity")
	producers := flag.Int("producers", 1, "producer goroutines")
	consumers := flag.Int("consumers", 1, "consumer goroutines")
	targets := flag.String("targets", "", "comma-separated targets (default: all that fit the shape)")
	pin := flag.Bool("pin", false, "pin each worker to a CPU (Linux)")
	jitter := flag.Bool("jitter", false, "yield randomly in producers")
	timeout := flag.Duration("timeout", 5*time.Minute, "abort a target after this long")
	list := flag.Bool("list", false, "list target names and exit")
	flag.Parse()

	if *list {
		for _, name := range bench.Names() {
			fmt.Println(name)
		}
		return
	}

	names := bench.Names()
	explicit := *targets != ""
	if explicit {
		names = strings.Split(*targets, ",")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := bench.Config{
		Iterations: *iterations,
		Producers:  *producers,
		Consumers:  *consumers,
		Pin:        *pin,
		Jitter:     *jitter,
	}
	fmt.Printf("fifobench: n=%d capacity=%d producers=%d consumers=%d\n",
		cfg.Iterations, *capacity, cfg.Producers, cfg.Consumers)

	var results []bench.Result
	failed := false
	for _, name := range names {
		name = strings.TrimSpace(name)
		t, err := bench.NewTarget(name, *capacity, cfg.Producers, cfg.Consumers)
		if err != nil {
			if !explicit && errors.Is(err, bench.ErrUnsupportedShape) {
				continue
			}
			log.Printf("%s: %v", name, err)
			failed = true
			continue
		}

		runCtx, cancel := context.WithTimeout(ctx, *timeout)
		res, err := bench.Run(runCtx, t, cfg)
		cancel()
		if err != nil {
			log.Printf("%s: %v", name, err)
			failed = true
			if ctx.Err() != nil {
				break
			}
			continue
		}
		log.Printf("%s: %.2f Mops/s", res.Target, res.OpsPerSec()/1e6)
		results = append(results, res)
	}

	fmt.Println()
	if err := bench.WriteReport(os.Stdout, results); err != nil {
		log.Fatalf("report: %v", err)
	}
	if failed {
		os.Exit(1)
	}
}
