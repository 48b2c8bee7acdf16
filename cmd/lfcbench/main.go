// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command lfcbench streams integers from one producer goroutine to one
// consumer goroutine through a RingBuffer or a Queue and reports
// throughput and ordering violations.
//
// Usage:
//
//	lfcbench -kind ring -n 5000000 -cap 1000 -wait spin -pin
//	lfcbench -kind queue -n 1000000 -json
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/sugawarayuuta/sonnet"
)

func main() {
	var (
		kind     = flag.String("kind", "ring", "container: ring or queue")
		items    = flag.Int("n", 5_000_000, "number of items to transfer")
		capacity = flag.Int("cap", 1000, "ring capacity (rounded up to a power of 2)")
		wait     = flag.String("wait", "spin", "ring wait policy: spin, yield or backoff")
		pin      = flag.Bool("pin", false, "pin producer and consumer threads to CPUs 0 and 1 (Linux)")
		asJSON   = flag.Bool("json", false, "print the report as JSON")
	)
	flag.Parse()
	log.SetFlags(0)
	log.SetPrefix("lfcbench: ")

	policy, err := parseWaitPolicy(*wait)
	if err != nil {
		log.Fatal(err)
	}
	cfg := config{
		kind:     *kind,
		items:    *items,
		capacity: *capacity,
		policy:   policy,
		pin:      *pin,
	}

	rep, err := run(cfg)
	if err != nil {
		log.Fatal(err)
	}

	if *asJSON {
		out, err := sonnet.Marshal(rep)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Fprintln(os.Stdout, string(out))
	} else {
		log.Printf("%s: %d items in %v (%.0f ops/s), %d mismatches",
			rep.Kind, rep.Items, rep.Elapsed(), rep.OpsPerSec, rep.Mismatches)
	}
	if rep.Mismatches > 0 {
		os.Exit(1)
	}
}
