// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"log"
	"runtime"
	"sync"
	"time"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/lfc"
	"code.hybscloud.com/spin"
)

type config struct {
	kind     string
	items    int
	capacity int
	policy   lfc.WaitPolicy
	pin      bool
}

type report struct {
	Kind       string  `json:"kind"`
	Items      int     `json:"items"`
	Capacity   int     `json:"capacity,omitempty"`
	Wait       string  `json:"wait,omitempty"`
	Pinned     bool    `json:"pinned"`
	ElapsedNs  int64   `json:"elapsed_ns"`
	OpsPerSec  float64 `json:"ops_per_sec"`
	Mismatches int64   `json:"mismatches"`
}

// Elapsed returns the measured transfer time.
func (r report) Elapsed() time.Duration {
	return time.Duration(r.ElapsedNs)
}

func parseWaitPolicy(s string) (lfc.WaitPolicy, error) {
	for _, p := range []lfc.WaitPolicy{lfc.WaitSpin, lfc.WaitYield, lfc.WaitBackoff} {
		if p.String() == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown wait policy %q", s)
}

func newPipe(cfg config) (lfc.Pipe[int], error) {
	switch cfg.kind {
	case "ring":
		if cfg.capacity < 1 {
			return nil, fmt.Errorf("ring capacity must be >= 1, got %d", cfg.capacity)
		}
		b := lfc.New().Bounded(cfg.capacity).SingleProducer().SingleConsumer().Wait(cfg.policy)
		return lfc.BuildRing[int](b), nil
	case "queue":
		return lfc.BuildQueue[int](lfc.New()), nil
	default:
		return nil, fmt.Errorf("unknown kind %q", cfg.kind)
	}
}

// run transfers 0..items-1 from one producer to one consumer and counts
// values that arrive out of sequence.
func run(cfg config) (report, error) {
	if cfg.items < 0 {
		return report{}, fmt.Errorf("item count must be >= 0, got %d", cfg.items)
	}
	p, err := newPipe(cfg)
	if err != nil {
		return report{}, err
	}

	rep := report{Kind: cfg.kind, Items: cfg.items}
	if r, ok := p.(*lfc.RingBuffer[int]); ok {
		rep.Capacity = r.Cap()
		rep.Wait = cfg.policy.String()
	}

	var wg sync.WaitGroup
	var mismatches int64
	var pinned atomix.Int32
	pin := func(cpu int) func() {
		unlock, ok := pinThread(cpu)
		if ok {
			pinned.Add(1)
		}
		return unlock
	}
	start := time.Now()

	wg.Add(2)
	go func() {
		defer wg.Done()
		if cfg.pin {
			defer pin(0)()
		}
		for i := range cfg.items {
			p.Enqueue(i)
		}
	}()
	go func() {
		defer wg.Done()
		if cfg.pin {
			defer pin(1)()
		}
		sw := spin.Wait{}
		expected := 0
		for expected < cfg.items {
			v, err := lfc.Next[int](p)
			if lfc.IsWouldBlock(err) {
				sw.Once()
				continue
			}
			if v != expected {
				mismatches++
			}
			expected++
		}
	}()
	wg.Wait()

	elapsed := time.Since(start)
	rep.ElapsedNs = elapsed.Nanoseconds()
	if elapsed > 0 {
		rep.OpsPerSec = float64(cfg.items) / elapsed.Seconds()
	}
	rep.Mismatches = mismatches
	rep.Pinned = pinned.Load() == 2
	return rep, nil
}

// applyAffinity pins the calling OS thread to a CPU.
var applyAffinity = setAffinity

// pinThread locks the calling goroutine to its OS thread and pins that
// thread to cpu. It returns the matching unlock and whether pinning took
// effect; on failure the thread stays locked but unpinned.
func pinThread(cpu int) (func(), bool) {
	runtime.LockOSThread()
	if err := applyAffinity(cpu); err != nil {
		log.Printf("pin to cpu %d: %v", cpu, err)
		return runtime.UnlockOSThread, false
	}
	return runtime.UnlockOSThread, true
}
