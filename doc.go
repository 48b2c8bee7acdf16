// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package lfc provides lock-free concurrent containers and the explicitly
// ordered counter they are built on.
//
//   - Counter: cache-line padded int64 with relaxed/acquire/release/full
//     loads and stores plus atomic read-modify-write
//   - RingBuffer: bounded Single-Producer Single-Consumer FIFO
//   - Queue: unbounded Multi-Producer Multi-Consumer FIFO
//
// # Quick Start
//
// Direct constructors:
//
//	r := lfc.NewRingBuffer[Event](1024)
//	q := lfc.NewQueue[*Request]()
//
// Builder API selects the container from the declared constraints:
//
//	r := lfc.BuildRing[Event](lfc.New().Bounded(1024).SingleProducer().SingleConsumer())
//	q := lfc.BuildQueue[Event](lfc.New())
//	p := lfc.Build[Event](lfc.New().Bounded(64))  // → Queue (not SPSC)
//
// # Ring Buffer
//
// RingBuffer follows the Disruptor cursor scheme: a power-of-two slot array
// and two padded sequence counters, each written by exactly one goroutine.
// Enqueue and Dequeue block until they can proceed; TryDequeue does not.
//
//	r := lfc.NewRingBuffer[int](1000) // Actual capacity: 1024
//
//	go func() { // Producer
//	    for i := range n {
//	        r.Enqueue(i) // Blocks while full
//	    }
//	}()
//
//	for range n { // Consumer
//	    process(r.Dequeue()) // Blocks while empty
//	}
//
// Capacity rounds up to the next power of 2 with a minimum of 2. Unlike most
// constructors in this ecosystem, NewRingBuffer does not panic on a small or
// non-positive capacity: it silently yields capacity 2. Use the Builder,
// which validates, when strictness matters.
//
// Blocking operations never time out. How they wait is a [WaitPolicy]:
//
//	lfc.NewRingBuffer[int](1024)                                    // WaitSpin (default)
//	lfc.NewRingBuffer[int](1024, lfc.WithWaitPolicy(lfc.WaitYield))   // spin, then Gosched
//	lfc.NewRingBuffer[int](1024, lfc.WithWaitPolicy(lfc.WaitBackoff)) // iox.Backoff
//
// WaitSpin gives the lowest handoff latency but burns a core; choose it only
// when producer and consumer are both known to be running.
//
// # Unbounded Queue
//
// Queue is the Michael & Scott linked queue. Any number of goroutines may
// call Enqueue and TryDequeue concurrently; neither ever blocks.
//
//	q := lfc.NewQueue[Job]()
//
//	for range numWorkers {
//	    go func() {
//	        backoff := iox.Backoff{}
//	        for {
//	            job, ok := q.TryDequeue()
//	            if !ok {
//	                backoff.Wait()
//	                continue
//	            }
//	            backoff.Reset()
//	            job.Run()
//	        }
//	    }()
//	}
//
//	q.Enqueue(job) // From anywhere
//
// Count, IsEmpty, TryPeek, All, ToSlice and CopyTo are weakly consistent:
// each reflects some recent state but not necessarily the current one while
// other goroutines mutate the queue. With no concurrent mutation they are
// exact. Clear must be serialized with every other operation.
//
// # Counter
//
// Counter maps each ordering level onto the Go memory model:
//
//	LoadRelaxed / StoreRelaxed   no ordering
//	LoadAcquire / StoreRelease   acquire / release
//	LoadFull / StoreFull         full barrier (no store-load reordering)
//	LoadOpaque / StoreOpaque     relaxed, kept out of line by the compiler
//	CompareAndSwap, Swap, Add, Increment, Decrement   acquire-release RMW
//
// The value sits between two [golang.org/x/sys/cpu.CacheLinePad] fields, so
// counters embedded side by side never share a cache line.
//
// # Error Handling
//
// No operation fails. Non-blocking operations report emptiness with a
// (value, ok) pair. [Next] adapts any [Consumer] to the iox convention of
// returning [ErrWouldBlock]:
//
//	v, err := lfc.Next[int](q)
//	if lfc.IsWouldBlock(err) {
//	    // Empty - try again later
//	}
//
// # Thread Safety
//
//   - RingBuffer: one producer goroutine, one consumer goroutine
//   - Queue: any number of goroutines, except Clear
//   - Counter: any number of goroutines
//
// Violating these constraints (e.g., two producers on a RingBuffer) causes
// undefined behavior including data corruption.
//
// # Race Detection
//
// Go's race detector tracks sync/atomic, mutexes and channels, but not the
// atomix operations behind Counter and the Queue links. RingBuffer protects
// plain slot reads and writes with acquire-release ordering on its cursor
// Counters, and Queue publishes node values through atomix pointers, so
// concurrent tests of either may report false positives. Such tests are
// skipped when [RaceEnabled] is set.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/atomix] for atomic primitives with
// explicit memory ordering, [code.hybscloud.com/spin] for CPU pause
// instructions, [code.hybscloud.com/iox] for semantic errors and backoff,
// and [golang.org/x/sys/cpu] for cache line padding.
package lfc
