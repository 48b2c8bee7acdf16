// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfc

import "unsafe"

// Options configures container creation and selection.
type Options struct {
	// Producer/Consumer constraints
	singleProducer bool
	singleConsumer bool

	// Bound (0 means unbounded)
	capacity int

	// Blocking behavior for bounded containers
	policy WaitPolicy
}

// Builder creates containers with fluent configuration.
//
// The builder selects the container from the declared constraints: a
// bounded single-producer single-consumer configuration gets a
// [RingBuffer], anything else gets the unbounded [Queue].
//
// Example:
//
//	// Pipeline stage between two fixed goroutines
//	r := lfc.BuildRing[Event](lfc.New().Bounded(1024).SingleProducer().SingleConsumer())
//
//	// Fan-in from any number of goroutines
//	q := lfc.BuildQueue[Request](lfc.New())
type Builder struct {
	opts Options
}

// New creates a builder for an unbounded, unconstrained container.
func New() *Builder {
	return &Builder{opts: Options{policy: WaitSpin}}
}

// Bounded limits the container to capacity items.
// Capacity rounds up to the next power of 2.
//
// Panics if capacity < 1. Unlike [NewRingBuffer], the builder validates.
func (b *Builder) Bounded(capacity int) *Builder {
	if capacity < 1 {
		panic("lfc: capacity must be >= 1")
	}
	b.opts.capacity = capacity
	return b
}

// SingleProducer declares that only one goroutine will enqueue.
func (b *Builder) SingleProducer() *Builder {
	b.opts.singleProducer = true
	return b
}

// SingleConsumer declares that only one goroutine will dequeue.
func (b *Builder) SingleConsumer() *Builder {
	b.opts.singleConsumer = true
	return b
}

// Wait sets the wait policy of blocking operations.
// Ignored by unbounded containers, which never block.
func (b *Builder) Wait(p WaitPolicy) *Builder {
	b.opts.policy = p
	return b
}

// Build creates a Pipe[T] with automatic container selection.
//
// Selection:
//
//	Bounded + SingleProducer + SingleConsumer → RingBuffer
//	Anything else                             → Queue
//
// A bounded configuration with multiple producers or consumers falls back
// to the unbounded Queue: there is no bounded multi-party container.
//
// For concrete return types, use:
//   - BuildRing[T](b) → *RingBuffer[T]
//   - BuildQueue[T](b) → *Queue[T]
func Build[T any](b *Builder) Pipe[T] {
	if b.opts.capacity > 0 && b.opts.singleProducer && b.opts.singleConsumer {
		return NewRingBuffer[T](b.opts.capacity, WithWaitPolicy(b.opts.policy))
	}
	return NewQueue[T]()
}

// BuildRing creates a RingBuffer with compile-time type safety.
// Panics if builder is not configured with Bounded().SingleProducer().SingleConsumer().
func BuildRing[T any](b *Builder) *RingBuffer[T] {
	if b.opts.capacity == 0 || !b.opts.singleProducer || !b.opts.singleConsumer {
		panic("lfc: BuildRing requires Bounded().SingleProducer().SingleConsumer()")
	}
	return NewRingBuffer[T](b.opts.capacity, WithWaitPolicy(b.opts.policy))
}

// BuildQueue creates a Queue with compile-time type safety.
// Panics if builder is Bounded: Queue cannot enforce a bound.
func BuildQueue[T any](b *Builder) *Queue[T] {
	if b.opts.capacity > 0 {
		panic("lfc: BuildQueue requires an unbounded builder")
	}
	return NewQueue[T]()
}

// roundToPow2 rounds n up to the next power of 2.
func roundToPow2(n int) int {
	if n < 2 {
		return 2
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return n + 1
}

// ptrSize is the size of a pointer in bytes.
const ptrSize = int(unsafe.Sizeof(uintptr(0)))

// pad is cache line padding to prevent false sharing.
type pad [64]byte

// padPtr is padding to fill cache line after pointer-sized field.
type padPtr [64 - ptrSize]byte
