// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfc

// RingBuffer is a bounded single-producer single-consumer FIFO.
//
// The buffer is a power-of-two array addressed by two monotonically
// increasing sequence cursors. The producer cursor holds the last published
// sequence and the consumer cursor the last consumed one; sequence s lives
// in slot s&mask. Cursors are 64-bit and never wrap in practice.
//
// Each cursor has exactly one writer, so no CAS is needed. The producer
// writes the slot before publishing its cursor with release ordering, and
// the consumer reads the slot before publishing its cursor, so neither side
// can observe a slot the other has not finished with.
//
// Each side also caches its last view of the peer cursor and reloads it only
// when the cached value says the operation cannot proceed.
//
// Enqueue and Dequeue block until they can proceed, waiting according to the
// [WaitPolicy]. There is no timeout: a stalled peer blocks the other side
// indefinitely. TryDequeue never blocks. There is no
// TryEnqueue; the producer side is blocking-only.
//
// Using more than one producer or more than one consumer goroutine is
// undefined behavior.
type RingBuffer[T any] struct {
	consumer       Counter // Last consumed sequence
	cachedProducer int64   // Consumer's view of producer
	_              pad
	producer       Counter // Last published sequence
	cachedConsumer int64   // Producer's view of consumer
	_              pad
	buffer         []T
	mask           int64
	policy         WaitPolicy
}

// RingOption configures a RingBuffer.
type RingOption func(*ringConfig)

type ringConfig struct {
	policy WaitPolicy
}

// WithWaitPolicy sets how blocking operations wait. Default is [WaitSpin].
func WithWaitPolicy(p WaitPolicy) RingOption {
	return func(c *ringConfig) {
		c.policy = p
	}
}

// NewRingBuffer creates a ring buffer.
//
// Capacity rounds up to the next power of 2 with a minimum of 2. A capacity
// below 2, including zero and negative values, yields a buffer of capacity 2
// rather than an error; validate beforehand when that matters (the [Builder]
// does).
func NewRingBuffer[T any](capacity int, opts ...RingOption) *RingBuffer[T] {
	cfg := ringConfig{policy: WaitSpin}
	for _, opt := range opts {
		opt(&cfg)
	}

	n := roundToPow2(capacity)
	return &RingBuffer[T]{
		buffer: make([]T, n),
		mask:   int64(n - 1),
		policy: cfg.policy,
	}
}

// Enqueue appends item, blocking while the buffer is full (producer only).
func (r *RingBuffer[T]) Enqueue(item T) {
	next := r.producer.LoadRelaxed() + 1
	wrap := next - int64(len(r.buffer))

	if wrap > r.cachedConsumer {
		w := waiter{policy: r.policy}
		for {
			r.cachedConsumer = r.consumer.LoadAcquire()
			if wrap <= r.cachedConsumer {
				break
			}
			w.wait()
		}
	}

	r.buffer[next&r.mask] = item
	r.producer.StoreRelease(next)
}

// Dequeue removes and returns the oldest item, blocking while the buffer is
// empty (consumer only).
func (r *RingBuffer[T]) Dequeue() T {
	next := r.consumer.LoadRelaxed() + 1

	if r.cachedProducer < next {
		w := waiter{policy: r.policy}
		for {
			r.cachedProducer = r.producer.LoadAcquire()
			if r.cachedProducer >= next {
				break
			}
			w.wait()
		}
	}

	return r.take(next)
}

// TryDequeue removes and returns the oldest item (consumer only).
// Returns (zero-value, false) without side effects if the buffer is empty.
func (r *RingBuffer[T]) TryDequeue() (T, bool) {
	next := r.consumer.LoadRelaxed() + 1

	if r.cachedProducer < next {
		r.cachedProducer = r.producer.LoadAcquire()
		if r.cachedProducer < next {
			var zero T
			return zero, false
		}
	}

	return r.take(next), true
}

// take reads and clears slot seq, then releases it to the producer.
func (r *RingBuffer[T]) take(seq int64) T {
	slot := &r.buffer[seq&r.mask]
	item := *slot
	var zero T
	*slot = zero
	r.consumer.StoreRelease(seq)
	return item
}

// Count returns the number of buffered items.
//
// The result is advisory: it may be stale as soon as it is read while the
// producer or consumer is active. Called from the producer or the consumer
// goroutine it never exceeds Cap.
func (r *RingBuffer[T]) Count() int {
	consumed := r.consumer.LoadFull()
	return int(r.producer.LoadFull() - consumed)
}

// Cap returns the buffer capacity.
func (r *RingBuffer[T]) Cap() int {
	return len(r.buffer)
}
