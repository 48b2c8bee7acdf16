// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfc

import (
	"iter"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// Queue is an unbounded multi-producer multi-consumer FIFO.
//
// Based on the Michael & Scott lock-free linked queue (PODC 1996). The list
// starts with a sentinel node that never holds a published value; head
// always points at the current sentinel and the queue is empty exactly when
// head.next is nil. tail points at the last node or lags it by one link, and
// every operation that finds it lagging helps advance it.
//
// Enqueue and a successful TryDequeue are lock-free and linearizable: each
// takes effect at its successful CAS. Count, IsEmpty, TryPeek and the
// snapshot methods ([Queue.All], [Queue.ToSlice], [Queue.CopyTo]) are weakly
// consistent views that may be stale under concurrent mutation.
//
// Unlinked nodes are reclaimed by the garbage collector once no goroutine
// references them, so a traversal holding a stale node never observes freed
// or reused memory and there is no ABA on node pointers.
//
// Clear is not safe for concurrent use with any other method.
type Queue[T any] struct {
	_     pad
	head  atomix.Pointer[node[T]]
	_     padPtr
	tail  atomix.Pointer[node[T]]
	_     padPtr
	count Counter // Approximate length, adjusted after each CAS
}

type node[T any] struct {
	value T
	next  atomix.Pointer[node[T]]
}

// NewQueue creates an empty queue.
func NewQueue[T any]() *Queue[T] {
	q := &Queue[T]{}
	s := &node[T]{}
	q.head.StoreRelease(s)
	q.tail.StoreRelease(s)
	return q
}

// NewQueueFrom creates a queue holding items in iteration order.
//
// Example:
//
//	q := lfc.NewQueueFrom(slices.Values([]int{1, 2, 3}))
func NewQueueFrom[T any](items iter.Seq[T]) *Queue[T] {
	q := NewQueue[T]()
	for item := range items {
		q.Enqueue(item)
	}
	return q
}

// Enqueue appends item. Never blocks; safe for concurrent use.
func (q *Queue[T]) Enqueue(item T) {
	n := &node[T]{value: item}

	sw := spin.Wait{}
	var tail *node[T]
	for {
		tail = q.tail.LoadAcquire()
		next := tail.next.LoadAcquire()
		if tail != q.tail.LoadAcquire() {
			continue
		}
		if next == nil {
			if tail.next.CompareAndSwapAcqRel(nil, n) {
				break
			}
		} else {
			// Another enqueuer linked a node but has not swung tail yet.
			q.tail.CompareAndSwapAcqRel(tail, next)
		}
		sw.Once()
	}

	// Best effort; a helper may already have moved tail past n.
	q.tail.CompareAndSwapAcqRel(tail, n)
	q.count.Increment()
}

// TryDequeue removes and returns the oldest item.
// Returns (zero-value, false) if the queue is empty. Never blocks; safe for
// concurrent use.
func (q *Queue[T]) TryDequeue() (T, bool) {
	sw := spin.Wait{}
	for {
		head := q.head.LoadAcquire()
		tail := q.tail.LoadAcquire()
		next := head.next.LoadAcquire()
		if head != q.head.LoadAcquire() {
			continue
		}
		if head == tail {
			if next == nil {
				var zero T
				return zero, false
			}
			q.tail.CompareAndSwapAcqRel(tail, next)
			continue
		}
		if next == nil {
			// Only reachable when Clear races this call.
			continue
		}

		// Read before the CAS: once head moves, next is the new sentinel
		// and may be retired by another consumer.
		item := next.value
		if q.head.CompareAndSwapAcqRel(head, next) {
			q.count.Decrement()
			return item, true
		}
		sw.Once()
	}
}

// TryPeek returns the oldest item without removing it.
// Returns (zero-value, false) if the queue looks empty.
//
// The result is best effort: a concurrent TryDequeue may already have
// removed the returned item by the time the caller inspects it.
func (q *Queue[T]) TryPeek() (T, bool) {
	var zero T
	if q.IsEmpty() {
		return zero, false
	}
	first := q.head.LoadAcquire().next.LoadAcquire()
	if first == nil {
		return zero, false
	}
	return first.value, true
}

// Clear removes all items by installing a fresh sentinel.
//
// Clear is not synchronized: callers must serialize it with every other
// operation. Racing it with producers or consumers may lose items or leave
// Count inconsistent.
func (q *Queue[T]) Clear() {
	s := &node[T]{}
	q.count.StoreRelease(0)
	q.head.StoreRelease(s)
	q.tail.StoreRelease(s)
}

// All returns a weakly consistent sequence of the queued items.
//
// The walk starts from the head observed when All is called and follows
// links as it goes, so it may include items dequeued after the call and
// items enqueued during the walk. It visits each node at most once and
// always terminates once producers stop.
func (q *Queue[T]) All() iter.Seq[T] {
	head := q.head.LoadAcquire()
	return func(yield func(T) bool) {
		for n := head.next.LoadAcquire(); n != nil; n = n.next.LoadAcquire() {
			if !yield(n.value) {
				return
			}
		}
	}
}

// ToSlice returns a weakly consistent snapshot of the queued items in FIFO
// order. See [Queue.All].
func (q *Queue[T]) ToSlice() []T {
	out := make([]T, 0, q.Count())
	for item := range q.All() {
		out = append(out, item)
	}
	return out
}

// CopyTo copies a weakly consistent snapshot into dst starting at dst[offset]
// and returns the number of items copied. Copying stops when dst is full or
// the walk ends. An offset outside dst copies nothing.
func (q *Queue[T]) CopyTo(dst []T, offset int) int {
	if offset < 0 || offset >= len(dst) {
		return 0
	}
	i := offset
	for item := range q.All() {
		if i >= len(dst) {
			break
		}
		dst[i] = item
		i++
	}
	return i - offset
}

// Count returns the approximate number of queued items.
//
// The counter is adjusted outside the linking CAS, so it may briefly lag the
// list under contention. Transient negative readings are reported as 0.
func (q *Queue[T]) Count() int {
	n := q.count.LoadAcquire()
	if n < 0 {
		return 0
	}
	return int(n)
}

// IsEmpty reports whether the approximate count is zero.
func (q *Queue[T]) IsEmpty() bool {
	return q.count.LoadAcquire() <= 0
}
