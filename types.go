// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfc

// Producer is the interface for appending items.
//
// Blocking behavior depends on the container:
//   - RingBuffer: blocks while full, single producer only
//   - Queue: never blocks, any number of producers
type Producer[T any] interface {
	Enqueue(item T)
}

// Consumer is the interface for removing items without blocking.
type Consumer[T any] interface {
	// TryDequeue removes and returns the oldest item.
	// Returns (zero-value, false) if nothing is available.
	//
	// Thread safety depends on the container:
	//   - RingBuffer: single consumer only
	//   - Queue: any number of consumers
	TryDequeue() (T, bool)
}

// Pipe is the combined producer-consumer interface shared by [RingBuffer]
// and [Queue].
//
// Count is advisory in both implementations: it may be stale as soon as it
// returns while other goroutines are active.
//
// Example:
//
//	var p lfc.Pipe[int] = lfc.NewRingBuffer[int](1024)
//
//	p.Enqueue(42)
//	if v, ok := p.TryDequeue(); ok {
//	    fmt.Println(v)
//	}
type Pipe[T any] interface {
	Producer[T]
	Consumer[T]
	Count() int
}

var (
	_ Pipe[int] = (*RingBuffer[int])(nil)
	_ Pipe[int] = (*Queue[int])(nil)
)
