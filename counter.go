// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfc

import (
	"strconv"

	"code.hybscloud.com/atomix"
	"golang.org/x/sys/cpu"
)

// Counter is a 64-bit counter isolated on its own cache line.
//
// Counter exposes every memory ordering explicitly so that callers state
// the visibility they rely on at each access. It is the sequence cursor of
// [RingBuffer] and the approximate length of [Queue].
//
// Padding on both sides keeps the value off any cache line that holds other
// mutable state, so two Counters written by different cores never falsely
// share a line.
//
// The zero value is a counter holding 0. A Counter must not be copied after
// first use.
type Counter struct {
	_ cpu.CacheLinePad
	v atomix.Int64
	_ cpu.CacheLinePad
}

// NewCounter returns a counter holding v.
func NewCounter(v int64) *Counter {
	c := &Counter{}
	c.v.StoreRelaxed(v)
	return c
}

// LoadRelaxed reads the value with no ordering guarantee.
func (c *Counter) LoadRelaxed() int64 {
	return c.v.LoadRelaxed()
}

// LoadAcquire reads the value with acquire ordering.
// Writes released by another goroutine before the observed store are
// visible after LoadAcquire returns.
func (c *Counter) LoadAcquire() int64 {
	return c.v.LoadAcquire()
}

// LoadFull issues a full barrier, then reads the value with acquire
// ordering. No earlier load or store can be reordered after the read.
func (c *Counter) LoadFull() int64 {
	atomix.BarrierAcqRel()
	return c.v.LoadAcquire()
}

// LoadOpaque reads the value relaxed through a call the compiler cannot
// inline, so the load is never merged with or hoisted across surrounding
// code. No CPU fence is issued.
//
//go:noinline
func (c *Counter) LoadOpaque() int64 {
	return c.v.LoadRelaxed()
}

// StoreRelaxed writes v with no ordering guarantee.
func (c *Counter) StoreRelaxed(v int64) {
	c.v.StoreRelaxed(v)
}

// StoreRelease writes v with release ordering, publishing every write that
// precedes it in program order.
func (c *Counter) StoreRelease(v int64) {
	c.v.StoreRelease(v)
}

// StoreFull writes v with an acquire-release exchange, which acts as a
// full barrier on both sides of the store. A StoreFull followed by a
// LoadFull of another Counter is never reordered.
func (c *Counter) StoreFull(v int64) {
	c.v.SwapAcqRel(v)
}

// StoreOpaque is the store counterpart of [Counter.LoadOpaque].
//
//go:noinline
func (c *Counter) StoreOpaque(v int64) {
	c.v.StoreRelaxed(v)
}

// CompareAndSwap sets the value to new if it currently holds old.
// Reports whether the swap happened.
func (c *Counter) CompareAndSwap(old, new int64) bool {
	return c.v.CompareAndSwapAcqRel(old, new)
}

// Swap sets the value to new and returns the previous value.
func (c *Counter) Swap(new int64) int64 {
	return c.v.SwapAcqRel(new)
}

// Add adds delta and returns the new value.
func (c *Counter) Add(delta int64) int64 {
	return c.v.AddAcqRel(delta)
}

// Increment adds one and returns the new value.
func (c *Counter) Increment() int64 {
	return c.v.AddAcqRel(1)
}

// Decrement subtracts one and returns the new value.
func (c *Counter) Decrement() int64 {
	return c.v.AddAcqRel(-1)
}

// String returns the decimal form of a full-fence read.
func (c *Counter) String() string {
	return strconv.FormatInt(c.LoadFull(), 10)
}
