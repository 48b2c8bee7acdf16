// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfc_test

import (
	"errors"
	"fmt"
	"testing"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/lfc"
)

// =============================================================================
// Builder - Container Selection
// =============================================================================

func TestBuildSelection(t *testing.T) {
	tests := []struct {
		name     string
		builder  func() *lfc.Builder
		wantRing bool
	}{
		{"unbounded", func() *lfc.Builder { return lfc.New() }, false},
		{"unbounded SPSC", func() *lfc.Builder { return lfc.New().SingleProducer().SingleConsumer() }, false},
		{"bounded MPMC", func() *lfc.Builder { return lfc.New().Bounded(64) }, false},
		{"bounded SP", func() *lfc.Builder { return lfc.New().Bounded(64).SingleProducer() }, false},
		{"bounded SC", func() *lfc.Builder { return lfc.New().Bounded(64).SingleConsumer() }, false},
		{"bounded SPSC", func() *lfc.Builder { return lfc.New().Bounded(64).SingleProducer().SingleConsumer() }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := lfc.Build[int](tt.builder())
			_, isRing := p.(*lfc.RingBuffer[int])
			_, isQueue := p.(*lfc.Queue[int])
			if isRing != tt.wantRing || isQueue == tt.wantRing {
				t.Fatalf("Build: got %T", p)
			}
		})
	}
}

func TestBuildRing(t *testing.T) {
	r := lfc.BuildRing[int](lfc.New().Bounded(100).SingleProducer().SingleConsumer().Wait(lfc.WaitBackoff))
	if r.Cap() != 128 {
		t.Fatalf("Cap: got %d, want 128", r.Cap())
	}
	r.Enqueue(1)
	if v := r.Dequeue(); v != 1 {
		t.Fatalf("Dequeue: got %d, want 1", v)
	}
}

func TestBuildQueue(t *testing.T) {
	q := lfc.BuildQueue[string](lfc.New().Wait(lfc.WaitYield))
	q.Enqueue("x")
	if v, ok := q.TryDequeue(); !ok || v != "x" {
		t.Fatalf("TryDequeue: got (%q, %v), want (\"x\", true)", v, ok)
	}
}

func TestBuilderPanics(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"Bounded(0)", func() { lfc.New().Bounded(0) }},
		{"Bounded(-1)", func() { lfc.New().Bounded(-1) }},
		{"BuildRing unbounded", func() { lfc.BuildRing[int](lfc.New().SingleProducer().SingleConsumer()) }},
		{"BuildRing multi producer", func() { lfc.BuildRing[int](lfc.New().Bounded(8).SingleConsumer()) }},
		{"BuildRing multi consumer", func() { lfc.BuildRing[int](lfc.New().Bounded(8).SingleProducer()) }},
		{"BuildQueue bounded", func() { lfc.BuildQueue[int](lfc.New().Bounded(8)) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatal("expected panic")
				}
			}()
			tt.fn()
		})
	}
}

// =============================================================================
// Errors
// =============================================================================

func TestNextEmpty(t *testing.T) {
	q := lfc.NewQueue[int]()

	v, err := lfc.Next[int](q)
	if !errors.Is(err, lfc.ErrWouldBlock) {
		t.Fatalf("Next on empty: got %v, want ErrWouldBlock", err)
	}
	if v != 0 {
		t.Fatalf("Next on empty: got value %d, want 0", v)
	}

	q.Enqueue(3)
	if v, err := lfc.Next[int](q); err != nil || v != 3 {
		t.Fatalf("Next: got (%d, %v), want (3, nil)", v, err)
	}
}

func TestErrorClassification(t *testing.T) {
	wrapped := fmt.Errorf("poll: %w", lfc.ErrWouldBlock)

	if !lfc.IsWouldBlock(lfc.ErrWouldBlock) || !lfc.IsWouldBlock(wrapped) {
		t.Fatal("IsWouldBlock: got false for ErrWouldBlock")
	}
	if lfc.ErrWouldBlock != iox.ErrWouldBlock {
		t.Fatal("ErrWouldBlock is not iox.ErrWouldBlock")
	}
	if !lfc.IsSemantic(lfc.ErrWouldBlock) {
		t.Fatal("IsSemantic: got false for ErrWouldBlock")
	}
	if !lfc.IsNonFailure(nil) || !lfc.IsNonFailure(lfc.ErrWouldBlock) {
		t.Fatal("IsNonFailure: got false for nil or ErrWouldBlock")
	}

	failure := errors.New("boom")
	if lfc.IsWouldBlock(failure) || lfc.IsSemantic(failure) || lfc.IsNonFailure(failure) {
		t.Fatal("plain error classified as control flow")
	}
}
