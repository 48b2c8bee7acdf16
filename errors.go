// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfc

import "code.hybscloud.com/iox"

// ErrWouldBlock indicates the operation cannot proceed immediately.
//
// Containers in this package report emptiness structurally with a
// (value, ok) pair. [Next] converts that into ErrWouldBlock for callers
// written against the iox semantic error conventions.
//
// ErrWouldBlock is a control flow signal, not a failure. The caller should
// retry later (with backoff or yield) rather than propagating the error.
//
// This is an alias for [iox.ErrWouldBlock] for ecosystem consistency.
var ErrWouldBlock = iox.ErrWouldBlock

// Next removes and returns the oldest item of c.
// Returns (zero-value, ErrWouldBlock) if c is empty.
//
// Example:
//
//	backoff := iox.Backoff{}
//	for {
//	    v, err := lfc.Next[int](q)
//	    if lfc.IsWouldBlock(err) {
//	        backoff.Wait()
//	        continue
//	    }
//	    backoff.Reset()
//	    process(v)
//	}
func Next[T any](c Consumer[T]) (T, error) {
	v, ok := c.TryDequeue()
	if !ok {
		return v, ErrWouldBlock
	}
	return v, nil
}

// IsWouldBlock reports whether err indicates the operation would block.
// Delegates to [iox.IsWouldBlock] for wrapped error support.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsSemantic reports whether err is a control flow signal (not a failure).
// Delegates to [iox.IsSemantic].
func IsSemantic(err error) bool {
	return iox.IsSemantic(err)
}

// IsNonFailure reports whether err represents a non-failure condition.
// Returns true for nil, ErrWouldBlock, or ErrMore.
// Delegates to [iox.IsNonFailure].
func IsNonFailure(err error) bool {
	return iox.IsNonFailure(err)
}
