// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfc

import (
	"runtime"
	"strconv"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/spin"
)

// WaitPolicy selects how a blocking [RingBuffer] operation waits for its
// peer. None of the policies time out.
type WaitPolicy uint8

const (
	// WaitSpin busy-waits with CPU pause hints and never gives up the
	// processor. Lowest handoff latency; burns a core while waiting.
	WaitSpin WaitPolicy = iota

	// WaitYield spins briefly, then calls runtime.Gosched on every
	// further wait.
	WaitYield

	// WaitBackoff uses the adaptive [iox.Backoff]: spin, yield, then
	// sleep with growing intervals. Suited to peers that may stall.
	WaitBackoff
)

// yieldAfter is the number of pause rounds WaitYield spends before yielding.
const yieldAfter = 64

// String returns the policy name.
func (p WaitPolicy) String() string {
	switch p {
	case WaitSpin:
		return "spin"
	case WaitYield:
		return "yield"
	case WaitBackoff:
		return "backoff"
	default:
		return "WaitPolicy(" + strconv.Itoa(int(p)) + ")"
	}
}

// waiter carries per-call wait state. Create one per blocking call.
type waiter struct {
	policy WaitPolicy
	rounds int
	sw     spin.Wait
	bo     iox.Backoff
}

func (w *waiter) wait() {
	switch w.policy {
	case WaitYield:
		if w.rounds < yieldAfter {
			w.rounds++
			w.sw.Once()
			return
		}
		runtime.Gosched()
	case WaitBackoff:
		w.bo.Wait()
	default:
		w.sw.Once()
	}
}
