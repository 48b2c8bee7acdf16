// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package lfc

// RaceEnabled is true when the race detector is active.
// Tests use it to skip concurrent runs whose ordering is established by
// atomix operations the detector cannot observe.
const RaceEnabled = true
