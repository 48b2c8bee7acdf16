// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !linux

package main

import "errors"

func setAffinity(int) error {
	return errors.New("thread affinity is not supported on this platform")
}
