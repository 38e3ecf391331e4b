// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package sbq

// RaceEnabled is true when the race detector is active.
// Used by tests to skip stress tests whose synchronization runs through the
// internal spinlock's acquire-release atomics, which the detector cannot
// always attribute.
const RaceEnabled = true
