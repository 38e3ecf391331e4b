// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package spinlock provides a test-and-set spinlock for short, deterministic
// critical sections.
//
// The queues in the parent package hold this lock only while manipulating
// cursors and list links, never across a semaphore operation, so the held
// window is a handful of loads and stores. Spinning is cheaper than parking
// at that scale.
package spinlock

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// Lock is a test-and-set spinlock. The zero value is unlocked.
// Lock must not be copied after first use.
type Lock struct {
	state atomix.Uint64
}

// Acquire spins until the lock is taken.
func (l *Lock) Acquire() {
	sw := spin.Wait{}
	for !l.state.CompareAndSwapAcqRel(0, 1) {
		sw.Once()
	}
}

// Release unlocks. Must only be called by the holder.
func (l *Lock) Release() {
	l.state.StoreRelease(0)
}
