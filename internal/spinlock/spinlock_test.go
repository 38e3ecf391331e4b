// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package spinlock_test

import (
	"sync"
	"testing"

	"code.hybscloud.com/sbq/internal/spinlock"
)

func TestLockUnlock(t *testing.T) {
	var l spinlock.Lock
	l.Acquire()
	l.Release()
	l.Acquire()
	l.Release()
}

// TestMutualExclusion increments a counter under the lock from several
// goroutines; any lost update means the lock failed.
func TestMutualExclusion(t *testing.T) {
	const (
		goroutines = 8
		iterations = 10000
	)
	var l spinlock.Lock
	counter := 0

	var wg sync.WaitGroup
	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range iterations {
				l.Acquire()
				counter++
				l.Release()
			}
		}()
	}
	wg.Wait()

	if want := goroutines * iterations; counter != want {
		t.Fatalf("counter: got %d, want %d", counter, want)
	}
}
