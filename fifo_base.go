// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sbq

import (
	"code.hybscloud.com/sbq/internal/spinlock"
	"code.hybscloud.com/sbq/sema"
	"github.com/twitsprout/tools/clock"
)

// fifoBase is the element-agnostic core of the FIFO queues. It owns the
// paired semaphores and the two ring cursors; element storage and the
// per-slot operation belong to the facade, which passes them in as a store
// callback. The callback runs while the spinlock holds the cursor stable.
//
// Invariants:
//   - popSem.Value() + pushSem.Value() == capacity at quiescence
//   - a slot is written before popSem is posted, read before pushSem is
//     posted, so each slot has exactly one owner at any instant
//   - cursors are touched only inside the critical section, never while
//     blocked on a semaphore
type fifoBase struct {
	cs       spinlock.Lock
	popSem   *sema.Semaphore // counts occupied slots
	pushSem  *sema.Semaphore // counts free slots
	read     int             // next slot to pop
	write    int             // next slot to push into
	capacity int
}

func newFifoBase(capacity int, clk clock.Clock) fifoBase {
	return fifoBase{
		popSem:   sema.New(0, capacity, sema.WithClock(clk)),
		pushSem:  sema.New(capacity, capacity, sema.WithClock(clk)),
		capacity: capacity,
	}
}

// push acquires a free slot according to the wait discipline, runs store on
// it, and makes it visible to consumers.
func (b *fifoBase) push(wait waitOp, store func(slot int)) error {
	return b.transfer(wait, b.pushSem, b.popSem, &b.write, store)
}

// pop acquires an occupied slot according to the wait discipline, runs store
// on it, and returns it to producers.
func (b *fifoBase) pop(wait waitOp, store func(slot int)) error {
	return b.transfer(wait, b.popSem, b.pushSem, &b.read, store)
}

// transfer is the single implementation behind push and pop; the two differ
// only in which semaphore is waited on, which is posted, and which cursor
// advances. A failed wait returns with the queue untouched. The error of the
// final post is surfaced without rolling back the store.
func (b *fifoBase) transfer(wait waitOp, waitSem, postSem *sema.Semaphore, cursor *int, store func(slot int)) error {
	if err := wait(waitSem); err != nil {
		return err
	}
	b.cs.Acquire()
	store(*cursor)
	*cursor++
	if *cursor == b.capacity {
		*cursor = 0
	}
	b.cs.Release()
	return postSem.Post()
}

func (b *fifoBase) cap() int {
	return b.capacity
}

// size is the number of occupied slots, tracked exactly by the pop
// semaphore.
func (b *fifoBase) size() int {
	return b.popSem.Value()
}
