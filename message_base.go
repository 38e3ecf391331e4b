// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sbq

import (
	"code.hybscloud.com/sbq/internal/spinlock"
	"code.hybscloud.com/sbq/sema"
	"github.com/twitsprout/tools/clock"
)

// nilEntry terminates the entry lists.
const nilEntry = -1

// messageBase is the element-agnostic core of the priority queues. Entries
// live in a fixed arena indexed 0..capacity-1 and are linked by index, not
// pointer; entry i is permanently associated with value slot i of the
// facade's storage. At rest every entry is on exactly one of two lists:
//
//   - free list: unordered, LIFO reuse
//   - occupied list: sorted by descending priority, FIFO among equals
//
// Insertion is a linear walk. That is deliberate: n is small in practice,
// the critical section stays deterministic, and slot addresses never move
// while a store callback runs. A heap would churn slot associations or need
// a side index, losing both properties.
type messageBase struct {
	cs       spinlock.Lock
	popSem   *sema.Semaphore // counts entries on the occupied list
	pushSem  *sema.Semaphore // counts entries on the free list
	prio     []uint8
	next     []int32
	freeHead int32
	occHead  int32
	capacity int
}

func newMessageBase(capacity int, clk clock.Clock) messageBase {
	b := messageBase{
		popSem:   sema.New(0, capacity, sema.WithClock(clk)),
		pushSem:  sema.New(capacity, capacity, sema.WithClock(clk)),
		prio:     make([]uint8, capacity),
		next:     make([]int32, capacity),
		freeHead: 0,
		occHead:  nilEntry,
		capacity: capacity,
	}
	for i := range b.next {
		b.next[i] = int32(i + 1)
	}
	b.next[capacity-1] = nilEntry
	return b
}

// push acquires a free entry according to the wait discipline, runs store on
// its slot, and splices the entry into the occupied list: after every entry
// of greater or equal priority, before the first entry of strictly lower
// priority. Equal priorities therefore pop in insertion order.
func (b *messageBase) push(wait waitOp, priority uint8, store func(slot int)) error {
	if err := wait(b.pushSem); err != nil {
		return err
	}
	b.cs.Acquire()
	e := b.freeHead
	b.freeHead = b.next[e]
	store(int(e))
	b.prio[e] = priority
	prev, cur := int32(nilEntry), b.occHead
	for cur != nilEntry && b.prio[cur] >= priority {
		prev, cur = cur, b.next[cur]
	}
	b.next[e] = cur
	if prev == nilEntry {
		b.occHead = e
	} else {
		b.next[prev] = e
	}
	b.cs.Release()
	return b.popSem.Post()
}

// pop detaches the head of the occupied list (the oldest entry of the
// highest priority present), runs store on its slot, and returns the entry
// to the free list. The popped priority is reported alongside any post
// error.
func (b *messageBase) pop(wait waitOp, store func(slot int)) (uint8, error) {
	if err := wait(b.popSem); err != nil {
		return 0, err
	}
	b.cs.Acquire()
	e := b.occHead
	b.occHead = b.next[e]
	priority := b.prio[e]
	store(int(e))
	b.next[e] = b.freeHead
	b.freeHead = e
	b.cs.Release()
	return priority, b.pushSem.Post()
}

func (b *messageBase) cap() int {
	return b.capacity
}

func (b *messageBase) size() int {
	return b.popSem.Value()
}
