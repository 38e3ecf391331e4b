// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package sbq provides blocking bounded queue implementations coordinated
// by paired counting semaphores.
//
// Where code.hybscloud.com/lfq trades blocking for lock-freedom, sbq does
// the opposite: every queue is backed by a pair of semaphores — one counts
// free slots, the other occupied slots — so producers sleep on a full queue
// and consumers sleep on an empty one. Backpressure is built in; no retry
// loops, no polling.
//
// The package offers four queue variants:
//
//   - Fifo[T]:    first-in first-out, typed
//   - Message[T]: priority-ordered (0..255, higher first), typed
//   - RawFifo:    first-in first-out, fixed-size byte records
//   - RawMessage: priority-ordered, fixed-size byte records
//
// # Quick Start
//
// Direct constructors (recommended for most cases):
//
//	q := sbq.NewFifo[Event](64)
//	q := sbq.NewMessage[*Request](128)
//	q := sbq.NewRawFifo(8, 16) // 16 records of 8 bytes
//
// Builder API selects the queue type from constraints:
//
//	q := sbq.Build[Event](sbq.New(64))                       // → Fifo
//	q := sbq.BuildMessage[Job](sbq.New(64).Prioritized())    // → Message
//	q := sbq.New(16).Prioritized().BuildRaw(8)               // → RawMessage
//
// # Basic Usage
//
// The blocking forms are the default:
//
//	// Producer: blocks while the queue is full
//	if err := q.Push(ev); err != nil { ... }
//
//	// Consumer: blocks while the queue is empty
//	ev, err := q.Pop()
//
// Every operation also comes in non-blocking, timed and context-aware
// forms, distinguished only by their waiting discipline:
//
//	err = q.TryPush(ev)                      // ErrWouldBlock when full
//	err = q.PushFor(10*time.Millisecond, ev) // ErrTimedOut on expiry
//	err = q.PushUntil(deadline, ev)          // absolute deadline
//	err = q.PushContext(ctx, ev)             // ctx.Err() on cancellation
//
// A failed operation of any form leaves the queue untouched.
//
// # Priority Queues
//
// Message and RawMessage order elements by a uint8 priority, higher values
// first; elements of equal priority pop in insertion order. With a single
// priority they degenerate to exact FIFO behavior.
//
//	q := sbq.NewMessage[Job](64)
//	q.PushPrio(3, urgent)
//	q.PushPrio(1, routine)
//
//	prio, job, err := q.PopPrio() // → (3, urgent, nil)
//
// Insertion is a linear walk under the queue's internal lock. This is a
// deliberate trade: capacities are small, the critical section stays
// deterministic, and element slots never move while being written.
//
// # Raw Queues
//
// RawFifo and RawMessage move opaque fixed-size records. Buffers must be
// exactly ElementSize bytes long; anything else fails with ErrMessageSize
// before the queue is touched.
//
//	q := sbq.NewRawFifo(4, 16)
//	q.Push([]byte{0x11, 0x11, 0x11, 0x11})
//
//	buf := make([]byte, 4)
//	q.Pop(buf)
//
// Records are copied byte-for-byte with no per-element bookkeeping, which
// suits wire frames and caller-serialized structs. For types carrying
// pointers, use the typed queues — they reset popped slots so references
// are released to the garbage collector.
//
// # Caller-Supplied Storage
//
// The *From constructors run the queue over a buffer the caller owns, for
// pooled or pre-sized storage:
//
//	backing := make([]Event, 64)
//	q := sbq.NewFifoFrom(backing)
//
// The queue borrows the buffer for its lifetime; capacity is its length.
//
// # Error Handling
//
// Queues signal control flow through sentinels. ErrWouldBlock is sourced
// from [code.hybscloud.com/iox] for ecosystem consistency:
//
//	ev, err := q.TryPop()
//	if sbq.IsWouldBlock(err) {
//	    // empty — not a failure
//	}
//
//	ev, err = q.PopFor(time.Millisecond)
//	if sbq.IsTimedOut(err) {
//	    // deadline reached — not a failure
//	}
//
// # Capacity and Length
//
// Capacity is exact (minimum 1, no rounding) and constant after
// construction. Len is provided and exact: the semaphore pair tracks the
// element count precisely, so unlike the lock-free queues there is no
// accuracy caveat beyond ordinary staleness under concurrency.
//
// # Ordering and Fairness
//
// Pushes become visible to consumers in the order their slot acquisitions
// completed; a FIFO queue pops exactly the sequence it pushed. Goroutines
// blocked on a full or empty queue are released in strict FIFO order, and a
// release is a direct handoff — a late TryPush or TryPop can never steal a
// slot from a goroutine that is already waiting.
//
// # Thread Safety
//
// All operations on all queue types are safe for any number of concurrent
// producers and consumers. Only the Try* forms should be called from
// latency-critical paths that must not sleep.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/iox] for semantic errors,
// [code.hybscloud.com/atomix] and [code.hybscloud.com/spin] for the
// short-section spinlock, and [github.com/twitsprout/tools/clock] as the
// injectable time source behind the *Until variants.
package sbq
