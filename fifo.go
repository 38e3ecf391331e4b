// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sbq

import (
	"context"
	"time"

	"github.com/twitsprout/tools/clock"
)

// Fifo is a blocking bounded FIFO queue for elements of type T.
//
// Push blocks while the queue is full, Pop blocks while it is empty; the
// Try*, *For, *Until and *Context variants replace blocking with immediate
// failure, a deadline, or cancellation. All variants are safe for any number
// of concurrent producers and consumers.
//
// A popped slot is reset to the zero value of T so that references held by
// the stored element become collectable immediately.
type Fifo[T any] struct {
	base   fifoBase
	buffer []T
}

// NewFifo creates a FIFO queue with the given capacity.
// Panics if capacity < 1.
func NewFifo[T any](capacity int) *Fifo[T] {
	if capacity < 1 {
		panic("sbq: capacity must be >= 1")
	}
	return newFifo[T](make([]T, capacity), &clock.Default{})
}

// NewFifoFrom creates a FIFO queue over caller-supplied storage. The queue's
// capacity is len(buf). The queue borrows buf for its lifetime; the caller
// must not touch it while the queue is in use. Panics if buf is empty.
func NewFifoFrom[T any](buf []T) *Fifo[T] {
	if len(buf) == 0 {
		panic("sbq: empty storage")
	}
	return newFifo[T](buf, &clock.Default{})
}

func newFifo[T any](buf []T, clk clock.Clock) *Fifo[T] {
	return &Fifo[T]{
		base:   newFifoBase(len(buf), clk),
		buffer: buf,
	}
}

// store copies *v into the slot the core hands over.
func (f *Fifo[T]) store(v *T) func(slot int) {
	return func(slot int) {
		f.buffer[slot] = *v
	}
}

// take moves the slot's element into *v and resets the slot.
func (f *Fifo[T]) take(v *T) func(slot int) {
	return func(slot int) {
		var zero T
		*v = f.buffer[slot]
		f.buffer[slot] = zero
	}
}

// construct resets the slot and lets init build the element in place.
func (f *Fifo[T]) construct(init func(*T)) func(slot int) {
	return func(slot int) {
		var zero T
		f.buffer[slot] = zero
		init(&f.buffer[slot])
	}
}

// Push adds an element, blocking while the queue is full.
func (f *Fifo[T]) Push(v T) error {
	return f.base.push(waitBlocking, f.store(&v))
}

// TryPush adds an element without blocking.
// Returns ErrWouldBlock if the queue is full.
func (f *Fifo[T]) TryPush(v T) error {
	return f.base.push(waitTry, f.store(&v))
}

// PushFor adds an element, blocking for up to d while the queue is full.
// Returns ErrTimedOut if no slot became free in time.
func (f *Fifo[T]) PushFor(d time.Duration, v T) error {
	return f.base.push(waitFor(d), f.store(&v))
}

// PushUntil adds an element, blocking until the time point t while the queue
// is full. Returns ErrTimedOut if no slot became free in time.
func (f *Fifo[T]) PushUntil(t time.Time, v T) error {
	return f.base.push(waitUntil(t), f.store(&v))
}

// PushContext adds an element, blocking while the queue is full until ctx is
// done. Returns ctx.Err() on cancellation.
func (f *Fifo[T]) PushContext(ctx context.Context, v T) error {
	return f.base.push(waitCtx(ctx), f.store(&v))
}

// Emplace constructs an element in place: the slot is reset to the zero
// value and init is called with its address. This avoids staging large
// elements on the caller's stack. init runs inside the queue's critical
// section and must not block or touch the queue.
func (f *Fifo[T]) Emplace(init func(*T)) error {
	return f.base.push(waitBlocking, f.construct(init))
}

// TryEmplace constructs an element in place without blocking.
// Returns ErrWouldBlock if the queue is full.
func (f *Fifo[T]) TryEmplace(init func(*T)) error {
	return f.base.push(waitTry, f.construct(init))
}

// EmplaceFor constructs an element in place, blocking for up to d while the
// queue is full.
func (f *Fifo[T]) EmplaceFor(d time.Duration, init func(*T)) error {
	return f.base.push(waitFor(d), f.construct(init))
}

// EmplaceUntil constructs an element in place, blocking until the time point
// t while the queue is full.
func (f *Fifo[T]) EmplaceUntil(t time.Time, init func(*T)) error {
	return f.base.push(waitUntil(t), f.construct(init))
}

// Pop removes and returns the oldest element, blocking while the queue is
// empty.
func (f *Fifo[T]) Pop() (T, error) {
	var v T
	err := f.base.pop(waitBlocking, f.take(&v))
	return v, err
}

// TryPop removes and returns the oldest element without blocking.
// Returns (zero value, ErrWouldBlock) if the queue is empty.
func (f *Fifo[T]) TryPop() (T, error) {
	var v T
	err := f.base.pop(waitTry, f.take(&v))
	return v, err
}

// PopFor removes and returns the oldest element, blocking for up to d while
// the queue is empty. Returns ErrTimedOut if nothing arrived in time.
func (f *Fifo[T]) PopFor(d time.Duration) (T, error) {
	var v T
	err := f.base.pop(waitFor(d), f.take(&v))
	return v, err
}

// PopUntil removes and returns the oldest element, blocking until the time
// point t while the queue is empty.
func (f *Fifo[T]) PopUntil(t time.Time) (T, error) {
	var v T
	err := f.base.pop(waitUntil(t), f.take(&v))
	return v, err
}

// PopContext removes and returns the oldest element, blocking while the
// queue is empty until ctx is done. Returns ctx.Err() on cancellation.
func (f *Fifo[T]) PopContext(ctx context.Context) (T, error) {
	var v T
	err := f.base.pop(waitCtx(ctx), f.take(&v))
	return v, err
}

// Drain removes and discards every element currently in the queue without
// blocking, resetting each slot, and reports how many were removed. Call it
// when retiring a queue that may still hold reference-carrying elements.
func (f *Fifo[T]) Drain() int {
	n := 0
	var v T
	for f.base.pop(waitTry, f.take(&v)) == nil {
		n++
	}
	return n
}

// Cap returns the queue capacity.
func (f *Fifo[T]) Cap() int {
	return f.base.cap()
}

// Len returns the number of elements currently in the queue. The count is
// exact but immediately stale under concurrency.
func (f *Fifo[T]) Len() int {
	return f.base.size()
}
