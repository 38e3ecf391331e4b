// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sbq

import (
	"context"
	"time"

	"github.com/twitsprout/tools/clock"
)

// Message is a blocking bounded priority queue for elements of type T.
//
// Every element carries a priority in 0..255; higher values are more urgent.
// Pop always returns the oldest element of the highest priority present.
// Elements of equal priority pop in insertion order, so a Message used with
// a single priority behaves exactly like a Fifo.
//
// The methods without Prio in their name use priority 0 on push and discard
// the priority on pop; they exist so Message satisfies [Queue]. The *Prio
// family carries explicit priorities.
type Message[T any] struct {
	base   messageBase
	buffer []T
}

// NewMessage creates a priority queue with the given capacity.
// Panics if capacity < 1.
func NewMessage[T any](capacity int) *Message[T] {
	if capacity < 1 {
		panic("sbq: capacity must be >= 1")
	}
	return newMessage[T](make([]T, capacity), &clock.Default{})
}

// NewMessageFrom creates a priority queue over caller-supplied value
// storage. The queue's capacity is len(buf). The queue borrows buf for its
// lifetime. Panics if buf is empty.
func NewMessageFrom[T any](buf []T) *Message[T] {
	if len(buf) == 0 {
		panic("sbq: empty storage")
	}
	return newMessage[T](buf, &clock.Default{})
}

func newMessage[T any](buf []T, clk clock.Clock) *Message[T] {
	return &Message[T]{
		base:   newMessageBase(len(buf), clk),
		buffer: buf,
	}
}

func (m *Message[T]) store(v *T) func(slot int) {
	return func(slot int) {
		m.buffer[slot] = *v
	}
}

func (m *Message[T]) take(v *T) func(slot int) {
	return func(slot int) {
		var zero T
		*v = m.buffer[slot]
		m.buffer[slot] = zero
	}
}

func (m *Message[T]) construct(init func(*T)) func(slot int) {
	return func(slot int) {
		var zero T
		m.buffer[slot] = zero
		init(&m.buffer[slot])
	}
}

// PushPrio adds an element with the given priority, blocking while the
// queue is full.
func (m *Message[T]) PushPrio(priority uint8, v T) error {
	return m.base.push(waitBlocking, priority, m.store(&v))
}

// TryPushPrio adds an element with the given priority without blocking.
// Returns ErrWouldBlock if the queue is full.
func (m *Message[T]) TryPushPrio(priority uint8, v T) error {
	return m.base.push(waitTry, priority, m.store(&v))
}

// PushPrioFor adds an element with the given priority, blocking for up to d
// while the queue is full. Returns ErrTimedOut if no slot became free in
// time.
func (m *Message[T]) PushPrioFor(d time.Duration, priority uint8, v T) error {
	return m.base.push(waitFor(d), priority, m.store(&v))
}

// PushPrioUntil adds an element with the given priority, blocking until the
// time point t while the queue is full.
func (m *Message[T]) PushPrioUntil(t time.Time, priority uint8, v T) error {
	return m.base.push(waitUntil(t), priority, m.store(&v))
}

// PushPrioContext adds an element with the given priority, blocking while
// the queue is full until ctx is done. Returns ctx.Err() on cancellation.
func (m *Message[T]) PushPrioContext(ctx context.Context, priority uint8, v T) error {
	return m.base.push(waitCtx(ctx), priority, m.store(&v))
}

// EmplacePrio constructs an element with the given priority in place: the
// slot is reset to the zero value and init is called with its address. init
// runs inside the queue's critical section and must not block or touch the
// queue.
func (m *Message[T]) EmplacePrio(priority uint8, init func(*T)) error {
	return m.base.push(waitBlocking, priority, m.construct(init))
}

// TryEmplacePrio constructs an element with the given priority in place
// without blocking. Returns ErrWouldBlock if the queue is full.
func (m *Message[T]) TryEmplacePrio(priority uint8, init func(*T)) error {
	return m.base.push(waitTry, priority, m.construct(init))
}

// PopPrio removes and returns the oldest element of the highest priority
// present along with its priority, blocking while the queue is empty.
func (m *Message[T]) PopPrio() (uint8, T, error) {
	var v T
	priority, err := m.base.pop(waitBlocking, m.take(&v))
	return priority, v, err
}

// TryPopPrio removes and returns the oldest element of the highest priority
// present without blocking. Returns ErrWouldBlock if the queue is empty.
func (m *Message[T]) TryPopPrio() (uint8, T, error) {
	var v T
	priority, err := m.base.pop(waitTry, m.take(&v))
	return priority, v, err
}

// PopPrioFor is PopPrio with a deadline of now+d.
// Returns ErrTimedOut if nothing arrived in time.
func (m *Message[T]) PopPrioFor(d time.Duration) (uint8, T, error) {
	var v T
	priority, err := m.base.pop(waitFor(d), m.take(&v))
	return priority, v, err
}

// PopPrioUntil is PopPrio with a deadline at the time point t.
func (m *Message[T]) PopPrioUntil(t time.Time) (uint8, T, error) {
	var v T
	priority, err := m.base.pop(waitUntil(t), m.take(&v))
	return priority, v, err
}

// PopPrioContext is PopPrio bounded by ctx.
// Returns ctx.Err() on cancellation.
func (m *Message[T]) PopPrioContext(ctx context.Context) (uint8, T, error) {
	var v T
	priority, err := m.base.pop(waitCtx(ctx), m.take(&v))
	return priority, v, err
}

// Push adds an element with priority 0, blocking while the queue is full.
func (m *Message[T]) Push(v T) error {
	return m.PushPrio(0, v)
}

// TryPush adds an element with priority 0 without blocking.
func (m *Message[T]) TryPush(v T) error {
	return m.TryPushPrio(0, v)
}

// PushFor adds an element with priority 0, blocking for up to d.
func (m *Message[T]) PushFor(d time.Duration, v T) error {
	return m.PushPrioFor(d, 0, v)
}

// PushUntil adds an element with priority 0, blocking until t.
func (m *Message[T]) PushUntil(t time.Time, v T) error {
	return m.PushPrioUntil(t, 0, v)
}

// PushContext adds an element with priority 0, bounded by ctx.
func (m *Message[T]) PushContext(ctx context.Context, v T) error {
	return m.PushPrioContext(ctx, 0, v)
}

// Pop removes and returns the oldest element of the highest priority
// present, discarding the priority.
func (m *Message[T]) Pop() (T, error) {
	_, v, err := m.PopPrio()
	return v, err
}

// TryPop is Pop without blocking.
func (m *Message[T]) TryPop() (T, error) {
	_, v, err := m.TryPopPrio()
	return v, err
}

// PopFor is Pop with a deadline of now+d.
func (m *Message[T]) PopFor(d time.Duration) (T, error) {
	_, v, err := m.PopPrioFor(d)
	return v, err
}

// PopUntil is Pop with a deadline at the time point t.
func (m *Message[T]) PopUntil(t time.Time) (T, error) {
	_, v, err := m.PopPrioUntil(t)
	return v, err
}

// PopContext is Pop bounded by ctx.
func (m *Message[T]) PopContext(ctx context.Context) (T, error) {
	_, v, err := m.PopPrioContext(ctx)
	return v, err
}

// Drain removes and discards every element currently in the queue without
// blocking, resetting each slot, and reports how many were removed.
func (m *Message[T]) Drain() int {
	n := 0
	var v T
	for {
		if _, err := m.base.pop(waitTry, m.take(&v)); err != nil {
			return n
		}
		n++
	}
}

// Cap returns the queue capacity.
func (m *Message[T]) Cap() int {
	return m.base.cap()
}

// Len returns the number of elements currently in the queue. The count is
// exact but immediately stale under concurrency.
func (m *Message[T]) Len() int {
	return m.base.size()
}
