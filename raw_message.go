// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sbq

import (
	"context"
	"time"

	"github.com/twitsprout/tools/clock"
)

// RawMessage is a blocking bounded priority queue of fixed-size byte
// records.
//
// It combines the record discipline of RawFifo (exact-size buffers,
// byte-for-byte copies, ErrMessageSize on mismatch) with the ordering of
// Message (higher priority pops first, FIFO among equals). The methods
// without Prio use priority 0 and discard the popped priority, so RawMessage
// satisfies [RawQueue].
type RawMessage struct {
	base        messageBase
	buffer      []byte
	elementSize int
}

// NewRawMessage creates a raw priority queue holding capacity records of
// elementSize bytes each. Panics if elementSize < 1 or capacity < 1.
func NewRawMessage(elementSize, capacity int) *RawMessage {
	if elementSize < 1 {
		panic("sbq: element size must be >= 1")
	}
	if capacity < 1 {
		panic("sbq: capacity must be >= 1")
	}
	return newRawMessage(make([]byte, elementSize*capacity), elementSize, &clock.Default{})
}

// NewRawMessageFrom creates a raw priority queue over caller-supplied value
// storage. The capacity is len(buf)/elementSize. Panics if elementSize < 1
// or if len(buf) is zero or not a multiple of elementSize.
func NewRawMessageFrom(buf []byte, elementSize int) *RawMessage {
	if elementSize < 1 {
		panic("sbq: element size must be >= 1")
	}
	if len(buf) == 0 || len(buf)%elementSize != 0 {
		panic("sbq: storage not a multiple of element size")
	}
	return newRawMessage(buf, elementSize, &clock.Default{})
}

func newRawMessage(buf []byte, elementSize int, clk clock.Clock) *RawMessage {
	return &RawMessage{
		base:        newMessageBase(len(buf)/elementSize, clk),
		buffer:      buf,
		elementSize: elementSize,
	}
}

func (r *RawMessage) slot(i int) []byte {
	off := i * r.elementSize
	return r.buffer[off : off+r.elementSize]
}

func (r *RawMessage) storeIn(data []byte) func(slot int) {
	return func(slot int) {
		copy(r.slot(slot), data)
	}
}

func (r *RawMessage) storeOut(buf []byte) func(slot int) {
	return func(slot int) {
		copy(buf, r.slot(slot))
	}
}

// PushPrio copies one record into the queue with the given priority,
// blocking while the queue is full.
// Returns ErrMessageSize if len(data) != ElementSize.
func (r *RawMessage) PushPrio(priority uint8, data []byte) error {
	if len(data) != r.elementSize {
		return ErrMessageSize
	}
	return r.base.push(waitBlocking, priority, r.storeIn(data))
}

// TryPushPrio copies one record into the queue with the given priority
// without blocking. Returns ErrWouldBlock if the queue is full.
func (r *RawMessage) TryPushPrio(priority uint8, data []byte) error {
	if len(data) != r.elementSize {
		return ErrMessageSize
	}
	return r.base.push(waitTry, priority, r.storeIn(data))
}

// PushPrioFor copies one record into the queue with the given priority,
// blocking for up to d while the queue is full.
func (r *RawMessage) PushPrioFor(d time.Duration, priority uint8, data []byte) error {
	if len(data) != r.elementSize {
		return ErrMessageSize
	}
	return r.base.push(waitFor(d), priority, r.storeIn(data))
}

// PushPrioUntil copies one record into the queue with the given priority,
// blocking until the time point t while the queue is full.
func (r *RawMessage) PushPrioUntil(t time.Time, priority uint8, data []byte) error {
	if len(data) != r.elementSize {
		return ErrMessageSize
	}
	return r.base.push(waitUntil(t), priority, r.storeIn(data))
}

// PushPrioContext copies one record into the queue with the given priority,
// blocking while the queue is full until ctx is done.
func (r *RawMessage) PushPrioContext(ctx context.Context, priority uint8, data []byte) error {
	if len(data) != r.elementSize {
		return ErrMessageSize
	}
	return r.base.push(waitCtx(ctx), priority, r.storeIn(data))
}

// PopPrio copies the oldest record of the highest priority present into buf
// and returns its priority, blocking while the queue is empty.
// Returns ErrMessageSize if len(buf) != ElementSize.
func (r *RawMessage) PopPrio(buf []byte) (uint8, error) {
	if len(buf) != r.elementSize {
		return 0, ErrMessageSize
	}
	return r.base.pop(waitBlocking, r.storeOut(buf))
}

// TryPopPrio copies the oldest record of the highest priority present into
// buf without blocking. Returns ErrWouldBlock if the queue is empty.
func (r *RawMessage) TryPopPrio(buf []byte) (uint8, error) {
	if len(buf) != r.elementSize {
		return 0, ErrMessageSize
	}
	return r.base.pop(waitTry, r.storeOut(buf))
}

// PopPrioFor is PopPrio with a deadline of now+d.
// Returns ErrTimedOut if nothing arrived in time.
func (r *RawMessage) PopPrioFor(d time.Duration, buf []byte) (uint8, error) {
	if len(buf) != r.elementSize {
		return 0, ErrMessageSize
	}
	return r.base.pop(waitFor(d), r.storeOut(buf))
}

// PopPrioUntil is PopPrio with a deadline at the time point t.
func (r *RawMessage) PopPrioUntil(t time.Time, buf []byte) (uint8, error) {
	if len(buf) != r.elementSize {
		return 0, ErrMessageSize
	}
	return r.base.pop(waitUntil(t), r.storeOut(buf))
}

// PopPrioContext is PopPrio bounded by ctx.
func (r *RawMessage) PopPrioContext(ctx context.Context, buf []byte) (uint8, error) {
	if len(buf) != r.elementSize {
		return 0, ErrMessageSize
	}
	return r.base.pop(waitCtx(ctx), r.storeOut(buf))
}

// Push copies one record in with priority 0, blocking while the queue is
// full.
func (r *RawMessage) Push(data []byte) error {
	return r.PushPrio(0, data)
}

// TryPush copies one record in with priority 0 without blocking.
func (r *RawMessage) TryPush(data []byte) error {
	return r.TryPushPrio(0, data)
}

// PushFor copies one record in with priority 0, blocking for up to d.
func (r *RawMessage) PushFor(d time.Duration, data []byte) error {
	return r.PushPrioFor(d, 0, data)
}

// PushUntil copies one record in with priority 0, blocking until t.
func (r *RawMessage) PushUntil(t time.Time, data []byte) error {
	return r.PushPrioUntil(t, 0, data)
}

// PushContext copies one record in with priority 0, bounded by ctx.
func (r *RawMessage) PushContext(ctx context.Context, data []byte) error {
	return r.PushPrioContext(ctx, 0, data)
}

// Pop copies the oldest record of the highest priority present into buf,
// discarding the priority.
func (r *RawMessage) Pop(buf []byte) error {
	_, err := r.PopPrio(buf)
	return err
}

// TryPop is Pop without blocking.
func (r *RawMessage) TryPop(buf []byte) error {
	_, err := r.TryPopPrio(buf)
	return err
}

// PopFor is Pop with a deadline of now+d.
func (r *RawMessage) PopFor(d time.Duration, buf []byte) error {
	_, err := r.PopPrioFor(d, buf)
	return err
}

// PopUntil is Pop with a deadline at the time point t.
func (r *RawMessage) PopUntil(t time.Time, buf []byte) error {
	_, err := r.PopPrioUntil(t, buf)
	return err
}

// PopContext is Pop bounded by ctx.
func (r *RawMessage) PopContext(ctx context.Context, buf []byte) error {
	_, err := r.PopPrioContext(ctx, buf)
	return err
}

// ElementSize returns the fixed record size in bytes.
func (r *RawMessage) ElementSize() int {
	return r.elementSize
}

// Cap returns the queue capacity in records.
func (r *RawMessage) Cap() int {
	return r.base.cap()
}

// Len returns the number of records currently in the queue.
func (r *RawMessage) Len() int {
	return r.base.size()
}
