// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sbq

import (
	"context"
	"time"

	"github.com/twitsprout/tools/clock"
)

// RawFifo is a blocking bounded FIFO queue of fixed-size byte records.
//
// Every push and pop moves exactly ElementSize bytes; a buffer of any other
// length is rejected with ErrMessageSize before the queue is touched. Raw
// queues are for plain data — records are copied byte-for-byte with no
// per-element bookkeeping, which makes them usable for wire frames, sensor
// samples, or any trivially-copyable struct serialized by the caller.
type RawFifo struct {
	base        fifoBase
	buffer      []byte
	elementSize int
}

// NewRawFifo creates a raw FIFO queue holding capacity records of
// elementSize bytes each. Panics if elementSize < 1 or capacity < 1.
func NewRawFifo(elementSize, capacity int) *RawFifo {
	if elementSize < 1 {
		panic("sbq: element size must be >= 1")
	}
	if capacity < 1 {
		panic("sbq: capacity must be >= 1")
	}
	return newRawFifo(make([]byte, elementSize*capacity), elementSize, &clock.Default{})
}

// NewRawFifoFrom creates a raw FIFO queue over caller-supplied storage.
// The capacity is len(buf)/elementSize. Panics if elementSize < 1 or if
// len(buf) is zero or not a multiple of elementSize.
func NewRawFifoFrom(buf []byte, elementSize int) *RawFifo {
	if elementSize < 1 {
		panic("sbq: element size must be >= 1")
	}
	if len(buf) == 0 || len(buf)%elementSize != 0 {
		panic("sbq: storage not a multiple of element size")
	}
	return newRawFifo(buf, elementSize, &clock.Default{})
}

func newRawFifo(buf []byte, elementSize int, clk clock.Clock) *RawFifo {
	return &RawFifo{
		base:        newFifoBase(len(buf)/elementSize, clk),
		buffer:      buf,
		elementSize: elementSize,
	}
}

// slot returns the storage of one record.
func (r *RawFifo) slot(i int) []byte {
	off := i * r.elementSize
	return r.buffer[off : off+r.elementSize]
}

func (r *RawFifo) storeIn(data []byte) func(slot int) {
	return func(slot int) {
		copy(r.slot(slot), data)
	}
}

func (r *RawFifo) storeOut(buf []byte) func(slot int) {
	return func(slot int) {
		copy(buf, r.slot(slot))
	}
}

// Push copies one record into the queue, blocking while it is full.
// Returns ErrMessageSize if len(data) != ElementSize.
func (r *RawFifo) Push(data []byte) error {
	if len(data) != r.elementSize {
		return ErrMessageSize
	}
	return r.base.push(waitBlocking, r.storeIn(data))
}

// TryPush copies one record into the queue without blocking.
// Returns ErrWouldBlock if the queue is full.
func (r *RawFifo) TryPush(data []byte) error {
	if len(data) != r.elementSize {
		return ErrMessageSize
	}
	return r.base.push(waitTry, r.storeIn(data))
}

// PushFor copies one record into the queue, blocking for up to d while it
// is full. Returns ErrTimedOut if no slot became free in time.
func (r *RawFifo) PushFor(d time.Duration, data []byte) error {
	if len(data) != r.elementSize {
		return ErrMessageSize
	}
	return r.base.push(waitFor(d), r.storeIn(data))
}

// PushUntil copies one record into the queue, blocking until the time point
// t while it is full.
func (r *RawFifo) PushUntil(t time.Time, data []byte) error {
	if len(data) != r.elementSize {
		return ErrMessageSize
	}
	return r.base.push(waitUntil(t), r.storeIn(data))
}

// PushContext copies one record into the queue, blocking while it is full
// until ctx is done. Returns ctx.Err() on cancellation.
func (r *RawFifo) PushContext(ctx context.Context, data []byte) error {
	if len(data) != r.elementSize {
		return ErrMessageSize
	}
	return r.base.push(waitCtx(ctx), r.storeIn(data))
}

// Pop copies the oldest record into buf, blocking while the queue is empty.
// Returns ErrMessageSize if len(buf) != ElementSize.
func (r *RawFifo) Pop(buf []byte) error {
	if len(buf) != r.elementSize {
		return ErrMessageSize
	}
	return r.base.pop(waitBlocking, r.storeOut(buf))
}

// TryPop copies the oldest record into buf without blocking.
// Returns ErrWouldBlock if the queue is empty.
func (r *RawFifo) TryPop(buf []byte) error {
	if len(buf) != r.elementSize {
		return ErrMessageSize
	}
	return r.base.pop(waitTry, r.storeOut(buf))
}

// PopFor copies the oldest record into buf, blocking for up to d while the
// queue is empty. Returns ErrTimedOut if nothing arrived in time.
func (r *RawFifo) PopFor(d time.Duration, buf []byte) error {
	if len(buf) != r.elementSize {
		return ErrMessageSize
	}
	return r.base.pop(waitFor(d), r.storeOut(buf))
}

// PopUntil copies the oldest record into buf, blocking until the time point
// t while the queue is empty.
func (r *RawFifo) PopUntil(t time.Time, buf []byte) error {
	if len(buf) != r.elementSize {
		return ErrMessageSize
	}
	return r.base.pop(waitUntil(t), r.storeOut(buf))
}

// PopContext copies the oldest record into buf, blocking while the queue is
// empty until ctx is done. Returns ctx.Err() on cancellation.
func (r *RawFifo) PopContext(ctx context.Context, buf []byte) error {
	if len(buf) != r.elementSize {
		return ErrMessageSize
	}
	return r.base.pop(waitCtx(ctx), r.storeOut(buf))
}

// ElementSize returns the fixed record size in bytes.
func (r *RawFifo) ElementSize() int {
	return r.elementSize
}

// Cap returns the queue capacity in records.
func (r *RawFifo) Cap() int {
	return r.base.cap()
}

// Len returns the number of records currently in the queue.
func (r *RawFifo) Len() int {
	return r.base.size()
}
