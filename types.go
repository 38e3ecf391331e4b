// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sbq

import (
	"context"
	"time"
)

// Queue is the combined producer-consumer interface for a blocking bounded
// queue of T.
//
// Both [Fifo] and [Message] satisfy Queue; a Message pushed through this
// interface uses priority 0 and therefore behaves as a FIFO.
//
// Unlike the lock-free queues of code.hybscloud.com/lfq, Len is provided:
// the paired-semaphore coordination tracks the element count exactly, so
// there is no accuracy caveat beyond ordinary staleness under concurrency.
type Queue[T any] interface {
	Producer[T]
	Consumer[T]
	Cap() int
	Len() int
}

// Producer is the push half of a queue.
//
// The five variants differ only in their waiting discipline when the queue
// is full: Push blocks, TryPush fails with ErrWouldBlock, PushFor and
// PushUntil fail with ErrTimedOut at their deadline, and PushContext fails
// with ctx.Err() on cancellation. A failed push leaves the queue unchanged.
type Producer[T any] interface {
	// Push adds an element, blocking while the queue is full.
	Push(v T) error

	// TryPush adds an element without blocking.
	// Returns ErrWouldBlock if the queue is full.
	TryPush(v T) error

	// PushFor adds an element, blocking for up to d while the queue is
	// full. Returns ErrTimedOut if no slot became free in time.
	PushFor(d time.Duration, v T) error

	// PushUntil adds an element, blocking until the time point t while
	// the queue is full. Returns ErrTimedOut if no slot became free in
	// time.
	PushUntil(t time.Time, v T) error

	// PushContext adds an element, blocking while the queue is full
	// until ctx is done. Returns ctx.Err() on cancellation.
	PushContext(ctx context.Context, v T) error
}

// Consumer is the pop half of a queue.
//
// The five variants mirror the Producer ones. A failed pop leaves the queue
// unchanged and returns the zero value of T.
type Consumer[T any] interface {
	// Pop removes and returns an element, blocking while the queue is
	// empty.
	Pop() (T, error)

	// TryPop removes and returns an element without blocking.
	// Returns (zero value, ErrWouldBlock) if the queue is empty.
	TryPop() (T, error)

	// PopFor removes and returns an element, blocking for up to d while
	// the queue is empty. Returns ErrTimedOut if nothing arrived in time.
	PopFor(d time.Duration) (T, error)

	// PopUntil removes and returns an element, blocking until the time
	// point t while the queue is empty.
	PopUntil(t time.Time) (T, error)

	// PopContext removes and returns an element, blocking while the
	// queue is empty until ctx is done. Returns ctx.Err() on
	// cancellation.
	PopContext(ctx context.Context) (T, error)
}

// RawQueue is the combined producer-consumer interface for a blocking
// bounded queue of fixed-size byte records.
//
// Both [RawFifo] and [RawMessage] satisfy RawQueue. Every operation moves
// exactly ElementSize bytes; any other buffer length fails with
// ErrMessageSize before the queue is touched.
type RawQueue interface {
	RawProducer
	RawConsumer
	ElementSize() int
	Cap() int
	Len() int
}

// RawProducer is the push half of a raw queue. The record is copied out of
// data before the call returns; the caller may reuse the buffer.
type RawProducer interface {
	// Push copies one record in, blocking while the queue is full.
	Push(data []byte) error

	// TryPush copies one record in without blocking.
	// Returns ErrWouldBlock if the queue is full.
	TryPush(data []byte) error

	// PushFor copies one record in, blocking for up to d while the
	// queue is full.
	PushFor(d time.Duration, data []byte) error

	// PushUntil copies one record in, blocking until the time point t
	// while the queue is full.
	PushUntil(t time.Time, data []byte) error

	// PushContext copies one record in, blocking while the queue is
	// full until ctx is done.
	PushContext(ctx context.Context, data []byte) error
}

// RawConsumer is the pop half of a raw queue. The record is copied into the
// caller's buffer, which must be exactly ElementSize bytes long.
type RawConsumer interface {
	// Pop copies the oldest record into buf, blocking while the queue
	// is empty.
	Pop(buf []byte) error

	// TryPop copies the oldest record into buf without blocking.
	// Returns ErrWouldBlock if the queue is empty.
	TryPop(buf []byte) error

	// PopFor copies the oldest record into buf, blocking for up to d
	// while the queue is empty.
	PopFor(d time.Duration, buf []byte) error

	// PopUntil copies the oldest record into buf, blocking until the
	// time point t while the queue is empty.
	PopUntil(t time.Time, buf []byte) error

	// PopContext copies the oldest record into buf, blocking while the
	// queue is empty until ctx is done.
	PopContext(ctx context.Context, buf []byte) error
}
