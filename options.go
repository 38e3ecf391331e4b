// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sbq

import (
	"github.com/twitsprout/tools/clock"
)

// Options configures queue creation.
type Options struct {
	// Ordering (determines queue type)
	prioritized bool

	// Time source for the timed wait variants
	clk clock.Clock

	// Capacity (exact, not rounded)
	capacity int
}

// Builder creates queues with fluent configuration.
//
// Example:
//
//	// FIFO queue
//	q := sbq.Build[Event](sbq.New(64))
//
//	// Priority queue
//	q := sbq.BuildMessage[Request](sbq.New(64).Prioritized())
//
//	// Raw priority queue with an injected clock
//	q := sbq.New(16).Prioritized().Clock(clk).BuildRaw(8)
type Builder struct {
	opts Options
}

// New creates a queue builder with the given capacity.
//
// Capacity is exact — a queue built with capacity 4 holds at most 4
// elements. Panics if capacity < 1.
func New(capacity int) *Builder {
	if capacity < 1 {
		panic("sbq: capacity must be >= 1")
	}
	return &Builder{opts: Options{capacity: capacity, clk: &clock.Default{}}}
}

// Prioritized selects the priority-ordered queue type: elements carry a
// priority in 0..255, higher pops first, FIFO among equals.
func (b *Builder) Prioritized() *Builder {
	b.opts.prioritized = true
	return b
}

// Clock sets the time source used by the *Until wait variants to compute
// the remaining duration. Defaults to the wall clock. Injecting a mock
// clock makes deadline behavior deterministic in tests.
func (b *Builder) Clock(c clock.Clock) *Builder {
	b.opts.clk = c
	return b
}

// Build creates a Queue[T] of the configured type:
//
//	default       → *Fifo[T]
//	Prioritized() → *Message[T] (priority 0 through the Queue interface)
//
// For the concrete types, use BuildFifo or BuildMessage.
func Build[T any](b *Builder) Queue[T] {
	if b.opts.prioritized {
		return newMessage[T](make([]T, b.opts.capacity), b.opts.clk)
	}
	return newFifo[T](make([]T, b.opts.capacity), b.opts.clk)
}

// BuildFifo creates a *Fifo[T].
// Panics if the builder is configured with Prioritized().
func BuildFifo[T any](b *Builder) *Fifo[T] {
	if b.opts.prioritized {
		panic("sbq: BuildFifo requires a builder without Prioritized()")
	}
	return newFifo[T](make([]T, b.opts.capacity), b.opts.clk)
}

// BuildMessage creates a *Message[T].
// Panics if the builder is not configured with Prioritized().
func BuildMessage[T any](b *Builder) *Message[T] {
	if !b.opts.prioritized {
		panic("sbq: BuildMessage requires Prioritized()")
	}
	return newMessage[T](make([]T, b.opts.capacity), b.opts.clk)
}

// BuildRaw creates a RawQueue of the configured type for records of
// elementSize bytes:
//
//	default       → *RawFifo
//	Prioritized() → *RawMessage (priority 0 through the RawQueue interface)
func (b *Builder) BuildRaw(elementSize int) RawQueue {
	if b.opts.prioritized {
		return b.BuildRawMessage(elementSize)
	}
	return b.BuildRawFifo(elementSize)
}

// BuildRawFifo creates a *RawFifo for records of elementSize bytes.
// Panics if the builder is configured with Prioritized().
func (b *Builder) BuildRawFifo(elementSize int) *RawFifo {
	if b.opts.prioritized {
		panic("sbq: BuildRawFifo requires a builder without Prioritized()")
	}
	if elementSize < 1 {
		panic("sbq: element size must be >= 1")
	}
	return newRawFifo(make([]byte, elementSize*b.opts.capacity), elementSize, b.opts.clk)
}

// BuildRawMessage creates a *RawMessage for records of elementSize bytes.
// Panics if the builder is not configured with Prioritized().
func (b *Builder) BuildRawMessage(elementSize int) *RawMessage {
	if !b.opts.prioritized {
		panic("sbq: BuildRawMessage requires Prioritized()")
	}
	if elementSize < 1 {
		panic("sbq: element size must be >= 1")
	}
	return newRawMessage(make([]byte, elementSize*b.opts.capacity), elementSize, b.opts.clk)
}
