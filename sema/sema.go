// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package sema provides a counting semaphore with try, timed and
// context-aware wait variants.
//
// The semaphore is the coordination primitive underlying the queues in
// code.hybscloud.com/sbq: a pair of them implements exact bounded-buffer
// backpressure (one counts free slots, the other occupied slots).
//
// Waiters are released in strict FIFO order. Post hands its permit directly
// to the oldest waiter, so a late TryWait can never steal a permit from a
// goroutine that is already blocked.
//
// # Basic Usage
//
//	s := sema.New(0, 8)
//
//	// Consumer side
//	if err := s.Wait(); err != nil { ... }
//
//	// Producer side
//	if err := s.Post(); err != nil { ... }
//
// Timed and non-blocking variants:
//
//	err := s.TryWait()                        // ErrWouldBlock if empty
//	err = s.WaitFor(10 * time.Millisecond)    // ErrTimedOut on expiry
//	err = s.WaitUntil(deadline)               // deadline against the clock
//	err = s.WaitContext(ctx)                  // ctx.Err() on cancellation
package sema

import (
	"container/list"
	"context"
	"errors"
	"sync"
	"time"

	"code.hybscloud.com/iox"
	"github.com/twitsprout/tools/clock"
)

// ErrWouldBlock indicates a TryWait found no permit available.
//
// This is an alias for [iox.ErrWouldBlock] for ecosystem consistency.
var ErrWouldBlock = iox.ErrWouldBlock

// ErrTimedOut indicates a WaitFor or WaitUntil deadline expired before a
// permit became available. Like ErrWouldBlock it is a control flow signal,
// not a failure.
var ErrTimedOut = errors.New("sema: timed out")

// ErrOverflow indicates a Post found the semaphore already at its maximum
// value. The semaphore is left unchanged.
var ErrOverflow = errors.New("sema: overflow")

// waiter is one goroutine blocked in a wait variant. Its ready channel is
// closed by Post when the permit is handed over.
type waiter struct {
	ready chan struct{}
}

// Semaphore is a counting semaphore with a fixed maximum value.
//
// The zero value is not usable; construct with [New].
type Semaphore struct {
	mu      sync.Mutex
	value   int
	max     int
	waiters list.List // of *waiter, FIFO
	clk     clock.Clock
}

// Option configures a Semaphore.
type Option func(*Semaphore)

// WithClock sets the time source used by WaitUntil to compute the remaining
// duration. Defaults to the wall clock.
func WithClock(c clock.Clock) Option {
	return func(s *Semaphore) {
		s.clk = c
	}
}

// New creates a semaphore with the given initial and maximum value.
// The initial value is clamped to max. Panics if max < 0 or value < 0.
func New(value, max int, opts ...Option) *Semaphore {
	if value < 0 || max < 0 {
		panic("sema: negative value")
	}
	if value > max {
		value = max
	}
	s := &Semaphore{
		value: value,
		max:   max,
		clk:   &clock.Default{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Wait blocks until a permit is available and takes it.
func (s *Semaphore) Wait() error {
	return s.WaitContext(context.Background())
}

// WaitContext blocks until a permit is available or ctx is done.
// On cancellation it returns ctx.Err() and leaves the semaphore unchanged.
//
// If ctx is already done, WaitContext may still succeed without blocking.
func (s *Semaphore) WaitContext(ctx context.Context) error {
	s.mu.Lock()
	if s.value > 0 && s.waiters.Len() == 0 {
		s.value--
		s.mu.Unlock()
		return nil
	}
	w := &waiter{ready: make(chan struct{})}
	elem := s.waiters.PushBack(w)
	s.mu.Unlock()

	select {
	case <-w.ready:
		return nil
	case <-ctx.Done():
		return s.abandon(elem, w, ctx.Err())
	}
}

// TryWait takes a permit without blocking.
// Returns ErrWouldBlock if no permit is available.
func (s *Semaphore) TryWait() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.value == 0 || s.waiters.Len() != 0 {
		return ErrWouldBlock
	}
	s.value--
	return nil
}

// WaitFor blocks for up to d until a permit is available and takes it.
// Returns ErrTimedOut if the duration elapses first. A non-positive d
// degenerates to a single non-blocking attempt.
func (s *Semaphore) WaitFor(d time.Duration) error {
	s.mu.Lock()
	if s.value > 0 && s.waiters.Len() == 0 {
		s.value--
		s.mu.Unlock()
		return nil
	}
	if d <= 0 {
		s.mu.Unlock()
		return ErrTimedOut
	}
	w := &waiter{ready: make(chan struct{})}
	elem := s.waiters.PushBack(w)
	s.mu.Unlock()

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-w.ready:
		return nil
	case <-timer.C:
		return s.abandon(elem, w, ErrTimedOut)
	}
}

// WaitUntil blocks until the time point t, taking a permit as soon as one
// is available. Returns ErrTimedOut if t is reached first. The remaining
// duration is computed against the semaphore's clock, so a t at or before
// now degenerates to a single non-blocking attempt.
func (s *Semaphore) WaitUntil(t time.Time) error {
	return s.WaitFor(t.Sub(s.clk.Now()))
}

// Post releases one permit. If a goroutine is blocked in a wait variant,
// the permit is handed to the oldest one directly; otherwise the value is
// incremented. Returns ErrOverflow if the semaphore is already at its
// maximum value.
func (s *Semaphore) Post() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if next := s.waiters.Front(); next != nil {
		s.waiters.Remove(next)
		close(next.Value.(*waiter).ready)
		return nil
	}
	if s.value == s.max {
		return ErrOverflow
	}
	s.value++
	return nil
}

// Value returns the current number of available permits. The result is
// immediately stale in the presence of concurrent operations.
func (s *Semaphore) Value() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Max returns the maximum value the semaphore can hold.
func (s *Semaphore) Max() int {
	return s.max
}

// abandon removes a waiter after a timeout or cancellation. If Post handed
// over the permit before the waiter could be removed, the wait is treated
// as successful rather than re-queueing the permit.
func (s *Semaphore) abandon(elem *list.Element, w *waiter, err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	select {
	case <-w.ready:
		return nil
	default:
		s.waiters.Remove(elem)
		return err
	}
}
