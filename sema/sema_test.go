// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sema_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/twitsprout/tools/mock"

	"code.hybscloud.com/sbq/sema"
)

func TestNewClampsValue(t *testing.T) {
	s := sema.New(10, 4)
	if s.Value() != 4 {
		t.Fatalf("Value: got %d, want 4", s.Value())
	}
	if s.Max() != 4 {
		t.Fatalf("Max: got %d, want 4", s.Max())
	}
}

func TestTryWait(t *testing.T) {
	s := sema.New(2, 2)

	for range 2 {
		if err := s.TryWait(); err != nil {
			t.Fatalf("TryWait: %v", err)
		}
	}
	if err := s.TryWait(); !errors.Is(err, sema.ErrWouldBlock) {
		t.Fatalf("TryWait on empty: got %v, want ErrWouldBlock", err)
	}
	if s.Value() != 0 {
		t.Fatalf("Value: got %d, want 0", s.Value())
	}
}

func TestPostOverflow(t *testing.T) {
	s := sema.New(1, 1)
	if err := s.Post(); !errors.Is(err, sema.ErrOverflow) {
		t.Fatalf("Post at max: got %v, want ErrOverflow", err)
	}
	if s.Value() != 1 {
		t.Fatalf("Value after failed Post: got %d, want 1", s.Value())
	}
}

func TestWaitPost(t *testing.T) {
	s := sema.New(0, 1)

	done := make(chan error, 1)
	go func() {
		done <- s.Wait()
	}()

	time.Sleep(5 * time.Millisecond)
	if err := s.Post(); err != nil {
		t.Fatalf("Post: %v", err)
	}
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Wait: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Wait never returned")
	}
	// Direct handoff: the permit went to the waiter, not the counter.
	if s.Value() != 0 {
		t.Fatalf("Value: got %d, want 0", s.Value())
	}
}

func TestWaitForTimesOut(t *testing.T) {
	s := sema.New(0, 1)

	start := time.Now()
	if err := s.WaitFor(10 * time.Millisecond); !errors.Is(err, sema.ErrTimedOut) {
		t.Fatalf("WaitFor: got %v, want ErrTimedOut", err)
	}
	if elapsed := time.Since(start); elapsed < 10*time.Millisecond {
		t.Fatalf("WaitFor returned after %v, want >= 10ms", elapsed)
	}

	// A timed-out waiter must be off the queue: a post now feeds the
	// counter, not a ghost.
	if err := s.Post(); err != nil {
		t.Fatalf("Post: %v", err)
	}
	if s.Value() != 1 {
		t.Fatalf("Value: got %d, want 1", s.Value())
	}
}

func TestWaitForZeroIsTry(t *testing.T) {
	s := sema.New(1, 1)
	if err := s.WaitFor(0); err != nil {
		t.Fatalf("WaitFor(0) with permit: %v", err)
	}
	if err := s.WaitFor(0); !errors.Is(err, sema.ErrTimedOut) {
		t.Fatalf("WaitFor(0) empty: got %v, want ErrTimedOut", err)
	}
	if err := s.WaitFor(-time.Hour); !errors.Is(err, sema.ErrTimedOut) {
		t.Fatalf("WaitFor(<0) empty: got %v, want ErrTimedOut", err)
	}
}

func TestWaitUntilUsesClock(t *testing.T) {
	base := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	clk := &mock.Clock{NowFn: func() time.Time { return base }}
	s := sema.New(0, 1, sema.WithClock(clk))

	if err := s.WaitUntil(base); !errors.Is(err, sema.ErrTimedOut) {
		t.Fatalf("WaitUntil(now): got %v, want ErrTimedOut", err)
	}
	if err := s.WaitUntil(base.Add(-time.Minute)); !errors.Is(err, sema.ErrTimedOut) {
		t.Fatalf("WaitUntil(past): got %v, want ErrTimedOut", err)
	}
}

func TestWaitContextCanceled(t *testing.T) {
	s := sema.New(0, 1)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- s.WaitContext(ctx)
	}()

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("WaitContext: got %v, want context.Canceled", err)
	}
}

// TestFifoHandoff verifies waiters are released in arrival order and that a
// TryWait cannot steal a permit while a waiter is queued.
func TestFifoHandoff(t *testing.T) {
	s := sema.New(0, 4)

	const waiters = 4
	order := make(chan int, waiters)
	for i := range waiters {
		var ready sync.WaitGroup
		ready.Add(1)
		go func(id int) {
			ready.Done()
			if err := s.Wait(); err == nil {
				order <- id
			}
		}(i)
		ready.Wait()
		time.Sleep(2 * time.Millisecond) // establish arrival order
	}

	for i := range waiters {
		// With waiters queued, TryWait must not jump the line.
		if err := s.TryWait(); !errors.Is(err, sema.ErrWouldBlock) {
			t.Fatalf("TryWait with queued waiters: got %v, want ErrWouldBlock", err)
		}
		if err := s.Post(); err != nil {
			t.Fatalf("Post: %v", err)
		}
		select {
		case id := <-order:
			if id != i {
				t.Fatalf("handoff order: got waiter %d, want %d", id, i)
			}
		case <-time.After(time.Second):
			t.Fatalf("waiter %d never woke", i)
		}
	}
}

func TestNewPanicsOnNegative(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("New(-1, 1): expected panic")
		}
	}()
	sema.New(-1, 1)
}
