// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sbq_test

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"code.hybscloud.com/sbq"
)

// =============================================================================
// Raw FIFO - Basic Operations
// =============================================================================

func word(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}

// TestRawFifoBasic pushes three words and pops them back in order.
func TestRawFifoBasic(t *testing.T) {
	q := sbq.NewRawFifo(4, 4)

	if q.Cap() != 4 {
		t.Fatalf("Cap: got %d, want 4", q.Cap())
	}
	if q.ElementSize() != 4 {
		t.Fatalf("ElementSize: got %d, want 4", q.ElementSize())
	}

	want := []uint32{0x11111111, 0x22222222, 0x33333333}
	for _, v := range want {
		if err := q.Push(word(v)); err != nil {
			t.Fatalf("Push(%#x): %v", v, err)
		}
	}
	if q.Len() != 3 {
		t.Fatalf("Len: got %d, want 3", q.Len())
	}

	buf := make([]byte, 4)
	var got []uint32
	for range want {
		if err := q.Pop(buf); err != nil {
			t.Fatalf("Pop: %v", err)
		}
		got = append(got, binary.LittleEndian.Uint32(buf))
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("popped sequence mismatch (-want +got):\n%s", diff)
	}

	if q.Len() != 0 {
		t.Fatalf("Len after drain: got %d, want 0", q.Len())
	}
	if err := q.TryPop(buf); !errors.Is(err, sbq.ErrWouldBlock) {
		t.Fatalf("TryPop on empty: got %v, want ErrWouldBlock", err)
	}
}

// TestRawFifoFull fills the queue, verifies backpressure, then confirms the
// freed slot accepts the rejected record and everything pops in order.
func TestRawFifoFull(t *testing.T) {
	q := sbq.NewRawFifo(4, 4)

	for i := range 4 {
		if err := q.Push(word(uint32(i + 1))); err != nil {
			t.Fatalf("Push(%d): %v", i, err)
		}
	}
	if err := q.TryPush(word(0xdeadbeef)); !errors.Is(err, sbq.ErrWouldBlock) {
		t.Fatalf("TryPush on full: got %v, want ErrWouldBlock", err)
	}

	buf := make([]byte, 4)
	if err := q.Pop(buf); err != nil {
		t.Fatalf("Pop: %v", err)
	}
	if got := binary.LittleEndian.Uint32(buf); got != 1 {
		t.Fatalf("Pop: got %#x, want 1", got)
	}
	if err := q.TryPush(word(0xdeadbeef)); err != nil {
		t.Fatalf("TryPush after pop: %v", err)
	}

	want := []uint32{2, 3, 4, 0xdeadbeef}
	for i, w := range want {
		if err := q.Pop(buf); err != nil {
			t.Fatalf("Pop(%d): %v", i, err)
		}
		if got := binary.LittleEndian.Uint32(buf); got != w {
			t.Fatalf("Pop(%d): got %#x, want %#x", i, got, w)
		}
	}
}

// TestRawFifoMessageSize verifies that a mis-sized buffer is rejected
// without disturbing the queue.
func TestRawFifoMessageSize(t *testing.T) {
	q := sbq.NewRawFifo(4, 4)

	if err := q.Push(make([]byte, 3)); !errors.Is(err, sbq.ErrMessageSize) {
		t.Fatalf("Push short: got %v, want ErrMessageSize", err)
	}
	if err := q.Pop(make([]byte, 5)); !errors.Is(err, sbq.ErrMessageSize) {
		t.Fatalf("Pop long: got %v, want ErrMessageSize", err)
	}
	if q.Len() != 0 {
		t.Fatalf("Len after rejected ops: got %d, want 0", q.Len())
	}

	// The queue still round-trips normally.
	if err := q.Push(word(0x44444444)); err != nil {
		t.Fatalf("Push: %v", err)
	}
	buf := make([]byte, 4)
	if err := q.Pop(buf); err != nil {
		t.Fatalf("Pop: %v", err)
	}
	if got := binary.LittleEndian.Uint32(buf); got != 0x44444444 {
		t.Fatalf("round-trip: got %#x, want 0x44444444", got)
	}
}

// =============================================================================
// Typed FIFO - Basic Operations
// =============================================================================

func TestFifoBasic(t *testing.T) {
	q := sbq.NewFifo[int](4)

	if q.Cap() != 4 {
		t.Fatalf("Cap: got %d, want 4", q.Cap())
	}

	for i := range 4 {
		if err := q.Push(i + 100); err != nil {
			t.Fatalf("Push(%d): %v", i, err)
		}
	}
	if err := q.TryPush(999); !errors.Is(err, sbq.ErrWouldBlock) {
		t.Fatalf("TryPush on full: got %v, want ErrWouldBlock", err)
	}

	for i := range 4 {
		v, err := q.Pop()
		if err != nil {
			t.Fatalf("Pop(%d): %v", i, err)
		}
		if v != i+100 {
			t.Fatalf("Pop(%d): got %d, want %d", i, v, i+100)
		}
	}
	if _, err := q.TryPop(); !errors.Is(err, sbq.ErrWouldBlock) {
		t.Fatalf("TryPop on empty: got %v, want ErrWouldBlock", err)
	}
}

// TestFifoCapacityOne exercises the degenerate single-slot queue.
func TestFifoCapacityOne(t *testing.T) {
	q := sbq.NewFifo[string](1)

	for _, s := range []string{"a", "b", "c"} {
		if err := q.Push(s); err != nil {
			t.Fatalf("Push(%q): %v", s, err)
		}
		if err := q.TryPush("x"); !errors.Is(err, sbq.ErrWouldBlock) {
			t.Fatalf("TryPush on full: got %v, want ErrWouldBlock", err)
		}
		v, err := q.Pop()
		if err != nil {
			t.Fatalf("Pop: %v", err)
		}
		if v != s {
			t.Fatalf("Pop: got %q, want %q", v, s)
		}
	}
}

// TestFifoWrap pushes and pops through several times the capacity so the
// cursors wrap repeatedly.
func TestFifoWrap(t *testing.T) {
	const capacity = 4
	q := sbq.NewFifo[int](capacity)

	next := 0
	for round := range 8 {
		for range capacity {
			if err := q.Push(next); err != nil {
				t.Fatalf("round %d: Push(%d): %v", round, next, err)
			}
			next++
		}
		for i := range capacity {
			v, err := q.Pop()
			if err != nil {
				t.Fatalf("round %d: Pop(%d): %v", round, i, err)
			}
			if want := next - capacity + i; v != want {
				t.Fatalf("round %d: Pop(%d): got %d, want %d", round, i, v, want)
			}
		}
	}
}

// TestFifoFrom runs a queue over caller-supplied storage.
func TestFifoFrom(t *testing.T) {
	backing := make([]int, 3)
	q := sbq.NewFifoFrom(backing)

	if q.Cap() != 3 {
		t.Fatalf("Cap: got %d, want 3", q.Cap())
	}
	for i := range 3 {
		if err := q.Push(i + 1); err != nil {
			t.Fatalf("Push: %v", err)
		}
	}
	// Elements live in the caller's buffer.
	if diff := cmp.Diff([]int{1, 2, 3}, backing); diff != "" {
		t.Fatalf("backing mismatch (-want +got):\n%s", diff)
	}
	for i := range 3 {
		v, err := q.Pop()
		if err != nil || v != i+1 {
			t.Fatalf("Pop: got (%d, %v), want (%d, nil)", v, err, i+1)
		}
	}
}

// TestRawFifoFrom verifies storage validation of the raw From constructor.
func TestRawFifoFrom(t *testing.T) {
	q := sbq.NewRawFifoFrom(make([]byte, 12), 4)
	if q.Cap() != 3 {
		t.Fatalf("Cap: got %d, want 3", q.Cap())
	}

	defer func() {
		if recover() == nil {
			t.Fatal("NewRawFifoFrom with ragged storage: expected panic")
		}
	}()
	sbq.NewRawFifoFrom(make([]byte, 10), 4)
}

// TestFifoDrain fills a queue partially and drains it.
func TestFifoDrain(t *testing.T) {
	q := sbq.NewFifo[int](8)
	for i := range 5 {
		if err := q.Push(i); err != nil {
			t.Fatalf("Push: %v", err)
		}
	}
	if n := q.Drain(); n != 5 {
		t.Fatalf("Drain: got %d, want 5", n)
	}
	if q.Len() != 0 {
		t.Fatalf("Len after Drain: got %d, want 0", q.Len())
	}
	// The queue remains usable.
	if err := q.Push(42); err != nil {
		t.Fatalf("Push after Drain: %v", err)
	}
	if v, err := q.Pop(); err != nil || v != 42 {
		t.Fatalf("Pop after Drain: got (%d, %v), want (42, nil)", v, err)
	}
}

// TestNewFifoPanics verifies the constructor contract.
func TestNewFifoPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("NewFifo(0): expected panic")
		}
	}()
	sbq.NewFifo[int](0)
}
