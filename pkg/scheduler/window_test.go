package scheduler

import (
	"testing"
)

func TestWindow_StartsEmpty(t *testing.T) {
	w := NewWindow()

	if w.Cursor() != -1 {
		t.Errorf("Cursor() = %d, want -1", w.Cursor())
	}
	if w.CanAdvance() {
		t.Error("Empty window reports it can advance")
	}
	if got := w.Advance(10); got != nil {
		t.Errorf("Advance() on empty window = %v, want nil", got)
	}
}

func TestWindow_PagedAdvance(t *testing.T) {
	w := NewWindow()
	w.Reset([]string{"u1", "u2", "u3"})

	// Page size 2: first advance admits {u1,u2}, second admits {u3},
	// further calls are no-ops.
	first := w.Advance(2)
	if len(first) != 2 || first[0] != "u1" || first[1] != "u2" {
		t.Fatalf("First Advance(2) = %v, want [u1 u2]", first)
	}
	if w.Cursor() != 1 {
		t.Errorf("Cursor() after first page = %d, want 1", w.Cursor())
	}
	if !w.CanAdvance() {
		t.Error("CanAdvance() = false with one identifier left")
	}

	second := w.Advance(2)
	if len(second) != 1 || second[0] != "u3" {
		t.Fatalf("Second Advance(2) = %v, want [u3] (clamped)", second)
	}
	if w.Cursor() != 2 {
		t.Errorf("Cursor() after second page = %d, want 2", w.Cursor())
	}

	if got := w.Advance(2); got != nil {
		t.Errorf("Advance() past the end = %v, want nil", got)
	}
	if w.Cursor() != 2 {
		t.Errorf("Cursor() moved by a no-op advance: %d", w.Cursor())
	}
	if w.CanAdvance() {
		t.Error("CanAdvance() = true after the whole list was admitted")
	}
}

func TestWindow_CursorNeverExceedsLength(t *testing.T) {
	w := NewWindow()
	w.Reset([]string{"a", "b"})

	// An oversized request must clamp, not run past the end.
	got := w.Advance(100)
	if len(got) != 2 {
		t.Fatalf("Advance(100) admitted %d items, want 2", len(got))
	}
	if w.Cursor() != w.Len()-1 {
		t.Errorf("Cursor() = %d, want %d", w.Cursor(), w.Len()-1)
	}
}

func TestWindow_AdvanceRejectsNonPositiveCount(t *testing.T) {
	w := NewWindow()
	w.Reset([]string{"a"})

	if got := w.Advance(0); got != nil {
		t.Errorf("Advance(0) = %v, want nil", got)
	}
	if got := w.Advance(-3); got != nil {
		t.Errorf("Advance(-3) = %v, want nil", got)
	}
}

func TestWindow_ResetRewindsCursor(t *testing.T) {
	w := NewWindow()
	w.Reset([]string{"a", "b", "c"})
	w.Advance(3)

	w.Reset([]string{"x"})

	if w.Cursor() != -1 {
		t.Errorf("Cursor() after reset = %d, want -1", w.Cursor())
	}
	if w.Len() != 1 {
		t.Errorf("Len() after reset = %d, want 1", w.Len())
	}
}

func TestWindow_URLsReturnsCopy(t *testing.T) {
	w := NewWindow()
	w.Reset([]string{"a", "b"})

	urls := w.URLs()
	urls[0] = "mutated"

	if w.URLs()[0] != "a" {
		t.Error("URLs() exposed internal state")
	}
}
