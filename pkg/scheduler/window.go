package scheduler

import (
	"sync"
)

// Window tracks the contiguous prefix of the result list that has been
// admitted for fetching, independent of whether each item has
// resolved. The cursor is the index of the last admitted identifier;
// it is -1 at the start of a search and only ever moves forward until
// the next Reset.
//
// The scheduler loop is the sole writer; the view layer reads
// concurrently to decide whether more pages can be requested.
type Window struct {
	mu     sync.RWMutex
	urls   []string
	cursor int
}

// NewWindow creates an empty window.
func NewWindow() *Window {
	return &Window{cursor: -1}
}

// Reset installs a new result list and rewinds the cursor to -1. This
// is the only way the cursor moves backward.
func (w *Window) Reset(urls []string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.urls = urls
	w.cursor = -1
}

// Advance admits up to count further identifiers and returns their
// URLs. The slice is clamped to the remaining length, so the cursor
// can never run past the end of the list. Returns nil when nothing is
// left to admit.
func (w *Window) Advance(count int) []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	first := w.cursor + 1
	if count <= 0 || first >= len(w.urls) {
		return nil
	}

	last := first + count
	if last > len(w.urls) {
		last = len(w.urls)
	}

	w.cursor = last - 1
	return w.urls[first:last]
}

// CanAdvance reports whether identifiers remain beyond the cursor.
func (w *Window) CanAdvance() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return w.cursor+1 < len(w.urls)
}

// Cursor returns the index of the last admitted identifier, or -1.
func (w *Window) Cursor() int {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return w.cursor
}

// Len returns the length of the full result list.
func (w *Window) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return len(w.urls)
}

// URLs returns a copy of the full result list in relevance order.
func (w *Window) URLs() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()

	urls := make([]string, len(w.urls))
	copy(urls, w.urls)
	return urls
}
