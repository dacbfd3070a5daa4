package scheduler

import (
	"sync"

	"github.com/metsearch/collection-client/pkg/catalog"
)

// DocStatus tracks the lifecycle of one URL within a search. A URL is
// in exactly one state at a time; Failed is terminal for the lifetime
// of the search, and Resolved never regresses.
type DocStatus uint8

const (
	// StatusUnrequested means the URL has not been admitted to fetching.
	StatusUnrequested DocStatus = iota

	// StatusPending means the URL was requested and its reply is
	// outstanding.
	StatusPending

	// StatusResolved means the document is cached.
	StatusResolved

	// StatusFailed means the fetch permanently failed; the URL is never
	// retried within the search.
	StatusFailed
)

// String returns the status name.
func (s DocStatus) String() string {
	switch s {
	case StatusUnrequested:
		return "unrequested"
	case StatusPending:
		return "pending"
	case StatusResolved:
		return "resolved"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Store is the document store: URL to fetched document, with a single
// status field per URL instead of parallel membership lists. The
// scheduler loop is the sole writer; the view layer reads concurrently.
// Reads never block on fetching and never trigger a fetch.
type Store struct {
	mu     sync.RWMutex
	docs   map[string]catalog.Document
	status map[string]DocStatus
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		docs:   make(map[string]catalog.Document),
		status: make(map[string]DocStatus),
	}
}

// Get returns the cached document for a URL. The second return is
// false while the URL is unresolved, pending, or failed.
func (s *Store) Get(url string) (catalog.Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[url]
	return doc, ok
}

// Status returns the URL's lifecycle state.
func (s *Store) Status(url string) DocStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.status[url]
}

// IsBad reports whether the URL's fetch permanently failed.
func (s *Store) IsBad(url string) bool {
	return s.Status(url) == StatusFailed
}

// MarkPending records that the URLs have been admitted to fetching.
// Distinguishes "requested, still pending" from "not yet requested".
func (s *Store) MarkPending(urls ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, url := range urls {
		if s.status[url] == StatusUnrequested {
			s.status[url] = StatusPending
		}
	}
}

// Resolve records a successful fetch. Last write wins, except that a
// failed URL stays failed: bad is terminal. Reports whether the write
// was applied.
func (s *Store) Resolve(url string, doc catalog.Document) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status[url] == StatusFailed {
		return false
	}
	s.docs[url] = doc
	s.status[url] = StatusResolved
	return true
}

// MarkBad records a permanent failure. A resolved document never
// regresses to failed. Reports whether the write was applied.
func (s *Store) MarkBad(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status[url] == StatusResolved {
		return false
	}
	s.status[url] = StatusFailed
	return true
}

// Counts returns the number of resolved and failed URLs.
func (s *Store) Counts() (resolved, failed int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, st := range s.status {
		switch st {
		case StatusResolved:
			resolved++
		case StatusFailed:
			failed++
		}
	}
	return resolved, failed
}

// Reset discards all state for a new search.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.docs = make(map[string]catalog.Document)
	s.status = make(map[string]DocStatus)
}
