package scheduler

import (
	"testing"

	"github.com/metsearch/collection-client/pkg/catalog"
)

func TestStore_Lifecycle(t *testing.T) {
	s := NewStore()
	url := "https://example.com/objects/1"

	if got := s.Status(url); got != StatusUnrequested {
		t.Fatalf("Status() of unknown URL = %v, want unrequested", got)
	}
	if _, ok := s.Get(url); ok {
		t.Fatal("Get() of unknown URL reported a document")
	}

	s.MarkPending(url)
	if got := s.Status(url); got != StatusPending {
		t.Fatalf("Status() after MarkPending = %v, want pending", got)
	}
	// Pending is distinguishable from resolved-but-empty documents.
	if _, ok := s.Get(url); ok {
		t.Fatal("Get() of pending URL reported a document")
	}

	s.Resolve(url, catalog.Document{"title": "Irises"})
	doc, ok := s.Get(url)
	if !ok {
		t.Fatal("Get() of resolved URL reported no document")
	}
	if doc.Title() != "Irises" {
		t.Errorf("Title() = %q, want Irises", doc.Title())
	}
}

func TestStore_ResolvedNeverRegresses(t *testing.T) {
	s := NewStore()
	url := "https://example.com/objects/2"

	s.MarkPending(url)
	s.Resolve(url, catalog.Document{"title": "Wheat Field"})

	if s.MarkBad(url) {
		t.Error("MarkBad() applied to a resolved URL")
	}
	if s.IsBad(url) {
		t.Error("Resolved URL reported bad")
	}
	if _, ok := s.Get(url); !ok {
		t.Error("Resolved document lost")
	}
}

func TestStore_BadIsTerminal(t *testing.T) {
	s := NewStore()
	url := "https://example.com/objects/3"

	s.MarkPending(url)
	s.MarkBad(url)

	if s.Resolve(url, catalog.Document{"title": "late"}) {
		t.Error("Resolve() applied to a failed URL")
	}
	if !s.IsBad(url) {
		t.Error("Failed URL no longer bad after Resolve attempt")
	}
	if _, ok := s.Get(url); ok {
		t.Error("Get() of failed URL reported a document")
	}
}

func TestStore_MarkPendingOnlyFromUnrequested(t *testing.T) {
	s := NewStore()
	url := "https://example.com/objects/4"

	s.MarkPending(url)
	s.Resolve(url, catalog.Document{})
	s.MarkPending(url)

	if got := s.Status(url); got != StatusResolved {
		t.Errorf("Status() = %v, want resolved after redundant MarkPending", got)
	}
}

func TestStore_Counts(t *testing.T) {
	s := NewStore()

	s.MarkPending("a", "b", "c", "d")
	s.Resolve("a", catalog.Document{})
	s.Resolve("b", catalog.Document{})
	s.MarkBad("c")

	resolved, failed := s.Counts()
	if resolved != 2 || failed != 1 {
		t.Errorf("Counts() = (%d, %d), want (2, 1)", resolved, failed)
	}
}

func TestStore_Reset(t *testing.T) {
	s := NewStore()

	s.MarkPending("a")
	s.Resolve("a", catalog.Document{"title": "old"})
	s.MarkPending("b")
	s.MarkBad("b")

	s.Reset()

	if got := s.Status("a"); got != StatusUnrequested {
		t.Errorf("Status(a) after reset = %v, want unrequested", got)
	}
	if s.IsBad("b") {
		t.Error("Bad set survived reset")
	}
}

func TestDocStatus_String(t *testing.T) {
	tests := []struct {
		status DocStatus
		want   string
	}{
		{StatusUnrequested, "unrequested"},
		{StatusPending, "pending"},
		{StatusResolved, "resolved"},
		{StatusFailed, "failed"},
		{DocStatus(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("DocStatus(%d).String() = %q, want %q", tt.status, got, tt.want)
		}
	}
}
