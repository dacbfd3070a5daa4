package cache

import (
	"net/http"
	"testing"
	"time"
)

func TestEntryFromResponse(t *testing.T) {
	expires := time.Now().Add(1 * time.Hour).UTC().Truncate(time.Second)
	lastMod := time.Now().Add(-2 * time.Hour).UTC().Truncate(time.Second)

	resp := &http.Response{
		StatusCode: 200,
		Header: http.Header{
			"Etag":          []string{`"abc123"`},
			"Expires":       []string{expires.Format(http.TimeFormat)},
			"Last-Modified": []string{lastMod.Format(http.TimeFormat)},
		},
	}
	body := []byte(`{"objectID": 1}`)

	entry := EntryFromResponse(resp, body)

	if string(entry.Data) != string(body) {
		t.Errorf("Data = %s", entry.Data)
	}
	if entry.ETag != `"abc123"` {
		t.Errorf("ETag = %s", entry.ETag)
	}
	if !entry.Expires.Equal(expires) {
		t.Errorf("Expires = %v, want %v", entry.Expires, expires)
	}
	if !entry.LastModified.Equal(lastMod) {
		t.Errorf("LastModified = %v, want %v", entry.LastModified, lastMod)
	}
	if entry.StatusCode != 200 {
		t.Errorf("StatusCode = %d", entry.StatusCode)
	}
}

func TestEntryFromResponse_NoExpiresFallsBackToDefaultTTL(t *testing.T) {
	resp := &http.Response{StatusCode: 200, Header: http.Header{}}

	entry := EntryFromResponse(resp, []byte("{}"))

	ttl := entry.TTL()
	if ttl <= DefaultTTL-time.Minute || ttl > DefaultTTL {
		t.Errorf("TTL() = %v, want about %v", ttl, DefaultTTL)
	}
}

func TestEntryFromResponse_MalformedExpires(t *testing.T) {
	resp := &http.Response{
		StatusCode: 200,
		Header:     http.Header{"Expires": []string{"not a date"}},
	}

	entry := EntryFromResponse(resp, []byte("{}"))
	if entry.IsExpired() {
		t.Error("Malformed Expires produced an already-expired entry")
	}
}

func TestAddConditionalHeaders(t *testing.T) {
	lastMod := time.Now().Add(-1 * time.Hour).UTC().Truncate(time.Second)
	entry := &Entry{
		ETag:         `"abc123"`,
		LastModified: lastMod,
	}

	req, _ := http.NewRequest(http.MethodGet, "https://example.org", nil)
	AddConditionalHeaders(req, entry)

	if got := req.Header.Get("If-None-Match"); got != `"abc123"` {
		t.Errorf("If-None-Match = %s", got)
	}
	if got := req.Header.Get("If-Modified-Since"); got != lastMod.Format(http.TimeFormat) {
		t.Errorf("If-Modified-Since = %s", got)
	}
}

func TestAddConditionalHeaders_NoValidators(t *testing.T) {
	req, _ := http.NewRequest(http.MethodGet, "https://example.org", nil)
	AddConditionalHeaders(req, &Entry{})

	if got := req.Header.Get("If-None-Match"); got != "" {
		t.Errorf("If-None-Match set without an ETag: %s", got)
	}
	if got := req.Header.Get("If-Modified-Since"); got != "" {
		t.Errorf("If-Modified-Since set without a Last-Modified: %s", got)
	}
}
