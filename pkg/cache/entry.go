package cache

import (
	"time"
)

// Entry represents a cached catalog response.
type Entry struct {
	// Data is the response body.
	Data []byte `json:"data"`

	// ETag for conditional requests (If-None-Match).
	ETag string `json:"etag"`

	// Expires is when the entry becomes stale (from the Expires header,
	// or CachedAt plus the fallback TTL).
	Expires time.Time `json:"expires"`

	// LastModified is from the Last-Modified response header.
	LastModified time.Time `json:"last_modified"`

	// StatusCode is the HTTP status code of the cached response.
	StatusCode int `json:"status_code"`

	// CachedAt is when we cached this response.
	CachedAt time.Time `json:"cached_at"`
}

// IsExpired returns true if the entry is past its freshness window.
// An expired entry may still be usable via conditional revalidation.
func (e *Entry) IsExpired() bool {
	return time.Now().After(e.Expires)
}

// TTL returns the time until the entry expires.
// Returns 0 if already expired.
func (e *Entry) TTL() time.Duration {
	ttl := time.Until(e.Expires)
	if ttl < 0 {
		return 0
	}
	return ttl
}

// CanRevalidate returns true if the entry carries a validator usable
// for a conditional request.
func (e *Entry) CanRevalidate() bool {
	return e.ETag != "" || !e.LastModified.IsZero()
}
