package cache

import (
	"net/http"
	"time"
)

const (
	// DefaultTTL is the fallback freshness window when no Expires header
	// is present.
	DefaultTTL = 5 * time.Minute
)

// EntryFromResponse builds a cache entry from a response and its
// already-read body. The caller owns body reading so the transport can
// decode the payload once.
func EntryFromResponse(resp *http.Response, body []byte) *Entry {
	entry := &Entry{
		Data:       body,
		ETag:       resp.Header.Get("ETag"),
		StatusCode: resp.StatusCode,
		CachedAt:   time.Now(),
	}

	entry.Expires = parseExpires(resp.Header)

	if lastModStr := resp.Header.Get("Last-Modified"); lastModStr != "" {
		if lastMod, err := http.ParseTime(lastModStr); err == nil {
			entry.LastModified = lastMod
		}
	}

	return entry
}

// AddConditionalHeaders adds If-None-Match / If-Modified-Since headers
// from a stale entry so the upstream can answer 304 Not Modified.
func AddConditionalHeaders(req *http.Request, entry *Entry) {
	if entry.ETag != "" {
		req.Header.Set("If-None-Match", entry.ETag)
	}
	if !entry.LastModified.IsZero() {
		req.Header.Set("If-Modified-Since", entry.LastModified.Format(http.TimeFormat))
	}
}

// parseExpires parses the Expires header, falling back to now+DefaultTTL
// when the header is missing or malformed.
func parseExpires(headers http.Header) time.Time {
	expiresStr := headers.Get("Expires")
	if expiresStr == "" {
		return time.Now().Add(DefaultTTL)
	}

	expires, err := http.ParseTime(expiresStr)
	if err != nil {
		return time.Now().Add(DefaultTTL)
	}

	return expires
}
