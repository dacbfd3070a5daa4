package cache

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// Key identifies a cached response. Keys are derived from request URLs,
// which are generated, not user input, so no normalization beyond query
// ordering is needed.
type Key struct {
	// Path is the request path, e.g. "/public/collection/v1/objects/436535".
	Path string

	// Query holds the request query parameters.
	Query url.Values
}

// KeyForURL derives the cache key for a request URL. Invalid URLs fall
// back to the raw string so the key stays deterministic.
func KeyForURL(rawURL string) Key {
	u, err := url.Parse(rawURL)
	if err != nil {
		return Key{Path: rawURL}
	}
	return Key{
		Path:  u.Path,
		Query: u.Query(),
	}
}

// String generates a deterministic Redis key string.
// Format: catalog:path:query1=val1:query2=val2
//
// Example:
//
//	catalog:public/collection/v1/search:hasImages=true:q=sunflower
func (k Key) String() string {
	parts := []string{"catalog"}

	if path := strings.Trim(k.Path, "/"); path != "" {
		parts = append(parts, path)
	}

	// Query params sorted for determinism.
	if len(k.Query) > 0 {
		names := make([]string, 0, len(k.Query))
		for name := range k.Query {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			parts = append(parts, fmt.Sprintf("%s=%s", name, k.Query.Get(name)))
		}
	}

	return strings.Join(parts, ":")
}
