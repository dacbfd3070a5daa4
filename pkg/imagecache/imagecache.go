// Package imagecache provides a thumbnail byte cache keyed by image
// URL. It is the structural sibling of the document pipeline's store,
// but simpler: fetches are demand-driven and unpaced, bytes are cached
// as-is, and a failed URL is terminal. Decoding and scaling are the
// caller's concern.
package imagecache

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

// ErrBadImage is returned for URLs whose fetch permanently failed.
var ErrBadImage = fmt.Errorf("image permanently unavailable")

// Cache is an in-memory image byte cache. Concurrent requests for the
// same URL are coalesced into a single fetch.
type Cache struct {
	httpClient *http.Client
	group      singleflight.Group
	logger     zerolog.Logger

	mu     sync.RWMutex
	images map[string][]byte
	bad    map[string]bool
}

// New creates an image cache. A nil httpClient gets a default with a
// 30 second timeout.
func New(httpClient *http.Client) *Cache {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Cache{
		httpClient: httpClient,
		logger:     log.With().Str("component", "image-cache").Logger(),
		images:     make(map[string][]byte),
		bad:        make(map[string]bool),
	}
}

// Get returns the image bytes for a URL, fetching on first use.
// A URL that ever failed returns ErrBadImage without refetching.
func (c *Cache) Get(ctx context.Context, url string) ([]byte, error) {
	c.mu.RLock()
	data, cached := c.images[url]
	bad := c.bad[url]
	c.mu.RUnlock()

	if bad {
		return nil, ErrBadImage
	}
	if cached {
		return data, nil
	}

	v, err, _ := c.group.Do(url, func() (any, error) {
		return c.fetch(ctx, url)
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// Cached reports whether the URL has resolved bytes without fetching.
func (c *Cache) Cached(url string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, ok := c.images[url]
	return ok
}

// IsBad reports whether the URL permanently failed.
func (c *Cache) IsBad(url string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.bad[url]
}

func (c *Cache) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, c.markBad(url, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Transport errors may be transient (the context may simply
		// have been cancelled), so the URL is not condemned for them.
		return nil, fmt.Errorf("get image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.markBad(url, fmt.Errorf("status %d", resp.StatusCode))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}

	c.mu.Lock()
	c.images[url] = data
	c.mu.Unlock()

	c.logger.Debug().Str("url", url).Int("bytes", len(data)).Msg("Image cached")
	return data, nil
}

func (c *Cache) markBad(url string, cause error) error {
	c.mu.Lock()
	c.bad[url] = true
	c.mu.Unlock()

	c.logger.Warn().Err(cause).Str("url", url).Msg("Image marked bad")
	return fmt.Errorf("%w: %v", ErrBadImage, cause)
}
