// Package catalog provides the client for the museum collection API:
// identifier-list search, object document fetching, and the department
// listing, with optional transport-level response caching.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/metsearch/collection-client/pkg/cache"
)

// DefaultBaseURL is the public collection API root.
const DefaultBaseURL = "https://collectionapi.metmuseum.org/public/collection/v1"

// Prometheus metrics for catalog client operations.
var (
	catalogRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_requests_total",
		Help: "Total catalog requests by endpoint and status",
	}, []string{"endpoint", "status"})

	catalogRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catalog_request_duration_seconds",
		Help:    "Catalog request duration in seconds by endpoint",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	}, []string{"endpoint"})

	catalogErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_errors_total",
		Help: "Total catalog errors by class",
	}, []string{"class"})
)

// Client is the collection API client.
type Client struct {
	httpClient *http.Client
	cache      *cache.Manager
	config     Config
	logger     zerolog.Logger
}

// Config holds the client configuration.
type Config struct {
	// BaseURL is the API root (default: DefaultBaseURL).
	BaseURL string

	// UserAgent identifies this client to the service.
	// Format: "AppName/Version (contact@example.com)"
	UserAgent string

	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration

	// Redis enables the transport-level response cache when non-nil.
	Redis *redis.Client
}

// DefaultConfig returns a safe default configuration.
func DefaultConfig(userAgent string) Config {
	return Config{
		BaseURL:   DefaultBaseURL,
		UserAgent: userAgent,
		Timeout:   30 * time.Second,
	}
}

// New creates a new catalog client.
func New(cfg Config) (*Client, error) {
	if cfg.UserAgent == "" {
		return nil, fmt.Errorf("user-agent is required")
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	logger := log.With().Str("component", "catalog-client").Logger()

	var cacheManager *cache.Manager
	if cfg.Redis != nil {
		cacheManager = cache.NewManager(cfg.Redis)
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		cache:  cacheManager,
		config: cfg,
		logger: logger,
	}, nil
}

// ObjectURL derives the document URL for an object identifier.
// The derivation is 1:1; the URL doubles as the cache key downstream.
func (c *Client) ObjectURL(id int) string {
	return c.config.BaseURL + "/objects/" + strconv.Itoa(id)
}

// Search performs an identifier-list lookup. The returned IDs are in
// the catalog's relevance order, which consumers must preserve as the
// natural row order. A query with no matches returns an empty list and
// no error.
func (c *Client) Search(ctx context.Context, query SearchQuery) ([]int, error) {
	searchURL := c.config.BaseURL + "/search?" + query.Values().Encode()

	body, err := c.get(ctx, searchURL)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query.Term, err)
	}

	var result struct {
		Total     int   `json:"total"`
		ObjectIDs []int `json:"objectIDs"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	c.logger.Info().
		Str("term", query.Term).
		Int("total", result.Total).
		Msg("Search complete")

	return result.ObjectIDs, nil
}

// SearchURLs resolves a free-text term into ordered object document
// URLs, with no narrowing filters. It satisfies the scheduler's
// Searcher contract; use ScopedSearcher to bind filters.
func (c *Client) SearchURLs(ctx context.Context, term string) ([]string, error) {
	return ScopedSearcher{Client: c}.SearchURLs(ctx, term)
}

// FetchObject retrieves one object document by its derived URL.
// Failures are classified via APIError; within a search every failure
// is permanent and the caller records the URL in its bad set.
func (c *Client) FetchObject(ctx context.Context, url string) (Document, error) {
	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}

	var doc Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, &APIError{
			StatusCode: http.StatusOK,
			Class:      ErrorClassClient,
			URL:        url,
			Err:        fmt.Errorf("decode document: %w", err),
		}
	}

	c.logger.Debug().Str("url", url).Msg("Getting URL: Success")

	return doc, nil
}

// Department is one curatorial department of the catalog.
type Department struct {
	ID          int    `json:"departmentId"`
	DisplayName string `json:"displayName"`
}

// Departments lists the catalog's curatorial departments.
func (c *Client) Departments(ctx context.Context) ([]Department, error) {
	body, err := c.get(ctx, c.config.BaseURL+"/departments")
	if err != nil {
		return nil, fmt.Errorf("departments: %w", err)
	}

	var result struct {
		Departments []Department `json:"departments"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode departments response: %w", err)
	}

	return result.Departments, nil
}

// get performs a GET against the API with response caching and error
// classification. It returns the response body of a 200 (or a cached
// body for a fresh hit or a 304 revalidation).
func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	endpoint := endpointLabel(rawURL)

	startTime := time.Now()
	defer func() {
		catalogRequestDuration.WithLabelValues(endpoint).Observe(time.Since(startTime).Seconds())
	}()

	// Step 1: consult the response cache.
	var cached *cache.Entry
	key := cache.KeyForURL(rawURL)
	if c.cache != nil {
		entry, err := c.cache.Get(ctx, key)
		if err != nil && err != cache.ErrCacheMiss {
			c.logger.Warn().Err(err).Str("url", rawURL).Msg("Cache get error")
		}
		if entry != nil {
			if !entry.IsExpired() {
				c.logger.Debug().Str("url", rawURL).Msg("Serving fresh cache entry")
				catalogRequestsTotal.WithLabelValues(endpoint, "cache_hit").Inc()
				return entry.Data, nil
			}
			if entry.CanRevalidate() {
				cached = entry
			}
		}
	}

	// Step 2: build the request.
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", "application/json")
	if cached != nil {
		cache.AddConditionalHeaders(req, cached)
		c.logger.Debug().
			Str("url", rawURL).
			Str("etag", cached.ETag).
			Msg("Making conditional request")
	}

	// Step 3: execute.
	resp, err := c.httpClient.Do(req)
	if err != nil {
		catalogErrorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
		catalogRequestsTotal.WithLabelValues(endpoint, "network_error").Inc()
		c.logger.Debug().Err(err).Str("url", rawURL).Msg("Getting URL: FAILURE")
		return nil, &APIError{Class: ErrorClassNetwork, URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	catalogRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()

	// Step 4: 304 Not Modified serves the stale entry and refreshes it.
	if resp.StatusCode == http.StatusNotModified && cached != nil {
		c.logger.Debug().Str("url", rawURL).Msg("304 Not Modified - using cache")
		var newExpires time.Time
		if expiresStr := resp.Header.Get("Expires"); expiresStr != "" {
			if parsed, err := http.ParseTime(expiresStr); err == nil {
				newExpires = parsed
			}
		}
		if err := c.cache.Refresh(ctx, key, newExpires); err != nil {
			c.logger.Warn().Err(err).Msg("Failed to refresh cache entry")
		}
		return cached.Data, nil
	}

	if resp.StatusCode != http.StatusOK {
		class := classifyStatus(resp.StatusCode)
		catalogErrorsTotal.WithLabelValues(string(class)).Inc()
		c.logger.Debug().
			Str("url", rawURL).
			Int("status", resp.StatusCode).
			Str("error_class", string(class)).
			Msg("Getting URL: FAILURE")
		return nil, &APIError{StatusCode: resp.StatusCode, Class: class, URL: rawURL}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		catalogErrorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
		return nil, &APIError{Class: ErrorClassNetwork, URL: rawURL, Err: fmt.Errorf("read response body: %w", err)}
	}

	if len(body) == 0 {
		catalogErrorsTotal.WithLabelValues(string(ErrorClassClient)).Inc()
		c.logger.Debug().Str("url", rawURL).Msg("Getting URL: FAILURE (empty body)")
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Class:      ErrorClassClient,
			URL:        rawURL,
			Err:        ErrEmptyBody,
		}
	}

	// Step 5: fill the cache on success.
	if c.cache != nil {
		entry := cache.EntryFromResponse(resp, body)
		if err := c.cache.Set(ctx, key, entry); err != nil {
			c.logger.Warn().Err(err).Msg("Failed to cache response")
		}
	}

	return body, nil
}

// endpointLabel collapses a request URL into a low-cardinality metric
// label: object URLs embed their identifier and must not each become a
// label value.
func endpointLabel(rawURL string) string {
	switch {
	case strings.Contains(rawURL, "/objects/"):
		return "/objects"
	case strings.Contains(rawURL, "/search"):
		return "/search"
	case strings.Contains(rawURL, "/departments"):
		return "/departments"
	default:
		return "other"
	}
}

// SetHTTPClient sets a custom HTTP client (for testing).
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}
