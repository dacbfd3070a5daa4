// Package testutil provides testing utilities for the collection client.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"
)

// MockResponse defines the behavior of one mock catalog endpoint.
type MockResponse struct {
	StatusCode int
	Body       string
	Headers    map[string]string
	Delay      time.Duration
}

// MockCatalog is a configurable mock collection API server for testing.
// It serves the search, objects, and departments endpoints with
// overridable per-path responses.
type MockCatalog struct {
	server   *httptest.Server
	mu       sync.RWMutex
	handlers map[string]func(w http.ResponseWriter, r *http.Request)

	searchIDs []int

	// Tracking
	RequestCount     int
	ObjectCount      int
	SearchCount      int
	ConditionalCount int
	LastRequestURL   string
	LastUserAgent    string
}

// NewMockCatalog creates a mock catalog server with an empty result set.
func NewMockCatalog() *MockCatalog {
	mock := &MockCatalog{
		handlers: make(map[string]func(w http.ResponseWriter, r *http.Request)),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		mock.RequestCount++
		mock.LastRequestURL = r.URL.String()
		mock.LastUserAgent = r.Header.Get("User-Agent")
		if strings.Contains(r.URL.Path, "/objects/") {
			mock.ObjectCount++
		}
		if strings.Contains(r.URL.Path, "/search") {
			mock.SearchCount++
		}
		if r.Header.Get("If-None-Match") != "" || r.Header.Get("If-Modified-Since") != "" {
			mock.ConditionalCount++
		}
		mock.mu.Unlock()

		mock.mu.RLock()
		handler, exists := mock.handlers[r.URL.Path]
		mock.mu.RUnlock()

		if exists {
			handler(w, r)
			return
		}

		mock.defaultHandler(w, r)
	}))

	return mock
}

// URL returns the mock server URL, usable as the client's BaseURL.
func (m *MockCatalog) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockCatalog) Close() {
	m.server.Close()
}

// Reset clears all tracking counters.
func (m *MockCatalog) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestCount = 0
	m.ObjectCount = 0
	m.SearchCount = 0
	m.ConditionalCount = 0
	m.LastRequestURL = ""
	m.LastUserAgent = ""
}

// SetSearchResults configures the identifier list every search returns.
func (m *MockCatalog) SetSearchResults(ids ...int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searchIDs = ids
}

// SetHandler sets a custom handler for a specific path.
func (m *MockCatalog) SetHandler(path string, handler func(w http.ResponseWriter, r *http.Request)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// SetResponse configures a canned response for a path.
func (m *MockCatalog) SetResponse(path string, resp MockResponse) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		if resp.Delay > 0 {
			time.Sleep(resp.Delay)
		}

		for key, value := range resp.Headers {
			w.Header().Set(key, value)
		}

		w.WriteHeader(resp.StatusCode)
		if resp.Body != "" {
			w.Write([]byte(resp.Body))
		}
	})
}

// SetObjectResponse configures the response for one object document.
func (m *MockCatalog) SetObjectResponse(id int, resp MockResponse) {
	m.SetResponse(fmt.Sprintf("/objects/%d", id), resp)
}

// GetRequestCount returns the number of requests made to the server.
func (m *MockCatalog) GetRequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.RequestCount
}

// GetObjectCount returns the number of object document requests.
func (m *MockCatalog) GetObjectCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ObjectCount
}

// GetSearchCount returns the number of search requests.
func (m *MockCatalog) GetSearchCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.SearchCount
}

// GetConditionalCount returns the number of conditional requests.
func (m *MockCatalog) GetConditionalCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ConditionalCount
}

// GetLastRequestURL returns the URL of the most recent request.
func (m *MockCatalog) GetLastRequestURL() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.LastRequestURL
}

// GetLastUserAgent returns the User-Agent of the most recent request.
func (m *MockCatalog) GetLastUserAgent() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.LastUserAgent
}

// defaultHandler serves catalog-shaped responses for unconfigured paths.
func (m *MockCatalog) defaultHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	switch {
	case strings.Contains(r.URL.Path, "/search"):
		m.mu.RLock()
		ids := m.searchIDs
		m.mu.RUnlock()
		json.NewEncoder(w).Encode(map[string]any{
			"total":     len(ids),
			"objectIDs": ids,
		})

	case strings.Contains(r.URL.Path, "/objects/"):
		var id int
		fmt.Sscanf(r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:], "%d", &id)
		w.Write([]byte(ObjectDocument(id, fmt.Sprintf("Object %d", id))))

	case strings.Contains(r.URL.Path, "/departments"):
		w.Write([]byte(`{"departments":[{"departmentId":1,"displayName":"American Decorative Arts"},{"departmentId":11,"displayName":"European Paintings"}]}`))

	default:
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"Not Found"}`))
	}
}

// ObjectDocument builds a minimal object document JSON body.
func ObjectDocument(id int, title string) string {
	doc := map[string]any{
		"objectID":          id,
		"title":             title,
		"artistDisplayName": "Unknown Artist",
		"medium":            "Oil on canvas",
		"objectDate":        "1888",
		"culture":           "",
		"department":        "European Paintings",
		"classification":    "Paintings",
	}
	data, _ := json.Marshal(doc)
	return string(data)
}

// NewNotFoundResponse creates a 404 object response.
func NewNotFoundResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusNotFound,
		Body:       `{"message":"ObjectID not found"}`,
		Headers:    map[string]string{"Content-Type": "application/json; charset=utf-8"},
	}
}

// NewForbiddenResponse creates a 403 object response. The live service
// is known to answer 403 for some objects with no obvious reason.
func NewForbiddenResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusForbidden,
		Body:       "Forbidden",
	}
}

// NewEmptyBodyResponse creates a 200 response with no payload.
func NewEmptyBodyResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusOK,
		Headers:    map[string]string{"Content-Type": "application/json; charset=utf-8"},
	}
}

// NewCacheableResponse creates a 200 response with validators and a
// future Expires header, for response-cache tests.
func NewCacheableResponse(body, etag string) MockResponse {
	return MockResponse{
		StatusCode: http.StatusOK,
		Body:       body,
		Headers: map[string]string{
			"Content-Type": "application/json; charset=utf-8",
			"ETag":         etag,
			"Expires":      time.Now().Add(5 * time.Minute).UTC().Format(http.TimeFormat),
		},
	}
}
