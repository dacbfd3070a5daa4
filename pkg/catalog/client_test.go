package catalog

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/metsearch/collection-client/internal/testutil"
)

func newTestClient(t *testing.T, mock *testutil.MockCatalog) *Client {
	t.Helper()

	cfg := Config{
		BaseURL:   mock.URL(),
		UserAgent: "collection-client-test/1.0 (test@example.com)",
		Timeout:   5 * time.Second,
	}
	client, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return client
}

func TestNew_RequiresUserAgent(t *testing.T) {
	_, err := New(Config{BaseURL: "http://localhost:1"})
	if err == nil {
		t.Fatal("New() without user-agent succeeded")
	}
}

func TestNew_Defaults(t *testing.T) {
	client, err := New(Config{UserAgent: "test/1.0"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if client.config.BaseURL != DefaultBaseURL {
		t.Errorf("BaseURL = %s, want %s", client.config.BaseURL, DefaultBaseURL)
	}
	if client.config.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", client.config.Timeout)
	}
}

func TestNew_TrimsTrailingSlash(t *testing.T) {
	client, err := New(Config{
		BaseURL:   "http://localhost:8080/v1/",
		UserAgent: "test/1.0",
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if got := client.ObjectURL(42); got != "http://localhost:8080/v1/objects/42" {
		t.Errorf("ObjectURL(42) = %s", got)
	}
}

func TestSearch(t *testing.T) {
	mock := testutil.NewMockCatalog()
	defer mock.Close()
	mock.SetSearchResults(436535, 437980, 436105)

	client := newTestClient(t, mock)

	ids, err := client.Search(context.Background(), SearchQuery{Term: "sunflower"})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	want := []int{436535, 437980, 436105}
	if len(ids) != len(want) {
		t.Fatalf("Search() returned %d IDs, want %d", len(ids), len(want))
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("IDs[%d] = %d, want %d (order must be preserved)", i, ids[i], want[i])
		}
	}
}

func TestSearch_EmptyResult(t *testing.T) {
	mock := testutil.NewMockCatalog()
	defer mock.Close()

	client := newTestClient(t, mock)

	ids, err := client.Search(context.Background(), SearchQuery{Term: "xyzzy"})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("Search() returned %d IDs, want 0", len(ids))
	}
}

func TestSearch_SendsUserAgent(t *testing.T) {
	mock := testutil.NewMockCatalog()
	defer mock.Close()

	client := newTestClient(t, mock)

	if _, err := client.Search(context.Background(), SearchQuery{Term: "cat"}); err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if got := mock.GetLastUserAgent(); got != "collection-client-test/1.0 (test@example.com)" {
		t.Errorf("User-Agent = %q", got)
	}
}

func TestSearchURLs(t *testing.T) {
	mock := testutil.NewMockCatalog()
	defer mock.Close()
	mock.SetSearchResults(10, 20)

	client := newTestClient(t, mock)

	urls, err := client.SearchURLs(context.Background(), "cat")
	if err != nil {
		t.Fatalf("SearchURLs() error = %v", err)
	}
	want := []string{mock.URL() + "/objects/10", mock.URL() + "/objects/20"}
	if len(urls) != 2 || urls[0] != want[0] || urls[1] != want[1] {
		t.Errorf("SearchURLs() = %v, want %v", urls, want)
	}
}

func TestFetchObject(t *testing.T) {
	mock := testutil.NewMockCatalog()
	defer mock.Close()
	mock.SetObjectResponse(436535, testutil.MockResponse{
		StatusCode: http.StatusOK,
		Body:       testutil.ObjectDocument(436535, "Wheat Field with Cypresses"),
	})

	client := newTestClient(t, mock)

	doc, err := client.FetchObject(context.Background(), client.ObjectURL(436535))
	if err != nil {
		t.Fatalf("FetchObject() error = %v", err)
	}

	if got := doc.ObjectID(); got != 436535 {
		t.Errorf("ObjectID() = %d, want 436535", got)
	}
	if got := doc.Title(); got != "Wheat Field with Cypresses" {
		t.Errorf("Title() = %q", got)
	}
	if got := doc.Medium(); got != "Oil on canvas" {
		t.Errorf("Medium() = %q", got)
	}
}

func TestFetchObject_ErrorClassification(t *testing.T) {
	tests := []struct {
		name      string
		response  testutil.MockResponse
		wantClass ErrorClass
		wantCode  int
	}{
		{
			name:      "not found",
			response:  testutil.NewNotFoundResponse(),
			wantClass: ErrorClassClient,
			wantCode:  http.StatusNotFound,
		},
		{
			name:      "forbidden",
			response:  testutil.NewForbiddenResponse(),
			wantClass: ErrorClassClient,
			wantCode:  http.StatusForbidden,
		},
		{
			name:      "server error",
			response:  testutil.MockResponse{StatusCode: http.StatusBadGateway, Body: "bad gateway"},
			wantClass: ErrorClassServer,
			wantCode:  http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := testutil.NewMockCatalog()
			defer mock.Close()
			mock.SetObjectResponse(1, tt.response)

			client := newTestClient(t, mock)

			_, err := client.FetchObject(context.Background(), client.ObjectURL(1))
			if err == nil {
				t.Fatal("FetchObject() succeeded, want error")
			}

			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("Error is %T, want *APIError", err)
			}
			if apiErr.Class != tt.wantClass {
				t.Errorf("Class = %s, want %s", apiErr.Class, tt.wantClass)
			}
			if apiErr.StatusCode != tt.wantCode {
				t.Errorf("StatusCode = %d, want %d", apiErr.StatusCode, tt.wantCode)
			}
		})
	}
}

func TestFetchObject_EmptyBody(t *testing.T) {
	mock := testutil.NewMockCatalog()
	defer mock.Close()
	mock.SetObjectResponse(1, testutil.NewEmptyBodyResponse())

	client := newTestClient(t, mock)

	_, err := client.FetchObject(context.Background(), client.ObjectURL(1))
	if !errors.Is(err, ErrEmptyBody) {
		t.Fatalf("FetchObject() error = %v, want ErrEmptyBody", err)
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Error is %T, want *APIError", err)
	}
	if apiErr.Class != ErrorClassClient {
		t.Errorf("Class = %s, want %s", apiErr.Class, ErrorClassClient)
	}
}

func TestFetchObject_NetworkError(t *testing.T) {
	mock := testutil.NewMockCatalog()
	client := newTestClient(t, mock)
	url := client.ObjectURL(1)
	mock.Close()

	_, err := client.FetchObject(context.Background(), url)
	if err == nil {
		t.Fatal("FetchObject() against a closed server succeeded")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Error is %T, want *APIError", err)
	}
	if apiErr.Class != ErrorClassNetwork {
		t.Errorf("Class = %s, want %s", apiErr.Class, ErrorClassNetwork)
	}
}

func TestFetchObject_MalformedJSON(t *testing.T) {
	mock := testutil.NewMockCatalog()
	defer mock.Close()
	mock.SetObjectResponse(1, testutil.MockResponse{
		StatusCode: http.StatusOK,
		Body:       `{"title": `,
	})

	client := newTestClient(t, mock)

	_, err := client.FetchObject(context.Background(), client.ObjectURL(1))
	if err == nil {
		t.Fatal("FetchObject() with malformed JSON succeeded")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Error is %T, want *APIError", err)
	}
}

func TestDepartments(t *testing.T) {
	mock := testutil.NewMockCatalog()
	defer mock.Close()

	client := newTestClient(t, mock)

	departments, err := client.Departments(context.Background())
	if err != nil {
		t.Fatalf("Departments() error = %v", err)
	}
	if len(departments) != 2 {
		t.Fatalf("Departments() returned %d entries, want 2", len(departments))
	}
	if departments[0].ID != 1 || departments[0].DisplayName != "American Decorative Arts" {
		t.Errorf("Departments()[0] = %+v", departments[0])
	}
}

func TestEndpointLabel(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://example.org/v1/objects/436535", "/objects"},
		{"https://example.org/v1/search?q=cat", "/search"},
		{"https://example.org/v1/departments", "/departments"},
		{"https://example.org/v1/health", "other"},
	}

	for _, tt := range tests {
		if got := endpointLabel(tt.url); got != tt.want {
			t.Errorf("endpointLabel(%s) = %s, want %s", tt.url, got, tt.want)
		}
	}
}
