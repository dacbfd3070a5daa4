package catalog

import (
	"context"
	"net/url"
	"strconv"
)

// URL parameter names for search requests.
const (
	paramArtistOrCulture = "artistOrCulture"
	paramDepartmentID    = "departmentId"
	paramGeoLocation     = "geoLocation"
	paramHasImages       = "hasImages"
	paramMedium          = "medium"
	paramQ               = "q"
	paramTitle           = "title"
)

// SearchQuery describes one search against the collection API.
// Term is the free-text query; the remaining fields narrow it.
type SearchQuery struct {
	// Term is the free-text search string (the q parameter).
	Term string

	// Title restricts the term match to object titles.
	Title bool

	// ArtistOrCulture restricts the term match to artist and culture fields.
	ArtistOrCulture bool

	// Medium filters by medium or technique, e.g. "Paintings".
	Medium string

	// DepartmentID filters by curatorial department (0 means all).
	DepartmentID int

	// GeoLocation filters by geographic location, e.g. "France".
	GeoLocation string

	// HasImages restricts results to objects with images.
	HasImages bool
}

// Values encodes the query as URL parameters. Boolean narrowing
// parameters are omitted unless set, matching what the API expects.
func (q SearchQuery) Values() url.Values {
	v := url.Values{}
	v.Set(paramQ, q.Term)
	if q.Title {
		v.Set(paramTitle, "true")
	}
	if q.ArtistOrCulture {
		v.Set(paramArtistOrCulture, "true")
	}
	if q.Medium != "" {
		v.Set(paramMedium, q.Medium)
	}
	if q.DepartmentID > 0 {
		v.Set(paramDepartmentID, strconv.Itoa(q.DepartmentID))
	}
	if q.GeoLocation != "" {
		v.Set(paramGeoLocation, q.GeoLocation)
	}
	if q.HasImages {
		v.Set(paramHasImages, "true")
	}
	return v
}

// ScopedSearcher binds fixed narrowing filters to free-text terms, so a
// consumer that only deals in terms (such as the fetch scheduler) still
// searches within a chosen scope. The Term field of Filters is ignored.
type ScopedSearcher struct {
	Client  *Client
	Filters SearchQuery
}

// SearchURLs resolves a free-text term into the ordered list of object
// document URLs matching the bound filters.
func (s ScopedSearcher) SearchURLs(ctx context.Context, term string) ([]string, error) {
	query := s.Filters
	query.Term = term

	ids, err := s.Client.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	urls := make([]string, len(ids))
	for i, id := range ids {
		urls[i] = s.Client.ObjectURL(id)
	}
	return urls, nil
}
