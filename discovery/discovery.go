// Package discovery consumes the secondary listings provider that feeds
// the discovery carousels. The provider is rate-limited and best-effort:
// any transport failure or throttling response falls back silently to a
// bundled sample dataset so the feed stays populated.
package discovery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"estatefind/models"
)

// ErrRateLimited is returned by the raw call path when the provider
// throttles. Callers of the public methods never see it; it is swallowed
// by the sample fallback.
var ErrRateLimited = errors.New("discovery provider rate limited")

const (
	defaultBaseURL     = "https://bayut.p.rapidapi.com"
	defaultLocationIDs = "5002,6020"
	requestTimeout     = 10 * time.Second
)

// Filters narrows a provider-side property search. Zero values are
// omitted from the request.
type Filters struct {
	LocationIDs string
	Purpose     string
	MinPrice    int
	MaxPrice    int
	RoomsMin    int
	RoomsMax    int
	BathsMin    int
	BathsMax    int
	AreaMin     int
	AreaMax     int
	CategoryID  string
	Page        int
	PageSize    int
	Sort        string
}

// Client talks to the provider with an API key and keeps the sample
// dataset at hand for fallback.
type Client struct {
	baseURL string
	apiKey  string
	host    string
	httpc   *http.Client
	samples []models.DiscoveryHit
}

// NewClient builds a Client for the given base URL and API key. An empty
// baseURL selects the production endpoint.
func NewClient(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	host := baseURL
	if u, err := url.Parse(baseURL); err == nil && u.Host != "" {
		host = u.Host
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		host:    host,
		httpc:   &http.Client{Timeout: requestTimeout},
		samples: sampleHits(),
	}
}

// ListByLocation fetches one page of listings for the given locations and
// purpose, falling back to the samples on failure.
func (c *Client) ListByLocation(ctx context.Context, locationIDs, purpose string, page, pageSize int, sort string) (*models.DiscoveryPage, error) {
	if locationIDs == "" {
		locationIDs = defaultLocationIDs
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	q := url.Values{}
	q.Set("locationExternalIDs", locationIDs)
	q.Set("purpose", purpose)
	q.Set("page", strconv.Itoa(page))
	q.Set("hitsPerPage", strconv.Itoa(pageSize))
	if sort != "" {
		q.Set("sort", sort)
	}
	q.Set("lang", "en")

	var result models.DiscoveryPage
	if err := c.get(ctx, "/properties/list", q, &result); err != nil {
		return c.samplePage(purpose, pageSize), nil
	}
	return &result, nil
}

// Detail fetches one listing by its provider-side external ID, falling
// back to the matching sample (or the first sample) on failure.
func (c *Client) Detail(ctx context.Context, externalID string) (*models.DiscoveryHit, error) {
	q := url.Values{}
	q.Set("externalID", externalID)
	q.Set("lang", "en")

	var hit models.DiscoveryHit
	if err := c.get(ctx, "/properties/detail", q, &hit); err != nil {
		for _, s := range c.samples {
			if s.ExternalID == externalID {
				sample := s
				return &sample, nil
			}
		}
		if len(c.samples) == 0 {
			return nil, err
		}
		sample := c.samples[0]
		return &sample, nil
	}
	return &hit, nil
}

// Search runs a filtered provider search. On failure the same filters are
// applied to the sample dataset.
func (c *Client) Search(ctx context.Context, f Filters) (*models.DiscoveryPage, error) {
	if f.LocationIDs == "" {
		f.LocationIDs = defaultLocationIDs
	}
	if f.Purpose == "" {
		f.Purpose = "for-rent"
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = 20
	}
	if f.Sort == "" {
		f.Sort = "date-desc"
	}

	q := url.Values{}
	q.Set("locationExternalIDs", f.LocationIDs)
	q.Set("purpose", f.Purpose)
	q.Set("page", strconv.Itoa(f.Page))
	q.Set("hitsPerPage", strconv.Itoa(f.PageSize))
	q.Set("sort", f.Sort)
	q.Set("lang", "en")
	setIfPositive(q, "priceMin", f.MinPrice)
	setIfPositive(q, "priceMax", f.MaxPrice)
	setIfPositive(q, "roomsMin", f.RoomsMin)
	setIfPositive(q, "roomsMax", f.RoomsMax)
	setIfPositive(q, "bathsMin", f.BathsMin)
	setIfPositive(q, "bathsMax", f.BathsMax)
	setIfPositive(q, "areaMin", f.AreaMin)
	setIfPositive(q, "areaMax", f.AreaMax)
	if f.CategoryID != "" {
		q.Set("categoryExternalID", f.CategoryID)
	}

	var page models.DiscoveryPage
	if err := c.get(ctx, "/properties/list", q, &page); err != nil {
		return c.filteredSamplePage(f), nil
	}
	return &page, nil
}

// Autocomplete suggests locations for a partial query. Rate-limited or
// failed calls fall back to a substring match over the sample locations.
func (c *Client) Autocomplete(ctx context.Context, query string) ([]models.DiscoveryLocation, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("lang", "en")

	var resp struct {
		Hits []models.DiscoveryLocation `json:"hits"`
	}
	if err := c.get(ctx, "/auto-complete", q, &resp); err != nil {
		return c.sampleLocations(query), nil
	}
	return resp.Hits, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("X-RapidAPI-Host", c.host)
	req.Header.Set("X-RapidAPI-Key", c.apiKey)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return ErrRateLimited
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("discovery provider returned status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(dest)
}

func setIfPositive(q url.Values, key string, v int) {
	if v > 0 {
		q.Set(key, strconv.Itoa(v))
	}
}
