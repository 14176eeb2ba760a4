// Package client is the app-side SDK for the property service: typed
// calls over the REST contract, the session stream, and the screen store
// that drives listing views through the engine.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"estatefind/engine"
	"estatefind/models"
)

const defaultTimeout = 15 * time.Second

// ListOptions carries the server-side selection for a list request.
type ListOptions struct {
	Criteria engine.Criteria
	Sort     engine.SortKey
	Page     int
	Limit    int
}

// PropertyClient consumes the property service endpoints.
type PropertyClient struct {
	baseURL string
	httpc   *http.Client
}

// NewPropertyClient builds a client against baseURL, e.g.
// "http://localhost:8080/api". A nil httpc selects a default client with
// a request timeout.
func NewPropertyClient(baseURL string, httpc *http.Client) *PropertyClient {
	if httpc == nil {
		httpc = &http.Client{Timeout: defaultTimeout}
	}
	return &PropertyClient{baseURL: baseURL, httpc: httpc}
}

// GetAllProperties fetches one page of listings.
func (pc *PropertyClient) GetAllProperties(ctx context.Context, opts ListOptions) ([]models.Property, error) {
	q := url.Values{}
	c := opts.Criteria
	if c.Query != "" {
		q.Set("q", c.Query)
	}
	if c.Type != "" && c.Type != engine.AllSentinel {
		q.Set("type", c.Type)
	}
	if c.City != "" && c.City != engine.AllSentinel {
		q.Set("city", c.City)
	}
	if c.MinBedrooms > 0 {
		q.Set("min_bedrooms", strconv.Itoa(c.MinBedrooms))
	}
	if c.MinBathrooms > 0 {
		q.Set("min_bathrooms", strconv.Itoa(c.MinBathrooms))
	}
	if c.Size == engine.SizeUnder || c.Size == engine.SizeAbove {
		q.Set("size", string(c.Size))
	}
	if opts.Sort != "" {
		q.Set("sort", string(opts.Sort))
	}
	if opts.Page > 0 {
		q.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}

	var resp models.PropertyListResponse
	if err := pc.getJSON(ctx, "/properties", q, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &Error{Code: CodeNetwork, Message: "property service reported failure"}
	}
	return resp.Data, nil
}

// GetProperty fetches one listing by id.
func (pc *PropertyClient) GetProperty(ctx context.Context, id string) (*models.Property, error) {
	var resp models.PropertyResponse
	if err := pc.getJSON(ctx, "/properties/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &Error{Code: CodeNetwork, Message: "property service reported failure"}
	}
	return &resp.Data, nil
}

// SearchProperties runs a free-text search over title, city and state.
func (pc *PropertyClient) SearchProperties(ctx context.Context, query string) ([]models.Property, error) {
	q := url.Values{}
	q.Set("q", query)

	var resp models.PropertyListResponse
	if err := pc.getJSON(ctx, "/search", q, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &Error{Code: CodeNetwork, Message: "property service reported failure"}
	}
	return resp.Data, nil
}

// GetFavorites fetches the property records of the user's favorite set.
func (pc *PropertyClient) GetFavorites(ctx context.Context, userID string) ([]models.Property, error) {
	var resp models.PropertyListResponse
	if err := pc.getJSON(ctx, "/favorites/"+url.PathEscape(userID), nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &Error{Code: CodeNetwork, Message: "property service reported failure"}
	}
	return resp.Data, nil
}

// ToggleFavorite flips the user's membership for one property and returns
// the server-confirmed new state. Callers must display the returned value,
// not their prior local guess: a concurrent toggle from another session
// can race, and the server's answer wins.
func (pc *PropertyClient) ToggleFavorite(ctx context.Context, userID, propertyID string) (bool, error) {
	body, err := json.Marshal(models.ToggleFavoriteRequest{UserID: userID, PropertyID: propertyID})
	if err != nil {
		return false, &Error{Code: CodeValidation, Message: "could not encode toggle request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, pc.baseURL+"/favorites", bytes.NewReader(body))
	if err != nil {
		return false, &Error{Code: CodeNetwork, Message: "could not build toggle request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := pc.httpc.Do(req)
	if err != nil {
		return false, &Error{Code: CodeNetwork, Message: "favorite toggle failed", Err: err}
	}
	defer resp.Body.Close()

	if err := statusError(resp.StatusCode, "favorite toggle"); err != nil {
		return false, err
	}

	var out models.ToggleFavoriteResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return false, &Error{Code: CodeNetwork, Message: "could not decode toggle response", Err: err}
	}
	if !out.Success {
		return false, &Error{Code: CodeNetwork, Message: "favorite service reported failure"}
	}
	return out.IsFavorite, nil
}

func (pc *PropertyClient) getJSON(ctx context.Context, path string, q url.Values, dest interface{}) error {
	u := pc.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &Error{Code: CodeNetwork, Message: "could not build request", Err: err}
	}

	resp, err := pc.httpc.Do(req)
	if err != nil {
		return &Error{Code: CodeNetwork, Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	if err := statusError(resp.StatusCode, path); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return &Error{Code: CodeNetwork, Message: "could not decode response", Err: err}
	}
	return nil
}

func statusError(status int, what string) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusNotFound:
		return &Error{Code: CodeNotFound, Message: fmt.Sprintf("%s: not found", what)}
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &Error{Code: CodeAuth, Message: fmt.Sprintf("%s: not authorized", what)}
	case status == http.StatusTooManyRequests:
		return &Error{Code: CodeRateLimited, Message: fmt.Sprintf("%s: rate limited", what)}
	default:
		return &Error{Code: CodeNetwork, Message: fmt.Sprintf("%s: status %d", what, status)}
	}
}
