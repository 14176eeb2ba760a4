package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estatefind/engine"
	"estatefind/models"
)

func listServer(t *testing.T, check func(r *http.Request)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			check(r)
		}
		json.NewEncoder(w).Encode(models.PropertyListResponse{
			Success: true,
			Data:    []models.Property{{ID: "p1", Title: "Loft"}},
		})
	}))
}

func TestGetAllPropertiesEncodesCriteria(t *testing.T) {
	srv := listServer(t, func(r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/properties", r.URL.Path)
		assert.Equal(t, "loft", q.Get("q"))
		assert.Equal(t, "apartment", q.Get("type"))
		assert.Equal(t, "Austin", q.Get("city"))
		assert.Equal(t, "2", q.Get("min_bedrooms"))
		assert.Equal(t, "under1500", q.Get("size"))
		assert.Equal(t, "price-asc", q.Get("sort"))
	})
	defer srv.Close()

	pc := NewPropertyClient(srv.URL, nil)
	records, err := pc.GetAllProperties(context.Background(), ListOptions{
		Criteria: engine.Criteria{
			Query:       "loft",
			Type:        "apartment",
			City:        "Austin",
			MinBedrooms: 2,
			Size:        engine.SizeUnder,
		},
		Sort: engine.SortPriceAsc,
	})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "p1", records[0].ID)
}

func TestGetAllPropertiesOmitsSentinels(t *testing.T) {
	srv := listServer(t, func(r *http.Request) {
		q := r.URL.Query()
		assert.Empty(t, q.Get("type"))
		assert.Empty(t, q.Get("city"))
		assert.Empty(t, q.Get("min_bedrooms"))
		assert.Empty(t, q.Get("size"))
	})
	defer srv.Close()

	pc := NewPropertyClient(srv.URL, nil)
	_, err := pc.GetAllProperties(context.Background(), ListOptions{Criteria: engine.DefaultCriteria()})
	require.NoError(t, err)
}

func TestGetPropertyNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	pc := NewPropertyClient(srv.URL, nil)
	_, err := pc.GetProperty(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, CodeNotFound, CodeOf(err))
}

func TestStatusCodeMapping(t *testing.T) {
	tests := []struct {
		status int
		want   ErrorCode
	}{
		{http.StatusInternalServerError, CodeNetwork},
		{http.StatusBadGateway, CodeNetwork},
		{http.StatusUnauthorized, CodeAuth},
		{http.StatusForbidden, CodeAuth},
		{http.StatusNotFound, CodeNotFound},
		{http.StatusTooManyRequests, CodeRateLimited},
	}

	for _, tt := range tests {
		err := statusError(tt.status, "test")
		require.Error(t, err)
		assert.Equal(t, tt.want, CodeOf(err), "status %d", tt.status)
	}
	assert.NoError(t, statusError(http.StatusOK, "test"))
}

func TestEnvelopeFailureIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.PropertyListResponse{Success: false})
	}))
	defer srv.Close()

	pc := NewPropertyClient(srv.URL, nil)
	_, err := pc.GetAllProperties(context.Background(), ListOptions{})
	require.Error(t, err)
	assert.Equal(t, CodeNetwork, CodeOf(err))
}

func TestToggleFavoriteReturnsServerState(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/favorites", r.URL.Path)

		var req models.ToggleFavoriteRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "user-1", req.UserID)
		assert.Equal(t, "p1", req.PropertyID)

		json.NewEncoder(w).Encode(models.ToggleFavoriteResponse{Success: true, IsFavorite: true})
	}))
	defer srv.Close()

	pc := NewPropertyClient(srv.URL, nil)
	isFavorite, err := pc.ToggleFavorite(context.Background(), "user-1", "p1")
	require.NoError(t, err)
	assert.True(t, isFavorite)
}

func TestRetryableClassification(t *testing.T) {
	assert.True(t, (&Error{Code: CodeNetwork}).Retryable())
	assert.True(t, (&Error{Code: CodeAuth}).Retryable())
	assert.True(t, (&Error{Code: CodeRateLimited}).Retryable())
	assert.False(t, (&Error{Code: CodeValidation}).Retryable())
}
