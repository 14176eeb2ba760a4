package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"estatefind/config"
	"estatefind/discovery"
)

// FeedController serves the featured and recommended discovery carousels
// from the secondary provider. The provider is best-effort: the discovery
// client already degrades to its bundled samples, so this surface never
// reports the provider's throttling to users.
type FeedController struct {
	client *discovery.Client
}

func NewFeedController() *FeedController {
	return &FeedController{
		client: discovery.NewClient(
			config.GetEnv("DISCOVERY_BASE_URL", ""),
			config.GetEnv("DISCOVERY_API_KEY", ""),
		),
	}
}

func feedLimit(c echo.Context) int {
	limit := 10
	if v := c.QueryParam("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	return limit
}

// GetFeatured returns the most recently listed properties.
func (fc *FeedController) GetFeatured(c echo.Context) error {
	page, err := fc.client.ListByLocation(c.Request().Context(), "", "for-rent", 1, feedLimit(c), "date-desc")
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch featured properties"})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "data": page.Hits})
}

// GetRecommended returns the provider's popularity-ranked properties.
func (fc *FeedController) GetRecommended(c echo.Context) error {
	page, err := fc.client.ListByLocation(c.Request().Context(), "", "for-rent", 1, feedLimit(c), "popularity")
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch recommended properties"})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "data": page.Hits})
}

// Autocomplete suggests locations for the discovery search box.
func (fc *FeedController) Autocomplete(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Query is required"})
	}
	locations, err := fc.client.Autocomplete(c.Request().Context(), query)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch locations"})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "data": locations})
}
