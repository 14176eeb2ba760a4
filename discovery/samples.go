package discovery

import (
	_ "embed"
	"encoding/json"
	"strings"

	"estatefind/models"
)

//go:embed sample_properties.json
var sampleData []byte

func sampleHits() []models.DiscoveryHit {
	var hits []models.DiscoveryHit
	if err := json.Unmarshal(sampleData, &hits); err != nil {
		// The dataset ships with the binary; a decode failure is a build
		// defect, surfaced by the package tests rather than at runtime.
		return nil
	}
	return hits
}

// samplePage builds a provider-shaped page from the bundled dataset.
// A for-sale request converts the rental samples the way the real
// provider would price them.
func (c *Client) samplePage(purpose string, limit int) *models.DiscoveryPage {
	hits := make([]models.DiscoveryHit, 0, len(c.samples))
	for _, h := range c.samples {
		if purpose == "for-sale" {
			h.Purpose = "for-sale"
			h.Price = h.Price * 15
			h.RentFrequency = ""
		}
		hits = append(hits, h)
		if len(hits) == limit {
			break
		}
	}
	return &models.DiscoveryPage{
		Hits:    hits,
		NbHits:  len(hits),
		Page:    1,
		NbPages: 1,
	}
}

func (c *Client) filteredSamplePage(f Filters) *models.DiscoveryPage {
	hits := make([]models.DiscoveryHit, 0, len(c.samples))
	for _, h := range c.samples {
		if f.MinPrice > 0 && h.Price < float64(f.MinPrice) {
			continue
		}
		if f.MaxPrice > 0 && h.Price > float64(f.MaxPrice) {
			continue
		}
		if f.RoomsMin > 0 && h.Rooms < f.RoomsMin {
			continue
		}
		if f.RoomsMax > 0 && h.Rooms > f.RoomsMax {
			continue
		}
		if f.BathsMin > 0 && h.Baths < f.BathsMin {
			continue
		}
		if f.BathsMax > 0 && h.Baths > f.BathsMax {
			continue
		}
		if f.AreaMin > 0 && h.Area < float64(f.AreaMin) {
			continue
		}
		if f.AreaMax > 0 && h.Area > float64(f.AreaMax) {
			continue
		}
		hits = append(hits, h)
		if len(hits) == f.PageSize {
			break
		}
	}
	return &models.DiscoveryPage{
		Hits:    hits,
		NbHits:  len(hits),
		Page:    1,
		NbPages: 1,
	}
}

func (c *Client) sampleLocations(query string) []models.DiscoveryLocation {
	query = strings.ToLower(query)
	var out []models.DiscoveryLocation
	seen := make(map[string]bool)
	for _, h := range c.samples {
		for _, loc := range h.Location {
			if seen[loc.ExternalID] {
				continue
			}
			if strings.Contains(strings.ToLower(loc.Name), query) {
				seen[loc.ExternalID] = true
				out = append(out, loc)
			}
		}
	}
	return out
}
