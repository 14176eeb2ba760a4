package engine

import (
	"strings"

	"estatefind/models"
)

// Filter returns the order-preserving subsequence of records that pass
// every active clause of c. Sentinel clauses are skipped, never excluding.
func Filter(records []models.Property, c Criteria) []models.Property {
	query := strings.ToLower(strings.TrimSpace(c.Query))

	filtered := make([]models.Property, 0, len(records))
	for _, p := range records {
		if matches(p, c, query) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// matches applies the clauses as a short-circuit conjunction.
func matches(p models.Property, c Criteria, query string) bool {
	if query != "" {
		if !strings.Contains(strings.ToLower(p.Title), query) &&
			!strings.Contains(strings.ToLower(p.City), query) &&
			!strings.Contains(strings.ToLower(p.State), query) {
			return false
		}
	}
	if c.hasType() && p.Type != c.Type {
		return false
	}
	if c.hasCity() && p.City != c.City {
		return false
	}
	if c.MinBedrooms > 0 && p.Bedrooms < c.MinBedrooms {
		return false
	}
	if c.MinBathrooms > 0 && p.Bathrooms < c.MinBathrooms {
		return false
	}
	switch c.Size {
	case SizeUnder:
		if p.Sqft >= SizeThreshold {
			return false
		}
	case SizeAbove:
		if p.Sqft < SizeThreshold {
			return false
		}
	}
	return true
}
