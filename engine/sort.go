package engine

import (
	"sort"

	"estatefind/models"
)

// SortKey selects the ordering of a listing collection.
type SortKey string

const (
	SortPriceAsc    SortKey = "price-asc"
	SortPriceDesc   SortKey = "price-desc"
	SortUpdatedDesc SortKey = "date-desc"
	SortUpdatedAsc  SortKey = "date-asc"
	SortAreaDesc    SortKey = "area-desc"
	SortAreaAsc     SortKey = "area-asc"
)

// ParseSortKey maps a wire value onto a SortKey, defaulting to
// update-time descending, which is what the upstream feed serves.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortPriceAsc, SortPriceDesc, SortUpdatedDesc, SortUpdatedAsc, SortAreaDesc, SortAreaAsc:
		return SortKey(s)
	default:
		return SortUpdatedDesc
	}
}

// Sort returns a stably ordered copy of records. Ties keep their input
// order because upstream pagination order is meaningful. Missing numeric
// fields sort as zero; missing timestamps as the zero instant.
func Sort(records []models.Property, key SortKey) []models.Property {
	sorted := make([]models.Property, len(records))
	copy(sorted, records)

	less := lessFunc(key)
	if less == nil {
		return sorted
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return less(sorted[i], sorted[j])
	})
	return sorted
}

func lessFunc(key SortKey) func(a, b models.Property) bool {
	switch key {
	case SortPriceAsc:
		return func(a, b models.Property) bool { return a.Price < b.Price }
	case SortPriceDesc:
		return func(a, b models.Property) bool { return a.Price > b.Price }
	case SortUpdatedDesc:
		return func(a, b models.Property) bool { return a.UpdatedAt.After(b.UpdatedAt) }
	case SortUpdatedAsc:
		return func(a, b models.Property) bool { return a.UpdatedAt.Before(b.UpdatedAt) }
	case SortAreaDesc:
		return func(a, b models.Property) bool { return a.Sqft > b.Sqft }
	case SortAreaAsc:
		return func(a, b models.Property) bool { return a.Sqft < b.Sqft }
	default:
		return nil
	}
}
