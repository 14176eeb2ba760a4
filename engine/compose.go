package engine

import "estatefind/models"

// Compose is the render pipeline: filter by criteria, then stable-sort by
// key. It never mutates records.
func Compose(records []models.Property, c Criteria, key SortKey) []models.Property {
	return Sort(Filter(records, c), key)
}

// Windows slices records into a featured head window of up to featuredN
// records and a disjoint recommended window of up to recommendedN records
// immediately after it. The two windows are cut by index range, so a
// listing can never appear in both.
func Windows(records []models.Property, featuredN, recommendedN int) (featured, recommended []models.Property) {
	if featuredN < 0 {
		featuredN = 0
	}
	if recommendedN < 0 {
		recommendedN = 0
	}

	f := featuredN
	if f > len(records) {
		f = len(records)
	}
	r := f + recommendedN
	if r > len(records) {
		r = len(records)
	}
	return records[:f], records[f:r]
}

// Paginate cuts the 1-based page of the given size out of records,
// clamping at the collection bounds.
func Paginate(records []models.Property, page, limit int) []models.Property {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	start := (page - 1) * limit
	if start >= len(records) {
		return []models.Property{}
	}
	end := start + limit
	if end > len(records) {
		end = len(records)
	}
	return records[start:end]
}
