package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estatefind/models"
)

func fixtureProperties() []models.Property {
	return []models.Property{
		{ID: "p1", Title: "Luxury Loft Downtown", Type: "apartment", City: "New York", State: "NY", Bedrooms: 2, Bathrooms: 2, Sqft: 1200, Price: 4200},
		{ID: "p2", Title: "Family House with Garden", Type: "house", City: "Austin", State: "TX", Bedrooms: 4, Bathrooms: 3, Sqft: 2400, Price: 3100},
		{ID: "p3", Title: "Beachside Condo", Type: "condo", City: "Miami", State: "FL", Bedrooms: 1, Bathrooms: 1, Sqft: 850, Price: 2700},
		{ID: "p4", Title: "Modern Villa Retreat", Type: "villa", City: "Austin", State: "TX", Bedrooms: 5, Bathrooms: 4, Sqft: 3800, Price: 9800},
		{ID: "p5", Title: "Compact Studio", Type: "apartment", City: "Seattle", State: "WA", Bedrooms: 0, Bathrooms: 1, Sqft: 500, Price: 1500},
	}
}

func ids(records []models.Property) []string {
	out := make([]string, 0, len(records))
	for _, p := range records {
		out = append(out, p.ID)
	}
	return out
}

func TestFilterDefaultCriteriaIsIdentity(t *testing.T) {
	records := fixtureProperties()
	got := Filter(records, DefaultCriteria())
	assert.Equal(t, records, got)
}

func TestFilterZeroCriteriaIsIdentity(t *testing.T) {
	// A zero Criteria carries empty selectors, which are sentinels too.
	records := fixtureProperties()
	got := Filter(records, Criteria{})
	assert.Equal(t, records, got)
}

func TestFilterOutputIsOrderPreservingSubsequence(t *testing.T) {
	records := fixtureProperties()
	got := Filter(records, Criteria{MinBedrooms: 2})

	require.NotEmpty(t, got)
	pos := 0
	for _, p := range got {
		found := false
		for ; pos < len(records); pos++ {
			if records[pos].ID == p.ID {
				found = true
				pos++
				break
			}
		}
		assert.True(t, found, "record %s out of input order or not from input", p.ID)
	}
}

func TestFilterSearchClause(t *testing.T) {
	records := fixtureProperties()

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"exact title substring", "Beachside", []string{"p3"}},
		{"case insensitive", "lUxUrY lOfT", []string{"p1"}},
		{"matches city", "austin", []string{"p2", "p4"}},
		{"matches state", "WA", []string{"p5"}},
		{"no match anywhere", "zzz-nowhere", []string{}},
		{"whitespace only means no constraint", "   ", []string{"p1", "p2", "p3", "p4", "p5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(records, Criteria{Query: tt.query})
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFilterTypeClauseIsCaseSensitive(t *testing.T) {
	records := fixtureProperties()

	got := Filter(records, Criteria{Type: "apartment"})
	assert.Equal(t, []string{"p1", "p5"}, ids(got))

	got = Filter(records, Criteria{Type: "Apartment"})
	assert.Empty(t, got)
}

func TestFilterCityClause(t *testing.T) {
	records := fixtureProperties()
	got := Filter(records, Criteria{City: "Austin"})
	assert.Equal(t, []string{"p2", "p4"}, ids(got))
}

func TestFilterBedroomLowerBound(t *testing.T) {
	records := fixtureProperties()

	// bedrooms=0 (unset) is excluded whenever the minimum is active...
	got := Filter(records, Criteria{MinBedrooms: 1})
	assert.NotContains(t, ids(got), "p5")

	// ...and included whenever it is not.
	got = Filter(records, Criteria{MinBedrooms: 0})
	assert.Contains(t, ids(got), "p5")
}

func TestFilterBathroomLowerBound(t *testing.T) {
	records := fixtureProperties()
	got := Filter(records, Criteria{MinBathrooms: 3})
	assert.Equal(t, []string{"p2", "p4"}, ids(got))
}

func TestFilterSizeBuckets(t *testing.T) {
	records := fixtureProperties()

	under := Filter(records, Criteria{Size: SizeUnder})
	assert.Equal(t, []string{"p1", "p3", "p5"}, ids(under))

	above := Filter(records, Criteria{Size: SizeAbove})
	assert.Equal(t, []string{"p2", "p4"}, ids(above))

	// A record sitting exactly on the threshold belongs to the upper bucket.
	edge := []models.Property{{ID: "edge", Sqft: SizeThreshold}}
	assert.Empty(t, Filter(edge, Criteria{Size: SizeUnder}))
	assert.Len(t, Filter(edge, Criteria{Size: SizeAbove}), 1)
}

func TestFilterClausesCompose(t *testing.T) {
	records := fixtureProperties()
	got := Filter(records, Criteria{
		Query:        "tx",
		City:         "Austin",
		MinBedrooms:  5,
		MinBathrooms: 4,
		Size:         SizeAbove,
	})
	assert.Equal(t, []string{"p4"}, ids(got))
}

func TestCriteriaIsDefault(t *testing.T) {
	assert.True(t, DefaultCriteria().IsDefault())
	assert.True(t, Criteria{Query: "  "}.IsDefault())
	assert.False(t, Criteria{Query: "loft"}.IsDefault())
	assert.False(t, Criteria{MinBathrooms: 1}.IsDefault())
	assert.False(t, Criteria{Size: SizeUnder}.IsDefault())
}
