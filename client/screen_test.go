package client

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estatefind/engine"
	"estatefind/models"
)

// fakeSource scripts the listing API for screen tests.
type fakeSource struct {
	mu       sync.Mutex
	records  []models.Property
	listErr  error
	toggleFn func(userID, propertyID string) (bool, error)
	release  chan struct{} // when set, GetAllProperties blocks until closed
}

func (f *fakeSource) GetAllProperties(ctx context.Context, opts ListOptions) ([]models.Property, error) {
	f.mu.Lock()
	release := f.release
	records := f.records
	err := f.listErr
	f.mu.Unlock()

	if release != nil {
		<-release
	}
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (f *fakeSource) ToggleFavorite(ctx context.Context, userID, propertyID string) (bool, error) {
	return f.toggleFn(userID, propertyID)
}

func TestScreenLoadTransitions(t *testing.T) {
	src := &fakeSource{records: []models.Property{{ID: "p1"}}}
	s := NewScreen(src)
	assert.Equal(t, StateLoading, s.State())

	require.NoError(t, s.Load(context.Background()))
	assert.Equal(t, StateReady, s.State())
	assert.Len(t, s.View(), 1)
}

func TestScreenLoadFailureThenRetry(t *testing.T) {
	src := &fakeSource{listErr: &Error{Code: CodeNetwork, Message: "down"}}
	s := NewScreen(src)

	err := s.Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, StateError, s.State())
	assert.Equal(t, CodeNetwork, CodeOf(s.Err()))

	// Retry is an explicit user action; a successful one reaches Ready.
	src.mu.Lock()
	src.listErr = nil
	src.records = []models.Property{{ID: "p1"}}
	src.mu.Unlock()

	require.NoError(t, s.Load(context.Background()))
	assert.Equal(t, StateReady, s.State())
	assert.NoError(t, s.Err())
}

func TestFilterChangesNeverLeaveReady(t *testing.T) {
	src := &fakeSource{records: fixtureRecords()}
	s := NewScreen(src)
	require.NoError(t, s.Load(context.Background()))

	s.SetCriteria(engine.Criteria{City: "Austin"})
	assert.Equal(t, StateReady, s.State())
	s.SetSortKey(engine.SortPriceAsc)
	assert.Equal(t, StateReady, s.State())
	s.ResetCriteria()
	assert.Equal(t, StateReady, s.State())
}

func TestSlowFetchIsFilteredAgainstCurrentCriteria(t *testing.T) {
	src := &fakeSource{records: fixtureRecords(), release: make(chan struct{})}
	s := NewScreen(src)

	done := make(chan error, 1)
	go func() { done <- s.Load(context.Background()) }()

	// While the fetch is outstanding, the user narrows the filter.
	s.SetCriteria(engine.Criteria{City: "Austin"})

	close(src.release)
	require.NoError(t, <-done)

	// The late-arriving collection renders under the criteria active now,
	// not the ones active when the fetch was issued.
	view := s.View()
	require.NotEmpty(t, view)
	for _, p := range view {
		assert.Equal(t, "Austin", p.City)
	}
}

func TestToggleFavoriteAppliesServerConfirmation(t *testing.T) {
	src := &fakeSource{
		records:  fixtureRecords(),
		toggleFn: func(_, _ string) (bool, error) { return true, nil },
	}
	s := NewScreen(src)

	assert.False(t, s.IsFavorite("p1"))
	got, err := s.ToggleFavorite(context.Background(), "user-1", "p1")
	require.NoError(t, err)
	assert.True(t, got)
	assert.True(t, s.IsFavorite("p1"))
}

func TestToggleFailureLeavesMembershipUnchanged(t *testing.T) {
	src := &fakeSource{
		records:  fixtureRecords(),
		toggleFn: func(_, _ string) (bool, error) { return false, &Error{Code: CodeNetwork, Message: "down"} },
	}
	s := NewScreen(src)

	got, err := s.ToggleFavorite(context.Background(), "user-1", "p1")
	require.Error(t, err)
	assert.False(t, got)
	assert.False(t, s.IsFavorite("p1"), "no optimistic flip to roll back")
}

func TestToggleSamePropertyIsSerialized(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	src := &fakeSource{
		toggleFn: func(_, _ string) (bool, error) {
			close(started)
			<-release
			return true, nil
		},
	}
	s := NewScreen(src)

	done := make(chan error, 1)
	go func() {
		_, err := s.ToggleFavorite(context.Background(), "user-1", "p1")
		done <- err
	}()
	<-started

	// A second toggle for the same property while one is outstanding is
	// refused without touching the snapshot.
	_, err := s.ToggleFavorite(context.Background(), "user-1", "p1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrToggleInFlight) || err == ErrToggleInFlight)

	close(release)
	require.NoError(t, <-done)
	assert.True(t, s.IsFavorite("p1"))

	// Once resolved, the control is usable again.
	src.toggleFn = func(_, _ string) (bool, error) { return false, nil }
	got, err := s.ToggleFavorite(context.Background(), "user-1", "p1")
	require.NoError(t, err)
	assert.False(t, got)
}

func TestToggleDifferentPropertiesMayOverlap(t *testing.T) {
	release := make(chan struct{})
	src := &fakeSource{
		toggleFn: func(_, propertyID string) (bool, error) {
			if propertyID == "p1" {
				<-release
			}
			return true, nil
		},
	}
	s := NewScreen(src)

	done := make(chan error, 1)
	go func() {
		_, err := s.ToggleFavorite(context.Background(), "user-1", "p1")
		done <- err
	}()

	// p2 completes while p1 is still outstanding.
	got, err := s.ToggleFavorite(context.Background(), "user-1", "p2")
	require.NoError(t, err)
	assert.True(t, got)

	close(release)
	require.NoError(t, <-done)
}

func TestSeedFavorites(t *testing.T) {
	s := NewScreen(&fakeSource{})
	s.SeedFavorites([]models.Property{{ID: "p2"}, {ID: "p4"}})
	assert.True(t, s.IsFavorite("p2"))
	assert.True(t, s.IsFavorite("p4"))
	assert.False(t, s.IsFavorite("p1"))
}

func TestHomeWindowsAreDisjoint(t *testing.T) {
	records := make([]models.Property, 10)
	for i := range records {
		records[i] = models.Property{ID: string(rune('a' + i))}
	}
	src := &fakeSource{records: records}
	s := NewScreen(src)
	require.NoError(t, s.Load(context.Background()))

	featured, recommended := s.HomeWindows(5, 5)
	require.Len(t, featured, 5)
	require.Len(t, recommended, 5)
	seen := map[string]bool{}
	for _, p := range featured {
		seen[p.ID] = true
	}
	for _, p := range recommended {
		assert.False(t, seen[p.ID])
	}
}

func fixtureRecords() []models.Property {
	return []models.Property{
		{ID: "p1", Title: "Loft", City: "New York", State: "NY", Type: "apartment", Bedrooms: 2, Bathrooms: 2, Sqft: 1200, Price: 4200},
		{ID: "p2", Title: "House", City: "Austin", State: "TX", Type: "house", Bedrooms: 4, Bathrooms: 3, Sqft: 2400, Price: 3100},
		{ID: "p3", Title: "Condo", City: "Miami", State: "FL", Type: "condo", Bedrooms: 1, Bathrooms: 1, Sqft: 850, Price: 2700},
	}
}
