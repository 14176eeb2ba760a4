package client

import (
	"context"
	"sync"

	"estatefind/engine"
	"estatefind/models"
)

// ScreenState is the lifecycle position of a listing screen.
type ScreenState string

const (
	StateLoading ScreenState = "loading"
	StateReady   ScreenState = "ready"
	StateError   ScreenState = "error"
)

// ErrToggleInFlight is returned when a toggle for the same property is
// already outstanding; the UI disables the control until it resolves.
var ErrToggleInFlight = &Error{Code: CodeValidation, Message: "favorite toggle already in flight for this property"}

// listingSource is the slice of the API the screen store needs.
type listingSource interface {
	GetAllProperties(ctx context.Context, opts ListOptions) ([]models.Property, error)
	ToggleFavorite(ctx context.Context, userID, propertyID string) (bool, error)
}

// Screen holds one listing screen's view state: the latest fetched
// collection, the user's criteria and sort selection, and the rendered
// favorite snapshot. Filter, sort and compose are pure recomputations
// over whatever collection was fetched last, so a slow refresh landing
// after the user changed filters is still rendered against the current
// criteria.
type Screen struct {
	src listingSource

	mu       sync.Mutex
	state    ScreenState
	records  []models.Property
	criteria engine.Criteria
	sortKey  engine.SortKey
	lastErr  error

	favorites map[string]bool
	inflight  map[string]bool
}

// NewScreen creates a screen in the Loading state with default criteria.
func NewScreen(src listingSource) *Screen {
	return &Screen{
		src:       src,
		state:     StateLoading,
		criteria:  engine.DefaultCriteria(),
		sortKey:   engine.SortUpdatedDesc,
		favorites: make(map[string]bool),
		inflight:  make(map[string]bool),
	}
}

// Load fetches the collection fresh. Ready and Error both transition to
// Loading first; Loading transitions to Ready on success and to Error on
// failure. Whichever concurrent Load completes last owns the stored
// collection (completion order, not issuance order).
func (s *Screen) Load(ctx context.Context) error {
	s.mu.Lock()
	s.state = StateLoading
	s.mu.Unlock()

	records, err := s.src.GetAllProperties(ctx, ListOptions{Limit: 200})

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = StateError
		s.lastErr = err
		return err
	}
	s.records = records
	s.state = StateReady
	s.lastErr = nil
	return nil
}

// Refresh is the pull-to-refresh path; identical to Load.
func (s *Screen) Refresh(ctx context.Context) error {
	return s.Load(ctx)
}

// State returns the current screen state.
func (s *Screen) State() ScreenState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Err returns the last load failure, if the screen is in the Error state.
func (s *Screen) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// SetCriteria replaces the filter selection. Never changes screen state.
func (s *Screen) SetCriteria(c engine.Criteria) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria = c
}

// ResetCriteria restores the default (no-constraint) selection.
func (s *Screen) ResetCriteria() {
	s.SetCriteria(engine.DefaultCriteria())
}

// SetSortKey replaces the sort selection. Never changes screen state.
func (s *Screen) SetSortKey(key engine.SortKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sortKey = key
}

// Criteria returns the current selection.
func (s *Screen) Criteria() engine.Criteria {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.criteria
}

// View recomputes the rendered collection from the latest fetched records
// and the current criteria and sort key.
func (s *Screen) View() []models.Property {
	s.mu.Lock()
	defer s.mu.Unlock()
	return engine.Compose(s.records, s.criteria, s.sortKey)
}

// HomeWindows returns the featured and recommended carousels as disjoint
// slices of the composed view.
func (s *Screen) HomeWindows(featuredN, recommendedN int) (featured, recommended []models.Property) {
	return engine.Windows(s.View(), featuredN, recommendedN)
}

// IsFavorite reports the rendered favorite snapshot for one property.
func (s *Screen) IsFavorite(propertyID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.favorites[propertyID]
}

// SeedFavorites replaces the favorite snapshot, e.g. from GetFavorites on
// screen load.
func (s *Screen) SeedFavorites(properties []models.Property) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.favorites = make(map[string]bool, len(properties))
	for _, p := range properties {
		s.favorites[p.ID] = true
	}
}

// ToggleFavorite issues the toggle and applies the server-confirmed
// membership. The snapshot is never flipped optimistically: on failure
// the last known-good value stays rendered and the error is surfaced.
// Toggles for the same property are serialized; toggles for different
// properties may run concurrently.
func (s *Screen) ToggleFavorite(ctx context.Context, userID, propertyID string) (bool, error) {
	s.mu.Lock()
	if s.inflight[propertyID] {
		prev := s.favorites[propertyID]
		s.mu.Unlock()
		return prev, ErrToggleInFlight
	}
	s.inflight[propertyID] = true
	prev := s.favorites[propertyID]
	s.mu.Unlock()

	confirmed, err := s.src.ToggleFavorite(ctx, userID, propertyID)

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, propertyID)
	if err != nil {
		return prev, err
	}
	s.favorites[propertyID] = confirmed
	return confirmed, nil
}
