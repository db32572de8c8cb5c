package mock

import (
	"context"
	"meetup-point-service/internal/domain"
	"meetup-point-service/internal/ports"
	"sync"
)

// MapsProvider is an in-memory ports.MapsProvider driven by fixtures.
// Lookups missing from the fixtures fail the way the real provider would.
type MapsProvider struct {
	mu sync.Mutex

	Geocodes    map[string]domain.LatLng
	GeocodeErrs map[string]error

	Places    []domain.Candidate
	SearchErr error

	Details     map[string]*domain.Details
	DetailsErrs map[string]error

	// Per-origin seconds keyed by destination LatLng.Key().
	Durations    map[string][2]int
	DurationErrs map[string]error

	Routes   map[string]*domain.Route
	RouteErr error

	// BeforeSearch runs at the start of NearbySearch; a non-nil error aborts it.
	BeforeSearch func(ctx context.Context) error

	calls map[string]int
}

var _ ports.MapsProvider = (*MapsProvider)(nil)

func NewMapsProvider() *MapsProvider {
	return &MapsProvider{
		Geocodes:     map[string]domain.LatLng{},
		GeocodeErrs:  map[string]error{},
		Details:      map[string]*domain.Details{},
		DetailsErrs:  map[string]error{},
		Durations:    map[string][2]int{},
		DurationErrs: map[string]error{},
		Routes:       map[string]*domain.Route{},
		calls:        map[string]int{},
	}
}

// AddPlace appends a nearby-search result scored d1/d2 seconds from the two origins.
func (m *MapsProvider) AddPlace(id, name string, loc domain.LatLng, d1, d2 int) *MapsProvider {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Places = append(m.Places, domain.Candidate{
		PlaceID:  id,
		Name:     name,
		Location: loc,
		Address:  name + " address",
	})
	m.Durations[loc.Key()] = [2]int{d1, d2}
	return m
}

// Calls returns how many times op ("Geocode", "NearbySearch", ...) was invoked.
func (m *MapsProvider) Calls(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[op]
}

func (m *MapsProvider) record(op string) {
	m.mu.Lock()
	m.calls[op]++
	m.mu.Unlock()
}

func (m *MapsProvider) Geocode(ctx context.Context, address string) (domain.LatLng, error) {
	m.record("Geocode")
	if err := ctx.Err(); err != nil {
		return domain.LatLng{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err, ok := m.GeocodeErrs[address]; ok {
		return domain.LatLng{}, err
	}
	c, ok := m.Geocodes[address]
	if !ok {
		return domain.LatLng{}, &domain.ProviderError{Kind: domain.KindResolution, Subject: address, Status: "ZERO_RESULTS"}
	}
	return c, nil
}

func (m *MapsProvider) NearbySearch(ctx context.Context, _ domain.LatLng, keyword string, _ int) ([]domain.Candidate, error) {
	m.record("NearbySearch")
	if m.BeforeSearch != nil {
		if err := m.BeforeSearch(ctx); err != nil {
			return nil, err
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SearchErr != nil {
		return nil, m.SearchErr
	}
	if len(m.Places) == 0 {
		return nil, &domain.ProviderError{Kind: domain.KindSearch, Subject: keyword, Status: "ZERO_RESULTS"}
	}

	out := make([]domain.Candidate, len(m.Places))
	copy(out, m.Places)
	return out, nil
}

func (m *MapsProvider) PlaceDetails(ctx context.Context, placeID string) (*domain.Details, error) {
	m.record("PlaceDetails")

	m.mu.Lock()
	defer m.mu.Unlock()

	if err, ok := m.DetailsErrs[placeID]; ok {
		return nil, err
	}
	if d, ok := m.Details[placeID]; ok {
		return d, nil
	}
	return &domain.Details{}, nil
}

func (m *MapsProvider) TravelDurations(
	ctx context.Context,
	_ [2]string,
	destination domain.LatLng,
	_ domain.TravelOptions,
) ([2]domain.TravelDuration, error) {
	m.record("TravelDurations")

	var out [2]domain.TravelDuration
	if err := ctx.Err(); err != nil {
		return out, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	key := destination.Key()
	if err, ok := m.DurationErrs[key]; ok {
		return out, err
	}
	secs, ok := m.Durations[key]
	if !ok {
		return out, &domain.ProviderError{Kind: domain.KindScoring, Subject: key, Status: "NOT_FOUND"}
	}

	for i, s := range secs {
		out[i] = domain.TravelDuration{Text: domain.HumanDuration(s), Seconds: s}
	}
	return out, nil
}

func (m *MapsProvider) Route(ctx context.Context, req domain.RouteRequest) (*domain.Route, error) {
	m.record("Route")

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.RouteErr != nil {
		return nil, m.RouteErr
	}
	r, ok := m.Routes[req.Origin+"|"+req.Destination]
	if !ok {
		return nil, &domain.ProviderError{Kind: domain.KindRouting, Subject: req.Origin + " -> " + req.Destination, Status: "NOT_FOUND"}
	}

	cp := *r
	cp.Steps = append([]domain.RouteStep(nil), r.Steps...)
	return &cp, nil
}
