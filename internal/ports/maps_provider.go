package ports

import (
	"context"
	"meetup-point-service/internal/domain"
)

// Resolve a free-text address to its single best-match coordinate.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (domain.LatLng, error)
}

// Find places matching a keyword within radiusMeters of center, in provider order.
type PlaceSearcher interface {
	NearbySearch(ctx context.Context, center domain.LatLng, keyword string, radiusMeters int) ([]domain.Candidate, error)
}

// Fetch optional place details (website, address components).
type PlaceDetailer interface {
	PlaceDetails(ctx context.Context, placeID string) (*domain.Details, error)
}

// Travel durations from each of the two origins to a destination.
type DistanceMatrix interface {
	TravelDurations(
		ctx context.Context,
		origins [2]string,
		destination domain.LatLng,
		travel domain.TravelOptions,
	) ([2]domain.TravelDuration, error)
}

// Routed path with turn-by-turn instructions.
type Router interface {
	Route(ctx context.Context, req domain.RouteRequest) (*domain.Route, error)
}

// MapsProvider is the single external collaborator the meetup pipeline depends on.
type MapsProvider interface {
	Geocoder
	PlaceSearcher
	PlaceDetailer
	DistanceMatrix
	Router
}
