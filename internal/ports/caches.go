package ports

import (
	"context"
	"meetup-point-service/internal/domain"
)

// Persistent address -> coordinate cache. Keys are normalized by the caller.
type GeocodeCache interface {
	GetMany(ctx context.Context, addresses []string) (map[string]domain.LatLng, error)
	PutMany(ctx context.Context, results map[string]domain.LatLng) error
}

// Expiring cache of distance-matrix answers.
type DurationCache interface {
	Get(ctx context.Context, key string) ([2]domain.TravelDuration, bool, error)
	Put(ctx context.Context, key string, durations [2]domain.TravelDuration) error
}

// In-process cache of place details.
type DetailsCache interface {
	Get(placeID string) (*domain.Details, bool)
	Put(placeID string, details *domain.Details)
}
