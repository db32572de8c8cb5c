package ports

import (
	"context"
	"meetup-point-service/internal/domain"
)

// Port: a boundary for storing completed meetup results.
type MeetupRepository interface {
	Save(ctx context.Context, m *domain.Meetup) error
	// Return domain.ErrNotFound when no meetup has the id.
	Get(ctx context.Context, id string) (*domain.Meetup, error)
	// Most recent first.
	List(ctx context.Context, limit int) ([]*domain.Meetup, error)
}
