package services

import (
	"context"
	"fmt"
	"meetup-point-service/internal/domain"
	"meetup-point-service/internal/platform/obs"
	"meetup-point-service/internal/ports"
	"meetup-point-service/internal/render"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MeetupService ties the pipeline to per-session state: it enforces that only
// the latest update of a session renders, and records completed meetups.
type MeetupService struct {
	pipeline *Pipeline
	router   ports.Router
	sessions *SessionStore
	repo     ports.MeetupRepository

	now func() time.Time
}

// NewMeetupService wires the service. repo may be nil to disable history.
func NewMeetupService(
	pipeline *Pipeline,
	router ports.Router,
	sessions *SessionStore,
	repo ports.MeetupRepository,
) *MeetupService {
	return &MeetupService{
		pipeline: pipeline,
		router:   router,
		sessions: sessions,
		repo:     repo,
		now:      time.Now,
	}
}

// Update runs a new update action for the session and returns the meetup with
// the scene it committed. A newer update started before this one finishes
// makes it return domain.ErrSuperseded and render nothing.
func (s *MeetupService) Update(
	ctx context.Context,
	sessionID string,
	req domain.MeetupRequest,
) (*domain.Meetup, domain.SceneSnapshot, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, domain.SceneSnapshot{}, fmt.Errorf("%w: session id is required", domain.ErrInvalidRequest)
	}

	sess := s.sessions.GetOrCreate(sessionID)
	actx, gen, done := sess.Begin(ctx)
	defer done()

	staging := render.NewScene()
	m, err := s.pipeline.Run(actx, Action{
		SessionID:  sessionID,
		Generation: gen,
		Request:    req,
		Surface:    staging,
	})

	snap := staging.Snapshot()
	snap.Generation = gen
	if !sess.Commit(gen, snap) {
		s.superseded(ctx, "update", sessionID, gen)
		return nil, domain.SceneSnapshot{}, fmt.Errorf("update session %s: %w", sessionID, domain.ErrSuperseded)
	}
	if err != nil {
		return nil, domain.SceneSnapshot{}, fmt.Errorf("update session %s: %w", sessionID, err)
	}

	m.ID = uuid.NewString()
	m.CreatedAt = s.now().UTC()

	if s.repo != nil {
		if err := s.repo.Save(ctx, m); err != nil {
			zap.L().Warn("meetup not recorded",
				zap.String("req_id", obs.RequestID(ctx)),
				zap.String("meetup_id", m.ID),
				zap.Error(err),
			)
		}
	}

	return m, snap, nil
}

// Route renders directions into the session's scene, replacing any previous
// route. An update that begins while directions are in flight makes it return
// domain.ErrSuperseded and leave the scene untouched.
func (s *MeetupService) Route(ctx context.Context, sessionID string, req domain.RouteRequest) (*domain.Route, error) {
	sess := s.sessions.GetOrCreate(sessionID)
	gen := sess.Generation()

	staging := render.NewScene()
	r, err := RenderRoute(ctx, s.router, staging, req)
	if err != nil {
		return nil, fmt.Errorf("route session %s: %w", sessionID, err)
	}
	if !sess.SetRoute(gen, r) {
		s.superseded(ctx, "route", sessionID, gen)
		return nil, fmt.Errorf("route session %s: %w", sessionID, domain.ErrSuperseded)
	}
	return r, nil
}

func (s *MeetupService) superseded(ctx context.Context, action, sessionID string, gen uint64) {
	obs.SupersededActions.Inc()
	zap.L().Info(action+" superseded",
		zap.String("req_id", obs.RequestID(ctx)),
		zap.String("session", sessionID),
		zap.Uint64("generation", gen),
	)
}

// Scene returns what is currently rendered for the session.
func (s *MeetupService) Scene(sessionID string) (domain.SceneSnapshot, error) {
	sess, ok := s.sessions.Get(sessionID)
	if !ok {
		return domain.SceneSnapshot{}, fmt.Errorf("session %s: %w", sessionID, domain.ErrNotFound)
	}
	return sess.Scene().Snapshot(), nil
}

// Clear cancels any in-flight update, clears the scene and forgets the session.
func (s *MeetupService) Clear(sessionID string) error {
	if !s.sessions.Remove(sessionID) {
		return fmt.Errorf("session %s: %w", sessionID, domain.ErrNotFound)
	}
	return nil
}

func (s *MeetupService) Meetup(ctx context.Context, id string) (*domain.Meetup, error) {
	if s.repo == nil {
		return nil, fmt.Errorf("meetup %s: %w", id, domain.ErrNotFound)
	}
	return s.repo.Get(ctx, id)
}

func (s *MeetupService) RecentMeetups(ctx context.Context, limit int) ([]*domain.Meetup, error) {
	if s.repo == nil {
		return []*domain.Meetup{}, nil
	}
	return s.repo.List(ctx, limit)
}
