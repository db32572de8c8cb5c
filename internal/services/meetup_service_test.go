package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"meetup-point-service/internal/adapters/mock"
	"meetup-point-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	mu    sync.Mutex
	saved []*domain.Meetup
	err   error
}

func (r *memRepo) Save(_ context.Context, m *domain.Meetup) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.saved = append(r.saved, m)
	return nil
}

func (r *memRepo) Get(_ context.Context, id string) (*domain.Meetup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.saved {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memRepo) List(_ context.Context, limit int) ([]*domain.Meetup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*domain.Meetup(nil), r.saved...), nil
}

func newTestService(t *testing.T, provider *mock.MapsProvider, repo *memRepo) *MeetupService {
	t.Helper()
	sessions, err := NewSessionStore(16)
	require.NoError(t, err)
	return NewMeetupService(NewPipeline(provider, PolicyStrict, 4), provider, sessions, repo)
}

func TestUpdateCommitsSceneAndRecordsMeetup(t *testing.T) {
	repo := &memRepo{}
	svc := newTestService(t, newFixtureProvider(), repo)

	m, _, err := svc.Update(context.Background(), "s1", coffeeRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, m.ID)
	assert.False(t, m.CreatedAt.IsZero())
	assert.Equal(t, "s1", m.SessionID)

	snap, err := svc.Scene("s1")
	require.NoError(t, err)
	assert.Len(t, snap.Markers, 5)
	assert.Equal(t, m.Generation, snap.Generation)

	got, err := svc.Meetup(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Equal(t, m.ID, got.ID)
}

func TestSecondUpdateLeavesNoArtifactsOfFirst(t *testing.T) {
	provider := newFixtureProvider()
	provider.Geocodes["Office"] = domain.LatLng{Lat: 41, Lng: -73}
	svc := newTestService(t, provider, nil)
	ctx := context.Background()

	first, _, err := svc.Update(ctx, "s1", coffeeRequest())
	require.NoError(t, err)
	_, err = svc.Route(ctx, "s1", domain.RouteRequest{Origin: "Home", Destination: "Beta address"})
	require.Error(t, err, "no route fixture")

	provider.Routes["Home|Beta address"] = &domain.Route{Origin: "Home", Destination: "Beta address"}
	_, err = svc.Route(ctx, "s1", domain.RouteRequest{Origin: "Home", Destination: "Beta address"})
	require.NoError(t, err)

	req := coffeeRequest()
	req.Origins[1] = "Office"
	req.Radius = domain.RadiusLarge
	second, _, err := svc.Update(ctx, "s1", req)
	require.NoError(t, err)

	snap, err := svc.Scene("s1")
	require.NoError(t, err)
	assert.Nil(t, snap.Route)
	require.Len(t, snap.Circles, 1)
	assert.Equal(t, second.Midpoint, snap.Circles[0].Center)
	assert.Equal(t, 50000, snap.Circles[0].RadiusMeters)
	assert.NotEqual(t, first.Midpoint, snap.Circles[0].Center)
	assert.Equal(t, []string{"Home", "Office"}, markerTitles(snap, domain.IconOrigin))
	assert.Len(t, snap.Markers, 5)
}

func TestFailedUpdateClearsPreviousScene(t *testing.T) {
	provider := newFixtureProvider()
	svc := newTestService(t, provider, nil)
	ctx := context.Background()

	_, _, err := svc.Update(ctx, "s1", coffeeRequest())
	require.NoError(t, err)

	req := coffeeRequest()
	req.Origins[0] = "Atlantis"
	_, _, err = svc.Update(ctx, "s1", req)
	require.Error(t, err)
	assert.True(t, domain.IsProviderError(err, domain.KindResolution))

	snap, err := svc.Scene("s1")
	require.NoError(t, err)
	assert.True(t, snap.Empty())
}

func TestSupersededUpdateIsDiscarded(t *testing.T) {
	provider := newFixtureProvider()
	entered := make(chan struct{})
	release := make(chan struct{})
	var searches atomic.Int32
	provider.BeforeSearch = func(ctx context.Context) error {
		if searches.Add(1) == 1 {
			close(entered)
			<-release
		}
		return nil
	}

	repo := &memRepo{}
	svc := newTestService(t, provider, repo)

	firstErr := make(chan error, 1)
	go func() {
		_, _, err := svc.Update(context.Background(), "s1", coffeeRequest())
		firstErr <- err
	}()

	select {
	case <-entered:
	case <-time.After(5 * time.Second):
		t.Fatal("first update never reached search")
	}

	req := coffeeRequest()
	req.Radius = domain.RadiusVeryLarge
	second, _, err := svc.Update(context.Background(), "s1", req)
	require.NoError(t, err)
	close(release)

	select {
	case err := <-firstErr:
		assert.True(t, errors.Is(err, domain.ErrSuperseded), "got %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("first update never finished")
	}

	snap, err := svc.Scene("s1")
	require.NoError(t, err)
	require.Len(t, snap.Circles, 1)
	assert.Equal(t, 50000, snap.Circles[0].RadiusMeters)
	assert.Equal(t, second.Generation, snap.Generation)

	require.Len(t, repo.saved, 1)
	assert.Equal(t, second.ID, repo.saved[0].ID)
}

type gatedRouter struct {
	next    *mock.MapsProvider
	entered chan struct{}
	release chan struct{}
}

func (r *gatedRouter) Route(ctx context.Context, req domain.RouteRequest) (*domain.Route, error) {
	close(r.entered)
	<-r.release
	return r.next.Route(ctx, req)
}

func TestRouteStartedBeforeNewerUpdateIsDiscarded(t *testing.T) {
	provider := newFixtureProvider()
	provider.Routes["Home|Beta address"] = &domain.Route{Origin: "Home", Destination: "Beta address"}
	router := &gatedRouter{next: provider, entered: make(chan struct{}), release: make(chan struct{})}

	sessions, err := NewSessionStore(4)
	require.NoError(t, err)
	svc := NewMeetupService(NewPipeline(provider, PolicyStrict, 4), router, sessions, nil)
	ctx := context.Background()

	_, _, err = svc.Update(ctx, "s1", coffeeRequest())
	require.NoError(t, err)

	routeErr := make(chan error, 1)
	go func() {
		_, err := svc.Route(ctx, "s1", domain.RouteRequest{Origin: "Home", Destination: "Beta address"})
		routeErr <- err
	}()

	select {
	case <-router.entered:
	case <-time.After(5 * time.Second):
		t.Fatal("route never reached the router")
	}

	second, committed, err := svc.Update(ctx, "s1", coffeeRequest())
	require.NoError(t, err)
	close(router.release)

	select {
	case err := <-routeErr:
		assert.ErrorIs(t, err, domain.ErrSuperseded)
	case <-time.After(5 * time.Second):
		t.Fatal("route never finished")
	}

	snap, err := svc.Scene("s1")
	require.NoError(t, err)
	assert.Equal(t, second.Generation, snap.Generation)
	assert.Nil(t, snap.Route)
	assert.Equal(t, committed, snap)
}

func TestUpdateReturnsCommittedScene(t *testing.T) {
	svc := newTestService(t, newFixtureProvider(), nil)

	m, committed, err := svc.Update(context.Background(), "s1", coffeeRequest())
	require.NoError(t, err)
	assert.Equal(t, m.Generation, committed.Generation)
	assert.Len(t, committed.Markers, 5)
	require.Len(t, committed.Circles, 1)
	assert.Equal(t, m.Midpoint, committed.Circles[0].Center)

	_, _, err = svc.Update(context.Background(), "s1", coffeeRequest())
	require.NoError(t, err)
	assert.Len(t, committed.Markers, 5, "a later update must not touch a returned scene")
}

func TestRepositoryFailureDoesNotFailUpdate(t *testing.T) {
	svc := newTestService(t, newFixtureProvider(), &memRepo{err: errors.New("disk full")})

	_, _, err := svc.Update(context.Background(), "s1", coffeeRequest())
	require.NoError(t, err)
}

func TestClearForgetsSession(t *testing.T) {
	svc := newTestService(t, newFixtureProvider(), nil)

	_, _, err := svc.Update(context.Background(), "s1", coffeeRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Clear("s1"))
	_, err = svc.Scene("s1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, svc.Clear("s1"), domain.ErrNotFound)
}

func TestUpdateRequiresSession(t *testing.T) {
	svc := newTestService(t, newFixtureProvider(), nil)

	_, _, err := svc.Update(context.Background(), " ", coffeeRequest())
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestSessionStoreEvictsLeastRecentlyUsed(t *testing.T) {
	store, err := NewSessionStore(2)
	require.NoError(t, err)

	a := store.GetOrCreate("a")
	store.GetOrCreate("b")
	genBefore := a.Generation()
	store.GetOrCreate("c")

	_, ok := store.Get("a")
	assert.False(t, ok)
	assert.Greater(t, a.Generation(), genBefore)
	assert.Equal(t, 2, store.Len())
}
