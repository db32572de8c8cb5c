package services

import (
	"context"
	"meetup-point-service/internal/domain"
	"meetup-point-service/internal/render"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Session is the per-user state: the live scene and the generation token of
// the most recent update action.
type Session struct {
	ID string

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
	scene      *render.Scene
}

func newSession(id string) *Session {
	return &Session{ID: id, scene: render.NewScene()}
}

// Begin starts a new action. It cancels any in-flight action, clears the live
// scene and returns the action's context and generation. done must be called
// when the action finishes.
func (s *Session) Begin(parent context.Context) (ctx context.Context, generation uint64, done func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}
	s.generation++
	gen := s.generation

	ctx, cancel := context.WithCancel(parent)
	s.cancel = cancel
	s.scene.Clear()

	return ctx, gen, func() {
		cancel()
		s.mu.Lock()
		if s.generation == gen {
			s.cancel = nil
		}
		s.mu.Unlock()
	}
}

// Commit publishes snap as the live scene if generation is still current.
func (s *Session) Commit(generation uint64, snap domain.SceneSnapshot) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if generation != s.generation {
		return false
	}
	s.scene.Replace(snap, generation)
	return true
}

// SetRoute replaces the live route if generation is still current.
func (s *Session) SetRoute(generation uint64, r *domain.Route) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if generation != s.generation {
		return false
	}
	s.scene.SetRoute(r)
	return true
}

// Reset cancels any in-flight action and clears the scene. The generation is
// advanced so the cancelled action cannot commit.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.generation++
	s.scene.Clear()
}

func (s *Session) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

func (s *Session) Scene() *render.Scene { return s.scene }

// SessionStore keeps a bounded number of sessions; the least recently used
// session is reset and dropped when the bound is reached.
type SessionStore struct {
	mu    sync.Mutex
	cache *lru.Cache[string, *Session]
}

func NewSessionStore(size int) (*SessionStore, error) {
	cache, err := lru.NewWithEvict[string, *Session](size, func(_ string, s *Session) {
		s.Reset()
	})
	if err != nil {
		return nil, err
	}
	return &SessionStore{cache: cache}, nil
}

func (st *SessionStore) GetOrCreate(id string) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	if s, ok := st.cache.Get(id); ok {
		return s
	}
	s := newSession(id)
	st.cache.Add(id, s)
	return s
}

func (st *SessionStore) Get(id string) (*Session, bool) {
	return st.cache.Get(id)
}

// Remove resets and forgets a session.
func (st *SessionStore) Remove(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.cache.Peek(id)
	if !ok {
		return false
	}
	st.cache.Remove(id)
	s.Reset()
	return true
}

func (st *SessionStore) Len() int { return st.cache.Len() }
