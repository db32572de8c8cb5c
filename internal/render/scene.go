package render

import (
	"fmt"
	"meetup-point-service/internal/domain"
	"meetup-point-service/internal/ports"
	"sync"
)

// Scene is an in-memory rendering surface. It records markers, circles and
// the current route so they can be served to a map widget or exported.
// Safe for concurrent use.
type Scene struct {
	mu         sync.Mutex
	seq        uint64
	generation uint64
	markers    []domain.Marker
	circles    []domain.Circle
	route      *domain.Route
}

var _ ports.Surface = (*Scene)(nil)

func NewScene() *Scene {
	return &Scene{}
}

func (s *Scene) nextHandle(kind string) domain.Handle {
	s.seq++
	return domain.Handle(fmt.Sprintf("%s-%d", kind, s.seq))
}

func (s *Scene) RenderMarker(pos domain.LatLng, icon domain.Icon, title, infoHTML string) domain.Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	h := s.nextHandle("marker")
	s.markers = append(s.markers, domain.Marker{
		Handle:   h,
		Position: pos,
		Icon:     icon,
		Title:    title,
		InfoHTML: infoHTML,
	})
	return h
}

func (s *Scene) RenderCircle(center domain.LatLng, radiusMeters int) domain.Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	h := s.nextHandle("circle")
	s.circles = append(s.circles, domain.Circle{Handle: h, Center: center, RadiusMeters: radiusMeters})
	return h
}

// Restyle swaps the icon of a rendered marker.
func (s *Scene) Restyle(h domain.Handle, icon domain.Icon) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.markers {
		if s.markers[i].Handle == h {
			s.markers[i].Icon = icon
			return true
		}
	}
	return false
}

func (s *Scene) Remove(h domain.Handle) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.markers {
		if s.markers[i].Handle == h {
			s.markers = append(s.markers[:i], s.markers[i+1:]...)
			return true
		}
	}
	for i := range s.circles {
		if s.circles[i].Handle == h {
			s.circles = append(s.circles[:i], s.circles[i+1:]...)
			return true
		}
	}
	return false
}

// SetRoute replaces any previously rendered route.
func (s *Scene) SetRoute(r *domain.Route) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.route = r
}

func (s *Scene) ClearRoute() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.route = nil
}

// Clear removes every artifact.
func (s *Scene) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.markers = nil
	s.circles = nil
	s.route = nil
}

// Replace atomically swaps the scene content for snap and stamps it with generation.
func (s *Scene) Replace(snap domain.SceneSnapshot, generation uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.markers = append([]domain.Marker(nil), snap.Markers...)
	s.circles = append([]domain.Circle(nil), snap.Circles...)
	s.route = cloneRoute(snap.Route)
	s.generation = generation
}

// Snapshot returns a copy of the current content.
func (s *Scene) Snapshot() domain.SceneSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := domain.SceneSnapshot{
		Generation: s.generation,
		Markers:    append([]domain.Marker(nil), s.markers...),
		Circles:    append([]domain.Circle(nil), s.circles...),
	}
	snap.Route = cloneRoute(s.route)
	return snap
}

func cloneRoute(r *domain.Route) *domain.Route {
	if r == nil {
		return nil
	}
	c := *r
	c.Steps = append([]domain.RouteStep(nil), r.Steps...)
	c.Path = append([]domain.LatLng(nil), r.Path...)
	c.Warnings = append([]string(nil), r.Warnings...)
	return &c
}
