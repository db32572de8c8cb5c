package domain

import (
	"fmt"
	"strings"
	"time"
)

// Inputs of a single "update parameters" action.
type MeetupRequest struct {
	Origins [2]string
	Keyword string
	Radius  SearchRadius
	Travel  TravelOptions
}

// Validate trims inputs in place and checks both origins and the keyword are present.
func (r *MeetupRequest) Validate() error {
	for i := range r.Origins {
		r.Origins[i] = strings.TrimSpace(r.Origins[i])
		if r.Origins[i] == "" {
			return fmt.Errorf("%w: origin %d is required", ErrInvalidRequest, i+1)
		}
	}

	r.Keyword = strings.TrimSpace(r.Keyword)
	if r.Keyword == "" {
		return fmt.Errorf("%w: destination keyword is required", ErrInvalidRequest)
	}

	if r.Radius == "" {
		r.Radius = RadiusMedium
	}
	if r.Travel.Mode == "" {
		r.Travel.Mode = TravelModeDriving
	}

	return nil
}

// Origin address together with its resolved coordinate.
type Origin struct {
	Address  string
	Location LatLng
}

// A pre-populated "get directions" action from one origin to the winner.
type DirectionsAction struct {
	Origin      string
	Destination string
	Travel      TravelOptions
}

// Meetup is the outcome of one completed update action.
// Candidates keep nearby-search order; Winner indexes into Candidates.
type Meetup struct {
	ID           string
	SessionID    string
	Generation   uint64
	Request      MeetupRequest
	Origins      [2]Origin
	Midpoint     LatLng
	RadiusMeters int
	Candidates   []Candidate
	Winner       int
	Directions   [2]DirectionsAction
	CreatedAt    time.Time
}

// WinningCandidate returns the selected candidate, or nil when none was selected.
func (m *Meetup) WinningCandidate() *Candidate {
	if m.Winner < 0 || m.Winner >= len(m.Candidates) {
		return nil
	}
	return &m.Candidates[m.Winner]
}
