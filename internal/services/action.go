package services

import (
	"fmt"
	"meetup-point-service/internal/domain"
	"meetup-point-service/internal/ports"
	"strings"
)

// Action carries everything one update run needs: the request, the session
// and generation it belongs to, and the surface it renders onto.
type Action struct {
	SessionID  string
	Generation uint64
	Request    domain.MeetupRequest
	Surface    ports.Surface
}

type ScoringPolicy string

const (
	// One failing candidate aborts the ranking.
	PolicyStrict ScoringPolicy = "strict"
	// Failing candidates are excluded and logged.
	PolicySkip ScoringPolicy = "skip"
)

func ParseScoringPolicy(s string) (ScoringPolicy, error) {
	switch p := ScoringPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PolicyStrict, nil
	case PolicyStrict, PolicySkip:
		return p, nil
	}
	return "", fmt.Errorf("unknown scoring policy %q", s)
}
