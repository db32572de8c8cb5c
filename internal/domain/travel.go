package domain

import (
	"fmt"
	"strings"
)

type TravelMode string

const (
	TravelModeDriving   TravelMode = "DRIVING"
	TravelModeWalking   TravelMode = "WALKING"
	TravelModeBicycling TravelMode = "BICYCLING"
	TravelModeTransit   TravelMode = "TRANSIT"
)

// Transit sub-mode, only meaningful with TravelModeTransit.
type TransitMode string

const (
	TransitModeAny    TransitMode = ""
	TransitModeBus    TransitMode = "BUS"
	TransitModeSubway TransitMode = "SUBWAY"
	TransitModeTrain  TransitMode = "TRAIN"
	TransitModeTram   TransitMode = "TRAM"
	TransitModeRail   TransitMode = "RAIL"
)

// Mode selection shared by distance-matrix and directions lookups.
type TravelOptions struct {
	Mode    TravelMode
	Transit TransitMode
}

// ParseTravelMode accepts the UI values case-insensitively; empty defaults to driving.
func ParseTravelMode(s string) (TravelMode, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", string(TravelModeDriving):
		return TravelModeDriving, nil
	case string(TravelModeWalking):
		return TravelModeWalking, nil
	case string(TravelModeBicycling), "BIKING":
		return TravelModeBicycling, nil
	case string(TravelModeTransit):
		return TravelModeTransit, nil
	}
	return "", fmt.Errorf("%w: unknown travel mode %q", ErrInvalidRequest, s)
}

func ParseTransitMode(s string) (TransitMode, error) {
	switch m := TransitMode(strings.ToUpper(strings.TrimSpace(s))); m {
	case TransitModeAny, TransitModeBus, TransitModeSubway, TransitModeTrain, TransitModeTram, TransitModeRail:
		return m, nil
	}
	return "", fmt.Errorf("%w: unknown transit mode %q", ErrInvalidRequest, s)
}

// ParseTravelOptions validates a mode pair. The sub-mode is dropped unless the
// mode is transit, mirroring the UI which only shows it for transit.
func ParseTravelOptions(mode, transit string) (TravelOptions, error) {
	m, err := ParseTravelMode(mode)
	if err != nil {
		return TravelOptions{}, err
	}

	if m != TravelModeTransit {
		return TravelOptions{Mode: m}, nil
	}

	t, err := ParseTransitMode(transit)
	if err != nil {
		return TravelOptions{}, err
	}

	return TravelOptions{Mode: m, Transit: t}, nil
}

type SearchRadius string

const (
	RadiusSmall     SearchRadius = "SMALL"
	RadiusMedium    SearchRadius = "MEDIUM"
	RadiusLarge     SearchRadius = "LARGE"
	RadiusVeryLarge SearchRadius = "VERY_LARGE"
)

// MaxSearchRadiusMeters is the largest radius nearby search accepts.
const MaxSearchRadiusMeters = 50000

// VERY_LARGE cannot exceed LARGE since both sit at the nearby-search cap.
var radiusMeters = map[SearchRadius]int{
	RadiusSmall:     1000,
	RadiusMedium:    10000,
	RadiusLarge:     MaxSearchRadiusMeters,
	RadiusVeryLarge: MaxSearchRadiusMeters,
}

// ParseSearchRadius maps a UI category to itself; empty defaults to medium.
func ParseSearchRadius(s string) (SearchRadius, error) {
	r := SearchRadius(strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(s)), "-", "_"))
	if r == "" {
		return RadiusMedium, nil
	}
	if _, ok := radiusMeters[r]; !ok {
		return "", fmt.Errorf("%w: unknown search radius %q", ErrInvalidRequest, s)
	}
	return r, nil
}

// Meters returns the fixed search radius for the category.
func (r SearchRadius) Meters() int {
	if m, ok := radiusMeters[r]; ok {
		return m
	}
	return radiusMeters[RadiusMedium]
}
