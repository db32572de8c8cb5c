package domain

import (
	"fmt"
	"strconv"
)

// Immutable geographic coordinates (latitude, longitude) in degrees.
type LatLng struct {
	Lat float64
	Lng float64
}

// Valid reports whether the coordinate lies within [-90, 90] x [-180, 180].
func (c LatLng) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// Return the coordinate as "lat,lng" for external API compatibility.
func (c LatLng) String() string {
	return strconv.FormatFloat(c.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lng, 'f', -1, 64)
}

// Key renders the coordinate with fixed precision (~0.1m) so it can be used as a cache key.
func (c LatLng) Key() string {
	return fmt.Sprintf("%.6f,%.6f", c.Lat, c.Lng)
}
