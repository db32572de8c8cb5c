package domain

// A component of a structured postal address (street number, locality, ...).
type AddressComponent struct {
	LongName  string
	ShortName string
	Types     []string
}

// Optional data fetched per candidate. A nil *Details means the lookup degraded.
type Details struct {
	Website           string
	FormattedAddress  string
	AddressComponents []AddressComponent
}

// Travel time from one origin to a candidate.
type TravelDuration struct {
	Text    string
	Seconds int
}

// Candidate is a single record holding everything derived for one nearby-search
// result: the place itself, its optional details, its travel durations from both
// origins and the handle of its rendered marker.
type Candidate struct {
	PlaceID           string
	Name              string
	Rating            float64
	Location          LatLng
	Address           string
	PermanentlyClosed bool

	Details   *Details
	Durations [2]TravelDuration
	Marker    Handle
}

// AverageSeconds returns the mean travel duration from both origins.
func (c *Candidate) AverageSeconds() float64 {
	return float64(c.Durations[0].Seconds+c.Durations[1].Seconds) / 2
}

// ResolvedAddress prefers the address returned by place details over the search result.
func (c *Candidate) ResolvedAddress() string {
	if c.Details != nil && c.Details.FormattedAddress != "" {
		return c.Details.FormattedAddress
	}
	if c.Address != "" {
		return c.Address
	}
	return c.Location.String()
}
