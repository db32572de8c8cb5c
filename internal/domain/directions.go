package domain

// Request for a routed path between two free-text locations.
type RouteRequest struct {
	Origin      string
	Destination string
	Travel      TravelOptions
}

// A single turn-by-turn instruction.
type RouteStep struct {
	Instruction     string
	HTMLInstruction string
	DistanceMeters  int
	DurationSeconds int
	TravelMode      string
}

// Route is a routed path with its instructions concatenated across all legs.
type Route struct {
	Origin               string
	Destination          string
	Summary              string
	Steps                []RouteStep
	EncodedPolyline      string
	Path                 []LatLng
	TotalDistanceMeters  int
	TotalDurationSeconds int
	Copyrights           string
	Warnings             []string
}

// Instructions returns the ordered plain-text step instructions.
func (r *Route) Instructions() []string {
	out := make([]string, 0, len(r.Steps))
	for _, s := range r.Steps {
		out = append(out, s.Instruction)
	}
	return out
}

func (r *Route) DurationText() string {
	return FormatHMS(r.TotalDurationSeconds)
}
