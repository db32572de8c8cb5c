package domain

// Identifies a rendered artifact so it can be removed or restyled.
type Handle string

type Icon string

const (
	IconOrigin    Icon = "http://maps.google.com/mapfiles/ms/icons/blue.png"
	IconCandidate Icon = "http://maps.google.com/mapfiles/ms/icons/red.png"
	IconWinner    Icon = "http://maps.google.com/mapfiles/ms/icons/green.png"
)

type Marker struct {
	Handle   Handle
	Position LatLng
	Icon     Icon
	Title    string
	InfoHTML string
}

type Circle struct {
	Handle       Handle
	Center       LatLng
	RadiusMeters int
}

// SceneSnapshot is an immutable copy of everything currently rendered for a session.
type SceneSnapshot struct {
	Generation uint64
	Markers    []Marker
	Circles    []Circle
	Route      *Route
}

// Empty reports whether nothing is rendered.
func (s SceneSnapshot) Empty() bool {
	return len(s.Markers) == 0 && len(s.Circles) == 0 && s.Route == nil
}
