package render

import (
	"fmt"
	"image/color"
	"io"
	"meetup-point-service/internal/domain"

	"github.com/twpayne/go-kml"
)

const circleSegments = 64

var iconColors = map[domain.Icon]color.Color{
	domain.IconOrigin:    color.RGBA{R: 0x1e, G: 0x64, B: 0xff, A: 0xff},
	domain.IconCandidate: color.RGBA{R: 0xff, G: 0x2d, B: 0x2d, A: 0xff},
	domain.IconWinner:    color.RGBA{R: 0x1e, G: 0xb4, B: 0x3c, A: 0xff},
}

var styleIDs = map[domain.Icon]string{
	domain.IconOrigin:    "origin",
	domain.IconCandidate: "candidate",
	domain.IconWinner:    "winner",
}

// WriteKML exports a scene snapshot as a KML document: one placemark per
// marker, a polygon approximating each search circle and a line string for the route.
func WriteKML(w io.Writer, name string, snap domain.SceneSnapshot) error {
	children := []kml.Element{kml.Name(name)}

	for _, icon := range []domain.Icon{domain.IconOrigin, domain.IconCandidate, domain.IconWinner} {
		children = append(children, kml.SharedStyle(styleIDs[icon],
			kml.IconStyle(kml.Color(iconColors[icon])),
		))
	}
	children = append(children,
		kml.SharedStyle("circle",
			kml.LineStyle(kml.Color(color.RGBA{R: 0xff, A: 0xcc}), kml.Width(2)),
			kml.PolyStyle(kml.Color(color.RGBA{R: 0xff, A: 0x33})),
		),
		kml.SharedStyle("route",
			kml.LineStyle(kml.Color(color.RGBA{B: 0xff, A: 0xcc}), kml.Width(4)),
		),
	)

	for _, m := range snap.Markers {
		children = append(children, kml.Placemark(
			kml.Name(m.Title),
			kml.Description(m.InfoHTML),
			kml.StyleURL("#"+styleIDs[m.Icon]),
			kml.Point(kml.Coordinates(toCoordinate(m.Position))),
		))
	}

	for _, c := range snap.Circles {
		ring := domain.CirclePath(c.Center, float64(c.RadiusMeters), circleSegments)
		children = append(children, kml.Placemark(
			kml.Name(fmt.Sprintf("Search radius %d m", c.RadiusMeters)),
			kml.StyleURL("#circle"),
			kml.Polygon(kml.OuterBoundaryIs(kml.LinearRing(kml.Coordinates(toCoordinates(ring)...)))),
		))
	}

	if r := snap.Route; r != nil && len(r.Path) > 1 {
		children = append(children, kml.Placemark(
			kml.Name(fmt.Sprintf("%s to %s", r.Origin, r.Destination)),
			kml.Description(r.DurationText()),
			kml.StyleURL("#route"),
			kml.LineString(kml.Coordinates(toCoordinates(r.Path)...)),
		))
	}

	doc := kml.KML(kml.Document(children...))
	if err := doc.WriteIndent(w, "", "  "); err != nil {
		return fmt.Errorf("write kml: %w", err)
	}
	return nil
}

func toCoordinate(p domain.LatLng) kml.Coordinate {
	return kml.Coordinate{Lon: p.Lng, Lat: p.Lat}
}

func toCoordinates(ps []domain.LatLng) []kml.Coordinate {
	out := make([]kml.Coordinate, 0, len(ps))
	for _, p := range ps {
		out = append(out, toCoordinate(p))
	}
	return out
}
