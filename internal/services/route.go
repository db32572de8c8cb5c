package services

import (
	"context"
	"fmt"
	"meetup-point-service/internal/domain"
	"meetup-point-service/internal/platform/obs"
	"meetup-point-service/internal/ports"
	"strings"

	"github.com/twpayne/go-polyline"
	"golang.org/x/net/html"
)

// RenderRoute requests directions, converts the instructions to plain text,
// decodes the overview path and renders the route onto surface, replacing
// any previous one.
func RenderRoute(
	ctx context.Context,
	router ports.Router,
	surface ports.Surface,
	req domain.RouteRequest,
) (_ *domain.Route, err error) {
	defer obs.Time(ctx, "services.RenderRoute")(&err)

	req.Origin = strings.TrimSpace(req.Origin)
	req.Destination = strings.TrimSpace(req.Destination)
	if req.Origin == "" || req.Destination == "" {
		return nil, fmt.Errorf("%w: origin and destination are required", domain.ErrInvalidRequest)
	}
	if req.Travel.Mode == "" {
		req.Travel.Mode = domain.TravelModeDriving
	}

	route, err := router.Route(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("render route: %w", err)
	}

	total := 0
	for i := range route.Steps {
		s := &route.Steps[i]
		s.Instruction = stripHTML(s.HTMLInstruction)
		total += s.DurationSeconds
	}
	route.TotalDurationSeconds = total

	if route.EncodedPolyline != "" {
		path, err := decodePath(route.EncodedPolyline)
		if err != nil {
			return nil, fmt.Errorf("render route: %w", &domain.ProviderError{
				Kind:    domain.KindRouting,
				Subject: req.Origin + " -> " + req.Destination,
				Status:  "UNKNOWN_ERROR",
				Err:     err,
			})
		}
		route.Path = path
	}

	surface.SetRoute(route)
	return route, nil
}

func decodePath(encoded string) ([]domain.LatLng, error) {
	coords, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, fmt.Errorf("decode polyline: %w", err)
	}

	out := make([]domain.LatLng, 0, len(coords))
	for _, c := range coords {
		p := domain.LatLng{Lat: c[0], Lng: c[1]}
		if !p.Valid() {
			return nil, fmt.Errorf("decode polyline: invalid coordinate %v", c)
		}
		out = append(out, p)
	}
	return out, nil
}

// stripHTML returns the text content of an instruction fragment. Block-level
// tags become word breaks.
func stripHTML(fragment string) string {
	z := html.NewTokenizer(strings.NewReader(fragment))

	var b strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(b.String()), " ")
		case html.TextToken:
			b.Write(z.Text())
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "div", "br", "p", "li":
				b.WriteByte(' ')
			}
		}
	}
}
