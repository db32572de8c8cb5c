package googlemaps

import (
	"context"
	"meetup-point-service/internal/domain"

	"googlemaps.github.io/maps"
)

// Route requests directions and flattens the first route's legs into one
// ordered step list. Instructions are returned as provider HTML; the overview
// polyline is returned encoded.
func (p *Provider) Route(ctx context.Context, rr domain.RouteRequest) (*domain.Route, error) {
	req := &maps.DirectionsRequest{
		Origin:      normalize(rr.Origin),
		Destination: normalize(rr.Destination),
		Mode:        toMode(rr.Travel.Mode),
	}
	if t, ok := toTransitMode(rr.Travel); ok {
		req.TransitMode = []maps.TransitMode{t}
	}

	subject := req.Origin + " -> " + req.Destination
	routes, err := call(ctx, p, "google.Directions", domain.KindRouting, subject,
		func(ctx context.Context) ([]maps.Route, error) {
			routes, _, err := p.client.Directions(ctx, req)
			return routes, err
		})
	if err != nil {
		return nil, err
	}
	if len(routes) == 0 {
		return nil, providerError(domain.KindRouting, subject, statusZeroResults)
	}

	return toRoute(rr, routes[0]), nil
}
