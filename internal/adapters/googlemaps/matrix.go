package googlemaps

import (
	"context"
	"fmt"
	"meetup-point-service/internal/domain"
	"meetup-point-service/internal/platform/obs"
	"strings"

	"go.uber.org/zap"
	"googlemaps.github.io/maps"
)

// TravelDurations looks up the travel time from both origins to destination
// with a single 2x1 distance-matrix request.
func (p *Provider) TravelDurations(
	ctx context.Context,
	origins [2]string,
	destination domain.LatLng,
	travel domain.TravelOptions,
) ([2]domain.TravelDuration, error) {
	var out [2]domain.TravelDuration

	normOrigins := [2]string{normalize(origins[0]), normalize(origins[1])}
	key := durationKey(normOrigins, destination, travel)

	if p.durationCache != nil {
		cached, ok, err := p.durationCache.Get(ctx, key)
		if err != nil {
			zap.L().Warn("duration cache read failed", zap.String("key", key), zap.Error(err))
		}
		obs.CacheHit("duration", ok)
		if ok {
			return cached, nil
		}
	}

	req := &maps.DistanceMatrixRequest{
		Origins:      normOrigins[:],
		Destinations: []string{destination.String()},
		Mode:         toMode(travel.Mode),
	}
	if t, ok := toTransitMode(travel); ok {
		req.TransitMode = []maps.TransitMode{t}
	}

	subject := destination.String()
	resp, err := call(ctx, p, "google.DistanceMatrix", domain.KindScoring, subject,
		func(ctx context.Context) (*maps.DistanceMatrixResponse, error) {
			return p.client.DistanceMatrix(ctx, req)
		})
	if err != nil {
		return out, err
	}

	if resp == nil || len(resp.Rows) != len(normOrigins) {
		return out, &domain.ProviderError{
			Kind:    domain.KindScoring,
			Subject: subject,
			Status:  statusUnknown,
			Err:     fmt.Errorf("distance matrix: expected %d rows", len(normOrigins)),
		}
	}

	for i, row := range resp.Rows {
		if len(row.Elements) == 0 || row.Elements[0] == nil {
			return out, providerError(domain.KindScoring, subject, statusUnknown)
		}
		el := row.Elements[0]
		if el.Status != "OK" {
			return out, providerError(domain.KindScoring, subject, el.Status)
		}

		secs := int(el.Duration.Seconds())
		out[i] = domain.TravelDuration{
			Text:    domain.HumanDuration(secs),
			Seconds: secs,
		}
	}

	if p.durationCache != nil {
		if err := p.durationCache.Put(ctx, key, out); err != nil {
			zap.L().Warn("duration cache write failed", zap.String("key", key), zap.Error(err))
		}
	}

	return out, nil
}

func durationKey(origins [2]string, destination domain.LatLng, travel domain.TravelOptions) string {
	return strings.Join([]string{
		strings.ToLower(origins[0]),
		strings.ToLower(origins[1]),
		destination.Key(),
		string(travel.Mode),
		string(travel.Transit),
	}, "|")
}
