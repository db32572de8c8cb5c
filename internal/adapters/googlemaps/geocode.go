package googlemaps

import (
	"context"
	"errors"
	"meetup-point-service/internal/domain"
	"meetup-point-service/internal/platform/obs"

	"go.uber.org/zap"
	"googlemaps.github.io/maps"
)

// Geocode resolves an address to the provider's first (best) match.
// Any non-success status, including zero results, is a resolution error.
func (p *Provider) Geocode(ctx context.Context, address string) (domain.LatLng, error) {
	norm := normalize(address)
	if norm == "" {
		return domain.LatLng{}, providerError(domain.KindResolution, address, "INVALID_REQUEST")
	}

	if p.geocodeCache != nil {
		hits, err := p.geocodeCache.GetMany(ctx, []string{norm})
		if err != nil {
			zap.L().Warn("geocode cache read failed", zap.String("address", norm), zap.Error(err))
		}
		c, ok := hits[norm]
		obs.CacheHit("geocode", ok)
		if ok {
			return c, nil
		}
	}

	results, err := call(ctx, p, "google.Geocode", domain.KindResolution, norm,
		func(ctx context.Context) ([]maps.GeocodingResult, error) {
			return p.client.Geocode(ctx, &maps.GeocodingRequest{Address: norm})
		})
	if err != nil {
		return domain.LatLng{}, err
	}
	if len(results) == 0 {
		return domain.LatLng{}, providerError(domain.KindResolution, norm, statusZeroResults)
	}

	loc := toLatLng(results[0].Geometry.Location)
	if !loc.Valid() {
		return domain.LatLng{}, &domain.ProviderError{
			Kind:    domain.KindResolution,
			Subject: norm,
			Status:  statusUnknown,
			Err:     errors.New("provider returned an out-of-range coordinate"),
		}
	}

	if p.geocodeCache != nil {
		if err := p.geocodeCache.PutMany(ctx, map[string]domain.LatLng{norm: loc}); err != nil {
			zap.L().Warn("geocode cache write failed", zap.String("address", norm), zap.Error(err))
		}
	}

	return loc, nil
}
