package googlemaps

import (
	"context"
	"meetup-point-service/internal/domain"
	"meetup-point-service/internal/platform/obs"

	"googlemaps.github.io/maps"
)

var detailFields = []maps.PlaceDetailsFieldMask{
	maps.PlaceDetailsFieldMaskWebsite,
	maps.PlaceDetailsFieldMaskFormattedAddress,
	maps.PlaceDetailsFieldMaskAddressComponent,
}

// NearbySearch returns the places matching keyword around center in provider
// order. Closed places are returned flagged; filtering is the caller's choice.
func (p *Provider) NearbySearch(
	ctx context.Context,
	center domain.LatLng,
	keyword string,
	radiusMeters int,
) ([]domain.Candidate, error) {
	req := &maps.NearbySearchRequest{
		Location: &maps.LatLng{Lat: center.Lat, Lng: center.Lng},
		Radius:   uint(radiusMeters),
		Keyword:  keyword,
	}

	resp, err := call(ctx, p, "google.NearbySearch", domain.KindSearch, keyword,
		func(ctx context.Context) (maps.PlacesSearchResponse, error) {
			return p.client.NearbySearch(ctx, req)
		})
	if err != nil {
		return nil, err
	}
	if len(resp.Results) == 0 {
		return nil, providerError(domain.KindSearch, keyword, statusZeroResults)
	}

	out := make([]domain.Candidate, 0, len(resp.Results))
	for _, r := range resp.Results {
		out = append(out, toCandidate(r))
	}

	return out, nil
}

// PlaceDetails fetches website and address data for a place.
func (p *Provider) PlaceDetails(ctx context.Context, placeID string) (*domain.Details, error) {
	if p.detailsCache != nil {
		d, ok := p.detailsCache.Get(placeID)
		obs.CacheHit("details", ok)
		if ok {
			return d, nil
		}
	}

	res, err := call(ctx, p, "google.PlaceDetails", domain.KindDetails, placeID,
		func(ctx context.Context) (maps.PlaceDetailsResult, error) {
			return p.client.PlaceDetails(ctx, &maps.PlaceDetailsRequest{
				PlaceID: placeID,
				Fields:  detailFields,
			})
		})
	if err != nil {
		return nil, err
	}

	d := toDetails(res)
	if p.detailsCache != nil {
		p.detailsCache.Put(placeID, d)
	}

	return d, nil
}
