package googlemaps

import (
	"meetup-point-service/internal/domain"

	"googlemaps.github.io/maps"
)

const businessClosedPermanently = "CLOSED_PERMANENTLY"

func toLatLng(l maps.LatLng) domain.LatLng {
	return domain.LatLng{Lat: l.Lat, Lng: l.Lng}
}

func toCandidate(r maps.PlacesSearchResult) domain.Candidate {
	addr := r.Vicinity
	if addr == "" {
		addr = r.FormattedAddress
	}

	return domain.Candidate{
		PlaceID:           r.PlaceID,
		Name:              r.Name,
		Rating:            float64(r.Rating),
		Location:          toLatLng(r.Geometry.Location),
		Address:           addr,
		PermanentlyClosed: r.PermanentlyClosed || r.BusinessStatus == businessClosedPermanently,
	}
}

func toDetails(r maps.PlaceDetailsResult) *domain.Details {
	comps := make([]domain.AddressComponent, 0, len(r.AddressComponents))
	for _, c := range r.AddressComponents {
		comps = append(comps, domain.AddressComponent{
			LongName:  c.LongName,
			ShortName: c.ShortName,
			Types:     c.Types,
		})
	}

	return &domain.Details{
		Website:           r.Website,
		FormattedAddress:  r.FormattedAddress,
		AddressComponents: comps,
	}
}

func toMode(m domain.TravelMode) maps.Mode {
	switch m {
	case domain.TravelModeWalking:
		return maps.TravelModeWalking
	case domain.TravelModeBicycling:
		return maps.TravelModeBicycling
	case domain.TravelModeTransit:
		return maps.TravelModeTransit
	default:
		return maps.TravelModeDriving
	}
}

// toTransitMode reports the sub-mode to request, if any.
func toTransitMode(t domain.TravelOptions) (maps.TransitMode, bool) {
	if t.Mode != domain.TravelModeTransit {
		return "", false
	}

	switch t.Transit {
	case domain.TransitModeBus:
		return maps.TransitModeBus, true
	case domain.TransitModeSubway:
		return maps.TransitModeSubway, true
	case domain.TransitModeTrain:
		return maps.TransitModeTrain, true
	case domain.TransitModeTram:
		return maps.TransitModeTram, true
	case domain.TransitModeRail:
		return maps.TransitModeRail, true
	}
	return "", false
}

func toRoute(rr domain.RouteRequest, r maps.Route) *domain.Route {
	out := &domain.Route{
		Origin:          rr.Origin,
		Destination:     rr.Destination,
		Summary:         r.Summary,
		EncodedPolyline: r.OverviewPolyline.Points,
		Copyrights:      r.Copyrights,
		Warnings:        r.Warnings,
	}

	for _, leg := range r.Legs {
		if leg == nil {
			continue
		}
		for _, s := range leg.Steps {
			if s == nil {
				continue
			}
			secs := int(s.Duration.Seconds())
			out.Steps = append(out.Steps, domain.RouteStep{
				HTMLInstruction: s.HTMLInstructions,
				DistanceMeters:  s.Distance.Meters,
				DurationSeconds: secs,
				TravelMode:      s.TravelMode,
			})
			out.TotalDistanceMeters += s.Distance.Meters
			out.TotalDurationSeconds += secs
		}
	}

	return out
}
