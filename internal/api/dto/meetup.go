package dto

import (
	"meetup-point-service/internal/domain"
	"time"
)

type UpdateRequest struct {
	Origin1     string `json:"origin1"`
	Origin2     string `json:"origin2"`
	Keyword     string `json:"keyword"`
	Radius      string `json:"radius"`
	TravelMode  string `json:"travel_mode"`
	TransitMode string `json:"transit_mode"`
}

type LatLngResponse struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type OriginResponse struct {
	Address  string         `json:"address"`
	Location LatLngResponse `json:"location"`
}

type DurationResponse struct {
	Origin  string `json:"origin"`
	Text    string `json:"text"`
	Seconds int    `json:"seconds"`
}

type CandidateResponse struct {
	PlaceID        string             `json:"place_id"`
	Name           string             `json:"name"`
	Rating         float64            `json:"rating,omitempty"`
	Location       LatLngResponse     `json:"location"`
	Address        string             `json:"address"`
	Website        string             `json:"website,omitempty"`
	Durations      []DurationResponse `json:"durations"`
	AverageSeconds float64            `json:"average_seconds"`
	Winner         bool               `json:"winner"`
}

type DirectionsActionResponse struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	TravelMode  string `json:"travel_mode"`
	TransitMode string `json:"transit_mode,omitempty"`
}

type MeetupResponse struct {
	ID           string                     `json:"id"`
	SessionID    string                     `json:"session_id"`
	Generation   uint64                     `json:"generation"`
	Keyword      string                     `json:"keyword"`
	Radius       string                     `json:"radius"`
	RadiusMeters int                        `json:"radius_meters"`
	TravelMode   string                     `json:"travel_mode"`
	TransitMode  string                     `json:"transit_mode,omitempty"`
	Origins      []OriginResponse           `json:"origins"`
	Midpoint     LatLngResponse             `json:"midpoint"`
	Candidates   []CandidateResponse        `json:"candidates"`
	Winner       int                        `json:"winner"`
	Directions   []DirectionsActionResponse `json:"directions"`
	CreatedAt    time.Time                  `json:"created_at"`
	Scene        *SceneResponse             `json:"scene,omitempty"`
}

type ListMeetupResponse struct {
	Meetups []MeetupResponse `json:"meetups"`
}

func NewLatLng(p domain.LatLng) LatLngResponse {
	return LatLngResponse{Lat: p.Lat, Lng: p.Lng}
}

func NewMeetupResponse(m *domain.Meetup) MeetupResponse {
	res := MeetupResponse{
		ID:           m.ID,
		SessionID:    m.SessionID,
		Generation:   m.Generation,
		Keyword:      m.Request.Keyword,
		Radius:       string(m.Request.Radius),
		RadiusMeters: m.RadiusMeters,
		TravelMode:   string(m.Request.Travel.Mode),
		TransitMode:  string(m.Request.Travel.Transit),
		Midpoint:     NewLatLng(m.Midpoint),
		Winner:       m.Winner,
		CreatedAt:    m.CreatedAt,
		Origins:      make([]OriginResponse, 0, len(m.Origins)),
		Candidates:   make([]CandidateResponse, 0, len(m.Candidates)),
		Directions:   make([]DirectionsActionResponse, 0, len(m.Directions)),
	}

	for _, o := range m.Origins {
		res.Origins = append(res.Origins, OriginResponse{Address: o.Address, Location: NewLatLng(o.Location)})
	}

	for i := range m.Candidates {
		c := &m.Candidates[i]
		cr := CandidateResponse{
			PlaceID:        c.PlaceID,
			Name:           c.Name,
			Rating:         c.Rating,
			Location:       NewLatLng(c.Location),
			Address:        c.ResolvedAddress(),
			AverageSeconds: c.AverageSeconds(),
			Winner:         i == m.Winner,
			Durations:      make([]DurationResponse, 0, len(c.Durations)),
		}
		if c.Details != nil {
			cr.Website = c.Details.Website
		}
		for j, d := range c.Durations {
			cr.Durations = append(cr.Durations, DurationResponse{Origin: m.Request.Origins[j], Text: d.Text, Seconds: d.Seconds})
		}
		res.Candidates = append(res.Candidates, cr)
	}

	for _, d := range m.Directions {
		res.Directions = append(res.Directions, DirectionsActionResponse{
			Origin:      d.Origin,
			Destination: d.Destination,
			TravelMode:  string(d.Travel.Mode),
			TransitMode: string(d.Travel.Transit),
		})
	}

	return res
}
