package dto

import "meetup-point-service/internal/domain"

type RouteRequest struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	TravelMode  string `json:"travel_mode"`
	TransitMode string `json:"transit_mode"`
}

type StepResponse struct {
	Instruction     string `json:"instruction"`
	HTMLInstruction string `json:"html_instruction"`
	DistanceMeters  int    `json:"distance_meters"`
	DurationSeconds int    `json:"duration_seconds"`
	TravelMode      string `json:"travel_mode,omitempty"`
}

type RouteResponse struct {
	Origin               string           `json:"origin"`
	Destination          string           `json:"destination"`
	Summary              string           `json:"summary,omitempty"`
	Steps                []StepResponse   `json:"steps"`
	Path                 []LatLngResponse `json:"path"`
	TotalDistanceMeters  int              `json:"total_distance_meters"`
	TotalDurationSeconds int              `json:"total_duration_seconds"`
	DurationText         string           `json:"duration_text"`
	Copyrights           string           `json:"copyrights,omitempty"`
	Warnings             []string         `json:"warnings,omitempty"`
}

type MarkerResponse struct {
	Handle   string         `json:"handle"`
	Position LatLngResponse `json:"position"`
	Icon     string         `json:"icon"`
	Title    string         `json:"title"`
	InfoHTML string         `json:"info_html"`
}

type CircleResponse struct {
	Handle       string         `json:"handle"`
	Center       LatLngResponse `json:"center"`
	RadiusMeters int            `json:"radius_meters"`
}

type SceneResponse struct {
	Generation uint64           `json:"generation"`
	Markers    []MarkerResponse `json:"markers"`
	Circles    []CircleResponse `json:"circles"`
	Route      *RouteResponse   `json:"route,omitempty"`
}

func NewRouteResponse(r *domain.Route) RouteResponse {
	res := RouteResponse{
		Origin:               r.Origin,
		Destination:          r.Destination,
		Summary:              r.Summary,
		Steps:                make([]StepResponse, 0, len(r.Steps)),
		Path:                 make([]LatLngResponse, 0, len(r.Path)),
		TotalDistanceMeters:  r.TotalDistanceMeters,
		TotalDurationSeconds: r.TotalDurationSeconds,
		DurationText:         r.DurationText(),
		Copyrights:           r.Copyrights,
		Warnings:             r.Warnings,
	}

	for _, s := range r.Steps {
		res.Steps = append(res.Steps, StepResponse{
			Instruction:     s.Instruction,
			HTMLInstruction: s.HTMLInstruction,
			DistanceMeters:  s.DistanceMeters,
			DurationSeconds: s.DurationSeconds,
			TravelMode:      s.TravelMode,
		})
	}
	for _, p := range r.Path {
		res.Path = append(res.Path, NewLatLng(p))
	}

	return res
}

func NewSceneResponse(snap domain.SceneSnapshot) SceneResponse {
	res := SceneResponse{
		Generation: snap.Generation,
		Markers:    make([]MarkerResponse, 0, len(snap.Markers)),
		Circles:    make([]CircleResponse, 0, len(snap.Circles)),
	}

	for _, m := range snap.Markers {
		res.Markers = append(res.Markers, MarkerResponse{
			Handle:   string(m.Handle),
			Position: NewLatLng(m.Position),
			Icon:     string(m.Icon),
			Title:    m.Title,
			InfoHTML: m.InfoHTML,
		})
	}
	for _, c := range snap.Circles {
		res.Circles = append(res.Circles, CircleResponse{
			Handle:       string(c.Handle),
			Center:       NewLatLng(c.Center),
			RadiusMeters: c.RadiusMeters,
		})
	}
	if snap.Route != nil {
		r := NewRouteResponse(snap.Route)
		res.Route = &r
	}

	return res
}
