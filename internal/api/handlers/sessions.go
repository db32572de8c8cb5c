package handlers

import (
	"meetup-point-service/internal/api/dto"
	"meetup-point-service/internal/domain"
	"meetup-point-service/internal/render"
	"meetup-point-service/internal/services"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type SessionHandler struct {
	Service *services.MeetupService
}

// Update runs the meetup pipeline for the session and returns the result
// together with the committed scene.
func (h *SessionHandler) Update(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["session"]

	var body dto.UpdateRequest
	if !decodeJSON(w, r, &body) {
		return
	}

	radius, err := domain.ParseSearchRadius(body.Radius)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	travel, err := domain.ParseTravelOptions(body.TravelMode, body.TransitMode)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	req := domain.MeetupRequest{
		Origins: [2]string{body.Origin1, body.Origin2},
		Keyword: body.Keyword,
		Radius:  radius,
		Travel:  travel,
	}

	m, snap, err := h.Service.Update(r.Context(), sessionID, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	res := dto.NewMeetupResponse(m)
	scene := dto.NewSceneResponse(snap)
	res.Scene = &scene

	writeJSON(w, r, http.StatusOK, res)
}

// Route renders directions into the session scene.
func (h *SessionHandler) Route(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["session"]

	var body dto.RouteRequest
	if !decodeJSON(w, r, &body) {
		return
	}

	travel, err := domain.ParseTravelOptions(body.TravelMode, body.TransitMode)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	route, err := h.Service.Route(r.Context(), sessionID, domain.RouteRequest{
		Origin:      body.Origin,
		Destination: body.Destination,
		Travel:      travel,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewRouteResponse(route))
}

func (h *SessionHandler) Scene(w http.ResponseWriter, r *http.Request) {
	snap, err := h.Service.Scene(mux.Vars(r)["session"])
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewSceneResponse(snap))
}

// SceneKML exports the session scene for KML viewers.
func (h *SessionHandler) SceneKML(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["session"]

	snap, err := h.Service.Scene(sessionID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.google-earth.kml+xml")
	w.Header().Set("Content-Disposition", `attachment; filename="meetup.kml"`)
	if err := render.WriteKML(w, "Meetup "+sessionID, snap); err != nil {
		zap.L().Warn("kml export failed", zap.String("session", sessionID), zap.Error(err))
	}
}

func (h *SessionHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Clear(mux.Vars(r)["session"]); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
