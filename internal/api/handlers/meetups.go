package handlers

import (
	"meetup-point-service/internal/api/dto"
	"meetup-point-service/internal/services"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

const maxListLimit = 100

type MeetupHandler struct {
	Service *services.MeetupService
}

// List returns the most recent meetups.
func (h *MeetupHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > maxListLimit {
			writeError(w, r, http.StatusBadRequest, "limit must be between 1 and 100")
			return
		}
		limit = n
	}

	meetups, err := h.Service.RecentMeetups(r.Context(), limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	res := dto.ListMeetupResponse{Meetups: make([]dto.MeetupResponse, 0, len(meetups))}
	for _, m := range meetups {
		res.Meetups = append(res.Meetups, dto.NewMeetupResponse(m))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *MeetupHandler) Get(w http.ResponseWriter, r *http.Request) {
	m, err := h.Service.Meetup(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewMeetupResponse(m))
}
