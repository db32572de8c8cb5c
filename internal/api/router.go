package api

import (
	"meetup-point-service/internal/api/handlers"
	"meetup-point-service/internal/services"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(svc *services.MeetupService) http.Handler {
	r := mux.NewRouter()
	r.Use(requestMiddleware)

	sessions := &handlers.SessionHandler{Service: svc}
	meetups := &handlers.MeetupHandler{Service: svc}

	r.HandleFunc("/health", handlers.Health).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	r.HandleFunc("/sessions/{session}/update", sessions.Update).Methods(http.MethodPost)
	r.HandleFunc("/sessions/{session}/route", sessions.Route).Methods(http.MethodPost)
	r.HandleFunc("/sessions/{session}/scene", sessions.Scene).Methods(http.MethodGet)
	r.HandleFunc("/sessions/{session}/scene.kml", sessions.SceneKML).Methods(http.MethodGet)
	r.HandleFunc("/sessions/{session}", sessions.Clear).Methods(http.MethodDelete)

	r.HandleFunc("/meetups", meetups.List).Methods(http.MethodGet)
	r.HandleFunc("/meetups/{id}", meetups.Get).Methods(http.MethodGet)

	return r
}
