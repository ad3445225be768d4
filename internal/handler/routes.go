package handler

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Register mounts the public routes on r and the engine routes on api
func (h *Handler) Register(r, api *mux.Router) {
	r.HandleFunc("/healthz", h.Health).Methods(http.MethodGet)

	api.HandleFunc("/evaluate", h.Evaluate).Methods(http.MethodPost)
	api.HandleFunc("/predict", h.Evaluate).Methods(http.MethodPost)
	api.HandleFunc("/simulate", h.Simulate).Methods(http.MethodPost)
	api.HandleFunc("/whatif", h.Simulate).Methods(http.MethodPost)
	api.HandleFunc("/score/breakdown", h.Breakdown).Methods(http.MethodPost)
	api.HandleFunc("/policy", h.Policy).Methods(http.MethodGet)
	api.HandleFunc("/key-rate", h.KeyRate).Methods(http.MethodGet)
}
