package api

import (
	"eta-service/internal/api/handlers"
	"eta-service/internal/metrics"
	"eta-service/internal/ports"
	"net/http"
)

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root; handlers stay unaware of
// concrete adapters. recorder may be nil (recording disabled); trips may be
// nil, in which case the trips endpoint is not registered.
func NewRouter(
	geocoder ports.Geocoder,
	routes ports.RouteProvider,
	etaModel ports.ETAModel,
	recorder ports.TripRecorder,
	trips ports.TripRecorder,
	collector *metrics.Collector,
) http.Handler {
	mux := http.NewServeMux()

	estimateHandler := &handlers.EstimateHandler{
		Geocoder: geocoder,
		Routes:   routes,
		Model:    etaModel,
		Recorder: recorder,
		Metrics:  collector,
	}

	mux.HandleFunc("/", handlers.Index)
	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/estimates", estimateHandler.Estimate)

	if trips != nil {
		tripHandler := &handlers.TripHandler{Repo: trips}
		mux.HandleFunc("/trips", tripHandler.List)
	}

	return loggingMiddleware(mux)
}
