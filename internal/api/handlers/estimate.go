package handlers

import (
	"encoding/json"
	"errors"
	"eta-service/internal/api/dto"
	"eta-service/internal/domain"
	"eta-service/internal/metrics"
	"eta-service/internal/ports"
	"eta-service/internal/services"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"
)

type EstimateHandler struct {
	Geocoder ports.Geocoder
	Routes   ports.RouteProvider
	Model    ports.ETAModel
	// Recorder is nil when trip recording is disabled.
	Recorder ports.TripRecorder
	Metrics  *metrics.Collector
}

// Estimate runs the estimation pipeline for one request. Input problems are
// rejected here, before any external call; pipeline failures surface as a
// single distance-unavailable message with no internal detail.
func (h *EstimateHandler) Estimate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.EstimateRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if strings.TrimSpace(req.Pickup) == "" || strings.TrimSpace(req.Dropoff) == "" {
		writeError(w, r, http.StatusBadRequest, "please enter both pickup and drop-off locations")
		return
	}

	day, err := domain.ParseWeekday(req.Day)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "day must be a weekday name (Monday through Sunday)")
		return
	}

	if req.Hour == nil {
		writeError(w, r, http.StatusBadRequest, "hour is required")
		return
	}
	hour := *req.Hour
	if hour < 0 || hour > 23 {
		writeError(w, r, http.StatusBadRequest, "hour must be between 0 and 23")
		return
	}

	start := time.Now()

	svcReq := services.EstimateRequest{
		Pickup:  strings.TrimSpace(req.Pickup),
		Dropoff: strings.TrimSpace(req.Dropoff),
		Day:     day,
		Hour:    hour,
	}

	est, err := services.EstimateETA(r.Context(), svcReq, h.Geocoder, h.Routes, h.Model, h.Recorder)
	if errors.Is(err, services.ErrDistanceUnavailable) {
		if h.Metrics != nil {
			h.Metrics.DistanceUnavailable.Inc()
		}
		writeError(w, r, http.StatusUnprocessableEntity,
			"could not calculate the driving distance; please check the location names and try more specific ones, e.g. \"BTM Layout\" or \"Whitefield\"")
		return
	}
	if err != nil {
		log.Printf("estimate eta failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	if h.Metrics != nil {
		h.Metrics.Predictions.Inc()
		h.Metrics.EstimateDuration.Observe(time.Since(start).Seconds())
	}

	res := dto.EstimateResponse{
		DistanceKm:   est.DistanceKm,
		Traffic:      string(est.Traffic),
		ETAMinutes:   est.ETAMinutes,
		ModelVersion: est.ModelVersion,
		DistanceText: fmt.Sprintf("Estimated Distance: %s km", strconv.FormatFloat(est.DistanceKm, 'f', -1, 64)),
		ETAText:      fmt.Sprintf("Predicted ETA: %.2f minutes", est.ETAMinutes),
	}

	writeJSON(w, r, http.StatusOK, res)
}
