package handlers

import (
	"eta-service/internal/api/dto"
	"eta-service/internal/ports"
	"log"
	"net/http"
	"strconv"
)

// TripHandler exposes read-only access to recorded training trips.
type TripHandler struct {
	Repo ports.TripRecorder
}

func (h *TripHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 1000 {
			writeError(w, r, http.StatusBadRequest, "limit must be between 1 and 1000")
			return
		}
		limit = n
	}

	trips, err := h.Repo.ListTrips(r.Context(), limit)
	if err != nil {
		log.Printf("list trips failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListTripsResponse{
		Trips: make([]dto.TripResponse, 0, len(trips)),
	}
	for _, t := range trips {
		res.Trips = append(res.Trips, dto.TripResponse{
			TripID:     t.TripID,
			Pickup:     t.Pickup,
			Dropoff:    t.Dropoff,
			DistanceKm: t.DistanceKm,
			DayOfWeek:  string(t.DayOfWeek),
			TimeOfDay:  t.Hour,
			Traffic:    string(t.Traffic),
			ETAMinutes: t.ETAMinutes,
			CreatedAt:  t.CreatedAt,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
