package services

import (
	"context"
	"errors"
	"eta-service/internal/domain"
	"eta-service/internal/ports"
	"fmt"
	"log"
	"strings"
	"time"
)

// ErrDistanceUnavailable reports that no driving distance could be resolved
// for the requested places. Callers surface it to the user without internal
// detail; whether the cause was an unknown place or an unreachable service
// is intentionally not distinguished.
var ErrDistanceUnavailable = errors.New("distance unavailable")

type EstimateRequest struct {
	Pickup  string
	Dropoff string
	Day     domain.Weekday
	Hour    int
}

type Estimate struct {
	DistanceKm   float64
	Traffic      domain.TrafficLevel
	ETAMinutes   float64
	ModelVersion string
}

// EstimateETA runs the full pipeline: resolve the driving distance, build
// the model feature row from distance, day, hour and the derived traffic
// bucket, and predict travel minutes. The model is never invoked when the
// distance cannot be resolved. A served estimate is recorded as training
// data when a recorder is supplied; recording failures are logged and never
// surfaced.
func EstimateETA(
	ctx context.Context,
	req EstimateRequest,
	geocoder ports.Geocoder,
	routes ports.RouteProvider,
	etaModel ports.ETAModel,
	recorder ports.TripRecorder,
) (*Estimate, error) {
	if strings.TrimSpace(req.Pickup) == "" || strings.TrimSpace(req.Dropoff) == "" {
		return nil, errors.New("estimate eta: pickup and dropoff must be non-empty")
	}
	if req.Hour < 0 || req.Hour > 23 {
		return nil, fmt.Errorf("estimate eta: hour %d out of range", req.Hour)
	}
	day, err := domain.ParseWeekday(string(req.Day))
	if err != nil {
		return nil, fmt.Errorf("estimate eta: %w", err)
	}

	distance, ok, err := ResolveDistance(ctx, req.Pickup, req.Dropoff, geocoder, routes)
	if err != nil {
		return nil, fmt.Errorf("estimate eta: %w", err)
	}
	if !ok {
		return nil, ErrDistanceUnavailable
	}

	row := domain.FeatureRow{
		DistanceKm: distance,
		DayOfWeek:  day,
		Hour:       req.Hour,
		Traffic:    domain.CategorizeTraffic(req.Hour),
	}
	if err := row.Validate(); err != nil {
		return nil, fmt.Errorf("estimate eta: %w", err)
	}

	minutes, err := etaModel.Predict(ctx, row)
	if err != nil {
		return nil, fmt.Errorf("estimate eta: predict: %w", err)
	}

	if recorder != nil {
		trip := &domain.Trip{
			Pickup:     strings.TrimSpace(req.Pickup),
			Dropoff:    strings.TrimSpace(req.Dropoff),
			DistanceKm: row.DistanceKm,
			DayOfWeek:  row.DayOfWeek,
			Hour:       row.Hour,
			Traffic:    row.Traffic,
			ETAMinutes: minutes,
			CreatedAt:  time.Now().UTC(),
		}
		if err := recorder.RecordTrip(ctx, trip); err != nil {
			log.Printf("record trip failed: %v", err)
		}
	}

	return &Estimate{
		DistanceKm:   distance,
		Traffic:      row.Traffic,
		ETAMinutes:   minutes,
		ModelVersion: etaModel.Version(),
	}, nil
}
