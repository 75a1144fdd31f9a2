package ports

import (
	"context"
	"eta-service/internal/domain"
)

// Port: a boundary for persisting served estimates as training data.
type TripRecorder interface {
	// Append one served estimate. Failures must not break the serving path.
	RecordTrip(ctx context.Context, trip *domain.Trip) error

	// Retrieve recorded trips, newest first. limit <= 0 returns all of them.
	ListTrips(ctx context.Context, limit int) ([]*domain.Trip, error)
}
