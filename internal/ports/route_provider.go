package ports

import (
	"context"
	"eta-service/internal/domain"
)

// Distance and travel duration of a single driving route.
type RouteSummary struct {
	DistanceMeters  float64
	DurationSeconds float64
}

// Contract for computing a driving route between two coordinate pairs.
type RouteProvider interface {
	// Return the summary of the best driving route from start to end.
	DrivingDistance(ctx context.Context, start, end domain.Coordinates) (RouteSummary, error)
}
