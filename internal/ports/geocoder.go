package ports

import (
	"context"
	"eta-service/internal/domain"
)

// Port: a boundary for resolving free-text place names to coordinates.
type Geocoder interface {
	// Resolve a place name to coordinates. ok is false when the place could
	// not be resolved after the adapter's retry budget is exhausted; an
	// unreachable service and an unknown place are deliberately
	// indistinguishable here. err is reserved for context cancellation.
	Geocode(ctx context.Context, place string) (coords domain.Coordinates, ok bool, err error)
}
