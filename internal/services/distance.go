package services

import (
	"context"
	"errors"
	"eta-service/internal/ports"
	"fmt"
	"log"
	"math"
	"strings"
)

// ResolveDistance geocodes both endpoints and fetches the driving distance
// between them in kilometers, rounded to two decimal places.
//
// External failures collapse into the ok=false outcome: when either place
// cannot be geocoded the routing service is never called, and a routing
// failure or missing route reports the same absence. Every call hits the
// external services fresh; results are never cached, even for identical
// place pairs.
func ResolveDistance(
	ctx context.Context,
	start string,
	end string,
	geocoder ports.Geocoder,
	routes ports.RouteProvider,
) (float64, bool, error) {
	if strings.TrimSpace(start) == "" || strings.TrimSpace(end) == "" {
		return 0, false, errors.New("resolve distance: start and end must be non-empty")
	}

	startCoords, ok, err := geocoder.Geocode(ctx, start)
	if err != nil {
		return 0, false, fmt.Errorf("resolve distance: geocode %q: %w", start, err)
	}
	if !ok {
		log.Printf("resolve distance: could not geocode %q", start)
		return 0, false, nil
	}

	endCoords, ok, err := geocoder.Geocode(ctx, end)
	if err != nil {
		return 0, false, fmt.Errorf("resolve distance: geocode %q: %w", end, err)
	}
	if !ok {
		log.Printf("resolve distance: could not geocode %q", end)
		return 0, false, nil
	}

	summary, err := routes.DrivingDistance(ctx, startCoords, endCoords)
	if err != nil {
		log.Printf("resolve distance: routing %q -> %q failed: %v", start, end, err)
		return 0, false, nil
	}

	// Meters to kilometers, rounded to 2 decimal places.
	km := math.Round(summary.DistanceMeters/10) / 100
	return km, true, nil
}
