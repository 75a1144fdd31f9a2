package services

import (
	"context"
	"errors"
	"eta-service/internal/domain"
	"testing"
)

func TestResolveDistanceRoundsToTwoDecimals(t *testing.T) {
	geo := &stubGeocoder{coords: map[string]domain.Coordinates{
		"Indiranagar": {Lon: 77.6412, Lat: 12.9719},
		"Jayanagar":   {Lon: 77.5946, Lat: 12.9308},
	}}
	routes := &stubRoutes{meters: 12345}

	km, ok, err := ResolveDistance(context.Background(), "Indiranagar", "Jayanagar", geo, routes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected a resolved distance")
	}
	if km != 12.35 {
		t.Fatalf("distance = %v, want 12.35", km)
	}
	if geo.calls != 2 {
		t.Fatalf("geocode calls = %d, want 2", geo.calls)
	}
}

func TestResolveDistanceShortCircuitsOnGeocodeFailure(t *testing.T) {
	geo := &stubGeocoder{coords: map[string]domain.Coordinates{
		"Indiranagar": {Lon: 77.6412, Lat: 12.9719},
		// "Atlantis" is absent and never resolves.
	}}
	routes := &stubRoutes{meters: 12345}

	_, ok, err := ResolveDistance(context.Background(), "Indiranagar", "Atlantis", geo, routes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected absence when one endpoint cannot be geocoded")
	}
	if routes.calls != 0 {
		t.Fatalf("routing calls = %d, want 0 (short-circuit)", routes.calls)
	}
}

func TestResolveDistanceAbsorbsRoutingFailure(t *testing.T) {
	geo := &stubGeocoder{coords: map[string]domain.Coordinates{
		"A": {Lon: 1, Lat: 1},
		"B": {Lon: 2, Lat: 2},
	}}
	routes := &stubRoutes{err: errors.New("no route between points")}

	_, ok, err := ResolveDistance(context.Background(), "A", "B", geo, routes)
	if err != nil {
		t.Fatalf("routing failure should be absorbed, got error: %v", err)
	}
	if ok {
		t.Fatal("expected absence on routing failure")
	}
	if routes.calls != 1 {
		t.Fatalf("routing calls = %d, want 1", routes.calls)
	}
}

func TestResolveDistanceRejectsBlankInput(t *testing.T) {
	geo := &stubGeocoder{}
	routes := &stubRoutes{}

	if _, _, err := ResolveDistance(context.Background(), " ", "B", geo, routes); err == nil {
		t.Fatal("expected error for blank start")
	}
	if geo.calls != 0 || routes.calls != 0 {
		t.Fatalf("external calls made for blank input: geo=%d routes=%d", geo.calls, routes.calls)
	}
}
