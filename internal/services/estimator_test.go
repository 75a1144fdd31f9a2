package services

import (
	"context"
	"errors"
	"eta-service/internal/domain"
	"testing"
)

func TestEstimateETAFullPipeline(t *testing.T) {
	geo := &stubGeocoder{coords: map[string]domain.Coordinates{
		"Indiranagar": {Lon: 77.6412, Lat: 12.9719},
		"Jayanagar":   {Lon: 77.5946, Lat: 12.9308},
	}}
	routes := &stubRoutes{meters: 8200}
	model := &stubModel{minutes: 23.4}
	recorder := &stubRecorder{}

	req := EstimateRequest{Pickup: "Indiranagar", Dropoff: "Jayanagar", Day: domain.Monday, Hour: 9}

	est, err := EstimateETA(context.Background(), req, geo, routes, model, recorder)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if est.DistanceKm != 8.2 {
		t.Errorf("distance = %v, want 8.2", est.DistanceKm)
	}
	if est.Traffic != domain.TrafficHigh {
		t.Errorf("traffic = %q, want high", est.Traffic)
	}
	if est.ETAMinutes != 23.4 {
		t.Errorf("eta = %v, want 23.4", est.ETAMinutes)
	}
	if est.ModelVersion != "stub" {
		t.Errorf("model version = %q, want stub", est.ModelVersion)
	}

	if model.calls != 1 {
		t.Fatalf("model calls = %d, want 1", model.calls)
	}
	wantRow := domain.FeatureRow{DistanceKm: 8.2, DayOfWeek: domain.Monday, Hour: 9, Traffic: domain.TrafficHigh}
	if model.lastRow != wantRow {
		t.Errorf("feature row = %+v, want %+v", model.lastRow, wantRow)
	}

	if len(recorder.trips) != 1 {
		t.Fatalf("recorded trips = %d, want 1", len(recorder.trips))
	}
	trip := recorder.trips[0]
	if trip.Pickup != "Indiranagar" || trip.Dropoff != "Jayanagar" {
		t.Errorf("trip places = %q -> %q", trip.Pickup, trip.Dropoff)
	}
	if trip.ETAMinutes != 23.4 {
		t.Errorf("trip eta = %v, want 23.4", trip.ETAMinutes)
	}
}

func TestEstimateETADistanceUnavailable(t *testing.T) {
	geo := &stubGeocoder{coords: map[string]domain.Coordinates{
		"Indiranagar": {Lon: 77.6412, Lat: 12.9719},
		// dropoff never geocodes
	}}
	routes := &stubRoutes{meters: 8200}
	model := &stubModel{minutes: 23.4}
	recorder := &stubRecorder{}

	req := EstimateRequest{Pickup: "Indiranagar", Dropoff: "Atlantis", Day: domain.Monday, Hour: 9}

	_, err := EstimateETA(context.Background(), req, geo, routes, model, recorder)
	if !errors.Is(err, ErrDistanceUnavailable) {
		t.Fatalf("error = %v, want ErrDistanceUnavailable", err)
	}
	if model.calls != 0 {
		t.Fatalf("model calls = %d, want 0", model.calls)
	}
	if len(recorder.trips) != 0 {
		t.Fatalf("recorded trips = %d, want 0", len(recorder.trips))
	}
}

func TestEstimateETARecorderFailureIsNonFatal(t *testing.T) {
	geo := &stubGeocoder{coords: map[string]domain.Coordinates{
		"A": {Lon: 1, Lat: 1},
		"B": {Lon: 2, Lat: 2},
	}}
	routes := &stubRoutes{meters: 5000}
	model := &stubModel{minutes: 15}
	recorder := &stubRecorder{err: errors.New("db down")}

	req := EstimateRequest{Pickup: "A", Dropoff: "B", Day: domain.Friday, Hour: 14}

	est, err := EstimateETA(context.Background(), req, geo, routes, model, recorder)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if est.ETAMinutes != 15 {
		t.Fatalf("eta = %v, want 15", est.ETAMinutes)
	}
}

func TestEstimateETANilRecorder(t *testing.T) {
	geo := &stubGeocoder{coords: map[string]domain.Coordinates{
		"A": {Lon: 1, Lat: 1},
		"B": {Lon: 2, Lat: 2},
	}}
	routes := &stubRoutes{meters: 5000}
	model := &stubModel{minutes: 15}

	req := EstimateRequest{Pickup: "A", Dropoff: "B", Day: domain.Sunday, Hour: 23}

	est, err := EstimateETA(context.Background(), req, geo, routes, model, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if est.Traffic != domain.TrafficLow {
		t.Errorf("traffic = %q, want low for hour 23", est.Traffic)
	}
}

func TestEstimateETAValidation(t *testing.T) {
	geo := &stubGeocoder{}
	routes := &stubRoutes{}
	model := &stubModel{}

	cases := []struct {
		name string
		req  EstimateRequest
	}{
		{"blank pickup", EstimateRequest{Pickup: " ", Dropoff: "B", Day: domain.Monday, Hour: 9}},
		{"blank dropoff", EstimateRequest{Pickup: "A", Dropoff: "", Day: domain.Monday, Hour: 9}},
		{"hour out of range", EstimateRequest{Pickup: "A", Dropoff: "B", Day: domain.Monday, Hour: 24}},
		{"bad day", EstimateRequest{Pickup: "A", Dropoff: "B", Day: "Caturday", Hour: 9}},
	}

	for _, c := range cases {
		if _, err := EstimateETA(context.Background(), c.req, geo, routes, model, nil); err == nil {
			t.Errorf("%s: expected error", c.name)
		}
	}

	if geo.calls != 0 || routes.calls != 0 || model.calls != 0 {
		t.Fatalf("external calls made for invalid input: geo=%d routes=%d model=%d", geo.calls, routes.calls, model.calls)
	}
}
