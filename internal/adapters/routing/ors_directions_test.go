package routing

import (
	"context"
	"encoding/json"
	"eta-service/internal/domain"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDrivingDistance(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody directionsRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"routes":[{"summary":{"distance":12345,"duration":1800}}]}`))
	}))
	defer srv.Close()

	provider, err := NewORSRouteProvider("test-key", srv.URL, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	start := domain.Coordinates{Lon: 77.6412, Lat: 12.9719}
	end := domain.Coordinates{Lon: 77.5946, Lat: 12.9308}

	summary, err := provider.DrivingDistance(context.Background(), start, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/v2/directions/driving-car" {
		t.Errorf("path = %q, want /v2/directions/driving-car", gotPath)
	}
	if gotAuth != "test-key" {
		t.Errorf("authorization = %q, want test-key", gotAuth)
	}
	if len(gotBody.Coordinates) != 2 {
		t.Fatalf("coordinates = %d pairs, want 2", len(gotBody.Coordinates))
	}
	if gotBody.Coordinates[0][0] != 77.6412 || gotBody.Coordinates[0][1] != 12.9719 {
		t.Errorf("start pair = %v, want [77.6412 12.9719]", gotBody.Coordinates[0])
	}

	if summary.DistanceMeters != 12345 {
		t.Errorf("distance = %v, want 12345", summary.DistanceMeters)
	}
	if summary.DurationSeconds != 1800 {
		t.Errorf("duration = %v, want 1800", summary.DurationSeconds)
	}
}

func TestDrivingDistanceNoRoute(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"routes":[]}`))
	}))
	defer srv.Close()

	provider, err := NewORSRouteProvider("test-key", srv.URL, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = provider.DrivingDistance(context.Background(), domain.Coordinates{}, domain.Coordinates{})
	if err == nil {
		t.Fatal("expected error for empty route list")
	}
}

func TestDrivingDistanceServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	provider, err := NewORSRouteProvider("test-key", srv.URL, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = provider.DrivingDistance(context.Background(), domain.Coordinates{}, domain.Coordinates{})
	if err == nil {
		t.Fatal("expected error for 429 response")
	}
}

func TestNewORSRouteProviderRequiresKey(t *testing.T) {
	if _, err := NewORSRouteProvider("", "", nil); err == nil {
		t.Fatal("expected error for empty api key")
	}
}
