package services

import (
	"context"
	"eta-service/internal/domain"
	"eta-service/internal/ports"
)

type stubGeocoder struct {
	coords map[string]domain.Coordinates
	calls  int
}

func (s *stubGeocoder) Geocode(ctx context.Context, place string) (domain.Coordinates, bool, error) {
	s.calls++
	c, ok := s.coords[place]
	return c, ok, nil
}

type stubRoutes struct {
	meters float64
	err    error
	calls  int
}

func (s *stubRoutes) DrivingDistance(ctx context.Context, start, end domain.Coordinates) (ports.RouteSummary, error) {
	s.calls++
	if s.err != nil {
		return ports.RouteSummary{}, s.err
	}
	return ports.RouteSummary{DistanceMeters: s.meters}, nil
}

type stubModel struct {
	minutes float64
	calls   int
	lastRow domain.FeatureRow
}

func (s *stubModel) Predict(ctx context.Context, row domain.FeatureRow) (float64, error) {
	s.calls++
	s.lastRow = row
	return s.minutes, nil
}

func (s *stubModel) Version() string { return "stub" }

type stubRecorder struct {
	trips []*domain.Trip
	err   error
}

func (s *stubRecorder) RecordTrip(ctx context.Context, trip *domain.Trip) error {
	if s.err != nil {
		return s.err
	}
	s.trips = append(s.trips, trip)
	return nil
}

func (s *stubRecorder) ListTrips(ctx context.Context, limit int) ([]*domain.Trip, error) {
	return s.trips, nil
}
