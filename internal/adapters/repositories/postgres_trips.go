package repositories

import (
	"context"
	"database/sql"
	"errors"
	"eta-service/internal/domain"
	"eta-service/internal/platform/obs"
	"fmt"
	"strings"
)

// Postgres-backed implementation of the TripRecorder port.
type PostgresTripRepository struct{ DB *sql.DB }

func NewPostgresTripRepository(db *sql.DB) *PostgresTripRepository {
	return &PostgresTripRepository{DB: db}
}

// Append one served estimate to the trips table.
func (s *PostgresTripRepository) RecordTrip(ctx context.Context, trip *domain.Trip) error {
	if s.DB == nil {
		return errors.New("trip repository: DB is nil")
	}
	if trip == nil {
		return errors.New("record trip: trip is nil")
	}
	if strings.TrimSpace(trip.Pickup) == "" || strings.TrimSpace(trip.Dropoff) == "" {
		return errors.New("record trip: pickup and dropoff must be non-empty")
	}

	q := `
	INSERT INTO trips (
		pickup, dropoff, distance_km, day_of_week, time_of_day, peak_traffic, eta_minutes, created_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`

	_, err := s.DB.ExecContext(
		ctx,
		q,
		trip.Pickup,
		trip.Dropoff,
		trip.DistanceKm,
		string(trip.DayOfWeek),
		trip.Hour,
		string(trip.Traffic),
		trip.ETAMinutes,
		trip.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("record trip: insert trips row: %w", err)
	}

	return nil
}

// Retrieve recorded trips, newest first. limit <= 0 returns all of them.
func (s *PostgresTripRepository) ListTrips(ctx context.Context, limit int) (_ []*domain.Trip, err error) {
	defer obs.Time(ctx, "trips.ListTrips")(&err)

	if s.DB == nil {
		return nil, errors.New("trip repository: DB is nil")
	}

	q := `
	SELECT
		trip_id, pickup, dropoff, distance_km, day_of_week, time_of_day, peak_traffic, eta_minutes, created_at
	FROM trips
	ORDER BY trip_id DESC
	`

	var rows *sql.Rows
	if limit > 0 {
		rows, err = s.DB.QueryContext(ctx, q+"LIMIT $1;", limit)
	} else {
		rows, err = s.DB.QueryContext(ctx, q+";")
	}
	if err != nil {
		return nil, fmt.Errorf("list trips: query trips table: %w", err)
	}
	defer rows.Close()

	trips := make([]*domain.Trip, 0, 64)
	for rows.Next() {
		var t domain.Trip
		var day, traffic string
		if err := rows.Scan(
			&t.TripID,
			&t.Pickup,
			&t.Dropoff,
			&t.DistanceKm,
			&day,
			&t.Hour,
			&traffic,
			&t.ETAMinutes,
			&t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("list trips: scan row: %w", err)
		}
		t.DayOfWeek = domain.Weekday(day)
		t.Traffic = domain.TrafficLevel(traffic)
		trips = append(trips, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list trips: row iteration: %w", err)
	}

	return trips, nil
}
