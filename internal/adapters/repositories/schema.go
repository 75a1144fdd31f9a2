package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the trips schema. Safe to run repeatedly.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createTripsQuery := `
	CREATE TABLE IF NOT EXISTS trips (
		trip_id BIGSERIAL PRIMARY KEY,
		pickup TEXT NOT NULL,
		dropoff TEXT NOT NULL,
		distance_km DOUBLE PRECISION NOT NULL,
		day_of_week TEXT NOT NULL,
		time_of_day INTEGER NOT NULL,
		peak_traffic TEXT NOT NULL,
		eta_minutes DOUBLE PRECISION NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_trips_created_at
	ON trips(created_at);
	`

	statements := []string{
		createTripsQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
