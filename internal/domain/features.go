package domain

import "fmt"

// FeatureRow is the exact and only input contract of the trained ETA model:
// driving distance in kilometers, weekday name, hour of day, and the traffic
// bucket derived from that hour. A row must pass Validate before prediction;
// the model's behavior on malformed rows is undefined.
type FeatureRow struct {
	DistanceKm float64
	DayOfWeek  Weekday
	Hour       int
	Traffic    TrafficLevel
}

func (r FeatureRow) Validate() error {
	if r.DistanceKm < 0 {
		return fmt.Errorf("feature row: distance must be non-negative, got %v", r.DistanceKm)
	}
	if _, err := ParseWeekday(string(r.DayOfWeek)); err != nil {
		return fmt.Errorf("feature row: %w", err)
	}
	if r.Hour < 0 || r.Hour > 23 {
		return fmt.Errorf("feature row: hour must be in [0,23], got %d", r.Hour)
	}
	switch r.Traffic {
	case TrafficLow, TrafficMedium, TrafficHigh:
	default:
		return fmt.Errorf("feature row: invalid traffic level %q", r.Traffic)
	}
	return nil
}
