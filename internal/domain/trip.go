package domain

import "time"

// Trip is one served estimate kept as training data for the offline model
// job: the place names the user entered, the feature row that was fed to the
// model, and the minutes the model predicted. Trips are append-only; nothing
// in the serving path reads them back except the export tooling.
type Trip struct {
	TripID     int
	Pickup     string
	Dropoff    string
	DistanceKm float64
	DayOfWeek  Weekday
	Hour       int
	Traffic    TrafficLevel
	ETAMinutes float64
	CreatedAt  time.Time
}
