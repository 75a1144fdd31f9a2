package dto

import "time"

type TripResponse struct {
	TripID     int       `json:"trip_id"`
	Pickup     string    `json:"pickup"`
	Dropoff    string    `json:"dropoff"`
	DistanceKm float64   `json:"distance_km"`
	DayOfWeek  string    `json:"day_of_week"`
	TimeOfDay  int       `json:"time_of_day"`
	Traffic    string    `json:"peak_traffic"`
	ETAMinutes float64   `json:"eta_minutes"`
	CreatedAt  time.Time `json:"created_at"`
}

type ListTripsResponse struct {
	Trips []TripResponse `json:"trips"`
}
