package dto

type EstimateRequest struct {
	Pickup  string `json:"pickup"`
	Dropoff string `json:"dropoff"`
	Day     string `json:"day"`
	// Pointer distinguishes "hour": 0 (midnight) from a missing field.
	Hour *int `json:"hour"`
}

type EstimateResponse struct {
	DistanceKm   float64 `json:"distance_km"`
	Traffic      string  `json:"traffic"`
	ETAMinutes   float64 `json:"eta_minutes"`
	ModelVersion string  `json:"model_version"`
	DistanceText string  `json:"distance_text"`
	ETAText      string  `json:"eta_text"`
}
