package domain

// Coarse congestion bucket derived from the hour of day.
// The trained model consumes it as the peak_traffic categorical column.
type TrafficLevel string

const (
	TrafficLow    TrafficLevel = "low"
	TrafficMedium TrafficLevel = "medium"
	TrafficHigh   TrafficLevel = "high"
)

// CategorizeTraffic maps an hour of day in [0,23] to a congestion bucket.
// Morning (7-11) and evening (17-22) rush windows rate high, early
// afternoon (12-16) medium, and the remaining hours low.
func CategorizeTraffic(hour int) TrafficLevel {
	switch {
	case hour >= 7 && hour <= 11, hour >= 17 && hour <= 22:
		return TrafficHigh
	case hour >= 12 && hour <= 16:
		return TrafficMedium
	default:
		return TrafficLow
	}
}
