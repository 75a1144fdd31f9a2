package domain

import (
	"fmt"
	"strings"
)

// Day-of-week name as the trained model saw it during training.
type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
	Sunday    Weekday = "Sunday"
)

var weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// ParseWeekday resolves a user-supplied day name to its canonical form.
// Matching is case-insensitive; anything but the seven English names fails.
func ParseWeekday(s string) (Weekday, error) {
	trimmed := strings.TrimSpace(s)
	for _, d := range weekdays {
		if strings.EqualFold(trimmed, string(d)) {
			return d, nil
		}
	}
	return "", fmt.Errorf("invalid weekday %q", s)
}
