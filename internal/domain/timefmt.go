package domain

import (
	"fmt"
	"strings"
	"time"
)

// Timestamp layouts used by the load board dataset and trip requests.
// Both are interpreted as UTC.
const (
	LoadTimeLayout = "2006-01-02T15:04:05.999999Z"
	TripTimeLayout = "2006-01-02 15:04:05"
)

func ParseLoadTime(s string) (time.Time, error) {
	t, err := time.ParseInLocation(LoadTimeLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse load time %q: %w", s, err)
	}
	return t, nil
}

func ParseTripTime(s string) (time.Time, error) {
	t, err := time.ParseInLocation(TripTimeLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse trip time %q: %w", s, err)
	}
	return t, nil
}
