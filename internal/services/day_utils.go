package services

import (
	"strings"
	"time"
)

const DayLayout = "2006-01-02"

func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

// DayRange returns the half-open [start, end) bounds of the local day containing value.
func DayRange(value time.Time, location *time.Location) (time.Time, time.Time) {
	start := DateAtLocation(value, location)
	return start, start.AddDate(0, 0, 1)
}

// ParseDay reads a YYYY-MM-DD value as local midnight.
func ParseDay(raw string, location *time.Location) (time.Time, error) {
	if location == nil {
		location = time.UTC
	}
	return time.ParseInLocation(DayLayout, strings.TrimSpace(raw), location)
}

func FormatDay(value time.Time, location *time.Location) string {
	return DateAtLocation(value, location).Format(DayLayout)
}
