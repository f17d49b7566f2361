package utils

import (
	"praktis-service/internal/pkg/constvars"
	"time"
)

// ParseDateOnly parses a YYYY-MM-DD calendar date in the given location.
func ParseDateOnly(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation(constvars.DateOnlyFormat, value, loc)
}

// FormatDateOnly renders a time as its YYYY-MM-DD calendar date.
func FormatDateOnly(t time.Time) string {
	return t.Format(constvars.DateOnlyFormat)
}
