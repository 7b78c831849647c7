package utils

import "time"

// TimeLayout is fixed width so stored timestamps compare lexicographically.
const TimeLayout = "2006-01-02T15:04:05.000000Z07:00"

// Timestamp formats t the way every table stores times.
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// Day returns the UTC calendar day used to bucket daily quotas.
func Day(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
