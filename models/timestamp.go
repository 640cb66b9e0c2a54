package models

import "time"

// TimestampLayout is the second-precision format used for created_at and
// updated_at fields.
const TimestampLayout = "2006-01-02 15:04:05"

// DateLayout is the calendar-date format of check-in/check-out dates.
const DateLayout = "2006-01-02"

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
