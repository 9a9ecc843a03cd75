package clock

import "time"

// Clock abstracts time so session and report logic stays deterministic in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock reports local wall-clock time. Reports bucket records by the
// user's civil day, so local time is the reference, not UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
