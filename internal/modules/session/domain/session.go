package domain

import "time"

const SchemaVersion = 1

// ActiveSession is the single in-flight interval, persisted to its own file
// so it survives process restarts.
type ActiveSession struct {
	SessionID string    `json:"session_id"`
	Category  string    `json:"category"`
	StartedAt time.Time `json:"started_at"`
	Note      string    `json:"note,omitempty"`
}

// FinishedSession is a stopped interval before it is (maybe) handed to the
// activity store. Duration is clamped to zero when the clock ran backwards.
type FinishedSession struct {
	SessionID string
	Category  string
	StartedAt time.Time
	EndedAt   time.Time
	Duration  time.Duration
	Note      string
}
