package dto

import "time"

type StartInput struct {
	Category string
	Note     string
}

type StartOutput struct {
	SessionID string
	Category  string
	StartedAt time.Time
}

type StopOutput struct {
	SessionID string
	Category  string
	StartedAt time.Time
	EndedAt   time.Time
	Duration  time.Duration
	// Persisted is false when the session ran shorter than the configured
	// minimum and was discarded instead of stored.
	Persisted bool
}

type StatusOutput struct {
	SessionID string
	Category  string
	StartedAt time.Time
	Note      string
	Elapsed   time.Duration
}
