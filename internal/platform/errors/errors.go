package apperrors

import "errors"

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnknownCategory = errors.New("unknown category")
	ErrNoActiveSession = errors.New("no active session")
	ErrSessionRunning  = errors.New("a session is already running")
)
