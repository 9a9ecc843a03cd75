package dto

import "time"

type RecordOutput struct {
	Category string
	Start    time.Time
	End      time.Time
	Hours    float64
	Duration string
	Note     string
}

// RecordInput carries a completed interval into the store, either as a plain
// append (session stop) or as an amend (replace the first record of the same
// category).
type RecordInput struct {
	Category string
	Start    time.Time
	End      time.Time
	Note     string
}

type RotateInput struct {
	// WeekEndOnly restricts the clear to the last day of the reporting week,
	// reproducing the original "wipe on Sunday" behavior. A plain rotate
	// clears unconditionally.
	WeekEndOnly bool
}

type RotateOutput struct {
	Cleared bool
	Removed int
}

type HistoryInput struct {
	From time.Time
	To   time.Time
}
