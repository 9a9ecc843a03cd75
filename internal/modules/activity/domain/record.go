package domain

import (
	"fmt"
	"time"
)

const SchemaVersion = 1

// Record is one persisted activity interval. Start and End are pointers
// because the store format tolerates rows that never completed (or whose
// timestamps failed to parse); such rows are excluded from every report but
// survive round trips untouched.
type Record struct {
	Category Category
	Start    *time.Time
	End      *time.Time
	Duration string
	Note     string
}

// NewRecord builds a completed record from a finished session.
func NewRecord(category Category, start, end time.Time, note string) Record {
	return Record{
		Category: category,
		Start:    &start,
		End:      &end,
		Duration: end.Sub(start).Truncate(time.Second).String(),
		Note:     note,
	}
}

// Completed reports whether the record carries a usable interval: both
// endpoints present and End not before Start. Anything else is data-quality
// noise and is skipped, never raised.
func (r Record) Completed() bool {
	return r.Start != nil && r.End != nil && !r.End.Before(*r.Start)
}

// Hours returns the interval length in hours. Zero for incomplete records.
func (r Record) Hours() float64 {
	if !r.Completed() {
		return 0
	}
	return r.End.Sub(*r.Start).Hours()
}

func (r Record) Validate() error {
	if err := r.Category.Validate(); err != nil {
		return err
	}
	if r.End != nil {
		if r.Start == nil {
			return fmt.Errorf("record has end without start")
		}
		if r.End.Before(*r.Start) {
			return fmt.Errorf("record ends before it starts")
		}
	}
	return nil
}
