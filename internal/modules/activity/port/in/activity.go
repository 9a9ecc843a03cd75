package in

import (
	"context"

	"timetrack/internal/modules/activity/dto"
)

type Usecase interface {
	// List returns every completed record in insertion order. Incomplete or
	// malformed rows are filtered out here, once, for all consumers.
	List(ctx context.Context) ([]dto.RecordOutput, error)
	// Append adds one completed record to the durable store.
	Append(ctx context.Context, input dto.RecordInput) error
	// Amend replaces the first stored record of the same category, or appends
	// when none exists. The explicit correction path; session stops never
	// take it.
	Amend(ctx context.Context, input dto.RecordInput) error
	// Rotate clears the durable store for a new reporting period.
	Rotate(ctx context.Context, input dto.RotateInput) (dto.RotateOutput, error)
	// Reindex rebuilds the SQLite record index from the JSON store.
	Reindex(ctx context.Context) error
	// History lists indexed records whose start falls in [From, To].
	History(ctx context.Context, input dto.HistoryInput) ([]dto.RecordOutput, error)
}
