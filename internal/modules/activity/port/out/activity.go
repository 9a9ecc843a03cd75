package out

import (
	"context"
	"time"

	"timetrack/internal/modules/activity/domain"
)

// RecordStore owns the durable activity collection. Load is self-healing: a
// missing, unreadable, or corrupt backing file yields an empty collection,
// never an error. Replace must be atomic from a reader's perspective.
type RecordStore interface {
	Load(ctx context.Context) ([]domain.Record, error)
	Replace(ctx context.Context, records []domain.Record) error
	Append(ctx context.Context, record domain.Record) error
	UpsertByCategory(ctx context.Context, record domain.Record) error
	Reset(ctx context.Context) error
}

// RecordIndex is the derived SQLite projection used for range queries. The
// JSON store stays canonical; the index can always be rebuilt from it.
// ListBetween returns records whose start falls in the half-open window
// [from, to).
type RecordIndex interface {
	Reset(ctx context.Context) error
	Upsert(ctx context.Context, record domain.Record) error
	ListBetween(ctx context.Context, from, to time.Time) ([]domain.Record, error)
}
