package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"timetrack/internal/modules/activity/domain"
	activityout "timetrack/internal/modules/activity/port/out"

	_ "modernc.org/sqlite"
)

// SQLiteRecordIndex is a derived projection of the JSON store, kept for
// date-range queries. It is disposable: reindex rebuilds it from scratch.
type SQLiteRecordIndex struct {
	db *sql.DB
}

func NewSQLiteRecordIndex(dbPath string) (activityout.RecordIndex, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	index := &SQLiteRecordIndex{db: db}
	if err := index.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return index, nil
}

func (s *SQLiteRecordIndex) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS activity_records (
  category TEXT NOT NULL,
  started_at TEXT NOT NULL,
  ended_at TEXT NOT NULL,
  duration TEXT NOT NULL,
  note TEXT,
  PRIMARY KEY (category, started_at)
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create activity_records table: %w", err)
	}
	return nil
}

func (s *SQLiteRecordIndex) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM activity_records`); err != nil {
		return fmt.Errorf("reset activity_records: %w", err)
	}
	return nil
}

func (s *SQLiteRecordIndex) Upsert(ctx context.Context, record domain.Record) error {
	if !record.Completed() {
		return fmt.Errorf("cannot index incomplete record")
	}
	const stmt = `
INSERT INTO activity_records (category, started_at, ended_at, duration, note)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(category, started_at) DO UPDATE SET
  ended_at=excluded.ended_at,
  duration=excluded.duration,
  note=excluded.note;
`
	_, err := s.db.ExecContext(ctx, stmt,
		string(record.Category),
		record.Start.UTC().Format(indexTimeLayout),
		record.End.UTC().Format(indexTimeLayout),
		record.Duration,
		record.Note,
	)
	if err != nil {
		return fmt.Errorf("upsert record: %w", err)
	}
	return nil
}

func (s *SQLiteRecordIndex) ListBetween(ctx context.Context, from, to time.Time) ([]domain.Record, error) {
	const query = `
SELECT category, started_at, ended_at, duration, note
FROM activity_records
WHERE started_at >= ? AND started_at < ?
ORDER BY started_at;
`
	rows, err := s.db.QueryContext(ctx, query,
		from.UTC().Format(indexTimeLayout),
		to.UTC().Format(indexTimeLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	records := []domain.Record{}
	for rows.Next() {
		var category, startedAt, endedAt, duration string
		var note sql.NullString
		if err := rows.Scan(&category, &startedAt, &endedAt, &duration, &note); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		start, err := time.Parse(indexTimeLayout, startedAt)
		if err != nil {
			return nil, fmt.Errorf("decode started_at: %w", err)
		}
		end, err := time.Parse(indexTimeLayout, endedAt)
		if err != nil {
			return nil, fmt.Errorf("decode ended_at: %w", err)
		}
		localStart := start.Local()
		localEnd := end.Local()
		records = append(records, domain.Record{
			Category: domain.Category(category),
			Start:    &localStart,
			End:      &localEnd,
			Duration: duration,
			Note:     note.String,
		})
	}
	return records, rows.Err()
}

// indexTimeLayout stores UTC timestamps so lexicographic comparison in SQL
// matches chronological order.
const indexTimeLayout = "2006-01-02T15:04:05Z07:00"
