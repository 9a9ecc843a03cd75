package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"timetrack/internal/modules/activity/domain"
	activityout "timetrack/internal/modules/activity/port/out"
)

// FileRecordStore keeps the activity collection in a single JSON document,
// {"activities": [...]}. The file is the canonical store; every write goes
// through a temp file plus rename so readers never see a half-written
// document.
type FileRecordStore struct {
	path string
}

func NewFileRecordStore(path string) activityout.RecordStore {
	return &FileRecordStore{path: path}
}

type storeDocument struct {
	Activities []recordRow `json:"activities"`
}

// recordRow is the wire shape. The category key is stored under "name";
// the format predates this implementation and existing files must keep
// loading.
type recordRow struct {
	Category string `json:"name"`
	Start    string `json:"start,omitempty"`
	End      string `json:"end,omitempty"`
	Duration string `json:"duration,omitempty"`
	Note     string `json:"note,omitempty"`
}

const wireTimeLayout = "2006-01-02T15:04:05Z07:00"

// timeLayouts lists the accepted timestamp shapes, newest first. Older files
// carried naive local timestamps without a zone offset.
var timeLayouts = []string{
	wireTimeLayout,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

func (s *FileRecordStore) Load(_ context.Context) ([]domain.Record, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		// Missing or unreadable store means an empty collection. The next
		// write recreates the file.
		return nil, nil
	}
	doc := storeDocument{}
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, nil
	}
	records := make([]domain.Record, 0, len(doc.Activities))
	for _, row := range doc.Activities {
		records = append(records, rowToRecord(row))
	}
	return records, nil
}

func (s *FileRecordStore) Replace(_ context.Context, records []domain.Record) error {
	doc := storeDocument{Activities: make([]recordRow, 0, len(records))}
	for _, record := range records {
		doc.Activities = append(doc.Activities, recordToRow(record))
	}
	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal store: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return fmt.Errorf("write store: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace store: %w", err)
	}
	return nil
}

func (s *FileRecordStore) Append(ctx context.Context, record domain.Record) error {
	records, err := s.Load(ctx)
	if err != nil {
		return err
	}
	return s.Replace(ctx, append(records, record))
}

func (s *FileRecordStore) UpsertByCategory(ctx context.Context, record domain.Record) error {
	records, err := s.Load(ctx)
	if err != nil {
		return err
	}
	for i := range records {
		if records[i].Category == record.Category {
			records[i] = record
			return s.Replace(ctx, records)
		}
	}
	return s.Replace(ctx, append(records, record))
}

func (s *FileRecordStore) Reset(ctx context.Context) error {
	return s.Replace(ctx, nil)
}

func rowToRecord(row recordRow) domain.Record {
	return domain.Record{
		Category: domain.Category(row.Category),
		Start:    parseWireTime(row.Start),
		End:      parseWireTime(row.End),
		Duration: row.Duration,
		Note:     row.Note,
	}
}

func recordToRow(record domain.Record) recordRow {
	row := recordRow{
		Category: string(record.Category),
		Duration: record.Duration,
		Note:     record.Note,
	}
	if record.Start != nil {
		row.Start = record.Start.Format(wireTimeLayout)
	}
	if record.End != nil {
		row.End = record.End.Format(wireTimeLayout)
	}
	return row
}

// parseWireTime returns nil for empty or unparsable timestamps; such records
// stay in the store but drop out of every report.
func parseWireTime(value string) *time.Time {
	if value == "" {
		return nil
	}
	for _, layout := range timeLayouts {
		if parsed, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return &parsed
		}
	}
	return nil
}
