package usecase_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	activityout "timetrack/internal/modules/activity/adapter/out"
	activitydto "timetrack/internal/modules/activity/dto"
	activityin "timetrack/internal/modules/activity/port/in"
	"timetrack/internal/modules/activity/service"
	"timetrack/internal/modules/activity/usecase"
	apperrors "timetrack/internal/platform/errors"
)

type fakeClock struct {
	values []time.Time
	idx    int
}

func (f *fakeClock) Now() time.Time {
	if f.idx >= len(f.values) {
		return f.values[len(f.values)-1]
	}
	v := f.values[f.idx]
	f.idx++
	return v
}

func newInteractor(t *testing.T, clk *fakeClock) (activityin.Usecase, string) {
	t.Helper()
	dir := t.TempDir()
	storePath := filepath.Join(dir, "activities.json")
	index, err := activityout.NewSQLiteRecordIndex(filepath.Join(dir, "index.db"))
	if err != nil {
		t.Fatalf("open record index: %v", err)
	}
	svc := service.NewActivityService(clk, activityout.NewFileRecordStore(storePath), index, time.Monday)
	return usecase.NewInteractor(svc), storePath
}

func TestAppendThenListRoundTripsRecords(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{values: []time.Time{time.Date(2026, 3, 2, 10, 0, 0, 0, time.Local)}}
	uc, _ := newInteractor(t, clk)

	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.Local)
	if err := uc.Append(context.Background(), activitydto.RecordInput{
		Category: "study",
		Start:    start,
		End:      start.Add(90 * time.Minute),
		Note:     "algorithms",
	}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := uc.Append(context.Background(), activitydto.RecordInput{
		Category: "relax",
		Start:    start.Add(2 * time.Hour),
		End:      start.Add(3 * time.Hour),
	}); err != nil {
		t.Fatalf("append second: %v", err)
	}

	records, err := uc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Category != "study" || records[1].Category != "relax" {
		t.Fatalf("insertion order not preserved: %+v", records)
	}
	if records[0].Hours != 1.5 {
		t.Fatalf("expected 1.5 hours, got %v", records[0].Hours)
	}
	if records[0].Duration != "1h30m0s" {
		t.Fatalf("expected duration 1h30m0s, got %s", records[0].Duration)
	}
	if records[0].Note != "algorithms" {
		t.Fatalf("note lost: %+v", records[0])
	}
}

func TestAppendRejectsUnknownCategoryAndInvertedInterval(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{values: []time.Time{time.Date(2026, 3, 2, 10, 0, 0, 0, time.Local)}}
	uc, _ := newInteractor(t, clk)

	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.Local)
	err := uc.Append(context.Background(), activitydto.RecordInput{Category: "gaming", Start: start, End: start.Add(time.Hour)})
	if !errors.Is(err, apperrors.ErrUnknownCategory) {
		t.Fatalf("expected unknown category error, got %v", err)
	}
	err = uc.Append(context.Background(), activitydto.RecordInput{Category: "study", Start: start, End: start.Add(-time.Hour)})
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input error, got %v", err)
	}
	records, err := uc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("rejected inputs must not be stored, got %d records", len(records))
	}
}

func TestListSkipsMalformedRowsWithoutError(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{values: []time.Time{time.Date(2026, 3, 2, 10, 0, 0, 0, time.Local)}}
	uc, storePath := newInteractor(t, clk)

	doc := `{"activities": [
  {"name": "study", "start": "not-a-timestamp", "end": "2026-03-02T10:00:00+03:00"},
  {"name": "relax", "start": "2026-03-02T11:00:00+03:00"},
  {"name": "homework", "start": "2026-03-02T12:00:00+03:00", "end": "2026-03-02T13:00:00+03:00", "duration": "1h0m0s"}
]}`
	if err := os.WriteFile(storePath, []byte(doc), 0o644); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	records, err := uc.List(context.Background())
	if err != nil {
		t.Fatalf("list must not fail on malformed rows: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected only the well-formed record, got %d", len(records))
	}
	if records[0].Category != "homework" || records[0].Hours != 1 {
		t.Fatalf("unexpected surviving record: %+v", records[0])
	}
}

func TestListHealsCorruptAndMissingStore(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{values: []time.Time{time.Date(2026, 3, 2, 10, 0, 0, 0, time.Local)}}
	uc, storePath := newInteractor(t, clk)

	records, err := uc.List(context.Background())
	if err != nil || len(records) != 0 {
		t.Fatalf("missing store must read as empty, got %d records, err %v", len(records), err)
	}

	if err := os.WriteFile(storePath, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("corrupt store: %v", err)
	}
	records, err = uc.List(context.Background())
	if err != nil || len(records) != 0 {
		t.Fatalf("corrupt store must read as empty, got %d records, err %v", len(records), err)
	}

	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.Local)
	if err := uc.Append(context.Background(), activitydto.RecordInput{Category: "other", Start: start, End: start.Add(time.Hour)}); err != nil {
		t.Fatalf("append after corruption: %v", err)
	}
	records, err = uc.List(context.Background())
	if err != nil || len(records) != 1 {
		t.Fatalf("store must recover on next write, got %d records, err %v", len(records), err)
	}
}

func TestAmendReplacesFirstRecordOfCategory(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{values: []time.Time{time.Date(2026, 3, 2, 10, 0, 0, 0, time.Local)}}
	uc, _ := newInteractor(t, clk)

	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.Local)
	if err := uc.Append(context.Background(), activitydto.RecordInput{Category: "study", Start: start, End: start.Add(time.Hour)}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := uc.Amend(context.Background(), activitydto.RecordInput{
		Category: "study",
		Start:    start,
		End:      start.Add(2 * time.Hour),
		Note:     "corrected",
	}); err != nil {
		t.Fatalf("amend existing: %v", err)
	}
	if err := uc.Amend(context.Background(), activitydto.RecordInput{
		Category: "relax",
		Start:    start.Add(3 * time.Hour),
		End:      start.Add(4 * time.Hour),
	}); err != nil {
		t.Fatalf("amend absent category must append: %v", err)
	}

	records, err := uc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records after amends, got %d", len(records))
	}
	if records[0].Hours != 2 || records[0].Note != "corrected" {
		t.Fatalf("amend did not replace in place: %+v", records[0])
	}
	if records[1].Category != "relax" {
		t.Fatalf("amend of absent category must append: %+v", records[1])
	}
}

func TestRotateClearsStoreAndReportsRemovedCount(t *testing.T) {
	t.Parallel()
	// A Wednesday: the week-end-only guard must refuse to clear.
	clk := &fakeClock{values: []time.Time{
		time.Date(2026, 3, 4, 10, 0, 0, 0, time.Local),
		time.Date(2026, 3, 8, 10, 0, 0, 0, time.Local),
	}}
	uc, _ := newInteractor(t, clk)

	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.Local)
	for i := 0; i < 3; i++ {
		if err := uc.Append(context.Background(), activitydto.RecordInput{
			Category: "study",
			Start:    start.Add(time.Duration(i) * 3 * time.Hour),
			End:      start.Add(time.Duration(i)*3*time.Hour + time.Hour),
		}); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	out, err := uc.Rotate(context.Background(), activitydto.RotateInput{WeekEndOnly: true})
	if err != nil {
		t.Fatalf("rotate midweek: %v", err)
	}
	if out.Cleared {
		t.Fatalf("week-end-only rotate must be a no-op midweek")
	}

	// Second clock value is a Sunday, the last day of a Monday-origin week.
	out, err = uc.Rotate(context.Background(), activitydto.RotateInput{WeekEndOnly: true})
	if err != nil {
		t.Fatalf("rotate on week end: %v", err)
	}
	if !out.Cleared || out.Removed != 3 {
		t.Fatalf("expected cleared with 3 removed, got %+v", out)
	}

	records, err := uc.List(context.Background())
	if err != nil || len(records) != 0 {
		t.Fatalf("store must be empty after rotate, got %d records, err %v", len(records), err)
	}
}

func TestHistoryListsIndexedRecordsInRange(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{values: []time.Time{time.Date(2026, 3, 2, 10, 0, 0, 0, time.Local)}}
	uc, _ := newInteractor(t, clk)

	inside := time.Date(2026, 3, 3, 9, 0, 0, 0, time.Local)
	outside := time.Date(2026, 4, 1, 9, 0, 0, 0, time.Local)
	if err := uc.Append(context.Background(), activitydto.RecordInput{Category: "study", Start: inside, End: inside.Add(time.Hour)}); err != nil {
		t.Fatalf("append inside: %v", err)
	}
	if err := uc.Append(context.Background(), activitydto.RecordInput{Category: "relax", Start: outside, End: outside.Add(time.Hour)}); err != nil {
		t.Fatalf("append outside: %v", err)
	}

	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local)
	to := time.Date(2026, 3, 31, 23, 59, 59, 0, time.Local)
	records, err := uc.History(context.Background(), activitydto.HistoryInput{From: from, To: to})
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(records) != 1 || records[0].Category != "study" {
		t.Fatalf("expected only the March record, got %+v", records)
	}

	if _, err := uc.History(context.Background(), activitydto.HistoryInput{From: to, To: from}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("inverted range must fail with invalid input, got %v", err)
	}
}

func TestHistoryIncludesWholeLastDayOfRange(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{values: []time.Time{time.Date(2026, 3, 2, 10, 0, 0, 0, time.Local)}}
	uc, _ := newInteractor(t, clk)

	// Starts mid-morning on the range's last day; the endpoints arrive as
	// midnights, the way the CLI parses plain dates.
	lastDay := time.Date(2026, 3, 15, 10, 0, 0, 0, time.Local)
	nextDay := time.Date(2026, 3, 16, 10, 0, 0, 0, time.Local)
	if err := uc.Append(context.Background(), activitydto.RecordInput{Category: "study", Start: lastDay, End: lastDay.Add(time.Hour)}); err != nil {
		t.Fatalf("append last-day record: %v", err)
	}
	if err := uc.Append(context.Background(), activitydto.RecordInput{Category: "relax", Start: nextDay, End: nextDay.Add(time.Hour)}); err != nil {
		t.Fatalf("append next-day record: %v", err)
	}

	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local)
	to := time.Date(2026, 3, 15, 0, 0, 0, 0, time.Local)
	records, err := uc.History(context.Background(), activitydto.HistoryInput{From: from, To: to})
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(records) != 1 || records[0].Category != "study" {
		t.Fatalf("record on the range's last day must be listed, got %+v", records)
	}
}

func TestReindexRebuildsIndexFromStore(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{values: []time.Time{time.Date(2026, 3, 2, 10, 0, 0, 0, time.Local)}}
	uc, storePath := newInteractor(t, clk)

	// Seed the store behind the index's back, then reindex.
	doc := `{"activities": [
  {"name": "study", "start": "2026-03-02T09:00:00+03:00", "end": "2026-03-02T10:00:00+03:00", "duration": "1h0m0s"},
  {"name": "relax", "start": "bogus", "end": "2026-03-02T12:00:00+03:00"}
]}`
	if err := os.WriteFile(storePath, []byte(doc), 0o644); err != nil {
		t.Fatalf("seed store: %v", err)
	}
	if err := uc.Reindex(context.Background()); err != nil {
		t.Fatalf("reindex: %v", err)
	}

	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local)
	to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.Local)
	records, err := uc.History(context.Background(), activitydto.HistoryInput{From: from, To: to})
	if err != nil {
		t.Fatalf("history after reindex: %v", err)
	}
	if len(records) != 1 || records[0].Category != "study" {
		t.Fatalf("expected one indexed record, got %+v", records)
	}
}
