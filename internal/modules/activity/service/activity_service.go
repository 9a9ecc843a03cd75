package service

import (
	"context"
	"fmt"
	"time"

	"timetrack/internal/modules/activity/domain"
	"timetrack/internal/modules/activity/dto"
	activityout "timetrack/internal/modules/activity/port/out"
	"timetrack/internal/platform/clock"
	apperrors "timetrack/internal/platform/errors"
)

type ActivityService struct {
	clock     clock.Clock
	store     activityout.RecordStore
	index     activityout.RecordIndex
	weekStart time.Weekday
}

func NewActivityService(clk clock.Clock, store activityout.RecordStore, index activityout.RecordIndex, weekStart time.Weekday) *ActivityService {
	return &ActivityService{clock: clk, store: store, index: index, weekStart: weekStart}
}

func (s *ActivityService) List(ctx context.Context) ([]dto.RecordOutput, error) {
	records, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RecordOutput, 0, len(records))
	for _, record := range records {
		if !record.Completed() || !record.Category.Known() {
			continue
		}
		out = append(out, toOutput(record))
	}
	return out, nil
}

func (s *ActivityService) Append(ctx context.Context, input dto.RecordInput) error {
	record, err := fromInput(input)
	if err != nil {
		return err
	}
	if err := s.store.Append(ctx, record); err != nil {
		return fmt.Errorf("append record: %w", err)
	}
	if s.index != nil {
		if err := s.index.Upsert(ctx, record); err != nil {
			return fmt.Errorf("index record: %w", err)
		}
	}
	return nil
}

func (s *ActivityService) Amend(ctx context.Context, input dto.RecordInput) error {
	record, err := fromInput(input)
	if err != nil {
		return err
	}
	if err := s.store.UpsertByCategory(ctx, record); err != nil {
		return fmt.Errorf("amend record: %w", err)
	}
	// The replaced row may still sit in the index under its old start key,
	// so rebuild instead of upserting.
	return s.Reindex(ctx)
}

func (s *ActivityService) Rotate(ctx context.Context, input dto.RotateInput) (dto.RotateOutput, error) {
	if input.WeekEndOnly && !s.isWeekEnd(s.clock.Now()) {
		return dto.RotateOutput{}, nil
	}
	records, err := s.store.Load(ctx)
	if err != nil {
		return dto.RotateOutput{}, err
	}
	if err := s.store.Reset(ctx); err != nil {
		return dto.RotateOutput{}, fmt.Errorf("rotate store: %w", err)
	}
	if s.index != nil {
		if err := s.index.Reset(ctx); err != nil {
			return dto.RotateOutput{}, fmt.Errorf("rotate index: %w", err)
		}
	}
	return dto.RotateOutput{Cleared: true, Removed: len(records)}, nil
}

func (s *ActivityService) Reindex(ctx context.Context) error {
	if s.index == nil {
		return nil
	}
	records, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	if err := s.index.Reset(ctx); err != nil {
		return fmt.Errorf("reset index: %w", err)
	}
	for _, record := range records {
		if !record.Completed() || !record.Category.Known() {
			continue
		}
		if err := s.index.Upsert(ctx, record); err != nil {
			return fmt.Errorf("index record: %w", err)
		}
	}
	return nil
}

func (s *ActivityService) History(ctx context.Context, input dto.HistoryInput) ([]dto.RecordOutput, error) {
	if s.index == nil {
		return nil, fmt.Errorf("record index is not configured")
	}
	if input.To.Before(input.From) {
		return nil, fmt.Errorf("%w: history range ends before it starts", apperrors.ErrInvalidInput)
	}
	// Both endpoints name civil days and the range is inclusive, so query
	// the half-open window from the start of From to the start of the day
	// after To.
	records, err := s.index.ListBetween(ctx, dayStart(input.From), dayStart(input.To).AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	out := make([]dto.RecordOutput, 0, len(records))
	for _, record := range records {
		out = append(out, toOutput(record))
	}
	return out, nil
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// isWeekEnd reports whether day is the last day of the reporting week, i.e.
// the day before the configured week origin.
func (s *ActivityService) isWeekEnd(day time.Time) bool {
	last := (int(s.weekStart) + 6) % 7
	return int(day.Weekday()) == last
}

func fromInput(input dto.RecordInput) (domain.Record, error) {
	category := domain.Category(input.Category)
	if !category.Known() {
		return domain.Record{}, fmt.Errorf("%w: %s", apperrors.ErrUnknownCategory, input.Category)
	}
	record := domain.NewRecord(category, input.Start, input.End, input.Note)
	if err := record.Validate(); err != nil {
		return domain.Record{}, fmt.Errorf("%w: %s", apperrors.ErrInvalidInput, err)
	}
	return record, nil
}

func toOutput(record domain.Record) dto.RecordOutput {
	return dto.RecordOutput{
		Category: string(record.Category),
		Start:    *record.Start,
		End:      *record.End,
		Hours:    record.Hours(),
		Duration: record.Duration,
		Note:     record.Note,
	}
}
