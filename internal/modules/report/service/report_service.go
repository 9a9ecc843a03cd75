package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	activitydomain "timetrack/internal/modules/activity/domain"
	activityin "timetrack/internal/modules/activity/port/in"
	"timetrack/internal/modules/report/domain"
	"timetrack/internal/modules/report/dto"
	"timetrack/internal/platform/clock"
)

type ReportService struct {
	clock     clock.Clock
	activity  activityin.Usecase
	language  activitydomain.Language
	weekStart time.Weekday
}

func NewReportService(clk clock.Clock, activity activityin.Usecase, language activitydomain.Language, weekStart time.Weekday) *ReportService {
	return &ReportService{clock: clk, activity: activity, language: language, weekStart: weekStart}
}

func (s *ReportService) Week(ctx context.Context, input dto.ReportInput) (dto.ReportOutput, error) {
	entries, err := s.entries(ctx)
	if err != nil {
		return dto.ReportOutput{}, err
	}
	from, to := domain.CurrentWeek(s.anchor(input), s.weekStart)
	selected := domain.Select(entries, from, to)
	series := domain.Aggregate(selected, domain.WeekdayBucketCount, domain.WeekdayIndex)
	totals := domain.Totals(series)

	labels := s.language.WeekdayLabels()
	return dto.ReportOutput{
		Title:   s.language.WeeklyTitle(),
		Axis:    s.language.HoursAxis(),
		DayAxis: s.language.WeekdayAxis(),
		From:    from,
		To:      to,
		Labels:  labels[:],
		Series:  s.localizeSeries(series),
		Hours:   domain.Combined(series, domain.WeekdayBucketCount),
		Totals:  s.localizeValues(totals),
		Total:   domain.GrandTotal(totals),
		Shares:  s.localizeValues(domain.Percentages(totals)),
	}, nil
}

func (s *ReportService) Month(ctx context.Context, input dto.ReportInput) (dto.ReportOutput, error) {
	entries, err := s.entries(ctx)
	if err != nil {
		return dto.ReportOutput{}, err
	}
	from, to := domain.CurrentMonth(s.anchor(input))
	selected := domain.Select(entries, from, to)
	series := domain.Aggregate(selected, domain.MonthDayBucketCount, domain.MonthDayIndex)

	// Trim every row to the month's actual length.
	days := to.Day()
	for category, row := range series {
		series[category] = row[:days]
	}
	totals := domain.Totals(series)

	labels := make([]string, days)
	for i := range labels {
		labels[i] = strconv.Itoa(i + 1)
	}
	return dto.ReportOutput{
		Title:   s.language.MonthlyTitle(),
		Axis:    s.language.HoursAxis(),
		DayAxis: s.language.MonthDayAxis(),
		From:    from,
		To:      to,
		Labels:  labels,
		Series:  s.localizeSeries(series),
		Hours:   domain.Combined(series, days),
		Totals:  s.localizeValues(totals),
		Total:   domain.GrandTotal(totals),
		Shares:  s.localizeValues(domain.Percentages(totals)),
	}, nil
}

func (s *ReportService) anchor(input dto.ReportInput) time.Time {
	if input.Date.IsZero() {
		return s.clock.Now()
	}
	return input.Date
}

func (s *ReportService) entries(ctx context.Context) ([]domain.Entry, error) {
	if s.activity == nil {
		return nil, fmt.Errorf("activity usecase is not configured")
	}
	records, err := s.activity.List(ctx)
	if err != nil {
		return nil, err
	}
	entries := make([]domain.Entry, 0, len(records))
	for _, record := range records {
		entries = append(entries, domain.Entry{
			Category: record.Category,
			Start:    record.Start,
			Hours:    record.Hours,
		})
	}
	return entries, nil
}

func (s *ReportService) localizeSeries(series map[string][]float64) map[string][]float64 {
	localized := make(map[string][]float64, len(series))
	for category, row := range series {
		localized[s.language.CategoryLabel(activitydomain.Category(category))] = row
	}
	return localized
}

func (s *ReportService) localizeValues(values map[string]float64) map[string]float64 {
	localized := make(map[string]float64, len(values))
	for category, value := range values {
		localized[s.language.CategoryLabel(activitydomain.Category(category))] = value
	}
	return localized
}
