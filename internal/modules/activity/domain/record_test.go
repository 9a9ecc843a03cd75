package domain_test

import (
	"testing"
	"time"

	"timetrack/internal/modules/activity/domain"
)

func TestCategoryValidateAcceptsTaxonomyOnly(t *testing.T) {
	t.Parallel()
	for _, category := range domain.AllCategories() {
		if err := category.Validate(); err != nil {
			t.Fatalf("taxonomy category %q rejected: %v", category, err)
		}
	}
	for _, raw := range []string{"", "work", "Study", "study "} {
		if domain.Category(raw).Known() {
			t.Fatalf("category %q should not be known", raw)
		}
	}
}

func TestNewRecordComputesWholeSecondDuration(t *testing.T) {
	t.Parallel()
	start := time.Date(2026, 3, 4, 9, 0, 0, 0, time.Local)
	end := start.Add(45*time.Minute + 30*time.Second + 700*time.Millisecond)

	record := domain.NewRecord(domain.CategoryStudy, start, end, "algebra")

	if !record.Completed() {
		t.Fatal("record from a finished session must be completed")
	}
	if record.Duration != "45m30s" {
		t.Fatalf("duration = %q, want 45m30s", record.Duration)
	}
	if got, want := record.Hours(), end.Sub(start).Hours(); got != want {
		t.Fatalf("hours = %v, want %v", got, want)
	}
}

func TestRecordCompletedRequiresOrderedEndpoints(t *testing.T) {
	t.Parallel()
	at := time.Date(2026, 3, 4, 9, 0, 0, 0, time.Local)
	before := at.Add(-time.Hour)

	cases := []struct {
		name   string
		record domain.Record
		want   bool
	}{
		{"both endpoints", domain.Record{Category: domain.CategoryRelax, Start: &before, End: &at}, true},
		{"zero-length interval", domain.Record{Category: domain.CategoryRelax, Start: &at, End: &at}, true},
		{"missing end", domain.Record{Category: domain.CategoryRelax, Start: &at}, false},
		{"missing start", domain.Record{Category: domain.CategoryRelax, End: &at}, false},
		{"inverted interval", domain.Record{Category: domain.CategoryRelax, Start: &at, End: &before}, false},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := tc.record.Completed(); got != tc.want {
				t.Fatalf("Completed() = %t, want %t", got, tc.want)
			}
			if !tc.record.Completed() && tc.record.Hours() != 0 {
				t.Fatalf("incomplete record reported %v hours", tc.record.Hours())
			}
		})
	}
}

func TestLanguageTablesCoverTaxonomy(t *testing.T) {
	t.Parallel()
	for _, language := range []domain.Language{domain.LanguageRU, domain.LanguageEN} {
		if err := language.Validate(); err != nil {
			t.Fatalf("language %q rejected: %v", language, err)
		}
		for _, category := range domain.AllCategories() {
			if language.CategoryLabel(category) == "" {
				t.Fatalf("language %q has no label for %q", language, category)
			}
		}
		labels := language.WeekdayLabels()
		for i, label := range labels {
			if label == "" {
				t.Fatalf("language %q has empty weekday label at %d", language, i)
			}
		}
		if language.HoursAxis() == "" || language.WeekdayAxis() == "" || language.MonthDayAxis() == "" {
			t.Fatalf("language %q is missing an axis label", language)
		}
	}
	if got := domain.LanguageRU.WeekdayLabels()[0]; got != "ПН" {
		t.Fatalf("russian week starts with %q, want ПН", got)
	}
	if got := domain.LanguageEN.WeekdayLabels()[6]; got != "Sun" {
		t.Fatalf("english week ends with %q, want Sun", got)
	}
	if got := domain.LanguageRU.WeekdayAxis(); got != "День недели" {
		t.Fatalf("russian weekday axis is %q, want День недели", got)
	}
	if got := domain.LanguageEN.MonthDayAxis(); got != "Day of the Month" {
		t.Fatalf("english month-day axis is %q, want Day of the Month", got)
	}
}
