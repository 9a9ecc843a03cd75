package domain

import "time"

// Entry is one completed interval as the aggregator sees it: a category, the
// civil day it started on, and its length in hours.
type Entry struct {
	Category string
	Start    time.Time
	Hours    float64
}

// Select keeps the entries whose start falls on a civil day inside
// [from, to], both endpoints inclusive. Comparison is by day, not instant, so
// an entry at 23:59 on the last day still counts.
func Select(entries []Entry, from, to time.Time) []Entry {
	fromDay := dayOf(from)
	toDay := dayOf(to)
	selected := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		day := dayOf(entry.Start)
		if day.Before(fromDay) || day.After(toDay) {
			continue
		}
		selected = append(selected, entry)
	}
	return selected
}

// CurrentWeek returns the week window containing today. The week begins on
// weekStart and spans seven days.
func CurrentWeek(today time.Time, weekStart time.Weekday) (time.Time, time.Time) {
	day := dayOf(today)
	offset := (int(day.Weekday()) - int(weekStart) + 7) % 7
	from := day.AddDate(0, 0, -offset)
	return from, from.AddDate(0, 0, 6)
}

// CurrentMonth returns the calendar month window containing today: the first
// of the month through its actual last day, February included.
func CurrentMonth(today time.Time) (time.Time, time.Time) {
	day := dayOf(today)
	from := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
	to := from.AddDate(0, 1, 0).AddDate(0, 0, -1)
	return from, to
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
