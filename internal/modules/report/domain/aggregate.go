package domain

import "time"

// Bucket counts for the two report windows. Months shorter than 31 days
// leave their trailing buckets at zero.
const (
	WeekdayBucketCount  = 7
	MonthDayBucketCount = 31
)

// WeekdayIndex maps a start time to its Monday-origin weekday bucket,
// matching the stored weekday labels.
func WeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// MonthDayIndex maps a start time to its day-of-month bucket.
func MonthDayIndex(t time.Time) int {
	return t.Day() - 1
}

// Aggregate sums entry hours into one bucket row per category. A category
// appears only once an entry contributes to it.
func Aggregate(entries []Entry, buckets int, index func(time.Time) int) map[string][]float64 {
	series := map[string][]float64{}
	for _, entry := range entries {
		row, ok := series[entry.Category]
		if !ok {
			row = make([]float64, buckets)
			series[entry.Category] = row
		}
		row[index(entry.Start)] += entry.Hours
	}
	return series
}

// Combined collapses a per-category series into one row of bucket sums.
func Combined(series map[string][]float64, buckets int) []float64 {
	combined := make([]float64, buckets)
	for _, row := range series {
		for i, hours := range row {
			combined[i] += hours
		}
	}
	return combined
}

// Totals sums each category's row.
func Totals(series map[string][]float64) map[string]float64 {
	totals := make(map[string]float64, len(series))
	for category, row := range series {
		sum := 0.0
		for _, hours := range row {
			sum += hours
		}
		totals[category] = sum
	}
	return totals
}

// GrandTotal sums the per-category totals.
func GrandTotal(totals map[string]float64) float64 {
	total := 0.0
	for _, hours := range totals {
		total += hours
	}
	return total
}

// TotalHours sums the hours of every entry.
func TotalHours(entries []Entry) float64 {
	total := 0.0
	for _, entry := range entries {
		total += entry.Hours
	}
	return total
}

// Percentages returns each category's share of the grand total. A window
// holding no time yields zero shares rather than dividing by zero.
func Percentages(totals map[string]float64) map[string]float64 {
	grand := GrandTotal(totals)
	shares := make(map[string]float64, len(totals))
	for category, hours := range totals {
		if grand == 0 {
			shares[category] = 0
			continue
		}
		shares[category] = hours / grand * 100
	}
	return shares
}
