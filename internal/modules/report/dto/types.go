package dto

import "time"

type ReportInput struct {
	// Date anchors the reporting window. Zero means "today".
	Date time.Time
}

// ReportOutput is a render-ready report: localized titles and axes, one
// label per bucket, per-category bucket series, and per-category totals and
// shares. All category-keyed maps use localized labels.
type ReportOutput struct {
	Title string
	// Axis labels the hours dimension, DayAxis the bucket dimension.
	Axis    string
	DayAxis string
	From    time.Time
	To      time.Time
	Labels  []string
	// Series holds one row of bucket hours per category; Hours is the
	// per-bucket sum across every category.
	Series map[string][]float64
	Hours  []float64
	Totals map[string]float64
	Total  float64
	// Shares maps category labels to percentages of Total. Empty when the
	// window holds no time at all.
	Shares map[string]float64
}
