package in

import (
	"context"

	"timetrack/internal/modules/report/dto"
)

type Usecase interface {
	// Week aggregates the week containing the anchor date into weekday
	// buckets.
	Week(ctx context.Context, input dto.ReportInput) (dto.ReportOutput, error)
	// Month aggregates the calendar month containing the anchor date into
	// day-of-month buckets.
	Month(ctx context.Context, input dto.ReportInput) (dto.ReportOutput, error)
}
