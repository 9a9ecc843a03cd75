package in

import (
	"context"
	"time"

	reportdto "timetrack/internal/modules/report/dto"
	reportin "timetrack/internal/modules/report/port/in"
)

type CLIHandler struct {
	usecase reportin.Usecase
}

func NewCLIHandler(usecase reportin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Week(ctx context.Context, date time.Time) (reportdto.ReportOutput, error) {
	return h.usecase.Week(ctx, reportdto.ReportInput{Date: date})
}

func (h CLIHandler) Month(ctx context.Context, date time.Time) (reportdto.ReportOutput, error) {
	return h.usecase.Month(ctx, reportdto.ReportInput{Date: date})
}
