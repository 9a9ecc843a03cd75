package in

import (
	"context"

	reportdto "timetrack/internal/modules/report/dto"
	reportin "timetrack/internal/modules/report/port/in"
)

// TUIHandler exposes reports to the terminal UI, which passes the input DTO
// through unchanged.
type TUIHandler struct {
	usecase reportin.Usecase
}

func NewTUIHandler(usecase reportin.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) Week(ctx context.Context, input reportdto.ReportInput) (reportdto.ReportOutput, error) {
	return h.usecase.Week(ctx, input)
}

func (h TUIHandler) Month(ctx context.Context, input reportdto.ReportInput) (reportdto.ReportOutput, error) {
	return h.usecase.Month(ctx, input)
}
