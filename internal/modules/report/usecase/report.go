package usecase

import (
	"context"

	"timetrack/internal/modules/report/dto"
	reportin "timetrack/internal/modules/report/port/in"
	"timetrack/internal/modules/report/service"
)

type Interactor struct {
	svc *service.ReportService
}

func NewInteractor(svc *service.ReportService) reportin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Week(ctx context.Context, input dto.ReportInput) (dto.ReportOutput, error) {
	return i.svc.Week(ctx, input)
}

func (i *Interactor) Month(ctx context.Context, input dto.ReportInput) (dto.ReportOutput, error) {
	return i.svc.Month(ctx, input)
}
