package usecase

import (
	"context"

	"timetrack/internal/modules/exporter/dto"
	exporterin "timetrack/internal/modules/exporter/port/in"
	"timetrack/internal/modules/exporter/service"
)

type Interactor struct {
	svc *service.ExporterService
}

func NewInteractor(svc *service.ExporterService) exporterin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) List(ctx context.Context) ([]dto.ExporterInfo, error) {
	return i.svc.List(ctx)
}

func (i *Interactor) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	return i.svc.Doctor(ctx)
}

func (i *Interactor) ListFormats(ctx context.Context, exporterName string) ([]dto.FormatInfo, error) {
	return i.svc.ListFormats(ctx, exporterName)
}

func (i *Interactor) Export(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error) {
	return i.svc.Export(ctx, input)
}
