package in

import (
	"context"

	"timetrack/internal/modules/exporter/dto"
)

type Usecase interface {
	List(ctx context.Context) ([]dto.ExporterInfo, error)
	Doctor(ctx context.Context) ([]dto.DoctorResult, error)
	ListFormats(ctx context.Context, exporterName string) ([]dto.FormatInfo, error)
	Export(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error)
}
