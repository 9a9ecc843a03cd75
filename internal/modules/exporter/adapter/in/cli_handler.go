package in

import (
	"context"
	"time"

	exporterdto "timetrack/internal/modules/exporter/dto"
	exporterin "timetrack/internal/modules/exporter/port/in"
)

type CLIHandler struct {
	usecase exporterin.Usecase
}

func NewCLIHandler(usecase exporterin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]exporterdto.ExporterInfo, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Doctor(ctx context.Context) ([]exporterdto.DoctorResult, error) {
	return h.usecase.Doctor(ctx)
}

func (h CLIHandler) ListFormats(ctx context.Context, exporterName string) ([]exporterdto.FormatInfo, error) {
	return h.usecase.ListFormats(ctx, exporterName)
}

func (h CLIHandler) Export(ctx context.Context, exporterName, formatID, reportKind string, date time.Time, cwd string) (exporterdto.ExportOutput, error) {
	return h.usecase.Export(ctx, exporterdto.ExportInput{
		ExporterName: exporterName,
		FormatID:     formatID,
		ReportKind:   reportKind,
		Date:         date,
		Cwd:          cwd,
	})
}
