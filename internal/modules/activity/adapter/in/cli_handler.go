package in

import (
	"context"
	"time"

	activitydto "timetrack/internal/modules/activity/dto"
	activityin "timetrack/internal/modules/activity/port/in"
)

type CLIHandler struct {
	usecase activityin.Usecase
}

func NewCLIHandler(usecase activityin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]activitydto.RecordOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Amend(ctx context.Context, category string, start, end time.Time, note string) error {
	return h.usecase.Amend(ctx, activitydto.RecordInput{Category: category, Start: start, End: end, Note: note})
}

func (h CLIHandler) Rotate(ctx context.Context, weekEndOnly bool) (activitydto.RotateOutput, error) {
	return h.usecase.Rotate(ctx, activitydto.RotateInput{WeekEndOnly: weekEndOnly})
}

func (h CLIHandler) Reindex(ctx context.Context) error {
	return h.usecase.Reindex(ctx)
}

func (h CLIHandler) History(ctx context.Context, from, to time.Time) ([]activitydto.RecordOutput, error) {
	return h.usecase.History(ctx, activitydto.HistoryInput{From: from, To: to})
}
