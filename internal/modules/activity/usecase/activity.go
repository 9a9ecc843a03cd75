package usecase

import (
	"context"

	"timetrack/internal/modules/activity/dto"
	activityin "timetrack/internal/modules/activity/port/in"
	"timetrack/internal/modules/activity/service"
)

type Interactor struct {
	svc *service.ActivityService
}

func NewInteractor(svc *service.ActivityService) activityin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) List(ctx context.Context) ([]dto.RecordOutput, error) {
	return i.svc.List(ctx)
}

func (i *Interactor) Append(ctx context.Context, input dto.RecordInput) error {
	return i.svc.Append(ctx, input)
}

func (i *Interactor) Amend(ctx context.Context, input dto.RecordInput) error {
	return i.svc.Amend(ctx, input)
}

func (i *Interactor) Rotate(ctx context.Context, input dto.RotateInput) (dto.RotateOutput, error) {
	return i.svc.Rotate(ctx, input)
}

func (i *Interactor) Reindex(ctx context.Context) error {
	return i.svc.Reindex(ctx)
}

func (i *Interactor) History(ctx context.Context, input dto.HistoryInput) ([]dto.RecordOutput, error) {
	return i.svc.History(ctx, input)
}
