package usecase

import (
	"context"
	"fmt"
	"time"

	activitydomain "timetrack/internal/modules/activity/domain"
	activitydto "timetrack/internal/modules/activity/dto"
	activityin "timetrack/internal/modules/activity/port/in"
	sessiondto "timetrack/internal/modules/session/dto"
	sessionin "timetrack/internal/modules/session/port/in"
	sessionout "timetrack/internal/modules/session/port/out"
	"timetrack/internal/modules/session/service"
	apperrors "timetrack/internal/platform/errors"
)

type Interactor struct {
	svc         *service.SessionService
	activity    activityin.Usecase
	activeStore sessionout.ActiveSessionStore
	minDuration time.Duration
}

func NewInteractor(svc *service.SessionService, activity activityin.Usecase, activeStore sessionout.ActiveSessionStore, minDuration time.Duration) sessionin.Usecase {
	return &Interactor{svc: svc, activity: activity, activeStore: activeStore, minDuration: minDuration}
}

func (i *Interactor) Start(ctx context.Context, input sessiondto.StartInput) (sessiondto.StartOutput, error) {
	if i.activeStore == nil {
		return sessiondto.StartOutput{}, fmt.Errorf("active session store is not configured")
	}
	if !activitydomain.Category(input.Category).Known() {
		return sessiondto.StartOutput{}, fmt.Errorf("%w: %s", apperrors.ErrUnknownCategory, input.Category)
	}
	_, err := i.activeStore.LoadActive(ctx)
	if err == nil {
		return sessiondto.StartOutput{}, apperrors.ErrSessionRunning
	}
	if err != apperrors.ErrNoActiveSession {
		return sessiondto.StartOutput{}, err
	}

	active, err := i.svc.Start(ctx, input.Category, input.Note)
	if err != nil {
		return sessiondto.StartOutput{}, err
	}
	if err := i.activeStore.SaveActive(ctx, active); err != nil {
		return sessiondto.StartOutput{}, err
	}
	return sessiondto.StartOutput{SessionID: active.SessionID, Category: active.Category, StartedAt: active.StartedAt}, nil
}

func (i *Interactor) Stop(ctx context.Context) (sessiondto.StopOutput, error) {
	if i.activeStore == nil {
		return sessiondto.StopOutput{}, apperrors.ErrNoActiveSession
	}
	active, err := i.activeStore.LoadActive(ctx)
	if err != nil {
		return sessiondto.StopOutput{}, err
	}

	finished := i.svc.Stop(ctx, active)

	// Clear before persisting: a stuck active-session file would otherwise
	// block every later start. A failed append surfaces as an error with the
	// session already closed.
	if err := i.activeStore.ClearActive(ctx); err != nil {
		return sessiondto.StopOutput{}, err
	}

	out := sessiondto.StopOutput{
		SessionID: finished.SessionID,
		Category:  finished.Category,
		StartedAt: finished.StartedAt,
		EndedAt:   finished.EndedAt,
		Duration:  finished.Duration,
	}
	if finished.Duration < i.minDuration {
		return out, nil
	}
	if i.activity == nil {
		return out, fmt.Errorf("activity usecase is not configured")
	}
	if err := i.activity.Append(ctx, activitydto.RecordInput{
		Category: finished.Category,
		Start:    finished.StartedAt,
		End:      finished.EndedAt,
		Note:     finished.Note,
	}); err != nil {
		return out, err
	}
	out.Persisted = true
	return out, nil
}

func (i *Interactor) Status(ctx context.Context) (sessiondto.StatusOutput, error) {
	if i.activeStore == nil {
		return sessiondto.StatusOutput{}, apperrors.ErrNoActiveSession
	}
	active, err := i.activeStore.LoadActive(ctx)
	if err != nil {
		return sessiondto.StatusOutput{}, err
	}
	return sessiondto.StatusOutput{
		SessionID: active.SessionID,
		Category:  active.Category,
		StartedAt: active.StartedAt,
		Note:      active.Note,
		Elapsed:   i.svc.Elapsed(active),
	}, nil
}
