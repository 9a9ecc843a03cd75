package in

import (
	"context"

	"timetrack/internal/modules/session/dto"
)

type Usecase interface {
	// Start opens a session for a category. Fails with ErrSessionRunning when
	// one is already active, whatever its category.
	Start(ctx context.Context, input dto.StartInput) (dto.StartOutput, error)
	// Stop closes the active session and stores it as an activity record,
	// unless it ran shorter than the configured minimum.
	Stop(ctx context.Context) (dto.StopOutput, error)
	// Status describes the active session, or fails with ErrNoActiveSession.
	Status(ctx context.Context) (dto.StatusOutput, error)
}
