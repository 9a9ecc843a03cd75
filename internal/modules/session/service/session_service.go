package service

import (
	"context"
	"fmt"
	"time"

	"timetrack/internal/modules/session/domain"
	"timetrack/internal/platform/clock"
	"timetrack/internal/platform/id"
)

type SessionService struct {
	clock clock.Clock
	idGen id.Generator
}

func NewSessionService(clock clock.Clock, idGen id.Generator) *SessionService {
	return &SessionService{clock: clock, idGen: idGen}
}

func (s *SessionService) Start(_ context.Context, category, note string) (domain.ActiveSession, error) {
	if category == "" {
		return domain.ActiveSession{}, fmt.Errorf("category is required")
	}
	return domain.ActiveSession{
		SessionID: s.idGen.New(),
		Category:  category,
		StartedAt: s.clock.Now(),
		Note:      note,
	}, nil
}

func (s *SessionService) Stop(_ context.Context, active domain.ActiveSession) domain.FinishedSession {
	endedAt := s.clock.Now()
	duration := endedAt.Sub(active.StartedAt)
	if duration < 0 {
		duration = 0
	}
	return domain.FinishedSession{
		SessionID: active.SessionID,
		Category:  active.Category,
		StartedAt: active.StartedAt,
		EndedAt:   endedAt,
		Duration:  duration,
		Note:      active.Note,
	}
}

func (s *SessionService) Elapsed(active domain.ActiveSession) time.Duration {
	d := s.clock.Now().Sub(active.StartedAt)
	if d < 0 {
		d = 0
	}
	return d
}
