package event

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/clinicore/records-api/internal/model"
	"github.com/clinicore/records-api/internal/repository"
)

// Service records entity change events in the outbox for the worker to
// publish. Recording never fails the triggering operation.
type Service struct {
	repo   repository.OutboxRepository
	logger zerolog.Logger
}

func NewService(repo repository.OutboxRepository, logger zerolog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Record enqueues an event of the form "<entity>.<action>" with the given
// payload. Failures are logged and swallowed.
func (s *Service) Record(ctx context.Context, entity, action string, payload interface{}) {
	if s == nil || s.repo == nil {
		return
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error().Err(err).Str("entity", entity).Str("action", action).Msg("failed to marshal event payload")
		return
	}
	evt := &model.OutboxEvent{
		EventType: entity + "." + action,
		Payload:   json.RawMessage(raw),
	}
	if err := s.repo.Create(ctx, evt); err != nil {
		s.logger.Error().Err(err).Str("event_type", evt.EventType).Msg("failed to record outbox event")
	}
}
