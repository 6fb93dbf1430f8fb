package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/clinicore/records-api/internal/model"
	"github.com/clinicore/records-api/internal/repository"
	"github.com/clinicore/records-api/pkg/messaging"
	"github.com/clinicore/records-api/pkg/metrics"
)

type OutboxProcessorConfig struct {
	Channel      string
	BatchSize    int
	PollInterval time.Duration
	MaxRetries   int
	RetainFor    time.Duration
}

// OutboxProcessor drains pending outbox events to the message broker.
// Events that fail are retried on later polls until MaxRetries, then parked
// as failed. Processed events older than RetainFor are purged once a day.
type OutboxProcessor struct {
	repo    repository.OutboxRepository
	broker  messaging.Broker
	config  OutboxProcessorConfig
	logger  zerolog.Logger
	metrics *metrics.Metrics
}

func NewOutboxProcessor(
	repo repository.OutboxRepository,
	broker messaging.Broker,
	config OutboxProcessorConfig,
	logger zerolog.Logger,
	m *metrics.Metrics,
) *OutboxProcessor {
	if config.BatchSize <= 0 {
		panic("BatchSize must be greater than 0")
	}
	if config.PollInterval <= 0 {
		panic("PollInterval must be greater than 0")
	}
	if config.MaxRetries <= 0 {
		panic("MaxRetries must be greater than 0")
	}

	return &OutboxProcessor{
		repo:    repo,
		broker:  broker,
		config:  config,
		logger:  logger,
		metrics: m,
	}
}

func (p *OutboxProcessor) Start(ctx context.Context) {
	ticker := time.NewTicker(p.config.PollInterval)
	defer ticker.Stop()

	cleanup := time.NewTicker(24 * time.Hour)
	defer cleanup.Stop()

	p.logger.Info().
		Str("channel", p.config.Channel).
		Int("batch_size", p.config.BatchSize).
		Dur("poll_interval", p.config.PollInterval).
		Msg("starting outbox processor")

	for {
		select {
		case <-ctx.Done():
			p.logger.Info().Msg("shutting down outbox processor")
			return
		case <-ticker.C:
			if err := p.processEvents(ctx); err != nil {
				p.logger.Error().Err(err).Msg("failed to process events")
			}
		case <-cleanup.C:
			if err := p.purgeProcessed(ctx); err != nil {
				p.logger.Error().Err(err).Msg("failed to purge processed events")
			}
		}
	}
}

func (p *OutboxProcessor) processEvents(ctx context.Context) error {
	events, err := p.repo.GetPendingEvents(ctx, p.config.BatchSize)
	if err != nil {
		return fmt.Errorf("failed to get pending events: %w", err)
	}
	p.metrics.OutboxQueueSize.Set(float64(len(events)))

	for _, event := range events {
		if err := p.processEvent(ctx, event); err != nil {
			p.logger.Error().
				Err(err).
				Str("event_id", event.ID.String()).
				Str("event_type", event.EventType).
				Msg("failed to process event")
		}
	}

	return nil
}

func (p *OutboxProcessor) processEvent(ctx context.Context, event *model.OutboxEvent) error {
	if err := p.broker.Publish(ctx, p.config.Channel, event); err != nil {
		p.metrics.OutboxEventsFailed.Inc()

		status := model.OutboxStatusPending
		if event.RetryCount+1 >= p.config.MaxRetries {
			status = model.OutboxStatusFailed
		}
		errStr := err.Error()
		if updateErr := p.repo.UpdateStatus(ctx, event.ID, status, &errStr); updateErr != nil {
			p.logger.Error().Err(updateErr).Str("event_id", event.ID.String()).Msg("failed to update event status")
		}
		return err
	}

	p.metrics.OutboxEventsProcessed.Inc()
	if err := p.repo.UpdateStatus(ctx, event.ID, model.OutboxStatusProcessed, nil); err != nil {
		return fmt.Errorf("failed to mark event processed: %w", err)
	}
	return nil
}

func (p *OutboxProcessor) purgeProcessed(ctx context.Context) error {
	if p.config.RetainFor <= 0 {
		return nil
	}

	cutoff := time.Now().Add(-p.config.RetainFor)
	n, err := p.repo.DeleteProcessedBefore(ctx, cutoff)
	if err != nil {
		return err
	}
	if n > 0 {
		p.logger.Info().Int64("deleted", n).Time("cutoff", cutoff).Msg("purged processed events")
	}
	return nil
}
