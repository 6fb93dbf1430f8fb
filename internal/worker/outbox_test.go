package worker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicore/records-api/internal/model"
	"github.com/clinicore/records-api/internal/repository/memory"
	"github.com/clinicore/records-api/pkg/metrics"
)

var testMetrics = metrics.New("records_worker_test")

type stubBroker struct {
	published []string
	failures  int
}

func (b *stubBroker) Publish(ctx context.Context, channel string, message interface{}) error {
	if b.failures > 0 {
		b.failures--
		return errors.New("broker unavailable")
	}
	b.published = append(b.published, channel)
	return nil
}

func (b *stubBroker) Subscribe(ctx context.Context, channel string) (<-chan []byte, error) {
	return nil, errors.New("not implemented")
}

func (b *stubBroker) Close() error { return nil }

func newProcessor(repo *memory.Store, broker *stubBroker, maxRetries int) (*OutboxProcessor, *memory.Store) {
	p := NewOutboxProcessor(
		memory.NewOutboxRepository(repo),
		broker,
		OutboxProcessorConfig{
			Channel:      "records.events",
			BatchSize:    10,
			PollInterval: time.Second,
			MaxRetries:   maxRetries,
		},
		zerolog.Nop(),
		testMetrics,
	)
	return p, repo
}

func enqueue(t *testing.T, s *memory.Store, n int) {
	t.Helper()
	repo := memory.NewOutboxRepository(s)
	for i := 0; i < n; i++ {
		require.NoError(t, repo.Create(context.Background(), &model.OutboxEvent{
			EventType: "appointment.created",
			Payload:   json.RawMessage(`{"id":1}`),
		}))
	}
}

func TestProcessEventsPublishesAndMarksProcessed(t *testing.T) {
	ctx := context.Background()
	broker := &stubBroker{}
	p, s := newProcessor(memory.NewStore(), broker, 3)
	enqueue(t, s, 2)

	require.NoError(t, p.processEvents(ctx))

	assert.Len(t, broker.published, 2)
	pending, err := memory.NewOutboxRepository(s).GetPendingEvents(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestFailedPublishStaysPendingUntilMaxRetries(t *testing.T) {
	ctx := context.Background()
	broker := &stubBroker{failures: 1}
	p, s := newProcessor(memory.NewStore(), broker, 2)
	enqueue(t, s, 1)

	// First poll fails and leaves the event pending with one retry recorded.
	require.NoError(t, p.processEvents(ctx))
	pending, err := memory.NewOutboxRepository(s).GetPendingEvents(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, 1, pending[0].RetryCount)

	// Second poll succeeds.
	require.NoError(t, p.processEvents(ctx))
	pending, err = memory.NewOutboxRepository(s).GetPendingEvents(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
	assert.Len(t, broker.published, 1)
}

func TestExhaustedRetriesParkEventAsFailed(t *testing.T) {
	ctx := context.Background()
	broker := &stubBroker{failures: 10}
	p, s := newProcessor(memory.NewStore(), broker, 2)
	enqueue(t, s, 1)

	require.NoError(t, p.processEvents(ctx))
	require.NoError(t, p.processEvents(ctx))

	pending, err := memory.NewOutboxRepository(s).GetPendingEvents(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending, "event should be parked as failed, not retried forever")
	assert.Empty(t, broker.published)
}

func TestPurgeProcessed(t *testing.T) {
	ctx := context.Background()
	broker := &stubBroker{}
	p, s := newProcessor(memory.NewStore(), broker, 3)
	enqueue(t, s, 1)
	p.config.RetainFor = time.Nanosecond

	require.NoError(t, p.processEvents(ctx))
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, p.purgeProcessed(ctx))

	pending, err := memory.NewOutboxRepository(s).GetPendingEvents(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
}
