package memory

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicore/records-api/internal/model"
)

func TestOutboxLifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	repo := NewOutboxRepository(s)

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(ctx, &model.OutboxEvent{
			EventType: "clinic.created",
			Payload:   json.RawMessage(`{"id":1}`),
		}))
	}

	pending, err := repo.GetPendingEvents(ctx, 2)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, model.OutboxStatusPending, pending[0].Status)

	require.NoError(t, repo.UpdateStatus(ctx, pending[0].ID, model.OutboxStatusProcessed, nil))

	remaining, err := repo.GetPendingEvents(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, remaining, 2)

	// A failed publish bumps the retry counter but can stay pending.
	errMsg := "broker unavailable"
	require.NoError(t, repo.UpdateStatus(ctx, remaining[0].ID, model.OutboxStatusPending, &errMsg))
	again, err := repo.GetPendingEvents(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, again[0].RetryCount)
	require.NotNil(t, again[0].ErrorMessage)
	assert.Equal(t, errMsg, *again[0].ErrorMessage)

	n, err := repo.DeleteProcessedBefore(ctx, time.Now().Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestOutboxRejectsNilPayload(t *testing.T) {
	repo := NewOutboxRepository(NewStore())
	err := repo.Create(context.Background(), &model.OutboxEvent{EventType: "clinic.created"})
	assert.Error(t, err)
}
