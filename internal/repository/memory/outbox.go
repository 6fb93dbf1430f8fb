package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/records-api/internal/model"
	"github.com/clinicore/records-api/internal/repository"
	"github.com/clinicore/records-api/pkg/errors"
)

type outboxRepository struct {
	store *Store
}

func NewOutboxRepository(store *Store) repository.OutboxRepository {
	return &outboxRepository{store: store}
}

func (r *outboxRepository) Create(ctx context.Context, event *model.OutboxEvent) error {
	if event == nil || event.Payload == nil {
		return fmt.Errorf("event payload cannot be nil")
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	event.ID = uuid.New()
	event.Status = model.OutboxStatusPending
	event.CreatedAt = time.Now()
	event.UpdatedAt = event.CreatedAt

	cp := *event
	s.outbox[event.ID] = &cp
	s.outboxOrder = append(s.outboxOrder, event.ID)
	return nil
}

func (r *outboxRepository) GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var events []*model.OutboxEvent
	for _, id := range s.outboxOrder {
		evt, ok := s.outbox[id]
		if !ok || evt.Status != model.OutboxStatusPending {
			continue
		}
		cp := *evt
		events = append(events, &cp)
		if limit > 0 && len(events) >= limit {
			break
		}
	}
	return events, nil
}

func (r *outboxRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OutboxStatus, errMsg *string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	evt, ok := s.outbox[id]
	if !ok {
		return errors.NotFound("outbox_events", id)
	}
	evt.Status = status
	evt.ErrorMessage = errMsg
	evt.UpdatedAt = time.Now()
	if status == model.OutboxStatusProcessed {
		now := time.Now()
		evt.ProcessedAt = &now
	}
	if errMsg != nil {
		evt.RetryCount++
	}
	return nil
}

func (r *outboxRepository) DeleteProcessedBefore(ctx context.Context, before time.Time) (int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var kept []uuid.UUID
	var removed int64
	for _, id := range s.outboxOrder {
		evt, ok := s.outbox[id]
		if !ok {
			continue
		}
		if evt.Status == model.OutboxStatusProcessed && evt.ProcessedAt != nil && evt.ProcessedAt.Before(before) {
			delete(s.outbox, id)
			removed++
			continue
		}
		kept = append(kept, id)
	}
	s.outboxOrder = kept
	return removed, nil
}
