package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/clinicore/records-api/internal/model"
	"github.com/clinicore/records-api/internal/repository"
	"github.com/clinicore/records-api/internal/service/event"
)

type BillingServicer interface {
	RecordPayment(ctx context.Context, appointmentID int64, req *model.CreatePaymentRequest) (*model.Payment, error)
	ListPayments(ctx context.Context, appointmentID int64) ([]*model.Payment, error)
	TotalPaid(ctx context.Context, appointmentID int64) (*model.PaymentTotal, error)
}

// Service records payments against appointments. Partial payments are fine;
// nothing checks the running total against the service price.
type Service struct {
	repo   repository.PaymentRepository
	events *event.Service
	logger zerolog.Logger
}

func NewService(repo repository.PaymentRepository, events *event.Service, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		events: events,
		logger: logger,
	}
}

func (s *Service) RecordPayment(ctx context.Context, appointmentID int64, req *model.CreatePaymentRequest) (*model.Payment, error) {
	payment := &model.Payment{
		AppointmentID: appointmentID,
		Amount:        req.Amount,
		PaymentDate:   time.Now().UTC(),
		Method:        req.Method,
	}
	if err := s.repo.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	s.logger.Info().
		Int64("payment_id", payment.ID).
		Int64("appointment_id", appointmentID).
		Float64("amount", payment.Amount).
		Str("method", string(payment.Method)).
		Msg("payment recorded")
	s.events.Record(ctx, "payment", "created", payment)
	return payment, nil
}

func (s *Service) ListPayments(ctx context.Context, appointmentID int64) ([]*model.Payment, error) {
	payments, err := s.repo.ListByAppointment(ctx, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}

func (s *Service) TotalPaid(ctx context.Context, appointmentID int64) (*model.PaymentTotal, error) {
	total, err := s.repo.TotalPaid(ctx, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to total payments: %w", err)
	}
	return total, nil
}
