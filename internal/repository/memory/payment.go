package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/clinicore/records-api/internal/model"
	"github.com/clinicore/records-api/internal/repository"
	"github.com/clinicore/records-api/pkg/errors"
)

type paymentRepository struct {
	store *Store
}

func NewPaymentRepository(store *Store) repository.PaymentRepository {
	return &paymentRepository{store: store}
}

func (r *paymentRepository) Create(ctx context.Context, payment *model.Payment) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if payment.Amount == 0 {
		return errors.NotNull(tablePayments, "amount")
	}
	if payment.Method == "" {
		return errors.NotNull(tablePayments, "method")
	}
	if !payment.Method.Valid() {
		return errors.NotNull(tablePayments, "method")
	}
	if _, ok := s.appointments[payment.AppointmentID]; !ok {
		return errors.ForeignKey(tablePayments, "fk_payments_appointment",
			fmt.Sprintf("appointment %d does not exist", payment.AppointmentID))
	}

	payment.ID = s.nextID(tablePayments, payment.ID)
	if payment.PaymentDate.IsZero() {
		payment.PaymentDate = time.Now()
	}
	cp := *payment
	s.payments[payment.ID] = &cp
	return nil
}

func (r *paymentRepository) ListByAppointment(ctx context.Context, appointmentID int64) ([]*model.Payment, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var payments []*model.Payment
	for _, p := range s.payments {
		if p.AppointmentID == appointmentID {
			cp := *p
			payments = append(payments, &cp)
		}
	}
	sort.Slice(payments, func(i, j int) bool { return payments[i].ID < payments[j].ID })
	return payments, nil
}

// TotalPaid sums every payment row for the appointment. Nothing relates the
// total to the service price; partial and over-payment both pass through.
func (r *paymentRepository) TotalPaid(ctx context.Context, appointmentID int64) (*model.PaymentTotal, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := &model.PaymentTotal{AppointmentID: appointmentID}
	for _, p := range s.payments {
		if p.AppointmentID == appointmentID {
			total.Total += p.Amount
			total.Count++
		}
	}
	return total, nil
}
