package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/clinicore/records-api/internal/model"
)

func (r *paymentRepository) Create(ctx context.Context, payment *model.Payment) error {
	query := `
		INSERT INTO payments (appointment_id, amount, payment_date, method)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	if payment.PaymentDate.IsZero() {
		payment.PaymentDate = time.Now()
	}

	err := r.db.QueryRowxContext(ctx, query,
		payment.AppointmentID,
		payment.Amount,
		payment.PaymentDate,
		payment.Method,
	).Scan(&payment.ID)
	if err != nil {
		return mapWriteError(err, "payments")
	}
	return nil
}

func (r *paymentRepository) ListByAppointment(ctx context.Context, appointmentID int64) ([]*model.Payment, error) {
	query := `
		SELECT id, appointment_id, amount, payment_date, method
		FROM payments
		WHERE appointment_id = $1
		ORDER BY id ASC
	`
	var payments []*model.Payment
	if err := r.db.SelectContext(ctx, &payments, query, appointmentID); err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}

func (r *paymentRepository) TotalPaid(ctx context.Context, appointmentID int64) (*model.PaymentTotal, error) {
	query := `
		SELECT $1::bigint AS appointment_id,
			   COALESCE(SUM(amount), 0) AS total,
			   COUNT(*) AS count
		FROM payments
		WHERE appointment_id = $1
	`
	var total model.PaymentTotal
	if err := r.db.GetContext(ctx, &total, query, appointmentID); err != nil {
		return nil, fmt.Errorf("failed to total payments: %w", err)
	}
	return &total, nil
}
