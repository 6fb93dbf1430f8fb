package model

import "time"

type PaymentMethod string

const (
	PaymentMethodCash      PaymentMethod = "Cash"
	PaymentMethodCard      PaymentMethod = "Card"
	PaymentMethodTransfer  PaymentMethod = "Transfer"
	PaymentMethodInsurance PaymentMethod = "Insurance"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodTransfer, PaymentMethodInsurance:
		return true
	}
	return false
}

// Payment is one payment against an appointment. Several rows per appointment
// are allowed (partial payments); nothing ties the sum to the service price.
type Payment struct {
	ID            int64         `db:"id" json:"id"`
	AppointmentID int64         `db:"appointment_id" json:"appointment_id"`
	Amount        float64       `db:"amount" json:"amount"`
	PaymentDate   time.Time     `db:"payment_date" json:"payment_date"`
	Method        PaymentMethod `db:"method" json:"method"`
}

type CreatePaymentRequest struct {
	Amount float64       `json:"amount" binding:"required,gt=0"`
	Method PaymentMethod `json:"method" binding:"required"`
}

// PaymentTotal aggregates payments for one appointment.
type PaymentTotal struct {
	AppointmentID int64   `db:"appointment_id" json:"appointment_id"`
	Total         float64 `db:"total" json:"total"`
	Count         int     `db:"count" json:"count"`
}
