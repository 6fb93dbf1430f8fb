package model

import "time"

// MedicalRecord outlives any appointment it was written under: deleting the
// appointment nulls AppointmentID instead of removing the record.
type MedicalRecord struct {
	ID            int64     `db:"id" json:"id"`
	PatientID     int64     `db:"patient_id" json:"patient_id"`
	AppointmentID *int64    `db:"appointment_id" json:"appointment_id,omitempty"`
	RecordDate    time.Time `db:"record_date" json:"record_date"`
	Notes         string    `db:"notes" json:"notes"`
}

type CreateMedicalRecordRequest struct {
	PatientID     int64     `json:"patient_id" validate:"required"`
	AppointmentID *int64    `json:"appointment_id"`
	RecordDate    time.Time `json:"record_date" validate:"required"`
	Notes         string    `json:"notes" validate:"required"`
}
