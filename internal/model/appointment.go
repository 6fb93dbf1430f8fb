package model

import "time"

type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "Scheduled"
	AppointmentStatusCompleted AppointmentStatus = "Completed"
	AppointmentStatusCancelled AppointmentStatus = "Cancelled"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusScheduled, AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	}
	return false
}

type Appointment struct {
	ID              int64             `db:"id" json:"id"`
	PatientID       int64             `db:"patient_id" json:"patient_id"`
	DoctorID        int64             `db:"doctor_id" json:"doctor_id"`
	ClinicID        int64             `db:"clinic_id" json:"clinic_id"`
	ServiceID       int64             `db:"service_id" json:"service_id"`
	AppointmentDate time.Time         `db:"appointment_date" json:"appointment_date"`
	Status          AppointmentStatus `db:"status" json:"status"`
	Notes           string            `db:"notes" json:"notes,omitempty"`
}

type CreateAppointmentRequest struct {
	PatientID       int64     `json:"patient_id" binding:"required"`
	DoctorID        int64     `json:"doctor_id" binding:"required"`
	ClinicID        int64     `json:"clinic_id" binding:"required"`
	ServiceID       int64     `json:"service_id" binding:"required"`
	AppointmentDate time.Time `json:"appointment_date" binding:"required"`
	Notes           string    `json:"notes" binding:"max=1000"`
}

type UpdateAppointmentRequest struct {
	AppointmentDate *time.Time         `json:"appointment_date"`
	Status          *AppointmentStatus `json:"status"`
	Notes           *string            `json:"notes"`
}

// UpcomingAppointment is one row of the per-clinic schedule query:
// appointments joined to patients, doctors and services, ordered by date.
type UpcomingAppointment struct {
	AppointmentID    int64     `db:"appointment_id" json:"appointment_id"`
	PatientFirstName string    `db:"patient_first_name" json:"patient_first_name"`
	PatientLastName  string    `db:"patient_last_name" json:"patient_last_name"`
	DoctorFirstName  string    `db:"doctor_first_name" json:"doctor_first_name"`
	DoctorLastName   string    `db:"doctor_last_name" json:"doctor_last_name"`
	ServiceName      string    `db:"service_name" json:"service_name"`
	AppointmentDate  time.Time `db:"appointment_date" json:"appointment_date"`
}
