package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/records-api/internal/model"
)

type ClinicRepository interface {
	Create(ctx context.Context, clinic *model.Clinic) error
	Get(ctx context.Context, id int64) (*model.Clinic, error)
	List(ctx context.Context) ([]*model.Clinic, error)
	Update(ctx context.Context, clinic *model.Clinic) error
	Delete(ctx context.Context, id int64) error
	Renumber(ctx context.Context, oldID, newID int64) error
}

type SpecialtyRepository interface {
	Create(ctx context.Context, specialty *model.Specialty) error
	Get(ctx context.Context, id int64) (*model.Specialty, error)
	List(ctx context.Context) ([]*model.Specialty, error)
	Delete(ctx context.Context, id int64) error
}

type DoctorRepository interface {
	Create(ctx context.Context, doctor *model.Doctor) error
	Get(ctx context.Context, id int64) (*model.Doctor, error)
	ListByClinic(ctx context.Context, clinicID int64) ([]*model.Doctor, error)
	Update(ctx context.Context, doctor *model.Doctor) error
	Delete(ctx context.Context, id int64) error
	AssignSpecialty(ctx context.Context, doctorID, specialtyID int64) error
	RemoveSpecialty(ctx context.Context, doctorID, specialtyID int64) error
	ListSpecialties(ctx context.Context, doctorID int64) ([]*model.Specialty, error)
}

type PatientRepository interface {
	Create(ctx context.Context, patient *model.Patient) error
	Get(ctx context.Context, id int64) (*model.Patient, error)
	List(ctx context.Context) ([]*model.Patient, error)
	Update(ctx context.Context, patient *model.Patient) error
	Delete(ctx context.Context, id int64) error
}

type ServiceRepository interface {
	Create(ctx context.Context, service *model.Service) error
	Get(ctx context.Context, id int64) (*model.Service, error)
	ListByClinic(ctx context.Context, clinicID int64) ([]*model.Service, error)
	Update(ctx context.Context, service *model.Service) error
	Delete(ctx context.Context, id int64) error
}

type AppointmentRepository interface {
	Create(ctx context.Context, appointment *model.Appointment) error
	Get(ctx context.Context, id int64) (*model.Appointment, error)
	ListByClinic(ctx context.Context, clinicID int64) ([]*model.Appointment, error)
	Update(ctx context.Context, appointment *model.Appointment) error
	Delete(ctx context.Context, id int64) error
	ListUpcoming(ctx context.Context, clinicID int64) ([]*model.UpcomingAppointment, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *model.Payment) error
	ListByAppointment(ctx context.Context, appointmentID int64) ([]*model.Payment, error)
	TotalPaid(ctx context.Context, appointmentID int64) (*model.PaymentTotal, error)
}

type PrescriptionRepository interface {
	Create(ctx context.Context, prescription *model.Prescription) error
	Get(ctx context.Context, id int64) (*model.Prescription, error)
	ListByPatient(ctx context.Context, patientID int64) ([]*model.Prescription, error)
	Delete(ctx context.Context, id int64) error
}

type MedicalRecordRepository interface {
	Create(ctx context.Context, record *model.MedicalRecord) error
	Get(ctx context.Context, id int64) (*model.MedicalRecord, error)
	ListByPatient(ctx context.Context, patientID int64) ([]*model.MedicalRecord, error)
	Delete(ctx context.Context, id int64) error
}

type OutboxRepository interface {
	Create(ctx context.Context, event *model.OutboxEvent) error
	GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.OutboxStatus, errMsg *string) error
	DeleteProcessedBefore(ctx context.Context, before time.Time) (int64, error)
}
