package records

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/clinicore/records-api/internal/model"
	"github.com/clinicore/records-api/internal/repository"
	"github.com/clinicore/records-api/internal/service/event"
	"github.com/clinicore/records-api/pkg/validator"
)

type RecordsServicer interface {
	CreatePrescription(ctx context.Context, req *model.CreatePrescriptionRequest) (*model.Prescription, error)
	GetPrescription(ctx context.Context, id int64) (*model.Prescription, error)
	ListPrescriptionsByPatient(ctx context.Context, patientID int64) ([]*model.Prescription, error)
	DeletePrescription(ctx context.Context, id int64) error

	CreateMedicalRecord(ctx context.Context, req *model.CreateMedicalRecordRequest) (*model.MedicalRecord, error)
	GetMedicalRecord(ctx context.Context, id int64) (*model.MedicalRecord, error)
	ListMedicalRecordsByPatient(ctx context.Context, patientID int64) ([]*model.MedicalRecord, error)
	DeleteMedicalRecord(ctx context.Context, id int64) error
}

// Service handles the clinical paper trail: prescriptions and medical
// records. Both are validated here rather than at the HTTP edge because the
// worker can create them from replayed events too.
type Service struct {
	prescriptions repository.PrescriptionRepository
	medical       repository.MedicalRecordRepository
	events        *event.Service
	logger        zerolog.Logger
}

func NewService(prescriptions repository.PrescriptionRepository, medical repository.MedicalRecordRepository, events *event.Service, logger zerolog.Logger) *Service {
	return &Service{
		prescriptions: prescriptions,
		medical:       medical,
		events:        events,
		logger:        logger,
	}
}

func (s *Service) CreatePrescription(ctx context.Context, req *model.CreatePrescriptionRequest) (*model.Prescription, error) {
	if err := validator.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid prescription: %w", err)
	}

	prescription := &model.Prescription{
		AppointmentID: req.AppointmentID,
		PatientID:     req.PatientID,
		DoctorID:      req.DoctorID,
		Medication:    req.Medication,
		Dosage:        req.Dosage,
		DurationDays:  req.DurationDays,
		Notes:         req.Notes,
	}
	if err := s.prescriptions.Create(ctx, prescription); err != nil {
		return nil, fmt.Errorf("failed to create prescription: %w", err)
	}

	s.logger.Info().
		Int64("prescription_id", prescription.ID).
		Int64("patient_id", prescription.PatientID).
		Str("medication", prescription.Medication).
		Msg("prescription created")
	s.events.Record(ctx, "prescription", "created", prescription)
	return prescription, nil
}

func (s *Service) GetPrescription(ctx context.Context, id int64) (*model.Prescription, error) {
	prescription, err := s.prescriptions.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get prescription: %w", err)
	}
	return prescription, nil
}

func (s *Service) ListPrescriptionsByPatient(ctx context.Context, patientID int64) ([]*model.Prescription, error) {
	prescriptions, err := s.prescriptions.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list prescriptions: %w", err)
	}
	return prescriptions, nil
}

func (s *Service) DeletePrescription(ctx context.Context, id int64) error {
	if err := s.prescriptions.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete prescription: %w", err)
	}

	s.events.Record(ctx, "prescription", "deleted", map[string]int64{"id": id})
	return nil
}

func (s *Service) CreateMedicalRecord(ctx context.Context, req *model.CreateMedicalRecordRequest) (*model.MedicalRecord, error) {
	if err := validator.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid medical record: %w", err)
	}

	record := &model.MedicalRecord{
		PatientID:     req.PatientID,
		AppointmentID: req.AppointmentID,
		RecordDate:    req.RecordDate,
		Notes:         req.Notes,
	}
	if err := s.medical.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create medical record: %w", err)
	}

	s.logger.Info().
		Int64("record_id", record.ID).
		Int64("patient_id", record.PatientID).
		Msg("medical record created")
	s.events.Record(ctx, "medical_record", "created", record)
	return record, nil
}

func (s *Service) GetMedicalRecord(ctx context.Context, id int64) (*model.MedicalRecord, error) {
	record, err := s.medical.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get medical record: %w", err)
	}
	return record, nil
}

func (s *Service) ListMedicalRecordsByPatient(ctx context.Context, patientID int64) ([]*model.MedicalRecord, error) {
	records, err := s.medical.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list medical records: %w", err)
	}
	return records, nil
}

func (s *Service) DeleteMedicalRecord(ctx context.Context, id int64) error {
	if err := s.medical.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete medical record: %w", err)
	}

	s.events.Record(ctx, "medical_record", "deleted", map[string]int64{"id": id})
	return nil
}
