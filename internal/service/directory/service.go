package directory

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/clinicore/records-api/internal/model"
	"github.com/clinicore/records-api/internal/repository"
	"github.com/clinicore/records-api/internal/service/event"
)

// DirectoryServicer covers the staff side of the system: doctors, the
// specialty catalog, and the links between them.
type DirectoryServicer interface {
	CreateDoctor(ctx context.Context, req *model.CreateDoctorRequest) (*model.Doctor, error)
	GetDoctor(ctx context.Context, id int64) (*model.Doctor, error)
	ListDoctorsByClinic(ctx context.Context, clinicID int64) ([]*model.Doctor, error)
	UpdateDoctor(ctx context.Context, id int64, req *model.UpdateDoctorRequest) (*model.Doctor, error)
	DeleteDoctor(ctx context.Context, id int64) error

	CreateSpecialty(ctx context.Context, req *model.CreateSpecialtyRequest) (*model.Specialty, error)
	GetSpecialty(ctx context.Context, id int64) (*model.Specialty, error)
	ListSpecialties(ctx context.Context) ([]*model.Specialty, error)
	DeleteSpecialty(ctx context.Context, id int64) error

	AssignSpecialty(ctx context.Context, doctorID, specialtyID int64) error
	RemoveSpecialty(ctx context.Context, doctorID, specialtyID int64) error
	ListDoctorSpecialties(ctx context.Context, doctorID int64) ([]*model.Specialty, error)
}

type Service struct {
	doctors     repository.DoctorRepository
	specialties repository.SpecialtyRepository
	events      *event.Service
	logger      zerolog.Logger
}

func NewService(doctors repository.DoctorRepository, specialties repository.SpecialtyRepository, events *event.Service, logger zerolog.Logger) *Service {
	return &Service{
		doctors:     doctors,
		specialties: specialties,
		events:      events,
		logger:      logger,
	}
}

func (s *Service) CreateDoctor(ctx context.Context, req *model.CreateDoctorRequest) (*model.Doctor, error) {
	doctor := &model.Doctor{
		ClinicID:  req.ClinicID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Email:     req.Email,
	}
	if err := s.doctors.Create(ctx, doctor); err != nil {
		return nil, fmt.Errorf("failed to create doctor: %w", err)
	}

	s.logger.Info().Int64("doctor_id", doctor.ID).Int64("clinic_id", doctor.ClinicID).Msg("doctor created")
	s.events.Record(ctx, "doctor", "created", doctor)
	return doctor, nil
}

func (s *Service) GetDoctor(ctx context.Context, id int64) (*model.Doctor, error) {
	doctor, err := s.doctors.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}
	return doctor, nil
}

func (s *Service) ListDoctorsByClinic(ctx context.Context, clinicID int64) ([]*model.Doctor, error) {
	doctors, err := s.doctors.ListByClinic(ctx, clinicID)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, nil
}

func (s *Service) UpdateDoctor(ctx context.Context, id int64, req *model.UpdateDoctorRequest) (*model.Doctor, error) {
	doctor, err := s.doctors.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}

	if req.FirstName != nil {
		doctor.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		doctor.LastName = *req.LastName
	}
	if req.Phone != nil {
		doctor.Phone = *req.Phone
	}
	if req.Email != nil {
		doctor.Email = *req.Email
	}

	if err := s.doctors.Update(ctx, doctor); err != nil {
		return nil, fmt.Errorf("failed to update doctor: %w", err)
	}

	s.events.Record(ctx, "doctor", "updated", doctor)
	return doctor, nil
}

// DeleteDoctor cascades to the doctor's specialty links and appointments,
// but is refused while any prescription still names the doctor.
func (s *Service) DeleteDoctor(ctx context.Context, id int64) error {
	if err := s.doctors.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete doctor: %w", err)
	}

	s.logger.Info().Int64("doctor_id", id).Msg("doctor deleted")
	s.events.Record(ctx, "doctor", "deleted", map[string]int64{"id": id})
	return nil
}

func (s *Service) CreateSpecialty(ctx context.Context, req *model.CreateSpecialtyRequest) (*model.Specialty, error) {
	specialty := &model.Specialty{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.specialties.Create(ctx, specialty); err != nil {
		return nil, fmt.Errorf("failed to create specialty: %w", err)
	}

	s.events.Record(ctx, "specialty", "created", specialty)
	return specialty, nil
}

func (s *Service) GetSpecialty(ctx context.Context, id int64) (*model.Specialty, error) {
	specialty, err := s.specialties.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get specialty: %w", err)
	}
	return specialty, nil
}

func (s *Service) ListSpecialties(ctx context.Context) ([]*model.Specialty, error) {
	specialties, err := s.specialties.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list specialties: %w", err)
	}
	return specialties, nil
}

func (s *Service) DeleteSpecialty(ctx context.Context, id int64) error {
	if err := s.specialties.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete specialty: %w", err)
	}

	s.events.Record(ctx, "specialty", "deleted", map[string]int64{"id": id})
	return nil
}

func (s *Service) AssignSpecialty(ctx context.Context, doctorID, specialtyID int64) error {
	if err := s.doctors.AssignSpecialty(ctx, doctorID, specialtyID); err != nil {
		return fmt.Errorf("failed to assign specialty: %w", err)
	}

	s.events.Record(ctx, "doctor_specialty", "assigned", &model.DoctorSpecialty{DoctorID: doctorID, SpecialtyID: specialtyID})
	return nil
}

func (s *Service) RemoveSpecialty(ctx context.Context, doctorID, specialtyID int64) error {
	if err := s.doctors.RemoveSpecialty(ctx, doctorID, specialtyID); err != nil {
		return fmt.Errorf("failed to remove specialty: %w", err)
	}

	s.events.Record(ctx, "doctor_specialty", "removed", &model.DoctorSpecialty{DoctorID: doctorID, SpecialtyID: specialtyID})
	return nil
}

func (s *Service) ListDoctorSpecialties(ctx context.Context, doctorID int64) ([]*model.Specialty, error) {
	specialties, err := s.doctors.ListSpecialties(ctx, doctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctor specialties: %w", err)
	}
	return specialties, nil
}
