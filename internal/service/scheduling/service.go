package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"github.com/clinicore/records-api/internal/model"
	"github.com/clinicore/records-api/internal/repository"
	"github.com/clinicore/records-api/internal/service/event"
)

type SchedulingServicer interface {
	CreateAppointment(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error)
	GetAppointment(ctx context.Context, id int64) (*model.Appointment, error)
	ListAppointmentsByClinic(ctx context.Context, clinicID int64) ([]*model.Appointment, error)
	UpdateAppointment(ctx context.Context, id int64, req *model.UpdateAppointmentRequest) (*model.Appointment, error)
	DeleteAppointment(ctx context.Context, id int64) error
	ListUpcoming(ctx context.Context, clinicID int64) ([]*model.UpcomingAppointment, error)
}

// Service books appointments and serves the per-clinic schedule. The schedule
// query joins four tables, so results are cached per clinic and dropped
// whenever an appointment in that clinic changes.
//
// Nothing stops two appointments from booking the same doctor at the same
// time; callers that care must check the schedule first.
type Service struct {
	repo   repository.AppointmentRepository
	events *event.Service
	cache  *cache.Cache
	logger zerolog.Logger
}

func NewService(repo repository.AppointmentRepository, events *event.Service, ttl time.Duration, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		events: events,
		cache:  cache.New(ttl, 2*ttl),
		logger: logger,
	}
}

func upcomingKey(clinicID int64) string {
	return fmt.Sprintf("upcoming:%d", clinicID)
}

func (s *Service) CreateAppointment(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	appointment := &model.Appointment{
		PatientID:       req.PatientID,
		DoctorID:        req.DoctorID,
		ClinicID:        req.ClinicID,
		ServiceID:       req.ServiceID,
		AppointmentDate: req.AppointmentDate,
		Status:          model.AppointmentStatusScheduled,
		Notes:           req.Notes,
	}
	if err := s.repo.Create(ctx, appointment); err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	s.cache.Delete(upcomingKey(appointment.ClinicID))
	s.logger.Info().
		Int64("appointment_id", appointment.ID).
		Int64("clinic_id", appointment.ClinicID).
		Time("date", appointment.AppointmentDate).
		Msg("appointment created")
	s.events.Record(ctx, "appointment", "created", appointment)
	return appointment, nil
}

func (s *Service) GetAppointment(ctx context.Context, id int64) (*model.Appointment, error) {
	appointment, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return appointment, nil
}

func (s *Service) ListAppointmentsByClinic(ctx context.Context, clinicID int64) ([]*model.Appointment, error) {
	appointments, err := s.repo.ListByClinic(ctx, clinicID)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func (s *Service) UpdateAppointment(ctx context.Context, id int64, req *model.UpdateAppointmentRequest) (*model.Appointment, error) {
	appointment, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}

	if req.AppointmentDate != nil {
		appointment.AppointmentDate = *req.AppointmentDate
	}
	if req.Status != nil {
		appointment.Status = *req.Status
	}
	if req.Notes != nil {
		appointment.Notes = *req.Notes
	}

	if err := s.repo.Update(ctx, appointment); err != nil {
		return nil, fmt.Errorf("failed to update appointment: %w", err)
	}

	s.cache.Delete(upcomingKey(appointment.ClinicID))
	s.events.Record(ctx, "appointment", "updated", appointment)
	return appointment, nil
}

// DeleteAppointment cascades to the appointment's payments and prescriptions;
// medical records written under it are kept with their appointment reference
// cleared.
func (s *Service) DeleteAppointment(ctx context.Context, id int64) error {
	appointment, err := s.repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get appointment: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}

	s.cache.Delete(upcomingKey(appointment.ClinicID))
	s.logger.Info().Int64("appointment_id", id).Msg("appointment deleted")
	s.events.Record(ctx, "appointment", "deleted", map[string]int64{"id": id})
	return nil
}

// ListUpcoming returns the clinic's appointments joined with patient, doctor
// and service names, earliest first.
func (s *Service) ListUpcoming(ctx context.Context, clinicID int64) ([]*model.UpcomingAppointment, error) {
	key := upcomingKey(clinicID)
	if cached, ok := s.cache.Get(key); ok {
		return cached.([]*model.UpcomingAppointment), nil
	}

	rows, err := s.repo.ListUpcoming(ctx, clinicID)
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming appointments: %w", err)
	}

	s.cache.Set(key, rows, cache.DefaultExpiration)
	return rows, nil
}
