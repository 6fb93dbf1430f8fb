package clinic

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/clinicore/records-api/internal/model"
	"github.com/clinicore/records-api/internal/repository"
	"github.com/clinicore/records-api/internal/service/event"
)

type ClinicServicer interface {
	CreateClinic(ctx context.Context, req *model.CreateClinicRequest) (*model.Clinic, error)
	GetClinic(ctx context.Context, id int64) (*model.Clinic, error)
	ListClinics(ctx context.Context) ([]*model.Clinic, error)
	UpdateClinic(ctx context.Context, id int64, req *model.UpdateClinicRequest) (*model.Clinic, error)
	DeleteClinic(ctx context.Context, id int64) error
	RenumberClinic(ctx context.Context, oldID, newID int64) error
}

type Service struct {
	repo   repository.ClinicRepository
	events *event.Service
	logger zerolog.Logger
}

func NewService(repo repository.ClinicRepository, events *event.Service, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		events: events,
		logger: logger,
	}
}

func (s *Service) CreateClinic(ctx context.Context, req *model.CreateClinicRequest) (*model.Clinic, error) {
	clinic := &model.Clinic{
		Name:      req.Name,
		Address:   req.Address,
		Phone:     req.Phone,
		Email:     req.Email,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, clinic); err != nil {
		return nil, fmt.Errorf("failed to create clinic: %w", err)
	}

	s.logger.Info().Int64("clinic_id", clinic.ID).Str("name", clinic.Name).Msg("clinic created")
	s.events.Record(ctx, "clinic", "created", clinic)
	return clinic, nil
}

func (s *Service) GetClinic(ctx context.Context, id int64) (*model.Clinic, error) {
	clinic, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get clinic: %w", err)
	}
	return clinic, nil
}

func (s *Service) ListClinics(ctx context.Context) ([]*model.Clinic, error) {
	clinics, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list clinics: %w", err)
	}
	return clinics, nil
}

func (s *Service) UpdateClinic(ctx context.Context, id int64, req *model.UpdateClinicRequest) (*model.Clinic, error) {
	clinic, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get clinic: %w", err)
	}

	if req.Name != nil {
		clinic.Name = *req.Name
	}
	if req.Address != nil {
		clinic.Address = *req.Address
	}
	if req.Phone != nil {
		clinic.Phone = *req.Phone
	}
	if req.Email != nil {
		clinic.Email = *req.Email
	}

	if err := s.repo.Update(ctx, clinic); err != nil {
		return nil, fmt.Errorf("failed to update clinic: %w", err)
	}

	s.events.Record(ctx, "clinic", "updated", clinic)
	return clinic, nil
}

// DeleteClinic removes the clinic and everything hanging off it: doctors,
// services and appointments cascade, and their own dependents follow. The
// delete is refused while a row outside the cascade still restricts one
// inside it, a prescription the clinic's doctor wrote at another clinic
// being the usual blocker.
func (s *Service) DeleteClinic(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete clinic: %w", err)
	}

	s.logger.Info().Int64("clinic_id", id).Msg("clinic deleted")
	s.events.Record(ctx, "clinic", "deleted", map[string]int64{"id": id})
	return nil
}

// RenumberClinic changes a clinic's primary key. Child rows in doctors,
// services and appointments follow the new id.
func (s *Service) RenumberClinic(ctx context.Context, oldID, newID int64) error {
	if oldID == newID {
		return nil
	}
	if err := s.repo.Renumber(ctx, oldID, newID); err != nil {
		return fmt.Errorf("failed to renumber clinic: %w", err)
	}

	s.logger.Info().Int64("old_id", oldID).Int64("new_id", newID).Msg("clinic renumbered")
	s.events.Record(ctx, "clinic", "renumbered", map[string]int64{"old_id": oldID, "new_id": newID})
	return nil
}
