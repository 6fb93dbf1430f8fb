package catalog

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/clinicore/records-api/internal/model"
	"github.com/clinicore/records-api/internal/repository"
	"github.com/clinicore/records-api/internal/service/event"
)

// CatalogServicer manages the billable services each clinic offers.
type CatalogServicer interface {
	CreateService(ctx context.Context, req *model.CreateServiceRequest) (*model.Service, error)
	GetService(ctx context.Context, id int64) (*model.Service, error)
	ListServicesByClinic(ctx context.Context, clinicID int64) ([]*model.Service, error)
	UpdateService(ctx context.Context, id int64, req *model.UpdateServiceRequest) (*model.Service, error)
	DeleteService(ctx context.Context, id int64) error
}

type Service struct {
	repo   repository.ServiceRepository
	events *event.Service
	logger zerolog.Logger
}

func NewService(repo repository.ServiceRepository, events *event.Service, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		events: events,
		logger: logger,
	}
}

func (s *Service) CreateService(ctx context.Context, req *model.CreateServiceRequest) (*model.Service, error) {
	svc := &model.Service{
		ClinicID:        req.ClinicID,
		Name:            req.Name,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
	}
	if err := s.repo.Create(ctx, svc); err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}

	s.logger.Info().Int64("service_id", svc.ID).Int64("clinic_id", svc.ClinicID).Msg("service created")
	s.events.Record(ctx, "service", "created", svc)
	return svc, nil
}

func (s *Service) GetService(ctx context.Context, id int64) (*model.Service, error) {
	svc, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	return svc, nil
}

func (s *Service) ListServicesByClinic(ctx context.Context, clinicID int64) ([]*model.Service, error) {
	services, err := s.repo.ListByClinic(ctx, clinicID)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}

func (s *Service) UpdateService(ctx context.Context, id int64, req *model.UpdateServiceRequest) (*model.Service, error) {
	svc, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get service: %w", err)
	}

	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.DurationMinutes != nil {
		svc.DurationMinutes = *req.DurationMinutes
	}
	if req.Price != nil {
		svc.Price = *req.Price
	}

	if err := s.repo.Update(ctx, svc); err != nil {
		return nil, fmt.Errorf("failed to update service: %w", err)
	}

	s.events.Record(ctx, "service", "updated", svc)
	return svc, nil
}

// DeleteService is refused while any appointment still books the service,
// whatever the appointment's status.
func (s *Service) DeleteService(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}

	s.events.Record(ctx, "service", "deleted", map[string]int64{"id": id})
	return nil
}
