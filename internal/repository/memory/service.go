package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/clinicore/records-api/internal/model"
	"github.com/clinicore/records-api/internal/repository"
	"github.com/clinicore/records-api/pkg/errors"
)

type serviceRepository struct {
	store *Store
}

func NewServiceRepository(store *Store) repository.ServiceRepository {
	return &serviceRepository{store: store}
}

// Create does not reject a negative price; price sanity is left to callers.
func (r *serviceRepository) Create(ctx context.Context, service *model.Service) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if service.Name == "" {
		return errors.NotNull(tableServices, "name")
	}
	if service.DurationMinutes == 0 {
		return errors.NotNull(tableServices, "duration_minutes")
	}
	if _, ok := s.clinics[service.ClinicID]; !ok {
		return errors.ForeignKey(tableServices, "fk_services_clinic",
			fmt.Sprintf("clinic %d does not exist", service.ClinicID))
	}

	service.ID = s.nextID(tableServices, service.ID)
	cp := *service
	s.services[service.ID] = &cp
	return nil
}

func (r *serviceRepository) Get(ctx context.Context, id int64) (*model.Service, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	service, ok := s.services[id]
	if !ok {
		return nil, errors.NotFound(tableServices, id)
	}
	cp := *service
	return &cp, nil
}

func (r *serviceRepository) ListByClinic(ctx context.Context, clinicID int64) ([]*model.Service, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var services []*model.Service
	for _, v := range s.services {
		if v.ClinicID == clinicID {
			cp := *v
			services = append(services, &cp)
		}
	}
	sort.Slice(services, func(i, j int) bool { return services[i].ID < services[j].ID })
	return services, nil
}

func (r *serviceRepository) Update(ctx context.Context, service *model.Service) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.services[service.ID]
	if !ok {
		return errors.NotFound(tableServices, service.ID)
	}
	if service.Name == "" {
		return errors.NotNull(tableServices, "name")
	}
	if service.DurationMinutes == 0 {
		return errors.NotNull(tableServices, "duration_minutes")
	}

	service.ClinicID = existing.ClinicID
	cp := *service
	s.services[service.ID] = &cp
	return nil
}

func (r *serviceRepository) Delete(ctx context.Context, id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.services[id]; !ok {
		return errors.NotFound(tableServices, id)
	}
	return s.deleteRow(rowRef{table: tableServices, id: id})
}
