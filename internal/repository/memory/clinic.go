package memory

import (
	"context"
	"sort"
	"time"

	"github.com/clinicore/records-api/internal/model"
	"github.com/clinicore/records-api/internal/repository"
	"github.com/clinicore/records-api/pkg/errors"
)

type clinicRepository struct {
	store *Store
}

func NewClinicRepository(store *Store) repository.ClinicRepository {
	return &clinicRepository{store: store}
}

func (r *clinicRepository) Create(ctx context.Context, clinic *model.Clinic) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if clinic.Name == "" {
		return errors.NotNull(tableClinics, "name")
	}
	if clinic.Address == "" {
		return errors.NotNull(tableClinics, "address")
	}

	clinic.ID = s.nextID(tableClinics, clinic.ID)
	if clinic.CreatedAt.IsZero() {
		clinic.CreatedAt = time.Now()
	}
	cp := *clinic
	s.clinics[clinic.ID] = &cp
	return nil
}

func (r *clinicRepository) Get(ctx context.Context, id int64) (*model.Clinic, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	clinic, ok := s.clinics[id]
	if !ok {
		return nil, errors.NotFound(tableClinics, id)
	}
	cp := *clinic
	return &cp, nil
}

func (r *clinicRepository) List(ctx context.Context) ([]*model.Clinic, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	clinics := make([]*model.Clinic, 0, len(s.clinics))
	for _, c := range s.clinics {
		cp := *c
		clinics = append(clinics, &cp)
	}
	sort.Slice(clinics, func(i, j int) bool { return clinics[i].ID < clinics[j].ID })
	return clinics, nil
}

func (r *clinicRepository) Update(ctx context.Context, clinic *model.Clinic) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.clinics[clinic.ID]
	if !ok {
		return errors.NotFound(tableClinics, clinic.ID)
	}
	if clinic.Name == "" {
		return errors.NotNull(tableClinics, "name")
	}
	if clinic.Address == "" {
		return errors.NotNull(tableClinics, "address")
	}

	clinic.CreatedAt = existing.CreatedAt
	cp := *clinic
	s.clinics[clinic.ID] = &cp
	return nil
}

func (r *clinicRepository) Delete(ctx context.Context, id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.clinics[id]; !ok {
		return errors.NotFound(tableClinics, id)
	}
	return s.deleteRow(rowRef{table: tableClinics, id: id})
}

func (r *clinicRepository) Renumber(ctx context.Context, oldID, newID int64) error {
	return r.store.Renumber(tableClinics, oldID, newID)
}
