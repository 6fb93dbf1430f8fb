package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/clinicore/records-api/internal/model"
	"github.com/clinicore/records-api/internal/repository"
	"github.com/clinicore/records-api/pkg/errors"
)

type specialtyRepository struct {
	store *Store
}

func NewSpecialtyRepository(store *Store) repository.SpecialtyRepository {
	return &specialtyRepository{store: store}
}

func (r *specialtyRepository) Create(ctx context.Context, specialty *model.Specialty) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if specialty.Name == "" {
		return errors.NotNull(tableSpecialties, "name")
	}
	key := indexKey(specialty.Name)
	if _, dup := s.specialtyNames[key]; dup {
		return errors.Unique(tableSpecialties, "uq_specialties_name",
			fmt.Sprintf("specialty %q already exists", specialty.Name))
	}

	specialty.ID = s.nextID(tableSpecialties, specialty.ID)
	cp := *specialty
	s.specialties[specialty.ID] = &cp
	s.specialtyNames[key] = specialty.ID
	return nil
}

func (r *specialtyRepository) Get(ctx context.Context, id int64) (*model.Specialty, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	specialty, ok := s.specialties[id]
	if !ok {
		return nil, errors.NotFound(tableSpecialties, id)
	}
	cp := *specialty
	return &cp, nil
}

func (r *specialtyRepository) List(ctx context.Context) ([]*model.Specialty, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	specialties := make([]*model.Specialty, 0, len(s.specialties))
	for _, sp := range s.specialties {
		cp := *sp
		specialties = append(specialties, &cp)
	}
	sort.Slice(specialties, func(i, j int) bool { return specialties[i].ID < specialties[j].ID })
	return specialties, nil
}

func (r *specialtyRepository) Delete(ctx context.Context, id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.specialties[id]; !ok {
		return errors.NotFound(tableSpecialties, id)
	}
	return s.deleteRow(rowRef{table: tableSpecialties, id: id})
}
