package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/clinicore/records-api/internal/model"
	"github.com/clinicore/records-api/internal/repository"
	"github.com/clinicore/records-api/pkg/errors"
)

type patientRepository struct {
	store *Store
}

func NewPatientRepository(store *Store) repository.PatientRepository {
	return &patientRepository{store: store}
}

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if patient.FirstName == "" {
		return errors.NotNull(tablePatients, "first_name")
	}
	if patient.LastName == "" {
		return errors.NotNull(tablePatients, "last_name")
	}
	if patient.Email == "" {
		return errors.NotNull(tablePatients, "email")
	}
	if patient.DateOfBirth.IsZero() {
		return errors.NotNull(tablePatients, "date_of_birth")
	}
	key := indexKey(patient.Email)
	if _, dup := s.patientEmails[key]; dup {
		return errors.Unique(tablePatients, "uq_patients_email",
			fmt.Sprintf("email %q already in use", patient.Email))
	}

	patient.ID = s.nextID(tablePatients, patient.ID)
	cp := *patient
	s.patients[patient.ID] = &cp
	s.patientEmails[key] = patient.ID
	return nil
}

func (r *patientRepository) Get(ctx context.Context, id int64) (*model.Patient, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	patient, ok := s.patients[id]
	if !ok {
		return nil, errors.NotFound(tablePatients, id)
	}
	cp := *patient
	return &cp, nil
}

func (r *patientRepository) List(ctx context.Context) ([]*model.Patient, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	patients := make([]*model.Patient, 0, len(s.patients))
	for _, p := range s.patients {
		cp := *p
		patients = append(patients, &cp)
	}
	sort.Slice(patients, func(i, j int) bool { return patients[i].ID < patients[j].ID })
	return patients, nil
}

func (r *patientRepository) Update(ctx context.Context, patient *model.Patient) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.patients[patient.ID]
	if !ok {
		return errors.NotFound(tablePatients, patient.ID)
	}
	if patient.FirstName == "" {
		return errors.NotNull(tablePatients, "first_name")
	}
	if patient.LastName == "" {
		return errors.NotNull(tablePatients, "last_name")
	}
	if patient.Email == "" {
		return errors.NotNull(tablePatients, "email")
	}
	if patient.DateOfBirth.IsZero() {
		return errors.NotNull(tablePatients, "date_of_birth")
	}

	oldKey, newKey := indexKey(existing.Email), indexKey(patient.Email)
	if oldKey != newKey {
		if owner, dup := s.patientEmails[newKey]; dup && owner != patient.ID {
			return errors.Unique(tablePatients, "uq_patients_email",
				fmt.Sprintf("email %q already in use", patient.Email))
		}
		delete(s.patientEmails, oldKey)
		s.patientEmails[newKey] = patient.ID
	}

	cp := *patient
	s.patients[patient.ID] = &cp
	return nil
}

func (r *patientRepository) Delete(ctx context.Context, id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.patients[id]; !ok {
		return errors.NotFound(tablePatients, id)
	}
	return s.deleteRow(rowRef{table: tablePatients, id: id})
}
