package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/clinicore/records-api/internal/model"
	"github.com/clinicore/records-api/internal/repository"
	"github.com/clinicore/records-api/pkg/errors"
)

type doctorRepository struct {
	store *Store
}

func NewDoctorRepository(store *Store) repository.DoctorRepository {
	return &doctorRepository{store: store}
}

func (r *doctorRepository) Create(ctx context.Context, doctor *model.Doctor) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if doctor.FirstName == "" {
		return errors.NotNull(tableDoctors, "first_name")
	}
	if doctor.LastName == "" {
		return errors.NotNull(tableDoctors, "last_name")
	}
	if doctor.Email == "" {
		return errors.NotNull(tableDoctors, "email")
	}
	if _, ok := s.clinics[doctor.ClinicID]; !ok {
		return errors.ForeignKey(tableDoctors, "fk_doctors_clinic",
			fmt.Sprintf("clinic %d does not exist", doctor.ClinicID))
	}
	key := indexKey(doctor.Email)
	if _, dup := s.doctorEmails[key]; dup {
		return errors.Unique(tableDoctors, "uq_doctors_email",
			fmt.Sprintf("email %q already in use", doctor.Email))
	}

	doctor.ID = s.nextID(tableDoctors, doctor.ID)
	cp := *doctor
	s.doctors[doctor.ID] = &cp
	s.doctorEmails[key] = doctor.ID
	return nil
}

func (r *doctorRepository) Get(ctx context.Context, id int64) (*model.Doctor, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	doctor, ok := s.doctors[id]
	if !ok {
		return nil, errors.NotFound(tableDoctors, id)
	}
	cp := *doctor
	return &cp, nil
}

func (r *doctorRepository) ListByClinic(ctx context.Context, clinicID int64) ([]*model.Doctor, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var doctors []*model.Doctor
	for _, d := range s.doctors {
		if d.ClinicID == clinicID {
			cp := *d
			doctors = append(doctors, &cp)
		}
	}
	sort.Slice(doctors, func(i, j int) bool { return doctors[i].ID < doctors[j].ID })
	return doctors, nil
}

func (r *doctorRepository) Update(ctx context.Context, doctor *model.Doctor) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.doctors[doctor.ID]
	if !ok {
		return errors.NotFound(tableDoctors, doctor.ID)
	}
	if doctor.FirstName == "" {
		return errors.NotNull(tableDoctors, "first_name")
	}
	if doctor.LastName == "" {
		return errors.NotNull(tableDoctors, "last_name")
	}
	if doctor.Email == "" {
		return errors.NotNull(tableDoctors, "email")
	}
	if _, ok := s.clinics[doctor.ClinicID]; !ok {
		return errors.ForeignKey(tableDoctors, "fk_doctors_clinic",
			fmt.Sprintf("clinic %d does not exist", doctor.ClinicID))
	}

	oldKey, newKey := indexKey(existing.Email), indexKey(doctor.Email)
	if oldKey != newKey {
		if owner, dup := s.doctorEmails[newKey]; dup && owner != doctor.ID {
			return errors.Unique(tableDoctors, "uq_doctors_email",
				fmt.Sprintf("email %q already in use", doctor.Email))
		}
		delete(s.doctorEmails, oldKey)
		s.doctorEmails[newKey] = doctor.ID
	}

	cp := *doctor
	s.doctors[doctor.ID] = &cp
	return nil
}

func (r *doctorRepository) Delete(ctx context.Context, id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.doctors[id]; !ok {
		return errors.NotFound(tableDoctors, id)
	}
	return s.deleteRow(rowRef{table: tableDoctors, id: id})
}

func (r *doctorRepository) AssignSpecialty(ctx context.Context, doctorID, specialtyID int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.doctors[doctorID]; !ok {
		return errors.ForeignKey(tableDoctorSpecialties, "fk_doctor_specialties_doctor",
			fmt.Sprintf("doctor %d does not exist", doctorID))
	}
	if _, ok := s.specialties[specialtyID]; !ok {
		return errors.ForeignKey(tableDoctorSpecialties, "fk_doctor_specialties_specialty",
			fmt.Sprintf("specialty %d does not exist", specialtyID))
	}
	key := linkKey{DoctorID: doctorID, SpecialtyID: specialtyID}
	if _, dup := s.doctorSpecialties[key]; dup {
		return errors.Unique(tableDoctorSpecialties, "pkey",
			fmt.Sprintf("doctor %d already has specialty %d", doctorID, specialtyID))
	}
	s.doctorSpecialties[key] = &model.DoctorSpecialty{DoctorID: doctorID, SpecialtyID: specialtyID}
	return nil
}

func (r *doctorRepository) RemoveSpecialty(ctx context.Context, doctorID, specialtyID int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	key := linkKey{DoctorID: doctorID, SpecialtyID: specialtyID}
	if _, ok := s.doctorSpecialties[key]; !ok {
		return errors.NotFound(tableDoctorSpecialties, fmt.Sprintf("%d/%d", doctorID, specialtyID))
	}
	delete(s.doctorSpecialties, key)
	return nil
}

func (r *doctorRepository) ListSpecialties(ctx context.Context, doctorID int64) ([]*model.Specialty, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.doctors[doctorID]; !ok {
		return nil, errors.NotFound(tableDoctors, doctorID)
	}
	var specialties []*model.Specialty
	for key := range s.doctorSpecialties {
		if key.DoctorID != doctorID {
			continue
		}
		if sp, ok := s.specialties[key.SpecialtyID]; ok {
			cp := *sp
			specialties = append(specialties, &cp)
		}
	}
	sort.Slice(specialties, func(i, j int) bool { return specialties[i].ID < specialties[j].ID })
	return specialties, nil
}
