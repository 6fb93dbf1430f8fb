package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/clinicore/records-api/internal/model"
	"github.com/clinicore/records-api/internal/repository"
	"github.com/clinicore/records-api/pkg/errors"
)

type prescriptionRepository struct {
	store *Store
}

func NewPrescriptionRepository(store *Store) repository.PrescriptionRepository {
	return &prescriptionRepository{store: store}
}

func (r *prescriptionRepository) Create(ctx context.Context, prescription *model.Prescription) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if prescription.Medication == "" {
		return errors.NotNull(tablePrescriptions, "medication")
	}
	if prescription.Dosage == "" {
		return errors.NotNull(tablePrescriptions, "dosage")
	}
	if prescription.DurationDays == 0 {
		return errors.NotNull(tablePrescriptions, "duration_days")
	}
	if _, ok := s.appointments[prescription.AppointmentID]; !ok {
		return errors.ForeignKey(tablePrescriptions, "fk_prescriptions_appointment",
			fmt.Sprintf("appointment %d does not exist", prescription.AppointmentID))
	}
	if _, ok := s.patients[prescription.PatientID]; !ok {
		return errors.ForeignKey(tablePrescriptions, "fk_prescriptions_patient",
			fmt.Sprintf("patient %d does not exist", prescription.PatientID))
	}
	if _, ok := s.doctors[prescription.DoctorID]; !ok {
		return errors.ForeignKey(tablePrescriptions, "fk_prescriptions_doctor",
			fmt.Sprintf("doctor %d does not exist", prescription.DoctorID))
	}

	prescription.ID = s.nextID(tablePrescriptions, prescription.ID)
	cp := *prescription
	s.prescriptions[prescription.ID] = &cp
	return nil
}

func (r *prescriptionRepository) Get(ctx context.Context, id int64) (*model.Prescription, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	prescription, ok := s.prescriptions[id]
	if !ok {
		return nil, errors.NotFound(tablePrescriptions, id)
	}
	cp := *prescription
	return &cp, nil
}

func (r *prescriptionRepository) ListByPatient(ctx context.Context, patientID int64) ([]*model.Prescription, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var prescriptions []*model.Prescription
	for _, p := range s.prescriptions {
		if p.PatientID == patientID {
			cp := *p
			prescriptions = append(prescriptions, &cp)
		}
	}
	sort.Slice(prescriptions, func(i, j int) bool { return prescriptions[i].ID < prescriptions[j].ID })
	return prescriptions, nil
}

func (r *prescriptionRepository) Delete(ctx context.Context, id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.prescriptions[id]; !ok {
		return errors.NotFound(tablePrescriptions, id)
	}
	return s.deleteRow(rowRef{table: tablePrescriptions, id: id})
}
