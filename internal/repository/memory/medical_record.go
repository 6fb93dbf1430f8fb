package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/clinicore/records-api/internal/model"
	"github.com/clinicore/records-api/internal/repository"
	"github.com/clinicore/records-api/pkg/errors"
)

type medicalRecordRepository struct {
	store *Store
}

func NewMedicalRecordRepository(store *Store) repository.MedicalRecordRepository {
	return &medicalRecordRepository{store: store}
}

func (r *medicalRecordRepository) Create(ctx context.Context, record *model.MedicalRecord) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if record.RecordDate.IsZero() {
		return errors.NotNull(tableMedicalRecords, "record_date")
	}
	if record.Notes == "" {
		return errors.NotNull(tableMedicalRecords, "notes")
	}
	if _, ok := s.patients[record.PatientID]; !ok {
		return errors.ForeignKey(tableMedicalRecords, "fk_medical_records_patient",
			fmt.Sprintf("patient %d does not exist", record.PatientID))
	}
	if record.AppointmentID != nil {
		if _, ok := s.appointments[*record.AppointmentID]; !ok {
			return errors.ForeignKey(tableMedicalRecords, "fk_medical_records_appointment",
				fmt.Sprintf("appointment %d does not exist", *record.AppointmentID))
		}
	}

	record.ID = s.nextID(tableMedicalRecords, record.ID)
	cp := *record
	if record.AppointmentID != nil {
		id := *record.AppointmentID
		cp.AppointmentID = &id
	}
	s.medicalRecords[record.ID] = &cp
	return nil
}

func (r *medicalRecordRepository) Get(ctx context.Context, id int64) (*model.MedicalRecord, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.medicalRecords[id]
	if !ok {
		return nil, errors.NotFound(tableMedicalRecords, id)
	}
	cp := *record
	if record.AppointmentID != nil {
		id := *record.AppointmentID
		cp.AppointmentID = &id
	}
	return &cp, nil
}

func (r *medicalRecordRepository) ListByPatient(ctx context.Context, patientID int64) ([]*model.MedicalRecord, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var records []*model.MedicalRecord
	for _, rec := range s.medicalRecords {
		if rec.PatientID != patientID {
			continue
		}
		cp := *rec
		if rec.AppointmentID != nil {
			id := *rec.AppointmentID
			cp.AppointmentID = &id
		}
		records = append(records, &cp)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	return records, nil
}

func (r *medicalRecordRepository) Delete(ctx context.Context, id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.medicalRecords[id]; !ok {
		return errors.NotFound(tableMedicalRecords, id)
	}
	return s.deleteRow(rowRef{table: tableMedicalRecords, id: id})
}
