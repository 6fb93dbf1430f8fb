package postgres

import (
	"context"
	"fmt"

	"github.com/clinicore/records-api/internal/model"
	"github.com/clinicore/records-api/pkg/errors"
)

func (r *medicalRecordRepository) Create(ctx context.Context, record *model.MedicalRecord) error {
	query := `
		INSERT INTO medical_records (patient_id, appointment_id, record_date, notes)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.db.QueryRowxContext(ctx, query,
		record.PatientID,
		record.AppointmentID,
		record.RecordDate,
		record.Notes,
	).Scan(&record.ID)
	if err != nil {
		return mapWriteError(err, "medical_records")
	}
	return nil
}

func (r *medicalRecordRepository) Get(ctx context.Context, id int64) (*model.MedicalRecord, error) {
	query := `
		SELECT id, patient_id, appointment_id, record_date, notes
		FROM medical_records
		WHERE id = $1
	`
	var record model.MedicalRecord
	if err := r.db.GetContext(ctx, &record, query, id); err != nil {
		return nil, mapGetError(err, "medical_records", id)
	}
	return &record, nil
}

func (r *medicalRecordRepository) ListByPatient(ctx context.Context, patientID int64) ([]*model.MedicalRecord, error) {
	query := `
		SELECT id, patient_id, appointment_id, record_date, notes
		FROM medical_records
		WHERE patient_id = $1
		ORDER BY id ASC
	`
	var records []*model.MedicalRecord
	if err := r.db.SelectContext(ctx, &records, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list medical records: %w", err)
	}
	return records, nil
}

func (r *medicalRecordRepository) Delete(ctx context.Context, id int64) error {
	query := `
		DELETE FROM medical_records
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return mapDeleteError(err, "medical_records")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return errors.NotFound("medical_records", id)
	}
	return nil
}
