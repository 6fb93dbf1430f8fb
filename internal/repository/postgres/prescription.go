package postgres

import (
	"context"
	"fmt"

	"github.com/clinicore/records-api/internal/model"
	"github.com/clinicore/records-api/pkg/errors"
)

func (r *prescriptionRepository) Create(ctx context.Context, prescription *model.Prescription) error {
	query := `
		INSERT INTO prescriptions (appointment_id, patient_id, doctor_id, medication, dosage, duration_days, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := r.db.QueryRowxContext(ctx, query,
		prescription.AppointmentID,
		prescription.PatientID,
		prescription.DoctorID,
		prescription.Medication,
		prescription.Dosage,
		prescription.DurationDays,
		prescription.Notes,
	).Scan(&prescription.ID)
	if err != nil {
		return mapWriteError(err, "prescriptions")
	}
	return nil
}

func (r *prescriptionRepository) Get(ctx context.Context, id int64) (*model.Prescription, error) {
	query := `
		SELECT id, appointment_id, patient_id, doctor_id, medication, dosage, duration_days, notes
		FROM prescriptions
		WHERE id = $1
	`
	var prescription model.Prescription
	if err := r.db.GetContext(ctx, &prescription, query, id); err != nil {
		return nil, mapGetError(err, "prescriptions", id)
	}
	return &prescription, nil
}

func (r *prescriptionRepository) ListByPatient(ctx context.Context, patientID int64) ([]*model.Prescription, error) {
	query := `
		SELECT id, appointment_id, patient_id, doctor_id, medication, dosage, duration_days, notes
		FROM prescriptions
		WHERE patient_id = $1
		ORDER BY id ASC
	`
	var prescriptions []*model.Prescription
	if err := r.db.SelectContext(ctx, &prescriptions, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list prescriptions: %w", err)
	}
	return prescriptions, nil
}

func (r *prescriptionRepository) Delete(ctx context.Context, id int64) error {
	query := `
		DELETE FROM prescriptions
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return mapDeleteError(err, "prescriptions")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return errors.NotFound("prescriptions", id)
	}
	return nil
}
