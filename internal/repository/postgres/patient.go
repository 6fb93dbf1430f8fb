package postgres

import (
	"context"
	"fmt"

	"github.com/clinicore/records-api/internal/model"
	"github.com/clinicore/records-api/pkg/errors"
)

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	query := `
		INSERT INTO patients (first_name, last_name, phone, email, date_of_birth)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.db.QueryRowxContext(ctx, query,
		patient.FirstName,
		patient.LastName,
		patient.Phone,
		patient.Email,
		patient.DateOfBirth,
	).Scan(&patient.ID)
	if err != nil {
		return mapWriteError(err, "patients")
	}
	return nil
}

func (r *patientRepository) Get(ctx context.Context, id int64) (*model.Patient, error) {
	query := `
		SELECT id, first_name, last_name, phone, email, date_of_birth
		FROM patients
		WHERE id = $1
	`
	var patient model.Patient
	if err := r.db.GetContext(ctx, &patient, query, id); err != nil {
		return nil, mapGetError(err, "patients", id)
	}
	return &patient, nil
}

func (r *patientRepository) List(ctx context.Context) ([]*model.Patient, error) {
	query := `
		SELECT id, first_name, last_name, phone, email, date_of_birth
		FROM patients
		ORDER BY id ASC
	`
	var patients []*model.Patient
	if err := r.db.SelectContext(ctx, &patients, query); err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}

func (r *patientRepository) Update(ctx context.Context, patient *model.Patient) error {
	query := `
		UPDATE patients
		SET first_name = $1, last_name = $2, phone = $3, email = $4, date_of_birth = $5
		WHERE id = $6
	`
	result, err := r.db.ExecContext(ctx, query,
		patient.FirstName,
		patient.LastName,
		patient.Phone,
		patient.Email,
		patient.DateOfBirth,
		patient.ID,
	)
	if err != nil {
		return mapWriteError(err, "patients")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return errors.NotFound("patients", patient.ID)
	}
	return nil
}

func (r *patientRepository) Delete(ctx context.Context, id int64) error {
	query := `
		DELETE FROM patients
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return mapDeleteError(err, "patients")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return errors.NotFound("patients", id)
	}
	return nil
}
