package postgres

import (
	"context"
	"fmt"

	"github.com/clinicore/records-api/internal/model"
	"github.com/clinicore/records-api/pkg/errors"
)

func (r *doctorRepository) Create(ctx context.Context, doctor *model.Doctor) error {
	query := `
		INSERT INTO doctors (clinic_id, first_name, last_name, phone, email)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.db.QueryRowxContext(ctx, query,
		doctor.ClinicID,
		doctor.FirstName,
		doctor.LastName,
		doctor.Phone,
		doctor.Email,
	).Scan(&doctor.ID)
	if err != nil {
		return mapWriteError(err, "doctors")
	}
	return nil
}

func (r *doctorRepository) Get(ctx context.Context, id int64) (*model.Doctor, error) {
	query := `
		SELECT id, clinic_id, first_name, last_name, phone, email
		FROM doctors
		WHERE id = $1
	`
	var doctor model.Doctor
	if err := r.db.GetContext(ctx, &doctor, query, id); err != nil {
		return nil, mapGetError(err, "doctors", id)
	}
	return &doctor, nil
}

func (r *doctorRepository) ListByClinic(ctx context.Context, clinicID int64) ([]*model.Doctor, error) {
	query := `
		SELECT id, clinic_id, first_name, last_name, phone, email
		FROM doctors
		WHERE clinic_id = $1
		ORDER BY id ASC
	`
	var doctors []*model.Doctor
	if err := r.db.SelectContext(ctx, &doctors, query, clinicID); err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, nil
}

func (r *doctorRepository) Update(ctx context.Context, doctor *model.Doctor) error {
	query := `
		UPDATE doctors
		SET clinic_id = $1, first_name = $2, last_name = $3, phone = $4, email = $5
		WHERE id = $6
	`
	result, err := r.db.ExecContext(ctx, query,
		doctor.ClinicID,
		doctor.FirstName,
		doctor.LastName,
		doctor.Phone,
		doctor.Email,
		doctor.ID,
	)
	if err != nil {
		return mapWriteError(err, "doctors")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return errors.NotFound("doctors", doctor.ID)
	}
	return nil
}

func (r *doctorRepository) Delete(ctx context.Context, id int64) error {
	query := `
		DELETE FROM doctors
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return mapDeleteError(err, "doctors")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return errors.NotFound("doctors", id)
	}
	return nil
}

func (r *doctorRepository) AssignSpecialty(ctx context.Context, doctorID, specialtyID int64) error {
	query := `
		INSERT INTO doctor_specialties (doctor_id, specialty_id)
		VALUES ($1, $2)
	`
	if _, err := r.db.ExecContext(ctx, query, doctorID, specialtyID); err != nil {
		return mapWriteError(err, "doctor_specialties")
	}
	return nil
}

func (r *doctorRepository) RemoveSpecialty(ctx context.Context, doctorID, specialtyID int64) error {
	query := `
		DELETE FROM doctor_specialties
		WHERE doctor_id = $1 AND specialty_id = $2
	`
	result, err := r.db.ExecContext(ctx, query, doctorID, specialtyID)
	if err != nil {
		return mapDeleteError(err, "doctor_specialties")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return errors.NotFound("doctor_specialties", fmt.Sprintf("%d/%d", doctorID, specialtyID))
	}
	return nil
}

func (r *doctorRepository) ListSpecialties(ctx context.Context, doctorID int64) ([]*model.Specialty, error) {
	query := `
		SELECT s.id, s.name, s.description
		FROM specialties s
		JOIN doctor_specialties ds ON ds.specialty_id = s.id
		WHERE ds.doctor_id = $1
		ORDER BY s.id ASC
	`
	var specialties []*model.Specialty
	if err := r.db.SelectContext(ctx, &specialties, query, doctorID); err != nil {
		return nil, fmt.Errorf("failed to list doctor specialties: %w", err)
	}
	return specialties, nil
}
