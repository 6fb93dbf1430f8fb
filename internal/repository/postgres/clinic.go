package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/clinicore/records-api/internal/model"
	"github.com/clinicore/records-api/pkg/errors"
)

func (r *clinicRepository) Create(ctx context.Context, clinic *model.Clinic) error {
	query := `
		INSERT INTO clinics (name, address, phone, email, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	if clinic.CreatedAt.IsZero() {
		clinic.CreatedAt = time.Now()
	}

	err := r.db.QueryRowxContext(ctx, query,
		clinic.Name,
		clinic.Address,
		clinic.Phone,
		clinic.Email,
		clinic.CreatedAt,
	).Scan(&clinic.ID)
	if err != nil {
		return mapWriteError(err, "clinics")
	}
	return nil
}

func (r *clinicRepository) Get(ctx context.Context, id int64) (*model.Clinic, error) {
	query := `
		SELECT id, name, address, phone, email, created_at
		FROM clinics
		WHERE id = $1
	`
	var clinic model.Clinic
	if err := r.db.GetContext(ctx, &clinic, query, id); err != nil {
		return nil, mapGetError(err, "clinics", id)
	}
	return &clinic, nil
}

func (r *clinicRepository) List(ctx context.Context) ([]*model.Clinic, error) {
	query := `
		SELECT id, name, address, phone, email, created_at
		FROM clinics
		ORDER BY id ASC
	`
	var clinics []*model.Clinic
	if err := r.db.SelectContext(ctx, &clinics, query); err != nil {
		return nil, fmt.Errorf("failed to list clinics: %w", err)
	}
	return clinics, nil
}

func (r *clinicRepository) Update(ctx context.Context, clinic *model.Clinic) error {
	query := `
		UPDATE clinics
		SET name = $1, address = $2, phone = $3, email = $4
		WHERE id = $5
	`
	result, err := r.db.ExecContext(ctx, query,
		clinic.Name,
		clinic.Address,
		clinic.Phone,
		clinic.Email,
		clinic.ID,
	)
	if err != nil {
		return mapWriteError(err, "clinics")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return errors.NotFound("clinics", clinic.ID)
	}
	return nil
}

func (r *clinicRepository) Delete(ctx context.Context, id int64) error {
	query := `
		DELETE FROM clinics
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return mapDeleteError(err, "clinics")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return errors.NotFound("clinics", id)
	}
	return nil
}

// Renumber relies on ON UPDATE CASCADE to rewrite every child foreign key.
func (r *clinicRepository) Renumber(ctx context.Context, oldID, newID int64) error {
	query := `
		UPDATE clinics
		SET id = $1
		WHERE id = $2
	`
	result, err := r.db.ExecContext(ctx, query, newID, oldID)
	if err != nil {
		return mapWriteError(err, "clinics")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return errors.NotFound("clinics", oldID)
	}
	return nil
}
