package postgres

import (
	"context"
	"fmt"

	"github.com/clinicore/records-api/internal/model"
	"github.com/clinicore/records-api/pkg/errors"
)

func (r *specialtyRepository) Create(ctx context.Context, specialty *model.Specialty) error {
	query := `
		INSERT INTO specialties (name, description)
		VALUES ($1, $2)
		RETURNING id
	`
	err := r.db.QueryRowxContext(ctx, query,
		specialty.Name,
		specialty.Description,
	).Scan(&specialty.ID)
	if err != nil {
		return mapWriteError(err, "specialties")
	}
	return nil
}

func (r *specialtyRepository) Get(ctx context.Context, id int64) (*model.Specialty, error) {
	query := `
		SELECT id, name, description
		FROM specialties
		WHERE id = $1
	`
	var specialty model.Specialty
	if err := r.db.GetContext(ctx, &specialty, query, id); err != nil {
		return nil, mapGetError(err, "specialties", id)
	}
	return &specialty, nil
}

func (r *specialtyRepository) List(ctx context.Context) ([]*model.Specialty, error) {
	query := `
		SELECT id, name, description
		FROM specialties
		ORDER BY id ASC
	`
	var specialties []*model.Specialty
	if err := r.db.SelectContext(ctx, &specialties, query); err != nil {
		return nil, fmt.Errorf("failed to list specialties: %w", err)
	}
	return specialties, nil
}

func (r *specialtyRepository) Delete(ctx context.Context, id int64) error {
	query := `
		DELETE FROM specialties
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return mapDeleteError(err, "specialties")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return errors.NotFound("specialties", id)
	}
	return nil
}
