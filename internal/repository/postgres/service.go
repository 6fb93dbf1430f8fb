package postgres

import (
	"context"
	"fmt"

	"github.com/clinicore/records-api/internal/model"
	"github.com/clinicore/records-api/pkg/errors"
)

func (r *serviceRepository) Create(ctx context.Context, service *model.Service) error {
	query := `
		INSERT INTO services (clinic_id, name, description, duration_minutes, price)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.db.QueryRowxContext(ctx, query,
		service.ClinicID,
		service.Name,
		service.Description,
		service.DurationMinutes,
		service.Price,
	).Scan(&service.ID)
	if err != nil {
		return mapWriteError(err, "services")
	}
	return nil
}

func (r *serviceRepository) Get(ctx context.Context, id int64) (*model.Service, error) {
	query := `
		SELECT id, clinic_id, name, description, duration_minutes, price
		FROM services
		WHERE id = $1
	`
	var service model.Service
	if err := r.db.GetContext(ctx, &service, query, id); err != nil {
		return nil, mapGetError(err, "services", id)
	}
	return &service, nil
}

func (r *serviceRepository) ListByClinic(ctx context.Context, clinicID int64) ([]*model.Service, error) {
	query := `
		SELECT id, clinic_id, name, description, duration_minutes, price
		FROM services
		WHERE clinic_id = $1
		ORDER BY id ASC
	`
	var services []*model.Service
	if err := r.db.SelectContext(ctx, &services, query, clinicID); err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}

func (r *serviceRepository) Update(ctx context.Context, service *model.Service) error {
	query := `
		UPDATE services
		SET name = $1, description = $2, duration_minutes = $3, price = $4
		WHERE id = $5
	`
	result, err := r.db.ExecContext(ctx, query,
		service.Name,
		service.Description,
		service.DurationMinutes,
		service.Price,
		service.ID,
	)
	if err != nil {
		return mapWriteError(err, "services")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return errors.NotFound("services", service.ID)
	}
	return nil
}

// Delete is refused by the engine while any appointment references the
// service (ON DELETE RESTRICT); the driver error surfaces as
// ErrRestrictedDeletion.
func (r *serviceRepository) Delete(ctx context.Context, id int64) error {
	query := `
		DELETE FROM services
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return mapDeleteError(err, "services")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return errors.NotFound("services", id)
	}
	return nil
}
