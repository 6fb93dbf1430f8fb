package postgres

import (
	"context"
	"fmt"

	"github.com/clinicore/records-api/internal/model"
	"github.com/clinicore/records-api/pkg/errors"
)

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	query := `
		INSERT INTO appointments (patient_id, doctor_id, clinic_id, service_id, appointment_date, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	if appointment.Status == "" {
		appointment.Status = model.AppointmentStatusScheduled
	}

	err := r.db.QueryRowxContext(ctx, query,
		appointment.PatientID,
		appointment.DoctorID,
		appointment.ClinicID,
		appointment.ServiceID,
		appointment.AppointmentDate,
		appointment.Status,
		appointment.Notes,
	).Scan(&appointment.ID)
	if err != nil {
		return mapWriteError(err, "appointments")
	}
	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id int64) (*model.Appointment, error) {
	query := `
		SELECT id, patient_id, doctor_id, clinic_id, service_id, appointment_date, status, notes
		FROM appointments
		WHERE id = $1
	`
	var appointment model.Appointment
	if err := r.db.GetContext(ctx, &appointment, query, id); err != nil {
		return nil, mapGetError(err, "appointments", id)
	}
	return &appointment, nil
}

func (r *appointmentRepository) ListByClinic(ctx context.Context, clinicID int64) ([]*model.Appointment, error) {
	query := `
		SELECT id, patient_id, doctor_id, clinic_id, service_id, appointment_date, status, notes
		FROM appointments
		WHERE clinic_id = $1
		ORDER BY appointment_date ASC
	`
	var appointments []*model.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query, clinicID); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) Update(ctx context.Context, appointment *model.Appointment) error {
	query := `
		UPDATE appointments
		SET appointment_date = $1, status = $2, notes = $3
		WHERE id = $4
	`
	result, err := r.db.ExecContext(ctx, query,
		appointment.AppointmentDate,
		appointment.Status,
		appointment.Notes,
		appointment.ID,
	)
	if err != nil {
		return mapWriteError(err, "appointments")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return errors.NotFound("appointments", appointment.ID)
	}
	return nil
}

func (r *appointmentRepository) Delete(ctx context.Context, id int64) error {
	query := `
		DELETE FROM appointments
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return mapDeleteError(err, "appointments")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return errors.NotFound("appointments", id)
	}
	return nil
}

func (r *appointmentRepository) ListUpcoming(ctx context.Context, clinicID int64) ([]*model.UpcomingAppointment, error) {
	query := `
		SELECT a.id AS appointment_id,
			   p.first_name AS patient_first_name,
			   p.last_name AS patient_last_name,
			   d.first_name AS doctor_first_name,
			   d.last_name AS doctor_last_name,
			   s.name AS service_name,
			   a.appointment_date
		FROM appointments a
		JOIN patients p ON p.id = a.patient_id
		JOIN doctors d ON d.id = a.doctor_id
		JOIN services s ON s.id = a.service_id
		WHERE a.clinic_id = $1
		ORDER BY a.appointment_date ASC, a.id ASC
	`
	var rows []*model.UpcomingAppointment
	if err := r.db.SelectContext(ctx, &rows, query, clinicID); err != nil {
		return nil, fmt.Errorf("failed to list upcoming appointments: %w", err)
	}
	return rows, nil
}
