package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/clinicore/records-api/internal/model"
	"github.com/clinicore/records-api/internal/repository"
	"github.com/clinicore/records-api/pkg/errors"
)

type appointmentRepository struct {
	store *Store
}

func NewAppointmentRepository(store *Store) repository.AppointmentRepository {
	return &appointmentRepository{store: store}
}

func (r *appointmentRepository) checkRefs(a *model.Appointment) error {
	s := r.store
	if _, ok := s.patients[a.PatientID]; !ok {
		return errors.ForeignKey(tableAppointments, "fk_appointments_patient",
			fmt.Sprintf("patient %d does not exist", a.PatientID))
	}
	if _, ok := s.doctors[a.DoctorID]; !ok {
		return errors.ForeignKey(tableAppointments, "fk_appointments_doctor",
			fmt.Sprintf("doctor %d does not exist", a.DoctorID))
	}
	if _, ok := s.clinics[a.ClinicID]; !ok {
		return errors.ForeignKey(tableAppointments, "fk_appointments_clinic",
			fmt.Sprintf("clinic %d does not exist", a.ClinicID))
	}
	if _, ok := s.services[a.ServiceID]; !ok {
		return errors.ForeignKey(tableAppointments, "fk_appointments_service",
			fmt.Sprintf("service %d does not exist", a.ServiceID))
	}
	return nil
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if appointment.AppointmentDate.IsZero() {
		return errors.NotNull(tableAppointments, "appointment_date")
	}
	if appointment.Status == "" {
		appointment.Status = model.AppointmentStatusScheduled
	}
	if !appointment.Status.Valid() {
		return errors.NotNull(tableAppointments, "status")
	}
	if err := r.checkRefs(appointment); err != nil {
		return err
	}

	appointment.ID = s.nextID(tableAppointments, appointment.ID)
	cp := *appointment
	s.appointments[appointment.ID] = &cp
	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id int64) (*model.Appointment, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	appointment, ok := s.appointments[id]
	if !ok {
		return nil, errors.NotFound(tableAppointments, id)
	}
	cp := *appointment
	return &cp, nil
}

func (r *appointmentRepository) ListByClinic(ctx context.Context, clinicID int64) ([]*model.Appointment, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var appointments []*model.Appointment
	for _, a := range s.appointments {
		if a.ClinicID == clinicID {
			cp := *a
			appointments = append(appointments, &cp)
		}
	}
	sort.Slice(appointments, func(i, j int) bool {
		return appointments[i].AppointmentDate.Before(appointments[j].AppointmentDate)
	})
	return appointments, nil
}

// Update never transitions status on its own: every change is an external
// write, including Scheduled -> Completed / Cancelled.
func (r *appointmentRepository) Update(ctx context.Context, appointment *model.Appointment) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.appointments[appointment.ID]; !ok {
		return errors.NotFound(tableAppointments, appointment.ID)
	}
	if appointment.AppointmentDate.IsZero() {
		return errors.NotNull(tableAppointments, "appointment_date")
	}
	if !appointment.Status.Valid() {
		return errors.NotNull(tableAppointments, "status")
	}
	if err := r.checkRefs(appointment); err != nil {
		return err
	}

	cp := *appointment
	s.appointments[appointment.ID] = &cp
	return nil
}

func (r *appointmentRepository) Delete(ctx context.Context, id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.appointments[id]; !ok {
		return errors.NotFound(tableAppointments, id)
	}
	return s.deleteRow(rowRef{table: tableAppointments, id: id})
}

// ListUpcoming joins appointments to patients, doctors and services for one
// clinic, ordered by appointment date ascending. Nothing here prevents two
// appointments for the same doctor at the same timestamp.
func (r *appointmentRepository) ListUpcoming(ctx context.Context, clinicID int64) ([]*model.UpcomingAppointment, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var rows []*model.UpcomingAppointment
	for _, a := range s.appointments {
		if a.ClinicID != clinicID {
			continue
		}
		patient, ok := s.patients[a.PatientID]
		if !ok {
			continue
		}
		doctor, ok := s.doctors[a.DoctorID]
		if !ok {
			continue
		}
		service, ok := s.services[a.ServiceID]
		if !ok {
			continue
		}
		rows = append(rows, &model.UpcomingAppointment{
			AppointmentID:    a.ID,
			PatientFirstName: patient.FirstName,
			PatientLastName:  patient.LastName,
			DoctorFirstName:  doctor.FirstName,
			DoctorLastName:   doctor.LastName,
			ServiceName:      service.Name,
			AppointmentDate:  a.AppointmentDate,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].AppointmentDate.Equal(rows[j].AppointmentDate) {
			return rows[i].AppointmentID < rows[j].AppointmentID
		}
		return rows[i].AppointmentDate.Before(rows[j].AppointmentDate)
	})
	return rows, nil
}
