package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicore/records-api/internal/model"
	"github.com/clinicore/records-api/pkg/errors"
)

func seededStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore()
	require.NoError(t, Seed(context.Background(), s))
	return s
}

func TestSeedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := seededStore(t)

	require.NoError(t, Seed(ctx, s))

	clinics, err := NewClinicRepository(s).List(ctx)
	require.NoError(t, err)
	assert.Len(t, clinics, 3)

	specialties, err := NewSpecialtyRepository(s).List(ctx)
	require.NoError(t, err)
	assert.Len(t, specialties, 5)

	patients, err := NewPatientRepository(s).List(ctx)
	require.NoError(t, err)
	assert.Len(t, patients, 5)
}

func TestClinicDeleteCascadesClosure(t *testing.T) {
	ctx := context.Background()
	s := seededStore(t)

	require.NoError(t, NewClinicRepository(s).Delete(ctx, 1))

	// Doctors, services and appointments of clinic 1 are gone.
	doctors, err := NewDoctorRepository(s).ListByClinic(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, doctors)

	_, err = NewServiceRepository(s).Get(ctx, 1)
	assert.ErrorIs(t, err, errors.ErrNotFound)
	_, err = NewServiceRepository(s).Get(ctx, 2)
	assert.ErrorIs(t, err, errors.ErrNotFound)

	appointmentRepo := NewAppointmentRepository(s)
	_, err = appointmentRepo.Get(ctx, 1)
	assert.ErrorIs(t, err, errors.ErrNotFound)
	_, err = appointmentRepo.Get(ctx, 2)
	assert.ErrorIs(t, err, errors.ErrNotFound)

	// Payments under those appointments follow.
	payments, err := NewPaymentRepository(s).ListByAppointment(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, payments)

	// Specialty links of the deleted doctors are dropped; the specialties stay.
	specs, err := NewDoctorRepository(s).ListSpecialties(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, specs)
	_, err = NewSpecialtyRepository(s).Get(ctx, 1)
	assert.NoError(t, err)

	// The medical record written under appointment 1 survives with the
	// reference cleared; its patient is untouched.
	record, err := NewMedicalRecordRepository(s).Get(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, record.AppointmentID)
	assert.Equal(t, int64(1), record.PatientID)

	_, err = NewPatientRepository(s).Get(ctx, 1)
	assert.NoError(t, err)

	// Other clinics are untouched.
	_, err = NewClinicRepository(s).Get(ctx, 2)
	assert.NoError(t, err)
	_, err = appointmentRepo.Get(ctx, 3)
	assert.NoError(t, err)
}

func TestClinicDeleteWithPrescriptionsInsideClosure(t *testing.T) {
	ctx := context.Background()
	s := seededStore(t)
	prescriptionRepo := NewPrescriptionRepository(s)

	// The prescription hangs off appointment 1, which the clinic cascade
	// removes, so it does not block the delete.
	require.NoError(t, prescriptionRepo.Create(ctx, &model.Prescription{
		AppointmentID: 1,
		PatientID:     1,
		DoctorID:      1,
		Medication:    "Amlodipine",
		Dosage:        "5mg daily",
		DurationDays:  60,
	}))

	require.NoError(t, NewClinicRepository(s).Delete(ctx, 1))

	_, err := prescriptionRepo.Get(ctx, 1)
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestClinicDeleteRestrictedByOutsidePrescription(t *testing.T) {
	ctx := context.Background()
	s := seededStore(t)

	// Doctor 1 wrote a prescription under appointment 3, which belongs to
	// clinic 2 and survives the cascade. The surviving reference blocks the
	// delete and leaves the store untouched.
	require.NoError(t, NewPrescriptionRepository(s).Create(ctx, &model.Prescription{
		AppointmentID: 3,
		PatientID:     3,
		DoctorID:      1,
		Medication:    "Atorvastatin",
		Dosage:        "20mg nightly",
		DurationDays:  90,
	}))

	err := NewClinicRepository(s).Delete(ctx, 1)
	assert.ErrorIs(t, err, errors.ErrRestrictedDeletion)

	_, err = NewDoctorRepository(s).Get(ctx, 1)
	assert.NoError(t, err)
	_, err = NewServiceRepository(s).Get(ctx, 1)
	assert.NoError(t, err)
}

func TestServiceDeleteRestrictedByAppointments(t *testing.T) {
	ctx := context.Background()
	s := seededStore(t)
	serviceRepo := NewServiceRepository(s)

	err := serviceRepo.Delete(ctx, 1)
	assert.ErrorIs(t, err, errors.ErrRestrictedDeletion)

	// Cancelled appointments block the delete too.
	err = serviceRepo.Delete(ctx, 5)
	assert.ErrorIs(t, err, errors.ErrRestrictedDeletion)

	// The delete must not have touched anything.
	svc, err := serviceRepo.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "General Consultation", svc.Name)

	// Once the blocking appointment goes away, the service is deletable.
	require.NoError(t, NewAppointmentRepository(s).Delete(ctx, 5))
	assert.NoError(t, serviceRepo.Delete(ctx, 5))
}

func TestDoctorDeleteRestrictedByPrescription(t *testing.T) {
	ctx := context.Background()
	s := seededStore(t)
	doctorRepo := NewDoctorRepository(s)
	prescriptionRepo := NewPrescriptionRepository(s)

	// Any prescription naming the doctor blocks the delete, even one under
	// the doctor's own appointment that the cascade would have removed.
	require.NoError(t, prescriptionRepo.Create(ctx, &model.Prescription{
		AppointmentID: 1,
		PatientID:     1,
		DoctorID:      1,
		Medication:    "Lisinopril",
		Dosage:        "10mg daily",
		DurationDays:  30,
	}))

	err := doctorRepo.Delete(ctx, 1)
	assert.ErrorIs(t, err, errors.ErrRestrictedDeletion)

	// The refused delete left the doctor and the doctor's rows queryable.
	doctor, err := doctorRepo.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Okafor", doctor.LastName)
	_, err = NewAppointmentRepository(s).Get(ctx, 1)
	assert.NoError(t, err)

	// Removing the prescription unblocks the delete.
	require.NoError(t, prescriptionRepo.Delete(ctx, 1))
	assert.NoError(t, doctorRepo.Delete(ctx, 1))
}

func TestAppointmentDeleteCascadesAndNullsRecords(t *testing.T) {
	ctx := context.Background()
	s := seededStore(t)

	require.NoError(t, NewAppointmentRepository(s).Delete(ctx, 1))

	payments, err := NewPaymentRepository(s).ListByAppointment(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, payments)

	record, err := NewMedicalRecordRepository(s).Get(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, record.AppointmentID)
	assert.Equal(t, "ECG referral issued; BP 150/95", record.Notes)
}

func TestPatientDeleteTakesClinicalHistory(t *testing.T) {
	ctx := context.Background()
	s := seededStore(t)

	require.NoError(t, NewPrescriptionRepository(s).Create(ctx, &model.Prescription{
		AppointmentID: 1,
		PatientID:     1,
		DoctorID:      1,
		Medication:    "Atenolol",
		Dosage:        "50mg daily",
		DurationDays:  30,
	}))

	require.NoError(t, NewPatientRepository(s).Delete(ctx, 1))

	_, err := NewAppointmentRepository(s).Get(ctx, 1)
	assert.ErrorIs(t, err, errors.ErrNotFound)

	prescriptions, err := NewPrescriptionRepository(s).ListByPatient(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, prescriptions)

	records, err := NewMedicalRecordRepository(s).ListByPatient(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestTotalPaidSumsPartialPayments(t *testing.T) {
	ctx := context.Background()
	s := seededStore(t)
	paymentRepo := NewPaymentRepository(s)

	total, err := paymentRepo.TotalPaid(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total.AppointmentID)
	assert.Equal(t, 10000.00, total.Total)
	assert.Equal(t, 2, total.Count)

	payments, err := paymentRepo.ListByAppointment(ctx, 1)
	require.NoError(t, err)
	require.Len(t, payments, 2)
	assert.Equal(t, model.PaymentMethodTransfer, payments[0].Method)
	assert.Equal(t, model.PaymentMethodCash, payments[1].Method)

	// No payments is a zero total, not an error.
	total, err = paymentRepo.TotalPaid(ctx, 5)
	require.NoError(t, err)
	assert.Zero(t, total.Total)
	assert.Zero(t, total.Count)
}

func TestListUpcomingJoinsAndOrders(t *testing.T) {
	ctx := context.Background()
	s := seededStore(t)

	rows, err := NewAppointmentRepository(s).ListUpcoming(ctx, 1)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, int64(1), rows[0].AppointmentID)
	assert.Equal(t, "Ngozi", rows[0].PatientFirstName)
	assert.Equal(t, "Uche", rows[0].PatientLastName)
	assert.Equal(t, "Chinedu", rows[0].DoctorFirstName)
	assert.Equal(t, "Okafor", rows[0].DoctorLastName)
	assert.Equal(t, "General Consultation", rows[0].ServiceName)

	assert.Equal(t, int64(2), rows[1].AppointmentID)
	assert.Equal(t, "Aisha", rows[1].DoctorFirstName)
	assert.Equal(t, "Pediatric Checkup", rows[1].ServiceName)
	assert.True(t, rows[0].AppointmentDate.Before(rows[1].AppointmentDate))
}

func TestDanglingReferencesRejected(t *testing.T) {
	ctx := context.Background()
	s := seededStore(t)

	err := NewDoctorRepository(s).Create(ctx, &model.Doctor{
		ClinicID: 99, FirstName: "Bola", LastName: "Ahmed", Email: "b.ahmed@example.com",
	})
	assert.ErrorIs(t, err, errors.ErrForeignKeyViolation)

	err = NewDoctorRepository(s).AssignSpecialty(ctx, 1, 99)
	assert.ErrorIs(t, err, errors.ErrForeignKeyViolation)

	err = NewAppointmentRepository(s).Create(ctx, &model.Appointment{
		PatientID: 1, DoctorID: 1, ClinicID: 1, ServiceID: 99,
		AppointmentDate: date(2025, 8, 1, 9, 0),
	})
	assert.ErrorIs(t, err, errors.ErrForeignKeyViolation)

	err = NewPrescriptionRepository(s).Create(ctx, &model.Prescription{
		AppointmentID: 99, PatientID: 1, DoctorID: 1,
		Medication: "Ibuprofen", Dosage: "400mg", DurationDays: 5,
	})
	assert.ErrorIs(t, err, errors.ErrForeignKeyViolation)
}

func TestUniqueConstraintsAreCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	s := seededStore(t)

	err := NewSpecialtyRepository(s).Create(ctx, &model.Specialty{Name: "cardiology"})
	assert.ErrorIs(t, err, errors.ErrUniqueViolation)

	err = NewDoctorRepository(s).Create(ctx, &model.Doctor{
		ClinicID: 1, FirstName: "Ada", LastName: "Obi", Email: "C.OKAFOR@lagosgeneral.ng",
	})
	assert.ErrorIs(t, err, errors.ErrUniqueViolation)

	err = NewPatientRepository(s).Create(ctx, &model.Patient{
		FirstName: "Ngozi", LastName: "Uche", Email: "Ngozi.Uche@example.com",
		DateOfBirth: date(1988, 4, 14, 0, 0),
	})
	assert.ErrorIs(t, err, errors.ErrUniqueViolation)

	// Deleting the owner frees the name again.
	require.NoError(t, NewSpecialtyRepository(s).Delete(ctx, 1))
	assert.NoError(t, NewSpecialtyRepository(s).Create(ctx, &model.Specialty{Name: "cardiology"}))
}

func TestDuplicateSpecialtyLinkRejected(t *testing.T) {
	ctx := context.Background()
	s := seededStore(t)

	err := NewDoctorRepository(s).AssignSpecialty(ctx, 1, 1)
	assert.ErrorIs(t, err, errors.ErrUniqueViolation)
}

func TestNotNullChecks(t *testing.T) {
	ctx := context.Background()
	s := seededStore(t)

	err := NewDoctorRepository(s).Create(ctx, &model.Doctor{ClinicID: 1, FirstName: "Ada"})
	assert.ErrorIs(t, err, errors.ErrNotNullViolation)

	err = NewSpecialtyRepository(s).Create(ctx, &model.Specialty{})
	assert.ErrorIs(t, err, errors.ErrNotNullViolation)

	err = NewPrescriptionRepository(s).Create(ctx, &model.Prescription{
		AppointmentID: 1, PatientID: 1, DoctorID: 1, Medication: "Ibuprofen",
	})
	assert.ErrorIs(t, err, errors.ErrNotNullViolation)
}

func TestRenumberClinicPropagates(t *testing.T) {
	ctx := context.Background()
	s := seededStore(t)
	clinicRepo := NewClinicRepository(s)

	require.NoError(t, clinicRepo.Renumber(ctx, 1, 10))

	_, err := clinicRepo.Get(ctx, 1)
	assert.ErrorIs(t, err, errors.ErrNotFound)
	clinic, err := clinicRepo.Get(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, "Lagos General Hospital", clinic.Name)

	doctors, err := NewDoctorRepository(s).ListByClinic(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, doctors, 2)

	services, err := NewServiceRepository(s).ListByClinic(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, services, 2)

	appointments, err := NewAppointmentRepository(s).ListByClinic(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, appointments, 2)

	// New clinics must not collide with the renumbered id.
	fresh := &model.Clinic{Name: "Ibadan Teaching Hospital", Address: "Queen Elizabeth Road, Ibadan"}
	require.NoError(t, clinicRepo.Create(ctx, fresh))
	assert.Equal(t, int64(11), fresh.ID)
}

func TestRenumberRejectsCollisionAndUnknown(t *testing.T) {
	ctx := context.Background()
	s := seededStore(t)
	clinicRepo := NewClinicRepository(s)

	err := clinicRepo.Renumber(ctx, 1, 2)
	assert.ErrorIs(t, err, errors.ErrUniqueViolation)

	err = clinicRepo.Renumber(ctx, 99, 100)
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestRepositoriesReturnCopies(t *testing.T) {
	ctx := context.Background()
	s := seededStore(t)
	clinicRepo := NewClinicRepository(s)

	clinic, err := clinicRepo.Get(ctx, 1)
	require.NoError(t, err)
	clinic.Name = "Mutated"

	again, err := clinicRepo.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Lagos General Hospital", again.Name)
}

func TestAppointmentDefaultsToScheduled(t *testing.T) {
	ctx := context.Background()
	s := seededStore(t)
	appointmentRepo := NewAppointmentRepository(s)

	appt := &model.Appointment{
		PatientID: 1, DoctorID: 1, ClinicID: 1, ServiceID: 1,
		AppointmentDate: date(2025, 9, 1, 10, 0),
	}
	require.NoError(t, appointmentRepo.Create(ctx, appt))
	assert.Equal(t, model.AppointmentStatusScheduled, appt.Status)

	err := appointmentRepo.Create(ctx, &model.Appointment{
		PatientID: 1, DoctorID: 1, ClinicID: 1, ServiceID: 1,
		AppointmentDate: date(2025, 9, 2, 10, 0),
		Status:          model.AppointmentStatus("Pending"),
	})
	assert.ErrorIs(t, err, errors.ErrNotNullViolation)
}
