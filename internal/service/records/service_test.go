package records

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicore/records-api/internal/model"
	"github.com/clinicore/records-api/internal/repository/memory"
	"github.com/clinicore/records-api/internal/service/event"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	s := memory.NewStore()
	require.NoError(t, memory.Seed(context.Background(), s))

	events := event.NewService(memory.NewOutboxRepository(s), zerolog.Nop())
	return NewService(
		memory.NewPrescriptionRepository(s),
		memory.NewMedicalRecordRepository(s),
		events,
		zerolog.Nop(),
	)
}

func TestCreatePrescription(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	prescription, err := svc.CreatePrescription(ctx, &model.CreatePrescriptionRequest{
		AppointmentID: 1,
		PatientID:     1,
		DoctorID:      1,
		Medication:    "Amlodipine",
		Dosage:        "5mg daily",
		DurationDays:  30,
	})
	require.NoError(t, err)
	assert.NotZero(t, prescription.ID)

	listed, err := svc.ListPrescriptionsByPatient(ctx, 1)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Amlodipine", listed[0].Medication)
}

func TestCreatePrescriptionValidation(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.CreatePrescription(ctx, &model.CreatePrescriptionRequest{
		AppointmentID: 1,
		PatientID:     1,
		DoctorID:      1,
		Dosage:        "5mg daily",
		DurationDays:  30,
	})
	assert.Error(t, err)

	_, err = svc.CreatePrescription(ctx, &model.CreatePrescriptionRequest{
		AppointmentID: 1,
		PatientID:     1,
		DoctorID:      1,
		Medication:    "Amlodipine",
		Dosage:        "5mg daily",
		DurationDays:  -1,
	})
	assert.Error(t, err)
}

func TestCreateMedicalRecordWithAndWithoutAppointment(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	appt := int64(1)
	linked, err := svc.CreateMedicalRecord(ctx, &model.CreateMedicalRecordRequest{
		PatientID:     1,
		AppointmentID: &appt,
		RecordDate:    time.Date(2025, 7, 14, 10, 0, 0, 0, time.UTC),
		Notes:         "BP recheck normal",
	})
	require.NoError(t, err)
	require.NotNil(t, linked.AppointmentID)

	standalone, err := svc.CreateMedicalRecord(ctx, &model.CreateMedicalRecordRequest{
		PatientID:  2,
		RecordDate: time.Date(2025, 7, 20, 9, 0, 0, 0, time.UTC),
		Notes:      "Phone consultation summary",
	})
	require.NoError(t, err)
	assert.Nil(t, standalone.AppointmentID)

	_, err = svc.CreateMedicalRecord(ctx, &model.CreateMedicalRecordRequest{
		PatientID:  2,
		RecordDate: time.Date(2025, 7, 20, 9, 0, 0, 0, time.UTC),
	})
	assert.Error(t, err, "notes are required")
}
