package scheduling

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

func newTestService(t *testing.T) (*Service, *memory.Store) {
	t.Helper()
	s := memory.NewStore()
	require.NoError(t, memory.Seed(context.Background(), s))

	events := event.NewService(memory.NewOutboxRepository(s), zerolog.Nop())
	svc := NewService(memory.NewAppointmentRepository(s), events, time.Minute, zerolog.Nop())
	return svc, s
}

func TestListUpcomingServesFromCache(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	first, err := svc.ListUpcoming(ctx, 1)
	require.NoError(t, err)
	require.Len(t, first, 2)

	second, err := svc.ListUpcoming(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCreateInvalidatesUpcomingCache(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	warm, err := svc.ListUpcoming(ctx, 1)
	require.NoError(t, err)
	require.Len(t, warm, 2)

	created, err := svc.CreateAppointment(ctx, &model.CreateAppointmentRequest{
		PatientID:       3,
		DoctorID:        1,
		ClinicID:        1,
		ServiceID:       1,
		AppointmentDate: time.Date(2025, 7, 20, 9, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusScheduled, created.Status)

	rows, err := svc.ListUpcoming(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestDeleteInvalidatesUpcomingCache(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	warm, err := svc.ListUpcoming(ctx, 1)
	require.NoError(t, err)
	require.Len(t, warm, 2)

	require.NoError(t, svc.DeleteAppointment(ctx, 1))

	rows, err := svc.ListUpcoming(ctx, 1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(2), rows[0].AppointmentID)
}

func TestUpdateStatusRoundTrips(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	completed := model.AppointmentStatusCompleted
	updated, err := svc.UpdateAppointment(ctx, 1, &model.UpdateAppointmentRequest{Status: &completed})
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCompleted, updated.Status)

	bogus := model.AppointmentStatus("Pending")
	_, err = svc.UpdateAppointment(ctx, 1, &model.UpdateAppointmentRequest{Status: &bogus})
	assert.Error(t, err)
}
