package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicore/records-api/pkg/errors"
)

// These tests need a throwaway database; point TEST_DATABASE_URL at one to
// run them. They pin the delete semantics the memory engine implements:
// a clinic delete cascades through its own services even though the
// clinic's appointments reference them, while a doctor with prescriptions
// on file cannot be deleted directly.
func testDB(t *testing.T) *sqlx.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping database tests")
	}

	db, err := sqlx.Connect("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	schema, err := os.ReadFile("../../../migrations/0001_init.up.sql")
	require.NoError(t, err)
	_, err = db.Exec(string(schema))
	require.NoError(t, err)

	_, err = db.Exec(`TRUNCATE clinics, specialties, patients, outbox_events CASCADE`)
	require.NoError(t, err)
	return db
}

func seedClinicFixture(t *testing.T, db *sqlx.DB) {
	t.Helper()
	_, err := db.Exec(`
		INSERT INTO clinics (id, name, address) VALUES (1, 'Lagos General Hospital', '14 Awolowo Road, Ikeja, Lagos');
		INSERT INTO doctors (id, clinic_id, first_name, last_name, email) VALUES (1, 1, 'Chinedu', 'Okafor', 'c.okafor@lagosgeneral.ng');
		INSERT INTO patients (id, first_name, last_name, email, date_of_birth) VALUES (1, 'Ngozi', 'Uche', 'ngozi.uche@example.com', '1988-04-14');
		INSERT INTO services (id, clinic_id, name, duration_minutes, price) VALUES (1, 1, 'General Consultation', 30, 5000.00);
		INSERT INTO appointments (id, patient_id, doctor_id, clinic_id, service_id, appointment_date) VALUES (1, 1, 1, 1, 1, '2025-07-14T09:00:00Z');
	`)
	require.NoError(t, err)
}

func TestClinicDeleteCascadesThroughOwnServices(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	seedClinicFixture(t, db)

	require.NoError(t, NewClinicRepository(db).Delete(ctx, 1))

	_, err := NewServiceRepository(db).Get(ctx, 1)
	assert.ErrorIs(t, err, errors.ErrNotFound)
	_, err = NewAppointmentRepository(db).Get(ctx, 1)
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestServiceDeleteRestrictedByAppointment(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	seedClinicFixture(t, db)

	err := NewServiceRepository(db).Delete(ctx, 1)
	assert.ErrorIs(t, err, errors.ErrRestrictedDeletion)
}

func TestDoctorDeleteRestrictedByPrescription(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	seedClinicFixture(t, db)

	_, err := db.Exec(`
		INSERT INTO prescriptions (id, appointment_id, patient_id, doctor_id, medication, dosage, duration_days)
		VALUES (1, 1, 1, 1, 'Lisinopril', '10mg daily', 30)
	`)
	require.NoError(t, err)

	doctorRepo := NewDoctorRepository(db)
	err = doctorRepo.Delete(ctx, 1)
	assert.ErrorIs(t, err, errors.ErrRestrictedDeletion)

	require.NoError(t, NewPrescriptionRepository(db).Delete(ctx, 1))
	assert.NoError(t, doctorRepo.Delete(ctx, 1))
}
