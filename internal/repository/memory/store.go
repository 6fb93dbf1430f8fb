// Package memory implements the clinical records store as an embedded engine:
// typed tables behind a single lock, with foreign-key, unique and not-null
// checks applied atomically with every mutation and delete semantics
// (cascade / restrict / set-null) evaluated over an explicit dependency graph.
package memory

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/clinicore/records-api/internal/model"
)

const (
	tableClinics           = "clinics"
	tableSpecialties       = "specialties"
	tableDoctors           = "doctors"
	tableDoctorSpecialties = "doctor_specialties"
	tablePatients          = "patients"
	tableServices          = "services"
	tableAppointments      = "appointments"
	tablePayments          = "payments"
	tablePrescriptions     = "prescriptions"
	tableMedicalRecords    = "medical_records"
)

// linkKey is the composite key of the doctor_specialties junction table.
type linkKey struct {
	DoctorID    int64
	SpecialtyID int64
}

// Store owns every table. All access goes through mu so constraint checks
// are atomic with the triggering insert or delete: there is no window where
// a dangling reference or duplicate unique value is observable.
type Store struct {
	mu  sync.RWMutex
	seq map[string]int64

	clinics           map[int64]*model.Clinic
	specialties       map[int64]*model.Specialty
	doctors           map[int64]*model.Doctor
	doctorSpecialties map[linkKey]*model.DoctorSpecialty
	patients          map[int64]*model.Patient
	services          map[int64]*model.Service
	appointments      map[int64]*model.Appointment
	payments          map[int64]*model.Payment
	prescriptions     map[int64]*model.Prescription
	medicalRecords    map[int64]*model.MedicalRecord

	// Unique indexes, keyed case-insensitively (utf8mb4_unicode_ci
	// collation semantics).
	specialtyNames map[string]int64
	doctorEmails   map[string]int64
	patientEmails  map[string]int64

	outbox      map[uuid.UUID]*model.OutboxEvent
	outboxOrder []uuid.UUID
}

func NewStore() *Store {
	return &Store{
		seq:               make(map[string]int64),
		clinics:           make(map[int64]*model.Clinic),
		specialties:       make(map[int64]*model.Specialty),
		doctors:           make(map[int64]*model.Doctor),
		doctorSpecialties: make(map[linkKey]*model.DoctorSpecialty),
		patients:          make(map[int64]*model.Patient),
		services:          make(map[int64]*model.Service),
		appointments:      make(map[int64]*model.Appointment),
		payments:          make(map[int64]*model.Payment),
		prescriptions:     make(map[int64]*model.Prescription),
		medicalRecords:    make(map[int64]*model.MedicalRecord),
		specialtyNames:    make(map[string]int64),
		doctorEmails:      make(map[string]int64),
		patientEmails:     make(map[string]int64),
		outbox:            make(map[uuid.UUID]*model.OutboxEvent),
	}
}

// nextID assigns the next id for a table, honoring explicitly provided ids
// (the seed loader uses fixed ids) by bumping the sequence past them.
func (s *Store) nextID(table string, requested int64) int64 {
	if requested > 0 {
		if requested > s.seq[table] {
			s.seq[table] = requested
		}
		return requested
	}
	s.seq[table]++
	return s.seq[table]
}

func indexKey(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}
