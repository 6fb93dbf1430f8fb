package memory

import (
	"context"
	"time"

	"github.com/clinicore/records-api/internal/model"
)

func date(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

// Seed loads the fixed bootstrap dataset: 3 clinics, 5 specialties,
// 5 doctors, 6 doctor-specialty links, 5 patients, 5 services,
// 5 appointments, 6 payments and 4 medical records. Idempotent: a store
// that already holds clinics is left alone.
func Seed(ctx context.Context, s *Store) error {
	s.mu.RLock()
	populated := len(s.clinics) > 0
	s.mu.RUnlock()
	if populated {
		return nil
	}

	clinicRepo := NewClinicRepository(s)
	specialtyRepo := NewSpecialtyRepository(s)
	doctorRepo := NewDoctorRepository(s)
	patientRepo := NewPatientRepository(s)
	serviceRepo := NewServiceRepository(s)
	appointmentRepo := NewAppointmentRepository(s)
	paymentRepo := NewPaymentRepository(s)
	recordRepo := NewMedicalRecordRepository(s)

	clinics := []*model.Clinic{
		{ID: 1, Name: "Lagos General Hospital", Address: "14 Awolowo Road, Ikeja, Lagos", Phone: "+234-801-555-0101", Email: "info@lagosgeneral.ng", CreatedAt: date(2024, 1, 10, 8, 0)},
		{ID: 2, Name: "Abuja Central Clinic", Address: "3 Gana Street, Maitama, Abuja", Phone: "+234-802-555-0102", Email: "contact@abujacentral.ng", CreatedAt: date(2024, 2, 5, 8, 0)},
		{ID: 3, Name: "Port Harcourt Medical Centre", Address: "27 Aba Road, Port Harcourt", Phone: "+234-803-555-0103", Email: "hello@phmedical.ng", CreatedAt: date(2024, 3, 12, 8, 0)},
	}
	for _, c := range clinics {
		if err := clinicRepo.Create(ctx, c); err != nil {
			return err
		}
	}

	specialties := []*model.Specialty{
		{ID: 1, Name: "Cardiology", Description: "Heart and circulatory system"},
		{ID: 2, Name: "Pediatrics", Description: "Medical care of infants and children"},
		{ID: 3, Name: "Dermatology", Description: "Skin, hair and nail conditions"},
		{ID: 4, Name: "Orthopedics", Description: "Musculoskeletal system"},
		{ID: 5, Name: "General Medicine", Description: "Primary adult care"},
	}
	for _, sp := range specialties {
		if err := specialtyRepo.Create(ctx, sp); err != nil {
			return err
		}
	}

	doctors := []*model.Doctor{
		{ID: 1, ClinicID: 1, FirstName: "Chinedu", LastName: "Okafor", Phone: "+234-805-555-0201", Email: "c.okafor@lagosgeneral.ng"},
		{ID: 2, ClinicID: 1, FirstName: "Aisha", LastName: "Bello", Phone: "+234-805-555-0202", Email: "a.bello@lagosgeneral.ng"},
		{ID: 3, ClinicID: 2, FirstName: "Emeka", LastName: "Eze", Phone: "+234-805-555-0203", Email: "e.eze@abujacentral.ng"},
		{ID: 4, ClinicID: 2, FirstName: "Funke", LastName: "Adeyemi", Phone: "+234-805-555-0204", Email: "f.adeyemi@abujacentral.ng"},
		{ID: 5, ClinicID: 3, FirstName: "Tunde", LastName: "Balogun", Phone: "+234-805-555-0205", Email: "t.balogun@phmedical.ng"},
	}
	for _, d := range doctors {
		if err := doctorRepo.Create(ctx, d); err != nil {
			return err
		}
	}

	links := []model.DoctorSpecialty{
		{DoctorID: 1, SpecialtyID: 1},
		{DoctorID: 1, SpecialtyID: 5},
		{DoctorID: 2, SpecialtyID: 2},
		{DoctorID: 3, SpecialtyID: 4},
		{DoctorID: 4, SpecialtyID: 3},
		{DoctorID: 5, SpecialtyID: 5},
	}
	for _, l := range links {
		if err := doctorRepo.AssignSpecialty(ctx, l.DoctorID, l.SpecialtyID); err != nil {
			return err
		}
	}

	patients := []*model.Patient{
		{ID: 1, FirstName: "Ngozi", LastName: "Uche", Phone: "+234-806-555-0301", Email: "ngozi.uche@example.com", DateOfBirth: date(1988, 4, 14, 0, 0)},
		{ID: 2, FirstName: "Ibrahim", LastName: "Musa", Phone: "+234-806-555-0302", Email: "ibrahim.musa@example.com", DateOfBirth: date(1975, 9, 2, 0, 0)},
		{ID: 3, FirstName: "Yemi", LastName: "Alade", Phone: "+234-806-555-0303", Email: "yemi.alade@example.com", DateOfBirth: date(1992, 12, 30, 0, 0)},
		{ID: 4, FirstName: "Chioma", LastName: "Nwosu", Phone: "+234-806-555-0304", Email: "chioma.nwosu@example.com", DateOfBirth: date(2001, 6, 21, 0, 0)},
		{ID: 5, FirstName: "Sade", LastName: "Ogunleye", Phone: "+234-806-555-0305", Email: "sade.ogunleye@example.com", DateOfBirth: date(1964, 2, 8, 0, 0)},
	}
	for _, p := range patients {
		if err := patientRepo.Create(ctx, p); err != nil {
			return err
		}
	}

	services := []*model.Service{
		{ID: 1, ClinicID: 1, Name: "General Consultation", Description: "Walk-in consultation", DurationMinutes: 30, Price: 5000.00},
		{ID: 2, ClinicID: 1, Name: "Pediatric Checkup", Description: "Well-child visit", DurationMinutes: 45, Price: 7500.00},
		{ID: 3, ClinicID: 2, Name: "Cardiology Consult", Description: "Specialist cardiac review", DurationMinutes: 60, Price: 15000.00},
		{ID: 4, ClinicID: 2, Name: "ECG", Description: "Resting electrocardiogram", DurationMinutes: 20, Price: 10000.00},
		{ID: 5, ClinicID: 3, Name: "Skin Screening", Description: "Full-body skin examination", DurationMinutes: 40, Price: 8000.00},
	}
	for _, v := range services {
		if err := serviceRepo.Create(ctx, v); err != nil {
			return err
		}
	}

	appointments := []*model.Appointment{
		{ID: 1, PatientID: 1, DoctorID: 1, ClinicID: 1, ServiceID: 1, AppointmentDate: date(2025, 7, 14, 9, 0), Status: model.AppointmentStatusScheduled, Notes: "Recurring chest pain"},
		{ID: 2, PatientID: 2, DoctorID: 2, ClinicID: 1, ServiceID: 2, AppointmentDate: date(2025, 7, 15, 11, 30), Status: model.AppointmentStatusScheduled, Notes: "Follow-up for grandson"},
		{ID: 3, PatientID: 3, DoctorID: 3, ClinicID: 2, ServiceID: 3, AppointmentDate: date(2025, 7, 16, 10, 0), Status: model.AppointmentStatusCompleted},
		{ID: 4, PatientID: 4, DoctorID: 4, ClinicID: 2, ServiceID: 4, AppointmentDate: date(2025, 7, 18, 14, 0), Status: model.AppointmentStatusScheduled},
		{ID: 5, PatientID: 5, DoctorID: 5, ClinicID: 3, ServiceID: 5, AppointmentDate: date(2025, 7, 21, 9, 30), Status: model.AppointmentStatusCancelled, Notes: "Patient travelling"},
	}
	for _, a := range appointments {
		if err := appointmentRepo.Create(ctx, a); err != nil {
			return err
		}
	}

	payments := []*model.Payment{
		{ID: 1, AppointmentID: 1, Amount: 5000.00, PaymentDate: date(2025, 7, 10, 12, 0), Method: model.PaymentMethodTransfer},
		{ID: 2, AppointmentID: 1, Amount: 5000.00, PaymentDate: date(2025, 7, 14, 9, 5), Method: model.PaymentMethodCash},
		{ID: 3, AppointmentID: 2, Amount: 7500.00, PaymentDate: date(2025, 7, 15, 11, 0), Method: model.PaymentMethodCard},
		{ID: 4, AppointmentID: 3, Amount: 15000.00, PaymentDate: date(2025, 7, 16, 10, 45), Method: model.PaymentMethodInsurance},
		{ID: 5, AppointmentID: 4, Amount: 4000.00, PaymentDate: date(2025, 7, 18, 13, 50), Method: model.PaymentMethodCash},
		{ID: 6, AppointmentID: 4, Amount: 6000.00, PaymentDate: date(2025, 7, 18, 14, 30), Method: model.PaymentMethodTransfer},
	}
	for _, p := range payments {
		if err := paymentRepo.Create(ctx, p); err != nil {
			return err
		}
	}

	appt1, appt3 := int64(1), int64(3)
	records := []*model.MedicalRecord{
		{ID: 1, PatientID: 1, AppointmentID: &appt1, RecordDate: date(2025, 7, 14, 9, 40), Notes: "ECG referral issued; BP 150/95"},
		{ID: 2, PatientID: 3, AppointmentID: &appt3, RecordDate: date(2025, 7, 16, 10, 50), Notes: "Knee brace fitted, review in 6 weeks"},
		{ID: 3, PatientID: 5, AppointmentID: nil, RecordDate: date(2024, 11, 3, 15, 0), Notes: "Historical record migrated from paper file"},
		{ID: 4, PatientID: 2, AppointmentID: nil, RecordDate: date(2025, 1, 20, 10, 15), Notes: "Annual screening, no findings"},
	}
	for _, rec := range records {
		if err := recordRepo.Create(ctx, rec); err != nil {
			return err
		}
	}

	return nil
}
