package model

type Prescription struct {
	ID            int64  `db:"id" json:"id"`
	AppointmentID int64  `db:"appointment_id" json:"appointment_id"`
	PatientID     int64  `db:"patient_id" json:"patient_id"`
	DoctorID      int64  `db:"doctor_id" json:"doctor_id"`
	Medication    string `db:"medication" json:"medication"`
	Dosage        string `db:"dosage" json:"dosage"`
	DurationDays  int    `db:"duration_days" json:"duration_days"`
	Notes         string `db:"notes" json:"notes,omitempty"`
}

type CreatePrescriptionRequest struct {
	AppointmentID int64  `json:"appointment_id" validate:"required"`
	PatientID     int64  `json:"patient_id" validate:"required"`
	DoctorID      int64  `json:"doctor_id" validate:"required"`
	Medication    string `json:"medication" validate:"required"`
	Dosage        string `json:"dosage" validate:"required"`
	DurationDays  int    `json:"duration_days" validate:"required,gt=0"`
	Notes         string `json:"notes"`
}
