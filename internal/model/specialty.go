package model

type Specialty struct {
	ID          int64  `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description"`
}

type CreateSpecialtyRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// DoctorSpecialty links a doctor to a specialty. Both ends cascade on delete.
type DoctorSpecialty struct {
	DoctorID    int64 `db:"doctor_id" json:"doctor_id"`
	SpecialtyID int64 `db:"specialty_id" json:"specialty_id"`
}
