package model

type Doctor struct {
	ID        int64  `db:"id" json:"id"`
	ClinicID  int64  `db:"clinic_id" json:"clinic_id"`
	FirstName string `db:"first_name" json:"first_name"`
	LastName  string `db:"last_name" json:"last_name"`
	Phone     string `db:"phone" json:"phone"`
	Email     string `db:"email" json:"email"`
}

type CreateDoctorRequest struct {
	ClinicID  int64  `json:"clinic_id" binding:"required"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Phone     string `json:"phone"`
	Email     string `json:"email" binding:"required,email"`
}

type UpdateDoctorRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email" binding:"omitempty,email"`
}
