package model

type Service struct {
	ID              int64   `db:"id" json:"id"`
	ClinicID        int64   `db:"clinic_id" json:"clinic_id"`
	Name            string  `db:"name" json:"name"`
	Description     string  `db:"description" json:"description"`
	DurationMinutes int     `db:"duration_minutes" json:"duration_minutes"`
	Price           float64 `db:"price" json:"price"`
}

type CreateServiceRequest struct {
	ClinicID        int64   `json:"clinic_id" binding:"required"`
	Name            string  `json:"name" binding:"required"`
	Description     string  `json:"description"`
	DurationMinutes int     `json:"duration_minutes" binding:"required,gt=0"`
	Price           float64 `json:"price"`
}

type UpdateServiceRequest struct {
	Name            *string  `json:"name"`
	Description     *string  `json:"description"`
	DurationMinutes *int     `json:"duration_minutes" binding:"omitempty,gt=0"`
	Price           *float64 `json:"price"`
}
