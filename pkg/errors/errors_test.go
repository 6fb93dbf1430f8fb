package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstraintErrorUnwrapsToSentinel(t *testing.T) {
	err := ForeignKey("doctors", "fk_doctors_clinic", "clinic 99 does not exist")
	assert.ErrorIs(t, err, ErrForeignKeyViolation)

	wrapped := fmt.Errorf("failed to create doctor: %w", err)
	assert.ErrorIs(t, wrapped, ErrForeignKeyViolation)

	var ce *ConstraintError
	assert.True(t, errors.As(wrapped, &ce))
	assert.Equal(t, "doctors", ce.Table)
	assert.Equal(t, "fk_doctors_clinic", ce.Constraint)
}

func TestStatusCodes(t *testing.T) {
	tests := []struct {
		err  *ConstraintError
		want int
	}{
		{ForeignKey("appointments", "fk_appointments_service", ""), http.StatusConflict},
		{Unique("specialties", "uq_specialties_name", ""), http.StatusConflict},
		{Restricted("services", "fk_appointments_service", ""), http.StatusConflict},
		{NotNull("doctors", "email"), http.StatusBadRequest},
		{NotFound("clinics", 42), http.StatusNotFound},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.err.StatusCode(), tt.err.Error())
	}
}

func TestErrorMessageIncludesContext(t *testing.T) {
	err := Unique("specialties", "uq_specialties_name", `specialty "Cardiology" already exists`)
	assert.Contains(t, err.Error(), "specialties")
	assert.Contains(t, err.Error(), "uq_specialties_name")
	assert.Contains(t, err.Error(), "Cardiology")
}
