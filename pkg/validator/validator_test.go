package validator

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Username string `json:"username" validate:"required,max=150"`
	Email    string `json:"email" validate:"omitempty,email"`
	Group    string `json:"group" validate:"required,oneof=Doctors Patients"`
}

func TestFormatValidationErrors(t *testing.T) {
	cv := NewValidator()

	err := cv.Validate(&sample{Email: "nope", Group: "Admins"})
	require.Error(t, err)

	formatted := cv.FormatValidationErrors(err)
	assert.Equal(t, "Username is required", formatted["Username"])
	assert.Equal(t, "Email must be a valid email address", formatted["Email"])
	assert.Equal(t, "Group must be one of: Doctors Patients", formatted["Group"])
}

func TestFormatValidationErrorsUnwraps(t *testing.T) {
	cv := NewValidator()

	err := cv.Validate(&sample{Group: "Doctors"})
	require.Error(t, err)

	formatted := cv.FormatValidationErrors(fmt.Errorf("item 2: %w", err))
	assert.Contains(t, formatted, "Username")
}

func TestFormatValidationErrorsIgnoresOtherErrors(t *testing.T) {
	assert.Empty(t, NewValidator().FormatValidationErrors(errors.New("boom")))
}

func TestValidatePasses(t *testing.T) {
	assert.NoError(t, NewValidator().Validate(&sample{Username: "alice", Group: "Patients"}))
}
