package validator

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	return &CustomValidator{
		validator: validator.New(),
	}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func (cv *CustomValidator) FormatValidationErrors(err error) map[string]string {
	errors := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !asValidationErrors(err, &validationErrors) {
		return errors
	}

	for _, e := range validationErrors {
		field := e.Field()
		switch e.Tag() {
		case "required":
			errors[field] = field + " is required"
		case "required_if":
			errors[field] = field + " is required when " + e.Param()
		case "email":
			errors[field] = field + " must be a valid email address"
		case "oneof":
			errors[field] = field + " must be one of: " + e.Param()
		case "min":
			errors[field] = field + " must be at least " + e.Param() + " characters"
		case "max":
			errors[field] = field + " must be at most " + e.Param() + " characters"
		case "gte":
			errors[field] = field + " must be greater than or equal to " + e.Param()
		case "gt":
			errors[field] = field + " must be greater than " + e.Param()
		case "lte":
			errors[field] = field + " must be less than or equal to " + e.Param()
		default:
			errors[field] = field + " is invalid"
		}
	}

	return errors
}

func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	return errors.As(err, target)
}
