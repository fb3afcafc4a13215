// Package validation contains custom validation functions for the application to use for input validation.
package validation

import (
	"TareasWeb/dates"

	"github.com/go-playground/validator/v10"
)

// New returns a validator with the custom validations of this package registered.
func New() *validator.Validate {
	validate := validator.New()
	if err := validate.RegisterValidation("fieldValidator", FieldValidator); err != nil {
		panic(err)
	}
	if err := validate.RegisterValidation("dateValidator", DateValidator); err != nil {
		panic(err)
	}
	return validate
}

// FieldValidator is a validation function that checks if the field value is empty.
// It returns true if the field value is not empty, and false otherwise.
func FieldValidator(fl validator.FieldLevel) bool {
	return fl.Field().String() != ""
}

// DateValidator accepts the date strings the dates package can parse.
func DateValidator(fl validator.FieldLevel) bool {
	return dates.Valid(fl.Field().String())
}
