// Package validator adapts go-playground/validator to echo's Validator interface.
package validator

import (
	domainerrors "taskpad/internal/domain/errors"

	"github.com/go-playground/validator/v10"
)

// CustomValidator wraps a validator instance so handlers can call c.Validate.
type CustomValidator struct {
	validate *validator.Validate
}

// New creates a CustomValidator with struct-tag validation enabled.
func New() *CustomValidator {
	return &CustomValidator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Validate runs struct-tag validation and maps failures to the domain error,
// so the error handler renders them as a 400 instead of a 500.
func (v *CustomValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
