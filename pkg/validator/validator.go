package validator

import (
	validators "github.com/go-playground/validator/v10"
)

// Validator interface
type Validator interface {
	ValidateStruct(s any) error
}

type validator struct {
	validator *validators.Validate
}

// New Validator func
func New() Validator {
	return &validator{
		validator: validators.New(validators.WithRequiredStructEnabled()),
	}
}

// ValidateStruct func
func (v *validator) ValidateStruct(s any) error {
	return v.validator.Struct(s)
}
