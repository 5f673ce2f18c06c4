package models

import (
	"errors"
	"strings"
)

// ErrInvalidModel is wrapped by every ValidationErrors.
var ErrInvalidModel = errors.New("invalid model")

// FieldError is a validation failure for one field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationErrors collects field errors.
type ValidationErrors struct {
	Errors []FieldError
}

// AddMessage records a failure for field.
func (v *ValidationErrors) AddMessage(field, message string) {
	v.Errors = append(v.Errors, FieldError{Field: field, Message: message})
}

// Err returns nil when no failures were recorded.
func (v *ValidationErrors) Err() error {
	if len(v.Errors) == 0 {
		return nil
	}
	return v
}

func (v *ValidationErrors) Error() string {
	parts := make([]string, 0, len(v.Errors))
	for _, e := range v.Errors {
		parts = append(parts, e.Field+": "+e.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (v *ValidationErrors) Unwrap() error {
	return ErrInvalidModel
}
