// Package validation provides the local form checks run before any request
// leaves the client.
package validation

import "fmt"

// Error is one failed rule.
type Error struct {
	Field   string
	Message string
}

func (e Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validator accumulates failed rules.
type Validator struct {
	errors []Error
}

// New creates a new validator.
func New() *Validator {
	return &Validator{}
}

// Required fails when value is empty. Callers trim first when surrounding
// blanks must not count.
func (v *Validator) Required(field, value string) *Validator {
	if value == "" {
		v.errors = append(v.errors, Error{Field: field, Message: "is required"})
	}
	return v
}

// Match fails when value differs from other.
func (v *Validator) Match(field, value, other string) *Validator {
	if value != other {
		v.errors = append(v.errors, Error{Field: field, Message: "does not match"})
	}
	return v
}

// HasErrors returns true if there are validation errors
func (v *Validator) HasErrors() bool {
	return len(v.errors) > 0
}

// Errors returns all validation errors
func (v *Validator) Errors() []Error {
	return v.errors
}

// FirstError returns the first error message or empty string if no errors
func (v *Validator) FirstError() string {
	if len(v.errors) > 0 {
		return v.errors[0].Error()
	}
	return ""
}
