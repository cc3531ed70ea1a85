// Package validation wires go-playground/validator into Echo's Validator
// hook so handlers can call c.Validate on bound request DTOs.
package validation

import "github.com/go-playground/validator/v10"

// RequestValidator adapts a validator.Validate instance to echo.Validator.
type RequestValidator struct {
	validate *validator.Validate
}

func New() *RequestValidator {
	return &RequestValidator{validate: validator.New()}
}

// Validate checks struct tags on i and returns the raw validation error.
// Handlers translate a non-nil result into a 400 response.
func (v *RequestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}
