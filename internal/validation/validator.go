// Package validation integrates go-playground/validator with echo's
// Validator interface for request binding.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator validates bound request structs using their validate tags.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator instance.
//
// Usage in main.go:
//
//	e.Validator = validation.NewValidator()
func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

// Validate implements echo.Validator. It returns a single error listing all
// validation failures in field order.
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	var messages []string
	for _, fe := range validationErrors {
		messages = append(messages, fmt.Sprintf("%s: %s", fe.Field(), ruleMessage(fe)))
	}
	return errors.New(strings.Join(messages, "; "))
}

// ruleMessage maps a failed validation rule to a readable message.
func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "uuid":
		return "must be a valid UUID"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
