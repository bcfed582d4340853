// Package validation provides input validation utilities.
package validation

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validate is the shared validator instance for request payloads.
var Validate = validator.New(validator.WithRequiredStructEnabled())

// Struct validates a request payload and returns a human-readable error for
// the first failing field, or nil when the payload is valid.
func Struct(payload any) error {
	err := Validate.Struct(payload)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return err
	}
	return fmt.Errorf("%s", fieldMessage(verrs[0]))
}

func fieldMessage(err validator.FieldError) string {
	field := strings.ToLower(err.Field())
	switch err.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required", field)
	case "email":
		return fmt.Sprintf("The %s field must be a valid email address", field)
	case "min":
		return fmt.Sprintf("The %s field must have at least %s characters", field, err.Param())
	case "max":
		return fmt.Sprintf("The %s field must have at most %s characters", field, err.Param())
	default:
		return fmt.Sprintf("The %s field is not valid", field)
	}
}

// ValidateLink checks that an optional link field is a parseable absolute URL.
// Empty values are allowed.
func ValidateLink(field, raw string) error {
	if raw == "" {
		return nil
	}
	if len(raw) > 255 {
		return fmt.Errorf("%s must not exceed 255 characters", field)
	}
	parsed, err := url.ParseRequestURI(raw)
	if err != nil || parsed.Host == "" {
		return fmt.Errorf("%s must be a valid URL", field)
	}
	return nil
}

// ValidateFilename checks that an optional photo reference is a bare filename,
// not a path or binary content. Empty values are allowed.
func ValidateFilename(name string) error {
	if name == "" {
		return nil
	}
	if len(name) > 255 {
		return fmt.Errorf("photo filename must not exceed 255 characters")
	}
	if strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
		return fmt.Errorf("photo filename must not contain path separators")
	}
	if strings.ContainsRune(name, 0) {
		return fmt.Errorf("photo filename contains invalid characters")
	}
	return nil
}

// ValidatePassword enforces the minimum password length for new accounts.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}
	if len(password) > 128 {
		return fmt.Errorf("password must not exceed 128 characters")
	}
	return nil
}
