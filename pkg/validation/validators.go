package validation

import (
	"regexp"

	"go-candidate-backend/internal/domain"

	"github.com/go-playground/validator/v10"
)

// Regex patterns
var (
	// Letters (accented included), combining marks, spaces and hyphens
	nameRegex = regexp.MustCompile(`^[\p{L}\p{M} -]+$`)

	// 9-digit local mobile/landline format
	phoneRegex = regexp.MustCompile(`^[679][0-9]{8}$`)
)

// New returns a validator with the custom candidate tags registered.
func New() *validator.Validate {
	v := validator.New()
	RegisterValidators(v)
	return v
}

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("valid_name", ValidName)
	_ = v.RegisterValidation("valid_phone", ValidPhone)
	_ = v.RegisterValidation("valid_date", ValidDate)
}

// ValidName validates that a string contains only name characters.
// Rejects digits and symbols.
func ValidName(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true // Optional, use required if needed
	}
	return nameRegex.MatchString(val)
}

// ValidPhone validates a phone number structure
func ValidPhone(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return phoneRegex.MatchString(val)
}

// ValidDate accepts YYYY-MM-DD or RFC 3339 values.
func ValidDate(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	_, err := domain.ParseDate(val)
	return err == nil
}
