package validation

import (
	"go-candidate-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

// Messages returned to clients. Each one names the first rule a submission broke.
const (
	MsgInvalidBody        = "Invalid request body"
	MsgInvalidName        = "Invalid name"
	MsgInvalidEmail       = "Invalid email"
	MsgInvalidPhone       = "Invalid phone"
	MsgInvalidAddress     = "Invalid address"
	MsgInvalidInstitution = "Invalid institution"
	MsgInvalidTitle       = "Invalid title"
	MsgInvalidCompany     = "Invalid company"
	MsgInvalidPosition    = "Invalid position"
	MsgInvalidDescription = "Invalid description"
	MsgInvalidDate        = "Invalid date"
	MsgInvalidDateOrder   = "Invalid date order"
	MsgInvalidCV          = "Invalid CV data"
)

// Tags for each field, kept next to their messages so the pairing is visible.
const (
	tagName        = "required,min=2,max=100,valid_name"
	tagEmail       = "required,email"
	tagPhone       = "omitempty,valid_phone"
	tagAddress     = "omitempty,max=100"
	tagLabel       = "required,max=100"
	tagDescription = "omitempty,max=200"
	tagStartDate   = "required,valid_date"
	tagEndDate     = "omitempty,valid_date"
	tagRequired    = "required"
)

// check pairs a value with the validator tag it must satisfy and the message
// reported when it does not. wrongType marks a value that was not a JSON string.
type check struct {
	value     string
	tag       string
	msg       string
	wrongType bool
}

// firstFailure runs checks in order and stops at the first violation.
func firstFailure(v *validator.Validate, checks ...check) error {
	for _, c := range checks {
		if c.wrongType {
			return apperror.Validation(c.msg)
		}
		if err := v.Var(c.value, c.tag); err != nil {
			return apperror.Validation(c.msg)
		}
	}
	return nil
}
