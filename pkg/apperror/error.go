package apperror

import "net/http"

// Kind classifies an AppError independently of the transport that reports it.
type Kind string

const (
	KindValidation  Kind = "validation"
	KindConflict    Kind = "conflict"
	KindNotFound    Kind = "not_found"
	KindPersistence Kind = "persistence"
	KindInternal    Kind = "internal"
)

type AppError struct {
	Kind    Kind   `json:"kind"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(kind Kind, code int, message string, err error) *AppError {
	return &AppError{
		Kind:    kind,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Validation reports malformed, missing or out-of-range input detected before any write.
func Validation(message string) *AppError {
	return New(KindValidation, http.StatusBadRequest, message, nil)
}

// Conflict reports a uniqueness violation. Clients fix it by choosing another key,
// so it is surfaced as a 400 like validation failures.
func Conflict(message string, err error) *AppError {
	return New(KindConflict, http.StatusBadRequest, message, err)
}

func NotFound(message string) *AppError {
	return New(KindNotFound, http.StatusNotFound, message, nil)
}

// Persistence wraps a store failure and keeps its original message.
func Persistence(err error) *AppError {
	return New(KindPersistence, http.StatusInternalServerError, err.Error(), err)
}

// BadRequest reports a malformed request detail outside the body, such as a path parameter.
func BadRequest(message string) *AppError {
	return New(KindValidation, http.StatusBadRequest, message, nil)
}

// Internal wraps an error nothing classified on its way up.
func Internal(err error) *AppError {
	return New(KindInternal, http.StatusInternalServerError, err.Error(), err)
}
