package service

import (
	"errors"
	"fmt"
)

// ErrNotFound signals a single-entity lookup with no match. List and search
// operations return empty results instead of this error.
var ErrNotFound = errors.New("not found")

// ValidationError marks malformed or out-of-range input. It is always raised
// before any store call and is never retried.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// Spatial-input specializations of ValidationError.
var (
	ErrInvalidBounds = &ValidationError{Msg: "invalid bounding box"}
	ErrInvalidRadius = &ValidationError{Msg: "radius must be positive"}
)

// IsValidation reports whether err is any ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
