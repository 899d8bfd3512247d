package errors

import (
	"errors"
	"fmt"
)

// Sentinels matched by errors.Is through the typed errors below.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)

// NotFoundError reports a favorite number that does not exist.
// Number is 1-based, as users see it; Count is the list length at the time.
type NotFoundError struct {
	Number int
	Count  int
}

func (e *NotFoundError) Error() string {
	if e.Count == 0 {
		return fmt.Sprintf("favorite #%d not found: no favorites saved", e.Number)
	}
	return fmt.Sprintf("favorite #%d not found (have %d)", e.Number, e.Count)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// ValidationError reports input that is not a color, a palette, or a sane
// config value. Field is empty when the message stands alone.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

func FavoriteNotFound(number, count int) error {
	return &NotFoundError{Number: number, Count: count}
}

func InvalidField(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func InvalidColor(value string) error {
	return InvalidField("color", fmt.Sprintf("%q is not a #RRGGBB hex color", value))
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// FieldOf returns the offending field of a validation error, or "".
func FieldOf(err error) string {
	var v *ValidationError
	if errors.As(err, &v) {
		return v.Field
	}
	return ""
}
