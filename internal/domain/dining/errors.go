package dining

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("event not found")
)

// InvalidInputError describe un campo rechazado junto con el valor crudo recibido.
// errors.Is(err, ErrInvalidInput) es true para cualquier *InvalidInputError.
type InvalidInputError struct {
	Field  string
	Value  any
	Reason string
}

func (e *InvalidInputError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("invalid input: %s %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid input: %s %s: %v", e.Field, e.Reason, e.Value)
}

func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

func invalid(field string, value any, reason string) error {
	return &InvalidInputError{Field: field, Value: value, Reason: reason}
}
