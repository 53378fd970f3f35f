package payload

import (
	"errors"
	"fmt"
)

// Sentinel kinds for payload parsing failures.
var (
	ErrInvalidJSON   = errors.New("invalid json payload")
	ErrShapeMismatch = errors.New("payload shape mismatch")
)

// ShapeError reports the first missing or mistyped field found while parsing
// a payload against its contract. It unwraps to ErrShapeMismatch so callers
// can match the kind with errors.Is.
type ShapeError struct {
	Field string
}

func (e *ShapeError) Error() string {
	if e.Field == "" {
		return "payload shape mismatch"
	}
	return fmt.Sprintf("payload shape mismatch: field %q missing or mistyped", e.Field)
}

func (e *ShapeError) Unwrap() error { return ErrShapeMismatch }
