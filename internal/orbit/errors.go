package orbit

import (
	"errors"
	"fmt"
)

// Domain errors for body store operations.
var (
	// ErrNonPositiveMass indicates a body whose mass is zero, negative or not finite.
	ErrNonPositiveMass = errors.New("orbit: mass must be positive and finite")

	// ErrInvalidState indicates a position or velocity containing NaN or Inf.
	ErrInvalidState = errors.New("orbit: invalid state (NaN or Inf detected)")

	// ErrUnknownBody indicates an ID that is not present in the store.
	ErrUnknownBody = errors.New("orbit: unknown body")

	// ErrCoincident indicates two bodies sharing the same physical position.
	ErrCoincident = errors.New("orbit: coincident bodies")
)

// BodyError wraps a domain error with the body it concerns.
type BodyError struct {
	Name    string
	ID      ID
	Wrapped error
}

func (e *BodyError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("body %d: %v", e.ID, e.Wrapped)
	}
	return fmt.Sprintf("body %q: %v", e.Name, e.Wrapped)
}

func (e *BodyError) Unwrap() error {
	return e.Wrapped
}
