package services

import "errors"

// ErrInvalidInput marks errors caused by the caller's input rather than by the backend.
// Handlers map it to 400.
var ErrInvalidInput = errors.New("invalid input")

// IsInvalidInput reports whether err was caused by bad input, including the named validation errors.
func IsInvalidInput(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrEmptyMessage),
		errors.Is(err, ErrEventFieldsRequired),
		errors.Is(err, ErrExerciseNameRequired),
		errors.Is(err, ErrWorkoutDateRequired),
		errors.Is(err, ErrWorkoutNameRequired),
		errors.Is(err, ErrInvalidCopyAction):
		return true
	}
	return false
}
