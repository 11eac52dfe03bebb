package domain

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrTaskNotFound        = errors.New("task not found")
	ErrRoutineTaskNotFound = errors.New("routine task not found")
	ErrInvalidParent       = errors.New("parent not found or is already a subtask")
	ErrSubtaskQuadrant     = errors.New("subtask quadrant follows its parent")
	ErrInvalidID           = errors.New("invalid id")
	ErrUnauthenticated     = errors.New("unauthenticated")
)

// ValidationError reports malformed input. Fields maps a field name to the
// rule it broke.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError(field, rule string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: rule}}
}

// Add records another broken rule and returns the receiver.
func (e *ValidationError) Add(field, rule string) *ValidationError {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	e.Fields[field] = rule
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// IsValidationError reports whether err is, or wraps, a validation failure.
func IsValidationError(err error) bool {
	var target *ValidationError
	return errors.As(err, &target) ||
		errors.Is(err, ErrInvalidParent) ||
		errors.Is(err, ErrSubtaskQuadrant) ||
		errors.Is(err, ErrInvalidID)
}
