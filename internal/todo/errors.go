package todo

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPriority is returned when a priority falls outside [MinPriority, MaxPriority].
	ErrInvalidPriority = errors.New("invalid priority")
	// ErrNotFound is returned when no task has the requested id.
	ErrNotFound = errors.New("task not found")
)

// TaskError carries the failing id or priority alongside its kind.
// It unwraps to ErrInvalidPriority or ErrNotFound.
type TaskError struct {
	Kind     error
	ID       uint64
	Priority int
}

func (e *TaskError) Error() string {
	if e == nil {
		return ""
	}
	switch e.Kind {
	case ErrInvalidPriority:
		return fmt.Sprintf("invalid priority %d (must be %d-%d)", e.Priority, MinPriority, MaxPriority)
	case ErrNotFound:
		return fmt.Sprintf("task %d not found", e.ID)
	}
	return e.Kind.Error()
}

// Unwrap returns the error kind.
func (e *TaskError) Unwrap() error { return e.Kind }

func invalidPriority(p int) error {
	return &TaskError{Kind: ErrInvalidPriority, Priority: p}
}

func notFound(id uint64) error {
	return &TaskError{Kind: ErrNotFound, ID: id}
}

// ValidationError represents a task file validation error with context.
type ValidationError struct {
	Path string // JSON path to the error location
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}
