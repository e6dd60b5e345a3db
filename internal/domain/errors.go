package domain

import "errors"

// Task-specific validation errors
var (
	// ErrTaskTitleEmpty is returned when a task title is empty.
	ErrTaskTitleEmpty = errors.New("task title cannot be empty")

	// ErrTaskStatusEmpty is returned when a task status is empty.
	// Status is a free-form token with no enforced enumeration, but it
	// must be present.
	ErrTaskStatusEmpty = errors.New("task status cannot be empty")

	// ErrTaskLogTaskIDInvalid is returned when a task log references a
	// non-positive task id.
	ErrTaskLogTaskIDInvalid = errors.New("task log task id must be positive")
)

// IsValidationError reports whether the error is one of the domain
// validation errors.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrTaskTitleEmpty) ||
		errors.Is(err, ErrTaskStatusEmpty) ||
		errors.Is(err, ErrTaskLogTaskIDInvalid)
}
