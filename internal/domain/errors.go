package domain

import "errors"

// Sentinel errors shared by the scheduler, repositories and services.
// Use errors.Is to check them.
var (
	// ErrInvalidInput indicates malformed parameters, e.g. a recall quality
	// outside 0-5 or a non-positive daily study budget.
	ErrInvalidInput = errors.New("invalid input")

	// ErrPreconditionViolation indicates the operation conflicts with
	// existing state.
	ErrPreconditionViolation = errors.New("precondition violation")

	// ErrNotFound indicates a referenced syllabus, plan, session, flashcard
	// or exam does not exist.
	ErrNotFound = errors.New("not found")
)

// ErrPlanExists is returned when generating a plan for a syllabus that
// already has an active plan for the same user.
var ErrPlanExists = &PreconditionError{Message: "an active plan already exists for this syllabus"}

// PreconditionError carries a human-readable reason and matches
// ErrPreconditionViolation under errors.Is.
type PreconditionError struct {
	Message string
}

func (e *PreconditionError) Error() string {
	return e.Message
}

func (e *PreconditionError) Unwrap() error {
	return ErrPreconditionViolation
}
