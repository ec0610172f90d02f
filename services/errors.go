package services

import (
	"errors"
	"fmt"
)

// ErrorKind classifies workflow failures so callers can map them to a
// response and decide whether a retry makes sense.
type ErrorKind string

const (
	// KindNotFound indicates the referenced record does not exist.
	KindNotFound ErrorKind = "not_found"

	// KindForbidden indicates the caller does not own the record or lacks the role.
	KindForbidden ErrorKind = "forbidden"

	// KindConflictOfInterest indicates the reviewer declared a conflict on the submission.
	KindConflictOfInterest ErrorKind = "conflict_of_interest"

	// KindDuplicateAssignment indicates the (reviewer, submission) pair is already assigned.
	KindDuplicateAssignment ErrorKind = "duplicate_assignment"

	// KindDuplicateReview indicates a review already exists for the assignment.
	KindDuplicateReview ErrorKind = "duplicate_review"

	// KindInvalidTransition indicates the record's current status does not
	// permit the attempted change; the message names both statuses.
	KindInvalidTransition ErrorKind = "invalid_transition"

	// KindInvalidArgument indicates a malformed input (out-of-range score, unknown enum).
	KindInvalidArgument ErrorKind = "invalid_argument"

	// KindUnavailable wraps a storage-transport failure (retryable).
	KindUnavailable ErrorKind = "unavailable"
)

// WorkflowError is the typed error returned by every workflow operation.
type WorkflowError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *WorkflowError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *WorkflowError) Unwrap() error { return e.Err }

// Retryable reports whether the caller may retry the same call unchanged.
// Only storage-transport failures qualify; every other kind is deterministic
// and would fail the same way again.
func (e *WorkflowError) Retryable() bool {
	return e.Kind == KindUnavailable
}

// KindOf returns the workflow kind carried by err, or "" if err is not a
// workflow error.
func KindOf(err error) ErrorKind {
	var wf *WorkflowError
	if errors.As(err, &wf) {
		return wf.Kind
	}
	return ""
}

func newWorkflowError(kind ErrorKind, format string, args ...interface{}) *WorkflowError {
	return &WorkflowError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func notFoundErr(format string, args ...interface{}) *WorkflowError {
	return newWorkflowError(KindNotFound, format, args...)
}

func forbiddenErr(format string, args ...interface{}) *WorkflowError {
	return newWorkflowError(KindForbidden, format, args...)
}

func conflictOfInterestErr(format string, args ...interface{}) *WorkflowError {
	return newWorkflowError(KindConflictOfInterest, format, args...)
}

func duplicateAssignmentErr(format string, args ...interface{}) *WorkflowError {
	return newWorkflowError(KindDuplicateAssignment, format, args...)
}

func duplicateReviewErr(format string, args ...interface{}) *WorkflowError {
	return newWorkflowError(KindDuplicateReview, format, args...)
}

func invalidTransitionErr(format string, args ...interface{}) *WorkflowError {
	return newWorkflowError(KindInvalidTransition, format, args...)
}

func invalidArgumentErr(format string, args ...interface{}) *WorkflowError {
	return newWorkflowError(KindInvalidArgument, format, args...)
}

// unavailableErr wraps a storage failure; op names the operation that hit it.
func unavailableErr(op string, err error) *WorkflowError {
	return &WorkflowError{
		Kind:    KindUnavailable,
		Message: fmt.Sprintf("storage failure during %s", op),
		Err:     err,
	}
}

// asWorkflowError passes workflow errors through untouched and wraps
// anything else as a storage failure.
func asWorkflowError(op string, err error) error {
	if err == nil {
		return nil
	}
	var wf *WorkflowError
	if errors.As(err, &wf) {
		return wf
	}
	return unavailableErr(op, err)
}
