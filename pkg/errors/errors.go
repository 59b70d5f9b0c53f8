package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors covering the progress engine taxonomy.
var (
	ErrNotFound           = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrUnauthorized       = New("UNAUTHORIZED", http.StatusUnauthorized, "unauthorized")
	ErrConflict           = New("CONFLICT", http.StatusConflict, "conflict")
	ErrPreconditionFailed = New("PRECONDITION_FAILED", http.StatusPreconditionFailed, "precondition failed")
	ErrValidation         = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrInternal           = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")

	ErrAlreadyEnrolled   = New("ALREADY_ENROLLED", http.StatusConflict, "already enrolled in plan")
	ErrAlreadyInProgress = New("ALREADY_IN_PROGRESS", http.StatusConflict, "subject already in progress")
	ErrEmptyPlan         = New("EMPTY_PLAN", http.StatusPreconditionFailed, "study plan has no subjects")
	ErrNotEnrolledInPlan = New("NOT_ENROLLED_IN_PLAN", http.StatusPreconditionFailed, "user is not enrolled in plan")
	ErrSubjectNotInPlan  = New("SUBJECT_NOT_IN_PLAN", http.StatusPreconditionFailed, "subject does not belong to plan")
	ErrNoAcademicYear    = New("NO_ACADEMIC_YEAR", http.StatusPreconditionFailed, "no academic year set")
	ErrNoCurrentYear     = New("NO_CURRENT_YEAR", http.StatusPreconditionFailed, "no active academic term")
	ErrInvalidYear       = New("INVALID_YEAR", http.StatusBadRequest, "academic year out of range")
	ErrInvalidGrade      = New("INVALID_GRADE", http.StatusBadRequest, "grade must be between 1 and 10")

	// ErrCacheMiss is a sentinel for cache lookups, never surfaced to callers.
	ErrCacheMiss = New("CACHE_MISS", http.StatusNotFound, "cache miss")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}
