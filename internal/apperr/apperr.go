// Package apperr defines the application's recoverable error taxonomy.
// Errors carry a kind and an HTTP status code so that callers can dispatch
// on the kind instead of comparing concrete types.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind identifies a category of recoverable failure.
type Kind string

const (
	KindValidation            Kind = "validation_error"
	KindInvalidDate           Kind = "invalid_date"
	KindRecordBeforeStartDate Kind = "record_before_start_date"
	KindDuplicateHabit        Kind = "duplicate_habit"
	KindNotFound              Kind = "not_found"
	KindStorageQuotaExceeded  Kind = "storage_quota_exceeded"
)

// Error is a tagged application error.
type Error struct {
	Kind       Kind
	Message    string
	StatusCode int
}

func (e *Error) Error() string {
	return e.Message
}

// Validation reports malformed or out-of-range input.
func Validation(format string, args ...any) *Error {
	return &Error{
		Kind:       KindValidation,
		Message:    fmt.Sprintf(format, args...),
		StatusCode: http.StatusBadRequest,
	}
}

// InvalidDate reports an unparseable date or a date in the future where prohibited.
func InvalidDate(format string, args ...any) *Error {
	return &Error{
		Kind:       KindInvalidDate,
		Message:    fmt.Sprintf(format, args...),
		StatusCode: http.StatusBadRequest,
	}
}

// RecordBeforeStartDate reports a record dated before the habit's start date.
func RecordBeforeStartDate() *Error {
	return &Error{
		Kind:       KindRecordBeforeStartDate,
		Message:    "records before the habit start date are not allowed",
		StatusCode: http.StatusUnprocessableEntity,
	}
}

// DuplicateHabit reports an attempt to create a second habit in a
// single-habit deployment.
func DuplicateHabit() *Error {
	return &Error{
		Kind:       KindDuplicateHabit,
		Message:    "a habit already exists; delete it before starting a new challenge",
		StatusCode: http.StatusUnprocessableEntity,
	}
}

// NotFound reports a missing habit or record.
func NotFound(format string, args ...any) *Error {
	return &Error{
		Kind:       KindNotFound,
		Message:    fmt.Sprintf(format, args...),
		StatusCode: http.StatusNotFound,
	}
}

// StorageQuotaExceeded reports that the underlying store rejected a write
// due to capacity.
func StorageQuotaExceeded() *Error {
	return &Error{
		Kind:       KindStorageQuotaExceeded,
		Message:    "storage capacity exceeded; delete old data and retry",
		StatusCode: http.StatusInsufficientStorage,
	}
}

// KindOf returns the kind of err, or the empty string when err is not an
// application error. Wrapped errors are unwrapped.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// StatusOf returns the HTTP status code for err, defaulting to 500 for
// errors outside the taxonomy.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return http.StatusInternalServerError
}
