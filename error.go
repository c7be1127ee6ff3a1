package webchunk

import (
	"errors"
	"fmt"
	"net/http"
)

// Application error codes.
const (
	ECANCELED    = "canceled"
	EINTERNAL    = "internal"
	EINVALID     = "invalid"
	ENOTFOUND    = "not_found"
	ESTATUS      = "status"
	ETRANSPORT   = "transport"
	EAPPLICATION = "application"
)

// Error represents an application-specific error.
// Status carries the HTTP status reported by the extraction service, if any.
type Error struct {
	Code    string
	Message string
	Status  int
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("webchunk error: code=%s message=%s", e.Code, e.Message)
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// StatusErrorf is like Errorf but records the HTTP status behind the failure.
func StatusErrorf(code string, status int, format string, args ...any) *Error {
	e := Errorf(code, format, args...)
	e.Status = status
	return e
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error".
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error"
}

// ErrorStatus returns the status code to report for err.
// Validation errors map to 400; errors without a recorded status map to 500.
func ErrorStatus(err error) int {
	if err == nil {
		return 0
	}
	var e *Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError
	}
	if e.Status != 0 {
		return e.Status
	}
	if e.Code == EINVALID {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
