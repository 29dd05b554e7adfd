package errors

import (
	stdErrors "errors"
	"fmt"
)

type ErrorCode string

const (
	ErrDB            ErrorCode = "some error in storage layer"
	ErrNoDataFound   ErrorCode = "no data found"
	ErrAlreadyExists ErrorCode = "already exists"

	ErrUnauthorized ErrorCode = "Unauthorized"
	ErrForbidden    ErrorCode = "access is forbidden"

	ErrEndBeforeStart     ErrorCode = "end date is before start date"
	ErrMissingIdentity    ErrorCode = "advertisement id is missing"
	ErrSubmissionInFlight ErrorCode = "submission already in flight"
	ErrDialogClosed       ErrorCode = "dialog is closed"
	ErrResponseDiscarded  ErrorCode = "response arrived after dialog closure"
	ErrInvalidMedia       ErrorCode = "invalid media"
	ErrInvalidDate        ErrorCode = "invalid date"
	ErrInvalidType        ErrorCode = "invalid advertisement type"
	ErrInvalidMode        ErrorCode = "invalid form mode"
	ErrRemote             ErrorCode = "remote call failed"
)

type domainError struct {
	error
	errorCode ErrorCode
}

func (e domainError) Error() string {
	return fmt.Sprintf("%s: %s", e.error.Error(), e.errorCode)
}

func Unwrap(err error) error {
	var dErr domainError
	if stdErrors.As(err, &dErr) {
		return stdErrors.Unwrap(dErr.error)
	}

	return stdErrors.Unwrap(err)
}

func Code(err error) ErrorCode {
	if err == nil {
		return ""
	}

	var dErr domainError
	if stdErrors.As(err, &dErr) {
		return dErr.errorCode
	}

	return ""
}

// Message returns the text the error was built with, without the code suffix.
// For plain errors it is err.Error().
func Message(err error) string {
	if err == nil {
		return ""
	}

	var dErr domainError
	if stdErrors.As(err, &dErr) {
		return dErr.error.Error()
	}

	return err.Error()
}

func NewDomainError(errorCode ErrorCode, format string, args ...interface{}) error {
	return domainError{
		error:     fmt.Errorf(format, args...),
		errorCode: errorCode,
	}
}

func WrapIntoDomainError(err error, errorCode ErrorCode, msg string) error {
	return domainError{
		error:     fmt.Errorf("%s: [%w]", msg, err),
		errorCode: errorCode,
	}
}
