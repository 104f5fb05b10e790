// Package fault defines the error kinds shared by the calculation core and the
// service layer. Only two kinds exist: a violated precondition (ValidationError)
// and an index/id lookup miss (NotFoundError). Business conditions that the UI
// may choose to ignore (e.g. a leave request exceeding the available balance)
// are NOT errors and are returned as ordinary values by the packages that
// compute them.
package fault

import (
	"errors"
	"fmt"
)

// ValidationError reports an input that violates a stated precondition:
// negative amount, discount exceeding gross, invalid date range, empty
// required field.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Validationf builds a ValidationError with a formatted message.
func Validationf(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError reports an index- or id-based lookup miss, e.g. editing an
// installment at an out-of-range position.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string { return e.Msg }

// NotFoundf builds a NotFoundError with a formatted message.
func NotFoundf(format string, args ...interface{}) error {
	return &NotFoundError{Msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var ne *NotFoundError
	return errors.As(err, &ne)
}
