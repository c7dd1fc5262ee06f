// Package errors provides the VM status error used across the native boundary.
// All error types support error unwrapping via errors.As() and errors.Is().
//
// Every collaborator error that reaches a native implementation is a
// *PartialVMError. Its StatusType decides whether the error is fatal
// (StatusTypeInvariantViolation) or an ordinary condition.
package errors

import (
	stdErrors "errors"
	"fmt"
	"strings"
)

// PartialVMError is a VM status without location information.
// The interpreter attaches location when it surfaces the error.
type PartialVMError struct {
	Err       error
	SubStatus *uint64
	Message   string
	Code      StatusCode
}

// New returns an error with the given status code.
func New(code StatusCode) *PartialVMError {
	return &PartialVMError{Code: code}
}

// Newf returns an error with the given status code and a formatted message.
func Newf(code StatusCode, format string, args ...any) *PartialVMError {
	return &PartialVMError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a status code to an underlying error.
func Wrap(code StatusCode, err error) *PartialVMError {
	return &PartialVMError{Code: code, Err: err}
}

// WithMessage returns a copy of e carrying message.
func (e *PartialVMError) WithMessage(message string) *PartialVMError {
	c := *e
	c.Message = message
	return &c
}

// WithSubStatus returns a copy of e carrying a sub status.
func (e *PartialVMError) WithSubStatus(sub uint64) *PartialVMError {
	c := *e
	c.SubStatus = &sub
	return &c
}

// MajorStatus returns the status code.
func (e *PartialVMError) MajorStatus() StatusCode {
	return e.Code
}

// StatusType returns the category of the status code.
func (e *PartialVMError) StatusType() StatusType {
	return e.Code.StatusType()
}

func (e *PartialVMError) Error() string {
	var b strings.Builder
	b.WriteString(e.Code.String())
	if e.SubStatus != nil {
		fmt.Fprintf(&b, " (sub status %d)", *e.SubStatus)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *PartialVMError) Unwrap() error {
	return e.Err
}

// Is matches another *PartialVMError by status code.
func (e *PartialVMError) Is(target error) bool {
	t, ok := target.(*PartialVMError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Classify returns the VM status carried by err.
//
// An error that does not carry a *PartialVMError is unclassified. It is
// reported as UnknownInvariantViolationError wrapping the original error, so
// an opaque collaborator failure is never mistaken for an ordinary condition.
// Classify returns nil for a nil error.
func Classify(err error) *PartialVMError {
	if err == nil {
		return nil
	}
	var vmErr *PartialVMError
	if stdErrors.As(err, &vmErr) {
		return vmErr
	}
	return Wrap(UnknownInvariantViolationError, err)
}

// IsInvariantViolation reports whether err is fatal to the whole execution.
func IsInvariantViolation(err error) bool {
	if err == nil {
		return false
	}
	return Classify(err).StatusType() == StatusTypeInvariantViolation
}

// StatusOf returns the status code carried by err, or false if err is nil.
func StatusOf(err error) (StatusCode, bool) {
	if err == nil {
		return 0, false
	}
	return Classify(err).Code, true
}
