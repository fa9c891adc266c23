// Package errors defines the coded errors returned across zentools.
//
// Every failure carries an ErrorCode from error_code.go. Layers wrap the error they received
// with their own code, so a pipeline failure reads outermost first:
//
//	[601 PipelineStepFailed] step indicators failed: [302 IndicatorCalculation] rsi failed: ...
//
// HasCode looks at the outermost code only. InChain and Codes walk the whole chain.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error is a coded error. Column names the frame column involved, if any.
type Error struct {
	Code    ErrorCode
	Message string
	Column  string
	Cause   error
}

// New creates an error with the given code.
func New(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an error with a formatted message.
func Newf(code ErrorCode, format string, args ...any) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap attaches code and message to cause.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// Wrapf attaches code and a formatted message to cause.
func Wrapf(code ErrorCode, cause error, format string, args ...any) *Error {
	return Wrap(code, fmt.Sprintf(format, args...), cause)
}

// NewInsufficientData reports that an operation needs at least required values and got actual.
func NewInsufficientData(operation string, required, actual int) *Error {
	return Newf(ErrCodeInsufficientData, "%s needs at least %d values, got %d", operation, required, actual)
}

// WithColumn records the column the error is about and returns e.
func (e *Error) WithColumn(name string) *Error {
	e.Column = name

	return e
}

func (e *Error) Error() string {
	var b strings.Builder

	fmt.Fprintf(&b, "[%d %s] %s", int(e.Code), e.Code, e.Message)

	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}

	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// As is errors.As from the standard library, re-exported because this package shadows it.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// GetCode returns the outermost code in err's chain, or ErrCodeUnknown.
func GetCode(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	return ErrCodeUnknown
}

// HasCode reports whether the outermost code in err's chain is code.
func HasCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

// Codes lists every code in err's chain, outermost first.
func Codes(err error) []ErrorCode {
	var codes []ErrorCode

	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			break
		}

		codes = append(codes, e.Code)
		err = e.Cause
	}

	return codes
}

// InChain reports whether code appears anywhere in err's chain.
func InChain(err error, code ErrorCode) bool {
	for _, c := range Codes(err) {
		if c == code {
			return true
		}
	}

	return false
}

// ColumnOf returns the first column recorded in err's chain, or "".
func ColumnOf(err error) string {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return ""
		}

		if e.Column != "" {
			return e.Column
		}

		err = e.Cause
	}

	return ""
}
