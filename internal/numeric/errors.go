package numeric

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes arithmetic failures.
type ErrorCode string

const (
	// CodeDivisionByZero indicates a rational denominator would become zero.
	CodeDivisionByZero ErrorCode = "DIVISION_BY_ZERO"

	// CodeComplexZeroDivision indicates division by, or reciprocal of, a zero complex value.
	CodeComplexZeroDivision ErrorCode = "COMPLEX_ZERO_DIVISION"

	// CodeUnknownOperandType indicates a raw operand that cannot be converted.
	CodeUnknownOperandType ErrorCode = "UNKNOWN_OPERAND_TYPE"

	// CodeUnsupportedEngine indicates an invalid engine selector.
	CodeUnsupportedEngine ErrorCode = "UNSUPPORTED_ENGINE"

	// CodeNonConvergence indicates an iterative method hit its iteration bound.
	CodeNonConvergence ErrorCode = "NON_CONVERGENCE"

	// CodeIntegerOverflow indicates a result outside the engine's integer range.
	CodeIntegerOverflow ErrorCode = "INTEGER_OVERFLOW"

	// CodeOutOfRange indicates a Whole or Natural bound violation.
	CodeOutOfRange ErrorCode = "OUT_OF_RANGE"

	// CodeDomain indicates an operand outside a function's domain.
	CodeDomain ErrorCode = "DOMAIN"

	// CodeParse indicates malformed numeric text.
	CodeParse ErrorCode = "PARSE"

	// CodeUnknownOperation indicates an operation name that does not exist
	// or a call with the wrong number of operands.
	CodeUnknownOperation ErrorCode = "UNKNOWN_OPERATION"
)

// Error is the single error type raised by every arithmetic component.
//
// Errors compare equal under errors.Is when their codes match, so callers can
// test against the sentinels below regardless of Op and Message.
type Error struct {
	// Code identifies the failure category.
	Code ErrorCode

	// Op names the operation that failed (e.g. "rational.div").
	Op string

	// Message is a human-readable description.
	Message string
}

// Sentinels for errors.Is.
var (
	ErrDivisionByZero      = &Error{Code: CodeDivisionByZero}
	ErrComplexZeroDivision = &Error{Code: CodeComplexZeroDivision}
	ErrUnknownOperandType  = &Error{Code: CodeUnknownOperandType}
	ErrUnsupportedEngine   = &Error{Code: CodeUnsupportedEngine}
	ErrNonConvergence      = &Error{Code: CodeNonConvergence}
	ErrIntegerOverflow     = &Error{Code: CodeIntegerOverflow}
	ErrOutOfRange          = &Error{Code: CodeOutOfRange}
	ErrDomain              = &Error{Code: CodeDomain}
	ErrParse               = &Error{Code: CodeParse}
	ErrUnknownOperation    = &Error{Code: CodeUnknownOperation}
)

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Op != "" && e.Message != "":
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Op, e.Message)
	case e.Op != "":
		return fmt.Sprintf("%s: %s", e.Code, e.Op)
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return string(e.Code)
}

// Is matches any *Error with the same code.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// NewError creates an Error.
func NewError(code ErrorCode, op, format string, args ...any) *Error {
	return &Error{Code: code, Op: op, Message: fmt.Sprintf(format, args...)}
}

// CodeOf extracts the code from err, or "" if err carries none.
// Uses errors.As to handle wrapped errors.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsDivisionByZero returns true if err is a rational division by zero.
func IsDivisionByZero(err error) bool {
	return CodeOf(err) == CodeDivisionByZero
}

// IsComplexZeroDivision returns true if err is a complex division by zero.
func IsComplexZeroDivision(err error) bool {
	return CodeOf(err) == CodeComplexZeroDivision
}

// IsNonConvergence returns true if err reports an exhausted iteration bound.
func IsNonConvergence(err error) bool {
	return CodeOf(err) == CodeNonConvergence
}

// IsOverflow returns true if err reports an integer range overflow.
func IsOverflow(err error) bool {
	return CodeOf(err) == CodeIntegerOverflow
}
