package signer

import "fmt"

// Error codes of the external signer
const (
	ErrCodeToolUnavailable = "TOOL_UNAVAILABLE"
	ErrCodeSignFailed      = "SIGN_FAILED"
	ErrCodeEmptySignature  = "EMPTY_SIGNATURE"
	ErrCodeInvalidOutput   = "INVALID_OUTPUT"
)

// Error is a signing failure
type Error struct {
	Code    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s (%v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches another *Error with the same code
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// NewError creates a new signer error
func NewError(code, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Sentinels for errors.Is
var (
	ErrToolUnavailable = &Error{Code: ErrCodeToolUnavailable}
	ErrSignFailed      = &Error{Code: ErrCodeSignFailed}
	ErrEmptySignature  = &Error{Code: ErrCodeEmptySignature}
	ErrInvalidOutput   = &Error{Code: ErrCodeInvalidOutput}
)
