package model

import (
	"errors"
	"fmt"
)

// Validation rules reported in ValidationError.Rule
const (
	RuleRequired       = "required"
	RuleMissingVariant = "missing_variant"
	RuleAmbiguous      = "ambiguous_variant"
	RuleMissingVAT     = "missing_vat"
	RuleUnknownValue   = "unknown_value"
	RuleInvalidFormat  = "invalid_format"
)

// ErrValidation matches every *ValidationError via errors.Is
var ErrValidation = errors.New("validation failed")

// ParseError represents parsing errors with schema generation context
type ParseError struct {
	Generation Generation
	Field      string
	Message    string
	Cause      error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %s (%v)", e.Generation, e.Field, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Generation, e.Field, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// NewParseError creates a new parse error
func NewParseError(generation Generation, field, message string, cause error) *ParseError {
	return &ParseError{
		Generation: generation,
		Field:      field,
		Message:    message,
		Cause:      cause,
	}
}

// ValidationError represents input that cannot be rendered
type ValidationError struct {
	Field   string
	Value   interface{}
	Rule    string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("validation failed on %s: %s (value=%v, rule=%s)", e.Field, e.Message, e.Value, e.Rule)
	}
	return fmt.Sprintf("validation failed on %s: %s (rule=%s)", e.Field, e.Message, e.Rule)
}

// Is reports whether target is ErrValidation
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError creates a new validation error
func NewValidationError(field string, value interface{}, rule, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Rule:    rule,
		Message: message,
	}
}

// NewRequiredError reports a missing mandatory field
func NewRequiredError(field, message string) *ValidationError {
	return NewValidationError(field, nil, RuleRequired, message)
}

// NewMissingVariantError reports a tagged union with no populated variant
func NewMissingVariantError(field, message string) *ValidationError {
	return NewValidationError(field, nil, RuleMissingVariant, message)
}

// ExtractionError represents archive extraction failures
type ExtractionError struct {
	Method  string
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extraction failed [%s]: %s (%v)", e.Method, e.Message, e.Cause)
	}
	return fmt.Sprintf("extraction failed [%s]: %s", e.Method, e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// NewExtractionError creates a new extraction error
func NewExtractionError(method, message string, cause error) *ExtractionError {
	return &ExtractionError{
		Method:  method,
		Message: message,
		Cause:   cause,
	}
}
