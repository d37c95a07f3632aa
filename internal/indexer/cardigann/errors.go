package cardigann

import (
	"errors"
	"fmt"
)

// Error codes for categorizing definition parse failures. Every failure is
// recoverable at the call site: the caller disables that one indexer and
// keeps the rest of the search pipeline alive.
const (
	ErrCodeInvalidYAML            = "invalid_yaml"
	ErrCodeMissingSearchPath      = "missing_search_path"
	ErrCodeMissingRowsSelector    = "missing_rows_selector"
	ErrCodeMissingFields          = "missing_fields"
	ErrCodeMissingLoginMethod     = "missing_login_method"
	ErrCodeMissingRequiredFields  = "missing_required_fields"
	ErrCodeMissingSearchFields    = "missing_search_fields"
	ErrCodeMissingCapabilityModes = "missing_capabilities_modes"
)

// DefinitionError represents a categorized definition parse failure.
type DefinitionError struct {
	Code   string // Error category code
	Detail string // Human-readable detail
	Cause  error  // Underlying error
}

// Error implements the error interface.
func (e *DefinitionError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Detail)
	}
	return e.Code
}

// Unwrap returns the underlying error.
func (e *DefinitionError) Unwrap() error {
	return e.Cause
}

// Is implements error matching for errors.Is().
func (e *DefinitionError) Is(target error) bool {
	var t *DefinitionError
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// Common error instances for comparison
var (
	ErrInvalidYAML            = &DefinitionError{Code: ErrCodeInvalidYAML}
	ErrMissingSearchPath      = &DefinitionError{Code: ErrCodeMissingSearchPath}
	ErrMissingRowsSelector    = &DefinitionError{Code: ErrCodeMissingRowsSelector}
	ErrMissingFields          = &DefinitionError{Code: ErrCodeMissingFields}
	ErrMissingLoginMethod     = &DefinitionError{Code: ErrCodeMissingLoginMethod}
	ErrMissingRequiredFields  = &DefinitionError{Code: ErrCodeMissingRequiredFields}
	ErrMissingSearchFields    = &DefinitionError{Code: ErrCodeMissingSearchFields}
	ErrMissingCapabilityModes = &DefinitionError{Code: ErrCodeMissingCapabilityModes}
)

func newError(code, format string, args ...any) *DefinitionError {
	return &DefinitionError{Code: code, Detail: fmt.Sprintf(format, args...)}
}

// ErrorCode extracts the definition error code from an error, or "" when
// the error is not a DefinitionError.
func ErrorCode(err error) string {
	var defErr *DefinitionError
	if errors.As(err, &defErr) {
		return defErr.Code
	}
	return ""
}
