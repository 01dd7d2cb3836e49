package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Upstream duplicate detection
	ErrMalformedInput ErrorCode = "MALFORMED_INPUT"
	ErrDetector       ErrorCode = "DETECTOR"
	ErrCache          ErrorCode = "CACHE"

	// Interactive resolution
	ErrInvalidUserInput ErrorCode = "INVALID_USER_INPUT"
	ErrAborted          ErrorCode = "ABORTED"

	// Planning and execution
	ErrPlanConflict ErrorCode = "PLAN_CONFLICT"
	ErrExecution    ErrorCode = "EXECUTION"
)

// DupekeepError represents a structured error with code and details
type DupekeepError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *DupekeepError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *DupekeepError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *DupekeepError) Is(target error) bool {
	var targetErr *DupekeepError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new DupekeepError with the given code and message
func New(code ErrorCode, message string) *DupekeepError {
	return &DupekeepError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new DupekeepError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *DupekeepError {
	return &DupekeepError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a DupekeepError
func Wrap(err error, code ErrorCode, message string) *DupekeepError {
	if err == nil {
		return nil
	}
	return &DupekeepError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *DupekeepError {
	if err == nil {
		return nil
	}
	return &DupekeepError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *DupekeepError) WithDetail(key string, value interface{}) *DupekeepError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var dkErr *DupekeepError
	if errors.As(err, &dkErr) {
		return dkErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a DupekeepError
func GetErrorCode(err error) ErrorCode {
	var dkErr *DupekeepError
	if errors.As(err, &dkErr) {
		return dkErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a DupekeepError
func GetErrorDetails(err error) map[string]interface{} {
	var dkErr *DupekeepError
	if errors.As(err, &dkErr) {
		return dkErr.Details
	}
	return nil
}

// ExecutionErrors collects the per-file failures of one apply pass.
// Each element is an ErrExecution error carrying a "path" detail.
type ExecutionErrors struct {
	Errors []error
}

// Add appends a failure. Nil errors are ignored.
func (e *ExecutionErrors) Add(err error) {
	if err != nil {
		e.Errors = append(e.Errors, err)
	}
}

// Len returns the number of collected failures
func (e *ExecutionErrors) Len() int {
	if e == nil {
		return 0
	}
	return len(e.Errors)
}

// Error implements the error interface
func (e *ExecutionErrors) Error() string {
	lines := make([]string, 0, len(e.Errors))
	for _, err := range e.Errors {
		lines = append(lines, "  "+err.Error())
	}
	return fmt.Sprintf("%d file(s) failed:\n%s", len(e.Errors), strings.Join(lines, "\n"))
}

// Unwrap exposes the individual failures to errors.Is and errors.As
func (e *ExecutionErrors) Unwrap() []error {
	return e.Errors
}

// ErrOrNil returns nil when nothing failed, so callers can return it directly
func (e *ExecutionErrors) ErrOrNil() error {
	if e.Len() == 0 {
		return nil
	}
	return Wrapf(e, ErrExecution, "apply pass finished with failures")
}
