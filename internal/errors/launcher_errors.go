package errors

import (
	"errors"
	"fmt"
)

// ErrorCategory represents the tier an error belongs to
type ErrorCategory string

const (
	// Errors that terminate the whole process with a non-zero status
	ErrorCategoryFatal         ErrorCategory = "FATAL"
	ErrorCategoryConfiguration ErrorCategory = "CONFIG"

	// Failures to start the external tool; reported, never escalated
	ErrorCategoryLaunch ErrorCategory = "LAUNCH"
)

// LauncherError represents a categorized error with context
type LauncherError struct {
	Category   ErrorCategory
	Component  string
	Operation  string
	Message    string
	Underlying error
}

// Error implements the error interface
func (e *LauncherError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("[%s:%s] %s: %s: %v", e.Category, e.Component, e.Operation, e.Message, e.Underlying)
	}
	return fmt.Sprintf("[%s:%s] %s: %s", e.Category, e.Component, e.Operation, e.Message)
}

// Unwrap returns the underlying error for error unwrapping
func (e *LauncherError) Unwrap() error {
	return e.Underlying
}

// IsFatal returns whether this error should stop the process
func (e *LauncherError) IsFatal() bool {
	return e.Category == ErrorCategoryFatal || e.Category == ErrorCategoryConfiguration
}

// New creates a new categorized launcher error
func New(category ErrorCategory, component, operation, message string) *LauncherError {
	return &LauncherError{
		Category:  category,
		Component: component,
		Operation: operation,
		Message:   message,
	}
}

// Wrap wraps an existing error with launcher error context
func Wrap(err error, category ErrorCategory, component, operation, message string) *LauncherError {
	if err == nil {
		return nil
	}

	return &LauncherError{
		Category:   category,
		Component:  component,
		Operation:  operation,
		Message:    message,
		Underlying: err,
	}
}

// Fatal wraps err as a process-terminating error
func Fatal(err error, component, operation, message string) *LauncherError {
	return Wrap(err, ErrorCategoryFatal, component, operation, message)
}

// IsFatal reports whether any error in err's chain is a fatal launcher error.
// Errors that are not launcher errors are treated as fatal.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	var le *LauncherError
	if errors.As(err, &le) {
		return le.IsFatal()
	}
	return true
}

// CategoryOf returns the category of the outermost launcher error in err's chain
func CategoryOf(err error) (ErrorCategory, bool) {
	var le *LauncherError
	if errors.As(err, &le) {
		return le.Category, true
	}
	return "", false
}

// Message returns the operator-facing message of the outermost launcher error
// in err's chain, without the underlying cause
func Message(err error) string {
	var le *LauncherError
	if errors.As(err, &le) {
		return le.Message
	}
	return err.Error()
}

// Cause returns the underlying error of the outermost launcher error, or err itself
func Cause(err error) error {
	var le *LauncherError
	if errors.As(err, &le) && le.Underlying != nil {
		return le.Underlying
	}
	return err
}

// Common error constructors
func NewConfigurationError(component, operation, message string) *LauncherError {
	return New(ErrorCategoryConfiguration, component, operation, message)
}

func NewFatalError(component, operation, message string) *LauncherError {
	return New(ErrorCategoryFatal, component, operation, message)
}

func NewLaunchError(component, operation string, err error) *LauncherError {
	return Wrap(err, ErrorCategoryLaunch, component, operation, "failed to run docker command")
}
