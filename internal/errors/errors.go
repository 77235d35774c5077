// Package errors provides a lightweight structured error type (BlogError)
// for category-based classification in the CLI and build pipeline.
package errors

import (
	"fmt"
)

// ErrorCategory represents the category of a blogbuilder error for classification
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig ErrorCategory = "config"
	CategoryPost   ErrorCategory = "post"
	CategoryEditor ErrorCategory = "editor"

	// External system integration errors
	CategoryStorage ErrorCategory = "storage"
	CategoryImport  ErrorCategory = "import"

	// Build and processing errors
	CategoryBuild    ErrorCategory = "build"
	CategoryMarkdown ErrorCategory = "markdown"
	CategoryTheme    ErrorCategory = "theme"
	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
)

// BlogError is a structured error with category, severity, and context
type BlogError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for BlogError
type ContextFields map[string]any

// Error implements the error interface
func (e *BlogError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *BlogError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *BlogError) WithContext(key string, value any) *BlogError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new BlogError
func New(category ErrorCategory, severity ErrorSeverity, message string) *BlogError {
	return &BlogError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new BlogError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *BlogError {
	return &BlogError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// IsCategory checks if an error belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	if be, ok := err.(*BlogError); ok {
		return be.Category == category
	}
	return false
}

// GetCategory extracts the category from an error, or returns CategoryInternal if not a BlogError
func GetCategory(err error) ErrorCategory {
	if be, ok := err.(*BlogError); ok {
		return be.Category
	}
	return CategoryInternal
}

// InvalidConfiguration creates a fatal config-category error.
func InvalidConfiguration(message string) *BlogError {
	return &BlogError{
		Category: CategoryConfig,
		Severity: SeverityFatal,
		Message:  message,
	}
}

// MalformedPost creates a post-category error carrying the offending post key.
func MalformedPost(key, message string) *BlogError {
	e := &BlogError{
		Category: CategoryPost,
		Severity: SeverityFatal,
		Message:  message,
	}
	return e.WithContext("post.key", key)
}
