// Package errors provides centralized error handling with category and
// context metadata for the dataset pipeline.
package errors

import (
	stderrors "errors"
	"fmt"
	"maps"
	"time"
)

// ErrorCategory represents the type of error for better categorization
type ErrorCategory string

const (
	CategoryValidation  ErrorCategory = "validation"
	CategoryFileIO      ErrorCategory = "file-io"
	CategoryAudioDecode ErrorCategory = "audio-decode"
	CategoryIndex       ErrorCategory = "dataset-index"
	CategorySample      ErrorCategory = "dataset-sample"
	CategoryDatabase    ErrorCategory = "database"
	CategoryGeneric     ErrorCategory = "generic"
)

// ComponentUnknown is used when the component has not been set.
const ComponentUnknown = "unknown"

// Sentinel errors for defects the pipeline must surface distinctly.
// ErrWindowOutOfRange and ErrUnknownSpecies indicate the index and the
// materializer have diverged; they are consistency defects, not data
// problems, and are never retried.
var (
	ErrFileMissing       = stderrors.New("audio file missing from storage")
	ErrWindowOutOfRange  = stderrors.New("window index out of range for clip")
	ErrUnknownSpecies    = stderrors.New("species not present in vocabulary")
	ErrShapeMismatch     = stderrors.New("window length mismatch in batch")
	ErrInvalidConfig     = stderrors.New("invalid windowing configuration")
	ErrClipNotFound      = stderrors.New("clip not found in catalog")
	ErrUnsupportedFormat = stderrors.New("unsupported audio format")
)

// EnhancedError wraps an error with additional context and metadata
type EnhancedError struct {
	Err       error          // Original error
	Component string         // Component where the error occurred
	Category  ErrorCategory  // Error category for better grouping
	Context   map[string]any // Additional context data
	Timestamp time.Time      // When the error occurred
}

// Error implements the error interface
func (ee *EnhancedError) Error() string {
	return ee.Err.Error()
}

// Unwrap implements the error unwrapping interface
func (ee *EnhancedError) Unwrap() error {
	return ee.Err
}

// Is matches either the wrapped error chain or another EnhancedError's
// category.
func (ee *EnhancedError) Is(target error) bool {
	if ee2, ok := target.(*EnhancedError); ok {
		return ee.Category == ee2.Category
	}
	return stderrors.Is(ee.Err, target)
}

// GetCategory returns the error category
func (ee *EnhancedError) GetCategory() string {
	return string(ee.Category)
}

// GetContext returns a copy of the error context
func (ee *EnhancedError) GetContext() map[string]any {
	if ee.Context == nil {
		return nil
	}
	contextCopy := make(map[string]any, len(ee.Context))
	maps.Copy(contextCopy, ee.Context)
	return contextCopy
}

// ErrorBuilder provides a fluent interface for creating enhanced errors
type ErrorBuilder struct {
	err       error
	component string
	category  ErrorCategory
	context   map[string]any
}

// New creates a new error builder wrapping err
func New(err error) *ErrorBuilder {
	return &ErrorBuilder{err: err}
}

// Newf creates a new builder wrapping a formatted error
func Newf(format string, args ...any) *ErrorBuilder {
	return New(fmt.Errorf(format, args...))
}

// Component sets the component name
func (eb *ErrorBuilder) Component(component string) *ErrorBuilder {
	eb.component = component
	return eb
}

// Category sets the error category for better grouping
func (eb *ErrorBuilder) Category(category ErrorCategory) *ErrorBuilder {
	eb.category = category
	return eb
}

// Context adds context data to the error
func (eb *ErrorBuilder) Context(key string, value any) *ErrorBuilder {
	if eb.context == nil {
		eb.context = make(map[string]any)
	}
	eb.context[key] = value
	return eb
}

// FileContext adds file-specific context
func (eb *ErrorBuilder) FileContext(path string) *ErrorBuilder {
	return eb.Context("file", path)
}

// ClipContext adds clip-specific context
func (eb *ErrorBuilder) ClipContext(clipID string) *ErrorBuilder {
	return eb.Context("clip_id", clipID)
}

// Build creates the EnhancedError
func (eb *ErrorBuilder) Build() *EnhancedError {
	ee := &EnhancedError{
		Err:       eb.err,
		Component: eb.component,
		Category:  eb.category,
		Context:   eb.context,
		Timestamp: time.Now(),
	}
	if ee.Component == "" {
		ee.Component = ComponentUnknown
	}
	if ee.Category == "" {
		ee.Category = CategoryGeneric
	}
	return ee
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}
