// Package errors provides standardized error handling patterns for hyppo components.
// It includes error classification, standard error variables, the build error
// taxonomy, and helper functions for consistent error wrapping.
package errors

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrorClass represents the classification of errors for handling purposes
type ErrorClass int

const (
	// ErrorTransient represents temporary errors that may be retried
	ErrorTransient ErrorClass = iota
	// ErrorInvalid represents errors due to invalid input or configuration
	ErrorInvalid
	// ErrorFatal represents unrecoverable errors that should stop processing
	ErrorFatal
)

// String returns the string representation of ErrorClass
func (ec ErrorClass) String() string {
	switch ec {
	case ErrorTransient:
		return "transient"
	case ErrorInvalid:
		return "invalid"
	case ErrorFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Sentinels shared across the build pipeline.
var (
	ErrInvalidData   = errors.New("invalid data format")
	ErrParsingFailed = errors.New("parsing failed")

	// ErrSourceUnavailable covers an ontology or template source that
	// could not be reached; a later build may succeed.
	ErrSourceUnavailable = errors.New("source unavailable")

	ErrInvalidConfig  = errors.New("invalid configuration")
	ErrMissingConfig  = errors.New("missing required configuration")
	ErrConfigNotFound = errors.New("configuration not found")

	// Build errors. Each fails a single page, never the whole site.
	ErrUnsupportedConstruct = errors.New("unsupported construct")
	ErrUnknownEntityKind    = errors.New("unknown entity kind")
	ErrTemplateRender       = errors.New("template render failed")
)

// UnsupportedConstructError reports an expression shape the unpacker
// deliberately does not render.
type UnsupportedConstructError struct {
	Construct string
}

// Error implements the error interface
func (e *UnsupportedConstructError) Error() string {
	return fmt.Sprintf("%s: %s", ErrUnsupportedConstruct, e.Construct)
}

// Unwrap returns ErrUnsupportedConstruct
func (e *UnsupportedConstructError) Unwrap() error {
	return ErrUnsupportedConstruct
}

// UnknownEntityKindError reports an IRI with no declaration axiom.
type UnknownEntityKindError struct {
	IRI string
}

// Error implements the error interface
func (e *UnknownEntityKindError) Error() string {
	return fmt.Sprintf("%s: no declaration for %s", ErrUnknownEntityKind, e.IRI)
}

// Unwrap returns ErrUnknownEntityKind
func (e *UnknownEntityKindError) Unwrap() error {
	return ErrUnknownEntityKind
}

// ClassifiedError wraps an error with its classification
type ClassifiedError struct {
	Class     ErrorClass
	Err       error
	Message   string
	Component string
	Operation string
}

// Error implements the error interface
func (ce *ClassifiedError) Error() string {
	if ce.Message != "" {
		return ce.Message
	}
	return ce.Err.Error()
}

// Unwrap returns the underlying error
func (ce *ClassifiedError) Unwrap() error {
	return ce.Err
}

// Message fragments used when an unclassified error carries no sentinel.
var (
	transientPatterns = []string{"timeout", "temporary", "unavailable", "busy", "retry"}
	fatalPatterns     = []string{"fatal", "panic", "out of memory", "disk full"}
)

// classOf resolves err to a class. ok is false when nothing marks it.
// An explicit classification wins, then the build taxonomy, then sentinels,
// then message patterns.
func classOf(err error) (class ErrorClass, ok bool) {
	var ce *ClassifiedError
	switch {
	case err == nil:
		return ErrorTransient, false
	case errors.As(err, &ce):
		return ce.Class, true
	case isBuildError(err):
		// Entity IRIs end up in these messages, so patterns must not see them.
		return ErrorInvalid, true
	case errors.Is(err, ErrSourceUnavailable),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return ErrorTransient, true
	case errors.Is(err, ErrInvalidConfig), errors.Is(err, ErrMissingConfig):
		return ErrorFatal, true
	case errors.Is(err, ErrInvalidData), errors.Is(err, ErrParsingFailed):
		return ErrorInvalid, true
	}

	msg := strings.ToLower(err.Error())
	if containsAny(msg, transientPatterns) {
		return ErrorTransient, true
	}
	if containsAny(msg, fatalPatterns) {
		return ErrorFatal, true
	}
	return ErrorTransient, false
}

func containsAny(s string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

// IsTransient reports whether a later attempt could succeed.
func IsTransient(err error) bool {
	class, ok := classOf(err)
	return ok && class == ErrorTransient
}

// IsFatal reports whether err should stop the command.
func IsFatal(err error) bool {
	class, ok := classOf(err)
	return ok && class == ErrorFatal
}

// IsInvalid reports whether err stems from bad input.
func IsInvalid(err error) bool {
	class, ok := classOf(err)
	return ok && class == ErrorInvalid
}

// IsUnsupportedConstruct reports whether err is, or wraps, an unsupported construct.
func IsUnsupportedConstruct(err error) bool {
	return errors.Is(err, ErrUnsupportedConstruct)
}

// IsUnknownEntityKind reports whether err is, or wraps, a missing declaration.
func IsUnknownEntityKind(err error) bool {
	return errors.Is(err, ErrUnknownEntityKind)
}

func isBuildError(err error) bool {
	return errors.Is(err, ErrUnsupportedConstruct) ||
		errors.Is(err, ErrUnknownEntityKind) ||
		errors.Is(err, ErrTemplateRender)
}

// Classify returns the class of err. Unmarked errors, and nil, count as
// transient.
func Classify(err error) ErrorClass {
	class, _ := classOf(err)
	return class
}

// Wrap adds call-site context in the form
// "component.method: action failed: <err>". The class of err is preserved.
func Wrap(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s.%s: %s failed: %w", component, method, action, err)
}

func wrapAs(class ErrorClass, err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	wrapped := Wrap(err, component, method, action)
	return &ClassifiedError{
		Class:     class,
		Err:       wrapped,
		Message:   wrapped.Error(),
		Component: component,
		Operation: method,
	}
}

// WrapTransient wraps err with context and marks it transient.
func WrapTransient(err error, component, method, action string) error {
	return wrapAs(ErrorTransient, err, component, method, action)
}

// WrapFatal wraps err with context and marks it fatal.
func WrapFatal(err error, component, method, action string) error {
	return wrapAs(ErrorFatal, err, component, method, action)
}

// WrapInvalid wraps err with context and marks it invalid.
func WrapInvalid(err error, component, method, action string) error {
	return wrapAs(ErrorInvalid, err, component, method, action)
}

// TemplateRender wraps a template engine failure so it unwraps to ErrTemplateRender
// as well as to the engine's own error.
func TemplateRender(err error, template string) error {
	if err == nil {
		return nil
	}
	return WrapInvalid(fmt.Errorf("%w: %s: %w", ErrTemplateRender, template, err), "Engine", "Render", "template execution")
}
