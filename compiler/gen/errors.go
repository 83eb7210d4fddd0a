package gen

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure cases.
var (
	// ErrInvalidArgument indicates a nil or malformed argument. It is the
	// only error class the traversal core raises; it is always fatal to
	// the current call and never retried.
	ErrInvalidArgument = errors.New("odatagen: invalid argument")
	// ErrMissingConfig indicates a configuration error.
	ErrMissingConfig = errors.New("odatagen: missing configuration")
	// ErrInvalidModel indicates an inconsistent metadata model.
	ErrInvalidModel = errors.New("odatagen: invalid model")
	// ErrGenerationFailed indicates a code generation failure.
	ErrGenerationFailed = errors.New("odatagen: code generation failed")
)

// ArgumentError reports a nil or otherwise unusable argument.
type ArgumentError struct {
	Name    string // Argument name
	Message string
}

// Error implements the error interface.
func (e *ArgumentError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("odatagen: invalid argument %q: %s", e.Name, e.Message)
	}
	return fmt.Sprintf("odatagen: invalid argument %q", e.Name)
}

// Is reports whether the target matches the sentinel error for ArgumentError.
func (e *ArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// NewArgumentError creates a new ArgumentError.
func NewArgumentError(name, message string) *ArgumentError {
	return &ArgumentError{Name: name, Message: message}
}

// IsInvalidArgument returns true if the error is an ArgumentError.
func IsInvalidArgument(err error) bool {
	if err == nil {
		return false
	}
	var e *ArgumentError
	return errors.As(err, &e) || errors.Is(err, ErrInvalidArgument)
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("odatagen: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("odatagen: config error for %q: %s", e.Option, e.Message)
}

// Is reports whether the target matches the sentinel error for ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrMissingConfig
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{Option: option, Value: value, Message: message}
}

// ModelError represents an inconsistency in the loaded metadata model,
// such as a base type or container set referencing an undeclared type.
type ModelError struct {
	Type    string // Entity type or container name
	Ref     string // Offending reference (if applicable)
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ModelError) Error() string {
	var b strings.Builder
	b.WriteString("odatagen: model error")
	if e.Type != "" {
		b.WriteString(" on type ")
		b.WriteString(e.Type)
	}
	if e.Ref != "" {
		b.WriteString(" referencing ")
		b.WriteString(e.Ref)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *ModelError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for ModelError.
func (e *ModelError) Is(target error) bool {
	return target == ErrInvalidModel
}

// NewModelError creates a new ModelError.
func NewModelError(typeName, ref, message string, cause error) *ModelError {
	return &ModelError{Type: typeName, Ref: ref, Message: message, Cause: cause}
}

// GenerationError represents a code generation failure for a specific route.
type GenerationError struct {
	Route   string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	var b strings.Builder
	b.WriteString("odatagen: generation failed")
	if e.Route != "" {
		b.WriteString(" for route ")
		b.WriteString(e.Route)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for GenerationError.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

// NewGenerationError creates a new GenerationError.
func NewGenerationError(route, message string, cause error) *GenerationError {
	return &GenerationError{Route: route, Message: message, Cause: cause}
}
