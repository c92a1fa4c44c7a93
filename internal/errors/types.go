// Package errors provides the structured error type shared by the website
// packages. Rendering itself never fails on content; these errors come from
// configuration, feature files, asset resolution and the preview server.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents different categories of errors.
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeIO         ErrorType = "io"
	ErrorTypeConfig     ErrorType = "config"
	ErrorTypeAsset      ErrorType = "asset"
	ErrorTypeInternal   ErrorType = "internal"
)

// Error codes used across packages.
const (
	CodeEmptyTitle       = "EMPTY_TITLE"
	CodeEmptyDescription = "EMPTY_DESCRIPTION"
	CodeAssetNotFound    = "ASSET_NOT_FOUND"
	CodeAssetInvalid     = "ASSET_INVALID"
	CodeFeatureFile      = "FEATURE_FILE"
	CodeFeatureParse     = "FEATURE_PARSE"
	CodeInvalidConfig    = "INVALID_CONFIG"
	CodeRenderFailed     = "RENDER_FAILED"
)

// SiteError is a structured error type with context.
type SiteError struct {
	Type    ErrorType
	Code    string
	Message string
	Cause   error
	Context map[string]interface{}
	Path    string
}

// Error implements the error interface.
func (e *SiteError) Error() string {
	var parts []string

	if e.Code != "" {
		parts = append(parts, fmt.Sprintf("[%s]", e.Code))
	}

	if e.Path != "" {
		parts = append(parts, e.Path)
	}

	parts = append(parts, e.Message)

	result := strings.Join(parts, " ")

	if e.Cause != nil {
		result += fmt.Sprintf(": %v", e.Cause)
	}

	return result
}

// Unwrap returns the underlying cause error.
func (e *SiteError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a SiteError with the same type and code.
func (e *SiteError) Is(target error) bool {
	var t *SiteError
	if errors.As(target, &t) {
		return e.Type == t.Type && e.Code == t.Code
	}

	return false
}

// WithContext adds context information to the error.
func (e *SiteError) WithContext(key string, value interface{}) *SiteError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value

	return e
}

// WithPath records the file or asset reference the error concerns.
func (e *SiteError) WithPath(path string) *SiteError {
	e.Path = path

	return e
}

// WithCause records the underlying error.
func (e *SiteError) WithCause(cause error) *SiteError {
	e.Cause = cause

	return e
}

// NewValidationError creates a validation error.
func NewValidationError(code, message string) *SiteError {
	return &SiteError{
		Type:    ErrorTypeValidation,
		Code:    code,
		Message: message,
	}
}

// NewIOError creates an I/O error.
func NewIOError(code, message string, cause error) *SiteError {
	return &SiteError{
		Type:    ErrorTypeIO,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewConfigError creates a configuration error.
func NewConfigError(code, message string) *SiteError {
	return &SiteError{
		Type:    ErrorTypeConfig,
		Code:    code,
		Message: message,
	}
}

// NewAssetError creates an asset resolution error.
func NewAssetError(code, message string, cause error) *SiteError {
	return &SiteError{
		Type:    ErrorTypeAsset,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewInternalError creates an internal error.
func NewInternalError(code, message string, cause error) *SiteError {
	return &SiteError{
		Type:    ErrorTypeInternal,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// IsType reports whether err wraps a SiteError of the given type.
func IsType(err error, errType ErrorType) bool {
	var se *SiteError
	if errors.As(err, &se) {
		return se.Type == errType
	}

	return false
}

// IsAssetError checks if an error came from asset resolution.
func IsAssetError(err error) bool {
	return IsType(err, ErrorTypeAsset)
}

// IsValidationError checks if an error is validation-related.
func IsValidationError(err error) bool {
	return IsType(err, ErrorTypeValidation)
}
