package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown        ErrorCode = "UNKNOWN"
	ErrInternal       ErrorCode = "INTERNAL"
	ErrInvalidInput   ErrorCode = "INVALID_INPUT"
	ErrNotFound       ErrorCode = "NOT_FOUND"
	ErrAlreadyExists  ErrorCode = "ALREADY_EXISTS"
	ErrPermission     ErrorCode = "PERMISSION"
	ErrNotImplemented ErrorCode = "NOT_IMPLEMENTED"
	ErrCancelled      ErrorCode = "CANCELLED"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Language errors
	ErrLanguageNotFound ErrorCode = "LANGUAGE_NOT_FOUND"
	ErrLanguageInvalid  ErrorCode = "LANGUAGE_INVALID"

	// Template errors
	ErrTemplateNotFound ErrorCode = "TEMPLATE_NOT_FOUND"
	ErrTemplateRead     ErrorCode = "TEMPLATE_READ"
	ErrTemplateRender   ErrorCode = "TEMPLATE_RENDER"
	ErrUnresolvedToken  ErrorCode = "UNRESOLVED_TOKEN"

	// Naming errors
	ErrInvalidName ErrorCode = "INVALID_NAME"

	// FileSystem errors
	ErrFileNotFound ErrorCode = "FILE_NOT_FOUND"
	ErrFileAccess   ErrorCode = "FILE_ACCESS"
	ErrFileWrite    ErrorCode = "FILE_WRITE"
	ErrDirCreate    ErrorCode = "DIR_CREATE"

	// History errors
	ErrHistoryOpen  ErrorCode = "HISTORY_OPEN"
	ErrHistoryQuery ErrorCode = "HISTORY_QUERY"
)

// SrcmakeError represents a structured error with code and details
type SrcmakeError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *SrcmakeError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *SrcmakeError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *SrcmakeError) Is(target error) bool {
	var targetErr *SrcmakeError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new SrcmakeError with the given code and message
func New(code ErrorCode, message string) *SrcmakeError {
	return &SrcmakeError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new SrcmakeError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *SrcmakeError {
	return &SrcmakeError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a SrcmakeError
func Wrap(err error, code ErrorCode, message string) *SrcmakeError {
	if err == nil {
		return nil
	}
	return &SrcmakeError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *SrcmakeError {
	if err == nil {
		return nil
	}
	return &SrcmakeError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *SrcmakeError) WithDetail(key string, value interface{}) *SrcmakeError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *SrcmakeError) WithDetails(details map[string]interface{}) *SrcmakeError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var srcErr *SrcmakeError
	if errors.As(err, &srcErr) {
		return srcErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a SrcmakeError
func GetErrorCode(err error) ErrorCode {
	var srcErr *SrcmakeError
	if errors.As(err, &srcErr) {
		return srcErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a SrcmakeError
func GetErrorDetails(err error) map[string]interface{} {
	var srcErr *SrcmakeError
	if errors.As(err, &srcErr) {
		return srcErr.Details
	}
	return nil
}
