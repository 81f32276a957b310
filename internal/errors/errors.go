package errors

import (
	"fmt"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   appErr,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WithCode adds an error code to an existing error
func WithCode(code string, err error) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    code,
			Message: appErr.Message,
			Cause:   appErr.Cause,
		}
	}
	return &AppError{
		Code:    code,
		Message: err.Error(),
		Cause:   err,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetCode returns the error code if it's an AppError, otherwise returns "UNKNOWN"
func GetCode(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Error codes surfaced by the comparison pipeline. Input errors are not
// retryable; DATA_ACCESS is retryable by the caller since fetches perform
// no writes; the data-quality codes require changing the inputs.
const (
	CodeConfigInvalid    = "CONFIG_INVALID"
	CodeInvalidInput     = "INVALID_INPUT"
	CodeUnknownMetric    = "UNKNOWN_METRIC"
	CodeUnknownGrouping  = "UNKNOWN_GROUPING"
	CodeDataAccess       = "DATA_ACCESS"
	CodeEmptyResult      = "EMPTY_RESULT"
	CodeInsufficientData = "INSUFFICIENT_GROUP_DATA"
	CodeInvalidTable     = "INVALID_CONTINGENCY_TABLE"
	CodeInternalError    = "INTERNAL_ERROR"
)

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

func UnknownMetric(id string) *AppError {
	return New(CodeUnknownMetric, fmt.Sprintf("unknown metric %q", id))
}

func UnknownGrouping(id string) *AppError {
	return New(CodeUnknownGrouping, fmt.Sprintf("unknown grouping %q", id))
}

func DataAccess(message string, cause error) *AppError {
	return &AppError{
		Code:    CodeDataAccess,
		Message: message,
		Cause:   cause,
	}
}

func EmptyResult(message string) *AppError {
	return New(CodeEmptyResult, message)
}

func InsufficientGroupData(message string) *AppError {
	return New(CodeInsufficientData, message)
}

func InvalidContingencyTable(message string) *AppError {
	return New(CodeInvalidTable, message)
}

// Retryable reports whether the caller may retry the same invocation
// without changing its inputs.
func Retryable(err error) bool {
	return GetCode(err) == CodeDataAccess
}
