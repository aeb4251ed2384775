package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Per-category failure classes. Every one of these is recoverable: a failure
// on one category never aborts processing of the remaining categories.
var (
	ErrExtraction    = errors.New("pdf text extraction failed")
	ErrProvider      = errors.New("completion provider failed")
	ErrNoJSONFound   = errors.New("no json object in model response")
	ErrInvalidJSON   = errors.New("model response json is malformed")
	ErrInvalidAmount = errors.New("amount is not a valid decimal")

	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
)

// Failure codes surfaced to the UI next to the affected category.
const (
	CodeExtraction    = "EXTRACTION_FAILURE"
	CodeProvider      = "PROVIDER_FAILURE"
	CodeNoJSON        = "NO_JSON_FOUND"
	CodeInvalidJSON   = "INVALID_JSON"
	CodeInvalidAmount = "INVALID_AMOUNT"
	CodeInternal      = "INTERNAL"
)

// ErrorCode classifies err into one of the stable failure codes.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrExtraction):
		return CodeExtraction
	case errors.Is(err, ErrProvider):
		return CodeProvider
	case errors.Is(err, ErrNoJSONFound):
		return CodeNoJSON
	case errors.Is(err, ErrInvalidJSON):
		return CodeInvalidJSON
	case errors.Is(err, ErrInvalidAmount):
		return CodeInvalidAmount
	default:
		return CodeInternal
	}
}

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
