package domain

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeValidation   ErrorCode = "VALIDATION_ERROR"
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"
	CodeForbidden    ErrorCode = "FORBIDDEN"

	// Field level validation errors
	CodeMissingField  ErrorCode = "MISSING_FIELD"
	CodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	CodeOutOfRange    ErrorCode = "OUT_OF_RANGE"

	// Worksheet specific errors
	CodeWorksheetNotFound  ErrorCode = "WORKSHEET_NOT_FOUND"
	CodeEmptySelection     ErrorCode = "EMPTY_SELECTION"
	CodeMalformedProblemID ErrorCode = "MALFORMED_PROBLEM_ID"
	CodeStore              ErrorCode = "STORE_ERROR"
	CodeRender             ErrorCode = "RENDER_ERROR"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap exposes the underlying cause to errors.Is / errors.As.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// WithContext attaches a key/value pair that is returned to clients as details.
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Helper functions for common errors
func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(CodeInternal, message, err)
}

func NewUnauthorizedError(message string) *DomainError {
	return NewError(CodeUnauthorized, message, nil)
}

func NewForbiddenError(message string) *DomainError {
	return NewError(CodeForbidden, message, nil)
}

func NewWorksheetNotFoundError(worksheetID string) *DomainError {
	return NewError(CodeWorksheetNotFound, fmt.Sprintf("Worksheet not found with ID: %s", worksheetID), nil).
		WithContext("worksheet_id", worksheetID)
}

func NewEmptySelectionError() *DomainError {
	return NewError(CodeEmptySelection, "A worksheet must contain at least one problem", nil)
}

func NewMalformedProblemIDError(problemID string) *DomainError {
	return NewError(CodeMalformedProblemID, fmt.Sprintf("Malformed structured problem ID: %s", problemID), nil).
		WithContext("problem_id", problemID)
}

func NewStoreError(message string, err error) *DomainError {
	return NewError(CodeStore, message, err)
}

func NewRenderError(err error) *DomainError {
	return NewError(CodeRender, "Failed to render PDF document", err)
}

// HasCode reports whether err is a DomainError carrying the given code.
func HasCode(err error, code ErrorCode) bool {
	de, ok := AsDomainError(err)
	return ok && de.Code == code
}
