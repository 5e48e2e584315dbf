package shared

import (
	"errors"
	"fmt"
)

// Error codes understood by the HTTP layer and the operator tooling.
const (
	CodeNotFound             = "NOT_FOUND"
	CodeValidation           = "VALIDATION_ERROR"
	CodeInvalidAmount        = "INVALID_AMOUNT"
	CodeInvalidRate          = "INVALID_RATE"
	CodeRateInversion        = "RATE_INVERSION"
	CodePersistenceFailure   = "PERSISTENCE_FAILURE"
	CodeMirrorPostingFailure = "MIRROR_POSTING_FAILURE"
	CodeExtractionFailure    = "EXTRACTION_FAILURE"
	CodeIllegalDeletion      = "ILLEGAL_DELETION"
	CodeAlreadyExists        = "ALREADY_EXISTS"
	CodeInvalidState         = "INVALID_STATE"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	cause   error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap exposes the underlying cause, if any
func (e *DomainError) Unwrap() error {
	return e.cause
}

// Is matches domain errors by code so sentinel comparisons survive wrapping
func (e *DomainError) Is(target error) bool {
	var de *DomainError
	if !errors.As(target, &de) {
		return false
	}
	return de.Code == e.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WrapDomainError creates a domain error that carries an underlying cause
func WrapDomainError(code, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		cause:   cause,
	}
}

// NewValidationError reports input rejected before any write happened
func NewValidationError(message string) *DomainError {
	return NewDomainError(CodeValidation, message)
}

// NewPersistenceFailure reports that the primary store refused a write or read
func NewPersistenceFailure(op string, cause error) *DomainError {
	return WrapDomainError(CodePersistenceFailure, op+" failed", cause)
}

// NewIllegalDeletion reports an attempt to delete a record the caller does not own
func NewIllegalDeletion(message string) *DomainError {
	return NewDomainError(CodeIllegalDeletion, message)
}

// NewExtractionFailure reports a receipt extraction that produced nothing usable
func NewExtractionFailure(cause error) *DomainError {
	return WrapDomainError(CodeExtractionFailure, "receipt extraction failed", cause)
}

// NewMirrorPostingFailure reports a company ledger mirror write that did not land
func NewMirrorPostingFailure(cause error) *DomainError {
	return WrapDomainError(CodeMirrorPostingFailure, "company ledger posting failed", cause)
}

// IsCode reports whether err is a DomainError with the given code
func IsCode(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// Common domain errors
var (
	ErrNotFound      = NewDomainError(CodeNotFound, "Resource not found")
	ErrAlreadyExists = NewDomainError(CodeAlreadyExists, "Resource already exists")
	ErrInvalidInput  = NewDomainError(CodeValidation, "Invalid input provided")
	ErrInvalidState  = NewDomainError(CodeInvalidState, "Operation not allowed in current state")
)
