package dto

import "net/http"

// Error codes returned to API clients. Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	ErrCodeUnknown  = "ERR_UNKNOWN"
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeInvalidAmount is used for non-positive or malformed money values
	ErrCodeInvalidAmount = "ERR_VALIDATION_AMOUNT"
	// ErrCodeInvalidRate is used for rates outside their allowed range
	ErrCodeInvalidRate = "ERR_VALIDATION_RATE"
	// ErrCodeRateInversion is used when a specialist rate is below the helper rate
	ErrCodeRateInversion = "ERR_VALIDATION_RATE_INVERSION"
)

// Resource error codes
const (
	ErrCodeNotFound      = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	ErrCodeConflict      = "ERR_CONFLICT"
	// ErrCodeIllegalDeletion is used when a row owned by another system is deleted
	ErrCodeIllegalDeletion = "ERR_ILLEGAL_DELETION"
)

// Business rule error codes
const (
	ErrCodeInvalidState = "ERR_INVALID_STATE"
)

// Infrastructure error codes
const (
	// ErrCodePersistenceFailure is used when the ledger store rejected a write
	ErrCodePersistenceFailure = "ERR_PERSISTENCE_FAILURE"
	// ErrCodeMirrorPosting is used when the company ledger posting failed
	ErrCodeMirrorPosting = "ERR_MIRROR_POSTING"
	// ErrCodeExtraction is used when a receipt could not be read
	ErrCodeExtraction = "ERR_EXTRACTION"
)

// Input error codes
const (
	ErrCodeBadRequest      = "ERR_BAD_REQUEST"
	ErrCodeInvalidJSON     = "ERR_INVALID_JSON"
	ErrCodeRequestTooLarge = "ERR_REQUEST_TOO_LARGE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	// Validation errors -> 400 Bad Request
	ErrCodeValidation:    http.StatusBadRequest,
	ErrCodeInvalidAmount: http.StatusBadRequest,
	ErrCodeInvalidRate:   http.StatusBadRequest,
	ErrCodeRateInversion: http.StatusBadRequest,

	// Resource errors
	ErrCodeNotFound:        http.StatusNotFound,
	ErrCodeAlreadyExists:   http.StatusConflict,
	ErrCodeConflict:        http.StatusConflict,
	ErrCodeIllegalDeletion: http.StatusConflict,

	ErrCodeInvalidState: http.StatusUnprocessableEntity,

	// Store unavailable -> 503, the client may retry
	ErrCodePersistenceFailure: http.StatusServiceUnavailable,
	ErrCodeMirrorPosting:      http.StatusBadGateway,
	ErrCodeExtraction:         http.StatusBadGateway,

	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeInvalidJSON:     http.StatusBadRequest,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps shared.DomainError codes to API codes
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":              ErrCodeNotFound,
	"VALIDATION_ERROR":       ErrCodeValidation,
	"INVALID_AMOUNT":         ErrCodeInvalidAmount,
	"INVALID_RATE":           ErrCodeInvalidRate,
	"RATE_INVERSION":         ErrCodeRateInversion,
	"PERSISTENCE_FAILURE":    ErrCodePersistenceFailure,
	"MIRROR_POSTING_FAILURE": ErrCodeMirrorPosting,
	"EXTRACTION_FAILURE":     ErrCodeExtraction,
	"ILLEGAL_DELETION":       ErrCodeIllegalDeletion,
	"ALREADY_EXISTS":         ErrCodeAlreadyExists,
	"INVALID_STATE":          ErrCodeInvalidState,
}

// NormalizeErrorCode converts a domain error code to its API form.
// Codes already in API form or unknown are returned as-is.
func NormalizeErrorCode(code string) string {
	if apiCode, ok := DomainErrorCodeMapping[code]; ok {
		return apiCode
	}
	return code
}
