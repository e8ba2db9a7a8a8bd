package errors

import (
	"errors"
	"net/http"
	"strings"

	"github.com/feral-file/ff-ownership/internal/domain"
)

// ErrorCode is the stable machine-readable code of an API error
type ErrorCode string

const (
	// Client errors (4xx)
	ErrCodeBadRequest                    ErrorCode = "bad_request"
	ErrCodeNotFound                      ErrorCode = "not_found"
	ErrCodeValidationFailed              ErrorCode = "validation_failed"
	ErrCodeUnauthorized                  ErrorCode = "unauthorized"
	ErrCodeForbidden                     ErrorCode = "forbidden"
	ErrCodeNotOwner                      ErrorCode = "not_owner"
	ErrCodeAlreadyOwned                  ErrorCode = "already_owned"
	ErrCodeDuplicatePendingClaim         ErrorCode = "duplicate_pending_claim"
	ErrCodeInsufficientContributionScore ErrorCode = "insufficient_contribution_score"
	ErrCodeClaimNotFound                 ErrorCode = "claim_not_found"
	ErrCodeClaimAlreadyResolved          ErrorCode = "claim_already_resolved"
	ErrCodeOwnershipNotFound             ErrorCode = "ownership_not_found"
	ErrCodeInvalidContributionType       ErrorCode = "invalid_contribution_type"
	ErrCodeRateLimited                   ErrorCode = "rate_limited"

	// Server errors (5xx)
	ErrCodeInternalError ErrorCode = "internal_error"
	ErrCodeDatabaseError ErrorCode = "database_error"
)

// APIError is the body of every error response, wrapped as {"error": {...}}
type APIError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	if e.Details == "" {
		return string(e.Code) + ": " + e.Message
	}
	return string(e.Code) + ": " + e.Message + " (" + e.Details + ")"
}

// Response is the error envelope
type Response struct {
	Error *APIError `json:"error"`
}

func newError(code ErrorCode, message string, details []string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewBadRequestError(message string, details ...string) *APIError {
	return newError(ErrCodeBadRequest, message, details)
}

func NewNotFoundError(message string, details ...string) *APIError {
	return newError(ErrCodeNotFound, message, details)
}

func NewValidationError(details ...string) *APIError {
	return newError(ErrCodeValidationFailed, "Validation failed", details)
}

func NewUnauthorizedError(message string, details ...string) *APIError {
	return newError(ErrCodeUnauthorized, message, details)
}

func NewRateLimitedError(details ...string) *APIError {
	return newError(ErrCodeRateLimited, "Too many requests", details)
}

func NewInternalError(message string, details ...string) *APIError {
	return newError(ErrCodeInternalError, message, details)
}

type kindMapping struct {
	status  int
	code    ErrorCode
	message string
}

var kindMappings = map[domain.ErrorKind]kindMapping{
	domain.KindAuthenticationRequired:        {http.StatusUnauthorized, ErrCodeUnauthorized, "Authentication required"},
	domain.KindNotOwner:                      {http.StatusForbidden, ErrCodeNotOwner, "Caller is not the owner"},
	domain.KindAlreadyOwned:                  {http.StatusConflict, ErrCodeAlreadyOwned, "Asset is already owned"},
	domain.KindDuplicatePendingClaim:         {http.StatusConflict, ErrCodeDuplicatePendingClaim, "A pending claim already exists"},
	domain.KindInsufficientContributionScore: {http.StatusForbidden, ErrCodeInsufficientContributionScore, "Insufficient contribution score"},
	domain.KindClaimNotFound:                 {http.StatusNotFound, ErrCodeClaimNotFound, "Claim not found"},
	domain.KindClaimAlreadyResolved:          {http.StatusConflict, ErrCodeClaimAlreadyResolved, "Claim is already resolved"},
	domain.KindOwnershipNotFound:             {http.StatusNotFound, ErrCodeOwnershipNotFound, "Ownership record not found"},
	domain.KindInvalidContributionType:       {http.StatusBadRequest, ErrCodeInvalidContributionType, "Invalid contribution type"},
	domain.KindInvalidArgument:               {http.StatusBadRequest, ErrCodeValidationFailed, "Validation failed"},
	domain.KindStorageError:                  {http.StatusInternalServerError, ErrCodeDatabaseError, "Storage failure"},
}

// FromError maps an operation error to its HTTP status and API error.
// Storage details are not exposed to clients.
func FromError(err error) (int, *APIError) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return http.StatusBadRequest, apiErr
	}

	var de *domain.Error
	if !errors.As(err, &de) {
		return http.StatusInternalServerError, NewInternalError("Internal server error")
	}

	m, ok := kindMappings[de.Kind]
	if !ok {
		return http.StatusInternalServerError, NewInternalError("Internal server error")
	}
	if de.Kind == domain.KindStorageError {
		return m.status, &APIError{Code: m.code, Message: m.message}
	}
	return m.status, &APIError{Code: m.code, Message: m.message, Details: de.Detail}
}
