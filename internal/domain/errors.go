package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures returned by the ownership subsystem
type ErrorKind string

const (
	KindAuthenticationRequired        ErrorKind = "authentication_required"
	KindNotOwner                      ErrorKind = "not_owner"
	KindAlreadyOwned                  ErrorKind = "already_owned"
	KindDuplicatePendingClaim         ErrorKind = "duplicate_pending_claim"
	KindInsufficientContributionScore ErrorKind = "insufficient_contribution_score"
	KindClaimNotFound                 ErrorKind = "claim_not_found"
	KindClaimAlreadyResolved          ErrorKind = "claim_already_resolved"
	KindOwnershipNotFound             ErrorKind = "ownership_not_found"
	KindInvalidContributionType       ErrorKind = "invalid_contribution_type"
	KindInvalidArgument               ErrorKind = "invalid_argument"
	KindStorageError                  ErrorKind = "storage_error"
)

// Error is the structured error returned by every public operation.
// Detail is an optional machine-oriented explanation, not a user-facing message.
type Error struct {
	Kind   ErrorKind
	Detail string
	Err    error
}

func (e *Error) Error() string {
	switch {
	case e.Detail != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Detail, e.Err)
	case e.Detail != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	default:
		return string(e.Kind)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error with the same kind, so sentinels below work with errors.Is
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels for errors.Is matching
var (
	ErrAuthenticationRequired        = &Error{Kind: KindAuthenticationRequired}
	ErrNotOwner                      = &Error{Kind: KindNotOwner}
	ErrAlreadyOwned                  = &Error{Kind: KindAlreadyOwned}
	ErrDuplicatePendingClaim         = &Error{Kind: KindDuplicatePendingClaim}
	ErrInsufficientContributionScore = &Error{Kind: KindInsufficientContributionScore}
	ErrClaimNotFound                 = &Error{Kind: KindClaimNotFound}
	ErrClaimAlreadyResolved          = &Error{Kind: KindClaimAlreadyResolved}
	ErrOwnershipNotFound             = &Error{Kind: KindOwnershipNotFound}
	ErrInvalidContributionType       = &Error{Kind: KindInvalidContributionType}
	ErrInvalidArgument               = &Error{Kind: KindInvalidArgument}
	ErrStorage                       = &Error{Kind: KindStorageError}
)

// NewError creates an error of the given kind with an optional detail
func NewError(kind ErrorKind, detail string) *Error {
	return &Error{Kind: kind, Detail: detail}
}

// NewStorageError wraps an unexpected persistent store failure
func NewStorageError(op string, err error) *Error {
	return &Error{Kind: KindStorageError, Detail: op, Err: err}
}

// KindOf returns the kind of a domain error, or KindStorageError for anything else
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStorageError
}

// AsDomainError returns err unchanged when it is already a domain error,
// otherwise wraps it as a storage error for the given operation
func AsDomainError(op string, err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return NewStorageError(op, err)
}
