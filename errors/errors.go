package errors

import (
	"net/http"

	"github.com/pkg/errors"
)

var (
	// common errors
	ErrUserMissing = errors.New("user is missing")

	// entity errors
	ErrUserNotFound         = errors.New("user not found")
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrDomainNotFound       = errors.New("domain not found")
	ErrAffiliationNotFound  = errors.New("affiliation not found")

	// auth errors
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// ResultError is a business rule failure that is reported back to the
// caller, either as the error member of a mutation result or as a GraphQL
// error with a code extension.
type ResultError struct {
	Code        int
	Description string
}

func (e *ResultError) Error() string {
	return e.Description
}

func NewResultError(code int, description string) *ResultError {
	return &ResultError{Code: code, Description: description}
}

func BadRequest(description string) *ResultError {
	return NewResultError(http.StatusBadRequest, description)
}

func Forbidden(description string) *ResultError {
	return NewResultError(http.StatusForbidden, description)
}

func NotFound(description string) *ResultError {
	return NewResultError(http.StatusNotFound, description)
}

func Internal(description string) *ResultError {
	return NewResultError(http.StatusInternalServerError, description)
}

// AuthError means the caller is not (or no longer) signed in.
type AuthError struct {
	Description string
}

func (e *AuthError) Error() string {
	return e.Description
}

func NewAuthError(description string) *AuthError {
	return &AuthError{Description: description}
}

func AsResultError(err error) (*ResultError, bool) {
	var re *ResultError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}

func AsAuthError(err error) (*AuthError, bool) {
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}
