package api_errors

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
	"github.com/vektah/gqlparser/v2/gqlerror"

	tracker_errors "github.com/canada-ca/tracker-sub010/errors"
	"github.com/canada-ca/tracker-sub010/internal/i18n"
	"github.com/canada-ca/tracker-sub010/internal/pagination"
)

const (
	CodeNotFound     = "NOT_FOUND"
	CodeForbidden    = "FORBIDDEN"
	CodeBadInput     = "BAD_USER_INPUT"
	CodeInternal     = "INTERNAL_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
)

// NewError creates a standardized GraphQL error for requests rejected before
// execution.
func NewError(message string, code string, extensions map[string]interface{}) *gqlerror.Error {
	if extensions == nil {
		extensions = make(map[string]interface{})
	}
	extensions["code"] = code

	return &gqlerror.Error{
		Message:    message,
		Extensions: extensions,
	}
}

// ResolverError is returned from resolvers. The engine copies Extensions
// into the error entry of the response.
type ResolverError struct {
	Message string
	Code    string
	cause   error
}

func (e *ResolverError) Error() string {
	return e.Message
}

func (e *ResolverError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.Code}
}

func (e *ResolverError) Unwrap() error {
	return e.cause
}

// FromError maps a service error to a coded resolver error. Unexpected
// errors are reported with a generic message.
func FromError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}

	var re *ResolverError
	if errors.As(err, &re) {
		return re
	}
	if authErr, ok := tracker_errors.AsAuthError(err); ok {
		return &ResolverError{Message: authErr.Description, Code: CodeUnauthorized, cause: err}
	}
	if resultErr, ok := tracker_errors.AsResultError(err); ok {
		return &ResolverError{Message: resultErr.Description, Code: codeForStatus(resultErr.Code), cause: err}
	}
	var pageErr *pagination.Error
	if errors.As(err, &pageErr) {
		return &ResolverError{Message: pageErr.Message, Code: CodeBadInput, cause: err}
	}
	return &ResolverError{
		Message: i18n.T(ctx, "Unable to process request. Please try again."),
		Code:    CodeInternal,
		cause:   err,
	}
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return CodeBadInput
	case http.StatusUnauthorized:
		return CodeUnauthorized
	case http.StatusForbidden:
		return CodeForbidden
	case http.StatusNotFound:
		return CodeNotFound
	default:
		return CodeInternal
	}
}
