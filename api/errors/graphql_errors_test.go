package api_errors

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tracker_errors "github.com/canada-ca/tracker-sub010/errors"
	"github.com/canada-ca/tracker-sub010/internal/pagination"
)

func TestFromError(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		err     error
		code    string
		message string
	}{
		{"auth", tracker_errors.NewAuthError("Authentication error. Please sign in."), CodeUnauthorized, "Authentication error. Please sign in."},
		{"bad request", tracker_errors.BadRequest("bad"), CodeBadInput, "bad"},
		{"forbidden", tracker_errors.Forbidden("no"), CodeForbidden, "no"},
		{"not found", tracker_errors.NotFound("missing"), CodeNotFound, "missing"},
		{"internal", tracker_errors.Internal("oops"), CodeInternal, "oops"},
		{"wrapped result", errors.Wrap(tracker_errors.Forbidden("no"), "context"), CodeForbidden, "no"},
		{"pagination", &pagination.Error{Message: "page"}, CodeBadInput, "page"},
		{"unexpected", errors.New("connection refused"), CodeInternal, "Unable to process request. Please try again."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FromError(ctx, tt.err)
			var re *ResolverError
			require.ErrorAs(t, err, &re)
			assert.Equal(t, tt.code, re.Extensions()["code"])
			assert.Equal(t, tt.message, re.Error())
		})
	}

	assert.Nil(t, FromError(ctx, nil))
}

func TestNewError(t *testing.T) {
	err := NewError("too deep", CodeBadInput, map[string]interface{}{"limit": 15})
	assert.Equal(t, "too deep", err.Message)
	assert.Equal(t, CodeBadInput, err.Extensions["code"])
	assert.Equal(t, 15, err.Extensions["limit"])
}
