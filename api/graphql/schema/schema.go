package schema

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/graph-gophers/graphql-go"
	gqlerrors "github.com/graph-gophers/graphql-go/errors"
	gqltrace "github.com/graph-gophers/graphql-go/trace/opentracing"

	api_errors "github.com/canada-ca/tracker-sub010/api/errors"
	"github.com/canada-ca/tracker-sub010/internal/i18n"
	"github.com/canada-ca/tracker-sub010/internal/logger"
)

//go:embed schema.graphql
var SDL string

const maxParallelism = 20

// Parse binds the schema to the root resolver. Every field must be backed by
// a resolver method, so a mismatch fails here rather than at query time.
func Parse(root interface{}, log logger.Logger, depthLimit int) (*graphql.Schema, error) {
	return graphql.ParseSchema(SDL, root,
		graphql.MaxDepth(depthLimit),
		graphql.MaxParallelism(maxParallelism),
		graphql.Tracer(gqltrace.Tracer{}),
		graphql.Logger(&panicLogger{log: log}),
		graphql.PanicHandler(&panicHandler{}),
	)
}

type panicLogger struct {
	log logger.Logger
}

func (l *panicLogger) LogPanic(_ context.Context, value interface{}) {
	l.log.Errorf("graphql: panic occurred: %v", value)
}

type panicHandler struct{}

func (h *panicHandler) MakePanicError(ctx context.Context, value interface{}) *gqlerrors.QueryError {
	return &gqlerrors.QueryError{
		Message:    i18n.T(ctx, "Unable to process request. Please try again."),
		Err:        fmt.Errorf("panic: %v", value),
		Extensions: map[string]interface{}{"code": api_errors.CodeInternal},
	}
}
