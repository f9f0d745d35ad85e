package resolver

import (
	"context"
	"strings"

	"github.com/graph-gophers/graphql-go"
	"github.com/opentracing/opentracing-go"

	api_errors "github.com/canada-ca/tracker-sub010/api/errors"
	tracker_errors "github.com/canada-ca/tracker-sub010/errors"
	"github.com/canada-ca/tracker-sub010/interfaces"
	"github.com/canada-ca/tracker-sub010/internal/logger"
	"github.com/canada-ca/tracker-sub010/internal/pagination"
	"github.com/canada-ca/tracker-sub010/internal/repository"
	"github.com/canada-ca/tracker-sub010/internal/tracing"
	"github.com/canada-ca/tracker-sub010/services"
)

// Resolver is the root of both the Query and the Mutation types.
type Resolver struct {
	log          logger.Logger
	services     *services.Services
	repositories *repository.Repositories
}

func NewResolver(log logger.Logger, s *services.Services, repos *repository.Repositories) *Resolver {
	return &Resolver{
		log:          log,
		services:     s,
		repositories: repos,
	}
}

// ConnectionArgs are the relay arguments accepted by every connection field.
type ConnectionArgs struct {
	First  *int32
	After  *string
	Last   *int32
	Before *string
	Search *string
}

type OrderInput struct {
	Field     string
	Direction string
}

func (a ConnectionArgs) page() pagination.Args {
	return pagination.Args{First: a.First, Last: a.Last, After: a.After, Before: a.Before}
}

func (a ConnectionArgs) withOrder(order *OrderInput) interfaces.ConnectionArgs {
	args := interfaces.ConnectionArgs{Args: a.page()}
	if a.Search != nil {
		args.Search = strings.TrimSpace(*a.Search)
	}
	if order != nil {
		// DMARC_STATUS -> dmarc-status
		args.Order = interfaces.Order{
			Field: strings.ReplaceAll(strings.ToLower(order.Field), "_", "-"),
			Desc:  order.Direction == "DESC",
		}
	}
	return args
}

func startSpan(ctx context.Context, operationName string) (opentracing.Span, context.Context) {
	span, ctx := opentracing.StartSpanFromContext(ctx, operationName)
	tracing.SetDefaultGraphqlSpanTags(ctx, span)
	return span, ctx
}

// fail records err on the span and converts it to a coded GraphQL error.
func fail(ctx context.Context, span opentracing.Span, err error) error {
	tracing.TraceErr(span, err)
	return api_errors.FromError(ctx, err)
}

// mutationResult turns business rule failures into the error member of a
// result union. Anything else becomes a top level GraphQL error.
func mutationResult(ctx context.Context, span opentracing.Span, result *resultResolver, err error) (*resultResolver, error) {
	if err == nil {
		return result, nil
	}
	if resultErr, ok := tracker_errors.AsResultError(err); ok {
		tracing.TraceErr(span, err)
		return &resultResolver{err: &errorResolver{err: resultErr}}, nil
	}
	return nil, fail(ctx, span, err)
}

func statusResult(status string) *resultResolver {
	return &resultResolver{status: &statusResolver{status: status}}
}

func globalID(typeName, id string) graphql.ID {
	return graphql.ID(pagination.ToGlobalID(typeName, id))
}

// localID decodes a relay id. Undecodable ids yield "" and fail lookups.
func localID(id graphql.ID) string {
	_, local := pagination.FromGlobalID(string(id))
	return local
}

func optionalLocalID(id *graphql.ID) *string {
	if id == nil {
		return nil
	}
	local := localID(*id)
	return &local
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
