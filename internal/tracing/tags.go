package tracing

import (
	"context"

	"github.com/opentracing/opentracing-go"

	"github.com/canada-ca/tracker-sub010/internal/utils"
)

const (
	SpanTagUserId    = "user-id"
	SpanTagLanguage  = "language"
	SpanTagEntityId  = "entity-id"
	SpanTagComponent = "component"
	SpanTagAppSource = "app-source"
)

// Component is the layer a span was opened in.
type Component string

const (
	ComponentPostgresRepository Component = "postgresRepository"
	ComponentRest               Component = "rest"
	ComponentGraphQL            Component = "graphql"
	ComponentCronJob            Component = "cronJob"
	ComponentService            Component = "service"
	ComponentListener           Component = "listener"
)

// Tag sets the component and the caller identity carried by ctx.
func (c Component) Tag(ctx context.Context, span opentracing.Span) {
	span.SetTag(SpanTagComponent, string(c))

	customContext := utils.GetContext(ctx)
	if customContext.UserId != "" {
		span.SetTag(SpanTagUserId, customContext.UserId)
	}
	if customContext.Language != "" {
		span.SetTag(SpanTagLanguage, customContext.Language.String())
	}
	if customContext.AppSource != "" {
		span.SetTag(SpanTagAppSource, customContext.AppSource)
	}
}

func SetDefaultRestSpanTags(ctx context.Context, span opentracing.Span) {
	ComponentRest.Tag(ctx, span)
}

func SetDefaultGraphqlSpanTags(ctx context.Context, span opentracing.Span) {
	ComponentGraphQL.Tag(ctx, span)
}

func SetDefaultServiceSpanTags(ctx context.Context, span opentracing.Span) {
	ComponentService.Tag(ctx, span)
}

func SetDefaultPostgresRepositorySpanTags(ctx context.Context, span opentracing.Span) {
	ComponentPostgresRepository.Tag(ctx, span)
}

func SetDefaultListenerSpanTags(ctx context.Context, span opentracing.Span) {
	ComponentListener.Tag(ctx, span)
}

func SetDefaultCronJobSpanTags(ctx context.Context, span opentracing.Span) {
	ComponentCronJob.Tag(ctx, span)
}

// TagEntity records the id of the vertex or edge an operation works on.
func TagEntity(span opentracing.Span, entityId string) {
	if entityId != "" {
		span.SetTag(SpanTagEntityId, entityId)
	}
}
