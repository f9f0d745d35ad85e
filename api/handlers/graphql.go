package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/graph-gophers/graphql-go"
	"github.com/opentracing/opentracing-go"
	"github.com/vektah/gqlparser/v2/gqlerror"

	api_errors "github.com/canada-ca/tracker-sub010/api/errors"
	"github.com/canada-ca/tracker-sub010/api/graphql/complexity"
	"github.com/canada-ca/tracker-sub010/api/graphql/loaders"
	"github.com/canada-ca/tracker-sub010/config"
	"github.com/canada-ca/tracker-sub010/internal/i18n"
	"github.com/canada-ca/tracker-sub010/internal/logger"
	"github.com/canada-ca/tracker-sub010/internal/metrics"
	"github.com/canada-ca/tracker-sub010/internal/repository"
	"github.com/canada-ca/tracker-sub010/internal/tracing"
)

const ruleMaxDepth = "MaxDepthExceeded"

type GraphQLRequest struct {
	Query         string                 `json:"query" binding:"required"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

type GraphQLHandler struct {
	log      logger.Logger
	schema   *graphql.Schema
	analyzer *complexity.Analyzer
	cfg      *config.GraphQLConfig
	repos    *repository.Repositories
	metrics  *metrics.Metrics
}

func NewGraphQLHandler(log logger.Logger, schema *graphql.Schema, analyzer *complexity.Analyzer, cfg *config.GraphQLConfig, repos *repository.Repositories, m *metrics.Metrics) *GraphQLHandler {
	return &GraphQLHandler{
		log:      log,
		schema:   schema,
		analyzer: analyzer,
		cfg:      cfg,
		repos:    repos,
		metrics:  m,
	}
}

// Serve executes one GraphQL request. Queries over the cost limit are
// rejected before execution; every request gets its own loaders.
func (h *GraphQLHandler) Serve() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "GraphQLHandler.Serve")
		defer span.Finish()
		tracing.SetDefaultGraphqlSpanTags(ctx, span)

		var request GraphQLRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusBadRequest, gin.H{"errors": gqlerror.List{
				api_errors.NewError(i18n.T(ctx, "Unable to parse request body."), api_errors.CodeBadInput, nil),
			}})
			return
		}
		span.SetTag("graphql.operation", request.OperationName)

		analysis, _ := h.analyzer.Analyze(request.Query, request.OperationName, request.Variables)
		cost := analysis.Cost
		if cost > h.cfg.CostLimit {
			h.metrics.IncrementGraphQLRejected("cost")
			h.log.Warnf("graphql: rejected operation %q with cost %d", request.OperationName, cost)
			c.JSON(http.StatusOK, gin.H{"errors": gqlerror.List{
				api_errors.NewError(
					i18n.T(ctx, "Query error, query is too complex."),
					api_errors.CodeBadInput,
					map[string]interface{}{"cost": cost, "limit": h.cfg.CostLimit},
				),
			}})
			return
		}

		ctx = loaders.WithLoaders(ctx, loaders.NewLoaders(h.repos))
		response := h.schema.Exec(ctx, request.Query, request.OperationName, request.Variables)

		for _, err := range response.Errors {
			if err.Rule == ruleMaxDepth {
				h.metrics.IncrementGraphQLRejected("depth")
				break
			}
		}
		h.metrics.ObserveGraphQLOperation(analysis.Operation, len(response.Errors) > 0)

		c.JSON(http.StatusOK, response)
	}
}

// Playground serves GraphiQL against the /graphql endpoint.
func (h *GraphQLHandler) Playground() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(playgroundPage))
	}
}

const playgroundPage = `<!DOCTYPE html>
<html>
<head>
  <title>Tracker GraphQL</title>
  <link rel="stylesheet" href="https://unpkg.com/graphiql/graphiql.min.css" />
</head>
<body style="margin: 0;">
  <div id="graphiql" style="height: 100vh;"></div>
  <script crossorigin src="https://unpkg.com/react/umd/react.production.min.js"></script>
  <script crossorigin src="https://unpkg.com/react-dom/umd/react-dom.production.min.js"></script>
  <script crossorigin src="https://unpkg.com/graphiql/graphiql.min.js"></script>
  <script>
    const fetcher = GraphiQL.createFetcher({ url: '/graphql' });
    ReactDOM.render(React.createElement(GraphiQL, { fetcher }), document.getElementById('graphiql'));
  </script>
</body>
</html>
`
