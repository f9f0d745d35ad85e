package handlers

import (
	"github.com/pkg/errors"

	"github.com/canada-ca/tracker-sub010/api/graphql/complexity"
	"github.com/canada-ca/tracker-sub010/api/graphql/resolver"
	"github.com/canada-ca/tracker-sub010/api/graphql/schema"
	"github.com/canada-ca/tracker-sub010/config"
	"github.com/canada-ca/tracker-sub010/internal/logger"
	"github.com/canada-ca/tracker-sub010/internal/metrics"
	"github.com/canada-ca/tracker-sub010/internal/repository"
	"github.com/canada-ca/tracker-sub010/services"
)

type APIHandlers struct {
	GraphQL        *GraphQLHandler
	DmarcSummaries *DmarcSummaryHandler
}

func InitHandlers(cfg *config.Config, log logger.Logger, s *services.Services, repos *repository.Repositories, m *metrics.Metrics) (*APIHandlers, error) {
	gqlSchema, err := schema.Parse(resolver.NewResolver(log, s, repos), log, cfg.GraphQLConfig.DepthLimit)
	if err != nil {
		return nil, errors.Wrap(err, "parse graphql schema")
	}
	analyzer, err := complexity.NewAnalyzer(schema.SDL, cfg.GraphQLConfig)
	if err != nil {
		return nil, errors.Wrap(err, "load graphql schema for cost analysis")
	}

	return &APIHandlers{
		GraphQL:        NewGraphQLHandler(log, gqlSchema, analyzer, cfg.GraphQLConfig, repos, m),
		DmarcSummaries: NewDmarcSummaryHandler(s.DmarcSummaryService),
	}, nil
}
