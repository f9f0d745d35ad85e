package api

import (
	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"github.com/canada-ca/tracker-sub010/api/handlers"
	"github.com/canada-ca/tracker-sub010/api/middleware"
	"github.com/canada-ca/tracker-sub010/config"
	"github.com/canada-ca/tracker-sub010/internal/logger"
	"github.com/canada-ca/tracker-sub010/internal/metrics"
	"github.com/canada-ca/tracker-sub010/internal/repository"
	"github.com/canada-ca/tracker-sub010/internal/tracing"
	"github.com/canada-ca/tracker-sub010/services"
)

const appSource = "tracker-api"

// RegisterRoutes sets up all API endpoints
func RegisterRoutes(r *gin.Engine, cfg *config.Config, log logger.Logger, s *services.Services, repos *repository.Repositories, m *metrics.Metrics) error {
	if s == nil {
		return errors.New("services cannot be nil")
	}
	if repos == nil {
		return errors.New("repositories cannot be nil")
	}

	r.Use(gin.Recovery())
	r.Use(tracing.RecoveryWithJaeger(opentracing.GlobalTracer()))
	r.Use(middleware.MetricsMiddleware(m))

	apiHandlers, err := handlers.InitHandlers(cfg, log, s, repos, m)
	if err != nil {
		return err
	}

	// no custom context needed
	r.GET("/health", handlers.HealthCheck)
	r.GET("/metrics", gin.WrapH(m.Handler()))

	graphql := r.Group("/graphql")
	graphql.Use(middleware.TracingMiddleware())
	graphql.Use(middleware.LanguageMiddleware())
	graphql.Use(middleware.AuthTokenMiddleware(s.AuthService))
	graphql.Use(middleware.CustomContextMiddleware(appSource))
	{
		graphql.POST("", apiHandlers.GraphQL.Serve())
		if !cfg.AppConfig.Production {
			graphql.GET("", apiHandlers.GraphQL.Playground())
		}
	}

	v1 := r.Group("/v1")
	v1.Use(middleware.APIKeyMiddleware(middleware.APIKeyConfig{
		HeaderName:  middleware.APIKeyHeader,
		ValidAPIKey: cfg.AppConfig.APIKey,
	}))
	v1.Use(middleware.CustomContextMiddleware(appSource))
	v1.Use(middleware.TracingMiddleware())
	{
		v1.POST("/dmarc-summaries", apiHandlers.DmarcSummaries.Ingest())
	}

	return nil
}
