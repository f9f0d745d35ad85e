package services

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/canada-ca/tracker-sub010/config"
	"github.com/canada-ca/tracker-sub010/interfaces"
	"github.com/canada-ca/tracker-sub010/internal/logger"
	"github.com/canada-ca/tracker-sub010/internal/repository"
	"github.com/canada-ca/tracker-sub010/services/affiliation"
	"github.com/canada-ca/tracker-sub010/services/audit"
	"github.com/canada-ca/tracker-sub010/services/auth"
	"github.com/canada-ca/tracker-sub010/services/dmarc_summary"
	"github.com/canada-ca/tracker-sub010/services/domain"
	"github.com/canada-ca/tracker-sub010/services/events"
	"github.com/canada-ca/tracker-sub010/services/notify"
	"github.com/canada-ca/tracker-sub010/services/organization"
	"github.com/canada-ca/tracker-sub010/services/permission"
	"github.com/canada-ca/tracker-sub010/services/scan"
	"github.com/canada-ca/tracker-sub010/services/summary"
	"github.com/canada-ca/tracker-sub010/services/user"
)

const summaryCacheTTL = 6 * time.Hour

type Services struct {
	EventsService       *events.EventsService
	RedisClient         *redis.Client
	TokenService        *auth.TokenService
	NotifyService       interfaces.NotifyService
	PermissionService   interfaces.PermissionService
	AuditLogService     interfaces.AuditLogService
	AuthService         interfaces.AuthService
	UserService         interfaces.UserService
	OrganizationService interfaces.OrganizationService
	DomainService       interfaces.DomainService
	AffiliationService  interfaces.AffiliationService
	SummaryService      interfaces.SummaryService
	ScanService         interfaces.ScanService
	DmarcSummaryService interfaces.DmarcSummaryService
}

func InitServices(cfg *config.Config, log logger.Logger, repos *repository.Repositories) (*Services, error) {
	eventsService, err := events.NewEventsService(*cfg.BrokerConfig, log)
	if err != nil {
		return nil, err
	}

	redisClient, err := newRedisClient(cfg.AppConfig.RedisURL)
	if err != nil {
		eventsService.Close()
		return nil, err
	}
	if redisClient == nil {
		log.Info("REDIS_URL not set, chart summaries are not cached")
	}

	tokens := auth.NewTokenService(auth.TokenConfig{
		AuthSecret:         cfg.AppConfig.AuthTokenSecret,
		RefreshSecret:      cfg.AppConfig.RefreshTokenSecret,
		AuthTokenExpiry:    time.Duration(cfg.AppConfig.AuthTokenExpiry) * time.Minute,
		RefreshTokenExpiry: time.Duration(cfg.AppConfig.RefreshTokenExpiry) * 24 * time.Hour,
		SignInTokenExpiry:  time.Duration(cfg.AppConfig.SignInTokenExpiry) * time.Minute,
	})

	notifyService := notify.NewNotifyService(cfg.NotifyConfig, log)
	permissions := permission.NewPermissionService(cfg.AppConfig, repos)
	auditLog := audit.NewAuditLogService(log, repos, permissions)

	services := Services{
		EventsService:       eventsService,
		RedisClient:         redisClient,
		TokenService:        tokens,
		NotifyService:       notifyService,
		PermissionService:   permissions,
		AuditLogService:     auditLog,
		AuthService:         auth.NewAuthService(cfg.AppConfig, log, repos, tokens, notifyService),
		UserService:         user.NewUserService(log, repos, permissions, auditLog),
		OrganizationService: organization.NewOrganizationService(log, repos, permissions, auditLog),
		DomainService:       domain.NewDomainService(log, repos, permissions, auditLog, eventsService.Publisher),
		AffiliationService:  affiliation.NewAffiliationService(cfg.AppConfig, log, repos, permissions, auditLog, notifyService, tokens),
		SummaryService:      summary.NewSummaryService(cfg.AppConfig, log, repos, permissions, summary.NewRedisCache(redisClient, summaryCacheTTL)),
		ScanService:         scan.NewScanService(log, repos, permissions, eventsService.Publisher),
		DmarcSummaryService: dmarc_summary.NewDmarcSummaryService(log, repos, permissions),
	}

	return &services, nil
}

// Close releases the broker and redis connections.
func (s *Services) Close() error {
	var result error
	if s.EventsService != nil {
		result = s.EventsService.Close()
	}
	if s.RedisClient != nil {
		if err := s.RedisClient.Close(); err != nil && result == nil {
			result = err
		}
	}
	return result
}

func newRedisClient(url string) (*redis.Client, error) {
	if url == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Wrap(err, "parse redis url")
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, errors.Wrap(err, "redis ping failed")
	}
	return client, nil
}
