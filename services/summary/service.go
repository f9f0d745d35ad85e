package summary

import (
	"context"

	"github.com/opentracing/opentracing-go"
	"golang.org/x/sync/errgroup"

	"github.com/canada-ca/tracker-sub010/config"
	"github.com/canada-ca/tracker-sub010/interfaces"
	"github.com/canada-ca/tracker-sub010/internal/enum"
	"github.com/canada-ca/tracker-sub010/internal/logger"
	"github.com/canada-ca/tracker-sub010/internal/models"
	"github.com/canada-ca/tracker-sub010/internal/repository"
	"github.com/canada-ca/tracker-sub010/internal/tracing"
	"github.com/canada-ca/tracker-sub010/internal/utils"
)

const orgRefreshConcurrency = 8

type summaryService struct {
	cfg         *config.AppConfig
	log         logger.Logger
	repos       *repository.Repositories
	permissions interfaces.PermissionService
	cache       Cache
}

// NewSummaryService builds the summary service. cache may be nil.
func NewSummaryService(cfg *config.AppConfig, log logger.Logger, repos *repository.Repositories, permissions interfaces.PermissionService, cache Cache) interfaces.SummaryService {
	return &summaryService{
		cfg:         cfg,
		log:         log,
		repos:       repos,
		permissions: permissions,
		cache:       cache,
	}
}

func (s *summaryService) GetChartSummary(ctx context.Context, kind enum.SummaryKind) (*models.Summary, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "SummaryService.GetChartSummary")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.LogKV("request.kind", kind.String())

	if s.cfg.LoginRequired {
		user, err := s.permissions.UserRequired(ctx)
		if err != nil {
			return nil, err
		}
		if err := s.permissions.VerifiedRequired(ctx, user); err != nil {
			return nil, err
		}
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, kind)
		if err != nil {
			s.log.Warnf("Unable to read %s summary from cache: %v", kind, err)
		} else if cached != nil {
			span.LogKV("cache", "hit")
			return cached, nil
		}
	}

	chart, err := s.repos.ChartSummaryRepository.Get(ctx, kind)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	if chart == nil {
		empty := Compute(nil, kind)
		return &empty, nil
	}

	summary := models.Summary(chart.Summary)
	s.cacheSummary(ctx, kind, summary)
	return &summary, nil
}

// RefreshSummaries recomputes the chart summaries over every domain, then
// each organization's summaries over its claimed domains.
func (s *summaryService) RefreshSummaries(ctx context.Context) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "SummaryService.RefreshSummaries")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	domains, err := s.repos.DomainRepository.ListAll(ctx)
	if err != nil {
		tracing.TraceErr(span, err)
		return err
	}
	span.LogKV("domains", len(domains))

	now := utils.Now()
	for kind, summary := range ComputeAll(domains) {
		err := s.repos.ChartSummaryRepository.Save(ctx, &models.ChartSummary{
			Kind:      kind,
			Summary:   models.SummaryJSON(summary),
			UpdatedAt: now,
		})
		if err != nil {
			tracing.TraceErr(span, err)
			return err
		}
		s.cacheSummary(ctx, kind, summary)
	}

	orgs, err := s.repos.OrganizationRepository.ListAll(ctx)
	if err != nil {
		tracing.TraceErr(span, err)
		return err
	}
	span.LogKV("organizations", len(orgs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(orgRefreshConcurrency)
	for _, org := range orgs {
		org := org
		g.Go(func() error {
			return s.refreshOrganization(gctx, org)
		})
	}
	if err := g.Wait(); err != nil {
		tracing.TraceErr(span, err)
		return err
	}

	s.log.Infof("Refreshed summaries for %d domains and %d organizations", len(domains), len(orgs))
	return nil
}

func (s *summaryService) refreshOrganization(ctx context.Context, org *models.Organization) error {
	domains, err := s.repos.DomainRepository.ListByOrg(ctx, org.ID)
	if err != nil {
		return err
	}
	return s.repos.OrganizationRepository.UpdateSummaries(ctx, org.ID, ComputeAll(domains))
}

func (s *summaryService) cacheSummary(ctx context.Context, kind enum.SummaryKind, summary models.Summary) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, kind, summary); err != nil {
		s.log.Warnf("Unable to cache %s summary: %v", kind, err)
	}
}
