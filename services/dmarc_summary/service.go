package dmarc_summary

import (
	"context"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"github.com/canada-ca/tracker-sub010/dto"
	tracker_errors "github.com/canada-ca/tracker-sub010/errors"
	"github.com/canada-ca/tracker-sub010/interfaces"
	"github.com/canada-ca/tracker-sub010/internal/i18n"
	"github.com/canada-ca/tracker-sub010/internal/logger"
	"github.com/canada-ca/tracker-sub010/internal/models"
	"github.com/canada-ca/tracker-sub010/internal/pagination"
	"github.com/canada-ca/tracker-sub010/internal/repository"
	"github.com/canada-ca/tracker-sub010/internal/tracing"
	"github.com/canada-ca/tracker-sub010/internal/utils"
)

const CursorType = "DmarcSummary"

// yearlyPeriods is the number of months returned by YearlyDmarcSummaries,
// the current month included.
const yearlyPeriods = 13

type dmarcSummaryService struct {
	log         logger.Logger
	repos       *repository.Repositories
	permissions interfaces.PermissionService
}

func NewDmarcSummaryService(log logger.Logger, repos *repository.Repositories, permissions interfaces.PermissionService) interfaces.DmarcSummaryService {
	return &dmarcSummaryService{
		log:         log,
		repos:       repos,
		permissions: permissions,
	}
}

func (s *dmarcSummaryService) FindMyDmarcSummaries(ctx context.Context, month, year int, args interfaces.ConnectionArgs) (pagination.Page[*models.DmarcSummary], error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "DmarcSummaryService.FindMyDmarcSummaries")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.LogKV("request.month", month, "request.year", year)

	var empty pagination.Page[*models.DmarcSummary]

	user, err := s.permissions.UserRequired(ctx)
	if err != nil {
		return empty, err
	}
	if err := s.permissions.VerifiedRequired(ctx, user); err != nil {
		return empty, err
	}
	if err := validatePeriod(ctx, month, year); err != nil {
		return empty, err
	}

	window, err := pagination.NewWindow(ctx, "DmarcSummary", CursorType, args.Args)
	if err != nil {
		return empty, err
	}

	superAdmin, err := s.permissions.CheckSuperAdmin(ctx)
	if err != nil {
		tracing.TraceErr(span, err)
		return empty, err
	}

	page, err := s.repos.DmarcSummaryRepository.List(ctx, interfaces.DmarcSummaryFilter{
		UserID:     user.ID,
		AllDomains: superAdmin,
		Month:      month,
		Year:       year,
		Search:     args.Search,
		Order:      args.Order,
	}, window)
	if err != nil {
		tracing.TraceErr(span, err)
		return empty, err
	}
	return page, nil
}

func (s *dmarcSummaryService) DmarcSummaryByPeriod(ctx context.Context, domainID string, month, year int) (*models.DmarcSummary, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "DmarcSummaryService.DmarcSummaryByPeriod")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagEntity(span, domainID)
	span.LogKV("request.month", month, "request.year", year)

	if err := s.ownershipRequired(ctx, domainID); err != nil {
		return nil, err
	}
	if err := validatePeriod(ctx, month, year); err != nil {
		return nil, err
	}

	summary, err := s.repos.DmarcSummaryRepository.Get(ctx, domainID, month, year)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	return summary, nil
}

// YearlyDmarcSummaries returns the summaries of the last thirteen months,
// oldest first.
func (s *dmarcSummaryService) YearlyDmarcSummaries(ctx context.Context, domainID string) ([]*models.DmarcSummary, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "DmarcSummaryService.YearlyDmarcSummaries")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagEntity(span, domainID)

	if err := s.ownershipRequired(ctx, domainID); err != nil {
		return nil, err
	}

	now := utils.Now()
	since := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(yearlyPeriods - 1), 0)

	summaries, err := s.repos.DmarcSummaryRepository.ListByDomain(ctx, domainID, since)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	return summaries, nil
}

// Ingest upserts the totals of one domain and period posted by the report
// processor.
func (s *dmarcSummaryService) Ingest(ctx context.Context, input dto.DmarcSummaryInput) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "DmarcSummaryService.Ingest")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.LogObjectAsJson(span, "request.input", input)

	name, err := utils.NormalizeDomain(input.Domain)
	if err != nil {
		tracing.TraceErr(span, err)
		return err
	}

	domain, err := s.repos.DomainRepository.GetByDomain(ctx, name)
	if err != nil {
		tracing.TraceErr(span, err)
		return err
	}
	if domain == nil {
		err := errors.Wrap(tracker_errors.ErrDomainNotFound, name)
		tracing.TraceErr(span, err)
		return err
	}

	err = s.repos.DmarcSummaryRepository.Upsert(ctx, &models.DmarcSummary{
		DomainID:     domain.ID,
		Month:        input.Month,
		Year:         input.Year,
		FullPass:     input.FullPass,
		PassSpfOnly:  input.PassSpfOnly,
		PassDkimOnly: input.PassDkimOnly,
		Fail:         input.Fail,
	})
	if err != nil {
		tracing.TraceErr(span, err)
		return err
	}

	if !domain.HasDmarcReport {
		if err := s.repos.DomainRepository.SetHasDmarcReport(ctx, domain.ID); err != nil {
			tracing.TraceErr(span, err)
			return err
		}
	}
	return nil
}

func (s *dmarcSummaryService) ownershipRequired(ctx context.Context, domainID string) error {
	user, err := s.permissions.UserRequired(ctx)
	if err != nil {
		return err
	}
	if err := s.permissions.VerifiedRequired(ctx, user); err != nil {
		return err
	}

	owner, err := s.permissions.CheckDomainOwnership(ctx, domainID)
	if err != nil {
		return err
	}
	if !owner {
		return tracker_errors.Forbidden(i18n.T(ctx, "Unable to retrieve DMARC report information for this domain."))
	}
	return nil
}

func validatePeriod(ctx context.Context, month, year int) error {
	if month < 1 || month > 12 || year < 2000 {
		return tracker_errors.BadRequest(i18n.T(ctx, "Unable to retrieve DMARC report information for an invalid period."))
	}
	return nil
}
