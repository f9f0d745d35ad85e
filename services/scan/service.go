package scan

import (
	"context"
	"strings"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"github.com/canada-ca/tracker-sub010/dto"
	tracker_errors "github.com/canada-ca/tracker-sub010/errors"
	"github.com/canada-ca/tracker-sub010/interfaces"
	"github.com/canada-ca/tracker-sub010/internal/enum"
	internal_errors "github.com/canada-ca/tracker-sub010/internal/errors"
	"github.com/canada-ca/tracker-sub010/internal/i18n"
	"github.com/canada-ca/tracker-sub010/internal/logger"
	"github.com/canada-ca/tracker-sub010/internal/models"
	"github.com/canada-ca/tracker-sub010/internal/repository"
	"github.com/canada-ca/tracker-sub010/internal/tracing"
	"github.com/canada-ca/tracker-sub010/internal/utils"
)

type scanService struct {
	log         logger.Logger
	repos       *repository.Repositories
	permissions interfaces.PermissionService
	publisher   interfaces.ScanPublisher
}

func NewScanService(log logger.Logger, repos *repository.Repositories, permissions interfaces.PermissionService, publisher interfaces.ScanPublisher) interfaces.ScanService {
	return &scanService{
		log:         log,
		repos:       repos,
		permissions: permissions,
		publisher:   publisher,
	}
}

func (s *scanService) RequestScan(ctx context.Context, domainName string) (string, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "ScanService.RequestScan")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.LogKV("request.domain", domainName)

	user, err := s.permissions.UserRequired(ctx)
	if err != nil {
		return "", err
	}
	if err := s.permissions.VerifiedRequired(ctx, user); err != nil {
		return "", err
	}

	normalized, err := utils.NormalizeDomain(domainName)
	if err != nil {
		return "", tracker_errors.BadRequest(i18n.T(ctx, "Unable to request a one time scan on an invalid domain."))
	}

	domain, err := s.repos.DomainRepository.GetByDomain(ctx, normalized)
	if err != nil {
		tracing.TraceErr(span, err)
		return "", err
	}
	if domain == nil {
		return "", tracker_errors.BadRequest(i18n.T(ctx, "Unable to request a one time scan on an unknown domain."))
	}

	allowed, err := s.permissions.CheckDomainPermission(ctx, domain.ID)
	if err != nil {
		tracing.TraceErr(span, err)
		return "", err
	}
	if !allowed {
		return "", tracker_errors.Forbidden(i18n.T(ctx, "Permission Denied: Please contact organization user for help with scanning this domain."))
	}

	err = s.publisher.PublishScanRequest(ctx, dto.ScanRequested{
		DomainID:    domain.ID,
		Domain:      domain.Domain,
		Selectors:   domain.Selectors,
		RequestedBy: user.ID,
	})
	if err != nil {
		tracing.TraceErr(span, err)
		s.log.Errorf("Unable to dispatch one time scan for %s: %v", domain.Domain, err)
		return "", tracker_errors.Internal(i18n.T(ctx, "Unable to dispatch one time scan. Please try again."))
	}

	return i18n.T(ctx, "Successfully dispatched one time scan."), nil
}

// ProcessScanResult stores a scanner result and rolls it up into the domain
// status. Results for domains that no longer exist are dropped.
func (s *scanService) ProcessScanResult(ctx context.Context, result dto.ScanCompleted) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "ScanService.ProcessScanResult")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.LogObjectAsJson(span, "request.result", result)

	scanType := enum.ScanType(strings.ToLower(result.ScanType))
	if !scanType.Valid() {
		err := errors.Wrap(internal_errors.ErrUnknownScanType, result.ScanType)
		tracing.TraceErr(span, err)
		return err
	}

	domain, err := s.findDomain(ctx, result)
	if err != nil {
		tracing.TraceErr(span, err)
		return err
	}
	if domain == nil {
		s.log.Warnf("Dropping %s scan result for unknown domain %s", scanType, result.Domain)
		return nil
	}
	tracing.TagEntity(span, domain.ID)

	outcome := evaluate(scanType, result)

	scannedAt := result.Timestamp
	if scannedAt.IsZero() {
		scannedAt = utils.Now()
	}

	err = s.repos.ScanRepository.Create(ctx, &models.Scan{
		DomainID:     domain.ID,
		ScanType:     scanType,
		Status:       outcome.status,
		Selector:     result.Selector,
		Record:       result.Record,
		GuidanceTags: outcome.tags,
		Data:         models.JSONMap(result.Data),
		ScannedAt:    scannedAt,
	})
	if err != nil {
		tracing.TraceErr(span, err)
		return err
	}

	err = s.repos.DomainRepository.UpdateScanStatus(ctx, domain.ID, scanType, outcome.status, outcome.phase, scannedAt)
	if err != nil {
		tracing.TraceErr(span, err)
		return err
	}
	return nil
}

func (s *scanService) findDomain(ctx context.Context, result dto.ScanCompleted) (*models.Domain, error) {
	if result.DomainID != "" {
		return s.repos.DomainRepository.GetByID(ctx, result.DomainID)
	}
	normalized, err := utils.NormalizeDomain(result.Domain)
	if err != nil {
		return nil, err
	}
	return s.repos.DomainRepository.GetByDomain(ctx, normalized)
}

// evaluate grades DMARC and SPF from their records and takes the reported
// status for the other scan types.
func evaluate(scanType enum.ScanType, result dto.ScanCompleted) evaluation {
	switch scanType {
	case enum.ScanDMARC:
		outcome := evaluateDmarc(result.Record)
		outcome.tags = utils.Unique(append(outcome.tags, result.GuidanceTags...))
		return outcome
	case enum.ScanSPF:
		outcome := evaluateSpf(result.Record)
		outcome.tags = utils.Unique(append(outcome.tags, result.GuidanceTags...))
		return outcome
	}
	return evaluation{
		status: enum.ParseStatus(result.Status),
		tags:   result.GuidanceTags,
	}
}
