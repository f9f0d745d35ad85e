package domain

import (
	"context"
	"strings"
	"time"

	"github.com/opentracing/opentracing-go"

	"github.com/canada-ca/tracker-sub010/dto"
	tracker_errors "github.com/canada-ca/tracker-sub010/errors"
	"github.com/canada-ca/tracker-sub010/interfaces"
	"github.com/canada-ca/tracker-sub010/internal/enum"
	"github.com/canada-ca/tracker-sub010/internal/i18n"
	"github.com/canada-ca/tracker-sub010/internal/logger"
	"github.com/canada-ca/tracker-sub010/internal/models"
	"github.com/canada-ca/tracker-sub010/internal/pagination"
	"github.com/canada-ca/tracker-sub010/internal/repository"
	"github.com/canada-ca/tracker-sub010/internal/tracing"
	"github.com/canada-ca/tracker-sub010/internal/utils"
)

const (
	CursorType     = "Domain"
	ScanCursorType = "Scan"
)

type domainService struct {
	log         logger.Logger
	repos       *repository.Repositories
	permissions interfaces.PermissionService
	audit       interfaces.AuditLogService
	publisher   interfaces.ScanPublisher
}

func NewDomainService(log logger.Logger, repos *repository.Repositories, permissions interfaces.PermissionService, audit interfaces.AuditLogService, publisher interfaces.ScanPublisher) interfaces.DomainService {
	return &domainService{
		log:         log,
		repos:       repos,
		permissions: permissions,
		audit:       audit,
		publisher:   publisher,
	}
}

func (s *domainService) FindMyDomains(ctx context.Context, args interfaces.ConnectionArgs) (pagination.Page[*models.Domain], error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "DomainService.FindMyDomains")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	var empty pagination.Page[*models.Domain]

	user, err := s.permissions.UserRequired(ctx)
	if err != nil {
		return empty, err
	}
	window, err := pagination.NewWindow(ctx, "Domain", CursorType, args.Args)
	if err != nil {
		return empty, err
	}
	superAdmin, err := s.permissions.CheckSuperAdmin(ctx)
	if err != nil {
		tracing.TraceErr(span, err)
		return empty, err
	}

	page, err := s.repos.DomainRepository.List(ctx, interfaces.DomainFilter{
		UserID:     user.ID,
		AllDomains: superAdmin,
		Search:     args.Search,
		Order:      args.Order,
	}, window)
	if err != nil {
		tracing.TraceErr(span, err)
		return empty, err
	}
	return page, nil
}

func (s *domainService) FindDomainsForOrganization(ctx context.Context, orgID string, args interfaces.ConnectionArgs) (pagination.Page[*models.Domain], error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "DomainService.FindDomainsForOrganization")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagEntity(span, orgID)

	var empty pagination.Page[*models.Domain]

	window, err := pagination.NewWindow(ctx, "Domain", CursorType, args.Args)
	if err != nil {
		return empty, err
	}

	role, err := s.permissions.CheckPermission(ctx, orgID)
	if err != nil {
		tracing.TraceErr(span, err)
		return empty, err
	}
	if !role.AtLeast(enum.RoleUser) {
		return empty, tracker_errors.Forbidden(i18n.T(ctx, "Permission Denied: Please contact organization user for help with retrieving domains."))
	}

	page, err := s.repos.DomainRepository.List(ctx, interfaces.DomainFilter{
		OrgID:      orgID,
		AllDomains: true,
		Search:     args.Search,
		Order:      args.Order,
	}, window)
	if err != nil {
		tracing.TraceErr(span, err)
		return empty, err
	}
	return page, nil
}

func (s *domainService) FindDomainByDomain(ctx context.Context, domain string) (*models.Domain, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "DomainService.FindDomainByDomain")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.LogKV("request.domain", domain)

	if _, err := s.permissions.UserRequired(ctx); err != nil {
		return nil, err
	}

	name, err := utils.NormalizeDomain(domain)
	if err != nil {
		return nil, tracker_errors.NotFound(i18n.T(ctx, "Unable to find the requested domain."))
	}
	found, err := s.repos.DomainRepository.GetByDomain(ctx, name)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	if found == nil {
		return nil, tracker_errors.NotFound(i18n.T(ctx, "Unable to find the requested domain."))
	}

	allowed, err := s.permissions.CheckDomainPermission(ctx, found.ID)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	if !allowed {
		return nil, tracker_errors.Forbidden(i18n.T(ctx, "Permission Denied: Please contact organization user for help with retrieving this domain."))
	}
	return found, nil
}

// CreateDomain claims the domain for the organization, creating it first
// when no other organization has it yet, and requests an initial scan.
func (s *domainService) CreateDomain(ctx context.Context, orgID, domain string, selectors []string) (*models.Domain, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "DomainService.CreateDomain")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagEntity(span, orgID)
	span.LogKV("request.domain", domain)

	user, err := s.permissions.UserRequired(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.permissions.VerifiedRequired(ctx, user); err != nil {
		return nil, err
	}

	org, err := s.repos.OrganizationRepository.GetByID(ctx, orgID)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	if org == nil {
		return nil, tracker_errors.BadRequest(i18n.T(ctx, "Unable to create domain in unknown organization."))
	}

	role, err := s.permissions.CheckPermission(ctx, org.ID)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	if !role.AtLeast(enum.RoleUser) {
		return nil, tracker_errors.Forbidden(i18n.T(ctx, "Permission Denied: Please contact organization user for help with creating domain."))
	}

	name, err := utils.NormalizeDomain(domain)
	if err != nil {
		return nil, tracker_errors.BadRequest(i18n.T(ctx, "Unable to create domain. Domain name is invalid."))
	}
	normalizedSelectors, err := utils.NormalizeSelectors(selectors)
	if err != nil {
		return nil, tracker_errors.BadRequest(i18n.T(ctx, "Unable to create domain. DKIM selectors must be of the form `selector._domainkey`."))
	}

	existing, err := s.repos.DomainRepository.GetByDomain(ctx, name)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	created := existing
	if existing != nil {
		claim, err := s.repos.ClaimRepository.Get(ctx, org.ID, existing.ID)
		if err != nil {
			tracing.TraceErr(span, err)
			return nil, err
		}
		if claim != nil {
			return nil, tracker_errors.BadRequest(i18n.T(ctx, "Unable to create domain, organization has already claimed it."))
		}
		merged := utils.Unique(append(append([]string{}, existing.Selectors...), normalizedSelectors...))
		if len(merged) != len(existing.Selectors) {
			existing.Selectors = merged
			if err := s.repos.DomainRepository.Save(ctx, existing); err != nil {
				tracing.TraceErr(span, err)
				return nil, tracker_errors.Internal(i18n.T(ctx, "Unable to create domain. Please try again."))
			}
		}
	} else {
		created = &models.Domain{
			Domain:     name,
			Selectors:  normalizedSelectors,
			DmarcPhase: enum.DmarcPhaseNotImplemented,
		}
		if err := s.repos.DomainRepository.Create(ctx, created); err != nil {
			tracing.TraceErr(span, err)
			return nil, tracker_errors.Internal(i18n.T(ctx, "Unable to create domain. Please try again."))
		}
	}

	if err := s.repos.ClaimRepository.Create(ctx, &models.Claim{OrgID: org.ID, DomainID: created.ID}); err != nil {
		tracing.TraceErr(span, err)
		return nil, tracker_errors.Internal(i18n.T(ctx, "Unable to create domain. Please try again."))
	}

	s.audit.Record(ctx, &models.AuditLog{
		InitiatorID:       user.ID,
		InitiatorUserName: user.UserName,
		InitiatorRole:     role,
		Action:            enum.AuditActionAdd,
		ResourceType:      enum.AuditResourceDomain,
		Resource:          created.Domain,
		OrgID:             org.ID,
		OrgName:           org.Name,
	})

	if existing == nil {
		s.requestInitialScan(ctx, created, user.ID)
	}

	return created, nil
}

func (s *domainService) requestInitialScan(ctx context.Context, domain *models.Domain, userID string) {
	if s.publisher == nil {
		return
	}
	err := s.publisher.PublishScanRequest(ctx, dto.ScanRequested{
		DomainID:    domain.ID,
		Domain:      domain.Domain,
		Selectors:   domain.Selectors,
		RequestedBy: userID,
	})
	if err != nil {
		s.log.Errorf("Unable to request initial scan of %s: %v", domain.Domain, err)
	}
}

func (s *domainService) UpdateDomain(ctx context.Context, domainID, orgID string, domain *string, selectors []string) (*models.Domain, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "DomainService.UpdateDomain")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagEntity(span, domainID)

	user, err := s.permissions.UserRequired(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.permissions.VerifiedRequired(ctx, user); err != nil {
		return nil, err
	}

	existing, err := s.repos.DomainRepository.GetByID(ctx, domainID)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	if existing == nil {
		return nil, tracker_errors.BadRequest(i18n.T(ctx, "Unable to update unknown domain."))
	}

	org, err := s.repos.OrganizationRepository.GetByID(ctx, orgID)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	if org == nil {
		return nil, tracker_errors.BadRequest(i18n.T(ctx, "Unable to update domain in an unknown org."))
	}

	role, err := s.permissions.CheckPermission(ctx, org.ID)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	if !role.AtLeast(enum.RoleUser) {
		return nil, tracker_errors.Forbidden(i18n.T(ctx, "Permission Denied: Please contact organization user for help with updating this domain."))
	}

	claim, err := s.repos.ClaimRepository.Get(ctx, org.ID, existing.ID)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	if claim == nil {
		return nil, tracker_errors.BadRequest(i18n.T(ctx, "Unable to update domain that does not belong to the given organization."))
	}

	changes := models.JSONMap{}

	if domain != nil {
		name, err := utils.NormalizeDomain(*domain)
		if err != nil {
			return nil, tracker_errors.BadRequest(i18n.T(ctx, "Unable to update domain. Domain name is invalid."))
		}
		if name != existing.Domain {
			other, err := s.repos.DomainRepository.GetByDomain(ctx, name)
			if err != nil {
				tracing.TraceErr(span, err)
				return nil, err
			}
			if other != nil {
				return nil, tracker_errors.BadRequest(i18n.T(ctx, "Unable to update domain. Domain name is already in use."))
			}
			changes["domain"] = models.PropertyChange(existing.Domain, name)
			existing.Domain = name
		}
	}

	if selectors != nil {
		normalized, err := utils.NormalizeSelectors(selectors)
		if err != nil {
			return nil, tracker_errors.BadRequest(i18n.T(ctx, "Unable to update domain. DKIM selectors must be of the form `selector._domainkey`."))
		}
		if strings.Join(normalized, ",") != strings.Join(existing.Selectors, ",") {
			changes["selectors"] = models.PropertyChange([]string(existing.Selectors), normalized)
			existing.Selectors = normalized
		}
	}

	if len(changes) == 0 {
		return existing, nil
	}

	if err := s.repos.DomainRepository.Save(ctx, existing); err != nil {
		tracing.TraceErr(span, err)
		return nil, tracker_errors.Internal(i18n.T(ctx, "Unable to update domain. Please try again."))
	}

	s.audit.Record(ctx, &models.AuditLog{
		InitiatorID:       user.ID,
		InitiatorUserName: user.UserName,
		InitiatorRole:     role,
		Action:            enum.AuditActionUpdate,
		ResourceType:      enum.AuditResourceDomain,
		Resource:          existing.Domain,
		OrgID:             org.ID,
		OrgName:           org.Name,
		UpdatedProperties: changes,
	})

	return existing, nil
}

// RemoveDomain drops the organization's claim. The domain and its history
// are deleted once no organization claims it anymore.
func (s *domainService) RemoveDomain(ctx context.Context, domainID, orgID string) (string, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "DomainService.RemoveDomain")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagEntity(span, domainID)

	user, err := s.permissions.UserRequired(ctx)
	if err != nil {
		return "", err
	}
	if err := s.permissions.VerifiedRequired(ctx, user); err != nil {
		return "", err
	}

	existing, err := s.repos.DomainRepository.GetByID(ctx, domainID)
	if err != nil {
		tracing.TraceErr(span, err)
		return "", err
	}
	if existing == nil {
		return "", tracker_errors.BadRequest(i18n.T(ctx, "Unable to remove unknown domain."))
	}

	org, err := s.repos.OrganizationRepository.GetByID(ctx, orgID)
	if err != nil {
		tracing.TraceErr(span, err)
		return "", err
	}
	if org == nil {
		return "", tracker_errors.BadRequest(i18n.T(ctx, "Unable to remove domain from unknown organization."))
	}

	role, err := s.permissions.CheckPermission(ctx, org.ID)
	if err != nil {
		tracing.TraceErr(span, err)
		return "", err
	}
	if org.Verified && role != enum.RoleSuperAdmin {
		return "", tracker_errors.Forbidden(i18n.T(ctx, "Permission Denied: Please contact super admin for help with removing domain."))
	}
	if !role.IsAdmin() {
		return "", tracker_errors.Forbidden(i18n.T(ctx, "Permission Denied: Please contact organization admin for help with removing domain."))
	}

	claim, err := s.repos.ClaimRepository.Get(ctx, org.ID, existing.ID)
	if err != nil {
		tracing.TraceErr(span, err)
		return "", err
	}
	if claim == nil {
		return "", tracker_errors.BadRequest(i18n.T(ctx, "Unable to remove domain. Domain is not part of organization."))
	}

	if err := s.repos.ClaimRepository.Delete(ctx, org.ID, existing.ID); err != nil {
		tracing.TraceErr(span, err)
		return "", tracker_errors.Internal(i18n.T(ctx, "Unable to remove domain. Please try again."))
	}

	s.audit.Record(ctx, &models.AuditLog{
		InitiatorID:       user.ID,
		InitiatorUserName: user.UserName,
		InitiatorRole:     role,
		Action:            enum.AuditActionRemove,
		ResourceType:      enum.AuditResourceDomain,
		Resource:          existing.Domain,
		OrgID:             org.ID,
		OrgName:           org.Name,
	})

	return i18n.T(ctx, "Successfully removed domain: %s from %s.", existing.Domain, org.Slug), nil
}

func (s *domainService) FindScans(ctx context.Context, domainID string, scanType enum.ScanType, args pagination.Args, startDate, endDate *time.Time) (pagination.Page[*models.Scan], error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "DomainService.FindScans")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagEntity(span, domainID)
	span.LogKV("request.scanType", scanType.String())

	var empty pagination.Page[*models.Scan]

	window, err := pagination.NewWindow(ctx, strings.ToUpper(scanType.String()), ScanCursorType, args)
	if err != nil {
		return empty, err
	}

	allowed, err := s.permissions.CheckDomainPermission(ctx, domainID)
	if err != nil {
		tracing.TraceErr(span, err)
		return empty, err
	}
	if !allowed {
		return empty, tracker_errors.Forbidden(i18n.T(ctx, "Permission Denied: Please contact organization user for help with retrieving this domain."))
	}

	page, err := s.repos.ScanRepository.List(ctx, interfaces.ScanFilter{
		DomainID:  domainID,
		ScanType:  scanType,
		StartDate: startDate,
		EndDate:   endDate,
		Desc:      true,
	}, window)
	if err != nil {
		tracing.TraceErr(span, err)
		return empty, err
	}
	return page, nil
}
