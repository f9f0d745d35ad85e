package organization

import (
	"context"
	"regexp"
	"strings"

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

const CursorType = "Organization"

var acronymPattern = regexp.MustCompile(`^[A-Z0-9_-]{1,50}$`)

type organizationService struct {
	log         logger.Logger
	repos       *repository.Repositories
	permissions interfaces.PermissionService
	audit       interfaces.AuditLogService
}

func NewOrganizationService(log logger.Logger, repos *repository.Repositories, permissions interfaces.PermissionService, audit interfaces.AuditLogService) interfaces.OrganizationService {
	return &organizationService{
		log:         log,
		repos:       repos,
		permissions: permissions,
		audit:       audit,
	}
}

func (s *organizationService) FindMyOrganizations(ctx context.Context, args interfaces.ConnectionArgs, isAdmin, includeSuperAdminOrg bool) (pagination.Page[*models.Organization], error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "OrganizationService.FindMyOrganizations")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	var empty pagination.Page[*models.Organization]

	user, err := s.permissions.UserRequired(ctx)
	if err != nil {
		return empty, err
	}

	window, err := pagination.NewWindow(ctx, "Organization", CursorType, args.Args)
	if err != nil {
		return empty, err
	}

	superAdmin, err := s.permissions.CheckSuperAdmin(ctx)
	if err != nil {
		tracing.TraceErr(span, err)
		return empty, err
	}

	page, err := s.repos.OrganizationRepository.List(ctx, interfaces.OrganizationFilter{
		UserID:               user.ID,
		AllOrgs:              superAdmin,
		AdminOnly:            isAdmin,
		IncludeSuperAdminOrg: includeSuperAdminOrg && superAdmin,
		Search:               args.Search,
		Order:                args.Order,
	}, window)
	if err != nil {
		tracing.TraceErr(span, err)
		return empty, err
	}
	return page, nil
}

func (s *organizationService) FindOrganizationBySlug(ctx context.Context, slug string) (*models.Organization, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "OrganizationService.FindOrganizationBySlug")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.LogKV("request.slug", slug)

	if _, err := s.permissions.UserRequired(ctx); err != nil {
		return nil, err
	}

	org, err := s.repos.OrganizationRepository.GetBySlug(ctx, utils.Slugify(slug))
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	if org == nil {
		return nil, tracker_errors.NotFound(i18n.T(ctx, "No organization with the provided slug could be found."))
	}

	role, err := s.permissions.CheckPermission(ctx, org.ID)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	if !role.AtLeast(enum.RoleUser) {
		return nil, tracker_errors.Forbidden(i18n.T(ctx, "Permission Denied: Could not retrieve specified organization."))
	}
	return org, nil
}

func (s *organizationService) CreateOrganization(ctx context.Context, input dto.OrganizationInput) (*models.Organization, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "OrganizationService.CreateOrganization")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.LogObjectAsJson(span, "request.input", input)

	user, err := s.permissions.UserRequired(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.permissions.VerifiedRequired(ctx, user); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(utils.ValueOr(input.Name, ""))
	acronym := strings.ToUpper(strings.TrimSpace(utils.ValueOr(input.Acronym, "")))
	if name == "" {
		return nil, tracker_errors.BadRequest(i18n.T(ctx, "Unable to create organization. Name is required."))
	}
	if !acronymPattern.MatchString(acronym) {
		return nil, tracker_errors.BadRequest(i18n.T(ctx, "Unable to create organization. Acronym is invalid."))
	}

	slug := utils.Slugify(name)
	if slug == "" {
		return nil, tracker_errors.BadRequest(i18n.T(ctx, "Unable to create organization. Name must contain letters or digits."))
	}
	exists, err := s.repos.OrganizationRepository.SlugExists(ctx, slug)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	if exists || slug == models.SuperAdminOrgSlug {
		return nil, tracker_errors.BadRequest(i18n.T(ctx, "Organization name already in use. Please try again with a different name."))
	}

	org := &models.Organization{
		Slug:      slug,
		Name:      name,
		Acronym:   acronym,
		Summaries: models.OrganizationSummaries{},
	}
	applyDetails(org, input)

	if err := s.repos.OrganizationRepository.Create(ctx, org); err != nil {
		tracing.TraceErr(span, err)
		return nil, tracker_errors.Internal(i18n.T(ctx, "Unable to create organization. Please try again."))
	}
	tracing.TagEntity(span, org.ID)

	if err := s.repos.AffiliationRepository.Create(ctx, &models.Affiliation{
		UserID:     user.ID,
		OrgID:      org.ID,
		Permission: enum.RoleAdmin,
		Owner:      true,
	}); err != nil {
		tracing.TraceErr(span, err)
		return nil, tracker_errors.Internal(i18n.T(ctx, "Unable to create organization. Please try again."))
	}

	s.audit.Record(ctx, &models.AuditLog{
		InitiatorID:       user.ID,
		InitiatorUserName: user.UserName,
		InitiatorRole:     enum.RoleAdmin,
		Action:            enum.AuditActionAdd,
		ResourceType:      enum.AuditResourceOrganization,
		Resource:          org.Name,
		OrgID:             org.ID,
		OrgName:           org.Name,
	})

	return org, nil
}

func (s *organizationService) UpdateOrganization(ctx context.Context, orgID string, input dto.OrganizationInput) (*models.Organization, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "OrganizationService.UpdateOrganization")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagEntity(span, orgID)
	tracing.LogObjectAsJson(span, "request.input", input)

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
		return nil, tracker_errors.BadRequest(i18n.T(ctx, "Unable to update unknown organization."))
	}

	role, err := s.permissions.CheckPermission(ctx, org.ID)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	if !role.IsAdmin() {
		return nil, tracker_errors.Forbidden(i18n.T(ctx, "Permission Denied: Please contact organization admin for help with updating organization."))
	}

	changes := models.JSONMap{}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, tracker_errors.BadRequest(i18n.T(ctx, "Unable to update organization. Name is required."))
		}
		if name != org.Name {
			if org.Verified && role != enum.RoleSuperAdmin {
				return nil, tracker_errors.Forbidden(i18n.T(ctx, "Permission Denied: Please contact super admin for help with updating organization."))
			}
			slug := utils.Slugify(name)
			if slug == "" {
				return nil, tracker_errors.BadRequest(i18n.T(ctx, "Unable to update organization. Name must contain letters or digits."))
			}
			if slug != org.Slug {
				exists, err := s.repos.OrganizationRepository.SlugExists(ctx, slug)
				if err != nil {
					tracing.TraceErr(span, err)
					return nil, err
				}
				if exists || slug == models.SuperAdminOrgSlug {
					return nil, tracker_errors.BadRequest(i18n.T(ctx, "Organization name already in use, please choose another and try again."))
				}
			}
			changes["name"] = models.PropertyChange(org.Name, name)
			org.Name = name
			org.Slug = slug
		}
	}

	if input.Acronym != nil {
		acronym := strings.ToUpper(strings.TrimSpace(*input.Acronym))
		if !acronymPattern.MatchString(acronym) {
			return nil, tracker_errors.BadRequest(i18n.T(ctx, "Unable to update organization. Acronym is invalid."))
		}
		if acronym != org.Acronym {
			changes["acronym"] = models.PropertyChange(org.Acronym, acronym)
			org.Acronym = acronym
		}
	}

	before := *org
	applyDetails(org, input)
	for field, values := range map[string][2]string{
		"zone":     {before.Zone, org.Zone},
		"sector":   {before.Sector, org.Sector},
		"country":  {before.Country, org.Country},
		"province": {before.Province, org.Province},
		"city":     {before.City, org.City},
	} {
		if values[0] != values[1] {
			changes[field] = models.PropertyChange(values[0], values[1])
		}
	}

	if len(changes) == 0 {
		return org, nil
	}

	if err := s.repos.OrganizationRepository.Save(ctx, org); err != nil {
		tracing.TraceErr(span, err)
		return nil, tracker_errors.Internal(i18n.T(ctx, "Unable to update organization. Please try again."))
	}

	s.audit.Record(ctx, &models.AuditLog{
		InitiatorID:       user.ID,
		InitiatorUserName: user.UserName,
		InitiatorRole:     role,
		Action:            enum.AuditActionUpdate,
		ResourceType:      enum.AuditResourceOrganization,
		Resource:          org.Name,
		OrgID:             org.ID,
		OrgName:           org.Name,
		UpdatedProperties: changes,
	})

	return org, nil
}

// RemoveOrganization deletes the organization with its claims and
// affiliations. Domains claimed by no other organization go with it.
func (s *organizationService) RemoveOrganization(ctx context.Context, orgID string) (string, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "OrganizationService.RemoveOrganization")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagEntity(span, orgID)

	user, err := s.permissions.UserRequired(ctx)
	if err != nil {
		return "", err
	}
	if err := s.permissions.VerifiedRequired(ctx, user); err != nil {
		return "", err
	}

	org, err := s.repos.OrganizationRepository.GetByID(ctx, orgID)
	if err != nil {
		tracing.TraceErr(span, err)
		return "", err
	}
	if org == nil {
		return "", tracker_errors.BadRequest(i18n.T(ctx, "Unable to remove unknown organization."))
	}

	role, err := s.permissions.CheckPermission(ctx, org.ID)
	if err != nil {
		tracing.TraceErr(span, err)
		return "", err
	}
	if org.Verified && role != enum.RoleSuperAdmin {
		return "", tracker_errors.Forbidden(i18n.T(ctx, "Permission Denied: Please contact super admin for help with removing organization."))
	}
	if role != enum.RoleSuperAdmin {
		owner, err := s.permissions.CheckOrgOwner(ctx, org.ID)
		if err != nil {
			tracing.TraceErr(span, err)
			return "", err
		}
		if !role.IsAdmin() || !owner {
			return "", tracker_errors.Forbidden(i18n.T(ctx, "Permission Denied: Please contact organization admin for help with removing organization."))
		}
	}

	if err := s.repos.OrganizationRepository.Delete(ctx, org.ID); err != nil {
		tracing.TraceErr(span, err)
		return "", tracker_errors.Internal(i18n.T(ctx, "Unable to remove organization. Please try again."))
	}

	s.audit.Record(ctx, &models.AuditLog{
		InitiatorID:       user.ID,
		InitiatorUserName: user.UserName,
		InitiatorRole:     role,
		Action:            enum.AuditActionRemove,
		ResourceType:      enum.AuditResourceOrganization,
		Resource:          org.Name,
		OrgID:             org.ID,
		OrgName:           org.Name,
	})

	return i18n.T(ctx, "Successfully removed organization: %s.", org.Slug), nil
}

func (s *organizationService) VerifyOrganization(ctx context.Context, orgID string) (string, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "OrganizationService.VerifyOrganization")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagEntity(span, orgID)

	user, err := s.permissions.UserRequired(ctx)
	if err != nil {
		return "", err
	}
	if err := s.permissions.VerifiedRequired(ctx, user); err != nil {
		return "", err
	}

	org, err := s.repos.OrganizationRepository.GetByID(ctx, orgID)
	if err != nil {
		tracing.TraceErr(span, err)
		return "", err
	}
	if org == nil {
		return "", tracker_errors.BadRequest(i18n.T(ctx, "Unable to verify unknown organization."))
	}

	if err := s.permissions.SuperAdminRequired(ctx); err != nil {
		return "", tracker_errors.Forbidden(i18n.T(ctx, "Permission Denied: Please contact super admin for help with verifying this organization."))
	}
	if org.Verified {
		return "", tracker_errors.BadRequest(i18n.T(ctx, "Organization has already been verified."))
	}

	org.Verified = true
	if err := s.repos.OrganizationRepository.Save(ctx, org); err != nil {
		tracing.TraceErr(span, err)
		return "", tracker_errors.Internal(i18n.T(ctx, "Unable to verify organization. Please try again."))
	}

	s.audit.Record(ctx, &models.AuditLog{
		InitiatorID:       user.ID,
		InitiatorUserName: user.UserName,
		InitiatorRole:     enum.RoleSuperAdmin,
		Action:            enum.AuditActionUpdate,
		ResourceType:      enum.AuditResourceOrganization,
		Resource:          org.Name,
		OrgID:             org.ID,
		OrgName:           org.Name,
		UpdatedProperties: models.JSONMap{"verified": models.PropertyChange(false, true)},
	})

	return i18n.T(ctx, "Successfully verified organization: %s.", org.Slug), nil
}

func (s *organizationService) DomainCount(ctx context.Context, orgID string) (int64, error) {
	return s.repos.ClaimRepository.CountByOrg(ctx, orgID)
}

func applyDetails(org *models.Organization, input dto.OrganizationInput) {
	org.Zone = strings.TrimSpace(utils.ValueOr(input.Zone, org.Zone))
	org.Sector = strings.TrimSpace(utils.ValueOr(input.Sector, org.Sector))
	org.Country = strings.TrimSpace(utils.ValueOr(input.Country, org.Country))
	org.Province = strings.TrimSpace(utils.ValueOr(input.Province, org.Province))
	org.City = strings.TrimSpace(utils.ValueOr(input.City, org.City))
}
