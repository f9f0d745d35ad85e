package affiliation

import (
	"context"

	"github.com/opentracing/opentracing-go"

	"github.com/canada-ca/tracker-sub010/config"
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
	"github.com/canada-ca/tracker-sub010/services/auth"
)

const CursorType = "Affiliation"

type affiliationService struct {
	cfg         *config.AppConfig
	log         logger.Logger
	repos       *repository.Repositories
	permissions interfaces.PermissionService
	audit       interfaces.AuditLogService
	notify      interfaces.NotifyService
	tokens      *auth.TokenService
}

func NewAffiliationService(cfg *config.AppConfig, log logger.Logger, repos *repository.Repositories, permissions interfaces.PermissionService, audit interfaces.AuditLogService, notify interfaces.NotifyService, tokens *auth.TokenService) interfaces.AffiliationService {
	return &affiliationService{
		cfg:         cfg,
		log:         log,
		repos:       repos,
		permissions: permissions,
		audit:       audit,
		notify:      notify,
		tokens:      tokens,
	}
}

// adminRequired loads the caller, checks verification and TFA, and returns
// the caller's role on the organization.
func (s *affiliationService) adminRequired(ctx context.Context, orgID string) (*models.User, enum.Role, error) {
	user, err := s.permissions.UserRequired(ctx)
	if err != nil {
		return nil, enum.RoleNone, err
	}
	if err := s.permissions.VerifiedRequired(ctx, user); err != nil {
		return nil, enum.RoleNone, err
	}
	if err := s.permissions.TfaRequired(ctx, user); err != nil {
		return nil, enum.RoleNone, err
	}
	role, err := s.permissions.CheckPermission(ctx, orgID)
	if err != nil {
		return nil, enum.RoleNone, err
	}
	return user, role, nil
}

func (s *affiliationService) FindAffiliationsForOrganization(ctx context.Context, orgID string, args interfaces.ConnectionArgs, includePending bool) (pagination.Page[*models.Affiliation], error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "AffiliationService.FindAffiliationsForOrganization")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagEntity(span, orgID)

	var empty pagination.Page[*models.Affiliation]

	window, err := pagination.NewWindow(ctx, "Affiliation", CursorType, args.Args)
	if err != nil {
		return empty, err
	}

	role, err := s.permissions.CheckPermission(ctx, orgID)
	if err != nil {
		tracing.TraceErr(span, err)
		return empty, err
	}
	if !role.IsAdmin() {
		return empty, tracker_errors.Forbidden(i18n.T(ctx, "Cannot query affiliations on organization without admin permission or higher."))
	}

	page, err := s.repos.AffiliationRepository.List(ctx, interfaces.AffiliationFilter{
		OrgID:          orgID,
		Search:         args.Search,
		IncludePending: includePending,
		Order:          args.Order,
	}, window)
	if err != nil {
		tracing.TraceErr(span, err)
		return empty, err
	}
	return page, nil
}

func (s *affiliationService) FindAffiliationsForUser(ctx context.Context, userID string, args interfaces.ConnectionArgs) (pagination.Page[*models.Affiliation], error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "AffiliationService.FindAffiliationsForUser")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagEntity(span, userID)

	var empty pagination.Page[*models.Affiliation]

	window, err := pagination.NewWindow(ctx, "Affiliation", CursorType, args.Args)
	if err != nil {
		return empty, err
	}

	if userID != utils.GetUserIdFromContext(ctx) {
		superAdmin, err := s.permissions.CheckSuperAdmin(ctx)
		if err != nil {
			tracing.TraceErr(span, err)
			return empty, err
		}
		if !superAdmin {
			return empty, tracker_errors.Forbidden(i18n.T(ctx, "Permission Denied: Please contact super admin for help with retrieving affiliations."))
		}
	}

	page, err := s.repos.AffiliationRepository.List(ctx, interfaces.AffiliationFilter{
		UserID:         userID,
		Search:         args.Search,
		IncludePending: true,
		Order:          args.Order,
	}, window)
	if err != nil {
		tracing.TraceErr(span, err)
		return empty, err
	}
	return page, nil
}

// InviteUserToOrg affiliates an existing user, or emails a sign up link
// carrying the invitation to an unknown address.
func (s *affiliationService) InviteUserToOrg(ctx context.Context, userName, orgID string, role enum.Role) (string, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "AffiliationService.InviteUserToOrg")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagEntity(span, orgID)
	span.LogKV("request.role", role.String())

	userName = utils.NormalizeUserName(userName)

	if role != enum.RoleUser && role != enum.RoleAdmin && role != enum.RoleSuperAdmin {
		return "", tracker_errors.BadRequest(i18n.T(ctx, "Unable to invite user. Please select a valid role."))
	}

	org, err := s.repos.OrganizationRepository.GetByID(ctx, orgID)
	if err != nil {
		tracing.TraceErr(span, err)
		return "", err
	}
	if org == nil {
		return "", tracker_errors.BadRequest(i18n.T(ctx, "Unable to invite user to unknown organization."))
	}

	user, callerRole, err := s.adminRequired(ctx, org.ID)
	if err != nil {
		return "", err
	}
	if !callerRole.IsAdmin() || (role == enum.RoleSuperAdmin && callerRole != enum.RoleSuperAdmin) {
		return "", tracker_errors.Forbidden(i18n.T(ctx, "Permission Denied: Please contact organization admin for help with user invitations."))
	}
	if userName == user.UserName {
		return "", tracker_errors.BadRequest(i18n.T(ctx, "Unable to invite yourself to an org."))
	}
	if !utils.IsValidEmail(userName) {
		return "", tracker_errors.BadRequest(i18n.T(ctx, "Unable to invite user. Please provide a valid email address."))
	}

	target, err := s.repos.UserRepository.GetByUserName(ctx, userName)
	if err != nil {
		tracing.TraceErr(span, err)
		return "", err
	}

	if target == nil {
		token, err := s.tokens.InviteToken(userName, org.ID, role.String())
		if err != nil {
			tracing.TraceErr(span, err)
			return "", err
		}
		createAccountURL := s.cfg.TrackerURL + "/create-user/" + token
		if err := s.notify.SendOrgInviteCreateAccountEmail(ctx, userName, utils.GetLanguageFromContext(ctx), org.Name, createAccountURL); err != nil {
			tracing.TraceErr(span, err)
			s.log.Errorf("Unable to send sign up invite for organization %s: %v", org.ID, err)
			return "", tracker_errors.Internal(i18n.T(ctx, "Unable to invite user. Please try again."))
		}
		s.recordInvite(ctx, user, callerRole, org, userName, role)
		return i18n.T(ctx, "Successfully sent invitation to service, and organization email."), nil
	}

	affiliation, err := s.repos.AffiliationRepository.Get(ctx, target.ID, org.ID)
	if err != nil {
		tracing.TraceErr(span, err)
		return "", err
	}
	switch {
	case affiliation == nil:
		err = s.repos.AffiliationRepository.Create(ctx, &models.Affiliation{UserID: target.ID, OrgID: org.ID, Permission: role})
	case affiliation.Permission == enum.RolePending:
		affiliation.Permission = role
		err = s.repos.AffiliationRepository.Save(ctx, affiliation)
	default:
		return "", tracker_errors.BadRequest(i18n.T(ctx, "Unable to invite user to organization. User is already affiliated with organization."))
	}
	if err != nil {
		tracing.TraceErr(span, err)
		return "", tracker_errors.Internal(i18n.T(ctx, "Unable to invite user. Please try again."))
	}

	if err := s.notify.SendOrgInviteEmail(ctx, target, org.Name); err != nil {
		s.log.Errorf("Unable to send organization invite to user %s: %v", target.ID, err)
	}
	s.recordInvite(ctx, user, callerRole, org, userName, role)

	return i18n.T(ctx, "Successfully invited user to organization, and sent notification email."), nil
}

func (s *affiliationService) recordInvite(ctx context.Context, user *models.User, callerRole enum.Role, org *models.Organization, userName string, role enum.Role) {
	s.audit.Record(ctx, &models.AuditLog{
		InitiatorID:       user.ID,
		InitiatorUserName: user.UserName,
		InitiatorRole:     callerRole,
		Action:            enum.AuditActionAdd,
		ResourceType:      enum.AuditResourceUser,
		Resource:          userName,
		OrgID:             org.ID,
		OrgName:           org.Name,
		UpdatedProperties: models.JSONMap{"permission": models.PropertyChange(nil, role.String())},
	})
}

func (s *affiliationService) UpdateUserRole(ctx context.Context, userName, orgID string, role enum.Role) (string, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "AffiliationService.UpdateUserRole")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagEntity(span, orgID)
	span.LogKV("request.role", role.String())

	if role != enum.RoleUser && role != enum.RoleAdmin && role != enum.RoleSuperAdmin {
		return "", tracker_errors.BadRequest(i18n.T(ctx, "Unable to update role: invalid role."))
	}

	target, err := s.repos.UserRepository.GetByUserName(ctx, utils.NormalizeUserName(userName))
	if err != nil {
		tracing.TraceErr(span, err)
		return "", err
	}
	if target == nil {
		return "", tracker_errors.BadRequest(i18n.T(ctx, "Unable to update role: user unknown."))
	}
	if target.ID == utils.GetUserIdFromContext(ctx) {
		return "", tracker_errors.BadRequest(i18n.T(ctx, "Unable to update your own role."))
	}

	org, err := s.repos.OrganizationRepository.GetByID(ctx, orgID)
	if err != nil {
		tracing.TraceErr(span, err)
		return "", err
	}
	if org == nil {
		return "", tracker_errors.BadRequest(i18n.T(ctx, "Unable to update role: organization unknown."))
	}

	user, callerRole, err := s.adminRequired(ctx, org.ID)
	if err != nil {
		return "", err
	}
	if !callerRole.IsAdmin() {
		return "", tracker_errors.Forbidden(i18n.T(ctx, "Permission Denied: Please contact organization admin for help with user role changes."))
	}

	affiliation, err := s.repos.AffiliationRepository.Get(ctx, target.ID, org.ID)
	if err != nil {
		tracing.TraceErr(span, err)
		return "", err
	}
	if affiliation == nil {
		return "", tracker_errors.BadRequest(i18n.T(ctx, "Unable to update role: user does not belong to organization."))
	}
	if callerRole != enum.RoleSuperAdmin && (affiliation.Permission == enum.RoleSuperAdmin || role == enum.RoleSuperAdmin) {
		return "", tracker_errors.Forbidden(i18n.T(ctx, "Permission Denied: Please contact super admin for help with user role changes."))
	}

	previous := affiliation.Permission
	affiliation.Permission = role
	if err := s.repos.AffiliationRepository.Save(ctx, affiliation); err != nil {
		tracing.TraceErr(span, err)
		return "", tracker_errors.Internal(i18n.T(ctx, "Unable to update user's role. Please try again."))
	}

	s.audit.Record(ctx, &models.AuditLog{
		InitiatorID:       user.ID,
		InitiatorUserName: user.UserName,
		InitiatorRole:     callerRole,
		Action:            enum.AuditActionUpdate,
		ResourceType:      enum.AuditResourceUser,
		Resource:          target.UserName,
		OrgID:             org.ID,
		OrgName:           org.Name,
		UpdatedProperties: models.JSONMap{"permission": models.PropertyChange(previous.String(), role.String())},
	})

	return i18n.T(ctx, "User role was updated successfully."), nil
}

func (s *affiliationService) RemoveUserFromOrg(ctx context.Context, userID, orgID string) (string, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "AffiliationService.RemoveUserFromOrg")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagEntity(span, orgID)

	org, err := s.repos.OrganizationRepository.GetByID(ctx, orgID)
	if err != nil {
		tracing.TraceErr(span, err)
		return "", err
	}
	if org == nil {
		return "", tracker_errors.BadRequest(i18n.T(ctx, "Unable to remove user from unknown organization."))
	}

	user, callerRole, err := s.adminRequired(ctx, org.ID)
	if err != nil {
		return "", err
	}
	if !callerRole.IsAdmin() {
		return "", tracker_errors.Forbidden(i18n.T(ctx, "Permission Denied: Please contact organization admin for help with removing users."))
	}

	target, err := s.repos.UserRepository.GetByID(ctx, userID)
	if err != nil {
		tracing.TraceErr(span, err)
		return "", err
	}
	if target == nil {
		return "", tracker_errors.BadRequest(i18n.T(ctx, "Unable to remove unknown user from organization."))
	}

	affiliation, err := s.repos.AffiliationRepository.Get(ctx, target.ID, org.ID)
	if err != nil {
		tracing.TraceErr(span, err)
		return "", err
	}
	if affiliation == nil {
		return "", tracker_errors.BadRequest(i18n.T(ctx, "Unable to remove a user that already does not belong to this organization."))
	}
	if affiliation.Permission == enum.RoleSuperAdmin && callerRole != enum.RoleSuperAdmin {
		return "", tracker_errors.Forbidden(i18n.T(ctx, "Permission Denied: Please contact super admin for help with removing users."))
	}

	if err := s.repos.AffiliationRepository.Delete(ctx, target.ID, org.ID); err != nil {
		tracing.TraceErr(span, err)
		return "", tracker_errors.Internal(i18n.T(ctx, "Unable to remove user from this organization. Please try again."))
	}

	s.audit.Record(ctx, &models.AuditLog{
		InitiatorID:       user.ID,
		InitiatorUserName: user.UserName,
		InitiatorRole:     callerRole,
		Action:            enum.AuditActionRemove,
		ResourceType:      enum.AuditResourceUser,
		Resource:          target.UserName,
		OrgID:             org.ID,
		OrgName:           org.Name,
	})

	return i18n.T(ctx, "Successfully removed user from organization."), nil
}

// RequestOrgAffiliation creates a pending affiliation and notifies every
// admin of the organization.
func (s *affiliationService) RequestOrgAffiliation(ctx context.Context, orgID string) (string, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "AffiliationService.RequestOrgAffiliation")
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
		return "", tracker_errors.BadRequest(i18n.T(ctx, "Unable to request invite to unknown organization."))
	}

	existing, err := s.repos.AffiliationRepository.Get(ctx, user.ID, org.ID)
	if err != nil {
		tracing.TraceErr(span, err)
		return "", err
	}
	if existing != nil {
		if existing.Permission == enum.RolePending {
			return "", tracker_errors.BadRequest(i18n.T(ctx, "Unable to request invite to organization with which you have already requested to join."))
		}
		return "", tracker_errors.BadRequest(i18n.T(ctx, "Unable to request invite to organization with which you are already affiliated."))
	}

	if err := s.repos.AffiliationRepository.Create(ctx, &models.Affiliation{
		UserID:     user.ID,
		OrgID:      org.ID,
		Permission: enum.RolePending,
	}); err != nil {
		tracing.TraceErr(span, err)
		return "", tracker_errors.Internal(i18n.T(ctx, "Unable to request invite. Please try again."))
	}

	admins, err := s.repos.AffiliationRepository.ListAdminsByOrg(ctx, org.ID)
	if err != nil {
		tracing.TraceErr(span, err)
		s.log.Errorf("Unable to list admins of organization %s: %v", org.ID, err)
	}
	adminURL := s.cfg.TrackerURL + "/admin/organizations"
	for _, admin := range admins {
		adminUser, err := s.repos.UserRepository.GetByID(ctx, admin.UserID)
		if err != nil || adminUser == nil {
			continue
		}
		if err := s.notify.SendInviteRequestEmail(ctx, adminUser, user.DisplayName, org.Name, adminURL); err != nil {
			s.log.Errorf("Unable to send invite request email to admin %s: %v", adminUser.ID, err)
		}
	}

	s.audit.Record(ctx, &models.AuditLog{
		InitiatorID:       user.ID,
		InitiatorUserName: user.UserName,
		Action:            enum.AuditActionAdd,
		ResourceType:      enum.AuditResourceUser,
		Resource:          user.UserName,
		OrgID:             org.ID,
		OrgName:           org.Name,
		UpdatedProperties: models.JSONMap{"permission": models.PropertyChange(nil, enum.RolePending.String())},
	})

	return i18n.T(ctx, "Successfully requested invite to organization, and sent notification email."), nil
}

// LeaveOrganization removes the caller's own affiliation. The organization
// stays even when its owner leaves.
func (s *affiliationService) LeaveOrganization(ctx context.Context, orgID string) (string, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "AffiliationService.LeaveOrganization")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagEntity(span, orgID)

	user, err := s.permissions.UserRequired(ctx)
	if err != nil {
		return "", err
	}

	org, err := s.repos.OrganizationRepository.GetByID(ctx, orgID)
	if err != nil {
		tracing.TraceErr(span, err)
		return "", err
	}
	if org == nil {
		return "", tracker_errors.BadRequest(i18n.T(ctx, "Unable to leave undefined organization."))
	}

	affiliation, err := s.repos.AffiliationRepository.Get(ctx, user.ID, org.ID)
	if err != nil {
		tracing.TraceErr(span, err)
		return "", err
	}
	if affiliation == nil {
		return "", tracker_errors.BadRequest(i18n.T(ctx, "Unable to leave organization. You are not affiliated with it."))
	}

	if err := s.repos.AffiliationRepository.Delete(ctx, user.ID, org.ID); err != nil {
		tracing.TraceErr(span, err)
		return "", tracker_errors.Internal(i18n.T(ctx, "Unable to leave organization. Please try again."))
	}

	s.audit.Record(ctx, &models.AuditLog{
		InitiatorID:       user.ID,
		InitiatorUserName: user.UserName,
		InitiatorRole:     affiliation.Permission,
		Action:            enum.AuditActionRemove,
		ResourceType:      enum.AuditResourceUser,
		Resource:          user.UserName,
		OrgID:             org.ID,
		OrgName:           org.Name,
	})

	return i18n.T(ctx, "Successfully left organization: %s", org.Slug), nil
}
