package permission

import (
	"context"

	"github.com/opentracing/opentracing-go"

	"github.com/canada-ca/tracker-sub010/config"
	tracker_errors "github.com/canada-ca/tracker-sub010/errors"
	"github.com/canada-ca/tracker-sub010/interfaces"
	"github.com/canada-ca/tracker-sub010/internal/enum"
	"github.com/canada-ca/tracker-sub010/internal/i18n"
	"github.com/canada-ca/tracker-sub010/internal/models"
	"github.com/canada-ca/tracker-sub010/internal/repository"
	"github.com/canada-ca/tracker-sub010/internal/tracing"
	"github.com/canada-ca/tracker-sub010/internal/utils"
)

type permissionService struct {
	cfg   *config.AppConfig
	repos *repository.Repositories
}

func NewPermissionService(cfg *config.AppConfig, repos *repository.Repositories) interfaces.PermissionService {
	return &permissionService{
		cfg:   cfg,
		repos: repos,
	}
}

func authError(ctx context.Context) error {
	return tracker_errors.NewAuthError(i18n.T(ctx, "Authentication error. Please sign in."))
}

// PermissionError is the message returned whenever a role check fails.
func PermissionError(ctx context.Context) error {
	return tracker_errors.Forbidden(i18n.T(ctx, "Permission Denied: Please contact organization admin for help."))
}

func (s *permissionService) UserRequired(ctx context.Context) (*models.User, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "PermissionService.UserRequired")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	customContext := utils.GetContext(ctx)
	if customContext.UserId == "" || customContext.TokenError {
		return nil, authError(ctx)
	}

	user, err := s.repos.UserRepository.GetByID(ctx, customContext.UserId)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	if user == nil {
		return nil, authError(ctx)
	}
	return user, nil
}

func (s *permissionService) VerifiedRequired(ctx context.Context, user *models.User) error {
	if user == nil || !user.EmailValidated {
		return tracker_errors.Forbidden(i18n.T(ctx, "Verification error. Please verify your account via email to access content."))
	}
	return nil
}

func (s *permissionService) TfaRequired(ctx context.Context, user *models.User) error {
	if !s.cfg.TfaRequired {
		return nil
	}
	if user == nil || user.TfaSendMethod == enum.TfaSendMethodNone {
		return tracker_errors.Forbidden(i18n.T(ctx, "Verification error. Please activate multi-factor authentication to access content."))
	}
	return nil
}

// CheckPermission returns the caller's role on the organization. A super
// admin affiliation anywhere wins over the affiliation on the organization.
func (s *permissionService) CheckPermission(ctx context.Context, orgID string) (enum.Role, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "PermissionService.CheckPermission")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagEntity(span, orgID)

	userID := utils.GetUserIdFromContext(ctx)
	if userID == "" {
		return enum.RoleNone, nil
	}

	superAdmin, err := s.repos.AffiliationRepository.HasSuperAdmin(ctx, userID)
	if err != nil {
		tracing.TraceErr(span, err)
		return enum.RoleNone, err
	}
	if superAdmin {
		return enum.RoleSuperAdmin, nil
	}

	affiliation, err := s.repos.AffiliationRepository.Get(ctx, userID, orgID)
	if err != nil {
		tracing.TraceErr(span, err)
		return enum.RoleNone, err
	}
	if affiliation == nil || affiliation.Permission == enum.RolePending {
		return enum.RoleNone, nil
	}

	span.LogKV("result.permission", affiliation.Permission.String())
	return affiliation.Permission, nil
}

func (s *permissionService) CheckDomainPermission(ctx context.Context, domainID string) (bool, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "PermissionService.CheckDomainPermission")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagEntity(span, domainID)

	userID := utils.GetUserIdFromContext(ctx)
	if userID == "" {
		return false, nil
	}

	superAdmin, err := s.repos.AffiliationRepository.HasSuperAdmin(ctx, userID)
	if err != nil {
		tracing.TraceErr(span, err)
		return false, err
	}
	if superAdmin {
		return true, nil
	}

	claimed, err := s.repos.ClaimRepository.IsDomainClaimedForUser(ctx, userID, domainID)
	if err != nil {
		tracing.TraceErr(span, err)
		return false, err
	}
	return claimed, nil
}

func (s *permissionService) CheckSuperAdmin(ctx context.Context) (bool, error) {
	userID := utils.GetUserIdFromContext(ctx)
	if userID == "" {
		return false, nil
	}
	return s.repos.AffiliationRepository.HasSuperAdmin(ctx, userID)
}

func (s *permissionService) SuperAdminRequired(ctx context.Context) error {
	superAdmin, err := s.CheckSuperAdmin(ctx)
	if err != nil {
		return err
	}
	if !superAdmin {
		return tracker_errors.Forbidden(i18n.T(ctx, "Permissions error. You do not have sufficient permissions to access this data."))
	}
	return nil
}

// CheckUserIsAdminForUser reports whether the caller administers an
// organization the named user is affiliated with.
func (s *permissionService) CheckUserIsAdminForUser(ctx context.Context, userName string) (bool, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "PermissionService.CheckUserIsAdminForUser")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	userID := utils.GetUserIdFromContext(ctx)
	if userID == "" {
		return false, nil
	}

	superAdmin, err := s.repos.AffiliationRepository.HasSuperAdmin(ctx, userID)
	if err != nil {
		tracing.TraceErr(span, err)
		return false, err
	}
	if superAdmin {
		return true, nil
	}

	target, err := s.repos.UserRepository.GetByUserName(ctx, utils.NormalizeUserName(userName))
	if err != nil {
		tracing.TraceErr(span, err)
		return false, err
	}
	if target == nil {
		return false, nil
	}
	return s.repos.AffiliationRepository.IsAdminForUser(ctx, userID, target.ID)
}

func (s *permissionService) CheckOrgOwner(ctx context.Context, orgID string) (bool, error) {
	userID := utils.GetUserIdFromContext(ctx)
	if userID == "" {
		return false, nil
	}
	affiliation, err := s.repos.AffiliationRepository.Get(ctx, userID, orgID)
	if err != nil {
		return false, err
	}
	return affiliation != nil && affiliation.Owner && affiliation.Permission != enum.RolePending, nil
}

// CheckDomainOwnership reports whether the caller may read the DMARC data of
// the domain: an organization of the caller must own it.
func (s *permissionService) CheckDomainOwnership(ctx context.Context, domainID string) (bool, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "PermissionService.CheckDomainOwnership")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagEntity(span, domainID)

	userID := utils.GetUserIdFromContext(ctx)
	if userID == "" {
		return false, nil
	}

	superAdmin, err := s.repos.AffiliationRepository.HasSuperAdmin(ctx, userID)
	if err != nil {
		tracing.TraceErr(span, err)
		return false, err
	}
	if superAdmin {
		return true, nil
	}

	owned, err := s.repos.ClaimRepository.IsDmarcOwnedForUser(ctx, userID, domainID)
	if err != nil {
		tracing.TraceErr(span, err)
		return false, err
	}
	return owned, nil
}
