package user

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"

	"github.com/canada-ca/tracker-sub010/dto"
	tracker_errors "github.com/canada-ca/tracker-sub010/errors"
	"github.com/canada-ca/tracker-sub010/interfaces"
	"github.com/canada-ca/tracker-sub010/internal/enum"
	"github.com/canada-ca/tracker-sub010/internal/i18n"
	"github.com/canada-ca/tracker-sub010/internal/logger"
	"github.com/canada-ca/tracker-sub010/internal/models"
	"github.com/canada-ca/tracker-sub010/internal/repository"
	"github.com/canada-ca/tracker-sub010/internal/tracing"
	"github.com/canada-ca/tracker-sub010/internal/utils"
	"github.com/canada-ca/tracker-sub010/services/auth"
)

type userService struct {
	log         logger.Logger
	repos       *repository.Repositories
	permissions interfaces.PermissionService
	audit       interfaces.AuditLogService
}

func NewUserService(log logger.Logger, repos *repository.Repositories, permissions interfaces.PermissionService, audit interfaces.AuditLogService) interfaces.UserService {
	return &userService{
		log:         log,
		repos:       repos,
		permissions: permissions,
		audit:       audit,
	}
}

func (s *userService) FindMe(ctx context.Context) (*models.User, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "UserService.FindMe")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	return s.permissions.UserRequired(ctx)
}

func (s *userService) UpdateUserProfile(ctx context.Context, input dto.UpdateUserProfileInput) (*models.User, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "UserService.UpdateUserProfile")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	user, err := s.permissions.UserRequired(ctx)
	if err != nil {
		return nil, err
	}

	if input.DisplayName != nil {
		displayName := strings.TrimSpace(*input.DisplayName)
		if displayName == "" {
			return nil, tracker_errors.BadRequest(i18n.T(ctx, "Unable to update profile. Display name cannot be empty."))
		}
		user.DisplayName = displayName
	}

	if input.UserName != nil {
		userName := utils.NormalizeUserName(*input.UserName)
		if userName != user.UserName {
			if !utils.IsValidEmail(userName) {
				return nil, tracker_errors.BadRequest(i18n.T(ctx, "Unable to update profile. Username must be a valid email address."))
			}
			existing, err := s.repos.UserRepository.GetByUserName(ctx, userName)
			if err != nil {
				tracing.TraceErr(span, err)
				return nil, err
			}
			if existing != nil {
				return nil, tracker_errors.BadRequest(i18n.T(ctx, "Username not available, please try another."))
			}
			// a new address has to be verified again
			user.UserName = userName
			user.EmailValidated = false
			user.TfaSendMethod = enum.TfaSendMethodNone
		}
	}

	if input.PreferredLang != nil {
		user.PreferredLang = *input.PreferredLang
	}

	if input.TfaSendMethod != nil {
		if *input.TfaSendMethod == enum.TfaSendMethodEmail && !user.EmailValidated {
			return nil, tracker_errors.BadRequest(i18n.T(ctx, "Unable to update profile. Please verify your email before enabling email authentication."))
		}
		user.TfaSendMethod = *input.TfaSendMethod
	}

	if err := s.repos.UserRepository.Save(ctx, user); err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdateUserPassword(ctx context.Context, currentPassword, password, confirmPassword string) (string, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "UserService.UpdateUserPassword")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	user, err := s.permissions.UserRequired(ctx)
	if err != nil {
		return "", err
	}

	if !auth.CheckPassword(user.PasswordHash, currentPassword) {
		return "", tracker_errors.BadRequest(i18n.T(ctx, "Unable to update password, current password does not match. Please try again."))
	}
	if err := auth.ValidateNewPassword(ctx, password, confirmPassword); err != nil {
		return "", err
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		tracing.TraceErr(span, err)
		return "", err
	}
	user.PasswordHash = passwordHash
	user.RefreshID = uuid.NewString()
	if err := s.repos.UserRepository.Save(ctx, user); err != nil {
		tracing.TraceErr(span, err)
		return "", err
	}
	return i18n.T(ctx, "Password was successfully updated."), nil
}

// CloseAccount removes the caller's account, or with userID set, another
// user's account when the caller is a super admin.
func (s *userService) CloseAccount(ctx context.Context, userID *string) (string, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "UserService.CloseAccount")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	user, err := s.permissions.UserRequired(ctx)
	if err != nil {
		return "", err
	}

	target := user
	if userID != nil && *userID != "" && *userID != user.ID {
		tracing.TagEntity(span, *userID)
		superAdmin, err := s.permissions.CheckSuperAdmin(ctx)
		if err != nil {
			tracing.TraceErr(span, err)
			return "", err
		}
		if !superAdmin {
			return "", tracker_errors.Forbidden(i18n.T(ctx, "Permission error: Unable to close other user's account."))
		}
		target, err = s.repos.UserRepository.GetByID(ctx, *userID)
		if err != nil {
			tracing.TraceErr(span, err)
			return "", err
		}
		if target == nil {
			return "", tracker_errors.BadRequest(i18n.T(ctx, "Unable to close account of an undefined user."))
		}
	}

	if err := s.repos.AffiliationRepository.DeleteByUser(ctx, target.ID); err != nil {
		tracing.TraceErr(span, err)
		return "", tracker_errors.Internal(i18n.T(ctx, "Unable to close account. Please try again."))
	}
	if err := s.repos.UserRepository.Delete(ctx, target.ID); err != nil {
		tracing.TraceErr(span, err)
		return "", tracker_errors.Internal(i18n.T(ctx, "Unable to close account. Please try again."))
	}

	s.audit.Record(ctx, &models.AuditLog{
		InitiatorID:       user.ID,
		InitiatorUserName: user.UserName,
		Action:            enum.AuditActionRemove,
		ResourceType:      enum.AuditResourceUser,
		Resource:          target.UserName,
	})

	return i18n.T(ctx, "Successfully closed account."), nil
}

// IsUserAdmin reports whether the caller is admin of the organization, or of
// any organization when orgID is nil.
func (s *userService) IsUserAdmin(ctx context.Context, orgID *string) (bool, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "UserService.IsUserAdmin")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	user, err := s.permissions.UserRequired(ctx)
	if err != nil {
		return false, err
	}

	if orgID != nil && *orgID != "" {
		role, err := s.permissions.CheckPermission(ctx, *orgID)
		if err != nil {
			tracing.TraceErr(span, err)
			return false, err
		}
		return role.IsAdmin(), nil
	}

	affiliations, err := s.repos.AffiliationRepository.ListByUser(ctx, user.ID)
	if err != nil {
		tracing.TraceErr(span, err)
		return false, err
	}
	for _, affiliation := range affiliations {
		if affiliation.Permission.IsAdmin() {
			return true, nil
		}
	}
	return false, nil
}

func (s *userService) IsUserSuperAdmin(ctx context.Context) (bool, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "UserService.IsUserSuperAdmin")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	if _, err := s.permissions.UserRequired(ctx); err != nil {
		return false, err
	}
	return s.permissions.CheckSuperAdmin(ctx)
}
