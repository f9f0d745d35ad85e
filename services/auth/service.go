package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"

	"github.com/canada-ca/tracker-sub010/config"
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
)

const (
	RefreshTokenCookie = "refresh_token"

	MaxFailedLoginAttempts = 10
	LoginLockDuration      = 60 * time.Minute
)

type authService struct {
	cfg    *config.AppConfig
	log    logger.Logger
	repos  *repository.Repositories
	tokens *TokenService
	notify interfaces.NotifyService
}

func NewAuthService(cfg *config.AppConfig, log logger.Logger, repos *repository.Repositories, tokens *TokenService, notify interfaces.NotifyService) interfaces.AuthService {
	return &authService{
		cfg:    cfg,
		log:    log,
		repos:  repos,
		tokens: tokens,
		notify: notify,
	}
}

func (s *authService) UserIDFromAuthToken(token string) (string, error) {
	return s.tokens.ParseAuthToken(token)
}

func (s *authService) SignUp(ctx context.Context, input dto.SignUpInput) (*dto.AuthResult, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "AuthService.SignUp")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	userName := utils.NormalizeUserName(input.UserName)
	span.LogKV("request.userName", userName)

	if !utils.IsValidEmail(userName) {
		return nil, tracker_errors.BadRequest(i18n.T(ctx, "Unable to sign up. Please try again."))
	}
	if err := ValidateNewPassword(ctx, input.Password, input.ConfirmPassword); err != nil {
		return nil, err
	}

	existing, err := s.repos.UserRepository.GetByUserName(ctx, userName)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	if existing != nil {
		return nil, tracker_errors.BadRequest(i18n.T(ctx, "Email already in use."))
	}

	var inviteOrgID string
	var inviteRole enum.Role
	if input.SignUpToken != "" {
		tokenUserName, orgID, role, err := s.tokens.ParseInviteToken(input.SignUpToken)
		if err != nil || tokenUserName != userName {
			return nil, tracker_errors.BadRequest(i18n.T(ctx, "Unable to sign up, please contact org admin for a new invite."))
		}
		inviteOrgID, inviteRole = orgID, enum.Role(role)
	}

	passwordHash, err := HashPassword(input.Password)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	preferredLang := input.PreferredLang
	if preferredLang == "" {
		preferredLang = utils.GetLanguageFromContext(ctx)
	}

	user := &models.User{
		UserName:      userName,
		DisplayName:   input.DisplayName,
		PasswordHash:  passwordHash,
		PreferredLang: preferredLang,
		TfaSendMethod: enum.TfaSendMethodNone,
		RefreshID:     uuid.NewString(),
	}
	if err := s.repos.UserRepository.Create(ctx, user); err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	if inviteOrgID != "" {
		if err := s.acceptInvite(ctx, user, inviteOrgID, inviteRole); err != nil {
			tracing.TraceErr(span, err)
			return nil, err
		}
	}

	s.sendVerificationEmail(ctx, user)

	return s.issueTokens(ctx, user, input.RememberMe)
}

func (s *authService) acceptInvite(ctx context.Context, user *models.User, orgID string, role enum.Role) error {
	org, err := s.repos.OrganizationRepository.GetByID(ctx, orgID)
	if err != nil {
		return err
	}
	if org == nil {
		s.log.Warnf("Sign up invite for unknown organization %s", orgID)
		return nil
	}
	if role.Rank() == 0 {
		role = enum.RoleUser
	}
	return s.repos.AffiliationRepository.Create(ctx, &models.Affiliation{
		UserID:     user.ID,
		OrgID:      org.ID,
		Permission: role,
	})
}

func (s *authService) SignIn(ctx context.Context, userName, password string, rememberMe bool) (*dto.SignInResult, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "AuthService.SignIn")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	userName = utils.NormalizeUserName(userName)
	span.LogKV("request.userName", userName)

	user, err := s.repos.UserRepository.GetByUserName(ctx, userName)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	if user == nil {
		return nil, tracker_errors.BadRequest(i18n.T(ctx, "Incorrect username or password. Please try again."))
	}

	now := utils.Now()
	if user.IsLocked(now) {
		return nil, tracker_errors.BadRequest(i18n.T(ctx, "Too many failed login attempts, please reset your password, and try again."))
	}
	if user.LockedUntil != nil {
		// lock expired
		user.FailedLoginAttempts = 0
		user.LockedUntil = nil
	}

	if !CheckPassword(user.PasswordHash, password) {
		locked, err := s.recordFailedAttempt(ctx, user, now)
		if err != nil {
			tracing.TraceErr(span, err)
			return nil, err
		}
		if locked {
			return nil, tracker_errors.BadRequest(i18n.T(ctx, "Too many failed login attempts, please reset your password, and try again."))
		}
		return nil, tracker_errors.BadRequest(i18n.T(ctx, "Incorrect username or password. Please try again."))
	}

	// failed attempts keep counting until the TFA code is accepted
	if user.TfaSendMethod == enum.TfaSendMethodEmail {
		code, err := GenerateTfaCode()
		if err != nil {
			tracing.TraceErr(span, err)
			return nil, err
		}
		codeHash, err := HashPassword(code)
		if err != nil {
			tracing.TraceErr(span, err)
			return nil, err
		}
		expiresAt := now.Add(s.tokens.signInExpiry)
		user.TfaCodeHash = codeHash
		user.TfaCodeExpiresAt = &expiresAt
		if err := s.repos.UserRepository.Save(ctx, user); err != nil {
			tracing.TraceErr(span, err)
			return nil, err
		}

		authenticateToken, err := s.tokens.AuthenticateToken(user.ID)
		if err != nil {
			tracing.TraceErr(span, err)
			return nil, err
		}
		if err := s.notify.SendAuthenticateEmail(ctx, user, code); err != nil {
			tracing.TraceErr(span, err)
			s.log.Errorf("Unable to send authentication email to user %s: %v", user.ID, err)
			return nil, tracker_errors.BadRequest(i18n.T(ctx, "Unable to sign in, please try again."))
		}
		return &dto.SignInResult{
			SendMethod:        enum.TfaSendMethodEmail,
			AuthenticateToken: authenticateToken,
		}, nil
	}

	user.FailedLoginAttempts = 0
	result, err := s.issueTokens(ctx, user, rememberMe)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	return &dto.SignInResult{Auth: result, SendMethod: enum.TfaSendMethodNone}, nil
}

// recordFailedAttempt counts a wrong password or TFA code. At
// MaxFailedLoginAttempts the account is locked and any pending TFA code is
// discarded.
func (s *authService) recordFailedAttempt(ctx context.Context, user *models.User, now time.Time) (bool, error) {
	user.FailedLoginAttempts++
	locked := user.FailedLoginAttempts >= MaxFailedLoginAttempts
	if locked {
		lockedUntil := now.Add(LoginLockDuration)
		user.LockedUntil = &lockedUntil
		user.TfaCodeHash = ""
		user.TfaCodeExpiresAt = nil
	}
	return locked, s.repos.UserRepository.Save(ctx, user)
}

func (s *authService) Authenticate(ctx context.Context, authenticateToken, code string) (*dto.AuthResult, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "AuthService.Authenticate")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	userID, err := s.tokens.ParseAuthenticateToken(authenticateToken)
	if err != nil {
		return nil, tracker_errors.BadRequest(i18n.T(ctx, "Token value incorrect, please sign in again."))
	}
	tracing.TagEntity(span, userID)

	user, err := s.repos.UserRepository.GetByID(ctx, userID)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	if user == nil {
		return nil, tracker_errors.BadRequest(i18n.T(ctx, "Token value incorrect, please sign in again."))
	}

	now := utils.Now()
	if user.IsLocked(now) {
		return nil, tracker_errors.BadRequest(i18n.T(ctx, "Too many failed login attempts, please reset your password, and try again."))
	}
	if user.TfaCodeHash == "" || user.TfaCodeExpiresAt == nil || now.After(*user.TfaCodeExpiresAt) {
		return nil, tracker_errors.BadRequest(i18n.T(ctx, "Incorrect TFA code. Please sign in again."))
	}
	if !CheckPassword(user.TfaCodeHash, code) {
		locked, err := s.recordFailedAttempt(ctx, user, now)
		if err != nil {
			tracing.TraceErr(span, err)
			return nil, err
		}
		if locked {
			return nil, tracker_errors.BadRequest(i18n.T(ctx, "Too many failed login attempts, please reset your password, and try again."))
		}
		return nil, tracker_errors.BadRequest(i18n.T(ctx, "Incorrect TFA code. Please sign in again."))
	}

	user.TfaCodeHash = ""
	user.TfaCodeExpiresAt = nil
	user.FailedLoginAttempts = 0
	return s.issueTokens(ctx, user, false)
}

func (s *authService) RefreshTokens(ctx context.Context) (*dto.AuthResult, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "AuthService.RefreshTokens")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	refreshToken := utils.GetCookie(ctx, RefreshTokenCookie)
	if refreshToken == "" {
		return nil, tracker_errors.BadRequest(i18n.T(ctx, "Unable to refresh tokens, please sign in."))
	}

	userID, refreshID, err := s.tokens.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, tracker_errors.BadRequest(i18n.T(ctx, "Unable to refresh tokens, please sign in."))
	}

	user, err := s.repos.UserRepository.GetByID(ctx, userID)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	if user == nil || user.RefreshID != refreshID {
		return nil, tracker_errors.BadRequest(i18n.T(ctx, "Unable to refresh tokens, please sign in."))
	}

	return s.issueTokens(ctx, user, true)
}

func (s *authService) SignOut(ctx context.Context) string {
	span, ctx := opentracing.StartSpanFromContext(ctx, "AuthService.SignOut")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	if userID := utils.GetUserIdFromContext(ctx); userID != "" {
		user, err := s.repos.UserRepository.GetByID(ctx, userID)
		if err != nil {
			tracing.TraceErr(span, err)
		} else if user != nil {
			user.RefreshID = uuid.NewString()
			if err := s.repos.UserRepository.Save(ctx, user); err != nil {
				tracing.TraceErr(span, err)
			}
		}
	}

	utils.SetCookie(ctx, &http.Cookie{
		Name:     RefreshTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
	return i18n.T(ctx, "Successfully signed out.")
}

func (s *authService) SendEmailVerification(ctx context.Context, userName string) string {
	span, ctx := opentracing.StartSpanFromContext(ctx, "AuthService.SendEmailVerification")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	user, err := s.repos.UserRepository.GetByUserName(ctx, utils.NormalizeUserName(userName))
	if err != nil {
		tracing.TraceErr(span, err)
	}
	if user != nil && !user.EmailValidated {
		s.sendVerificationEmail(ctx, user)
	}
	return i18n.T(ctx, "If an account with this username is found, an email verification link will be found in your inbox.")
}

func (s *authService) VerifyAccount(ctx context.Context, verifyToken string) (string, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "AuthService.VerifyAccount")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	userID, err := s.tokens.ParseVerifyEmailToken(verifyToken)
	if err != nil {
		return "", tracker_errors.BadRequest(i18n.T(ctx, "Unable to verify account. Please request a new email."))
	}

	user, err := s.repos.UserRepository.GetByID(ctx, userID)
	if err != nil {
		tracing.TraceErr(span, err)
		return "", err
	}
	if user == nil {
		return "", tracker_errors.BadRequest(i18n.T(ctx, "Unable to verify account. Please request a new email."))
	}

	user.EmailValidated = true
	user.TfaSendMethod = enum.TfaSendMethodEmail
	if err := s.repos.UserRepository.Save(ctx, user); err != nil {
		tracing.TraceErr(span, err)
		return "", err
	}
	return i18n.T(ctx, "Successfully email verified account, and set TFA send method to email."), nil
}

func (s *authService) SendPasswordResetLink(ctx context.Context, userName string) string {
	span, ctx := opentracing.StartSpanFromContext(ctx, "AuthService.SendPasswordResetLink")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	user, err := s.repos.UserRepository.GetByUserName(ctx, utils.NormalizeUserName(userName))
	if err != nil {
		tracing.TraceErr(span, err)
	}
	if user != nil {
		token, err := s.tokens.ResetPasswordToken(user.ID, user.PasswordHash)
		if err != nil {
			tracing.TraceErr(span, err)
		} else if err := s.notify.SendPasswordResetEmail(ctx, user, s.cfg.TrackerURL+"/reset-password/"+token); err != nil {
			tracing.TraceErr(span, err)
			s.log.Errorf("Unable to send password reset email to user %s: %v", user.ID, err)
		}
	}
	return i18n.T(ctx, "If an account with this username is found, a password reset link will be found in your inbox.")
}

func (s *authService) ResetPassword(ctx context.Context, resetToken, password, confirmPassword string) (string, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "AuthService.ResetPassword")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	userID, passwordPrefix, err := s.tokens.ParseResetPasswordToken(resetToken)
	if err != nil {
		return "", tracker_errors.BadRequest(i18n.T(ctx, "Unable to reset password. Please request a new email."))
	}

	user, err := s.repos.UserRepository.GetByID(ctx, userID)
	if err != nil {
		tracing.TraceErr(span, err)
		return "", err
	}
	if user == nil || hashPrefix(user.PasswordHash) != passwordPrefix {
		return "", tracker_errors.BadRequest(i18n.T(ctx, "Unable to reset password. Please request a new email."))
	}

	if err := ValidateNewPassword(ctx, password, confirmPassword); err != nil {
		return "", err
	}

	passwordHash, err := HashPassword(password)
	if err != nil {
		tracing.TraceErr(span, err)
		return "", err
	}
	user.PasswordHash = passwordHash
	user.FailedLoginAttempts = 0
	user.LockedUntil = nil
	user.RefreshID = uuid.NewString()
	if err := s.repos.UserRepository.Save(ctx, user); err != nil {
		tracing.TraceErr(span, err)
		return "", err
	}
	return i18n.T(ctx, "Password was successfully reset."), nil
}

func (s *authService) sendVerificationEmail(ctx context.Context, user *models.User) {
	token, err := s.tokens.VerifyEmailToken(user.ID)
	if err != nil {
		s.log.Errorf("Unable to create verification token for user %s: %v", user.ID, err)
		return
	}
	if err := s.notify.SendVerificationEmail(ctx, user, s.cfg.TrackerURL+"/validate/"+token); err != nil {
		s.log.Errorf("Unable to send verification email to user %s: %v", user.ID, err)
	}
}

// issueTokens rotates the refresh id, stores the user and sets the refresh
// cookie. Without rememberMe the cookie only lives for the browser session.
func (s *authService) issueTokens(ctx context.Context, user *models.User, rememberMe bool) (*dto.AuthResult, error) {
	user.RefreshID = uuid.NewString()
	if err := s.repos.UserRepository.Save(ctx, user); err != nil {
		return nil, err
	}

	authToken, err := s.tokens.AuthToken(user.ID)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.tokens.RefreshToken(user.ID, user.RefreshID)
	if err != nil {
		return nil, err
	}

	cookie := &http.Cookie{
		Name:     RefreshTokenCookie,
		Value:    refreshToken,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	}
	if rememberMe {
		cookie.MaxAge = int(s.tokens.RefreshTokenExpiry().Seconds())
	}
	utils.SetCookie(ctx, cookie)

	return &dto.AuthResult{AuthToken: authToken, User: user}, nil
}

