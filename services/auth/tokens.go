package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	tracker_errors "github.com/canada-ca/tracker-sub010/errors"
)

// Token parameter names.
const (
	ParamUserKey         = "userKey"
	ParamRefreshID       = "refreshId"
	ParamCurrentPassword = "currentPassword"
	ParamUserName        = "userName"
	ParamOrgID           = "orgId"
	ParamRequestedRole   = "requestedRole"
	ParamPurpose         = "purpose"
)

// Token purposes, so a token issued for one flow is rejected by the others.
const (
	PurposeAuthenticate = "authenticate"
	PurposeVerifyEmail  = "verifyEmail"
	PurposeResetPass    = "resetPassword"
	PurposeInvite       = "invite"
)

// resetPasswordHashPrefix is the part of the password hash embedded in reset
// tokens. Changing the password invalidates outstanding tokens.
const resetPasswordHashPrefix = 12

type Claims struct {
	Parameters map[string]interface{} `json:"parameters"`
	jwt.RegisteredClaims
}

type TokenConfig struct {
	AuthSecret         string
	RefreshSecret      string
	AuthTokenExpiry    time.Duration
	RefreshTokenExpiry time.Duration
	SignInTokenExpiry  time.Duration
}

type TokenService struct {
	authSecret    []byte
	refreshSecret []byte
	authExpiry    time.Duration
	refreshExpiry time.Duration
	signInExpiry  time.Duration
	now           func() time.Time
}

func NewTokenService(cfg TokenConfig) *TokenService {
	return &TokenService{
		authSecret:    []byte(cfg.AuthSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		authExpiry:    cfg.AuthTokenExpiry,
		refreshExpiry: cfg.RefreshTokenExpiry,
		signInExpiry:  cfg.SignInTokenExpiry,
		now:           time.Now,
	}
}

func (s *TokenService) sign(parameters map[string]interface{}, expiry time.Duration, secret []byte) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Parameters: parameters,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	})

	signed, err := token.SignedString(secret)
	if err != nil {
		return "", errors.Wrap(err, "sign token")
	}
	return signed, nil
}

func (s *TokenService) verify(tokenString string, secret []byte) (map[string]interface{}, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, tracker_errors.ErrTokenExpired
		}
		return nil, tracker_errors.ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Parameters == nil {
		return nil, tracker_errors.ErrInvalidToken
	}
	return claims.Parameters, nil
}

func (s *TokenService) verifyPurpose(tokenString, purpose string) (map[string]interface{}, error) {
	parameters, err := s.verify(tokenString, s.authSecret)
	if err != nil {
		return nil, err
	}
	if stringParam(parameters, ParamPurpose) != purpose {
		return nil, tracker_errors.ErrInvalidToken
	}
	return parameters, nil
}

func (s *TokenService) AuthToken(userID string) (string, error) {
	return s.sign(map[string]interface{}{ParamUserKey: userID}, s.authExpiry, s.authSecret)
}

// ParseAuthToken returns the user id of a valid auth token.
func (s *TokenService) ParseAuthToken(tokenString string) (string, error) {
	parameters, err := s.verify(tokenString, s.authSecret)
	if err != nil {
		return "", err
	}
	if stringParam(parameters, ParamPurpose) != "" {
		return "", tracker_errors.ErrInvalidToken
	}
	userID := stringParam(parameters, ParamUserKey)
	if userID == "" {
		return "", tracker_errors.ErrInvalidToken
	}
	return userID, nil
}

func (s *TokenService) RefreshToken(userID, refreshID string) (string, error) {
	return s.sign(map[string]interface{}{ParamUserKey: userID, ParamRefreshID: refreshID}, s.refreshExpiry, s.refreshSecret)
}

func (s *TokenService) RefreshTokenExpiry() time.Duration {
	return s.refreshExpiry
}

func (s *TokenService) ParseRefreshToken(tokenString string) (userID, refreshID string, err error) {
	parameters, err := s.verify(tokenString, s.refreshSecret)
	if err != nil {
		return "", "", err
	}
	userID = stringParam(parameters, ParamUserKey)
	refreshID = stringParam(parameters, ParamRefreshID)
	if userID == "" || refreshID == "" {
		return "", "", tracker_errors.ErrInvalidToken
	}
	return userID, refreshID, nil
}

func (s *TokenService) AuthenticateToken(userID string) (string, error) {
	return s.sign(map[string]interface{}{ParamUserKey: userID, ParamPurpose: PurposeAuthenticate}, s.signInExpiry, s.authSecret)
}

func (s *TokenService) ParseAuthenticateToken(tokenString string) (string, error) {
	parameters, err := s.verifyPurpose(tokenString, PurposeAuthenticate)
	if err != nil {
		return "", err
	}
	return stringParam(parameters, ParamUserKey), nil
}

func (s *TokenService) VerifyEmailToken(userID string) (string, error) {
	return s.sign(map[string]interface{}{ParamUserKey: userID, ParamPurpose: PurposeVerifyEmail}, 24*time.Hour, s.authSecret)
}

func (s *TokenService) ParseVerifyEmailToken(tokenString string) (string, error) {
	parameters, err := s.verifyPurpose(tokenString, PurposeVerifyEmail)
	if err != nil {
		return "", err
	}
	return stringParam(parameters, ParamUserKey), nil
}

func (s *TokenService) ResetPasswordToken(userID, passwordHash string) (string, error) {
	return s.sign(map[string]interface{}{
		ParamUserKey:         userID,
		ParamCurrentPassword: hashPrefix(passwordHash),
		ParamPurpose:         PurposeResetPass,
	}, time.Hour, s.authSecret)
}

// ParseResetPasswordToken returns the user id and the password hash prefix
// the token was issued for.
func (s *TokenService) ParseResetPasswordToken(tokenString string) (string, string, error) {
	parameters, err := s.verifyPurpose(tokenString, PurposeResetPass)
	if err != nil {
		return "", "", err
	}
	return stringParam(parameters, ParamUserKey), stringParam(parameters, ParamCurrentPassword), nil
}

func (s *TokenService) InviteToken(userName, orgID, requestedRole string) (string, error) {
	return s.sign(map[string]interface{}{
		ParamUserName:      userName,
		ParamOrgID:         orgID,
		ParamRequestedRole: requestedRole,
		ParamPurpose:       PurposeInvite,
	}, 7*24*time.Hour, s.authSecret)
}

func (s *TokenService) ParseInviteToken(tokenString string) (userName, orgID, requestedRole string, err error) {
	parameters, err := s.verifyPurpose(tokenString, PurposeInvite)
	if err != nil {
		return "", "", "", err
	}
	return stringParam(parameters, ParamUserName), stringParam(parameters, ParamOrgID), stringParam(parameters, ParamRequestedRole), nil
}

func stringParam(parameters map[string]interface{}, key string) string {
	value, _ := parameters[key].(string)
	return value
}

func hashPrefix(hash string) string {
	if len(hash) > resetPasswordHashPrefix {
		return hash[len(hash)-resetPasswordHashPrefix:]
	}
	return hash
}
