package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tracker_errors "github.com/canada-ca/tracker-sub010/errors"
)

func newTestTokenService() *TokenService {
	return NewTokenService(TokenConfig{
		AuthSecret:         "auth-secret",
		RefreshSecret:      "refresh-secret",
		AuthTokenExpiry:    time.Hour,
		RefreshTokenExpiry: 7 * 24 * time.Hour,
		SignInTokenExpiry:  15 * time.Minute,
	})
}

func TestAuthToken(t *testing.T) {
	tokens := newTestTokenService()

	token, err := tokens.AuthToken("usr_1")
	require.NoError(t, err)

	userID, err := tokens.ParseAuthToken(token)
	require.NoError(t, err)
	assert.Equal(t, "usr_1", userID)
}

func TestAuthToken_Expired(t *testing.T) {
	tokens := newTestTokenService()
	issued := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	tokens.now = func() time.Time { return issued }

	token, err := tokens.AuthToken("usr_1")
	require.NoError(t, err)

	tokens.now = func() time.Time { return issued.Add(2 * time.Hour) }
	_, err = tokens.ParseAuthToken(token)
	assert.ErrorIs(t, err, tracker_errors.ErrTokenExpired)
}

func TestAuthToken_WrongSecret(t *testing.T) {
	tokens := newTestTokenService()
	other := NewTokenService(TokenConfig{AuthSecret: "other", AuthTokenExpiry: time.Hour})

	token, err := other.AuthToken("usr_1")
	require.NoError(t, err)

	_, err = tokens.ParseAuthToken(token)
	assert.ErrorIs(t, err, tracker_errors.ErrInvalidToken)
}

func TestAuthToken_RejectsOtherAlgorithms(t *testing.T) {
	tokens := newTestTokenService()

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		Parameters: map[string]interface{}{ParamUserKey: "usr_1"},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte("auth-secret"))
	require.NoError(t, err)

	_, err = tokens.ParseAuthToken(signed)
	assert.ErrorIs(t, err, tracker_errors.ErrInvalidToken)

	_, err = tokens.ParseAuthToken("not.a.token")
	assert.ErrorIs(t, err, tracker_errors.ErrInvalidToken)
}

func TestPurposeTokensAreNotAuthTokens(t *testing.T) {
	tokens := newTestTokenService()

	authenticate, err := tokens.AuthenticateToken("usr_1")
	require.NoError(t, err)
	_, err = tokens.ParseAuthToken(authenticate)
	assert.ErrorIs(t, err, tracker_errors.ErrInvalidToken)

	userID, err := tokens.ParseAuthenticateToken(authenticate)
	require.NoError(t, err)
	assert.Equal(t, "usr_1", userID)

	_, err = tokens.ParseVerifyEmailToken(authenticate)
	assert.ErrorIs(t, err, tracker_errors.ErrInvalidToken)
}

func TestRefreshToken(t *testing.T) {
	tokens := newTestTokenService()

	token, err := tokens.RefreshToken("usr_1", "refresh-1")
	require.NoError(t, err)

	userID, refreshID, err := tokens.ParseRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, "usr_1", userID)
	assert.Equal(t, "refresh-1", refreshID)

	// signed with the refresh secret
	_, err = tokens.ParseAuthToken(token)
	assert.Error(t, err)
}

func TestResetPasswordToken(t *testing.T) {
	tokens := newTestTokenService()
	hash := "$2a$10$abcdefghijklmnopqrstuvwxyz0123456789"

	token, err := tokens.ResetPasswordToken("usr_1", hash)
	require.NoError(t, err)

	userID, prefix, err := tokens.ParseResetPasswordToken(token)
	require.NoError(t, err)
	assert.Equal(t, "usr_1", userID)
	assert.Equal(t, hashPrefix(hash), prefix)
	assert.Len(t, prefix, resetPasswordHashPrefix)
}

func TestInviteToken(t *testing.T) {
	tokens := newTestTokenService()

	token, err := tokens.InviteToken("jane@canada.ca", "org_1", "admin")
	require.NoError(t, err)

	userName, orgID, role, err := tokens.ParseInviteToken(token)
	require.NoError(t, err)
	assert.Equal(t, "jane@canada.ca", userName)
	assert.Equal(t, "org_1", orgID)
	assert.Equal(t, "admin", role)
}
