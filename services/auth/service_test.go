package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/canada-ca/tracker-sub010/config"
	"github.com/canada-ca/tracker-sub010/dto"
	tracker_errors "github.com/canada-ca/tracker-sub010/errors"
	"github.com/canada-ca/tracker-sub010/interfaces/mocks"
	"github.com/canada-ca/tracker-sub010/internal/enum"
	"github.com/canada-ca/tracker-sub010/internal/logger"
	"github.com/canada-ca/tracker-sub010/internal/models"
	"github.com/canada-ca/tracker-sub010/internal/utils"
)

const testPassword = "a very long password"

type authFixture struct {
	service *authService
	repos   *mocks.Repositories
	notify  *mocks.NotifyService
	tokens  *TokenService
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	repos := mocks.NewRepositories()
	notify := new(mocks.NotifyService)
	tokens := newTestTokenService()
	cfg := &config.AppConfig{TrackerURL: "https://tracker.test"}

	service := NewAuthService(cfg, logger.NewNopLogger(), repos.Repositories(), tokens, notify).(*authService)
	return &authFixture{service: service, repos: repos, notify: notify, tokens: tokens}
}

func newTestUser(t *testing.T) *models.User {
	t.Helper()
	hash, err := HashPassword(testPassword)
	require.NoError(t, err)
	return &models.User{
		ID:            "usr_1",
		UserName:      "jane@canada.ca",
		DisplayName:   "Jane",
		PasswordHash:  hash,
		PreferredLang: enum.LanguageEnglish,
		TfaSendMethod: enum.TfaSendMethodNone,
		RefreshID:     "refresh-0",
	}
}

func requireBadRequest(t *testing.T, err error, message string) {
	t.Helper()
	resultErr, ok := tracker_errors.AsResultError(err)
	require.True(t, ok, "expected result error, got %v", err)
	assert.Equal(t, 400, resultErr.Code)
	assert.Equal(t, message, resultErr.Description)
}

func TestSignIn_UnknownUser(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	f.repos.User.On("GetByUserName", mock.Anything, "nobody@canada.ca").Return(nil, nil)

	_, err := f.service.SignIn(ctx, " Nobody@Canada.ca ", testPassword, false)
	requireBadRequest(t, err, "Incorrect username or password. Please try again.")
}

func TestSignIn_Success(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	user := newTestUser(t)
	user.FailedLoginAttempts = 3

	f.repos.User.On("GetByUserName", mock.Anything, "jane@canada.ca").Return(user, nil)
	f.repos.User.On("Save", mock.Anything, user).Return(nil)

	result, err := f.service.SignIn(ctx, "jane@canada.ca", testPassword, true)
	require.NoError(t, err)
	require.NotNil(t, result.Auth)
	assert.Equal(t, enum.TfaSendMethodNone, result.SendMethod)
	assert.Equal(t, user, result.Auth.User)
	assert.Equal(t, 0, user.FailedLoginAttempts)
	assert.NotEqual(t, "refresh-0", user.RefreshID)

	userID, err := f.tokens.ParseAuthToken(result.Auth.AuthToken)
	require.NoError(t, err)
	assert.Equal(t, "usr_1", userID)
}

func TestSignIn_WrongPasswordLocksAccount(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	user := newTestUser(t)
	user.FailedLoginAttempts = MaxFailedLoginAttempts - 2

	f.repos.User.On("GetByUserName", mock.Anything, "jane@canada.ca").Return(user, nil)
	f.repos.User.On("Save", mock.Anything, user).Return(nil)

	_, err := f.service.SignIn(ctx, "jane@canada.ca", "wrong password!", false)
	requireBadRequest(t, err, "Incorrect username or password. Please try again.")
	assert.Equal(t, MaxFailedLoginAttempts-1, user.FailedLoginAttempts)
	assert.Nil(t, user.LockedUntil)

	_, err = f.service.SignIn(ctx, "jane@canada.ca", "wrong password!", false)
	requireBadRequest(t, err, "Too many failed login attempts, please reset your password, and try again.")
	require.NotNil(t, user.LockedUntil)

	// even the right password is refused while locked
	_, err = f.service.SignIn(ctx, "jane@canada.ca", testPassword, false)
	requireBadRequest(t, err, "Too many failed login attempts, please reset your password, and try again.")
}

func TestSignIn_ExpiredLockIsLifted(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	user := newTestUser(t)
	user.FailedLoginAttempts = MaxFailedLoginAttempts
	lockedUntil := time.Now().Add(-time.Minute)
	user.LockedUntil = &lockedUntil

	f.repos.User.On("GetByUserName", mock.Anything, "jane@canada.ca").Return(user, nil)
	f.repos.User.On("Save", mock.Anything, user).Return(nil)

	result, err := f.service.SignIn(ctx, "jane@canada.ca", testPassword, false)
	require.NoError(t, err)
	assert.NotNil(t, result.Auth)
	assert.Nil(t, user.LockedUntil)
	assert.Equal(t, 0, user.FailedLoginAttempts)
}

func TestSignIn_TfaThenAuthenticate(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	user := newTestUser(t)
	user.TfaSendMethod = enum.TfaSendMethodEmail

	var sentCode string
	f.repos.User.On("GetByUserName", mock.Anything, "jane@canada.ca").Return(user, nil)
	f.repos.User.On("GetByID", mock.Anything, "usr_1").Return(user, nil)
	f.repos.User.On("Save", mock.Anything, user).Return(nil)
	f.notify.On("SendAuthenticateEmail", mock.Anything, user, mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { sentCode = args.String(2) }).
		Return(nil)

	result, err := f.service.SignIn(ctx, "jane@canada.ca", testPassword, false)
	require.NoError(t, err)
	assert.Nil(t, result.Auth)
	assert.Equal(t, enum.TfaSendMethodEmail, result.SendMethod)
	require.NotEmpty(t, result.AuthenticateToken)
	require.Len(t, sentCode, 6)

	_, err = f.service.Authenticate(ctx, result.AuthenticateToken, "not-the-code")
	requireBadRequest(t, err, "Incorrect TFA code. Please sign in again.")

	assert.Equal(t, 1, user.FailedLoginAttempts)

	auth, err := f.service.Authenticate(ctx, result.AuthenticateToken, sentCode)
	require.NoError(t, err)
	assert.NotEmpty(t, auth.AuthToken)
	assert.Empty(t, user.TfaCodeHash)
	assert.Equal(t, 0, user.FailedLoginAttempts)
}

func TestAuthenticate_WrongCodesLockAccount(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	user := newTestUser(t)
	codeHash, err := HashPassword("123456")
	require.NoError(t, err)
	expiresAt := utils.Now().Add(time.Minute)
	user.TfaSendMethod = enum.TfaSendMethodEmail
	user.TfaCodeHash = codeHash
	user.TfaCodeExpiresAt = &expiresAt
	user.FailedLoginAttempts = MaxFailedLoginAttempts - 2

	f.repos.User.On("GetByID", mock.Anything, "usr_1").Return(user, nil)
	f.repos.User.On("Save", mock.Anything, user).Return(nil)
	token, err := f.tokens.AuthenticateToken(user.ID)
	require.NoError(t, err)

	_, err = f.service.Authenticate(ctx, token, "000000")
	requireBadRequest(t, err, "Incorrect TFA code. Please sign in again.")
	assert.Equal(t, MaxFailedLoginAttempts-1, user.FailedLoginAttempts)

	_, err = f.service.Authenticate(ctx, token, "000001")
	requireBadRequest(t, err, "Too many failed login attempts, please reset your password, and try again.")
	require.NotNil(t, user.LockedUntil)
	assert.Empty(t, user.TfaCodeHash)

	_, err = f.service.Authenticate(ctx, token, "123456")
	requireBadRequest(t, err, "Too many failed login attempts, please reset your password, and try again.")
	f.repos.User.AssertNumberOfCalls(t, "Save", 2)
}

func TestAuthenticate_BadToken(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.service.Authenticate(context.Background(), "garbage", "123456")
	requireBadRequest(t, err, "Token value incorrect, please sign in again.")
}

func TestSignUp(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	f.repos.User.On("GetByUserName", mock.Anything, "new@canada.ca").Return(nil, nil)
	f.repos.User.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).
		Run(func(args mock.Arguments) { args.Get(1).(*models.User).ID = "usr_new" }).
		Return(nil)
	f.repos.User.On("Save", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)
	f.notify.On("SendVerificationEmail", mock.Anything, mock.AnythingOfType("*models.User"), mock.AnythingOfType("string")).Return(nil)

	result, err := f.service.SignUp(ctx, dto.SignUpInput{
		DisplayName:     "New User",
		UserName:        "New@Canada.ca",
		Password:        testPassword,
		ConfirmPassword: testPassword,
	})
	require.NoError(t, err)
	assert.Equal(t, "new@canada.ca", result.User.UserName)
	assert.Equal(t, enum.LanguageEnglish, result.User.PreferredLang)
	assert.NotEqual(t, testPassword, result.User.PasswordHash)
	f.notify.AssertCalled(t, "SendVerificationEmail", mock.Anything, result.User, mock.MatchedBy(func(url string) bool {
		return len(url) > len("https://tracker.test/validate/")
	}))
}

func TestSignUp_EmailInUse(t *testing.T) {
	f := newAuthFixture(t)
	f.repos.User.On("GetByUserName", mock.Anything, "jane@canada.ca").Return(newTestUser(t), nil)

	_, err := f.service.SignUp(context.Background(), dto.SignUpInput{
		UserName:        "jane@canada.ca",
		Password:        testPassword,
		ConfirmPassword: testPassword,
	})
	requireBadRequest(t, err, "Email already in use.")
}

func TestSignUp_WithInvite(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	invite, err := f.tokens.InviteToken("new@canada.ca", "org_1", "admin")
	require.NoError(t, err)

	f.repos.User.On("GetByUserName", mock.Anything, "new@canada.ca").Return(nil, nil)
	f.repos.User.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).
		Run(func(args mock.Arguments) { args.Get(1).(*models.User).ID = "usr_new" }).
		Return(nil)
	f.repos.User.On("Save", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)
	f.repos.Organization.On("GetByID", mock.Anything, "org_1").Return(&models.Organization{ID: "org_1"}, nil)
	f.repos.Affiliation.On("Create", mock.Anything, &models.Affiliation{UserID: "usr_new", OrgID: "org_1", Permission: enum.RoleAdmin}).Return(nil)
	f.notify.On("SendVerificationEmail", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	_, err = f.service.SignUp(ctx, dto.SignUpInput{
		UserName:        "new@canada.ca",
		Password:        testPassword,
		ConfirmPassword: testPassword,
		SignUpToken:     invite,
	})
	require.NoError(t, err)
	f.repos.Affiliation.AssertExpectations(t)

	f.repos.User.On("GetByUserName", mock.Anything, "other@canada.ca").Return(nil, nil)
	_, err = f.service.SignUp(ctx, dto.SignUpInput{
		UserName:        "other@canada.ca",
		Password:        testPassword,
		ConfirmPassword: testPassword,
		SignUpToken:     invite,
	})
	requireBadRequest(t, err, "Unable to sign up, please contact org admin for a new invite.")
}

func TestVerifyAccount(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	user := newTestUser(t)
	token, err := f.tokens.VerifyEmailToken(user.ID)
	require.NoError(t, err)

	f.repos.User.On("GetByID", mock.Anything, "usr_1").Return(user, nil)
	f.repos.User.On("Save", mock.Anything, user).Return(nil)

	message, err := f.service.VerifyAccount(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "Successfully email verified account, and set TFA send method to email.", message)
	assert.True(t, user.EmailValidated)
	assert.Equal(t, enum.TfaSendMethodEmail, user.TfaSendMethod)

	_, err = f.service.VerifyAccount(ctx, "garbage")
	requireBadRequest(t, err, "Unable to verify account. Please request a new email.")
}

func TestResetPassword(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	user := newTestUser(t)
	token, err := f.tokens.ResetPasswordToken(user.ID, user.PasswordHash)
	require.NoError(t, err)

	f.repos.User.On("GetByID", mock.Anything, "usr_1").Return(user, nil)
	f.repos.User.On("Save", mock.Anything, user).Return(nil)

	message, err := f.service.ResetPassword(ctx, token, "another long password", "another long password")
	require.NoError(t, err)
	assert.Equal(t, "Password was successfully reset.", message)
	assert.True(t, CheckPassword(user.PasswordHash, "another long password"))

	// the token is bound to the previous password
	_, err = f.service.ResetPassword(ctx, token, "a third long password", "a third long password")
	requireBadRequest(t, err, "Unable to reset password. Please request a new email.")
}

func TestSendPasswordResetLink_UnknownUser(t *testing.T) {
	f := newAuthFixture(t)
	f.repos.User.On("GetByUserName", mock.Anything, "nobody@canada.ca").Return(nil, nil)

	message := f.service.SendPasswordResetLink(context.Background(), "nobody@canada.ca")
	assert.Equal(t, "If an account with this username is found, a password reset link will be found in your inbox.", message)
	f.notify.AssertNotCalled(t, "SendPasswordResetEmail", mock.Anything, mock.Anything, mock.Anything)
}
