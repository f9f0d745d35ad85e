package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/canada-ca/tracker-sub010/dto"
	tracker_errors "github.com/canada-ca/tracker-sub010/errors"
	"github.com/canada-ca/tracker-sub010/interfaces/mocks"
	"github.com/canada-ca/tracker-sub010/internal/enum"
	"github.com/canada-ca/tracker-sub010/internal/logger"
	"github.com/canada-ca/tracker-sub010/internal/models"
	"github.com/canada-ca/tracker-sub010/internal/utils"
	"github.com/canada-ca/tracker-sub010/services/auth"
)

type userFixture struct {
	service     *userService
	repos       *mocks.Repositories
	permissions *mocks.PermissionService
	audit       *mocks.AuditLogService
	user        *models.User
}

func newUserFixture(t *testing.T) *userFixture {
	t.Helper()
	repos := mocks.NewRepositories()
	permissions := new(mocks.PermissionService)
	audit := new(mocks.AuditLogService)
	user := &models.User{
		ID:             "usr_1",
		UserName:       "jane@canada.ca",
		DisplayName:    "Jane",
		EmailValidated: true,
		TfaSendMethod:  enum.TfaSendMethodEmail,
	}
	permissions.On("UserRequired", mock.Anything).Return(user, nil)

	service := NewUserService(logger.NewNopLogger(), repos.Repositories(), permissions, audit).(*userService)
	return &userFixture{service: service, repos: repos, permissions: permissions, audit: audit, user: user}
}

func TestUpdateUserProfile(t *testing.T) {
	f := newUserFixture(t)
	f.repos.User.On("GetByUserName", mock.Anything, "jane.doe@canada.ca").Return(nil, nil)
	f.repos.User.On("Save", mock.Anything, f.user).Return(nil)

	french := enum.LanguageFrench
	updated, err := f.service.UpdateUserProfile(context.Background(), dto.UpdateUserProfileInput{
		DisplayName:   utils.ToPtr(" Jane Doe "),
		UserName:      utils.ToPtr("Jane.Doe@canada.ca"),
		PreferredLang: &french,
	})
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", updated.DisplayName)
	assert.Equal(t, "jane.doe@canada.ca", updated.UserName)
	assert.Equal(t, enum.LanguageFrench, updated.PreferredLang)
	assert.False(t, updated.EmailValidated)
	assert.Equal(t, enum.TfaSendMethodNone, updated.TfaSendMethod)
}

func TestUpdateUserProfile_UserNameTaken(t *testing.T) {
	f := newUserFixture(t)
	f.repos.User.On("GetByUserName", mock.Anything, "taken@canada.ca").Return(&models.User{ID: "usr_2"}, nil)

	_, err := f.service.UpdateUserProfile(context.Background(), dto.UpdateUserProfileInput{
		UserName: utils.ToPtr("taken@canada.ca"),
	})
	resultErr, ok := tracker_errors.AsResultError(err)
	require.True(t, ok)
	assert.Equal(t, "Username not available, please try another.", resultErr.Description)
	f.repos.User.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestUpdateUserProfile_EmailTfaNeedsVerifiedEmail(t *testing.T) {
	f := newUserFixture(t)
	f.user.EmailValidated = false
	method := enum.TfaSendMethodEmail

	_, err := f.service.UpdateUserProfile(context.Background(), dto.UpdateUserProfileInput{TfaSendMethod: &method})
	assert.Error(t, err)
}

func TestUpdateUserPassword(t *testing.T) {
	f := newUserFixture(t)
	hash, err := auth.HashPassword("the old long password")
	require.NoError(t, err)
	f.user.PasswordHash = hash
	f.repos.User.On("Save", mock.Anything, f.user).Return(nil)

	_, err = f.service.UpdateUserPassword(context.Background(), "not the password", "the new long password", "the new long password")
	assert.Error(t, err)

	message, err := f.service.UpdateUserPassword(context.Background(), "the old long password", "the new long password", "the new long password")
	require.NoError(t, err)
	assert.Equal(t, "Password was successfully updated.", message)
	assert.True(t, auth.CheckPassword(f.user.PasswordHash, "the new long password"))
}

func TestCloseAccount_Own(t *testing.T) {
	f := newUserFixture(t)
	f.repos.Affiliation.On("DeleteByUser", mock.Anything, "usr_1").Return(nil)
	f.repos.User.On("Delete", mock.Anything, "usr_1").Return(nil)
	f.audit.On("Record", mock.Anything, mock.MatchedBy(func(entry *models.AuditLog) bool {
		return entry.Action == enum.AuditActionRemove && entry.Resource == "jane@canada.ca"
	})).Return()

	message, err := f.service.CloseAccount(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "Successfully closed account.", message)
	f.audit.AssertExpectations(t)
}

func TestCloseAccount_Other(t *testing.T) {
	f := newUserFixture(t)
	other := "usr_2"
	f.permissions.On("CheckSuperAdmin", mock.Anything).Return(false, nil).Once()

	_, err := f.service.CloseAccount(context.Background(), &other)
	resultErr, ok := tracker_errors.AsResultError(err)
	require.True(t, ok)
	assert.Equal(t, 403, resultErr.Code)

	f.permissions.On("CheckSuperAdmin", mock.Anything).Return(true, nil)
	f.repos.User.On("GetByID", mock.Anything, "usr_2").Return(&models.User{ID: "usr_2", UserName: "john@canada.ca"}, nil)
	f.repos.Affiliation.On("DeleteByUser", mock.Anything, "usr_2").Return(nil)
	f.repos.User.On("Delete", mock.Anything, "usr_2").Return(nil)
	f.audit.On("Record", mock.Anything, mock.Anything).Return()

	_, err = f.service.CloseAccount(context.Background(), &other)
	require.NoError(t, err)
	f.repos.User.AssertCalled(t, "Delete", mock.Anything, "usr_2")
}

func TestIsUserAdmin(t *testing.T) {
	f := newUserFixture(t)
	orgID := "org_1"
	f.permissions.On("CheckPermission", mock.Anything, "org_1").Return(enum.RoleUser, nil)
	f.repos.Affiliation.On("ListByUser", mock.Anything, "usr_1").Return([]*models.Affiliation{
		{OrgID: "org_1", Permission: enum.RoleUser},
		{OrgID: "org_2", Permission: enum.RoleAdmin},
	}, nil)

	admin, err := f.service.IsUserAdmin(context.Background(), &orgID)
	require.NoError(t, err)
	assert.False(t, admin)

	admin, err = f.service.IsUserAdmin(context.Background(), nil)
	require.NoError(t, err)
	assert.True(t, admin)
}
