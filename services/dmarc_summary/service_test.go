package dmarc_summary

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/canada-ca/tracker-sub010/dto"
	tracker_errors "github.com/canada-ca/tracker-sub010/errors"
	"github.com/canada-ca/tracker-sub010/interfaces"
	"github.com/canada-ca/tracker-sub010/interfaces/mocks"
	"github.com/canada-ca/tracker-sub010/internal/logger"
	"github.com/canada-ca/tracker-sub010/internal/models"
	"github.com/canada-ca/tracker-sub010/internal/pagination"
)

type dmarcFixture struct {
	service     interfaces.DmarcSummaryService
	repos       *mocks.Repositories
	permissions *mocks.PermissionService
}

func newDmarcFixture() *dmarcFixture {
	repos := mocks.NewRepositories()
	permissions := new(mocks.PermissionService)
	user := &models.User{ID: "usr_1", EmailValidated: true}
	permissions.On("UserRequired", mock.Anything).Return(user, nil)
	permissions.On("VerifiedRequired", mock.Anything, user).Return(nil)

	return &dmarcFixture{
		service:     NewDmarcSummaryService(logger.NewNopLogger(), repos.Repositories(), permissions),
		repos:       repos,
		permissions: permissions,
	}
}

func first(n int32) pagination.Args {
	return pagination.Args{First: &n}
}

func TestDmarcSummaryByPeriod(t *testing.T) {
	f := newDmarcFixture()
	stored := &models.DmarcSummary{DomainID: "dom_1", Month: 2, Year: 2024, FullPass: 10}
	f.permissions.On("CheckDomainOwnership", mock.Anything, "dom_1").Return(true, nil)
	f.repos.DmarcSummary.On("Get", mock.Anything, "dom_1", 2, 2024).Return(stored, nil)

	summary, err := f.service.DmarcSummaryByPeriod(context.Background(), "dom_1", 2, 2024)
	require.NoError(t, err)
	assert.Equal(t, stored, summary)
}

func TestDmarcSummaryByPeriod_NotOwner(t *testing.T) {
	f := newDmarcFixture()
	f.permissions.On("CheckDomainOwnership", mock.Anything, "dom_1").Return(false, nil)

	_, err := f.service.DmarcSummaryByPeriod(context.Background(), "dom_1", 2, 2024)
	resultErr, ok := tracker_errors.AsResultError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, resultErr.Code)
	f.repos.DmarcSummary.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDmarcSummaryByPeriod_InvalidPeriod(t *testing.T) {
	f := newDmarcFixture()
	f.permissions.On("CheckDomainOwnership", mock.Anything, "dom_1").Return(true, nil)

	_, err := f.service.DmarcSummaryByPeriod(context.Background(), "dom_1", 13, 2024)
	resultErr, ok := tracker_errors.AsResultError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, resultErr.Code)
}

func TestYearlyDmarcSummaries(t *testing.T) {
	f := newDmarcFixture()
	f.permissions.On("CheckDomainOwnership", mock.Anything, "dom_1").Return(true, nil)
	f.repos.DmarcSummary.On("ListByDomain", mock.Anything, "dom_1", mock.MatchedBy(func(since time.Time) bool {
		return since.Day() == 1 && time.Since(since) > 360*24*time.Hour && time.Since(since) < 400*24*time.Hour
	})).Return([]*models.DmarcSummary{{Month: 1}, {Month: 2}}, nil)

	summaries, err := f.service.YearlyDmarcSummaries(context.Background(), "dom_1")
	require.NoError(t, err)
	assert.Len(t, summaries, 2)
}

func TestFindMyDmarcSummaries(t *testing.T) {
	f := newDmarcFixture()
	f.permissions.On("CheckSuperAdmin", mock.Anything).Return(false, nil)
	f.repos.DmarcSummary.On("List", mock.Anything, mock.MatchedBy(func(filter interfaces.DmarcSummaryFilter) bool {
		return filter.UserID == "usr_1" && !filter.AllDomains && filter.Month == 3 && filter.Year == 2024
	}), mock.Anything).Return(pagination.Page[*models.DmarcSummary]{TotalCount: 1}, nil)

	page, err := f.service.FindMyDmarcSummaries(context.Background(), 3, 2024, interfaces.ConnectionArgs{Args: first(10)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.TotalCount)
}

func TestIngest(t *testing.T) {
	f := newDmarcFixture()
	f.repos.Domain.On("GetByDomain", mock.Anything, "canada.ca").Return(&models.Domain{ID: "dom_1", Domain: "canada.ca"}, nil)
	f.repos.DmarcSummary.On("Upsert", mock.Anything, &models.DmarcSummary{
		DomainID:     "dom_1",
		Month:        4,
		Year:         2024,
		FullPass:     90,
		PassSpfOnly:  4,
		PassDkimOnly: 3,
		Fail:         3,
	}).Return(nil)
	f.repos.Domain.On("SetHasDmarcReport", mock.Anything, "dom_1").Return(nil)

	err := f.service.Ingest(context.Background(), dto.DmarcSummaryInput{
		Domain:       "Canada.ca",
		Month:        4,
		Year:         2024,
		FullPass:     90,
		PassSpfOnly:  4,
		PassDkimOnly: 3,
		Fail:         3,
	})
	require.NoError(t, err)
	f.repos.DmarcSummary.AssertExpectations(t)
	f.repos.Domain.AssertExpectations(t)
}

func TestIngest_UnknownDomain(t *testing.T) {
	f := newDmarcFixture()
	f.repos.Domain.On("GetByDomain", mock.Anything, "unknown.ca").Return(nil, nil)

	err := f.service.Ingest(context.Background(), dto.DmarcSummaryInput{Domain: "unknown.ca", Month: 4, Year: 2024})
	assert.ErrorIs(t, err, tracker_errors.ErrDomainNotFound)
}
