package summary

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/canada-ca/tracker-sub010/config"
	"github.com/canada-ca/tracker-sub010/interfaces/mocks"
	"github.com/canada-ca/tracker-sub010/internal/enum"
	"github.com/canada-ca/tracker-sub010/internal/logger"
	"github.com/canada-ca/tracker-sub010/internal/models"
)

type memoryCache struct {
	mu        sync.Mutex
	summaries map[enum.SummaryKind]models.Summary
}

func newMemoryCache() *memoryCache {
	return &memoryCache{summaries: make(map[enum.SummaryKind]models.Summary)}
}

func (c *memoryCache) Get(_ context.Context, kind enum.SummaryKind) (*models.Summary, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	summary, ok := c.summaries[kind]
	if !ok {
		return nil, nil
	}
	return &summary, nil
}

func (c *memoryCache) Set(_ context.Context, kind enum.SummaryKind, summary models.Summary) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.summaries[kind] = summary
	return nil
}

func TestGetChartSummary_FromRepositoryThenCache(t *testing.T) {
	repos := mocks.NewRepositories()
	cache := newMemoryCache()
	stored := NewSummary([]string{"pass", "fail"}, []int{3, 1})
	repos.ChartSummary.On("Get", mock.Anything, enum.SummaryWeb).
		Return(&models.ChartSummary{Kind: enum.SummaryWeb, Summary: models.SummaryJSON(stored)}, nil).Once()

	service := NewSummaryService(&config.AppConfig{}, logger.NewNopLogger(), repos.Repositories(), new(mocks.PermissionService), cache)

	first, err := service.GetChartSummary(context.Background(), enum.SummaryWeb)
	require.NoError(t, err)
	assert.Equal(t, 4, first.Total)

	second, err := service.GetChartSummary(context.Background(), enum.SummaryWeb)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	repos.ChartSummary.AssertNumberOfCalls(t, "Get", 1)
}

func TestGetChartSummary_MissingIsEmpty(t *testing.T) {
	repos := mocks.NewRepositories()
	repos.ChartSummary.On("Get", mock.Anything, enum.SummaryDKIM).Return(nil, nil)

	service := NewSummaryService(&config.AppConfig{}, logger.NewNopLogger(), repos.Repositories(), new(mocks.PermissionService), nil)

	summary, err := service.GetChartSummary(context.Background(), enum.SummaryDKIM)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Total)
	assert.Len(t, summary.Categories, 2)
}

func TestGetChartSummary_LoginRequired(t *testing.T) {
	repos := mocks.NewRepositories()
	permissions := new(mocks.PermissionService)
	permissions.On("UserRequired", mock.Anything).Return(nil, assert.AnError)

	service := NewSummaryService(&config.AppConfig{LoginRequired: true}, logger.NewNopLogger(), repos.Repositories(), permissions, nil)

	_, err := service.GetChartSummary(context.Background(), enum.SummaryMail)
	assert.ErrorIs(t, err, assert.AnError)
	repos.ChartSummary.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestRefreshSummaries(t *testing.T) {
	repos := mocks.NewRepositories()
	cache := newMemoryCache()
	passing := &models.Domain{ID: "dom_1", Status: models.DomainStatus{HTTPS: enum.StatusPass, SSL: enum.StatusPass}}
	failing := &models.Domain{ID: "dom_2", Status: models.DomainStatus{HTTPS: enum.StatusFail}}

	repos.Domain.On("ListAll", mock.Anything).Return([]*models.Domain{passing, failing}, nil)
	repos.ChartSummary.On("Save", mock.Anything, mock.AnythingOfType("*models.ChartSummary")).Return(nil)
	repos.Organization.On("ListAll", mock.Anything).Return([]*models.Organization{{ID: "org_1"}, {ID: "org_2"}}, nil)
	repos.Domain.On("ListByOrg", mock.Anything, "org_1").Return([]*models.Domain{passing}, nil)
	repos.Domain.On("ListByOrg", mock.Anything, "org_2").Return([]*models.Domain{}, nil)
	repos.Organization.On("UpdateSummaries", mock.Anything, "org_1", mock.MatchedBy(func(s models.OrganizationSummaries) bool {
		return s[enum.SummaryWeb].Categories[0].Count == 1 && s[enum.SummaryWeb].Total == 1
	})).Return(nil)
	repos.Organization.On("UpdateSummaries", mock.Anything, "org_2", mock.MatchedBy(func(s models.OrganizationSummaries) bool {
		return s[enum.SummaryWeb].Total == 0
	})).Return(nil)

	service := NewSummaryService(&config.AppConfig{}, logger.NewNopLogger(), repos.Repositories(), new(mocks.PermissionService), cache)

	require.NoError(t, service.RefreshSummaries(context.Background()))
	repos.ChartSummary.AssertNumberOfCalls(t, "Save", len(enum.SummaryKinds))
	repos.Organization.AssertExpectations(t)

	web, _ := cache.Get(context.Background(), enum.SummaryWeb)
	require.NotNil(t, web)
	assert.Equal(t, 50.0, web.Categories[0].Percentage)
}

func TestRefreshSummaries_OrganizationError(t *testing.T) {
	repos := mocks.NewRepositories()
	repos.Domain.On("ListAll", mock.Anything).Return([]*models.Domain{}, nil)
	repos.ChartSummary.On("Save", mock.Anything, mock.Anything).Return(nil)
	repos.Organization.On("ListAll", mock.Anything).Return([]*models.Organization{{ID: "org_1"}}, nil)
	repos.Domain.On("ListByOrg", mock.Anything, "org_1").Return(nil, assert.AnError)

	service := NewSummaryService(&config.AppConfig{}, logger.NewNopLogger(), repos.Repositories(), new(mocks.PermissionService), nil)

	assert.ErrorIs(t, service.RefreshSummaries(context.Background()), assert.AnError)
}
