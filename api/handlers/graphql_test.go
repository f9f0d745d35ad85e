package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/canada-ca/tracker-sub010/api/graphql/complexity"
	"github.com/canada-ca/tracker-sub010/api/graphql/resolver"
	"github.com/canada-ca/tracker-sub010/api/graphql/schema"
	"github.com/canada-ca/tracker-sub010/config"
	tracker_errors "github.com/canada-ca/tracker-sub010/errors"
	"github.com/canada-ca/tracker-sub010/interfaces/mocks"
	"github.com/canada-ca/tracker-sub010/internal/logger"
	"github.com/canada-ca/tracker-sub010/internal/metrics"
	"github.com/canada-ca/tracker-sub010/services"
)

type graphqlResponse struct {
	Data   map[string]interface{} `json:"data"`
	Errors []struct {
		Message    string                 `json:"message"`
		Extensions map[string]interface{} `json:"extensions"`
	} `json:"errors"`
}

func newGraphQLTestRouter(t *testing.T, cfg *config.GraphQLConfig, users *mocks.UserService) (*gin.Engine, *metrics.Metrics) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.NewNopLogger()
	repos := mocks.NewRepositories().Repositories()
	svcs := &services.Services{UserService: users}

	gqlSchema, err := schema.Parse(resolver.NewResolver(log, svcs, repos), log, cfg.DepthLimit)
	require.NoError(t, err)
	analyzer, err := complexity.NewAnalyzer(schema.SDL, cfg)
	require.NoError(t, err)

	m := metrics.New(nil)
	h := NewGraphQLHandler(log, gqlSchema, analyzer, cfg, repos, m)

	r := gin.New()
	r.POST("/graphql", h.Serve())
	return r, m
}

func postGraphQL(t *testing.T, r *gin.Engine, body string) (*httptest.ResponseRecorder, graphqlResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp graphqlResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func defaultGraphQLConfig() *config.GraphQLConfig {
	return &config.GraphQLConfig{DepthLimit: 15, CostLimit: 5000, ScalarCost: 1, ObjectCost: 1, ListFactor: 1}
}

func TestGraphQLHandler_Executes(t *testing.T) {
	users := new(mocks.UserService)
	users.On("IsUserSuperAdmin", mock.Anything).Return(true, nil)
	r, _ := newGraphQLTestRouter(t, defaultGraphQLConfig(), users)

	w, resp := postGraphQL(t, r, `{"query":"{ isUserSuperAdmin }"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, resp.Errors)
	assert.Equal(t, true, resp.Data["isUserSuperAdmin"])
	users.AssertExpectations(t)
}

func TestGraphQLHandler_OperationMetricsIgnoreNames(t *testing.T) {
	users := new(mocks.UserService)
	users.On("IsUserSuperAdmin", mock.Anything).Return(true, nil)
	r, m := newGraphQLTestRouter(t, defaultGraphQLConfig(), users)

	for i := 0; i < 20; i++ {
		body := fmt.Sprintf(`{"query":"query Admin%d { isUserSuperAdmin }","operationName":"Admin%d"}`, i, i)
		_, resp := postGraphQL(t, r, body)
		require.Empty(t, resp.Errors)
	}

	assert.Equal(t, 1, testutil.CollectAndCount(m.GraphQLOperations))
	assertMetric(t, m, `tracker_graphql_operations_total{outcome="success",type="query"} 20`)
}

func TestGraphQLHandler_ErrorCodes(t *testing.T) {
	users := new(mocks.UserService)
	users.On("FindMe", mock.Anything).Return(nil, tracker_errors.Forbidden("Permission Denied: Please contact super admin for help."))
	r, _ := newGraphQLTestRouter(t, defaultGraphQLConfig(), users)

	_, resp := postGraphQL(t, r, `{"query":"{ findMe { id } }"}`)

	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "FORBIDDEN", resp.Errors[0].Extensions["code"])
	assert.Equal(t, "Permission Denied: Please contact super admin for help.", resp.Errors[0].Message)
}

func TestGraphQLHandler_RejectsCostlyQuery(t *testing.T) {
	cfg := defaultGraphQLConfig()
	cfg.CostLimit = 5
	r, m := newGraphQLTestRouter(t, cfg, new(mocks.UserService))

	w, resp := postGraphQL(t, r, `{"query":"{ findMyDomains(first: 10) { edges { node { domain } } } }"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "BAD_USER_INPUT", resp.Errors[0].Extensions["code"])
	assert.Equal(t, float64(40), resp.Errors[0].Extensions["cost"])
	assert.Equal(t, "Query error, query is too complex.", resp.Errors[0].Message)
	assert.Nil(t, resp.Data)

	assertMetric(t, m, `tracker_graphql_rejected_total{reason="cost"} 1`)
}

func TestGraphQLHandler_RejectsDeepQuery(t *testing.T) {
	cfg := defaultGraphQLConfig()
	cfg.DepthLimit = 2
	r, m := newGraphQLTestRouter(t, cfg, new(mocks.UserService))

	_, resp := postGraphQL(t, r, `{"query":"{ findMe { affiliations { edges { node { permission } } } } }"}`)

	require.NotEmpty(t, resp.Errors)
	assert.Contains(t, resp.Errors[0].Message, "exceeds max depth 2")

	assertMetric(t, m, `tracker_graphql_rejected_total{reason="depth"} 1`)
}

func TestGraphQLHandler_BadBody(t *testing.T) {
	r, _ := newGraphQLTestRouter(t, defaultGraphQLConfig(), new(mocks.UserService))

	w, resp := postGraphQL(t, r, `{"operationName":"missingQuery"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "BAD_USER_INPUT", resp.Errors[0].Extensions["code"])
}

func assertMetric(t *testing.T, m *metrics.Metrics, line string) {
	t.Helper()
	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.True(t, strings.Contains(w.Body.String(), line), "missing metric %s", line)
}
