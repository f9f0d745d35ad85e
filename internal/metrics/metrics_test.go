package metrics

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveGraphQLOperation("query", false)
	m.ObserveGraphQLOperation("mutation", true)
	m.ObserveGraphQLOperation("", false)
	m.IncrementGraphQLRejected("cost")
	m.ObserveCronJob("summaries", false)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.GraphQLOperations.WithLabelValues("query", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GraphQLOperations.WithLabelValues("mutation", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GraphQLOperations.WithLabelValues("other", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GraphQLRejected.WithLabelValues("cost")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CronJobRuns.WithLabelValues("summaries", "success")))
}

func TestObserveGraphQLOperation_BoundedLabels(t *testing.T) {
	m := New(prometheus.NewRegistry())

	for i := 0; i < 5000; i++ {
		m.ObserveGraphQLOperation(fmt.Sprintf("Operation%d", i), false)
	}
	m.ObserveGraphQLOperation("query", false)

	assert.Equal(t, 2, testutil.CollectAndCount(m.GraphQLOperations))
	assert.Equal(t, 5000.0, testutil.ToFloat64(m.GraphQLOperations.WithLabelValues("other", "success")))
}

func TestHandler(t *testing.T) {
	m := New(nil)
	m.IncrementGraphQLRejected("depth")

	recorder := httptest.NewRecorder()
	m.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.True(t, strings.Contains(recorder.Body.String(), `tracker_graphql_rejected_total{reason="depth"} 1`))
}
