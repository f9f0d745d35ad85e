package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tracker"

type Metrics struct {
	HTTPRequests      *prometheus.CounterVec
	HTTPDuration      *prometheus.HistogramVec
	GraphQLOperations *prometheus.CounterVec
	GraphQLRejected   *prometheus.CounterVec
	CronJobRuns       *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// New registers the metrics on registry, a fresh one when nil.
func New(registry *prometheus.Registry) *Metrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}
	factory := promauto.With(registry)

	return &Metrics{
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by route and status",
		}, []string{"method", "route", "status"}),
		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Latency of HTTP requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		GraphQLOperations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "graphql_operations_total",
			Help:      "Total number of executed GraphQL operations",
		}, []string{"type", "outcome"}),
		GraphQLRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "graphql_rejected_total",
			Help:      "Total number of GraphQL queries rejected before execution",
		}, []string{"reason"}),
		CronJobRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cron_job_runs_total",
			Help:      "Total number of cron job runs",
		}, []string{"job", "outcome"}),
		gatherer: registry,
	}
}

// ObserveGraphQLOperation counts an executed operation by its type. Client
// supplied operation names never become label values.
func (m *Metrics) ObserveGraphQLOperation(operationType string, failed bool) {
	switch operationType {
	case "query", "mutation", "subscription":
	default:
		operationType = "other"
	}
	m.GraphQLOperations.WithLabelValues(operationType, outcome(failed)).Inc()
}

func (m *Metrics) IncrementGraphQLRejected(reason string) {
	m.GraphQLRejected.WithLabelValues(reason).Inc()
}

func (m *Metrics) ObserveCronJob(job string, failed bool) {
	m.CronJobRuns.WithLabelValues(job, outcome(failed)).Inc()
}

// Handler serves the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func outcome(failed bool) string {
	if failed {
		return "error"
	}
	return "success"
}
