package cron

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"k8s.io/client-go/kubernetes"

	"github.com/canada-ca/tracker-sub010/interfaces/mocks"
	cron_config "github.com/canada-ca/tracker-sub010/internal/cron/config"
	"github.com/canada-ca/tracker-sub010/internal/logger"
	"github.com/canada-ca/tracker-sub010/internal/metrics"
)

type mockKubernetesInterface struct {
	kubernetes.Interface
	mock.Mock
}

func testConfig() *cron_config.Config {
	return &cron_config.Config{
		CronScheduleHeartbeat: "0 * * * * *",
		CronScheduleSummaries: "0 0 * * * *",
		LeaseName:             "tracker-api-cron",
		LeaseNamespace:        "tracker",
	}
}

func TestNewCronManager(t *testing.T) {
	cfg := testConfig()
	log := logger.NewNopLogger()
	k8s := &mockKubernetesInterface{}

	cm := NewCronManager(cfg, log, k8s, nil, nil)

	assert.NotNil(t, cm)
	assert.Equal(t, cfg, cm.cfg)
	assert.Equal(t, k8s, cm.k8s)
	assert.NotNil(t, cm.jobIDs)
}

func TestCronManager_StartCron(t *testing.T) {
	cm := NewCronManager(testConfig(), logger.NewNopLogger(), nil, new(mocks.SummaryService), nil)

	require.NoError(t, cm.StartCron())
	defer cm.Stop()

	assert.NotNil(t, cm.cron)
	assert.Len(t, cm.jobIDs, 2)
	assert.Contains(t, cm.jobIDs, JobHeartbeat)
	assert.Contains(t, cm.jobIDs, JobSummaries)
}

func TestCronManager_StartCron_InvalidSchedule(t *testing.T) {
	cfg := testConfig()
	cfg.CronScheduleSummaries = "every hour"
	cm := NewCronManager(cfg, logger.NewNopLogger(), nil, new(mocks.SummaryService), nil)

	assert.Error(t, cm.StartCron())
}

func jobNamed(t *testing.T, cm *CronManager, name string) job {
	t.Helper()
	for _, j := range cm.jobs() {
		if j.name == name {
			return j
		}
	}
	t.Fatalf("no job %s", name)
	return job{}
}

func TestCronManager_RunSummariesJob(t *testing.T) {
	summaries := new(mocks.SummaryService)
	summaries.On("RefreshSummaries", mock.Anything).Return(nil).Once()
	summaries.On("RefreshSummaries", mock.Anything).Return(assert.AnError).Once()
	m := metrics.New(prometheus.NewRegistry())
	cm := NewCronManager(testConfig(), logger.NewNopLogger(), nil, summaries, m)

	j := jobNamed(t, cm, JobSummaries)
	cm.runJob(context.Background(), j)
	cm.runJob(context.Background(), j)

	summaries.AssertNumberOfCalls(t, "RefreshSummaries", 2)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CronJobRuns.WithLabelValues(JobSummaries, "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CronJobRuns.WithLabelValues(JobSummaries, "error")))
}

func TestCronManager_StartCron_SkipsEmptySchedule(t *testing.T) {
	cfg := testConfig()
	cfg.CronScheduleHeartbeat = ""
	cm := NewCronManager(cfg, logger.NewNopLogger(), nil, new(mocks.SummaryService), nil)

	require.NoError(t, cm.StartCron())
	defer cm.Stop()

	assert.Len(t, cm.jobIDs, 1)
	assert.Contains(t, cm.jobIDs, JobSummaries)
}

func TestCronManager_Start_LocalDev(t *testing.T) {
	cfg := testConfig()
	cfg.LocalDev = true
	cm := NewCronManager(cfg, logger.NewNopLogger(), &mockKubernetesInterface{}, new(mocks.SummaryService), nil)

	require.NoError(t, cm.Start("tracker-api-0"))
	defer cm.Stop()

	assert.Equal(t, "tracker-api-0", cm.podName)
	assert.NotNil(t, cm.cron)
}

func TestCronManager_Stop(t *testing.T) {
	cm := NewCronManager(testConfig(), logger.NewNopLogger(), &mockKubernetesInterface{}, nil, nil)
	require.NoError(t, cm.StartCron())

	cm.Stop()
	cm.Stop()

	select {
	case <-cm.stopCh:
	default:
		t.Error("Stop channel was not closed")
	}
}
