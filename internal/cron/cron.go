package cron

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	cronv3 "github.com/robfig/cron/v3"
	"k8s.io/client-go/kubernetes"

	"github.com/canada-ca/tracker-sub010/interfaces"
	cron_config "github.com/canada-ca/tracker-sub010/internal/cron/config"
	"github.com/canada-ca/tracker-sub010/internal/logger"
	"github.com/canada-ca/tracker-sub010/internal/metrics"
	"github.com/canada-ca/tracker-sub010/internal/tracing"
)

const (
	JobHeartbeat = "heartbeat"
	JobSummaries = "summaries"
)

type job struct {
	name     string
	schedule string
	run      func(ctx context.Context) error
}

// CronManager runs the scheduled jobs on the pod holding the cron lease, or
// on every pod when no kubernetes client is available.
type CronManager struct {
	cfg       *cron_config.Config
	log       logger.Logger
	k8s       kubernetes.Interface
	summaries interfaces.SummaryService
	metrics   *metrics.Metrics

	podName  string
	cron     *cronv3.Cron
	jobIDs   map[string]cronv3.EntryID
	mu       sync.Mutex
	stopCh   chan struct{}
	stopOnce sync.Once
}

func NewCronManager(cfg *cron_config.Config, log logger.Logger, k8s kubernetes.Interface, summaries interfaces.SummaryService, m *metrics.Metrics) *CronManager {
	return &CronManager{
		cfg:       cfg,
		log:       log,
		k8s:       k8s,
		summaries: summaries,
		metrics:   m,
		podName:   "local",
		jobIDs:    make(map[string]cronv3.EntryID),
		stopCh:    make(chan struct{}),
	}
}

func (cm *CronManager) jobs() []job {
	return []job{
		{name: JobHeartbeat, schedule: cm.cfg.CronScheduleHeartbeat, run: cm.heartbeat},
		{name: JobSummaries, schedule: cm.cfg.CronScheduleSummaries, run: cm.refreshSummaries},
	}
}

// Start schedules the jobs, behind leader election when running in a cluster.
func (cm *CronManager) Start(podName string) error {
	if podName != "" {
		cm.podName = podName
	}
	if cm.k8s == nil || cm.cfg.LocalDev {
		cm.log.Info("Starting cron manager in local mode")
		return cm.StartCron()
	}
	return cm.startWithLease()
}

// StartCron schedules every job with a non-empty schedule and starts the
// scheduler. Runs of the same job never overlap.
func (cm *CronManager) StartCron() error {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	if cm.cron != nil {
		return nil
	}

	c := cronv3.New(
		cronv3.WithSeconds(),
		cronv3.WithChain(cronv3.SkipIfStillRunning(cronv3.DefaultLogger)),
	)
	for _, j := range cm.jobs() {
		if j.schedule == "" {
			continue
		}
		id, err := c.AddFunc(j.schedule, cm.wrap(j))
		if err != nil {
			return errors.Wrapf(err, "schedule %s job", j.name)
		}
		cm.jobIDs[j.name] = id
		cm.log.Infof("Scheduled %s job: %s", j.name, j.schedule)
	}

	c.Start()
	cm.cron = c
	return nil
}

// Stop waits for running jobs to finish. It is safe to call more than once.
func (cm *CronManager) Stop() {
	cm.stopOnce.Do(func() {
		cm.mu.Lock()
		c := cm.cron
		cm.mu.Unlock()
		if c != nil {
			cm.log.Info("Stopping cron manager")
			<-c.Stop().Done()
		}
		close(cm.stopCh)
	})
}

func (cm *CronManager) wrap(j job) func() {
	return func() {
		defer tracing.RecoverAndLogToJaeger(cm.log)
		cm.runJob(context.Background(), j)
	}
}

func (cm *CronManager) runJob(ctx context.Context, j job) {
	span, ctx := tracing.StartTracerSpan(ctx, "CronManager."+j.name)
	defer span.Finish()
	tracing.SetDefaultCronJobSpanTags(ctx, span)

	err := j.run(ctx)
	if cm.metrics != nil {
		cm.metrics.ObserveCronJob(j.name, err != nil)
	}
	if err != nil {
		tracing.TraceErr(span, err)
		cm.log.Errorf("Cron job %s failed: %v", j.name, err)
	}
}

func (cm *CronManager) heartbeat(_ context.Context) error {
	cm.log.Infof("Cron heartbeat from pod: %s", cm.podName)
	return nil
}

func (cm *CronManager) refreshSummaries(ctx context.Context) error {
	cm.log.Info("Refreshing summaries")
	if err := cm.summaries.RefreshSummaries(ctx); err != nil {
		return errors.Wrap(err, "refresh summaries")
	}
	cm.log.Info("Refreshed summaries")
	return nil
}
