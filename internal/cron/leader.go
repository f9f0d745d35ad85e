package cron

import (
	"context"
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/tools/leaderelection"
	"k8s.io/client-go/tools/leaderelection/resourcelock"

	"github.com/canada-ca/tracker-sub010/internal/tracing"
)

const (
	LeaseDuration = 15 * time.Second
	RenewDeadline = 10 * time.Second
	RetryPeriod   = 2 * time.Second
)

func (cm *CronManager) leaderElectionConfig() leaderelection.LeaderElectionConfig {
	return leaderelection.LeaderElectionConfig{
		Lock: &resourcelock.LeaseLock{
			LeaseMeta: metav1.ObjectMeta{
				Name:      cm.cfg.LeaseName,
				Namespace: cm.cfg.LeaseNamespace,
			},
			Client:     cm.k8s.CoordinationV1(),
			LockConfig: resourcelock.ResourceLockConfig{Identity: cm.podName},
		},
		ReleaseOnCancel: true,
		LeaseDuration:   LeaseDuration,
		RenewDeadline:   RenewDeadline,
		RetryPeriod:     RetryPeriod,
		Callbacks: leaderelection.LeaderCallbacks{
			OnStartedLeading: func(context.Context) {
				if err := cm.StartCron(); err != nil {
					cm.log.Errorf("Unable to start crons: %v", err)
				}
			},
			OnStoppedLeading: func() {
				cm.log.Info("Lost cron lease, stopping crons")
				cm.Stop()
			},
			OnNewLeader: func(identity string) {
				cm.log.Infof("Cron lease held by %s", identity)
			},
		},
	}
}

// startWithLease campaigns for the lease until Stop. An invalid election
// config falls back to running the crons locally.
func (cm *CronManager) startWithLease() error {
	elector, err := leaderelection.NewLeaderElector(cm.leaderElectionConfig())
	if err != nil {
		cm.log.Warnf("Leader election unavailable, falling back to local mode: %v", err)
		return cm.StartCron()
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-cm.stopCh
		cancel()
	}()
	go func() {
		defer tracing.RecoverAndLogToJaeger(cm.log)
		elector.Run(ctx)
	}()
	return nil
}
