package cron_config

// Config holds six-field cron schedules (seconds first). An empty schedule
// disables its job.
type Config struct {
	CronScheduleHeartbeat string `env:"CRON_SCHEDULE_HEARTBEAT" envDefault:"0 * * * * *"`
	CronScheduleSummaries string `env:"CRON_SCHEDULE_SUMMARIES" envDefault:"0 0 * * * *"`
	LeaseName             string `env:"CRON_LEASE_NAME" envDefault:"tracker-api-cron"`
	LeaseNamespace        string `env:"CRON_LEASE_NAMESPACE" envDefault:"tracker"`
	// LocalDev skips leader election even inside a cluster.
	LocalDev bool `env:"LOCAL_DEV" envDefault:"false"`
}
