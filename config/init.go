package config

import (
	"log"
	"os"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	cron_config "github.com/canada-ca/tracker-sub010/internal/cron/config"
	"github.com/canada-ca/tracker-sub010/internal/logger"
	"github.com/canada-ca/tracker-sub010/internal/tracing"
)

type Config struct {
	AppConfig             *AppConfig
	GraphQLConfig         *GraphQLConfig
	BrokerConfig          *BrokerConfig
	Logger                *logger.Config
	Tracing               *tracing.JaegerConfig
	TrackerDatabaseConfig *TrackerDatabaseConfig
	NotifyConfig          *NotifyConfig
	CronConfig            *cron_config.Config
}

// InitConfig reads the optional .env file and then the process environment.
// Variables already set in the environment win over the .env file.
func InitConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Unable to load .env file: %v", err)
	}

	cfg := &Config{
		AppConfig:             &AppConfig{},
		GraphQLConfig:         &GraphQLConfig{},
		BrokerConfig:          &BrokerConfig{},
		Logger:                &logger.Config{},
		Tracing:               &tracing.JaegerConfig{},
		TrackerDatabaseConfig: &TrackerDatabaseConfig{},
		NotifyConfig:          &NotifyConfig{},
		CronConfig:            &cron_config.Config{},
	}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.Wrap(err, "parse environment")
	}
	return cfg, nil
}
