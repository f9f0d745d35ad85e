package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormlogger "gorm.io/gorm/logger"

	"github.com/canada-ca/tracker-sub010/config"
)

func validConfig() config.TrackerDatabaseConfig {
	return config.TrackerDatabaseConfig{
		Host:     "localhost",
		Port:     "5432",
		User:     "tracker",
		DBName:   "tracker",
		Password: "secret",
		SSLMode:  "disable",
	}
}

func TestDSN(t *testing.T) {
	cfg := validConfig()
	cfg.Password = `it's a \ secret`

	source, err := dsn(&cfg)
	require.NoError(t, err)
	assert.Equal(t, `host='localhost' port='5432' user='tracker' password='it\'s a \\ secret' dbname='tracker' sslmode='disable'`, source)
}

func TestDSN_Invalid(t *testing.T) {
	_, err := dsn(nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	for name, mutate := range map[string]func(*config.TrackerDatabaseConfig){
		"missing host": func(c *config.TrackerDatabaseConfig) { c.Host = "" },
		"missing ssl":  func(c *config.TrackerDatabaseConfig) { c.SSLMode = "" },
		"bad port":     func(c *config.TrackerDatabaseConfig) { c.Port = "not-a-port" },
	} {
		t.Run(name, func(t *testing.T) {
			cfg := validConfig()
			mutate(&cfg)
			_, err := dsn(&cfg)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestInitTrackerDatabase_InvalidConfig(t *testing.T) {
	cfg := validConfig()
	cfg.User = ""
	_, err := InitTrackerDatabase(&cfg)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, logLevel("silent"))
	assert.Equal(t, gormlogger.Error, logLevel("ERROR"))
	assert.Equal(t, gormlogger.Info, logLevel("info"))
	assert.Equal(t, gormlogger.Warn, logLevel("WARN"))
	assert.Equal(t, gormlogger.Warn, logLevel(""))
}

func TestPositiveOr(t *testing.T) {
	assert.Equal(t, 10, positiveOr(0, 10))
	assert.Equal(t, 10, positiveOr(-3, 10))
	assert.Equal(t, 4, positiveOr(4, 10))
}
