package database

import (
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/canada-ca/tracker-sub010/config"
)

const (
	defaultMaxIdleConns    = 10
	defaultMaxOpenConns    = 100
	defaultConnMaxLifetime = time.Hour
)

var ErrInvalidConfig = errors.New("invalid database config")

var gormLogLevels = map[string]gormlogger.LogLevel{
	"SILENT": gormlogger.Silent,
	"ERROR":  gormlogger.Error,
	"WARN":   gormlogger.Warn,
	"INFO":   gormlogger.Info,
}

// logLevel falls back to WARN for unknown names.
func logLevel(name string) gormlogger.LogLevel {
	if level, ok := gormLogLevels[strings.ToUpper(name)]; ok {
		return level
	}
	return gormlogger.Warn
}

// dsn renders cfg as a keyword/value connection string with every value quoted.
func dsn(cfg *config.TrackerDatabaseConfig) (string, error) {
	if cfg == nil {
		return "", errors.Wrap(ErrInvalidConfig, "config is nil")
	}
	if _, err := strconv.Atoi(cfg.Port); cfg.Port != "" && err != nil {
		return "", errors.Wrapf(ErrInvalidConfig, "port %q is not a number", cfg.Port)
	}

	params := []struct{ key, value string }{
		{"host", cfg.Host},
		{"port", cfg.Port},
		{"user", cfg.User},
		{"password", cfg.Password},
		{"dbname", cfg.DBName},
		{"sslmode", cfg.SSLMode},
	}
	quote := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	parts := make([]string, 0, len(params))
	for _, p := range params {
		if p.value == "" {
			return "", errors.Wrapf(ErrInvalidConfig, "%s is empty", p.key)
		}
		parts = append(parts, p.key+"='"+quote.Replace(p.value)+"'")
	}
	return strings.Join(parts, " "), nil
}

func positiveOr(value, fallback int) int {
	if value > 0 {
		return value
	}
	return fallback
}

func open(cfg *config.TrackerDatabaseConfig) (*gorm.DB, error) {
	source, err := dsn(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(postgres.Open(source), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel(cfg.LogLevel)),
	})
	if err != nil {
		return nil, errors.Wrap(err, "open postgres")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "get sql handle")
	}
	sqlDB.SetMaxIdleConns(positiveOr(cfg.MaxIdleConn, defaultMaxIdleConns))
	sqlDB.SetMaxOpenConns(positiveOr(cfg.MaxConn, defaultMaxOpenConns))
	lifetime := defaultConnMaxLifetime
	if cfg.ConnMaxLifetime > 0 {
		lifetime = time.Duration(cfg.ConnMaxLifetime) * time.Minute
	}
	sqlDB.SetConnMaxLifetime(lifetime)

	return db, nil
}
