package database

import (
	"gorm.io/gorm"

	"github.com/canada-ca/tracker-sub010/config"
)

// InitTrackerDatabase opens the pooled postgres connection. Pool sizes left
// at zero use the package defaults.
func InitTrackerDatabase(cfg *config.TrackerDatabaseConfig) (*gorm.DB, error) {
	return open(cfg)
}
