package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/canada-ca/tracker-sub010/config"
	"github.com/canada-ca/tracker-sub010/interfaces"
	"github.com/canada-ca/tracker-sub010/internal/models"
)

type Repositories struct {
	UserRepository         interfaces.UserRepository
	OrganizationRepository interfaces.OrganizationRepository
	DomainRepository       interfaces.DomainRepository
	ClaimRepository        interfaces.ClaimRepository
	AffiliationRepository  interfaces.AffiliationRepository
	ScanRepository         interfaces.ScanRepository
	ChartSummaryRepository interfaces.ChartSummaryRepository
	DmarcSummaryRepository interfaces.DmarcSummaryRepository
	AuditLogRepository     interfaces.AuditLogRepository
}

func InitRepositories(trackerDB *gorm.DB) *Repositories {
	return &Repositories{
		// Vertices
		UserRepository:         NewUserRepository(trackerDB),
		OrganizationRepository: NewOrganizationRepository(trackerDB),
		DomainRepository:       NewDomainRepository(trackerDB),
		ScanRepository:         NewScanRepository(trackerDB),
		ChartSummaryRepository: NewChartSummaryRepository(trackerDB),
		DmarcSummaryRepository: NewDmarcSummaryRepository(trackerDB),
		AuditLogRepository:     NewAuditLogRepository(trackerDB),
		// Edges
		ClaimRepository:       NewClaimRepository(trackerDB),
		AffiliationRepository: NewAffiliationRepository(trackerDB),
	}
}

func MigrateTrackerDB(dbConfig *config.TrackerDatabaseConfig, trackerDB *gorm.DB) error {
	db, err := trackerDB.DB()
	if err != nil {
		return err
	}

	db.SetMaxOpenConns(5)

	err = trackerDB.AutoMigrate(
		&models.User{},
		&models.Organization{},
		&models.Domain{},
		&models.Scan{},
		&models.ChartSummary{},
		&models.DmarcSummary{},
		&models.AuditLog{},
		&models.Affiliation{},
		&models.Claim{},
	)

	if dbConfig.MaxIdleConn > 0 {
		db.SetMaxIdleConns(dbConfig.MaxIdleConn)
	}
	if dbConfig.MaxConn > 0 {
		db.SetMaxOpenConns(dbConfig.MaxConn)
	}
	if dbConfig.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(time.Duration(dbConfig.ConnMaxLifetime) * time.Minute)
	}

	return err
}
