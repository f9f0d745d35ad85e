package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/canada-ca/tracker-sub010/internal/enum"
	"github.com/canada-ca/tracker-sub010/internal/utils"
)

type Scan struct {
	ID           string         `gorm:"column:id;type:varchar(50);primaryKey" json:"id"`
	DomainID     string         `gorm:"column:domain_id;type:varchar(50);NOT NULL;index:idx_scan_domain_type" json:"domainId"`
	ScanType     enum.ScanType  `gorm:"column:scan_type;type:varchar(10);NOT NULL;index:idx_scan_domain_type" json:"scanType"`
	Status       enum.Status    `gorm:"column:status;type:varchar(10)" json:"status"`
	Selector     string         `gorm:"column:selector;type:varchar(255)" json:"selector"`
	Record       string         `gorm:"column:record;type:text" json:"record"`
	GuidanceTags pq.StringArray `gorm:"column:guidance_tags;type:text[]" json:"guidanceTags"`
	Data         JSONMap        `gorm:"column:data;type:jsonb" json:"data"`
	ScannedAt    time.Time      `gorm:"column:scanned_at;type:timestamp;NOT NULL" json:"scannedAt"`
}

func (Scan) TableName() string {
	return "scans"
}

func (s *Scan) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = utils.GenerateNanoIdWithPrefix("scn", 16)
	}
	return nil
}
