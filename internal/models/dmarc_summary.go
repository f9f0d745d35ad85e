package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/canada-ca/tracker-sub010/internal/utils"
)

// DmarcSummary aggregates the DMARC aggregate reports received for a domain
// during one calendar month.
type DmarcSummary struct {
	ID           string    `gorm:"column:id;type:varchar(50);primaryKey" json:"id"`
	DomainID     string    `gorm:"column:domain_id;type:varchar(50);NOT NULL;uniqueIndex:idx_dmarc_summary_period" json:"domainId"`
	Month        int       `gorm:"column:month;type:integer;NOT NULL;uniqueIndex:idx_dmarc_summary_period" json:"month"`
	Year         int       `gorm:"column:year;type:integer;NOT NULL;uniqueIndex:idx_dmarc_summary_period" json:"year"`
	FullPass     int       `gorm:"column:full_pass;type:integer;NOT NULL;DEFAULT:0" json:"fullPass"`
	PassSpfOnly  int       `gorm:"column:pass_spf_only;type:integer;NOT NULL;DEFAULT:0" json:"passSpfOnly"`
	PassDkimOnly int       `gorm:"column:pass_dkim_only;type:integer;NOT NULL;DEFAULT:0" json:"passDkimOnly"`
	Fail         int       `gorm:"column:fail;type:integer;NOT NULL;DEFAULT:0" json:"fail"`
	CreatedAt    time.Time `gorm:"column:created_at;type:timestamp;DEFAULT:current_timestamp" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"column:updated_at;type:timestamp;DEFAULT:current_timestamp" json:"updatedAt"`
}

func (DmarcSummary) TableName() string {
	return "dmarc_summaries"
}

func (d *DmarcSummary) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = utils.GenerateNanoIdWithPrefix("dms", 16)
	}
	return nil
}

func (d *DmarcSummary) TotalMessages() int {
	return d.FullPass + d.PassSpfOnly + d.PassDkimOnly + d.Fail
}
