package models

import (
	"database/sql/driver"
	"time"

	"gorm.io/gorm"

	"github.com/canada-ca/tracker-sub010/internal/enum"
	"github.com/canada-ca/tracker-sub010/internal/utils"
)

// SuperAdminOrgSlug is the organization holding super admin affiliations.
const SuperAdminOrgSlug = "super-admin"

type Organization struct {
	ID        string                `gorm:"column:id;type:varchar(50);primaryKey" json:"id"`
	Slug      string                `gorm:"column:slug;type:varchar(255);NOT NULL;uniqueIndex" json:"slug"`
	Name      string                `gorm:"column:name;type:varchar(255);NOT NULL" json:"name"`
	Acronym   string                `gorm:"column:acronym;type:varchar(50);NOT NULL" json:"acronym"`
	Zone      string                `gorm:"column:zone;type:varchar(100)" json:"zone"`
	Sector    string                `gorm:"column:sector;type:varchar(100)" json:"sector"`
	Country   string                `gorm:"column:country;type:varchar(100)" json:"country"`
	Province  string                `gorm:"column:province;type:varchar(100)" json:"province"`
	City      string                `gorm:"column:city;type:varchar(100)" json:"city"`
	Verified  bool                  `gorm:"column:verified;type:boolean;NOT NULL;DEFAULT:false" json:"verified"`
	Summaries OrganizationSummaries `gorm:"column:summaries;type:jsonb" json:"summaries"`
	CreatedAt time.Time             `gorm:"column:created_at;type:timestamp;DEFAULT:current_timestamp" json:"createdAt"`
	UpdatedAt time.Time             `gorm:"column:updated_at;type:timestamp;DEFAULT:current_timestamp" json:"updatedAt"`
}

func (Organization) TableName() string {
	return "organizations"
}

func (o *Organization) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = utils.GenerateNanoIdWithPrefix("org", 16)
	}
	return nil
}

// OrganizationSummaries holds one summary per kind, computed over the
// organization's claimed domains.
type OrganizationSummaries map[enum.SummaryKind]Summary

func (s OrganizationSummaries) Value() (driver.Value, error) {
	if s == nil {
		return "{}", nil
	}
	return valueJSON(s)
}

func (s *OrganizationSummaries) Scan(value interface{}) error {
	*s = make(OrganizationSummaries)
	return scanJSON(value, s)
}
