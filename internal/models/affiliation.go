package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/canada-ca/tracker-sub010/internal/enum"
	"github.com/canada-ca/tracker-sub010/internal/utils"
)

// Affiliation is the edge from a user to an organization.
type Affiliation struct {
	ID         string    `gorm:"column:id;type:varchar(50);primaryKey" json:"id"`
	UserID     string    `gorm:"column:user_id;type:varchar(50);NOT NULL;uniqueIndex:idx_affiliation_user_org" json:"userId"`
	OrgID      string    `gorm:"column:org_id;type:varchar(50);NOT NULL;uniqueIndex:idx_affiliation_user_org;index" json:"orgId"`
	Permission enum.Role `gorm:"column:permission;type:varchar(20);NOT NULL" json:"permission"`
	Owner      bool      `gorm:"column:owner;type:boolean;NOT NULL;DEFAULT:false" json:"owner"`
	CreatedAt  time.Time `gorm:"column:created_at;type:timestamp;DEFAULT:current_timestamp" json:"createdAt"`
	UpdatedAt  time.Time `gorm:"column:updated_at;type:timestamp;DEFAULT:current_timestamp" json:"updatedAt"`
}

func (Affiliation) TableName() string {
	return "affiliations"
}

func (a *Affiliation) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = utils.GenerateNanoIdWithPrefix("aff", 16)
	}
	return nil
}
