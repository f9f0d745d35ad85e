package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/canada-ca/tracker-sub010/internal/utils"
)

// Claim is the edge from an organization to a domain it is responsible for.
type Claim struct {
	ID         string    `gorm:"column:id;type:varchar(50);primaryKey" json:"id"`
	OrgID      string    `gorm:"column:org_id;type:varchar(50);NOT NULL;uniqueIndex:idx_claim_org_domain" json:"orgId"`
	DomainID   string    `gorm:"column:domain_id;type:varchar(50);NOT NULL;uniqueIndex:idx_claim_org_domain;index" json:"domainId"`
	DmarcOwner bool      `gorm:"column:dmarc_owner;type:boolean;NOT NULL;DEFAULT:false" json:"dmarcOwner"`
	CreatedAt  time.Time `gorm:"column:created_at;type:timestamp;DEFAULT:current_timestamp" json:"createdAt"`
}

func (Claim) TableName() string {
	return "claims"
}

func (c *Claim) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = utils.GenerateNanoIdWithPrefix("clm", 16)
	}
	return nil
}
