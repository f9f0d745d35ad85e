package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/canada-ca/tracker-sub010/internal/enum"
	"github.com/canada-ca/tracker-sub010/internal/utils"
)

type AuditLog struct {
	ID                string             `gorm:"column:id;type:varchar(50);primaryKey" json:"id"`
	Timestamp         time.Time          `gorm:"column:timestamp;type:timestamp;NOT NULL;index" json:"timestamp"`
	InitiatorID       string             `gorm:"column:initiator_id;type:varchar(50)" json:"initiatorId"`
	InitiatorUserName string             `gorm:"column:initiator_user_name;type:varchar(255)" json:"initiatorUserName"`
	InitiatorRole     enum.Role          `gorm:"column:initiator_role;type:varchar(20)" json:"initiatorRole"`
	InitiatorIP       string             `gorm:"column:initiator_ip;type:varchar(64)" json:"initiatorIp"`
	Action            enum.AuditAction   `gorm:"column:action;type:varchar(20);NOT NULL" json:"action"`
	ResourceType      enum.AuditResource `gorm:"column:resource_type;type:varchar(20);NOT NULL" json:"resourceType"`
	Resource          string             `gorm:"column:resource;type:varchar(255);NOT NULL" json:"resource"`
	OrgID             string             `gorm:"column:org_id;type:varchar(50);index" json:"orgId"`
	OrgName           string             `gorm:"column:org_name;type:varchar(255)" json:"orgName"`
	UpdatedProperties JSONMap            `gorm:"column:updated_properties;type:jsonb" json:"updatedProperties"`
	Reason            string             `gorm:"column:reason;type:varchar(255)" json:"reason"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = utils.GenerateNanoIdWithPrefix("adt", 16)
	}
	return nil
}

// PropertyChange is the value stored per field in UpdatedProperties.
func PropertyChange(oldValue, newValue interface{}) map[string]interface{} {
	return map[string]interface{}{"old": oldValue, "new": newValue}
}
