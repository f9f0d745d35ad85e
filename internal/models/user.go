package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/canada-ca/tracker-sub010/internal/enum"
	"github.com/canada-ca/tracker-sub010/internal/utils"
)

type User struct {
	ID                  string             `gorm:"column:id;type:varchar(50);primaryKey" json:"id"`
	UserName            string             `gorm:"column:user_name;type:varchar(255);NOT NULL;uniqueIndex" json:"userName"`
	DisplayName         string             `gorm:"column:display_name;type:varchar(255);NOT NULL" json:"displayName"`
	PasswordHash        string             `gorm:"column:password_hash;type:varchar(255);NOT NULL" json:"-"`
	PreferredLang       enum.Language      `gorm:"column:preferred_lang;type:varchar(20);NOT NULL;DEFAULT:'english'" json:"preferredLang"`
	TfaSendMethod       enum.TfaSendMethod `gorm:"column:tfa_send_method;type:varchar(20);NOT NULL;DEFAULT:'none'" json:"tfaSendMethod"`
	EmailValidated      bool               `gorm:"column:email_validated;type:boolean;NOT NULL;DEFAULT:false" json:"emailValidated"`
	TfaCodeHash         string             `gorm:"column:tfa_code_hash;type:varchar(255)" json:"-"`
	TfaCodeExpiresAt    *time.Time         `gorm:"column:tfa_code_expires_at;type:timestamp" json:"-"`
	FailedLoginAttempts int                `gorm:"column:failed_login_attempts;type:integer;NOT NULL;DEFAULT:0" json:"-"`
	LockedUntil         *time.Time         `gorm:"column:locked_until;type:timestamp" json:"-"`
	RefreshID           string             `gorm:"column:refresh_id;type:varchar(64)" json:"-"`
	InsideUser          bool               `gorm:"column:inside_user;type:boolean;NOT NULL;DEFAULT:false" json:"insideUser"`
	CreatedAt           time.Time          `gorm:"column:created_at;type:timestamp;DEFAULT:current_timestamp" json:"createdAt"`
	UpdatedAt           time.Time          `gorm:"column:updated_at;type:timestamp;DEFAULT:current_timestamp" json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = utils.GenerateNanoIdWithPrefix("usr", 16)
	}
	return nil
}

func (u *User) IsLocked(now time.Time) bool {
	return u.LockedUntil != nil && now.Before(*u.LockedUntil)
}
