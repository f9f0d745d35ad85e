package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/canada-ca/tracker-sub010/internal/enum"
	"github.com/canada-ca/tracker-sub010/internal/utils"
)

type DomainStatus struct {
	DKIM  enum.Status `gorm:"column:status_dkim;type:varchar(10)" json:"dkim"`
	DMARC enum.Status `gorm:"column:status_dmarc;type:varchar(10)" json:"dmarc"`
	SPF   enum.Status `gorm:"column:status_spf;type:varchar(10)" json:"spf"`
	HTTPS enum.Status `gorm:"column:status_https;type:varchar(10)" json:"https"`
	SSL   enum.Status `gorm:"column:status_ssl;type:varchar(10)" json:"ssl"`
}

func (s DomainStatus) Get(scanType enum.ScanType) enum.Status {
	switch scanType {
	case enum.ScanDKIM:
		return s.DKIM
	case enum.ScanDMARC:
		return s.DMARC
	case enum.ScanSPF:
		return s.SPF
	case enum.ScanHTTPS:
		return s.HTTPS
	case enum.ScanSSL:
		return s.SSL
	default:
		return enum.StatusUnknown
	}
}

func (s *DomainStatus) Set(scanType enum.ScanType, status enum.Status) {
	switch scanType {
	case enum.ScanDKIM:
		s.DKIM = status
	case enum.ScanDMARC:
		s.DMARC = status
	case enum.ScanSPF:
		s.SPF = status
	case enum.ScanHTTPS:
		s.HTTPS = status
	case enum.ScanSSL:
		s.SSL = status
	}
}

type Domain struct {
	ID             string          `gorm:"column:id;type:varchar(50);primaryKey" json:"id"`
	Domain         string          `gorm:"column:domain;type:varchar(255);NOT NULL;uniqueIndex" json:"domain"`
	Selectors      pq.StringArray  `gorm:"column:selectors;type:text[]" json:"selectors"`
	Status         DomainStatus    `gorm:"embedded" json:"status"`
	DmarcPhase     enum.DmarcPhase `gorm:"column:dmarc_phase;type:varchar(20)" json:"dmarcPhase"`
	LastRan        *time.Time      `gorm:"column:last_ran;type:timestamp" json:"lastRan"`
	HasDmarcReport bool            `gorm:"column:has_dmarc_report;type:boolean;NOT NULL;DEFAULT:false" json:"hasDmarcReport"`
	CreatedAt      time.Time       `gorm:"column:created_at;type:timestamp;DEFAULT:current_timestamp" json:"createdAt"`
	UpdatedAt      time.Time       `gorm:"column:updated_at;type:timestamp;DEFAULT:current_timestamp" json:"updatedAt"`
}

func (Domain) TableName() string {
	return "domains"
}

func (d *Domain) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = utils.GenerateNanoIdWithPrefix("dom", 16)
	}
	return nil
}
