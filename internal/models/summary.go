package models

import (
	"time"

	"github.com/canada-ca/tracker-sub010/internal/enum"
)

type SummaryCategory struct {
	Name       string  `json:"name"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type Summary struct {
	Categories []SummaryCategory `json:"categories"`
	Total      int               `json:"total"`
}

// ChartSummary is a summary computed over every domain in the system.
type ChartSummary struct {
	Kind      enum.SummaryKind `gorm:"column:kind;type:varchar(20);primaryKey" json:"kind"`
	Summary   SummaryJSON      `gorm:"column:summary;type:jsonb" json:"summary"`
	UpdatedAt time.Time        `gorm:"column:updated_at;type:timestamp;DEFAULT:current_timestamp" json:"updatedAt"`
}

func (ChartSummary) TableName() string {
	return "chart_summaries"
}
