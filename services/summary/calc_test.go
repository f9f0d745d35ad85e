package summary

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/canada-ca/tracker-sub010/internal/enum"
	"github.com/canada-ca/tracker-sub010/internal/models"
)

func domainWith(status models.DomainStatus, phase enum.DmarcPhase) *models.Domain {
	return &models.Domain{Status: status, DmarcPhase: phase}
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		count, total int
		want         float64
	}{
		{0, 0, 0},
		{1, 3, 33.3},
		{2, 3, 66.7},
		{5, 5, 100},
		{1, 8, 12.5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Percentage(tt.count, tt.total), "%d/%d", tt.count, tt.total)
	}
}

func TestCompute_Web(t *testing.T) {
	domains := []*models.Domain{
		domainWith(models.DomainStatus{HTTPS: enum.StatusPass, SSL: enum.StatusPass}, ""),
		domainWith(models.DomainStatus{HTTPS: enum.StatusPass, SSL: enum.StatusFail}, ""),
		domainWith(models.DomainStatus{HTTPS: enum.StatusInfo, SSL: enum.StatusPass}, ""),
		domainWith(models.DomainStatus{}, ""),
	}

	summary := Compute(domains, enum.SummaryWeb)
	assert.Equal(t, 4, summary.Total)
	assert.Equal(t, []models.SummaryCategory{
		{Name: "pass", Count: 1, Percentage: 25},
		{Name: "fail", Count: 3, Percentage: 75},
	}, summary.Categories)
}

func TestCompute_Mail(t *testing.T) {
	allPass := models.DomainStatus{DMARC: enum.StatusPass, SPF: enum.StatusPass, DKIM: enum.StatusPass}
	noDkim := models.DomainStatus{DMARC: enum.StatusPass, SPF: enum.StatusPass}
	domains := []*models.Domain{domainWith(allPass, ""), domainWith(noDkim, "")}

	summary := Compute(domains, enum.SummaryMail)
	assert.Equal(t, 1, summary.Categories[0].Count)
	assert.Equal(t, 1, summary.Categories[1].Count)

	dmarc := Compute(domains, enum.SummaryDMARC)
	assert.Equal(t, 2, dmarc.Categories[0].Count)
	assert.Equal(t, 100.0, dmarc.Categories[0].Percentage)
}

func TestCompute_Empty(t *testing.T) {
	summary := Compute(nil, enum.SummaryHTTPS)
	assert.Equal(t, 0, summary.Total)
	for _, category := range summary.Categories {
		assert.Zero(t, category.Percentage)
	}
}

func TestCompute_DmarcPhase(t *testing.T) {
	domains := []*models.Domain{
		domainWith(models.DomainStatus{}, ""),
		domainWith(models.DomainStatus{}, enum.DmarcPhaseAssess),
		domainWith(models.DomainStatus{}, enum.DmarcPhaseMaintain),
		domainWith(models.DomainStatus{}, enum.DmarcPhaseMaintain),
	}

	summary := Compute(domains, enum.SummaryDmarcPhase)
	assert.Equal(t, 4, summary.Total)
	assert.Len(t, summary.Categories, 5)
	assert.Equal(t, models.SummaryCategory{Name: "not implemented", Count: 1, Percentage: 25}, summary.Categories[0])
	assert.Equal(t, models.SummaryCategory{Name: "deploy", Count: 0, Percentage: 0}, summary.Categories[2])
	assert.Equal(t, models.SummaryCategory{Name: "maintain", Count: 2, Percentage: 50}, summary.Categories[4])
}

func TestComputeAll(t *testing.T) {
	summaries := ComputeAll([]*models.Domain{domainWith(models.DomainStatus{SSL: enum.StatusPass}, "")})
	assert.Len(t, summaries, len(enum.SummaryKinds))
	assert.Equal(t, 1, summaries[enum.SummarySSL].Categories[0].Count)
	assert.Equal(t, 0, summaries[enum.SummaryHTTPS].Categories[0].Count)
}
