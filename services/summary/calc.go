package summary

import (
	"math"

	"github.com/canada-ca/tracker-sub010/internal/enum"
	"github.com/canada-ca/tracker-sub010/internal/models"
)

// domainPasses reports whether the domain passes the given summary kind.
// Anything other than an explicit pass counts as a fail.
func domainPasses(domain *models.Domain, kind enum.SummaryKind) bool {
	status := domain.Status
	switch kind {
	case enum.SummaryWeb:
		return status.HTTPS == enum.StatusPass && status.SSL == enum.StatusPass
	case enum.SummaryMail:
		return status.DMARC == enum.StatusPass && status.SPF == enum.StatusPass && status.DKIM == enum.StatusPass
	case enum.SummaryHTTPS:
		return status.HTTPS == enum.StatusPass
	case enum.SummarySSL:
		return status.SSL == enum.StatusPass
	case enum.SummaryDMARC:
		return status.DMARC == enum.StatusPass
	case enum.SummarySPF:
		return status.SPF == enum.StatusPass
	case enum.SummaryDKIM:
		return status.DKIM == enum.StatusPass
	}
	return false
}

// Compute builds the summary of one kind over the given domains.
func Compute(domains []*models.Domain, kind enum.SummaryKind) models.Summary {
	if kind == enum.SummaryDmarcPhase {
		return computePhases(domains)
	}

	pass := 0
	for _, domain := range domains {
		if domainPasses(domain, kind) {
			pass++
		}
	}
	return NewSummary([]string{enum.CategoryPass, enum.CategoryFail}, []int{pass, len(domains) - pass})
}

// ComputeAll builds one summary per kind.
func ComputeAll(domains []*models.Domain) models.OrganizationSummaries {
	summaries := make(models.OrganizationSummaries, len(enum.SummaryKinds))
	for _, kind := range enum.SummaryKinds {
		summaries[kind] = Compute(domains, kind)
	}
	return summaries
}

func computePhases(domains []*models.Domain) models.Summary {
	counts := make(map[enum.DmarcPhase]int, len(enum.DmarcPhases))
	for _, domain := range domains {
		phase := domain.DmarcPhase
		if phase == "" {
			phase = enum.DmarcPhaseNotImplemented
		}
		counts[phase]++
	}

	names := make([]string, 0, len(enum.DmarcPhases))
	values := make([]int, 0, len(enum.DmarcPhases))
	for _, phase := range enum.DmarcPhases {
		names = append(names, phase.String())
		values = append(values, counts[phase])
	}
	return NewSummary(names, values)
}

// NewSummary pairs names with counts and fills in the percentages.
func NewSummary(names []string, counts []int) models.Summary {
	total := 0
	for _, count := range counts {
		total += count
	}

	summary := models.Summary{
		Categories: make([]models.SummaryCategory, 0, len(names)),
		Total:      total,
	}
	for i, name := range names {
		summary.Categories = append(summary.Categories, models.SummaryCategory{
			Name:       name,
			Count:      counts[i],
			Percentage: Percentage(counts[i], total),
		})
	}
	return summary
}

// Percentage is count/total as a percentage rounded to one decimal, 0 when
// total is 0.
func Percentage(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(count)/float64(total)*1000) / 10
}
