package mocks

import "github.com/canada-ca/tracker-sub010/internal/repository"

// Repositories bundles one mock per repository interface.
type Repositories struct {
	User         *UserRepository
	Organization *OrganizationRepository
	Domain       *DomainRepository
	Claim        *ClaimRepository
	Affiliation  *AffiliationRepository
	Scan         *ScanRepository
	ChartSummary *ChartSummaryRepository
	DmarcSummary *DmarcSummaryRepository
	AuditLog     *AuditLogRepository
}

func NewRepositories() *Repositories {
	return &Repositories{
		User:         new(UserRepository),
		Organization: new(OrganizationRepository),
		Domain:       new(DomainRepository),
		Claim:        new(ClaimRepository),
		Affiliation:  new(AffiliationRepository),
		Scan:         new(ScanRepository),
		ChartSummary: new(ChartSummaryRepository),
		DmarcSummary: new(DmarcSummaryRepository),
		AuditLog:     new(AuditLogRepository),
	}
}

// Repositories returns the mocks wired the way services receive them.
func (r *Repositories) Repositories() *repository.Repositories {
	return &repository.Repositories{
		UserRepository:         r.User,
		OrganizationRepository: r.Organization,
		DomainRepository:       r.Domain,
		ClaimRepository:        r.Claim,
		AffiliationRepository:  r.Affiliation,
		ScanRepository:         r.Scan,
		ChartSummaryRepository: r.ChartSummary,
		DmarcSummaryRepository: r.DmarcSummary,
		AuditLogRepository:     r.AuditLog,
	}
}
