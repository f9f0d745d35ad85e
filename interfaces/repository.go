package interfaces

import (
	"context"
	"time"

	"github.com/canada-ca/tracker-sub010/internal/enum"
	"github.com/canada-ca/tracker-sub010/internal/models"
	"github.com/canada-ca/tracker-sub010/internal/pagination"
)

// Order names a sortable field of a connection; repositories map it to a
// column through a whitelist and fall back to their default order.
type Order struct {
	Field string
	Desc  bool
}

type OrganizationFilter struct {
	UserID               string
	AllOrgs              bool
	AdminOnly            bool
	IncludeSuperAdminOrg bool
	Search               string
	Order                Order
}

type DomainFilter struct {
	UserID     string
	AllDomains bool
	OrgID      string
	Search     string
	Order      Order
}

type AffiliationFilter struct {
	OrgID          string
	UserID         string
	Search         string
	IncludePending bool
	Order          Order
}

type AuditLogFilter struct {
	AllOrgs   bool
	OrgIDs    []string
	Search    string
	Actions   []enum.AuditAction
	Resources []enum.AuditResource
	Order     Order
}

type DmarcSummaryFilter struct {
	UserID     string
	AllDomains bool
	Month      int
	Year       int
	Search     string
	Order      Order
}

type ScanFilter struct {
	DomainID  string
	ScanType  enum.ScanType
	StartDate *time.Time
	EndDate   *time.Time
	Desc      bool
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByIDs(ctx context.Context, ids []string) ([]*models.User, error)
	GetByUserName(ctx context.Context, userName string) (*models.User, error)
	Save(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
}

type OrganizationRepository interface {
	Create(ctx context.Context, org *models.Organization) error
	GetByID(ctx context.Context, id string) (*models.Organization, error)
	GetByIDs(ctx context.Context, ids []string) ([]*models.Organization, error)
	GetBySlug(ctx context.Context, slug string) (*models.Organization, error)
	GetBySlugs(ctx context.Context, slugs []string) ([]*models.Organization, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	Save(ctx context.Context, org *models.Organization) error
	// Delete cascades to claims, affiliations and domains left unclaimed, in one transaction.
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter OrganizationFilter, window pagination.Window) (pagination.Page[*models.Organization], error)
	ListAll(ctx context.Context) ([]*models.Organization, error)
	UpdateSummaries(ctx context.Context, id string, summaries models.OrganizationSummaries) error
}

type DomainRepository interface {
	Create(ctx context.Context, domain *models.Domain) error
	GetByID(ctx context.Context, id string) (*models.Domain, error)
	GetByIDs(ctx context.Context, ids []string) ([]*models.Domain, error)
	GetByDomain(ctx context.Context, domain string) (*models.Domain, error)
	GetByDomains(ctx context.Context, domains []string) ([]*models.Domain, error)
	Save(ctx context.Context, domain *models.Domain) error
	List(ctx context.Context, filter DomainFilter, window pagination.Window) (pagination.Page[*models.Domain], error)
	ListByOrg(ctx context.Context, orgID string) ([]*models.Domain, error)
	ListAll(ctx context.Context) ([]*models.Domain, error)
	UpdateScanStatus(ctx context.Context, id string, scanType enum.ScanType, status enum.Status, phase enum.DmarcPhase, ranAt time.Time) error
	SetHasDmarcReport(ctx context.Context, id string) error
}

type ClaimRepository interface {
	Create(ctx context.Context, claim *models.Claim) error
	Get(ctx context.Context, orgID, domainID string) (*models.Claim, error)
	ListByDomain(ctx context.Context, domainID string) ([]*models.Claim, error)
	CountByOrg(ctx context.Context, orgID string) (int64, error)
	// Delete also removes the domain with its scans and DMARC summaries once it is unclaimed.
	Delete(ctx context.Context, orgID, domainID string) error
	// IsDomainClaimedForUser reports whether a non-pending affiliation of the
	// user reaches an organization claiming the domain.
	IsDomainClaimedForUser(ctx context.Context, userID, domainID string) (bool, error)
	IsDmarcOwnedForUser(ctx context.Context, userID, domainID string) (bool, error)
}

type AffiliationRepository interface {
	Create(ctx context.Context, affiliation *models.Affiliation) error
	Get(ctx context.Context, userID, orgID string) (*models.Affiliation, error)
	GetByID(ctx context.Context, id string) (*models.Affiliation, error)
	Save(ctx context.Context, affiliation *models.Affiliation) error
	Delete(ctx context.Context, userID, orgID string) error
	DeleteByUser(ctx context.Context, userID string) error
	ListByUser(ctx context.Context, userID string) ([]*models.Affiliation, error)
	ListAdminsByOrg(ctx context.Context, orgID string) ([]*models.Affiliation, error)
	HasSuperAdmin(ctx context.Context, userID string) (bool, error)
	// IsAdminForUser reports whether adminID is admin of an organization userID belongs to.
	IsAdminForUser(ctx context.Context, adminID, userID string) (bool, error)
	List(ctx context.Context, filter AffiliationFilter, window pagination.Window) (pagination.Page[*models.Affiliation], error)
}

type ScanRepository interface {
	Create(ctx context.Context, scan *models.Scan) error
	List(ctx context.Context, filter ScanFilter, window pagination.Window) (pagination.Page[*models.Scan], error)
}

type ChartSummaryRepository interface {
	Save(ctx context.Context, summary *models.ChartSummary) error
	Get(ctx context.Context, kind enum.SummaryKind) (*models.ChartSummary, error)
}

type DmarcSummaryRepository interface {
	Upsert(ctx context.Context, summary *models.DmarcSummary) error
	Get(ctx context.Context, domainID string, month, year int) (*models.DmarcSummary, error)
	ListByDomain(ctx context.Context, domainID string, since time.Time) ([]*models.DmarcSummary, error)
	List(ctx context.Context, filter DmarcSummaryFilter, window pagination.Window) (pagination.Page[*models.DmarcSummary], error)
}

type AuditLogRepository interface {
	Create(ctx context.Context, log *models.AuditLog) error
	List(ctx context.Context, filter AuditLogFilter, window pagination.Window) (pagination.Page[*models.AuditLog], error)
}
