package resolver

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/graph-gophers/graphql-go"

	"github.com/canada-ca/tracker-sub010/api/graphql/loaders"
	"github.com/canada-ca/tracker-sub010/internal/enum"
	"github.com/canada-ca/tracker-sub010/internal/models"
	domain_service "github.com/canada-ca/tracker-sub010/services/domain"
)

type domainResolver struct {
	r      *Resolver
	domain *models.Domain
}

func (r *Resolver) domain(d *models.Domain) *domainResolver {
	return &domainResolver{r: r, domain: d}
}

func domainID(d *models.Domain) string { return d.ID }

func (d *domainResolver) ID() graphql.ID       { return globalID(domain_service.CursorType, d.domain.ID) }
func (d *domainResolver) Domain() string       { return d.domain.Domain }
func (d *domainResolver) HasDMARCReport() bool { return d.domain.HasDmarcReport }
func (d *domainResolver) DmarcPhase() *string  { return optionalString(d.domain.DmarcPhase.String()) }

func (d *domainResolver) Status() *statusSetResolver {
	return &statusSetResolver{status: d.domain.Status}
}

func (d *domainResolver) Selectors() []string {
	selectors := make([]string, 0, len(d.domain.Selectors))
	return append(selectors, d.domain.Selectors...)
}

func (d *domainResolver) LastRan() *graphql.Time {
	if d.domain.LastRan == nil {
		return nil
	}
	return &graphql.Time{Time: *d.domain.LastRan}
}

// Organizations lists the organizations claiming the domain.
func (d *domainResolver) Organizations(ctx context.Context) ([]*organizationResolver, error) {
	span, ctx := startSpan(ctx, "DomainResolver.Organizations")
	defer span.Finish()

	claims, err := d.r.repositories.ClaimRepository.ListByDomain(ctx, d.domain.ID)
	if err != nil {
		return nil, fail(ctx, span, err)
	}
	l, err := loaders.For(ctx)
	if err != nil {
		return nil, fail(ctx, span, err)
	}

	ids := make([]string, 0, len(claims))
	for _, claim := range claims {
		ids = append(ids, claim.OrgID)
	}
	orgs, err := l.OrgByID.LoadAll(ctx, ids)
	if err != nil {
		return nil, fail(ctx, span, err)
	}

	resolvers := make([]*organizationResolver, 0, len(orgs))
	for _, org := range orgs {
		if org != nil {
			resolvers = append(resolvers, d.r.organization(org))
		}
	}
	return resolvers, nil
}

func (d *domainResolver) Scans(ctx context.Context, args struct {
	ConnectionArgs
	Type      string
	StartDate *graphql.Time
	EndDate   *graphql.Time
}) (*connectionResolver[*scanResolver], error) {
	span, ctx := startSpan(ctx, "DomainResolver.Scans")
	defer span.Finish()

	page, err := d.r.services.DomainService.FindScans(ctx, d.domain.ID, enum.ScanType(strings.ToLower(args.Type)), args.page(), timeOf(args.StartDate), timeOf(args.EndDate))
	if err != nil {
		return nil, fail(ctx, span, err)
	}
	return newConnection(page, domain_service.ScanCursorType, scanID, newScanResolver), nil
}

func (d *domainResolver) DmarcSummaryByPeriod(ctx context.Context, args struct {
	Month int32
	Year  int32
}) (*dmarcSummaryResolver, error) {
	span, ctx := startSpan(ctx, "DomainResolver.DmarcSummaryByPeriod")
	defer span.Finish()

	summary, err := d.r.services.DmarcSummaryService.DmarcSummaryByPeriod(ctx, d.domain.ID, int(args.Month), int(args.Year))
	if err != nil {
		return nil, fail(ctx, span, err)
	}
	if summary == nil {
		return nil, nil
	}
	return d.r.dmarcSummary(summary), nil
}

func (d *domainResolver) YearlyDmarcSummaries(ctx context.Context) (*[]*dmarcSummaryResolver, error) {
	span, ctx := startSpan(ctx, "DomainResolver.YearlyDmarcSummaries")
	defer span.Finish()

	summaries, err := d.r.services.DmarcSummaryService.YearlyDmarcSummaries(ctx, d.domain.ID)
	if err != nil {
		return nil, fail(ctx, span, err)
	}
	resolvers := make([]*dmarcSummaryResolver, 0, len(summaries))
	for _, summary := range summaries {
		resolvers = append(resolvers, d.r.dmarcSummary(summary))
	}
	return &resolvers, nil
}

type statusSetResolver struct {
	status models.DomainStatus
}

func (s *statusSetResolver) DKIM() string  { return s.status.DKIM.GraphQL() }
func (s *statusSetResolver) DMARC() string { return s.status.DMARC.GraphQL() }
func (s *statusSetResolver) SPF() string   { return s.status.SPF.GraphQL() }
func (s *statusSetResolver) HTTPS() string { return s.status.HTTPS.GraphQL() }
func (s *statusSetResolver) SSL() string   { return s.status.SSL.GraphQL() }

type scanResolver struct {
	scan *models.Scan
}

func newScanResolver(scan *models.Scan) *scanResolver { return &scanResolver{scan: scan} }

func scanID(scan *models.Scan) string { return scan.ID }

func (s *scanResolver) ID() graphql.ID          { return globalID(domain_service.ScanCursorType, s.scan.ID) }
func (s *scanResolver) ScanType() string        { return strings.ToUpper(s.scan.ScanType.String()) }
func (s *scanResolver) Timestamp() graphql.Time { return graphql.Time{Time: s.scan.ScannedAt} }
func (s *scanResolver) Status() string          { return s.scan.Status.GraphQL() }
func (s *scanResolver) Selector() *string       { return optionalString(s.scan.Selector) }
func (s *scanResolver) Record() *string         { return optionalString(s.scan.Record) }

func (s *scanResolver) GuidanceTags() []string {
	tags := make([]string, 0, len(s.scan.GuidanceTags))
	return append(tags, s.scan.GuidanceTags...)
}

func (s *scanResolver) RawJSON() (*string, error) {
	if len(s.scan.Data) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(s.scan.Data)
	if err != nil {
		return nil, err
	}
	raw := string(b)
	return &raw, nil
}

func timeOf(t *graphql.Time) *time.Time {
	if t == nil {
		return nil
	}
	return &t.Time
}

func (r *Resolver) FindMyDomains(ctx context.Context, args struct {
	ConnectionArgs
	OrderBy *OrderInput
}) (*connectionResolver[*domainResolver], error) {
	span, ctx := startSpan(ctx, "Resolver.FindMyDomains")
	defer span.Finish()

	page, err := r.services.DomainService.FindMyDomains(ctx, args.withOrder(args.OrderBy))
	if err != nil {
		return nil, fail(ctx, span, err)
	}
	return newConnection(page, domain_service.CursorType, domainID, r.domain), nil
}

func (r *Resolver) FindDomainByDomain(ctx context.Context, args struct{ Domain string }) (*domainResolver, error) {
	span, ctx := startSpan(ctx, "Resolver.FindDomainByDomain")
	defer span.Finish()

	d, err := r.services.DomainService.FindDomainByDomain(ctx, args.Domain)
	if err != nil {
		return nil, fail(ctx, span, err)
	}
	return r.domain(d), nil
}

func (r *Resolver) CreateDomain(ctx context.Context, args struct {
	OrgID     graphql.ID
	Domain    string
	Selectors *[]string
}) (*resultResolver, error) {
	span, ctx := startSpan(ctx, "Resolver.CreateDomain")
	defer span.Finish()

	d, err := r.services.DomainService.CreateDomain(ctx, localID(args.OrgID), args.Domain, derefStrings(args.Selectors))
	if err != nil {
		return mutationResult(ctx, span, nil, err)
	}
	return &resultResolver{domain: r.domain(d)}, nil
}

func (r *Resolver) UpdateDomain(ctx context.Context, args struct {
	DomainID  graphql.ID
	OrgID     graphql.ID
	Domain    *string
	Selectors *[]string
}) (*resultResolver, error) {
	span, ctx := startSpan(ctx, "Resolver.UpdateDomain")
	defer span.Finish()

	d, err := r.services.DomainService.UpdateDomain(ctx, localID(args.DomainID), localID(args.OrgID), args.Domain, derefStrings(args.Selectors))
	if err != nil {
		return mutationResult(ctx, span, nil, err)
	}
	return &resultResolver{domain: r.domain(d)}, nil
}

func (r *Resolver) RemoveDomain(ctx context.Context, args struct {
	DomainID graphql.ID
	OrgID    graphql.ID
}) (*resultResolver, error) {
	span, ctx := startSpan(ctx, "Resolver.RemoveDomain")
	defer span.Finish()

	status, err := r.services.DomainService.RemoveDomain(ctx, localID(args.DomainID), localID(args.OrgID))
	return mutationResult(ctx, span, statusResult(status), err)
}

func (r *Resolver) RequestScan(ctx context.Context, args struct{ Domain string }) (*resultResolver, error) {
	span, ctx := startSpan(ctx, "Resolver.RequestScan")
	defer span.Finish()

	status, err := r.services.ScanService.RequestScan(ctx, args.Domain)
	return mutationResult(ctx, span, statusResult(status), err)
}

// derefStrings keeps the difference between an omitted list (nil) and an
// empty one.
func derefStrings(values *[]string) []string {
	if values == nil {
		return nil
	}
	return *values
}
