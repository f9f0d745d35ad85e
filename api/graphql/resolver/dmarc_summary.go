package resolver

import (
	"context"

	"github.com/graph-gophers/graphql-go"

	"github.com/canada-ca/tracker-sub010/api/graphql/loaders"
	"github.com/canada-ca/tracker-sub010/internal/models"
	"github.com/canada-ca/tracker-sub010/services/dmarc_summary"
	"github.com/canada-ca/tracker-sub010/services/summary"
)

var dmarcCategories = []string{"full-pass", "pass-spf-only", "pass-dkim-only", "fail"}

type dmarcSummaryResolver struct {
	r       *Resolver
	summary *models.DmarcSummary
}

func (r *Resolver) dmarcSummary(s *models.DmarcSummary) *dmarcSummaryResolver {
	return &dmarcSummaryResolver{r: r, summary: s}
}

func dmarcSummaryID(s *models.DmarcSummary) string { return s.ID }

func (d *dmarcSummaryResolver) ID() graphql.ID { return globalID(dmarc_summary.CursorType, d.summary.ID) }
func (d *dmarcSummaryResolver) Month() int32   { return int32(d.summary.Month) }
func (d *dmarcSummaryResolver) Year() int32    { return int32(d.summary.Year) }

func (d *dmarcSummaryResolver) counts() []int {
	return []int{d.summary.FullPass, d.summary.PassSpfOnly, d.summary.PassDkimOnly, d.summary.Fail}
}

func (d *dmarcSummaryResolver) TotalMessages() int32 {
	total := 0
	for _, count := range d.counts() {
		total += count
	}
	return int32(total)
}

func (d *dmarcSummaryResolver) CategoryTotals() *categoryTotalsResolver {
	return &categoryTotalsResolver{summary: d.summary}
}

func (d *dmarcSummaryResolver) CategoryPercentages() *categorizedSummaryResolver {
	return &categorizedSummaryResolver{summary: summary.NewSummary(dmarcCategories, d.counts())}
}

func (d *dmarcSummaryResolver) Domain(ctx context.Context) (*domainResolver, error) {
	span, ctx := startSpan(ctx, "DmarcSummaryResolver.Domain")
	defer span.Finish()

	l, err := loaders.For(ctx)
	if err != nil {
		return nil, fail(ctx, span, err)
	}
	domain, err := l.DomainByID.Load(ctx, d.summary.DomainID)
	if err != nil {
		return nil, fail(ctx, span, err)
	}
	if domain == nil {
		return nil, nil
	}
	return d.r.domain(domain), nil
}

type categoryTotalsResolver struct {
	summary *models.DmarcSummary
}

func (c *categoryTotalsResolver) FullPass() int32     { return int32(c.summary.FullPass) }
func (c *categoryTotalsResolver) PassSpfOnly() int32  { return int32(c.summary.PassSpfOnly) }
func (c *categoryTotalsResolver) PassDkimOnly() int32 { return int32(c.summary.PassDkimOnly) }
func (c *categoryTotalsResolver) Fail() int32         { return int32(c.summary.Fail) }

func (r *Resolver) FindMyDmarcSummaries(ctx context.Context, args struct {
	Month int32
	Year  int32
	ConnectionArgs
	OrderBy *OrderInput
}) (*connectionResolver[*dmarcSummaryResolver], error) {
	span, ctx := startSpan(ctx, "Resolver.FindMyDmarcSummaries")
	defer span.Finish()

	page, err := r.services.DmarcSummaryService.FindMyDmarcSummaries(ctx, int(args.Month), int(args.Year), args.withOrder(args.OrderBy))
	if err != nil {
		return nil, fail(ctx, span, err)
	}
	return newConnection(page, dmarc_summary.CursorType, dmarcSummaryID, r.dmarcSummary), nil
}
