package resolver

import (
	"context"

	"github.com/canada-ca/tracker-sub010/internal/enum"
	"github.com/canada-ca/tracker-sub010/internal/models"
)

type categorizedSummaryResolver struct {
	summary models.Summary
}

func (s *categorizedSummaryResolver) Categories() []*summaryCategoryResolver {
	categories := make([]*summaryCategoryResolver, 0, len(s.summary.Categories))
	for _, category := range s.summary.Categories {
		categories = append(categories, &summaryCategoryResolver{category: category})
	}
	return categories
}

func (s *categorizedSummaryResolver) Total() int32 {
	return int32(s.summary.Total)
}

type summaryCategoryResolver struct {
	category models.SummaryCategory
}

func (c *summaryCategoryResolver) Name() string        { return c.category.Name }
func (c *summaryCategoryResolver) Count() int32        { return int32(c.category.Count) }
func (c *summaryCategoryResolver) Percentage() float64 { return c.category.Percentage }

type organizationSummaryResolver struct {
	summaries models.OrganizationSummaries
}

func (o *organizationSummaryResolver) kind(kind enum.SummaryKind) *categorizedSummaryResolver {
	summary, ok := o.summaries[kind]
	if !ok {
		return nil
	}
	return &categorizedSummaryResolver{summary: summary}
}

func (o *organizationSummaryResolver) Web() *categorizedSummaryResolver   { return o.kind(enum.SummaryWeb) }
func (o *organizationSummaryResolver) Mail() *categorizedSummaryResolver  { return o.kind(enum.SummaryMail) }
func (o *organizationSummaryResolver) HTTPS() *categorizedSummaryResolver { return o.kind(enum.SummaryHTTPS) }
func (o *organizationSummaryResolver) SSL() *categorizedSummaryResolver   { return o.kind(enum.SummarySSL) }
func (o *organizationSummaryResolver) DMARC() *categorizedSummaryResolver { return o.kind(enum.SummaryDMARC) }
func (o *organizationSummaryResolver) SPF() *categorizedSummaryResolver   { return o.kind(enum.SummarySPF) }
func (o *organizationSummaryResolver) DKIM() *categorizedSummaryResolver  { return o.kind(enum.SummaryDKIM) }

func (o *organizationSummaryResolver) DmarcPhase() *categorizedSummaryResolver {
	return o.kind(enum.SummaryDmarcPhase)
}

func (r *Resolver) chartSummary(ctx context.Context, kind enum.SummaryKind) (*categorizedSummaryResolver, error) {
	span, ctx := startSpan(ctx, "Resolver.ChartSummary")
	defer span.Finish()
	span.SetTag("summary.kind", kind.String())

	summary, err := r.services.SummaryService.GetChartSummary(ctx, kind)
	if err != nil {
		return nil, fail(ctx, span, err)
	}
	if summary == nil {
		return nil, nil
	}
	return &categorizedSummaryResolver{summary: *summary}, nil
}

func (r *Resolver) MailSummary(ctx context.Context) (*categorizedSummaryResolver, error) {
	return r.chartSummary(ctx, enum.SummaryMail)
}

func (r *Resolver) WebSummary(ctx context.Context) (*categorizedSummaryResolver, error) {
	return r.chartSummary(ctx, enum.SummaryWeb)
}

func (r *Resolver) HTTPSSummary(ctx context.Context) (*categorizedSummaryResolver, error) {
	return r.chartSummary(ctx, enum.SummaryHTTPS)
}

func (r *Resolver) SSLSummary(ctx context.Context) (*categorizedSummaryResolver, error) {
	return r.chartSummary(ctx, enum.SummarySSL)
}

func (r *Resolver) DmarcSummary(ctx context.Context) (*categorizedSummaryResolver, error) {
	return r.chartSummary(ctx, enum.SummaryDMARC)
}

func (r *Resolver) SPFSummary(ctx context.Context) (*categorizedSummaryResolver, error) {
	return r.chartSummary(ctx, enum.SummarySPF)
}

func (r *Resolver) DKIMSummary(ctx context.Context) (*categorizedSummaryResolver, error) {
	return r.chartSummary(ctx, enum.SummaryDKIM)
}

func (r *Resolver) DmarcPhaseSummary(ctx context.Context) (*categorizedSummaryResolver, error) {
	return r.chartSummary(ctx, enum.SummaryDmarcPhase)
}
