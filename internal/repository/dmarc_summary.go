package repository

import (
	"context"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/canada-ca/tracker-sub010/interfaces"
	"github.com/canada-ca/tracker-sub010/internal/enum"
	"github.com/canada-ca/tracker-sub010/internal/models"
	"github.com/canada-ca/tracker-sub010/internal/pagination"
	"github.com/canada-ca/tracker-sub010/internal/tracing"
	"github.com/canada-ca/tracker-sub010/internal/utils"
)

var dmarcSummaryOrderColumns = map[string]string{
	"domain":         "domains.domain",
	"full-pass":      "dmarc_summaries.full_pass",
	"pass-spf-only":  "dmarc_summaries.pass_spf_only",
	"pass-dkim-only": "dmarc_summaries.pass_dkim_only",
	"fail":           "dmarc_summaries.fail",
	"total-messages": "(dmarc_summaries.full_pass + dmarc_summaries.pass_spf_only + dmarc_summaries.pass_dkim_only + dmarc_summaries.fail)",
}

const dmarcSummaryFrom = `dmarc_summaries JOIN domains ON domains.id = dmarc_summaries.domain_id`

type dmarcSummaryRepository struct {
	db *gorm.DB
}

func NewDmarcSummaryRepository(db *gorm.DB) interfaces.DmarcSummaryRepository {
	return &dmarcSummaryRepository{db: db}
}

// Upsert replaces the totals of the (domain, month, year) period.
func (r *dmarcSummaryRepository) Upsert(ctx context.Context, summary *models.DmarcSummary) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "DmarcSummaryRepository.Upsert")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	span.LogKV("request.domainId", summary.DomainID, "request.month", summary.Month, "request.year", summary.Year)

	now := utils.Now()
	summary.CreatedAt = now
	summary.UpdatedAt = now

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "domain_id"}, {Name: "month"}, {Name: "year"}},
			DoUpdates: clause.AssignmentColumns([]string{"full_pass", "pass_spf_only", "pass_dkim_only", "fail", "updated_at"}),
		}).
		Create(summary).Error
	if err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return err
	}
	return nil
}

func (r *dmarcSummaryRepository) Get(ctx context.Context, domainID string, month, year int) (*models.DmarcSummary, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "DmarcSummaryRepository.Get")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	span.LogKV("request.domainId", domainID, "request.month", month, "request.year", year)

	var summary models.DmarcSummary
	err := r.db.WithContext(ctx).
		Where("domain_id = ? AND month = ? AND year = ?", domainID, month, year).
		First(&summary).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return nil, err
	}
	return &summary, nil
}

// ListByDomain returns the periods starting at or after since, oldest first.
func (r *dmarcSummaryRepository) ListByDomain(ctx context.Context, domainID string, since time.Time) ([]*models.DmarcSummary, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "DmarcSummaryRepository.ListByDomain")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	span.LogKV("request.domainId", domainID, "request.since", since)

	period := since.Year()*12 + int(since.Month())
	var summaries []*models.DmarcSummary
	err := r.db.WithContext(ctx).
		Where("domain_id = ? AND year * 12 + month >= ?", domainID, period).
		Order("year").Order("month").
		Find(&summaries).Error
	if err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return nil, err
	}
	return summaries, nil
}

func (r *dmarcSummaryRepository) List(ctx context.Context, filter interfaces.DmarcSummaryFilter, window pagination.Window) (pagination.Page[*models.DmarcSummary], error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "DmarcSummaryRepository.List")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	tracing.LogObjectAsJson(span, "request.filter", filter)

	query := r.db.WithContext(ctx).
		Model(&models.DmarcSummary{}).
		Joins("JOIN domains ON domains.id = dmarc_summaries.domain_id").
		Where("dmarc_summaries.month = ? AND dmarc_summaries.year = ?", filter.Month, filter.Year)
	if !filter.AllDomains {
		query = query.Where(`dmarc_summaries.domain_id IN (
			SELECT claims.domain_id FROM claims
			JOIN affiliations ON affiliations.org_id = claims.org_id
			WHERE claims.dmarc_owner = ? AND affiliations.user_id = ? AND affiliations.permission <> ?)`,
			true, filter.UserID, enum.RolePending)
	}
	if filter.Search != "" {
		query = query.Where("domains.domain ILIKE ?", likePattern(filter.Search))
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return pagination.Page[*models.DmarcSummary]{}, err
	}

	spec := newSortSpec("dmarc_summaries", dmarcSummaryFrom, dmarcSummaryOrderColumns, "domain", filter.Order)
	var summaries []*models.DmarcSummary
	if err := applyWindow(query.Select("dmarc_summaries.*"), spec, window).Find(&summaries).Error; err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return pagination.Page[*models.DmarcSummary]{}, err
	}
	return pagination.NewPage(window, summaries, total), nil
}

