package repository

import (
	"context"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/canada-ca/tracker-sub010/interfaces"
	"github.com/canada-ca/tracker-sub010/internal/enum"
	"github.com/canada-ca/tracker-sub010/internal/models"
	"github.com/canada-ca/tracker-sub010/internal/tracing"
	"github.com/canada-ca/tracker-sub010/internal/utils"
)

type chartSummaryRepository struct {
	db *gorm.DB
}

func NewChartSummaryRepository(db *gorm.DB) interfaces.ChartSummaryRepository {
	return &chartSummaryRepository{db: db}
}

func (r *chartSummaryRepository) Save(ctx context.Context, summary *models.ChartSummary) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "ChartSummaryRepository.Save")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	span.LogKV("request.kind", summary.Kind.String())

	summary.UpdatedAt = utils.Now()
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "kind"}},
			DoUpdates: clause.AssignmentColumns([]string{"summary", "updated_at"}),
		}).
		Create(summary).Error
	if err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return err
	}
	return nil
}

func (r *chartSummaryRepository) Get(ctx context.Context, kind enum.SummaryKind) (*models.ChartSummary, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "ChartSummaryRepository.Get")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	span.LogKV("request.kind", kind.String())

	var summary models.ChartSummary
	err := r.db.WithContext(ctx).Where("kind = ?", kind).First(&summary).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return nil, err
	}
	return &summary, nil
}
