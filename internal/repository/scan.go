package repository

import (
	"context"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/canada-ca/tracker-sub010/interfaces"
	"github.com/canada-ca/tracker-sub010/internal/models"
	"github.com/canada-ca/tracker-sub010/internal/pagination"
	"github.com/canada-ca/tracker-sub010/internal/tracing"
)

type scanRepository struct {
	db *gorm.DB
}

func NewScanRepository(db *gorm.DB) interfaces.ScanRepository {
	return &scanRepository{db: db}
}

func (r *scanRepository) Create(ctx context.Context, scan *models.Scan) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "ScanRepository.Create")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	span.LogKV("request.domainId", scan.DomainID, "request.scanType", scan.ScanType.String())

	err := r.db.WithContext(ctx).Create(scan).Error
	if err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return err
	}
	tracing.TagEntity(span, scan.ID)
	return nil
}

func (r *scanRepository) List(ctx context.Context, filter interfaces.ScanFilter, window pagination.Window) (pagination.Page[*models.Scan], error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "ScanRepository.List")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	tracing.LogObjectAsJson(span, "request.filter", filter)

	query := r.db.WithContext(ctx).
		Model(&models.Scan{}).
		Where("scans.domain_id = ? AND scans.scan_type = ?", filter.DomainID, filter.ScanType)
	if filter.StartDate != nil {
		query = query.Where("scans.scanned_at >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("scans.scanned_at <= ?", *filter.EndDate)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return pagination.Page[*models.Scan]{}, err
	}

	spec := sortSpec{Table: "scans", Expr: "scans.scanned_at", From: "scans", Desc: filter.Desc}
	var scans []*models.Scan
	if err := applyWindow(query, spec, window).Find(&scans).Error; err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return pagination.Page[*models.Scan]{}, err
	}
	return pagination.NewPage(window, scans, total), nil
}

