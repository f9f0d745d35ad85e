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
	"github.com/canada-ca/tracker-sub010/internal/utils"
)

var auditLogOrderColumns = map[string]string{
	"timestamp":     "audit_logs.timestamp",
	"initiated-by":  "audit_logs.initiator_user_name",
	"resource-name": "audit_logs.resource",
	"resource-type": "audit_logs.resource_type",
	"action":        "audit_logs.action",
	"organization":  "audit_logs.org_name",
}

type auditLogRepository struct {
	db *gorm.DB
}

func NewAuditLogRepository(db *gorm.DB) interfaces.AuditLogRepository {
	return &auditLogRepository{db: db}
}

func (r *auditLogRepository) Create(ctx context.Context, log *models.AuditLog) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "AuditLogRepository.Create")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	span.LogKV("request.action", log.Action.String(), "request.resource", log.Resource)

	if log.Timestamp.IsZero() {
		log.Timestamp = utils.Now()
	}
	err := r.db.WithContext(ctx).Create(log).Error
	if err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return err
	}
	tracing.TagEntity(span, log.ID)
	return nil
}

func (r *auditLogRepository) List(ctx context.Context, filter interfaces.AuditLogFilter, window pagination.Window) (pagination.Page[*models.AuditLog], error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "AuditLogRepository.List")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	tracing.LogObjectAsJson(span, "request.filter", filter)

	query := r.db.WithContext(ctx).Model(&models.AuditLog{})
	if !filter.AllOrgs {
		query = query.Where("audit_logs.org_id IN ?", filter.OrgIDs)
	}
	if len(filter.Actions) > 0 {
		query = query.Where("audit_logs.action IN ?", filter.Actions)
	}
	if len(filter.Resources) > 0 {
		query = query.Where("audit_logs.resource_type IN ?", filter.Resources)
	}
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where("audit_logs.resource ILIKE ? OR audit_logs.initiator_user_name ILIKE ?", pattern, pattern)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return pagination.Page[*models.AuditLog]{}, err
	}

	order := filter.Order
	if order.Field == "" {
		order = interfaces.Order{Field: "timestamp", Desc: true}
	}
	spec := newSortSpec("audit_logs", "", auditLogOrderColumns, "timestamp", order)
	var logs []*models.AuditLog
	if err := applyWindow(query, spec, window).Find(&logs).Error; err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return pagination.Page[*models.AuditLog]{}, err
	}
	return pagination.NewPage(window, logs, total), nil
}
