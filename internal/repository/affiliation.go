package repository

import (
	"context"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/canada-ca/tracker-sub010/interfaces"
	"github.com/canada-ca/tracker-sub010/internal/enum"
	"github.com/canada-ca/tracker-sub010/internal/models"
	"github.com/canada-ca/tracker-sub010/internal/pagination"
	"github.com/canada-ca/tracker-sub010/internal/tracing"
	"github.com/canada-ca/tracker-sub010/internal/utils"
)

var affiliationOrderColumns = map[string]string{
	"user-username":    "users.user_name",
	"user-displayname": "users.display_name",
	"permission":       "affiliations.permission",
	"org-name":         "organizations.name",
	"org-acronym":      "organizations.acronym",
}

const affiliationFrom = `affiliations
	JOIN users ON users.id = affiliations.user_id
	JOIN organizations ON organizations.id = affiliations.org_id`

type affiliationRepository struct {
	db *gorm.DB
}

func NewAffiliationRepository(db *gorm.DB) interfaces.AffiliationRepository {
	return &affiliationRepository{db: db}
}

func (r *affiliationRepository) Create(ctx context.Context, affiliation *models.Affiliation) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "AffiliationRepository.Create")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	span.LogKV("request.userId", affiliation.UserID, "request.orgId", affiliation.OrgID)

	now := utils.Now()
	affiliation.CreatedAt = now
	affiliation.UpdatedAt = now

	err := r.db.WithContext(ctx).Create(affiliation).Error
	if err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return err
	}
	tracing.TagEntity(span, affiliation.ID)
	return nil
}

func (r *affiliationRepository) Get(ctx context.Context, userID, orgID string) (*models.Affiliation, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "AffiliationRepository.Get")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	span.LogKV("request.userId", userID, "request.orgId", orgID)

	var affiliation models.Affiliation
	err := r.db.WithContext(ctx).Where("user_id = ? AND org_id = ?", userID, orgID).First(&affiliation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return nil, err
	}
	return &affiliation, nil
}

func (r *affiliationRepository) GetByID(ctx context.Context, id string) (*models.Affiliation, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "AffiliationRepository.GetByID")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	tracing.TagEntity(span, id)

	var affiliation models.Affiliation
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&affiliation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return nil, err
	}
	return &affiliation, nil
}

func (r *affiliationRepository) Save(ctx context.Context, affiliation *models.Affiliation) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "AffiliationRepository.Save")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	tracing.TagEntity(span, affiliation.ID)

	affiliation.UpdatedAt = utils.Now()
	err := r.db.WithContext(ctx).Save(affiliation).Error
	if err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return err
	}
	return nil
}

func (r *affiliationRepository) Delete(ctx context.Context, userID, orgID string) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "AffiliationRepository.Delete")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	span.LogKV("request.userId", userID, "request.orgId", orgID)

	err := r.db.WithContext(ctx).Delete(&models.Affiliation{}, "user_id = ? AND org_id = ?", userID, orgID).Error
	if err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return err
	}
	return nil
}

func (r *affiliationRepository) DeleteByUser(ctx context.Context, userID string) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "AffiliationRepository.DeleteByUser")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	span.LogKV("request.userId", userID)

	err := r.db.WithContext(ctx).Delete(&models.Affiliation{}, "user_id = ?", userID).Error
	if err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return err
	}
	return nil
}

func (r *affiliationRepository) ListByUser(ctx context.Context, userID string) ([]*models.Affiliation, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "AffiliationRepository.ListByUser")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	span.LogKV("request.userId", userID)

	var affiliations []*models.Affiliation
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&affiliations).Error
	if err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return nil, err
	}
	return affiliations, nil
}

func (r *affiliationRepository) ListAdminsByOrg(ctx context.Context, orgID string) ([]*models.Affiliation, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "AffiliationRepository.ListAdminsByOrg")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	span.LogKV("request.orgId", orgID)

	var affiliations []*models.Affiliation
	err := r.db.WithContext(ctx).
		Where("org_id = ? AND permission IN ?", orgID, []enum.Role{enum.RoleAdmin, enum.RoleOwner, enum.RoleSuperAdmin}).
		Find(&affiliations).Error
	if err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return nil, err
	}
	return affiliations, nil
}

func (r *affiliationRepository) HasSuperAdmin(ctx context.Context, userID string) (bool, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "AffiliationRepository.HasSuperAdmin")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	span.LogKV("request.userId", userID)

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Affiliation{}).
		Where("user_id = ? AND permission = ?", userID, enum.RoleSuperAdmin).
		Count(&count).Error
	if err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return false, err
	}
	return count > 0, nil
}

func (r *affiliationRepository) IsAdminForUser(ctx context.Context, adminID, userID string) (bool, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "AffiliationRepository.IsAdminForUser")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	span.LogKV("request.adminId", adminID, "request.userId", userID)

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Affiliation{}).
		Where("user_id = ? AND permission IN ?", adminID, []enum.Role{enum.RoleAdmin, enum.RoleOwner, enum.RoleSuperAdmin}).
		Where("org_id IN (SELECT org_id FROM affiliations WHERE user_id = ? AND permission <> ?)", userID, enum.RolePending).
		Count(&count).Error
	if err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return false, err
	}
	return count > 0, nil
}

func (r *affiliationRepository) List(ctx context.Context, filter interfaces.AffiliationFilter, window pagination.Window) (pagination.Page[*models.Affiliation], error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "AffiliationRepository.List")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	tracing.LogObjectAsJson(span, "request.filter", filter)

	query := r.db.WithContext(ctx).
		Model(&models.Affiliation{}).
		Joins("JOIN users ON users.id = affiliations.user_id").
		Joins("JOIN organizations ON organizations.id = affiliations.org_id")
	if filter.OrgID != "" {
		query = query.Where("affiliations.org_id = ?", filter.OrgID)
	}
	if filter.UserID != "" {
		query = query.Where("affiliations.user_id = ?", filter.UserID)
	}
	if !filter.IncludePending {
		query = query.Where("affiliations.permission <> ?", enum.RolePending)
	}
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where(
			"users.user_name ILIKE ? OR users.display_name ILIKE ? OR organizations.name ILIKE ? OR organizations.acronym ILIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return pagination.Page[*models.Affiliation]{}, err
	}

	spec := newSortSpec("affiliations", affiliationFrom, affiliationOrderColumns, "user-username", filter.Order)
	var affiliations []*models.Affiliation
	if err := applyWindow(query.Select("affiliations.*"), spec, window).Find(&affiliations).Error; err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return pagination.Page[*models.Affiliation]{}, err
	}
	return pagination.NewPage(window, affiliations, total), nil
}
