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

var organizationOrderColumns = map[string]string{
	"name":     "organizations.name",
	"acronym":  "organizations.acronym",
	"slug":     "organizations.slug",
	"zone":     "organizations.zone",
	"sector":   "organizations.sector",
	"country":  "organizations.country",
	"province": "organizations.province",
	"city":     "organizations.city",
	"verified": "organizations.verified",
}

type organizationRepository struct {
	db *gorm.DB
}

func NewOrganizationRepository(db *gorm.DB) interfaces.OrganizationRepository {
	return &organizationRepository{db: db}
}

func (r *organizationRepository) Create(ctx context.Context, org *models.Organization) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "OrganizationRepository.Create")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)

	now := utils.Now()
	org.CreatedAt = now
	org.UpdatedAt = now

	err := r.db.WithContext(ctx).Create(org).Error
	if err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return err
	}
	tracing.TagEntity(span, org.ID)
	return nil
}

func (r *organizationRepository) GetByID(ctx context.Context, id string) (*models.Organization, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "OrganizationRepository.GetByID")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	tracing.TagEntity(span, id)

	return r.first(ctx, span, "id = ?", id)
}

func (r *organizationRepository) GetBySlug(ctx context.Context, slug string) (*models.Organization, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "OrganizationRepository.GetBySlug")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	span.LogKV("request.slug", slug)

	return r.first(ctx, span, "slug = ?", slug)
}

func (r *organizationRepository) first(ctx context.Context, span opentracing.Span, query string, args ...interface{}) (*models.Organization, error) {
	var org models.Organization
	err := r.db.WithContext(ctx).Where(query, args...).First(&org).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return nil, err
	}
	return &org, nil
}

func (r *organizationRepository) GetByIDs(ctx context.Context, ids []string) ([]*models.Organization, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "OrganizationRepository.GetByIDs")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	span.LogKV("request.count", len(ids))

	var orgs []*models.Organization
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&orgs).Error
	if err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return nil, err
	}
	return orgs, nil
}

func (r *organizationRepository) GetBySlugs(ctx context.Context, slugs []string) ([]*models.Organization, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "OrganizationRepository.GetBySlugs")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	span.LogKV("request.count", len(slugs))

	var orgs []*models.Organization
	err := r.db.WithContext(ctx).Where("slug IN ?", slugs).Find(&orgs).Error
	if err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return nil, err
	}
	return orgs, nil
}

func (r *organizationRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "OrganizationRepository.SlugExists")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)

	var count int64
	err := r.db.WithContext(ctx).Model(&models.Organization{}).Where("slug = ?", slug).Count(&count).Error
	if err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return false, err
	}
	return count > 0, nil
}

func (r *organizationRepository) Save(ctx context.Context, org *models.Organization) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "OrganizationRepository.Save")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	tracing.TagEntity(span, org.ID)

	org.UpdatedAt = utils.Now()
	err := r.db.WithContext(ctx).Save(org).Error
	if err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return err
	}
	return nil
}

// Delete removes the organization with its claims and affiliations in one
// transaction. Domains no other organization claims go with it.
func (r *organizationRepository) Delete(ctx context.Context, id string) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "OrganizationRepository.Delete")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	tracing.TagEntity(span, id)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var domainIDs []string
		if err := tx.Model(&models.Claim{}).Where("org_id = ?", id).Pluck("domain_id", &domainIDs).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Claim{}, "org_id = ?", id).Error; err != nil {
			return errors.Wrap(err, "delete claims")
		}
		for _, domainID := range domainIDs {
			if err := deleteUnclaimedDomain(tx, domainID); err != nil {
				return err
			}
		}
		if err := tx.Delete(&models.Affiliation{}, "org_id = ?", id).Error; err != nil {
			return errors.Wrap(err, "delete affiliations")
		}
		return tx.Delete(&models.Organization{}, "id = ?", id).Error
	})
	if err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return err
	}
	return nil
}

func (r *organizationRepository) List(ctx context.Context, filter interfaces.OrganizationFilter, window pagination.Window) (pagination.Page[*models.Organization], error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "OrganizationRepository.List")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	tracing.LogObjectAsJson(span, "request.filter", filter)

	query := r.db.WithContext(ctx).Model(&models.Organization{})
	if !filter.AllOrgs {
		permissions := []enum.Role{enum.RoleUser, enum.RoleAdmin, enum.RoleOwner, enum.RoleSuperAdmin}
		if filter.AdminOnly {
			permissions = []enum.Role{enum.RoleAdmin, enum.RoleOwner, enum.RoleSuperAdmin}
		}
		query = query.Where(
			"organizations.id IN (SELECT org_id FROM affiliations WHERE user_id = ? AND permission IN ?)",
			filter.UserID, permissions,
		)
	}
	if !filter.IncludeSuperAdminOrg {
		query = query.Where("organizations.slug <> ?", models.SuperAdminOrgSlug)
	}
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where("organizations.name ILIKE ? OR organizations.acronym ILIKE ?", pattern, pattern)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return pagination.Page[*models.Organization]{}, err
	}

	spec := newSortSpec("organizations", "", organizationOrderColumns, "name", filter.Order)
	var orgs []*models.Organization
	if err := applyWindow(query, spec, window).Find(&orgs).Error; err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return pagination.Page[*models.Organization]{}, err
	}
	return pagination.NewPage(window, orgs, total), nil
}

func (r *organizationRepository) ListAll(ctx context.Context) ([]*models.Organization, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "OrganizationRepository.ListAll")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)

	var orgs []*models.Organization
	err := r.db.WithContext(ctx).Order("id").Find(&orgs).Error
	if err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return nil, err
	}
	return orgs, nil
}

func (r *organizationRepository) UpdateSummaries(ctx context.Context, id string, summaries models.OrganizationSummaries) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "OrganizationRepository.UpdateSummaries")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	tracing.TagEntity(span, id)

	err := r.db.WithContext(ctx).
		Model(&models.Organization{}).
		Where("id = ?", id).
		UpdateColumn("summaries", summaries).
		Error
	if err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return err
	}
	return nil
}
