package repository

import (
	"context"
	"time"

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

var domainOrderColumns = map[string]string{
	"domain":       "domains.domain",
	"last-ran":     "domains.last_ran",
	"dkim-status":  "domains.status_dkim",
	"dmarc-status": "domains.status_dmarc",
	"https-status": "domains.status_https",
	"spf-status":   "domains.status_spf",
	"ssl-status":   "domains.status_ssl",
	"dmarc-phase":  "domains.dmarc_phase",
}

var statusColumns = map[enum.ScanType]string{
	enum.ScanDKIM:  "status_dkim",
	enum.ScanDMARC: "status_dmarc",
	enum.ScanSPF:   "status_spf",
	enum.ScanHTTPS: "status_https",
	enum.ScanSSL:   "status_ssl",
}

// claimedForUser restricts to domains claimed by an org the user is affiliated with.
const claimedForUser = `domains.id IN (
	SELECT claims.domain_id FROM claims
	JOIN affiliations ON affiliations.org_id = claims.org_id
	WHERE affiliations.user_id = ? AND affiliations.permission <> ?)`

type domainRepository struct {
	db *gorm.DB
}

func NewDomainRepository(db *gorm.DB) interfaces.DomainRepository {
	return &domainRepository{db: db}
}

func (r *domainRepository) Create(ctx context.Context, domain *models.Domain) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "DomainRepository.Create")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	span.LogKV("request.domain", domain.Domain)

	now := utils.Now()
	domain.CreatedAt = now
	domain.UpdatedAt = now

	err := r.db.WithContext(ctx).Create(domain).Error
	if err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return err
	}
	tracing.TagEntity(span, domain.ID)
	return nil
}

func (r *domainRepository) GetByID(ctx context.Context, id string) (*models.Domain, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "DomainRepository.GetByID")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	tracing.TagEntity(span, id)

	var domain models.Domain
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&domain).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return nil, err
	}
	return &domain, nil
}

func (r *domainRepository) GetByIDs(ctx context.Context, ids []string) ([]*models.Domain, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "DomainRepository.GetByIDs")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	span.LogKV("request.count", len(ids))

	var domains []*models.Domain
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&domains).Error
	if err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return nil, err
	}
	return domains, nil
}

func (r *domainRepository) GetByDomains(ctx context.Context, names []string) ([]*models.Domain, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "DomainRepository.GetByDomains")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	span.LogKV("request.count", len(names))

	var domains []*models.Domain
	err := r.db.WithContext(ctx).Where("domain IN ?", names).Find(&domains).Error
	if err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return nil, err
	}
	return domains, nil
}

func (r *domainRepository) GetByDomain(ctx context.Context, name string) (*models.Domain, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "DomainRepository.GetByDomain")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	span.LogKV("request.domain", name)

	var domain models.Domain
	err := r.db.WithContext(ctx).Where("domain = ?", name).First(&domain).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return nil, err
	}
	return &domain, nil
}

func (r *domainRepository) Save(ctx context.Context, domain *models.Domain) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "DomainRepository.Save")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	tracing.TagEntity(span, domain.ID)

	domain.UpdatedAt = utils.Now()
	err := r.db.WithContext(ctx).Save(domain).Error
	if err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return err
	}
	return nil
}

func (r *domainRepository) List(ctx context.Context, filter interfaces.DomainFilter, window pagination.Window) (pagination.Page[*models.Domain], error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "DomainRepository.List")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	tracing.LogObjectAsJson(span, "request.filter", filter)

	query := r.db.WithContext(ctx).Model(&models.Domain{})
	if filter.OrgID != "" {
		query = query.Where("domains.id IN (SELECT domain_id FROM claims WHERE org_id = ?)", filter.OrgID)
	}
	if !filter.AllDomains {
		query = query.Where(claimedForUser, filter.UserID, enum.RolePending)
	}
	if filter.Search != "" {
		query = query.Where("domains.domain ILIKE ?", likePattern(filter.Search))
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return pagination.Page[*models.Domain]{}, err
	}

	spec := newSortSpec("domains", "", domainOrderColumns, "domain", filter.Order)
	var domains []*models.Domain
	if err := applyWindow(query, spec, window).Find(&domains).Error; err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return pagination.Page[*models.Domain]{}, err
	}
	return pagination.NewPage(window, domains, total), nil
}

func (r *domainRepository) ListByOrg(ctx context.Context, orgID string) ([]*models.Domain, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "DomainRepository.ListByOrg")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	span.LogKV("request.orgId", orgID)

	var domains []*models.Domain
	err := r.db.WithContext(ctx).
		Where("id IN (SELECT domain_id FROM claims WHERE org_id = ?)", orgID).
		Order("domain").
		Find(&domains).Error
	if err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return nil, err
	}
	return domains, nil
}

func (r *domainRepository) ListAll(ctx context.Context) ([]*models.Domain, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "DomainRepository.ListAll")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)

	var domains []*models.Domain
	err := r.db.WithContext(ctx).Order("domain").Find(&domains).Error
	if err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return nil, err
	}
	return domains, nil
}

// UpdateScanStatus records the outcome of one scan type. The DMARC phase is
// only written when phase is set.
func (r *domainRepository) UpdateScanStatus(ctx context.Context, id string, scanType enum.ScanType, status enum.Status, phase enum.DmarcPhase, ranAt time.Time) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "DomainRepository.UpdateScanStatus")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	tracing.TagEntity(span, id)
	span.LogKV("request.scanType", scanType.String(), "request.status", status.String())

	column, ok := statusColumns[scanType]
	if !ok {
		err := errors.Wrapf(ErrInvalidInput, "no status column for scan type %q", scanType)
		tracing.TraceErr(span, err)
		return err
	}

	updates := map[string]interface{}{
		column:       status,
		"last_ran":   ranAt,
		"updated_at": utils.Now(),
	}
	if phase != "" {
		updates["dmarc_phase"] = phase
	}

	err := r.db.WithContext(ctx).Model(&models.Domain{}).Where("id = ?", id).UpdateColumns(updates).Error
	if err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return err
	}
	return nil
}

func (r *domainRepository) SetHasDmarcReport(ctx context.Context, id string) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "DomainRepository.SetHasDmarcReport")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	tracing.TagEntity(span, id)

	err := r.db.WithContext(ctx).
		Model(&models.Domain{}).
		Where("id = ? AND has_dmarc_report = ?", id, false).
		UpdateColumn("has_dmarc_report", true).
		Error
	if err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return err
	}
	return nil
}
