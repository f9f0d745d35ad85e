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

type claimRepository struct {
	db *gorm.DB
}

func NewClaimRepository(db *gorm.DB) interfaces.ClaimRepository {
	return &claimRepository{db: db}
}

func (r *claimRepository) Create(ctx context.Context, claim *models.Claim) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "ClaimRepository.Create")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	span.LogKV("request.orgId", claim.OrgID, "request.domainId", claim.DomainID)

	claim.CreatedAt = utils.Now()
	err := r.db.WithContext(ctx).Create(claim).Error
	if err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return err
	}
	tracing.TagEntity(span, claim.ID)
	return nil
}

func (r *claimRepository) Get(ctx context.Context, orgID, domainID string) (*models.Claim, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "ClaimRepository.Get")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	span.LogKV("request.orgId", orgID, "request.domainId", domainID)

	var claim models.Claim
	err := r.db.WithContext(ctx).Where("org_id = ? AND domain_id = ?", orgID, domainID).First(&claim).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return nil, err
	}
	return &claim, nil
}

func (r *claimRepository) ListByDomain(ctx context.Context, domainID string) ([]*models.Claim, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "ClaimRepository.ListByDomain")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	span.LogKV("request.domainId", domainID)

	var claims []*models.Claim
	err := r.db.WithContext(ctx).Where("domain_id = ?", domainID).Find(&claims).Error
	if err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return nil, err
	}
	return claims, nil
}

func (r *claimRepository) CountByOrg(ctx context.Context, orgID string) (int64, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "ClaimRepository.CountByOrg")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)

	var count int64
	err := r.db.WithContext(ctx).Model(&models.Claim{}).Where("org_id = ?", orgID).Count(&count).Error
	if err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return 0, err
	}
	return count, nil
}

// Delete drops the claim. The domain is deleted with its scans and DMARC
// summaries in the same transaction once no organization claims it.
func (r *claimRepository) Delete(ctx context.Context, orgID, domainID string) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "ClaimRepository.Delete")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	span.LogKV("request.orgId", orgID, "request.domainId", domainID)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Claim{}, "org_id = ? AND domain_id = ?", orgID, domainID).Error; err != nil {
			return err
		}
		return deleteUnclaimedDomain(tx, domainID)
	})
	if err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return err
	}
	return nil
}

func (r *claimRepository) IsDomainClaimedForUser(ctx context.Context, userID, domainID string) (bool, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "ClaimRepository.IsDomainClaimedForUser")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	span.LogKV("request.userId", userID, "request.domainId", domainID)

	return r.exists(ctx, span, false, userID, domainID)
}

func (r *claimRepository) IsDmarcOwnedForUser(ctx context.Context, userID, domainID string) (bool, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "ClaimRepository.IsDmarcOwnedForUser")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	span.LogKV("request.userId", userID, "request.domainId", domainID)

	return r.exists(ctx, span, true, userID, domainID)
}

func (r *claimRepository) exists(ctx context.Context, span opentracing.Span, dmarcOwner bool, userID, domainID string) (bool, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Claim{}).
		Joins("JOIN affiliations ON affiliations.org_id = claims.org_id").
		Where("claims.domain_id = ? AND affiliations.user_id = ? AND affiliations.permission <> ?", domainID, userID, enum.RolePending)
	if dmarcOwner {
		query = query.Where("claims.dmarc_owner = ?", true)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return false, err
	}
	return count > 0, nil
}

// deleteUnclaimedDomain deletes the domain, its scans and its DMARC summaries
// when no claim on it remains. The domain row is locked before claims are
// counted.
func deleteUnclaimedDomain(tx *gorm.DB, domainID string) error {
	var locked []*models.Domain
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", domainID).Find(&locked).Error
	if err != nil || len(locked) == 0 {
		return err
	}

	var remaining int64
	if err := tx.Model(&models.Claim{}).Where("domain_id = ?", domainID).Count(&remaining).Error; err != nil {
		return err
	}
	if remaining > 0 {
		return nil
	}

	if err := tx.Delete(&models.Scan{}, "domain_id = ?", domainID).Error; err != nil {
		return errors.Wrap(err, "delete scans")
	}
	if err := tx.Delete(&models.DmarcSummary{}, "domain_id = ?", domainID).Error; err != nil {
		return errors.Wrap(err, "delete dmarc summaries")
	}
	return tx.Delete(&models.Domain{}, "id = ?", domainID).Error
}
