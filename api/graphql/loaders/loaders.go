package loaders

import (
	"context"
	"time"

	"github.com/opentracing/opentracing-go"

	tracker_errors "github.com/canada-ca/tracker-sub010/internal/errors"
	"github.com/canada-ca/tracker-sub010/internal/models"
	"github.com/canada-ca/tracker-sub010/internal/repository"
	"github.com/canada-ca/tracker-sub010/internal/tracing"
)

const (
	defaultWait     = 2 * time.Millisecond
	defaultMaxBatch = 100
)

type loadersKey struct{}

// Loaders are the request scoped loaders used by field resolvers.
type Loaders struct {
	UserByID     *Loader[string, *models.User]
	OrgByID      *Loader[string, *models.Organization]
	OrgBySlug    *Loader[string, *models.Organization]
	DomainByID   *Loader[string, *models.Domain]
	DomainByName *Loader[string, *models.Domain]
}

func NewLoaders(repos *repository.Repositories) *Loaders {
	return &Loaders{
		UserByID: NewLoader(func(ctx context.Context, ids []string) (map[string]*models.User, error) {
			users, err := traced(ctx, "Loaders.UserByID", func(ctx context.Context) ([]*models.User, error) {
				return repos.UserRepository.GetByIDs(ctx, ids)
			})
			return index(users, func(u *models.User) string { return u.ID }), err
		}, defaultWait, defaultMaxBatch),
		OrgByID: NewLoader(func(ctx context.Context, ids []string) (map[string]*models.Organization, error) {
			orgs, err := traced(ctx, "Loaders.OrgByID", func(ctx context.Context) ([]*models.Organization, error) {
				return repos.OrganizationRepository.GetByIDs(ctx, ids)
			})
			return index(orgs, func(o *models.Organization) string { return o.ID }), err
		}, defaultWait, defaultMaxBatch),
		OrgBySlug: NewLoader(func(ctx context.Context, slugs []string) (map[string]*models.Organization, error) {
			orgs, err := traced(ctx, "Loaders.OrgBySlug", func(ctx context.Context) ([]*models.Organization, error) {
				return repos.OrganizationRepository.GetBySlugs(ctx, slugs)
			})
			return index(orgs, func(o *models.Organization) string { return o.Slug }), err
		}, defaultWait, defaultMaxBatch),
		DomainByID: NewLoader(func(ctx context.Context, ids []string) (map[string]*models.Domain, error) {
			domains, err := traced(ctx, "Loaders.DomainByID", func(ctx context.Context) ([]*models.Domain, error) {
				return repos.DomainRepository.GetByIDs(ctx, ids)
			})
			return index(domains, func(d *models.Domain) string { return d.ID }), err
		}, defaultWait, defaultMaxBatch),
		DomainByName: NewLoader(func(ctx context.Context, names []string) (map[string]*models.Domain, error) {
			domains, err := traced(ctx, "Loaders.DomainByName", func(ctx context.Context) ([]*models.Domain, error) {
				return repos.DomainRepository.GetByDomains(ctx, names)
			})
			return index(domains, func(d *models.Domain) string { return d.Domain }), err
		}, defaultWait, defaultMaxBatch),
	}
}

func WithLoaders(ctx context.Context, loaders *Loaders) context.Context {
	return context.WithValue(ctx, loadersKey{}, loaders)
}

func For(ctx context.Context) (*Loaders, error) {
	loaders, ok := ctx.Value(loadersKey{}).(*Loaders)
	if !ok || loaders == nil {
		return nil, tracker_errors.ErrLoadersNotSet
	}
	return loaders, nil
}

func traced[T any](ctx context.Context, operation string, fetch func(ctx context.Context) (T, error)) (T, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, operation)
	defer span.Finish()
	tracing.SetDefaultGraphqlSpanTags(ctx, span)

	value, err := fetch(ctx)
	if err != nil {
		tracing.TraceErr(span, err)
	}
	return value, err
}

func index[V any](values []V, key func(V) string) map[string]V {
	indexed := make(map[string]V, len(values))
	for _, v := range values {
		indexed[key(v)] = v
	}
	return indexed
}
