package resolver

import (
	"context"

	"github.com/graph-gophers/graphql-go"

	"github.com/canada-ca/tracker-sub010/api/graphql/loaders"
	"github.com/canada-ca/tracker-sub010/internal/enum"
	"github.com/canada-ca/tracker-sub010/internal/models"
	"github.com/canada-ca/tracker-sub010/services/affiliation"
)

type affiliationResolver struct {
	r           *Resolver
	affiliation *models.Affiliation
}

func (r *Resolver) affiliation(a *models.Affiliation) *affiliationResolver {
	return &affiliationResolver{r: r, affiliation: a}
}

func affiliationID(a *models.Affiliation) string { return a.ID }

func (a *affiliationResolver) ID() graphql.ID {
	return globalID(affiliation.CursorType, a.affiliation.ID)
}

func (a *affiliationResolver) Permission() string {
	return a.affiliation.Permission.GraphQL()
}

func (a *affiliationResolver) User(ctx context.Context) (*sharedUserResolver, error) {
	span, ctx := startSpan(ctx, "AffiliationResolver.User")
	defer span.Finish()

	l, err := loaders.For(ctx)
	if err != nil {
		return nil, fail(ctx, span, err)
	}
	user, err := l.UserByID.Load(ctx, a.affiliation.UserID)
	if err != nil {
		return nil, fail(ctx, span, err)
	}
	if user == nil {
		return nil, nil
	}
	return &sharedUserResolver{user: user}, nil
}

func (a *affiliationResolver) Organization(ctx context.Context) (*organizationResolver, error) {
	span, ctx := startSpan(ctx, "AffiliationResolver.Organization")
	defer span.Finish()

	l, err := loaders.For(ctx)
	if err != nil {
		return nil, fail(ctx, span, err)
	}
	org, err := l.OrgByID.Load(ctx, a.affiliation.OrgID)
	if err != nil {
		return nil, fail(ctx, span, err)
	}
	if org == nil {
		return nil, nil
	}
	return a.r.organization(org), nil
}

func (r *Resolver) InviteUserToOrg(ctx context.Context, args struct {
	UserName      string
	OrgID         graphql.ID
	RequestedRole string
}) (*resultResolver, error) {
	span, ctx := startSpan(ctx, "Resolver.InviteUserToOrg")
	defer span.Finish()

	status, err := r.services.AffiliationService.InviteUserToOrg(ctx, args.UserName, localID(args.OrgID), enum.RoleFromGraphQL(args.RequestedRole))
	return mutationResult(ctx, span, statusResult(status), err)
}

func (r *Resolver) UpdateUserRole(ctx context.Context, args struct {
	UserName string
	OrgID    graphql.ID
	Role     string
}) (*resultResolver, error) {
	span, ctx := startSpan(ctx, "Resolver.UpdateUserRole")
	defer span.Finish()

	status, err := r.services.AffiliationService.UpdateUserRole(ctx, args.UserName, localID(args.OrgID), enum.RoleFromGraphQL(args.Role))
	return mutationResult(ctx, span, statusResult(status), err)
}

func (r *Resolver) RemoveUserFromOrg(ctx context.Context, args struct {
	UserID graphql.ID
	OrgID  graphql.ID
}) (*resultResolver, error) {
	span, ctx := startSpan(ctx, "Resolver.RemoveUserFromOrg")
	defer span.Finish()

	status, err := r.services.AffiliationService.RemoveUserFromOrg(ctx, localID(args.UserID), localID(args.OrgID))
	return mutationResult(ctx, span, statusResult(status), err)
}

func (r *Resolver) RequestOrgAffiliation(ctx context.Context, args struct{ OrgID graphql.ID }) (*resultResolver, error) {
	span, ctx := startSpan(ctx, "Resolver.RequestOrgAffiliation")
	defer span.Finish()

	status, err := r.services.AffiliationService.RequestOrgAffiliation(ctx, localID(args.OrgID))
	return mutationResult(ctx, span, statusResult(status), err)
}

func (r *Resolver) LeaveOrganization(ctx context.Context, args struct{ OrgID graphql.ID }) (*resultResolver, error) {
	span, ctx := startSpan(ctx, "Resolver.LeaveOrganization")
	defer span.Finish()

	status, err := r.services.AffiliationService.LeaveOrganization(ctx, localID(args.OrgID))
	return mutationResult(ctx, span, statusResult(status), err)
}
