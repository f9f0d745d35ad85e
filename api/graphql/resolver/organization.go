package resolver

import (
	"context"

	"github.com/graph-gophers/graphql-go"

	"github.com/canada-ca/tracker-sub010/dto"
	"github.com/canada-ca/tracker-sub010/internal/models"
	"github.com/canada-ca/tracker-sub010/services/affiliation"
	domain_service "github.com/canada-ca/tracker-sub010/services/domain"
	"github.com/canada-ca/tracker-sub010/services/organization"
)

type organizationResolver struct {
	r   *Resolver
	org *models.Organization
}

func (r *Resolver) organization(org *models.Organization) *organizationResolver {
	return &organizationResolver{r: r, org: org}
}

func organizationID(org *models.Organization) string { return org.ID }

func (o *organizationResolver) ID() graphql.ID    { return globalID(organization.CursorType, o.org.ID) }
func (o *organizationResolver) Slug() string      { return o.org.Slug }
func (o *organizationResolver) Name() string      { return o.org.Name }
func (o *organizationResolver) Acronym() string   { return o.org.Acronym }
func (o *organizationResolver) Zone() *string     { return optionalString(o.org.Zone) }
func (o *organizationResolver) Sector() *string   { return optionalString(o.org.Sector) }
func (o *organizationResolver) Country() *string  { return optionalString(o.org.Country) }
func (o *organizationResolver) Province() *string { return optionalString(o.org.Province) }
func (o *organizationResolver) City() *string     { return optionalString(o.org.City) }
func (o *organizationResolver) Verified() bool    { return o.org.Verified }

func (o *organizationResolver) Summaries() *organizationSummaryResolver {
	if o.org.Summaries == nil {
		return nil
	}
	return &organizationSummaryResolver{summaries: o.org.Summaries}
}

func (o *organizationResolver) DomainCount(ctx context.Context) (int32, error) {
	span, ctx := startSpan(ctx, "OrganizationResolver.DomainCount")
	defer span.Finish()

	count, err := o.r.services.OrganizationService.DomainCount(ctx, o.org.ID)
	if err != nil {
		return 0, fail(ctx, span, err)
	}
	return int32(count), nil
}

func (o *organizationResolver) UserHasPermission(ctx context.Context) (bool, error) {
	span, ctx := startSpan(ctx, "OrganizationResolver.UserHasPermission")
	defer span.Finish()

	role, err := o.r.services.PermissionService.CheckPermission(ctx, o.org.ID)
	if err != nil {
		return false, fail(ctx, span, err)
	}
	return role.Rank() > 0, nil
}

func (o *organizationResolver) Domains(ctx context.Context, args struct {
	ConnectionArgs
	OrderBy *OrderInput
}) (*connectionResolver[*domainResolver], error) {
	span, ctx := startSpan(ctx, "OrganizationResolver.Domains")
	defer span.Finish()

	page, err := o.r.services.DomainService.FindDomainsForOrganization(ctx, o.org.ID, args.withOrder(args.OrderBy))
	if err != nil {
		return nil, fail(ctx, span, err)
	}
	return newConnection(page, domain_service.CursorType, domainID, o.r.domain), nil
}

func (o *organizationResolver) Affiliations(ctx context.Context, args struct {
	ConnectionArgs
	OrderBy        *OrderInput
	IncludePending *bool
}) (*connectionResolver[*affiliationResolver], error) {
	span, ctx := startSpan(ctx, "OrganizationResolver.Affiliations")
	defer span.Finish()

	includePending := args.IncludePending != nil && *args.IncludePending
	page, err := o.r.services.AffiliationService.FindAffiliationsForOrganization(ctx, o.org.ID, args.withOrder(args.OrderBy), includePending)
	if err != nil {
		return nil, fail(ctx, span, err)
	}
	return newConnection(page, affiliation.CursorType, affiliationID, o.r.affiliation), nil
}

func (r *Resolver) FindMyOrganizations(ctx context.Context, args struct {
	ConnectionArgs
	OrderBy              *OrderInput
	IsAdmin              *bool
	IncludeSuperAdminOrg *bool
}) (*connectionResolver[*organizationResolver], error) {
	span, ctx := startSpan(ctx, "Resolver.FindMyOrganizations")
	defer span.Finish()

	isAdmin := args.IsAdmin != nil && *args.IsAdmin
	includeSuperAdminOrg := args.IncludeSuperAdminOrg != nil && *args.IncludeSuperAdminOrg
	page, err := r.services.OrganizationService.FindMyOrganizations(ctx, args.withOrder(args.OrderBy), isAdmin, includeSuperAdminOrg)
	if err != nil {
		return nil, fail(ctx, span, err)
	}
	return newConnection(page, organization.CursorType, organizationID, r.organization), nil
}

func (r *Resolver) FindOrganizationBySlug(ctx context.Context, args struct{ OrgSlug string }) (*organizationResolver, error) {
	span, ctx := startSpan(ctx, "Resolver.FindOrganizationBySlug")
	defer span.Finish()

	org, err := r.services.OrganizationService.FindOrganizationBySlug(ctx, args.OrgSlug)
	if err != nil {
		return nil, fail(ctx, span, err)
	}
	return r.organization(org), nil
}

type OrganizationInput struct {
	Name     *string
	Acronym  *string
	Zone     *string
	Sector   *string
	Country  *string
	Province *string
	City     *string
}

func (i OrganizationInput) toDto() dto.OrganizationInput {
	return dto.OrganizationInput{
		Name:     i.Name,
		Acronym:  i.Acronym,
		Zone:     i.Zone,
		Sector:   i.Sector,
		Country:  i.Country,
		Province: i.Province,
		City:     i.City,
	}
}

func (r *Resolver) CreateOrganization(ctx context.Context, args struct{ Input OrganizationInput }) (*resultResolver, error) {
	span, ctx := startSpan(ctx, "Resolver.CreateOrganization")
	defer span.Finish()

	org, err := r.services.OrganizationService.CreateOrganization(ctx, args.Input.toDto())
	if err != nil {
		return mutationResult(ctx, span, nil, err)
	}
	return &resultResolver{org: r.organization(org)}, nil
}

func (r *Resolver) UpdateOrganization(ctx context.Context, args struct {
	ID    graphql.ID
	Input OrganizationInput
}) (*resultResolver, error) {
	span, ctx := startSpan(ctx, "Resolver.UpdateOrganization")
	defer span.Finish()

	org, err := r.services.OrganizationService.UpdateOrganization(ctx, localID(args.ID), args.Input.toDto())
	if err != nil {
		return mutationResult(ctx, span, nil, err)
	}
	return &resultResolver{org: r.organization(org)}, nil
}

func (r *Resolver) RemoveOrganization(ctx context.Context, args struct{ OrgID graphql.ID }) (*resultResolver, error) {
	span, ctx := startSpan(ctx, "Resolver.RemoveOrganization")
	defer span.Finish()

	status, err := r.services.OrganizationService.RemoveOrganization(ctx, localID(args.OrgID))
	return mutationResult(ctx, span, statusResult(status), err)
}

func (r *Resolver) VerifyOrganization(ctx context.Context, args struct{ OrgID graphql.ID }) (*resultResolver, error) {
	span, ctx := startSpan(ctx, "Resolver.VerifyOrganization")
	defer span.Finish()

	status, err := r.services.OrganizationService.VerifyOrganization(ctx, localID(args.OrgID))
	return mutationResult(ctx, span, statusResult(status), err)
}
