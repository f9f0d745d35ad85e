package resolver

import (
	"context"

	"github.com/graph-gophers/graphql-go"

	"github.com/canada-ca/tracker-sub010/dto"
	"github.com/canada-ca/tracker-sub010/internal/enum"
	"github.com/canada-ca/tracker-sub010/internal/models"
	"github.com/canada-ca/tracker-sub010/services/affiliation"
)

const userType = "User"

type personalUserResolver struct {
	r    *Resolver
	user *models.User
}

func (u *personalUserResolver) ID() graphql.ID        { return globalID(userType, u.user.ID) }
func (u *personalUserResolver) UserName() string      { return u.user.UserName }
func (u *personalUserResolver) DisplayName() string   { return u.user.DisplayName }
func (u *personalUserResolver) PreferredLang() string { return u.user.PreferredLang.GraphQL() }
func (u *personalUserResolver) TfaSendMethod() string { return u.user.TfaSendMethod.GraphQL() }
func (u *personalUserResolver) EmailValidated() bool  { return u.user.EmailValidated }
func (u *personalUserResolver) InsideUser() bool      { return u.user.InsideUser }

func (u *personalUserResolver) Affiliations(ctx context.Context, args struct {
	ConnectionArgs
	OrderBy *OrderInput
}) (*connectionResolver[*affiliationResolver], error) {
	span, ctx := startSpan(ctx, "PersonalUserResolver.Affiliations")
	defer span.Finish()

	page, err := u.r.services.AffiliationService.FindAffiliationsForUser(ctx, u.user.ID, args.withOrder(args.OrderBy))
	if err != nil {
		return nil, fail(ctx, span, err)
	}
	return newConnection(page, affiliation.CursorType, affiliationID, u.r.affiliation), nil
}

type sharedUserResolver struct {
	user *models.User
}

func (u *sharedUserResolver) ID() graphql.ID      { return globalID(userType, u.user.ID) }
func (u *sharedUserResolver) UserName() string    { return u.user.UserName }
func (u *sharedUserResolver) DisplayName() string { return u.user.DisplayName }

func (r *Resolver) FindMe(ctx context.Context) (*personalUserResolver, error) {
	span, ctx := startSpan(ctx, "Resolver.FindMe")
	defer span.Finish()

	user, err := r.services.UserService.FindMe(ctx)
	if err != nil {
		return nil, fail(ctx, span, err)
	}
	return &personalUserResolver{r: r, user: user}, nil
}

func (r *Resolver) IsUserAdmin(ctx context.Context, args struct{ OrgID *graphql.ID }) (bool, error) {
	span, ctx := startSpan(ctx, "Resolver.IsUserAdmin")
	defer span.Finish()

	isAdmin, err := r.services.UserService.IsUserAdmin(ctx, optionalLocalID(args.OrgID))
	if err != nil {
		return false, fail(ctx, span, err)
	}
	return isAdmin, nil
}

func (r *Resolver) IsUserSuperAdmin(ctx context.Context) (bool, error) {
	span, ctx := startSpan(ctx, "Resolver.IsUserSuperAdmin")
	defer span.Finish()

	isSuperAdmin, err := r.services.UserService.IsUserSuperAdmin(ctx)
	if err != nil {
		return false, fail(ctx, span, err)
	}
	return isSuperAdmin, nil
}

type UpdateUserProfileInput struct {
	DisplayName   *string
	UserName      *string
	PreferredLang *string
	TfaSendMethod *string
}

func (r *Resolver) UpdateUserProfile(ctx context.Context, args struct{ Input UpdateUserProfileInput }) (*resultResolver, error) {
	span, ctx := startSpan(ctx, "Resolver.UpdateUserProfile")
	defer span.Finish()

	input := dto.UpdateUserProfileInput{
		DisplayName: args.Input.DisplayName,
		UserName:    args.Input.UserName,
	}
	if args.Input.PreferredLang != nil {
		lang := enum.LanguageFromGraphQL(*args.Input.PreferredLang)
		input.PreferredLang = &lang
	}
	if args.Input.TfaSendMethod != nil {
		method := enum.TfaSendMethodFromGraphQL(*args.Input.TfaSendMethod)
		input.TfaSendMethod = &method
	}

	user, err := r.services.UserService.UpdateUserProfile(ctx, input)
	if err != nil {
		return mutationResult(ctx, span, nil, err)
	}
	return &resultResolver{user: &personalUserResolver{r: r, user: user}}, nil
}

func (r *Resolver) UpdateUserPassword(ctx context.Context, args struct {
	CurrentPassword        string
	UpdatedPassword        string
	UpdatedPasswordConfirm string
}) (*resultResolver, error) {
	span, ctx := startSpan(ctx, "Resolver.UpdateUserPassword")
	defer span.Finish()

	status, err := r.services.UserService.UpdateUserPassword(ctx, args.CurrentPassword, args.UpdatedPassword, args.UpdatedPasswordConfirm)
	return mutationResult(ctx, span, statusResult(status), err)
}

func (r *Resolver) CloseAccount(ctx context.Context, args struct{ UserID *graphql.ID }) (*resultResolver, error) {
	span, ctx := startSpan(ctx, "Resolver.CloseAccount")
	defer span.Finish()

	status, err := r.services.UserService.CloseAccount(ctx, optionalLocalID(args.UserID))
	return mutationResult(ctx, span, statusResult(status), err)
}
