package resolver

import (
	"context"

	"github.com/canada-ca/tracker-sub010/dto"
	"github.com/canada-ca/tracker-sub010/internal/enum"
)

type authResultResolver struct {
	r      *Resolver
	result *dto.AuthResult
}

func (a *authResultResolver) AuthToken() string { return a.result.AuthToken }

func (a *authResultResolver) User() *personalUserResolver {
	return &personalUserResolver{r: a.r, user: a.result.User}
}

type tfaSignInResolver struct {
	sendMethod        enum.TfaSendMethod
	authenticateToken string
}

func (t *tfaSignInResolver) SendMethod() string        { return t.sendMethod.GraphQL() }
func (t *tfaSignInResolver) AuthenticateToken() string { return t.authenticateToken }

func (r *Resolver) authResult(result *dto.AuthResult) *resultResolver {
	return &resultResolver{auth: &authResultResolver{r: r, result: result}}
}

type SignUpInput struct {
	DisplayName     string
	UserName        string
	Password        string
	ConfirmPassword string
	PreferredLang   string
	SignUpToken     *string
	RememberMe      *bool
}

func (r *Resolver) SignUp(ctx context.Context, args struct{ Input SignUpInput }) (*resultResolver, error) {
	span, ctx := startSpan(ctx, "Resolver.SignUp")
	defer span.Finish()

	input := dto.SignUpInput{
		DisplayName:     args.Input.DisplayName,
		UserName:        args.Input.UserName,
		Password:        args.Input.Password,
		ConfirmPassword: args.Input.ConfirmPassword,
		PreferredLang:   enum.LanguageFromGraphQL(args.Input.PreferredLang),
	}
	if args.Input.SignUpToken != nil {
		input.SignUpToken = *args.Input.SignUpToken
	}
	if args.Input.RememberMe != nil {
		input.RememberMe = *args.Input.RememberMe
	}

	result, err := r.services.AuthService.SignUp(ctx, input)
	if err != nil {
		return mutationResult(ctx, span, nil, err)
	}
	return r.authResult(result), nil
}

func (r *Resolver) SignIn(ctx context.Context, args struct {
	UserName   string
	Password   string
	RememberMe *bool
}) (*resultResolver, error) {
	span, ctx := startSpan(ctx, "Resolver.SignIn")
	defer span.Finish()

	rememberMe := args.RememberMe != nil && *args.RememberMe
	result, err := r.services.AuthService.SignIn(ctx, args.UserName, args.Password, rememberMe)
	if err != nil {
		return mutationResult(ctx, span, nil, err)
	}
	if result.Auth != nil {
		return r.authResult(result.Auth), nil
	}
	return &resultResolver{tfa: &tfaSignInResolver{
		sendMethod:        result.SendMethod,
		authenticateToken: result.AuthenticateToken,
	}}, nil
}

func (r *Resolver) Authenticate(ctx context.Context, args struct {
	AuthenticateToken  string
	AuthenticationCode string
}) (*resultResolver, error) {
	span, ctx := startSpan(ctx, "Resolver.Authenticate")
	defer span.Finish()

	result, err := r.services.AuthService.Authenticate(ctx, args.AuthenticateToken, args.AuthenticationCode)
	if err != nil {
		return mutationResult(ctx, span, nil, err)
	}
	return r.authResult(result), nil
}

func (r *Resolver) RefreshTokens(ctx context.Context) (*resultResolver, error) {
	span, ctx := startSpan(ctx, "Resolver.RefreshTokens")
	defer span.Finish()

	result, err := r.services.AuthService.RefreshTokens(ctx)
	if err != nil {
		return mutationResult(ctx, span, nil, err)
	}
	return r.authResult(result), nil
}

func (r *Resolver) SignOut(ctx context.Context) string {
	span, ctx := startSpan(ctx, "Resolver.SignOut")
	defer span.Finish()

	return r.services.AuthService.SignOut(ctx)
}

func (r *Resolver) SendEmailVerification(ctx context.Context, args struct{ UserName string }) string {
	span, ctx := startSpan(ctx, "Resolver.SendEmailVerification")
	defer span.Finish()

	return r.services.AuthService.SendEmailVerification(ctx, args.UserName)
}

func (r *Resolver) VerifyAccount(ctx context.Context, args struct{ VerifyTokenString string }) (*resultResolver, error) {
	span, ctx := startSpan(ctx, "Resolver.VerifyAccount")
	defer span.Finish()

	status, err := r.services.AuthService.VerifyAccount(ctx, args.VerifyTokenString)
	return mutationResult(ctx, span, statusResult(status), err)
}

func (r *Resolver) SendPasswordResetLink(ctx context.Context, args struct{ UserName string }) string {
	span, ctx := startSpan(ctx, "Resolver.SendPasswordResetLink")
	defer span.Finish()

	return r.services.AuthService.SendPasswordResetLink(ctx, args.UserName)
}

func (r *Resolver) ResetPassword(ctx context.Context, args struct {
	ResetToken      string
	Password        string
	ConfirmPassword string
}) (*resultResolver, error) {
	span, ctx := startSpan(ctx, "Resolver.ResetPassword")
	defer span.Finish()

	status, err := r.services.AuthService.ResetPassword(ctx, args.ResetToken, args.Password, args.ConfirmPassword)
	return mutationResult(ctx, span, statusResult(status), err)
}
