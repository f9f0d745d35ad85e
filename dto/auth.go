package dto

import (
	"github.com/canada-ca/tracker-sub010/internal/enum"
	"github.com/canada-ca/tracker-sub010/internal/models"
)

type SignUpInput struct {
	DisplayName     string
	UserName        string
	Password        string
	ConfirmPassword string
	PreferredLang   enum.Language
	SignUpToken     string
	RememberMe      bool
}

type AuthResult struct {
	AuthToken string
	User      *models.User
}

// SignInResult holds either the tokens of a completed sign in or, when the
// user has TFA enabled, the token to pass to authenticate with the code.
type SignInResult struct {
	Auth              *AuthResult
	SendMethod        enum.TfaSendMethod
	AuthenticateToken string
}

type UpdateUserProfileInput struct {
	DisplayName   *string
	UserName      *string
	PreferredLang *enum.Language
	TfaSendMethod *enum.TfaSendMethod
}
