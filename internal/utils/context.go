package utils

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/canada-ca/tracker-sub010/internal/enum"
)

type CustomContext struct {
	AppSource string
	UserId    string
	// TokenError is set when a bearer token was supplied but did not verify.
	TokenError bool
	Language   enum.Language
	IP         string
	UserAgent  string
	Request    *http.Request
	Writer     http.ResponseWriter
}

type customContextKey struct{}

const (
	GinKeyUserId     = "UserId"
	GinKeyTokenError = "TokenError"
	GinKeyLanguage   = "Language"
)

func WithCustomContext(ctx context.Context, customContext *CustomContext) context.Context {
	return context.WithValue(ctx, customContextKey{}, customContext)
}

func WithCustomContextFromGinRequest(c *gin.Context, appSource string) context.Context {
	language := enum.LanguageEnglish
	if v, ok := c.Get(GinKeyLanguage); ok {
		if l, ok := v.(enum.Language); ok {
			language = l
		}
	}
	customContext := &CustomContext{
		AppSource:  appSource,
		UserId:     c.GetString(GinKeyUserId),
		TokenError: c.GetBool(GinKeyTokenError),
		Language:   language,
		IP:         c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
		Request:    c.Request,
		Writer:     c.Writer,
	}
	return WithCustomContext(c.Request.Context(), customContext)
}

func GetContext(ctx context.Context) *CustomContext {
	customContext, ok := ctx.Value(customContextKey{}).(*CustomContext)
	if !ok {
		return new(CustomContext)
	}
	return customContext
}

func GetAppSourceFromContext(ctx context.Context) string {
	return GetContext(ctx).AppSource
}

func GetUserIdFromContext(ctx context.Context) string {
	return GetContext(ctx).UserId
}

func GetLanguageFromContext(ctx context.Context) enum.Language {
	if l := GetContext(ctx).Language; l != "" {
		return l
	}
	return enum.LanguageEnglish
}

func SetUserIdInContext(ctx context.Context, userId string) context.Context {
	customContext := *GetContext(ctx)
	customContext.UserId = userId
	return WithCustomContext(ctx, &customContext)
}

func SetLanguageInContext(ctx context.Context, language enum.Language) context.Context {
	customContext := *GetContext(ctx)
	customContext.Language = language
	return WithCustomContext(ctx, &customContext)
}

func ValidateUser(ctx context.Context) error {
	if GetUserIdFromContext(ctx) == "" {
		return errors.New("user is missing")
	}
	return nil
}

// SetCookie writes a cookie on the in-flight HTTP response, if any.
func SetCookie(ctx context.Context, cookie *http.Cookie) {
	if w := GetContext(ctx).Writer; w != nil {
		http.SetCookie(w, cookie)
	}
}

func GetCookie(ctx context.Context, name string) string {
	r := GetContext(ctx).Request
	if r == nil {
		return ""
	}
	cookie, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}
