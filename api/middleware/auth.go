package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/canada-ca/tracker-sub010/internal/i18n"
	"github.com/canada-ca/tracker-sub010/internal/utils"
)

// TokenVerifier resolves the user id carried by an auth token.
type TokenVerifier interface {
	UserIDFromAuthToken(token string) (string, error)
}

// AuthTokenMiddleware reads the Authorization header. A missing header leaves
// the request anonymous; an invalid one is flagged so resolvers can reject it.
func AuthTokenMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimSpace(c.GetHeader("Authorization"))
		token = strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))

		if token != "" {
			userId, err := verifier.UserIDFromAuthToken(token)
			if err != nil {
				c.Set(utils.GinKeyTokenError, true)
			} else {
				c.Set(utils.GinKeyUserId, userId)
			}
		}
		c.Next()
	}
}

func LanguageMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(utils.GinKeyLanguage, i18n.MatchLanguage(c.GetHeader("Accept-Language")))
		c.Next()
	}
}
