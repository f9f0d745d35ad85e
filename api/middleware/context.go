package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/canada-ca/tracker-sub010/internal/utils"
)

// CustomContextMiddleware stores the caller identity, language and client
// details on the request context. It runs after the auth and language
// middleware that populate them.
func CustomContextMiddleware(appSource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(utils.WithCustomContextFromGinRequest(c, appSource))
		c.Next()
	}
}
