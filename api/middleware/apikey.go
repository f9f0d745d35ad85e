package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const APIKeyHeader = "X-API-KEY"

// APIKeyConfig guards the service-to-service endpoints. An empty ValidAPIKey
// rejects every caller.
type APIKeyConfig struct {
	HeaderName  string
	ValidAPIKey string
}

func (cfg APIKeyConfig) check(supplied string) (bool, string) {
	switch {
	case supplied == "":
		return false, "Missing API key"
	case cfg.ValidAPIKey == "":
		return false, "Invalid API key"
	case subtle.ConstantTimeCompare([]byte(supplied), []byte(cfg.ValidAPIKey)) != 1:
		return false, "Invalid API key"
	}
	return true, ""
}

func APIKeyMiddleware(cfg APIKeyConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ok, reason := cfg.check(strings.TrimSpace(c.GetHeader(cfg.HeaderName))); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": reason})
			return
		}
		c.Next()
	}
}
