package server

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"
)

// HeaderAPIKey carries the shared secret on every protected route.
const HeaderAPIKey = "X-API-Key"

// APIKeyRequired distinguishes a missing header (validation error, 422)
// from a wrong value (authorization error, 401).
func (s *Server) APIKeyRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := strings.TrimSpace(c.GetHeader(HeaderAPIKey))
		if key == "" {
			AbortWithError(c, ErrMissingAPIKey)
			return
		}
		if subtle.ConstantTimeCompare([]byte(key), []byte(s.cfg.APIKey)) != 1 {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		c.Next()
	}
}
