// Package httpmw provides the server's shared-secret authentication and
// global rate-limiting middleware: Bearer-token parsing and a token-bucket
// limiter for a server with no per-client identity. Every caller shares one
// secret and one limiter, since nothing in this domain distinguishes one
// caller from another the way a multi-tenant client table would.
package httpmw

import (
	"crypto/subtle"
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/dsse/forwardpriv/internal/errors"
	"github.com/dsse/forwardpriv/internal/httputil"
)

// AuthMiddleware validates a Bearer token against sharedSecret. When
// sharedSecret is empty, authentication is disabled entirely (local/dev
// use) and every request passes through.
//
// Authorization header format: "Bearer <token>" (case-insensitive prefix).
func AuthMiddleware(sharedSecret string, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sharedSecret == "" {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Debug("authentication failed: missing authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		const bearerPrefix = "bearer "
		if len(authHeader) < len(bearerPrefix) ||
			!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			logger.Debug("authentication failed: malformed authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		token := authHeader[len(bearerPrefix):]
		if subtle.ConstantTimeCompare([]byte(token), []byte(sharedSecret)) != 1 {
			logger.Debug("authentication failed: token mismatch")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		c.Next()
	}
}
