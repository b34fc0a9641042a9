package middleware

import (
	"net/http"
	"strings"

	"github.com/nyomansunima/federation-service/internal/services"
	"github.com/nyomansunima/federation-service/internal/token"

	"github.com/gin-gonic/gin"
)

const (
	// ContextAuthorization holds the re-hydrated *services.AuthorizationView
	ContextAuthorization = "authorization"
	// ContextClaims holds the decoded *token.Claims
	ContextClaims = "claims"
)

// abortUnauthorized rejects the request with a deliberately uniform body.
// Expired, malformed and revoked tokens all look the same to the caller.
func abortUnauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", `Bearer realm="Authorization"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":             "access_denied",
		"error_description": "Access denied.",
	})
}

// RequireToken validates the Bearer token on the request and re-hydrates
// the caller's authorization state into the context. Downstream handlers
// read it via ContextAuthorization and ContextClaims.
func RequireToken(codec *token.Codec, auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			abortUnauthorized(c)
			return
		}

		claims, err := codec.Decode(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			abortUnauthorized(c)
			return
		}

		view, err := auth.AuthenticateUser(c.Request.Context(), claims)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		c.Set(ContextClaims, claims)
		c.Set(ContextAuthorization, view)
		c.Next()
	}
}

// AuthorizationFromContext returns the view stored by RequireToken, or nil
// when the middleware did not run on this route.
func AuthorizationFromContext(c *gin.Context) *services.AuthorizationView {
	value, exists := c.Get(ContextAuthorization)
	if !exists {
		return nil
	}
	view, ok := value.(*services.AuthorizationView)
	if !ok {
		return nil
	}
	return view
}
