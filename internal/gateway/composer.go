package gateway

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/nyomansunima/federation-service/internal/federation"
	"github.com/nyomansunima/federation-service/internal/token"

	"github.com/gin-gonic/gin"
)

// Composer stitches a single session view out of both partitions. The
// bearer token is decoded locally with the platform signing key; the
// subject and the application are then resolved through the signed
// resolve handshake against their owning partitions.
type Composer struct {
	codec *token.Codec
	users *federation.RemoteResolver
	apps  *federation.RemoteResolver
}

func NewComposer(
	codec *token.Codec,
	users *federation.RemoteResolver,
	apps *federation.RemoteResolver,
) *Composer {
	return &Composer{codec: codec, users: users, apps: apps}
}

// Session composes the caller's session: the identity record from the
// identity partition and the application record from the application
// partition, joined by the claims carried in the bearer token.
//
// Any failure along the way answers a uniform 401. The response never
// reveals whether the token, the subject or the application was the part
// that failed.
func (g *Composer) Session(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		abortSessionDenied(c)
		return
	}

	claims, err := g.codec.Decode(strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		abortSessionDenied(c)
		return
	}

	ctx := c.Request.Context()

	user, err := g.users.Resolve(ctx, federation.Reference{
		Typename: federation.TypenameUser,
		ID:       claims.Subject,
	})
	if err != nil {
		abortSessionDenied(c)
		return
	}

	app, err := g.apps.Resolve(ctx, federation.Reference{
		Typename:  federation.TypenameApps,
		SecretKey: claims.AppsSecretKey,
	})
	if err != nil {
		abortSessionDenied(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":        json.RawMessage(user),
		"application": json.RawMessage(app),
		"claims": gin.H{
			"sub":      claims.Subject,
			"username": claims.Username,
			"issuedAt": claims.IssuedAt,
		},
	})
}

// Resolve exposes the gateway's own resolve surface: a typed reference is
// routed to the partition owning its typename.
func (g *Composer) Resolve(c *gin.Context) {
	var ref federation.Reference
	if err := c.ShouldBindJSON(&ref); err != nil || ref.Typename == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":             "invalid_request",
			"error_description": "__typename is required",
		})
		return
	}

	var resolver *federation.RemoteResolver
	switch ref.Typename {
	case federation.TypenameUser:
		resolver = g.users
	case federation.TypenameApps:
		resolver = g.apps
	default:
		c.JSON(http.StatusBadRequest, gin.H{
			"error":             "invalid_request",
			"error_description": "unknown typename " + ref.Typename,
		})
		return
	}

	record, err := resolver.Resolve(c.Request.Context(), ref)
	if err != nil {
		if errors.Is(err, federation.ErrReferenceNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":             "not_found",
				"error_description": err.Error(),
			})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{
			"error":             "resolve_failed",
			"error_description": "Upstream partition did not answer.",
		})
		return
	}

	c.JSON(http.StatusOK, json.RawMessage(record))
}

func abortSessionDenied(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":             "access_denied",
		"error_description": "Access denied.",
	})
}
