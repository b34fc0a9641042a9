package handlers

import (
	"net/http"

	"github.com/nyomansunima/federation-service/internal/middleware"
	"github.com/nyomansunima/federation-service/internal/services"

	"github.com/gin-gonic/gin"
)

// SignUpRequest is the email/password signup payload. The application
// secret key binds the new identity to one registered application.
type SignUpRequest struct {
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=8"`
	AppsSecretKey string `json:"appsSecretKey" binding:"required"`
}

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// SignUp creates a new identity, issues its token and returns the full
// authorization view plus an opaque application reference for the gateway
// to resolve.
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidRequest(c, "email, password and appsSecretKey are required")
		return
	}

	view, err := h.auth.SignUpWithEmailPassword(
		c.Request.Context(),
		req.Email,
		req.Password,
		req.AppsSecretKey,
	)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, view)
}

// Me returns the authorization view re-hydrated by the token middleware.
func (h *AuthHandler) Me(c *gin.Context) {
	view := middleware.AuthorizationFromContext(c)
	if view == nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":             "access_denied",
			"error_description": "Access denied.",
		})
		return
	}
	c.JSON(http.StatusOK, view)
}
