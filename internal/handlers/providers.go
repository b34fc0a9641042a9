package handlers

import (
	"net/http"

	"github.com/nyomansunima/federation-service/internal/services"

	"github.com/gin-gonic/gin"
)

// CreateProviderRequest is the payload to register an auth provider.
type CreateProviderRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Image       string `json:"image"`
}

type ProviderHandler struct {
	providers *services.ProviderService
}

func NewProviderHandler(providers *services.ProviderService) *ProviderHandler {
	return &ProviderHandler{providers: providers}
}

func (h *ProviderHandler) Get(c *gin.Context) {
	provider, err := h.providers.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, provider)
}

func (h *ProviderHandler) List(c *gin.Context) {
	providers, pagination, err := h.providers.List(
		c.Request.Context(), paginationFromQuery(c), idsFromQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":       providers,
		"pagination": pagination,
	})
}

// Create registers a new provider. It starts in created status and must be
// activated before signups can use it.
func (h *ProviderHandler) Create(c *gin.Context) {
	var req CreateProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidRequest(c, "name is required")
		return
	}

	provider, err := h.providers.Create(
		c.Request.Context(), req.Name, req.Description, req.Icon, req.Image)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, provider)
}

func (h *ProviderHandler) Activate(c *gin.Context) {
	provider, err := h.providers.Activate(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, provider)
}

func (h *ProviderHandler) Disable(c *gin.Context) {
	provider, err := h.providers.Disable(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, provider)
}

func (h *ProviderHandler) Delete(c *gin.Context) {
	provider, err := h.providers.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, provider)
}

func (h *ProviderHandler) Update(c *gin.Context) {
	var input services.UpdateProviderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondInvalidRequest(c, "invalid provider payload")
		return
	}

	provider, err := h.providers.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, provider)
}
