package handlers

import (
	"net/http"

	"github.com/nyomansunima/federation-service/internal/services"

	"github.com/gin-gonic/gin"
)

// CreateAppRequest is the payload to register an application. The secret
// key is never accepted from the caller; it is generated server-side and
// returned once in the created record.
type CreateAppRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Image       string `json:"image"`
	TypeID      string `json:"typeId" binding:"required"`
	Version     string `json:"version"`
}

type AppHandler struct {
	apps *services.AppService
}

func NewAppHandler(apps *services.AppService) *AppHandler {
	return &AppHandler{apps: apps}
}

func (h *AppHandler) Get(c *gin.Context) {
	app, err := h.apps.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

func (h *AppHandler) List(c *gin.Context) {
	apps, pagination, err := h.apps.List(
		c.Request.Context(), paginationFromQuery(c), idsFromQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":       apps,
		"pagination": pagination,
	})
}

func (h *AppHandler) Create(c *gin.Context) {
	var req CreateAppRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidRequest(c, "name and typeId are required")
		return
	}

	app, err := h.apps.Create(
		c.Request.Context(),
		req.Name, req.Description, req.Icon, req.Image, req.TypeID, req.Version)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, app)
}

// Activate makes the application eligible to resolve by secret key and to
// anchor new signups.
func (h *AppHandler) Activate(c *gin.Context) {
	app, err := h.apps.Activate(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

func (h *AppHandler) Update(c *gin.Context) {
	var input services.UpdateAppInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondInvalidRequest(c, "invalid application payload")
		return
	}

	app, err := h.apps.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

func (h *AppHandler) Delete(c *gin.Context) {
	app, err := h.apps.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}
