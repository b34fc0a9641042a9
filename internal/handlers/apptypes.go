package handlers

import (
	"net/http"

	"github.com/nyomansunima/federation-service/internal/services"

	"github.com/gin-gonic/gin"
)

// AppTypeRequest is the payload for creating or updating an application
// type.
type AppTypeRequest struct {
	Type        string `json:"type" binding:"required"`
	Description string `json:"description"`
}

type AppTypeHandler struct {
	types *services.AppTypeService
}

func NewAppTypeHandler(types *services.AppTypeService) *AppTypeHandler {
	return &AppTypeHandler{types: types}
}

func (h *AppTypeHandler) Get(c *gin.Context) {
	appType, err := h.types.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appType)
}

func (h *AppTypeHandler) List(c *gin.Context) {
	appTypes, pagination, err := h.types.List(
		c.Request.Context(), paginationFromQuery(c), idsFromQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":       appTypes,
		"pagination": pagination,
	})
}

func (h *AppTypeHandler) Create(c *gin.Context) {
	var req AppTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidRequest(c, "type is required")
		return
	}

	appType, err := h.types.Create(c.Request.Context(), req.Type, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, appType)
}

func (h *AppTypeHandler) Update(c *gin.Context) {
	var req AppTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidRequest(c, "type is required")
		return
	}

	appType, err := h.types.Update(
		c.Request.Context(), c.Param("id"), req.Type, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appType)
}

func (h *AppTypeHandler) Delete(c *gin.Context) {
	appType, err := h.types.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appType)
}
