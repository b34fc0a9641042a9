package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/nyomansunima/federation-service/internal/services"
	"github.com/nyomansunima/federation-service/internal/store"

	"github.com/gin-gonic/gin"
)

// paginationFromQuery builds pagination params from the request query
// string. The store clamps out-of-range values, so raw query input passes
// through as-is.
func paginationFromQuery(c *gin.Context) store.PaginationParams {
	page, _ := strconv.Atoi(c.Query("page"))
	pageSize, _ := strconv.Atoi(c.Query("page_size"))
	return store.PaginationParams{
		Page:     page,
		PageSize: pageSize,
		Match:    c.Query("search"),
	}
}

// idsFromQuery parses the optional comma-separated ids filter.
func idsFromQuery(c *gin.Context) []string {
	raw := c.Query("ids")
	if raw == "" {
		return nil
	}
	var ids []string
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

type UserHandler struct {
	users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Get returns one identity by id.
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.users.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// List returns a page of identities, optionally filtered by ids.
func (h *UserHandler) List(c *gin.Context) {
	users, pagination, err := h.users.List(
		c.Request.Context(), paginationFromQuery(c), idsFromQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":       users,
		"pagination": pagination,
	})
}
