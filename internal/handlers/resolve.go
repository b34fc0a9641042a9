package handlers

import (
	"net/http"

	"github.com/nyomansunima/federation-service/internal/federation"

	"github.com/gin-gonic/gin"
)

// ResolveHandler answers reference resolution requests from the gateway.
// The route sits behind the service signature middleware; by the time this
// handler runs the caller is a trusted peer.
type ResolveHandler struct {
	registry *federation.Registry
}

func NewResolveHandler(registry *federation.Registry) *ResolveHandler {
	return &ResolveHandler{registry: registry}
}

// Resolve dispatches the typed reference to its registered resolver and
// returns the full record. Unresolvable references answer 404 so the
// caller fails the whole composition instead of stitching a partial view.
func (h *ResolveHandler) Resolve(c *gin.Context) {
	var ref federation.Reference
	if err := c.ShouldBindJSON(&ref); err != nil || ref.Typename == "" {
		respondInvalidRequest(c, "__typename is required")
		return
	}

	record, err := h.registry.Resolve(c.Request.Context(), ref)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}
