package handlers

import (
	"errors"
	"net/http"

	"github.com/nyomansunima/federation-service/internal/federation"
	"github.com/nyomansunima/federation-service/internal/services"
	"github.com/nyomansunima/federation-service/internal/store"

	"github.com/gin-gonic/gin"
)

// respondError maps a service error onto the wire taxonomy. Unmatched
// errors collapse into a generic 500 without leaking the storage error.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrAppNotFound),
		errors.Is(err, services.ErrProviderNotFound),
		errors.Is(err, services.ErrAppTypeNotFound),
		errors.Is(err, federation.ErrReferenceNotFound),
		errors.Is(err, store.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error":             "not_found",
			"error_description": err.Error(),
		})

	case errors.Is(err, services.ErrDuplicateIdentity),
		errors.Is(err, services.ErrProviderUnavailable),
		errors.Is(err, services.ErrDuplicateAppName),
		errors.Is(err, services.ErrDuplicateProviderName),
		errors.Is(err, services.ErrDuplicateAppType):
		c.JSON(http.StatusForbidden, gin.H{
			"error":             "forbidden",
			"error_description": err.Error(),
		})

	case errors.Is(err, services.ErrUnprocessableUpdate):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":             "unprocessable",
			"error_description": err.Error(),
		})

	case errors.Is(err, services.ErrUnexpectedFailure):
		c.JSON(http.StatusNotImplemented, gin.H{
			"error":             "operation_failed",
			"error_description": err.Error(),
		})

	case errors.Is(err, federation.ErrUnknownTypename):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":             "invalid_request",
			"error_description": err.Error(),
		})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":             "server_error",
			"error_description": "Something went wrong. Please try again later.",
		})
	}
}

// respondInvalidRequest rejects a request whose body or parameters did not
// bind.
func respondInvalidRequest(c *gin.Context, description string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":             "invalid_request",
		"error_description": description,
	})
}
