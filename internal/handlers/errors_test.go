package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nyomansunima/federation-service/internal/federation"
	"github.com/nyomansunima/federation-service/internal/services"
	"github.com/nyomansunima/federation-service/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRespondErrorTaxonomy(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"user not found", services.ErrUserNotFound, http.StatusNotFound, "not_found"},
		{"app not found", services.ErrAppNotFound, http.StatusNotFound, "not_found"},
		{"reference not found", federation.ErrReferenceNotFound, http.StatusNotFound, "not_found"},
		{"record not found", store.ErrRecordNotFound, http.StatusNotFound, "not_found"},
		{"duplicate identity", services.ErrDuplicateIdentity, http.StatusForbidden, "forbidden"},
		{"provider unavailable", services.ErrProviderUnavailable, http.StatusForbidden, "forbidden"},
		{"duplicate app name", services.ErrDuplicateAppName, http.StatusForbidden, "forbidden"},
		{"duplicate provider name", services.ErrDuplicateProviderName, http.StatusForbidden, "forbidden"},
		{"duplicate app type", services.ErrDuplicateAppType, http.StatusForbidden, "forbidden"},
		{"unprocessable update", services.ErrUnprocessableUpdate, http.StatusUnprocessableEntity, "unprocessable"},
		{"unexpected failure", services.ErrUnexpectedFailure, http.StatusNotImplemented, "operation_failed"},
		{"unknown typename", federation.ErrUnknownTypename, http.StatusBadRequest, "invalid_request"},
		{"unmatched error", errors.New("disk on fire"), http.StatusInternalServerError, "server_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			respondError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), `"error":"`+tt.wantCode+`"`)
		})
	}
}

// Wrapped service errors must keep their taxonomy slot.
func TestRespondErrorUnwrapsSentinels(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	wrapped := fmt.Errorf("%w: apps with name console already exist", services.ErrDuplicateAppName)
	respondError(c, wrapped)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "console")
}
