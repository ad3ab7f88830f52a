package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onedrop-app/onedrop-api/internal/domain"
)

func TestFromError(t *testing.T) {
	tests := []struct {
		err    error
		status int
		kind   string
	}{
		{fmt.Errorf("x -> %w", domain.ErrInvalidInput), http.StatusBadRequest, "invalid_input"},
		{domain.ErrForbidden, http.StatusForbidden, "forbidden"},
		{fmt.Errorf("campaign %w", domain.ErrNotFound), http.StatusNotFound, "not_found"},
		{domain.ErrInvalidTransition, http.StatusConflict, "invalid_transition"},
		{domain.ErrAlreadyEnrolled, http.StatusConflict, "already_enrolled"},
		{domain.ErrDuplicateActiveCampaign, http.StatusConflict, "duplicate_active_campaign"},
		{domain.ErrStorageUnavailable, http.StatusServiceUnavailable, "storage_unavailable"},
		{errors.New("boom"), http.StatusInternalServerError, ""},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status)+tt.kind, func(t *testing.T) {
			got := FromError(tt.err)
			assert.Equal(t, tt.status, got.StatusCode)
			assert.Equal(t, tt.kind, got.Kind)
			assert.Equal(t, tt.err, got.Err)
		})
	}
}

func TestErrNotFound_KeepsWrappedMessage(t *testing.T) {
	err := fmt.Errorf("s.repo.FindByID -> %w", fmt.Errorf("campaign %w", domain.ErrNotFound))

	got := FromError(err)

	assert.Equal(t, ErrNotFound(err), got)
	assert.Equal(t, err.Error(), got.Message)
	assert.ErrorIs(t, got.Err, domain.ErrNotFound)
}

func TestRenderErr(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("service unavailable sets retry-after", func(t *testing.T) {
		rec := httptest.NewRecorder()
		ctx, _ := gin.CreateTestContext(rec)
		ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		RenderErr(ctx, FromError(domain.ErrStorageUnavailable))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, retryAfterSeconds, rec.Header().Get("Retry-After"))
	})

	t.Run("internal error hides detail", func(t *testing.T) {
		rec := httptest.NewRecorder()
		ctx, _ := gin.CreateTestContext(rec)
		ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		RenderErr(ctx, FromError(errors.New("pq: secret detail")))

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "internal server error", body["message"])
		assert.Empty(t, rec.Header().Get("Retry-After"))
	})

	t.Run("not found keeps message", func(t *testing.T) {
		rec := httptest.NewRecorder()
		ctx, _ := gin.CreateTestContext(rec)
		ctx.Request = httptest.NewRequest(http.MethodGet, "/api/v1/campaigns/9", nil)

		RenderErr(ctx, FromError(fmt.Errorf("campaign %w", domain.ErrNotFound)))

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "not_found", body["kind"])
		assert.Equal(t, "campaign not found", body["message"])
		assert.Len(t, ctx.Errors, 1)
	})
}
