package verify

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskhive/identity-service/internal/http/middlewarectx"
)

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestVerifyHandler_ReturnsClaims(t *testing.T) {
	handler := New(newNoopLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/verify", nil)
	ctx := context.WithValue(req.Context(), middlewarectx.User, "alice")
	ctx = context.WithValue(ctx, middlewarectx.Role, "User")
	ctx = context.WithValue(ctx, middlewarectx.UserUID, "uid-123")
	req = req.WithContext(ctx)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Status string         `json:"status"`
		Data   map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "OK", resp.Status)
	assert.Equal(t, "alice", resp.Data["username"])
	assert.Equal(t, "User", resp.Data["role"])
	assert.Equal(t, "uid-123", resp.Data["useruid"])
}
