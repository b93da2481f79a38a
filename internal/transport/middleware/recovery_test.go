package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/blog-backend/internal/domain"
	"github.com/heartmarshall/blog-backend/pkg/ctxutil"
)

func TestRecovery_PassesThrough(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	called := false

	wrapped := Recovery(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.True(t, called)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRecovery_PanicBecomesJSON500(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	wrapped := Recovery(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("comment repo exploded")
	}))

	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/posts/1/comments", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())

	// The panic value stays in the log, never in the response.
	assert.Contains(t, buf.String(), "panic recovered")
	assert.Contains(t, buf.String(), "comment repo exploded")
	assert.NotContains(t, rec.Body.String(), "comment repo exploded")
}

func TestRecovery_LogsActor(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	wrapped := Recovery(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	req := httptest.NewRequest(http.MethodPost, "/notifications/read-all", nil)
	ctx := ctxutil.WithIdentity(req.Context(), domain.Identity{Authenticated: true, UserID: 42})
	ctx = ctxutil.WithRequestID(ctx, "req-abc")

	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req.WithContext(ctx))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, buf.String(), "user_id=42")
	assert.Contains(t, buf.String(), "req-abc")
}
