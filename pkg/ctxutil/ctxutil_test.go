package ctxutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/heartmarshall/blog-backend/internal/domain"
)

func TestIdentityRoundTrip(t *testing.T) {
	t.Parallel()

	id := domain.Identity{UserID: 7, Username: "alice", Authenticated: true}
	ctx := WithIdentity(context.Background(), id)

	got := IdentityFromCtx(ctx)
	assert.Equal(t, id, got)
}

func TestIdentityFromCtx_Absent(t *testing.T) {
	t.Parallel()

	got := IdentityFromCtx(context.Background())
	assert.False(t, got.Authenticated)
	assert.Zero(t, got.UserID)
}

func TestRequestIDRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := WithRequestID(context.Background(), "req-123")
	assert.Equal(t, "req-123", RequestIDFromCtx(ctx))
}

func TestRequestIDFromCtx_Absent(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", RequestIDFromCtx(context.Background()))
}
