package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRefreshToken_IsRevoked(t *testing.T) {
	t.Parallel()

	token := &RefreshToken{}
	assert.False(t, token.IsRevoked())

	now := time.Now()
	token.RevokedAt = &now
	assert.True(t, token.IsRevoked())
}

func TestRefreshToken_IsExpired(t *testing.T) {
	t.Parallel()

	now := time.Now()

	token := &RefreshToken{ExpiresAt: now.Add(time.Hour)}
	assert.False(t, token.IsExpired(now))

	token.ExpiresAt = now.Add(-time.Hour)
	assert.True(t, token.IsExpired(now))
}
