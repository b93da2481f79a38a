package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account. Password authentication is the
// only method in scope; the hash lives on the user record.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	AvatarURL    *string
	ExternalID   *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RefreshToken represents a hashed refresh token stored in the database.
// The raw token is only ever held by the client.
type RefreshToken struct {
	ID        uuid.UUID
	UserID    int64
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
	RevokedAt *time.Time
}

// IsRevoked reports whether the token has been revoked.
func (t *RefreshToken) IsRevoked() bool {
	return t.RevokedAt != nil
}

// IsExpired reports whether the token has expired as of now.
func (t *RefreshToken) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
