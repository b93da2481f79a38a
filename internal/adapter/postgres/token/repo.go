// Package token implements the refresh-token repository using PostgreSQL.
package token

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/blog-backend/internal/adapter/postgres"
	"github.com/heartmarshall/blog-backend/internal/domain"
)

// Repo provides refresh-token persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new token repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const createSQL = `
INSERT INTO refresh_tokens (user_id, token_hash, expires_at)
VALUES ($1, $2, $3)
RETURNING id, created_at`

// Create inserts a new refresh token.
func (r *Repo) Create(ctx context.Context, t *domain.RefreshToken) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	err := q.QueryRow(ctx, createSQL, t.UserID, t.TokenHash, t.ExpiresAt).
		Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return postgres.MapError(err, "refresh_token", 0)
	}

	return nil
}

const getByHashSQL = `
SELECT id, user_id, token_hash, expires_at, created_at, revoked_at
FROM refresh_tokens
WHERE token_hash = $1 AND revoked_at IS NULL`

// GetByHash returns a non-revoked refresh token by its hash.
// Returns domain.ErrNotFound if the token does not exist or is revoked;
// expiry is checked by the caller.
func (r *Repo) GetByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var (
		t         domain.RefreshToken
		revokedAt pgtype.Timestamptz
	)
	err := q.QueryRow(ctx, getByHashSQL, tokenHash).
		Scan(&t.ID, &t.UserID, &t.TokenHash, &t.ExpiresAt, &t.CreatedAt, &revokedAt)
	if err != nil {
		return nil, postgres.MapError(err, "refresh_token", 0)
	}

	if revokedAt.Valid {
		v := revokedAt.Time
		t.RevokedAt = &v
	}

	return &t, nil
}

const revokeByIDSQL = `
UPDATE refresh_tokens SET revoked_at = $2
WHERE id = $1 AND revoked_at IS NULL`

// RevokeByID revokes a refresh token. Idempotent: revoking an
// already-revoked token is not an error.
func (r *Repo) RevokeByID(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := q.Exec(ctx, revokeByIDSQL, id, time.Now().UTC()); err != nil {
		return postgres.MapError(err, "refresh_token", 0)
	}

	return nil
}

const revokeAllByUserSQL = `
UPDATE refresh_tokens SET revoked_at = $2
WHERE user_id = $1 AND revoked_at IS NULL`

// RevokeAllByUser revokes every active refresh token of the given user.
func (r *Repo) RevokeAllByUser(ctx context.Context, userID int64) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := q.Exec(ctx, revokeAllByUserSQL, userID, time.Now().UTC()); err != nil {
		return postgres.MapError(err, "refresh_token", 0)
	}

	return nil
}

const deleteExpiredSQL = `
DELETE FROM refresh_tokens
WHERE expires_at < now() OR revoked_at IS NOT NULL`

// DeleteExpired removes expired and revoked tokens. Returns the number
// of deleted rows.
func (r *Repo) DeleteExpired(ctx context.Context) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, deleteExpiredSQL)
	if err != nil {
		return 0, postgres.MapError(err, "refresh_token", 0)
	}

	return int(tag.RowsAffected()), nil
}
