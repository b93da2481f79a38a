// Package user implements the User repository using PostgreSQL.
package user

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/blog-backend/internal/adapter/postgres"
	"github.com/heartmarshall/blog-backend/internal/domain"
)

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new user repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const userColumns = `
    id, username, email, password_hash, avatar_url, external_id,
    created_at, updated_at`

const getByIDSQL = `SELECT` + userColumns + ` FROM users WHERE id = $1`

const getByUsernameSQL = `SELECT` + userColumns + ` FROM users WHERE username = $1`

const getByEmailSQL = `SELECT` + userColumns + ` FROM users WHERE email = $1`

const createSQL = `
INSERT INTO users (
    username, email, password_hash, avatar_url, external_id,
    created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id`

// GetByID returns a user by primary key.
// Returns domain.ErrNotFound if the user does not exist.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	u, err := scanUser(q.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "user", id)
	}
	return u, nil
}

// GetByUsername returns a user by exact username.
func (r *Repo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	u, err := scanUser(q.QueryRow(ctx, getByUsernameSQL, username))
	if err != nil {
		return nil, postgres.MapError(err, "user", 0)
	}
	return u, nil
}

// GetByEmail returns a user by exact email.
func (r *Repo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	u, err := scanUser(q.QueryRow(ctx, getByEmailSQL, email))
	if err != nil {
		return nil, postgres.MapError(err, "user", 0)
	}
	return u, nil
}

// Create inserts a new user and returns it with the assigned ID.
// Returns domain.ErrAlreadyExists on a username or email collision.
func (r *Repo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	err := q.QueryRow(ctx, createSQL,
		u.Username, u.Email, u.PasswordHash,
		ptrToPgText(u.AvatarURL), ptrToPgText(u.ExternalID),
		u.CreatedAt, u.UpdatedAt,
	).Scan(&u.ID)
	if err != nil {
		return nil, postgres.MapError(err, "user", 0)
	}

	return u, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		u          domain.User
		avatarURL  pgtype.Text
		externalID pgtype.Text
	)

	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash,
		&avatarURL, &externalID, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	u.AvatarURL = pgTextToPtr(avatarURL)
	u.ExternalID = pgTextToPtr(externalID)

	return &u, nil
}

func ptrToPgText(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}

func pgTextToPtr(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}
	s := t.String
	return &s
}
