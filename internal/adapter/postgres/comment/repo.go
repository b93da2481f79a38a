// Package comment implements the Comment repository using PostgreSQL.
package comment

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/blog-backend/internal/adapter/postgres"
	"github.com/heartmarshall/blog-backend/internal/domain"
)

// Repo provides comment persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new comment repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const commentColumns = `
    id, post_id, user_id, author_name, content, parent_comment_id,
    like_count, created_at, updated_at`

const getByIDSQL = `SELECT` + commentColumns + ` FROM comments WHERE id = $1`

const createSQL = `
INSERT INTO comments (
    post_id, user_id, author_name, content, parent_comment_id,
    like_count, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id`

const deleteSQL = `DELETE FROM comments WHERE id = $1`

const countByPostSQL = `SELECT COUNT(*) FROM comments WHERE post_id = $1`

const listByPostSQL = `SELECT` + commentColumns + `
FROM comments
WHERE post_id = $1
ORDER BY created_at ASC, id ASC
LIMIT $2 OFFSET $3`

// GetByID returns a comment by primary key.
// Returns domain.ErrNotFound if the comment does not exist.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	c, err := scanComment(q.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "comment", id)
	}
	return c, nil
}

// Create inserts a new comment and returns it with the assigned ID.
// Returns domain.ErrNotFound when the post or parent comment row is gone.
func (r *Repo) Create(ctx context.Context, c *domain.Comment) (*domain.Comment, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	err := q.QueryRow(ctx, createSQL,
		c.PostID, c.UserID, c.AuthorName, c.Content,
		ptrToPgInt8(c.ParentID), c.LikeCount, c.CreatedAt, c.UpdatedAt,
	).Scan(&c.ID)
	if err != nil {
		return nil, postgres.MapError(err, "comment", 0)
	}

	return c, nil
}

// Delete removes a comment row.
// Returns domain.ErrNotFound if the comment does not exist.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, deleteSQL, id)
	if err != nil {
		return postgres.MapError(err, "comment", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("comment %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

// CountByPostID returns the number of comments on a post.
// Run inside a transaction together with the post update so the
// denormalized counter stays consistent.
func (r *Repo) CountByPostID(ctx context.Context, postID int64) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	if err := q.QueryRow(ctx, countByPostSQL, postID).Scan(&count); err != nil {
		return 0, postgres.MapError(err, "comment", 0)
	}
	return count, nil
}

// ListByPostID returns a page of comments for a post in chronological order.
func (r *Repo) ListByPostID(ctx context.Context, postID int64, limit, offset int) ([]*domain.Comment, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listByPostSQL, postID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	comments, err := scanComments(rows)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	return comments, nil
}

func scanComments(rows pgx.Rows) ([]*domain.Comment, error) {
	var result []*domain.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if result == nil {
		result = []*domain.Comment{}
	}

	return result, nil
}

func scanComment(row pgx.Row) (*domain.Comment, error) {
	var (
		c        domain.Comment
		parentID pgtype.Int8
	)

	err := row.Scan(
		&c.ID, &c.PostID, &c.UserID, &c.AuthorName, &c.Content,
		&parentID, &c.LikeCount, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if parentID.Valid {
		v := parentID.Int64
		c.ParentID = &v
	}

	return &c, nil
}

func ptrToPgInt8(v *int64) pgtype.Int8 {
	if v == nil {
		return pgtype.Int8{}
	}
	return pgtype.Int8{Int64: *v, Valid: true}
}
