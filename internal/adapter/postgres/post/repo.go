// Package post implements the Post repository using PostgreSQL.
package post

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/blog-backend/internal/adapter/postgres"
	"github.com/heartmarshall/blog-backend/internal/domain"
)

// Repo provides post persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new post repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const postColumns = `
    id, title, slug, content, summary, cover_image, category, tags,
    is_published, view_count, like_count, comment_count, author_id,
    published_at, created_at, updated_at`

const getByIDSQL = `SELECT` + postColumns + ` FROM posts WHERE id = $1`

const getBySlugSQL = `SELECT` + postColumns + ` FROM posts WHERE slug = $1`

const existsByTitleSQL = `SELECT EXISTS (SELECT 1 FROM posts WHERE title = $1)`

const createSQL = `
INSERT INTO posts (
    title, slug, content, summary, cover_image, category, tags,
    is_published, view_count, like_count, comment_count, author_id,
    published_at, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
RETURNING id`

const updateSQL = `
UPDATE posts SET
    title = $2, slug = $3, content = $4, summary = $5, cover_image = $6,
    category = $7, tags = $8, is_published = $9, view_count = $10,
    like_count = $11, comment_count = $12, published_at = $13, updated_at = $14
WHERE id = $1`

const incrementViewCountSQL = `UPDATE posts SET view_count = view_count + 1 WHERE id = $1`

const incrementLikeCountSQL = `UPDATE posts SET like_count = like_count + 1 WHERE id = $1`

const decrementLikeCountSQL = `UPDATE posts SET like_count = GREATEST(like_count - 1, 0) WHERE id = $1`

// GetByID returns a post by primary key.
// Returns domain.ErrNotFound if the post does not exist.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	p, err := scanPost(q.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "post", id)
	}
	return p, nil
}

// GetBySlug returns a post by its URL slug.
// Returns domain.ErrNotFound if no post has the slug.
func (r *Repo) GetBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	p, err := scanPost(q.QueryRow(ctx, getBySlugSQL, slug))
	if err != nil {
		return nil, postgres.MapError(err, "post", 0)
	}
	return p, nil
}

// ExistsByTitle reports whether a post with the exact title exists.
func (r *Repo) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var exists bool
	if err := q.QueryRow(ctx, existsByTitleSQL, title).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists by title: %w", err)
	}
	return exists, nil
}

// Create inserts a new post and returns it with the assigned ID.
// Returns domain.ErrAlreadyExists on a slug collision.
func (r *Repo) Create(ctx context.Context, p *domain.Post) (*domain.Post, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	err := q.QueryRow(ctx, createSQL,
		p.Title, p.Slug, p.Content,
		ptrToPgText(p.Summary), ptrToPgText(p.CoverImage), ptrToPgText(p.Category),
		tagsOrEmpty(p.Tags),
		p.Published, p.ViewCount, p.LikeCount, p.CommentCount, p.AuthorID,
		ptrToPgTimestamp(p.PublishedAt), p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		return nil, postgres.MapError(err, "post", 0)
	}

	return p, nil
}

// Update overwrites the full mutable row.
// Returns domain.ErrNotFound if the post does not exist.
func (r *Repo) Update(ctx context.Context, p *domain.Post) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, updateSQL,
		p.ID, p.Title, p.Slug, p.Content,
		ptrToPgText(p.Summary), ptrToPgText(p.CoverImage), ptrToPgText(p.Category),
		tagsOrEmpty(p.Tags),
		p.Published, p.ViewCount, p.LikeCount, p.CommentCount,
		ptrToPgTimestamp(p.PublishedAt), p.UpdatedAt,
	)
	if err != nil {
		return postgres.MapError(err, "post", p.ID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("post %d: %w", p.ID, domain.ErrNotFound)
	}

	return nil
}

// IncrementViewCount bumps the view counter atomically at the store level,
// so concurrent reads never lose an increment.
func (r *Repo) IncrementViewCount(ctx context.Context, id int64) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, incrementViewCountSQL, id)
	if err != nil {
		return postgres.MapError(err, "post", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("post %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

// IncrementLikeCount bumps the like counter atomically at the store level.
func (r *Repo) IncrementLikeCount(ctx context.Context, id int64) error {
	return r.adjustLikeCount(ctx, incrementLikeCountSQL, id)
}

// DecrementLikeCount lowers the like counter atomically, never below zero.
func (r *Repo) DecrementLikeCount(ctx context.Context, id int64) error {
	return r.adjustLikeCount(ctx, decrementLikeCountSQL, id)
}

func (r *Repo) adjustLikeCount(ctx context.Context, sql string, id int64) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, sql, id)
	if err != nil {
		return postgres.MapError(err, "post", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("post %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

// List returns posts matching the filter plus the total match count
// (ignoring limit/offset).
func (r *Repo) List(ctx context.Context, f domain.PostFilter) ([]*domain.Post, int, error) {
	normalizeFilter(&f)
	q := postgres.QuerierFromCtx(ctx, r.pool)

	listSQL, selectArgs, err := selectQuery(f).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list query: %w", err)
	}

	rows, err := q.Query(ctx, listSQL, selectArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	posts, err := scanPosts(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}

	countSQL, countArgs, err := countQuery(f).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}

	var total int
	if err := q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}

	return posts, total, nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func scanPosts(rows pgx.Rows) ([]*domain.Post, error) {
	var result []*domain.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if result == nil {
		result = []*domain.Post{}
	}

	return result, nil
}

func scanPost(row pgx.Row) (*domain.Post, error) {
	var (
		p           domain.Post
		summary     pgtype.Text
		coverImage  pgtype.Text
		category    pgtype.Text
		publishedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Content, &summary, &coverImage, &category,
		&p.Tags, &p.Published, &p.ViewCount, &p.LikeCount, &p.CommentCount,
		&p.AuthorID, &publishedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.Summary = pgTextToPtr(summary)
	p.CoverImage = pgTextToPtr(coverImage)
	p.Category = pgTextToPtr(category)
	if publishedAt.Valid {
		t := publishedAt.Time
		p.PublishedAt = &t
	}

	return &p, nil
}

// ---------------------------------------------------------------------------
// pgtype helpers
// ---------------------------------------------------------------------------

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

func ptrToPgTimestamp(t *time.Time) pgtype.Timestamptz {
	if t == nil {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: *t, Valid: true}
}

// tagsOrEmpty keeps the tags column NOT NULL friendly.
func tagsOrEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
