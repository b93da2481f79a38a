package post

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/heartmarshall/blog-backend/internal/domain"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

func normalizeFilter(f *domain.PostFilter) {
	if f.Limit <= 0 {
		f.Limit = defaultLimit
	}
	if f.Limit > maxLimit {
		f.Limit = maxLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}

func applyFilter(b sq.SelectBuilder, f domain.PostFilter) sq.SelectBuilder {
	if f.PublishedOnly {
		b = b.Where(sq.Eq{"is_published": true})
	}
	if f.Category != nil {
		b = b.Where(sq.Eq{"category": *f.Category})
	}
	if f.Tag != nil {
		b = b.Where("? = ANY(tags)", *f.Tag)
	}
	if f.AuthorID != nil {
		b = b.Where(sq.Eq{"author_id": *f.AuthorID})
	}
	return b
}

func selectQuery(f domain.PostFilter) sq.SelectBuilder {
	b := sq.Select(
		"id", "title", "slug", "content", "summary", "cover_image", "category",
		"tags", "is_published", "view_count", "like_count", "comment_count",
		"author_id", "published_at", "created_at", "updated_at",
	).
		From("posts").
		PlaceholderFormat(sq.Dollar)

	b = applyFilter(b, f)

	// Published posts first by publish date, drafts trail by creation date.
	return b.
		OrderBy("published_at DESC NULLS LAST", "created_at DESC").
		Limit(uint64(f.Limit)).
		Offset(uint64(f.Offset))
}

func countQuery(f domain.PostFilter) sq.SelectBuilder {
	b := sq.Select("COUNT(*)").
		From("posts").
		PlaceholderFormat(sq.Dollar)

	return applyFilter(b, f)
}
