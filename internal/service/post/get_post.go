package post

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/blog-backend/internal/domain"
)

// GetPost returns a post by ID. Drafts are only visible to the
// administrator; everyone else gets ErrNotFound rather than a hint
// that the draft exists.
func (s *Service) GetPost(ctx context.Context, actor domain.Identity, postID int64) (*domain.Post, error) {
	p, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}

	if !p.Published {
		if err := s.requireAdmin(ctx, actor); err != nil {
			return nil, fmt.Errorf("post %d: %w", postID, domain.ErrNotFound)
		}
	}

	return p, nil
}

// ViewPost returns a published post by slug and counts the view.
// The counter increment is best effort: a failure is logged, not returned.
func (s *Service) ViewPost(ctx context.Context, actor domain.Identity, slug string) (*domain.Post, error) {
	p, err := s.posts.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}

	if !p.Published {
		if err := s.requireAdmin(ctx, actor); err != nil {
			return nil, fmt.Errorf("post %q: %w", slug, domain.ErrNotFound)
		}
		return p, nil
	}

	if err := s.posts.IncrementViewCount(ctx, p.ID); err != nil {
		s.log.WarnContext(ctx, "increment view count failed",
			slog.Int64("post_id", p.ID),
			slog.Any("error", err),
		)
	} else {
		p.ViewCount++
	}

	return p, nil
}

// ListPosts returns a page of posts plus the total match count.
// Non-admin callers only see published posts.
func (s *Service) ListPosts(ctx context.Context, actor domain.Identity, input ListPostsInput) ([]*domain.Post, int, error) {
	filter := domain.PostFilter{
		Category: trimOrNil(input.Category),
		Tag:      trimOrNil(input.Tag),
		Limit:    input.Limit,
		Offset:   input.Offset,
	}

	if s.requireAdmin(ctx, actor) != nil {
		filter.PublishedOnly = true
	}

	posts, total, err := s.posts.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}

	return posts, total, nil
}
