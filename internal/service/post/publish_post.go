package post

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/blog-backend/internal/domain"
)

// PublishPost makes a post publicly visible and records a PostPublished
// event. Publishing an already-published post re-stamps the publish
// timestamp, which resets the edit window.
func (s *Service) PublishPost(ctx context.Context, actor domain.Identity, postID int64) (*domain.Post, error) {
	if err := s.requireAdmin(ctx, actor); err != nil {
		return nil, err
	}

	p, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}

	if err := p.Publish(s.now()); err != nil {
		return nil, fmt.Errorf("publish post %d: %w", postID, err)
	}

	if err := s.posts.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("save post: %w", err)
	}

	s.publishEvents(p.CollectEvents())

	s.log.InfoContext(ctx, "post published",
		slog.Int64("post_id", p.ID),
		slog.String("title", p.Title),
	)

	return p, nil
}

// UnpublishPost reverts a post to a draft.
func (s *Service) UnpublishPost(ctx context.Context, actor domain.Identity, postID int64) (*domain.Post, error) {
	if err := s.requireAdmin(ctx, actor); err != nil {
		return nil, err
	}

	p, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}

	p.Unpublish(s.now())

	if err := s.posts.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("save post: %w", err)
	}

	s.log.InfoContext(ctx, "post unpublished", slog.Int64("post_id", p.ID))

	return p, nil
}
