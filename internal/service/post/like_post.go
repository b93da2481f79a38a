package post

import (
	"context"
	"fmt"

	"github.com/heartmarshall/blog-backend/internal/domain"
)

// LikePost adds one like to a published post. Likes are plain counters:
// nothing stops a user from liking twice, matching the public surface.
func (s *Service) LikePost(ctx context.Context, actor domain.Identity, postID int64) error {
	return s.adjustLikes(ctx, actor, postID, s.posts.IncrementLikeCount)
}

// UnlikePost removes one like from a published post. The counter never
// goes below zero.
func (s *Service) UnlikePost(ctx context.Context, actor domain.Identity, postID int64) error {
	return s.adjustLikes(ctx, actor, postID, s.posts.DecrementLikeCount)
}

func (s *Service) adjustLikes(ctx context.Context, actor domain.Identity, postID int64, adjust func(context.Context, int64) error) error {
	if !actor.Authenticated {
		return domain.ErrUnauthenticated
	}

	p, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return fmt.Errorf("get post: %w", err)
	}

	// Drafts are invisible to readers, so liking one is a not-found.
	if !p.Published {
		return fmt.Errorf("post %d: %w", postID, domain.ErrNotFound)
	}

	if err := adjust(ctx, postID); err != nil {
		return fmt.Errorf("adjust likes: %w", err)
	}

	return nil
}
