package comment

import (
	"fmt"
	"time"

	"github.com/heartmarshall/blog-backend/internal/domain"
)

// ComposeNewComment builds a valid comment for a post, or rejects it.
// Checks run in a fixed order so the caller gets the most fundamental
// failure first:
//
//  1. the author must be authenticated (ErrUnauthenticated)
//  2. the post must exist (ErrNotFound)
//  3. the post must be published (ErrInvalidState)
//  4. the content must be valid after normalization (ErrValidation)
//
// The returned comment carries the normalized content and has no ID yet.
func ComposeNewComment(
	actor domain.Identity,
	post *domain.Post,
	content string,
	parentID *int64,
	now time.Time,
) (*domain.Comment, error) {
	if !actor.Authenticated {
		return nil, domain.ErrUnauthenticated
	}
	if post == nil {
		return nil, fmt.Errorf("post: %w", domain.ErrNotFound)
	}
	if !post.Published {
		return nil, fmt.Errorf("post %d is not published: %w", post.ID, domain.ErrInvalidState)
	}

	normalized := domain.NormalizeCommentContent(content)
	if !domain.IsValidCommentContent(normalized) {
		return nil, domain.NewValidationError("content", "must be non-blank and at most 1000 characters")
	}

	return &domain.Comment{
		PostID:     post.ID,
		UserID:     actor.UserID,
		AuthorName: actor.Username,
		Content:    normalized,
		ParentID:   parentID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// AssertCanDelete decides whether the actor may delete the comment.
// The admin check runs before the ownership check; either suffices.
func AssertCanDelete(actor domain.Identity, comment *domain.Comment, isAdmin bool) error {
	if !actor.Authenticated {
		return domain.ErrUnauthenticated
	}
	if comment == nil {
		return fmt.Errorf("comment: %w", domain.ErrNotFound)
	}
	if isAdmin {
		return nil
	}
	if comment.OwnedBy(actor.UserID) {
		return nil
	}
	return fmt.Errorf("comment %d: %w", comment.ID, domain.ErrForbidden)
}
