package comment

import (
	"context"
	"fmt"

	"github.com/heartmarshall/blog-backend/internal/domain"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// ListComments returns a page of a post's comments in chronological
// order, plus the total count.
func (s *Service) ListComments(ctx context.Context, postID int64, limit, offset int) ([]*domain.Comment, int, error) {
	if postID <= 0 {
		return nil, 0, domain.NewValidationError("post_id", "required")
	}
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	// Listing a missing post is ErrNotFound, not an empty page.
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, 0, fmt.Errorf("get post: %w", err)
	}

	comments, err := s.comments.ListByPostID(ctx, postID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list comments: %w", err)
	}

	total, err := s.comments.CountByPostID(ctx, postID)
	if err != nil {
		return nil, 0, fmt.Errorf("count comments: %w", err)
	}

	return comments, total, nil
}
