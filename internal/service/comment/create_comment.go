package comment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/blog-backend/internal/domain"
)

// CreateCommentInput holds the parameters for creating a comment.
type CreateCommentInput struct {
	PostID   int64
	Content  string
	ParentID *int64
}

// Validate checks the structural fields. Content rules are enforced by
// ComposeNewComment.
func (i CreateCommentInput) Validate() error {
	var errs []domain.FieldError

	if i.PostID <= 0 {
		errs = append(errs, domain.FieldError{Field: "post_id", Message: "required"})
	}
	if i.ParentID != nil && *i.ParentID <= 0 {
		errs = append(errs, domain.FieldError{Field: "parent_comment_id", Message: "must be positive"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// CreateComment adds a comment to a published post. The comment insert
// and the post's comment counter recompute happen in one transaction;
// the CommentCreated event is published only after the commit.
func (s *Service) CreateComment(ctx context.Context, actor domain.Identity, input CreateCommentInput) (*domain.Comment, error) {
	if !actor.Authenticated {
		return nil, domain.ErrUnauthenticated
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	post, err := s.posts.GetByID(ctx, input.PostID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("post %d: %w", input.PostID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get post: %w", err)
	}

	if input.ParentID != nil {
		parent, err := s.comments.GetByID(ctx, *input.ParentID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.NewValidationError("parent_comment_id", "parent comment does not exist")
			}
			return nil, fmt.Errorf("get parent comment: %w", err)
		}
		if parent.PostID != post.ID {
			return nil, domain.NewValidationError("parent_comment_id", "parent comment belongs to a different post")
		}
	}

	now := s.now()

	comment, err := ComposeNewComment(actor, post, input.Content, input.ParentID, now)
	if err != nil {
		return nil, err
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		created, createErr := s.comments.Create(txCtx, comment)
		if createErr != nil {
			return fmt.Errorf("create comment: %w", createErr)
		}
		comment = created

		count, countErr := s.comments.CountByPostID(txCtx, post.ID)
		if countErr != nil {
			return fmt.Errorf("count comments: %w", countErr)
		}

		post.SetCommentCount(count, now)
		if updateErr := s.posts.Update(txCtx, post); updateErr != nil {
			return fmt.Errorf("update post counter: %w", updateErr)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.events.Publish(domain.CommentCreated{
		CommentID:       comment.ID,
		PostID:          comment.PostID,
		AuthorID:        comment.UserID,
		Content:         comment.Content,
		ParentCommentID: comment.ParentID,
		CreatedAt:       comment.CreatedAt,
	})

	s.log.InfoContext(ctx, "comment created",
		slog.Int64("comment_id", comment.ID),
		slog.Int64("post_id", comment.PostID),
		slog.Int64("author_id", comment.UserID),
	)

	return comment, nil
}
