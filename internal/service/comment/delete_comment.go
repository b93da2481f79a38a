package comment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/blog-backend/internal/domain"
)

// DeleteComment removes a comment. The comment's author and the site
// administrator may delete it; everyone else gets ErrForbidden.
// The delete and the post's comment counter recompute happen in one
// transaction.
func (s *Service) DeleteComment(ctx context.Context, actor domain.Identity, commentID int64) error {
	if !actor.Authenticated {
		return domain.ErrUnauthenticated
	}

	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("comment %d: %w", commentID, domain.ErrNotFound)
		}
		return fmt.Errorf("get comment: %w", err)
	}

	if err := AssertCanDelete(actor, comment, s.isAdmin(ctx, actor)); err != nil {
		return err
	}

	post, err := s.posts.GetByID(ctx, comment.PostID)
	if err != nil {
		return fmt.Errorf("get post: %w", err)
	}

	now := s.now()

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if deleteErr := s.comments.Delete(txCtx, commentID); deleteErr != nil {
			return fmt.Errorf("delete comment: %w", deleteErr)
		}

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
		return err
	}

	s.log.InfoContext(ctx, "comment deleted",
		slog.Int64("comment_id", commentID),
		slog.Int64("post_id", post.ID),
		slog.Int64("actor_id", actor.UserID),
	)

	return nil
}
