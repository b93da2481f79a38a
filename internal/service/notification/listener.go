package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/blog-backend/internal/domain"
)

// excerptLength is how much of a comment makes it into the
// notification text before truncation.
const excerptLength = 50

// HandleEvent builds notifications from comment events. It is
// subscribed to the dispatcher, so failures here never affect the
// comment write that produced the event.
func (s *Service) HandleEvent(ctx context.Context, e domain.Event) error {
	created, ok := e.(domain.CommentCreated)
	if !ok {
		return nil
	}
	return s.onCommentCreated(ctx, created)
}

// onCommentCreated notifies the parent comment's author for replies,
// otherwise the post's author. Nobody is notified about their own
// comment.
func (s *Service) onCommentCreated(ctx context.Context, e domain.CommentCreated) error {
	var (
		recipientID int64
		ntype       domain.NotificationType
		content     string
	)

	if e.ParentCommentID != nil {
		parent, err := s.comments.GetByID(ctx, *e.ParentCommentID)
		if err != nil {
			return fmt.Errorf("load parent comment %d: %w", *e.ParentCommentID, err)
		}
		recipientID = parent.UserID
		ntype = domain.NotificationTypeReplyToComment
		content = fmt.Sprintf(`Someone replied to your comment: "%s"`, excerpt(e.Content))
	} else {
		post, err := s.posts.GetByID(ctx, e.PostID)
		if err != nil {
			return fmt.Errorf("load post %d: %w", e.PostID, err)
		}
		recipientID = post.AuthorID
		ntype = domain.NotificationTypeCommentOnPost
		content = fmt.Sprintf(`Someone commented on your post "%s": "%s"`, post.Title, excerpt(e.Content))
	}

	if recipientID == e.AuthorID {
		return nil
	}

	senderID := e.AuthorID
	n := &domain.Notification{
		RecipientID:      recipientID,
		SenderID:         &senderID,
		Type:             ntype,
		Content:          content,
		RelatedPostID:    e.PostID,
		RelatedCommentID: e.CommentID,
		CreatedAt:        s.now(),
	}

	created, err := s.notifications.Create(ctx, n)
	if err != nil {
		return fmt.Errorf("create notification: %w", err)
	}

	s.log.InfoContext(ctx, "notification created",
		slog.Int64("notification_id", created.ID),
		slog.Int64("recipient_id", recipientID),
		slog.String("type", string(ntype)),
	)

	return nil
}

// excerpt returns the first 50 characters of the content, with "..."
// appended when anything was cut off.
func excerpt(content string) string {
	runes := []rune(content)
	if len(runes) <= excerptLength {
		return content
	}
	return string(runes[:excerptLength]) + "..."
}
