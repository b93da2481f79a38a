package domain

import "time"

// NotificationType distinguishes what a notification is about.
type NotificationType string

const (
	// NotificationTypeCommentOnPost notifies a post author about a new comment.
	NotificationTypeCommentOnPost NotificationType = "comment_on_post"
	// NotificationTypeReplyToComment notifies a comment author about a reply.
	NotificationTypeReplyToComment NotificationType = "reply_to_comment"
)

// IsValid reports whether the type is one of the known variants.
func (t NotificationType) IsValid() bool {
	switch t {
	case NotificationTypeCommentOnPost, NotificationTypeReplyToComment:
		return true
	}
	return false
}

func (t NotificationType) String() string { return string(t) }

// Notification is a recipient-scoped record with read/unread state.
// RecipientID is always set; SenderID is nil only for system-originated
// notifications, which the comment pipeline never produces.
type Notification struct {
	ID               int64
	RecipientID      int64
	SenderID         *int64
	Type             NotificationType
	Content          string
	RelatedPostID    int64
	RelatedCommentID int64
	Read             bool
	CreatedAt        time.Time
}

// MarkAsRead flips the read flag. Idempotent.
func (n *Notification) MarkAsRead() {
	n.Read = true
}
