// Package notification implements user notifications: building them from
// comment events and the read/unread lifecycle.
package notification

import (
	"context"
	"log/slog"
	"time"

	"github.com/heartmarshall/blog-backend/internal/domain"
)

type notificationRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Notification, error)
	Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
	MarkRead(ctx context.Context, id int64) error
	MarkAllRead(ctx context.Context, recipientID int64) (int, error)
	CountUnread(ctx context.Context, recipientID int64) (int, error)
	ListByRecipient(ctx context.Context, recipientID int64, limit, offset int) ([]*domain.Notification, error)
}

type commentRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Comment, error)
}

type postRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Post, error)
}

// Service provides notification operations and builds notifications
// from comment events.
type Service struct {
	notifications notificationRepo
	comments      commentRepo
	posts         postRepo
	log           *slog.Logger

	// now is swapped in tests to pin the clock.
	now func() time.Time
}

// NewService creates a new Notification service.
func NewService(
	log *slog.Logger,
	notifications notificationRepo,
	comments commentRepo,
	posts postRepo,
) *Service {
	return &Service{
		notifications: notifications,
		comments:      comments,
		posts:         posts,
		log:           log.With("service", "notification"),
		now:           func() time.Time { return time.Now().UTC() },
	}
}
