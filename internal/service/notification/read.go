package notification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/blog-backend/internal/domain"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ListNotifications returns a page of the actor's notifications, newest
// first.
func (s *Service) ListNotifications(ctx context.Context, actor domain.Identity, limit, offset int) ([]*domain.Notification, error) {
	if !actor.Authenticated {
		return nil, domain.ErrUnauthenticated
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

	list, err := s.notifications.ListByRecipient(ctx, actor.UserID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	return list, nil
}

// CountUnread returns the number of the actor's unread notifications.
func (s *Service) CountUnread(ctx context.Context, actor domain.Identity) (int, error) {
	if !actor.Authenticated {
		return 0, domain.ErrUnauthenticated
	}

	count, err := s.notifications.CountUnread(ctx, actor.UserID)
	if err != nil {
		return 0, fmt.Errorf("count unread: %w", err)
	}

	return count, nil
}

// MarkAsRead marks one of the actor's notifications as read.
// Marking someone else's notification is ErrForbidden.
func (s *Service) MarkAsRead(ctx context.Context, actor domain.Identity, notificationID int64) error {
	if !actor.Authenticated {
		return domain.ErrUnauthenticated
	}

	n, err := s.notifications.GetByID(ctx, notificationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("notification %d: %w", notificationID, domain.ErrNotFound)
		}
		return fmt.Errorf("get notification: %w", err)
	}

	if n.RecipientID != actor.UserID {
		return fmt.Errorf("notification %d: %w", notificationID, domain.ErrForbidden)
	}

	if n.Read {
		return nil
	}

	if err := s.notifications.MarkRead(ctx, notificationID); err != nil {
		return fmt.Errorf("mark read: %w", err)
	}

	return nil
}

// MarkAllAsRead marks every unread notification of the actor as read
// and returns how many were flipped.
func (s *Service) MarkAllAsRead(ctx context.Context, actor domain.Identity) (int, error) {
	if !actor.Authenticated {
		return 0, domain.ErrUnauthenticated
	}

	count, err := s.notifications.MarkAllRead(ctx, actor.UserID)
	if err != nil {
		return 0, fmt.Errorf("mark all read: %w", err)
	}

	if count > 0 {
		s.log.InfoContext(ctx, "notifications marked read",
			slog.Int64("user_id", actor.UserID),
			slog.Int("count", count),
		)
	}

	return count, nil
}
