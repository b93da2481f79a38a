// Package notification implements the Notification repository using PostgreSQL.
package notification

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/blog-backend/internal/adapter/postgres"
	"github.com/heartmarshall/blog-backend/internal/domain"
)

// Repo provides notification persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new notification repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const notificationColumns = `
    id, recipient_id, sender_id, type, content,
    related_post_id, related_comment_id, is_read, created_at`

const getByIDSQL = `SELECT` + notificationColumns + ` FROM notifications WHERE id = $1`

const createSQL = `
INSERT INTO notifications (
    recipient_id, sender_id, type, content,
    related_post_id, related_comment_id, is_read, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id`

const markReadSQL = `UPDATE notifications SET is_read = TRUE WHERE id = $1`

const markAllReadSQL = `UPDATE notifications SET is_read = TRUE WHERE recipient_id = $1 AND is_read = FALSE`

const countUnreadSQL = `SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND is_read = FALSE`

const listByRecipientSQL = `SELECT` + notificationColumns + `
FROM notifications
WHERE recipient_id = $1
ORDER BY created_at DESC, id DESC
LIMIT $2 OFFSET $3`

// GetByID returns a notification by primary key.
// Returns domain.ErrNotFound if it does not exist.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.Notification, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	n, err := scanNotification(q.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "notification", id)
	}
	return n, nil
}

// Create inserts a new notification and returns it with the assigned ID.
func (r *Repo) Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	err := q.QueryRow(ctx, createSQL,
		n.RecipientID, ptrToPgInt8(n.SenderID), string(n.Type), n.Content,
		n.RelatedPostID, n.RelatedCommentID, n.Read, n.CreatedAt,
	).Scan(&n.ID)
	if err != nil {
		return nil, postgres.MapError(err, "notification", 0)
	}

	return n, nil
}

// MarkRead flips a single notification to read.
// Returns domain.ErrNotFound if it does not exist.
func (r *Repo) MarkRead(ctx context.Context, id int64) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, markReadSQL, id)
	if err != nil {
		return postgres.MapError(err, "notification", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("notification %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

// MarkAllRead flips every unread notification of a recipient to read
// and returns how many rows changed.
func (r *Repo) MarkAllRead(ctx context.Context, recipientID int64) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, markAllReadSQL, recipientID)
	if err != nil {
		return 0, postgres.MapError(err, "notification", 0)
	}

	return int(tag.RowsAffected()), nil
}

// CountUnread returns the number of unread notifications for a recipient.
func (r *Repo) CountUnread(ctx context.Context, recipientID int64) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	if err := q.QueryRow(ctx, countUnreadSQL, recipientID).Scan(&count); err != nil {
		return 0, postgres.MapError(err, "notification", 0)
	}
	return count, nil
}

// ListByRecipient returns a page of notifications, newest first.
func (r *Repo) ListByRecipient(ctx context.Context, recipientID int64, limit, offset int) ([]*domain.Notification, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listByRecipientSQL, recipientID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	notifications, err := scanNotifications(rows)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	return notifications, nil
}

func scanNotifications(rows pgx.Rows) ([]*domain.Notification, error) {
	var result []*domain.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if result == nil {
		result = []*domain.Notification{}
	}

	return result, nil
}

func scanNotification(row pgx.Row) (*domain.Notification, error) {
	var (
		n        domain.Notification
		senderID pgtype.Int8
		ntype    string
	)

	err := row.Scan(
		&n.ID, &n.RecipientID, &senderID, &ntype, &n.Content,
		&n.RelatedPostID, &n.RelatedCommentID, &n.Read, &n.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if senderID.Valid {
		v := senderID.Int64
		n.SenderID = &v
	}
	n.Type = domain.NotificationType(ntype)

	return &n, nil
}

func ptrToPgInt8(v *int64) pgtype.Int8 {
	if v == nil {
		return pgtype.Int8{}
	}
	return pgtype.Int8{Int64: *v, Valid: true}
}
