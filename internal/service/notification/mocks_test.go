package notification

import (
	"context"
	"sync"

	"github.com/heartmarshall/blog-backend/internal/domain"
)

var (
	_ notificationRepo = &notificationRepoMock{}
	_ commentRepo      = &commentRepoMock{}
	_ postRepo         = &postRepoMock{}
)

type notificationRepoMock struct {
	GetByIDFunc         func(ctx context.Context, id int64) (*domain.Notification, error)
	CreateFunc          func(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
	MarkReadFunc        func(ctx context.Context, id int64) error
	MarkAllReadFunc     func(ctx context.Context, recipientID int64) (int, error)
	CountUnreadFunc     func(ctx context.Context, recipientID int64) (int, error)
	ListByRecipientFunc func(ctx context.Context, recipientID int64, limit, offset int) ([]*domain.Notification, error)

	mu      sync.Mutex
	created []*domain.Notification
}

func (m *notificationRepoMock) GetByID(ctx context.Context, id int64) (*domain.Notification, error) {
	if m.GetByIDFunc == nil {
		panic("notificationRepoMock.GetByIDFunc is nil")
	}
	return m.GetByIDFunc(ctx, id)
}

func (m *notificationRepoMock) Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	m.mu.Lock()
	m.created = append(m.created, n)
	m.mu.Unlock()
	if m.CreateFunc == nil {
		n.ID = int64(len(m.created))
		return n, nil
	}
	return m.CreateFunc(ctx, n)
}

func (m *notificationRepoMock) Created() []*domain.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*domain.Notification(nil), m.created...)
}

func (m *notificationRepoMock) MarkRead(ctx context.Context, id int64) error {
	if m.MarkReadFunc == nil {
		panic("notificationRepoMock.MarkReadFunc is nil")
	}
	return m.MarkReadFunc(ctx, id)
}

func (m *notificationRepoMock) MarkAllRead(ctx context.Context, recipientID int64) (int, error) {
	if m.MarkAllReadFunc == nil {
		panic("notificationRepoMock.MarkAllReadFunc is nil")
	}
	return m.MarkAllReadFunc(ctx, recipientID)
}

func (m *notificationRepoMock) CountUnread(ctx context.Context, recipientID int64) (int, error) {
	if m.CountUnreadFunc == nil {
		panic("notificationRepoMock.CountUnreadFunc is nil")
	}
	return m.CountUnreadFunc(ctx, recipientID)
}

func (m *notificationRepoMock) ListByRecipient(ctx context.Context, recipientID int64, limit, offset int) ([]*domain.Notification, error) {
	if m.ListByRecipientFunc == nil {
		panic("notificationRepoMock.ListByRecipientFunc is nil")
	}
	return m.ListByRecipientFunc(ctx, recipientID, limit, offset)
}

type commentRepoMock struct {
	GetByIDFunc func(ctx context.Context, id int64) (*domain.Comment, error)
}

func (m *commentRepoMock) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	if m.GetByIDFunc == nil {
		panic("commentRepoMock.GetByIDFunc is nil")
	}
	return m.GetByIDFunc(ctx, id)
}

type postRepoMock struct {
	GetByIDFunc func(ctx context.Context, id int64) (*domain.Post, error)
}

func (m *postRepoMock) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	if m.GetByIDFunc == nil {
		panic("postRepoMock.GetByIDFunc is nil")
	}
	return m.GetByIDFunc(ctx, id)
}
