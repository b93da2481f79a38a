package comment

import (
	"context"
	"sync"

	"github.com/heartmarshall/blog-backend/internal/domain"
)

var (
	_ commentRepo = &commentRepoMock{}
	_ postRepo    = &postRepoMock{}
	_ userRepo    = &userRepoMock{}
	_ txManager   = &txManagerMock{}
	_ eventBus    = &eventBusMock{}
)

type commentRepoMock struct {
	GetByIDFunc       func(ctx context.Context, id int64) (*domain.Comment, error)
	CreateFunc        func(ctx context.Context, c *domain.Comment) (*domain.Comment, error)
	DeleteFunc        func(ctx context.Context, id int64) error
	CountByPostIDFunc func(ctx context.Context, postID int64) (int, error)
	ListByPostIDFunc  func(ctx context.Context, postID int64, limit, offset int) ([]*domain.Comment, error)
}

func (m *commentRepoMock) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	if m.GetByIDFunc == nil {
		panic("commentRepoMock.GetByIDFunc is nil")
	}
	return m.GetByIDFunc(ctx, id)
}

func (m *commentRepoMock) Create(ctx context.Context, c *domain.Comment) (*domain.Comment, error) {
	if m.CreateFunc == nil {
		panic("commentRepoMock.CreateFunc is nil")
	}
	return m.CreateFunc(ctx, c)
}

func (m *commentRepoMock) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc == nil {
		panic("commentRepoMock.DeleteFunc is nil")
	}
	return m.DeleteFunc(ctx, id)
}

func (m *commentRepoMock) CountByPostID(ctx context.Context, postID int64) (int, error) {
	if m.CountByPostIDFunc == nil {
		panic("commentRepoMock.CountByPostIDFunc is nil")
	}
	return m.CountByPostIDFunc(ctx, postID)
}

func (m *commentRepoMock) ListByPostID(ctx context.Context, postID int64, limit, offset int) ([]*domain.Comment, error) {
	if m.ListByPostIDFunc == nil {
		panic("commentRepoMock.ListByPostIDFunc is nil")
	}
	return m.ListByPostIDFunc(ctx, postID, limit, offset)
}

type postRepoMock struct {
	GetByIDFunc func(ctx context.Context, id int64) (*domain.Post, error)
	UpdateFunc  func(ctx context.Context, p *domain.Post) error
}

func (m *postRepoMock) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	if m.GetByIDFunc == nil {
		panic("postRepoMock.GetByIDFunc is nil")
	}
	return m.GetByIDFunc(ctx, id)
}

func (m *postRepoMock) Update(ctx context.Context, p *domain.Post) error {
	if m.UpdateFunc == nil {
		panic("postRepoMock.UpdateFunc is nil")
	}
	return m.UpdateFunc(ctx, p)
}

type userRepoMock struct {
	GetByIDFunc func(ctx context.Context, id int64) (*domain.User, error)
}

func (m *userRepoMock) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.GetByIDFunc == nil {
		panic("userRepoMock.GetByIDFunc is nil")
	}
	return m.GetByIDFunc(ctx, id)
}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.RunInTxFunc == nil {
		panic("txManagerMock.RunInTxFunc is nil")
	}
	return m.RunInTxFunc(ctx, fn)
}

// eventBusMock records published events for inspection.
type eventBusMock struct {
	mu     sync.Mutex
	events []domain.Event
}

func (m *eventBusMock) Publish(e domain.Event) {
	m.mu.Lock()
	m.events = append(m.events, e)
	m.mu.Unlock()
}

func (m *eventBusMock) Events() []domain.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Event(nil), m.events...)
}

// adminPolicyStub is a fixed admin policy for tests.
type adminPolicyStub struct {
	username   string
	externalID string
}

func (a adminPolicyStub) IsAdminUsername(username string) bool {
	return a.username != "" && a.username == username
}

func (a adminPolicyStub) IsAdminExternalID(externalID string) bool {
	return a.externalID != "" && a.externalID == externalID
}
