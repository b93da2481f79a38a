package post

import (
	"context"
	"sync"

	"github.com/heartmarshall/blog-backend/internal/domain"
)

var (
	_ postRepo = &postRepoMock{}
	_ userRepo = &userRepoMock{}
	_ eventBus = &eventBusMock{}
)

type postRepoMock struct {
	GetByIDFunc            func(ctx context.Context, id int64) (*domain.Post, error)
	GetBySlugFunc          func(ctx context.Context, slug string) (*domain.Post, error)
	ExistsByTitleFunc      func(ctx context.Context, title string) (bool, error)
	CreateFunc             func(ctx context.Context, p *domain.Post) (*domain.Post, error)
	UpdateFunc             func(ctx context.Context, p *domain.Post) error
	IncrementViewCountFunc func(ctx context.Context, id int64) error
	IncrementLikeCountFunc func(ctx context.Context, id int64) error
	DecrementLikeCountFunc func(ctx context.Context, id int64) error
	ListFunc               func(ctx context.Context, f domain.PostFilter) ([]*domain.Post, int, error)
}

func (m *postRepoMock) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	if m.GetByIDFunc == nil {
		panic("postRepoMock.GetByIDFunc is nil")
	}
	return m.GetByIDFunc(ctx, id)
}

func (m *postRepoMock) GetBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	if m.GetBySlugFunc == nil {
		panic("postRepoMock.GetBySlugFunc is nil")
	}
	return m.GetBySlugFunc(ctx, slug)
}

func (m *postRepoMock) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	if m.ExistsByTitleFunc == nil {
		panic("postRepoMock.ExistsByTitleFunc is nil")
	}
	return m.ExistsByTitleFunc(ctx, title)
}

func (m *postRepoMock) Create(ctx context.Context, p *domain.Post) (*domain.Post, error) {
	if m.CreateFunc == nil {
		panic("postRepoMock.CreateFunc is nil")
	}
	return m.CreateFunc(ctx, p)
}

func (m *postRepoMock) Update(ctx context.Context, p *domain.Post) error {
	if m.UpdateFunc == nil {
		panic("postRepoMock.UpdateFunc is nil")
	}
	return m.UpdateFunc(ctx, p)
}

func (m *postRepoMock) IncrementViewCount(ctx context.Context, id int64) error {
	if m.IncrementViewCountFunc == nil {
		panic("postRepoMock.IncrementViewCountFunc is nil")
	}
	return m.IncrementViewCountFunc(ctx, id)
}

func (m *postRepoMock) IncrementLikeCount(ctx context.Context, id int64) error {
	if m.IncrementLikeCountFunc == nil {
		panic("postRepoMock.IncrementLikeCountFunc is nil")
	}
	return m.IncrementLikeCountFunc(ctx, id)
}

func (m *postRepoMock) DecrementLikeCount(ctx context.Context, id int64) error {
	if m.DecrementLikeCountFunc == nil {
		panic("postRepoMock.DecrementLikeCountFunc is nil")
	}
	return m.DecrementLikeCountFunc(ctx, id)
}

func (m *postRepoMock) List(ctx context.Context, f domain.PostFilter) ([]*domain.Post, int, error) {
	if m.ListFunc == nil {
		panic("postRepoMock.ListFunc is nil")
	}
	return m.ListFunc(ctx, f)
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
