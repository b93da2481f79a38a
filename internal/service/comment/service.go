// Package comment implements commenting on blog posts: composition rules,
// deletion authorization and the denormalized comment counter.
package comment

import (
	"context"
	"log/slog"
	"time"

	"github.com/heartmarshall/blog-backend/internal/domain"
)

type commentRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Comment, error)
	Create(ctx context.Context, c *domain.Comment) (*domain.Comment, error)
	Delete(ctx context.Context, id int64) error
	CountByPostID(ctx context.Context, postID int64) (int, error)
	ListByPostID(ctx context.Context, postID int64, limit, offset int) ([]*domain.Comment, error)
}

type postRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Post, error)
	Update(ctx context.Context, p *domain.Post) error
}

type userRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type eventBus interface {
	Publish(e domain.Event)
}

// Service provides comment operations.
type Service struct {
	comments commentRepo
	posts    postRepo
	users    userRepo
	tx       txManager
	events   eventBus
	admin    domain.AdminPolicy
	log      *slog.Logger

	// now is swapped in tests to pin the clock.
	now func() time.Time
}

// NewService creates a new Comment service.
func NewService(
	log *slog.Logger,
	comments commentRepo,
	posts postRepo,
	users userRepo,
	tx txManager,
	events eventBus,
	admin domain.AdminPolicy,
) *Service {
	return &Service{
		comments: comments,
		posts:    posts,
		users:    users,
		tx:       tx,
		events:   events,
		admin:    admin,
		log:      log.With("service", "comment"),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// isAdmin reports whether the actor is the site administrator.
// Lookup failures count as "not admin": deletion then falls through to
// the ownership check.
func (s *Service) isAdmin(ctx context.Context, actor domain.Identity) bool {
	if !actor.Authenticated {
		return false
	}
	if s.admin.IsAdminUsername(actor.Username) {
		return true
	}

	u, err := s.users.GetByID(ctx, actor.UserID)
	if err != nil {
		s.log.WarnContext(ctx, "admin check: load actor failed",
			slog.Int64("user_id", actor.UserID),
			slog.Any("error", err),
		)
		return false
	}

	return u.ExternalID != nil && s.admin.IsAdminExternalID(*u.ExternalID)
}
