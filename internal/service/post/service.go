// Package post implements blog post management: authoring, publishing
// and public read operations.
package post

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/heartmarshall/blog-backend/internal/domain"
)

type postRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Post, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Post, error)
	ExistsByTitle(ctx context.Context, title string) (bool, error)
	Create(ctx context.Context, p *domain.Post) (*domain.Post, error)
	Update(ctx context.Context, p *domain.Post) error
	IncrementViewCount(ctx context.Context, id int64) error
	IncrementLikeCount(ctx context.Context, id int64) error
	DecrementLikeCount(ctx context.Context, id int64) error
	List(ctx context.Context, f domain.PostFilter) ([]*domain.Post, int, error)
}

type userRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type eventBus interface {
	Publish(e domain.Event)
}

// Service provides post management operations.
type Service struct {
	posts  postRepo
	users  userRepo
	events eventBus
	admin  domain.AdminPolicy
	log    *slog.Logger

	// now is swapped in tests to pin the clock.
	now func() time.Time
}

// NewService creates a new Post service.
func NewService(
	log *slog.Logger,
	posts postRepo,
	users userRepo,
	events eventBus,
	admin domain.AdminPolicy,
) *Service {
	return &Service{
		posts:  posts,
		users:  users,
		events: events,
		admin:  admin,
		log:    log.With("service", "post"),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// requireAdmin checks that the actor is the configured site administrator.
// The username check is cheap; the external-ID check needs the user row.
func (s *Service) requireAdmin(ctx context.Context, actor domain.Identity) error {
	if !actor.Authenticated {
		return domain.ErrUnauthenticated
	}

	if s.admin.IsAdminUsername(actor.Username) {
		return nil
	}

	u, err := s.users.GetByID(ctx, actor.UserID)
	if err != nil {
		return fmt.Errorf("load actor: %w", err)
	}
	if u.ExternalID != nil && s.admin.IsAdminExternalID(*u.ExternalID) {
		return nil
	}

	return domain.ErrForbidden
}

// publishEvents hands drained aggregate events to the dispatcher.
// Called after the owning transaction commits.
func (s *Service) publishEvents(events []domain.Event) {
	for _, e := range events {
		s.events.Publish(e)
	}
}

// trimOrNil trims whitespace. Returns nil if result is empty.
func trimOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
