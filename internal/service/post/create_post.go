package post

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/blog-backend/internal/domain"
)

// CreatePost creates a new draft post. Only the site administrator may
// author posts.
func (s *Service) CreatePost(ctx context.Context, actor domain.Identity, input CreatePostInput) (*domain.Post, error) {
	if err := s.requireAdmin(ctx, actor); err != nil {
		return nil, err
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	slug := strings.TrimSpace(input.Slug)

	exists, err := s.posts.ExistsByTitle(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("check title: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("post with title %q: %w", title, domain.ErrAlreadyExists)
	}

	now := s.now()

	p := domain.NewPost(title, slug, input.Content, actor.UserID, now)
	p.Summary = trimOrNil(input.Summary)
	p.CoverImage = trimOrNil(input.CoverImage)
	p.Category = trimOrNil(input.Category)
	for _, tag := range input.Tags {
		p.AddTag(tag, now)
	}

	created, err := s.posts.Create(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	s.publishEvents(stampPostID(created.CollectEvents(), created.ID))

	s.log.InfoContext(ctx, "post created",
		slog.Int64("post_id", created.ID),
		slog.String("title", title),
		slog.Int64("author_id", actor.UserID),
	)

	return created, nil
}

// stampPostID fills in the post ID on events recorded before the insert
// assigned one.
func stampPostID(events []domain.Event, postID int64) []domain.Event {
	for i, e := range events {
		if created, ok := e.(domain.PostCreated); ok && created.PostID == 0 {
			created.PostID = postID
			events[i] = created
		}
	}
	return events
}
