package post

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/blog-backend/internal/domain"
)

// UpdatePost replaces the content of a post. Published posts can only
// be edited within the edit window after publication.
func (s *Service) UpdatePost(ctx context.Context, actor domain.Identity, input UpdatePostInput) (*domain.Post, error) {
	if err := s.requireAdmin(ctx, actor); err != nil {
		return nil, err
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	p, err := s.posts.GetByID(ctx, input.PostID)
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}

	params := domain.PostContentParams{
		Title:      strings.TrimSpace(input.Title),
		Slug:       strings.TrimSpace(input.Slug),
		Content:    input.Content,
		Summary:    trimOrNil(input.Summary),
		CoverImage: trimOrNil(input.CoverImage),
		Category:   trimOrNil(input.Category),
		Tags:       cleanTags(input.Tags),
	}

	if err := p.UpdateContent(params, s.now()); err != nil {
		return nil, fmt.Errorf("update post %d: %w", input.PostID, err)
	}

	if err := s.posts.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("save post: %w", err)
	}

	s.log.InfoContext(ctx, "post updated", slog.Int64("post_id", p.ID))

	return p, nil
}

// cleanTags trims tags and drops blanks and duplicates, preserving order.
func cleanTags(tags []string) []string {
	var result []string
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		trimmed := strings.TrimSpace(tag)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		result = append(result, trimmed)
	}
	return result
}
