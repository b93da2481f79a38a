package domain

import (
	"slices"
	"strings"
	"time"
)

const (
	// EditWindow is how long a published post stays editable after publishing.
	EditWindow = 24 * time.Hour

	// PopularViewThreshold is the view count above which a post counts as popular.
	PopularViewThreshold = 1000
)

// Post is the blog post aggregate. It owns the publish/edit state machine
// and records lifecycle events which the application layer hands to the
// dispatcher after the post is saved.
type Post struct {
	ID           int64
	Title        string
	Slug         string
	Content      string
	Summary      *string
	CoverImage   *string
	Category     *string
	Tags         []string
	Published    bool
	ViewCount    int
	LikeCount    int
	CommentCount int
	AuthorID     int64
	PublishedAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time

	events []Event
}

// NewPost creates an unpublished post and records a PostCreated event.
// Field validity is checked separately via IsValid before publishing.
func NewPost(title, slug, content string, authorID int64, now time.Time) *Post {
	p := &Post{
		Title:     title,
		Slug:      slug,
		Content:   content,
		AuthorID:  authorID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	p.record(PostCreated{
		Title:     title,
		AuthorID:  authorID,
		CreatedAt: now,
	})
	return p
}

// PostContentParams carries the full replacement content for UpdateContent.
type PostContentParams struct {
	Title      string
	Slug       string
	Content    string
	Summary    *string
	CoverImage *string
	Category   *string
	Tags       []string
}

// IsValid reports whether the post has all required fields set.
// Publishing requires a valid post.
func (p *Post) IsValid() bool {
	return strings.TrimSpace(p.Title) != "" &&
		strings.TrimSpace(p.Slug) != "" &&
		strings.TrimSpace(p.Content) != "" &&
		p.AuthorID != 0
}

// IsPublished reports whether the post is currently published.
func (p *Post) IsPublished() bool {
	return p.Published
}

// Publish transitions the post to published and records a PostPublished event.
// Calling Publish on an already-published post is NOT a no-op: it re-stamps
// PublishedAt and UpdatedAt, which resets the edit window.
// Returns ErrInvalidState if the post is not valid.
func (p *Post) Publish(now time.Time) error {
	if !p.IsValid() {
		return ErrInvalidState
	}

	p.Published = true
	publishedAt := now
	p.PublishedAt = &publishedAt
	p.UpdatedAt = now

	p.record(PostPublished{
		PostID:      p.ID,
		Title:       p.Title,
		AuthorID:    p.AuthorID,
		PublishedAt: now,
	})

	return nil
}

// Unpublish reverts the post to a draft and clears the publish timestamp.
func (p *Post) Unpublish(now time.Time) {
	p.Published = false
	p.PublishedAt = nil
	p.UpdatedAt = now
}

// UpdateContent overwrites the post's content fields.
// Returns ErrInvalidState if the post is published and the edit window
// has elapsed. Unpublished posts are always editable.
func (p *Post) UpdateContent(params PostContentParams, now time.Time) error {
	if !p.CanBeEditedAt(now) {
		return ErrInvalidState
	}

	p.Title = params.Title
	p.Slug = params.Slug
	p.Content = params.Content
	p.Summary = params.Summary
	p.CoverImage = params.CoverImage
	p.Category = params.Category
	p.Tags = slices.Clone(params.Tags)
	p.UpdatedAt = now

	return nil
}

// AddTag adds a trimmed tag with set semantics.
// Blank tags and duplicates are silently ignored.
func (p *Post) AddTag(tag string, now time.Time) {
	trimmed := strings.TrimSpace(tag)
	if trimmed == "" {
		return
	}
	if slices.Contains(p.Tags, trimmed) {
		return
	}
	p.Tags = append(p.Tags, trimmed)
	p.UpdatedAt = now
}

// RemoveTag removes a tag if present.
func (p *Post) RemoveTag(tag string, now time.Time) {
	trimmed := strings.TrimSpace(tag)
	i := slices.Index(p.Tags, trimmed)
	if i < 0 {
		return
	}
	p.Tags = slices.Delete(p.Tags, i, i+1)
	p.UpdatedAt = now
}

// SetCommentCount overwrites the denormalized comment counter.
// The count is recomputed from the comment store after every comment
// write; concurrent writers may race, so the counter is eventually
// consistent rather than exact.
func (p *Post) SetCommentCount(count int, now time.Time) {
	p.CommentCount = count
	p.UpdatedAt = now
}

// IncrementLikeCount adds one like.
func (p *Post) IncrementLikeCount(now time.Time) {
	p.LikeCount++
	p.UpdatedAt = now
}

// DecrementLikeCount removes one like, never going below zero.
func (p *Post) DecrementLikeCount(now time.Time) {
	if p.LikeCount > 0 {
		p.LikeCount--
		p.UpdatedAt = now
	}
}

// CanBeEditedAt reports whether content mutation is allowed at the given time:
// the post is unpublished, or was published within the edit window.
func (p *Post) CanBeEditedAt(now time.Time) bool {
	if !p.Published {
		return true
	}
	if p.PublishedAt == nil {
		return true
	}
	return now.Before(p.PublishedAt.Add(EditWindow)) || now.Equal(p.PublishedAt.Add(EditWindow))
}

// IsPopular reports whether the post's view count exceeds the popularity threshold.
func (p *Post) IsPopular() bool {
	return p.ViewCount > PopularViewThreshold
}

// AgeInDays returns the number of whole days since the post was created.
func (p *Post) AgeInDays(now time.Time) int {
	if p.CreatedAt.IsZero() {
		return 0
	}
	return int(now.Sub(p.CreatedAt).Hours() / 24)
}

// PostFilter narrows a post listing. Nil pointer fields mean "any".
type PostFilter struct {
	PublishedOnly bool
	Category      *string
	Tag           *string
	AuthorID      *int64
	Limit         int
	Offset        int
}

// record appends a domain event to the pending list.
func (p *Post) record(e Event) {
	p.events = append(p.events, e)
}

// CollectEvents returns the pending events and clears the list.
// The caller publishes them after the post has been durably saved.
func (p *Post) CollectEvents() []Event {
	events := p.events
	p.events = nil
	return events
}
