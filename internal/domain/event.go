package domain

import "time"

// EventKind identifies one of the closed set of domain event variants.
type EventKind string

const (
	EventKindPostCreated    EventKind = "post.created"
	EventKindPostPublished  EventKind = "post.published"
	EventKindCommentCreated EventKind = "comment.created"
)

// Event is a fact recorded by an aggregate. Events are transient: they are
// handed to the in-process dispatcher after the originating transaction
// commits and are never persisted or redelivered.
type Event interface {
	Kind() EventKind
	OccurredAt() time.Time
}

// PostCreated is recorded when a post is created.
type PostCreated struct {
	PostID    int64
	Title     string
	AuthorID  int64
	CreatedAt time.Time
}

func (e PostCreated) Kind() EventKind       { return EventKindPostCreated }
func (e PostCreated) OccurredAt() time.Time { return e.CreatedAt }

// PostPublished is recorded when a post transitions to published.
type PostPublished struct {
	PostID      int64
	Title       string
	AuthorID    int64
	PublishedAt time.Time
}

func (e PostPublished) Kind() EventKind       { return EventKindPostPublished }
func (e PostPublished) OccurredAt() time.Time { return e.PublishedAt }

// CommentCreated is recorded once per successfully persisted comment.
// ParentCommentID is nil for top-level comments and set for replies.
type CommentCreated struct {
	CommentID       int64
	PostID          int64
	AuthorID        int64
	Content         string
	ParentCommentID *int64
	CreatedAt       time.Time
}

func (e CommentCreated) Kind() EventKind       { return EventKindCommentCreated }
func (e CommentCreated) OccurredAt() time.Time { return e.CreatedAt }
