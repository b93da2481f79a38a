package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// MaxCommentLength is the maximum comment length in characters after trimming.
const MaxCommentLength = 1000

// Comment belongs to exactly one post. A comment with ParentID set is a
// reply to another comment on the same post. Comments are composed by the
// comment service only and are never edited in place.
type Comment struct {
	ID         int64
	PostID     int64
	UserID     int64
	AuthorName string
	Content    string
	ParentID   *int64
	LikeCount  int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// OwnedBy reports whether the comment was written by the given user.
func (c *Comment) OwnedBy(userID int64) bool {
	if userID == 0 || c.UserID == 0 {
		return false
	}
	return c.UserID == userID
}

// IsReply reports whether the comment is a reply to another comment.
func (c *Comment) IsReply() bool {
	return c.ParentID != nil
}

// NormalizeCommentContent trims surrounding whitespace. No other
// normalization is applied: no HTML stripping, no case changes.
func NormalizeCommentContent(raw string) string {
	return strings.TrimSpace(raw)
}

// IsValidCommentContent reports whether the trimmed content is non-blank
// and within the length limit.
func IsValidCommentContent(raw string) bool {
	t := strings.TrimSpace(raw)
	if t == "" {
		return false
	}
	return utf8.RuneCountInString(t) <= MaxCommentLength
}
