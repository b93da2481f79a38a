package comment

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/blog-backend/internal/domain"
)

var ruleNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func publishedPost() *domain.Post {
	p := domain.NewPost("Title", "slug", "body", 1, ruleNow)
	p.ID = 5
	if err := p.Publish(ruleNow); err != nil {
		panic(err)
	}
	p.CollectEvents()
	return p
}

func TestComposeNewComment_Success(t *testing.T) {
	t.Parallel()

	actor := domain.Identity{UserID: 200, Username: "replier", Authenticated: true}

	c, err := ComposeNewComment(actor, publishedPost(), "  Nice post!  ", nil, ruleNow)
	require.NoError(t, err)

	assert.Equal(t, int64(5), c.PostID)
	assert.Equal(t, int64(200), c.UserID)
	assert.Equal(t, "replier", c.AuthorName)
	assert.Equal(t, "Nice post!", c.Content)
	assert.Nil(t, c.ParentID)
	assert.Equal(t, ruleNow, c.CreatedAt)
	assert.Zero(t, c.ID)
}

func TestComposeNewComment_CheckOrder(t *testing.T) {
	t.Parallel()

	anon := domain.Anonymous()
	authed := domain.Identity{UserID: 200, Username: "replier", Authenticated: true}
	draft := domain.NewPost("Title", "slug", "body", 1, ruleNow)
	draft.ID = 6

	// Unauthenticated wins over everything, even a nil post and bad content.
	_, err := ComposeNewComment(anon, nil, "", nil, ruleNow)
	require.ErrorIs(t, err, domain.ErrUnauthenticated)

	// Missing post wins over unpublished and bad content.
	_, err = ComposeNewComment(authed, nil, "", nil, ruleNow)
	require.ErrorIs(t, err, domain.ErrNotFound)

	// Unpublished wins over bad content.
	_, err = ComposeNewComment(authed, draft, "", nil, ruleNow)
	require.ErrorIs(t, err, domain.ErrInvalidState)

	// Only then is content checked.
	_, err = ComposeNewComment(authed, publishedPost(), "   ", nil, ruleNow)
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestComposeNewComment_ContentRules(t *testing.T) {
	t.Parallel()

	actor := domain.Identity{UserID: 200, Username: "replier", Authenticated: true}
	post := publishedPost()

	_, err := ComposeNewComment(actor, post, strings.Repeat("x", domain.MaxCommentLength+1), nil, ruleNow)
	require.ErrorIs(t, err, domain.ErrValidation)

	c, err := ComposeNewComment(actor, post, strings.Repeat("x", domain.MaxCommentLength), nil, ruleNow)
	require.NoError(t, err)
	assert.Len(t, c.Content, domain.MaxCommentLength)

	// HTML and case survive normalization untouched.
	c, err = ComposeNewComment(actor, post, `<b>Bold</b> Claim`, nil, ruleNow)
	require.NoError(t, err)
	assert.Equal(t, `<b>Bold</b> Claim`, c.Content)
}

func TestComposeNewComment_Reply(t *testing.T) {
	t.Parallel()

	actor := domain.Identity{UserID: 200, Username: "replier", Authenticated: true}
	parentID := int64(10)

	c, err := ComposeNewComment(actor, publishedPost(), "I disagree", &parentID, ruleNow)
	require.NoError(t, err)

	require.NotNil(t, c.ParentID)
	assert.Equal(t, int64(10), *c.ParentID)
	assert.True(t, c.IsReply())
}

func TestAssertCanDelete(t *testing.T) {
	t.Parallel()

	owner := domain.Identity{UserID: 200, Username: "owner", Authenticated: true}
	stranger := domain.Identity{UserID: 300, Username: "stranger", Authenticated: true}
	comment := &domain.Comment{ID: 10, PostID: 5, UserID: 200}

	tests := []struct {
		name    string
		actor   domain.Identity
		comment *domain.Comment
		isAdmin bool
		wantErr error
	}{
		{"owner may delete", owner, comment, false, nil},
		{"admin may delete", stranger, comment, true, nil},
		{"admin who is also owner", owner, comment, true, nil},
		{"stranger may not delete", stranger, comment, false, domain.ErrForbidden},
		{"unauthenticated", domain.Anonymous(), comment, false, domain.ErrUnauthenticated},
		{"unauthenticated admin flag ignored", domain.Anonymous(), comment, true, domain.ErrUnauthenticated},
		{"missing comment", owner, nil, false, domain.ErrNotFound},
		{"missing comment beats admin", stranger, nil, true, domain.ErrNotFound},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := AssertCanDelete(tt.actor, tt.comment, tt.isAdmin)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestAssertCanDelete_ZeroOwnerNeverMatches(t *testing.T) {
	t.Parallel()

	// A comment with no owner recorded must not be deletable through the
	// ownership branch, whatever the actor's ID claims.
	orphan := &domain.Comment{ID: 10, PostID: 5, UserID: 0}
	actor := domain.Identity{UserID: 0, Username: "weird", Authenticated: true}

	err := AssertCanDelete(actor, orphan, false)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
