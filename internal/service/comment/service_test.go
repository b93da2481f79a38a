package comment

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/blog-backend/internal/domain"
)

var (
	adminActor  = domain.Identity{UserID: 1, Username: "admin", Authenticated: true}
	authorActor = domain.Identity{UserID: 100, Username: "author", Authenticated: true}
	readerActor = domain.Identity{UserID: 200, Username: "reader", Authenticated: true}
)

func testNow() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func passthroughTx() *txManagerMock {
	return &txManagerMock{
		RunInTxFunc: func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		},
	}
}

func defaultUsers() *userRepoMock {
	return &userRepoMock{
		GetByIDFunc: func(ctx context.Context, id int64) (*domain.User, error) {
			return &domain.User{ID: id, Username: "reader"}, nil
		},
	}
}

func newTestService(comments *commentRepoMock, posts *postRepoMock, tx *txManagerMock, bus *eventBusMock) *Service {
	if tx == nil {
		tx = passthroughTx()
	}
	if bus == nil {
		bus = &eventBusMock{}
	}
	svc := NewService(slog.Default(), comments, posts, defaultUsers(), tx, bus, adminPolicyStub{username: "admin"})
	svc.now = testNow
	return svc
}

func publishedTestPost(id int64) *domain.Post {
	p := domain.NewPost("Title", "slug", "body", 100, testNow())
	p.ID = id
	if err := p.Publish(testNow()); err != nil {
		panic(err)
	}
	p.CollectEvents()
	return p
}

// ---------------------------------------------------------------------------
// CreateComment
// ---------------------------------------------------------------------------

func TestCreateComment_Success(t *testing.T) {
	t.Parallel()

	post := publishedTestPost(5)
	var savedPost *domain.Post

	comments := &commentRepoMock{
		CreateFunc: func(ctx context.Context, c *domain.Comment) (*domain.Comment, error) {
			c.ID = 10
			return c, nil
		},
		CountByPostIDFunc: func(ctx context.Context, postID int64) (int, error) {
			return 3, nil
		},
	}
	posts := &postRepoMock{
		GetByIDFunc: func(ctx context.Context, id int64) (*domain.Post, error) { return post, nil },
		UpdateFunc: func(ctx context.Context, p *domain.Post) error {
			savedPost = p
			return nil
		},
	}
	bus := &eventBusMock{}
	svc := newTestService(comments, posts, nil, bus)

	c, err := svc.CreateComment(context.Background(), readerActor, CreateCommentInput{
		PostID:  5,
		Content: " Great read! ",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(10), c.ID)
	assert.Equal(t, "Great read!", c.Content)
	assert.Equal(t, "reader", c.AuthorName)

	// Counter was recomputed from the store, not incremented.
	require.NotNil(t, savedPost)
	assert.Equal(t, 3, savedPost.CommentCount)

	events := bus.Events()
	require.Len(t, events, 1)
	created, ok := events[0].(domain.CommentCreated)
	require.True(t, ok)
	assert.Equal(t, int64(10), created.CommentID)
	assert.Equal(t, int64(5), created.PostID)
	assert.Equal(t, int64(200), created.AuthorID)
}

func TestCreateComment_Unauthenticated(t *testing.T) {
	t.Parallel()

	svc := newTestService(&commentRepoMock{}, &postRepoMock{}, nil, nil)

	_, err := svc.CreateComment(context.Background(), domain.Anonymous(), CreateCommentInput{
		PostID:  5,
		Content: "hi",
	})
	require.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestCreateComment_PostNotFound(t *testing.T) {
	t.Parallel()

	posts := &postRepoMock{
		GetByIDFunc: func(ctx context.Context, id int64) (*domain.Post, error) {
			return nil, domain.ErrNotFound
		},
	}
	svc := newTestService(&commentRepoMock{}, posts, nil, nil)

	_, err := svc.CreateComment(context.Background(), readerActor, CreateCommentInput{
		PostID:  404,
		Content: "hi",
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateComment_UnpublishedPost(t *testing.T) {
	t.Parallel()

	draft := domain.NewPost("Title", "slug", "body", 100, testNow())
	draft.ID = 5
	posts := &postRepoMock{
		GetByIDFunc: func(ctx context.Context, id int64) (*domain.Post, error) { return draft, nil },
	}
	svc := newTestService(&commentRepoMock{}, posts, nil, nil)

	_, err := svc.CreateComment(context.Background(), readerActor, CreateCommentInput{
		PostID:  5,
		Content: "hi",
	})
	require.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestCreateComment_ParentOnDifferentPost(t *testing.T) {
	t.Parallel()

	post := publishedTestPost(5)
	parentID := int64(10)

	comments := &commentRepoMock{
		GetByIDFunc: func(ctx context.Context, id int64) (*domain.Comment, error) {
			return &domain.Comment{ID: id, PostID: 99, UserID: 100}, nil
		},
	}
	posts := &postRepoMock{
		GetByIDFunc: func(ctx context.Context, id int64) (*domain.Post, error) { return post, nil },
	}
	svc := newTestService(comments, posts, nil, nil)

	_, err := svc.CreateComment(context.Background(), readerActor, CreateCommentInput{
		PostID:   5,
		Content:  "hi",
		ParentID: &parentID,
	})
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreateComment_MissingParent(t *testing.T) {
	t.Parallel()

	post := publishedTestPost(5)
	parentID := int64(404)

	comments := &commentRepoMock{
		GetByIDFunc: func(ctx context.Context, id int64) (*domain.Comment, error) {
			return nil, domain.ErrNotFound
		},
	}
	posts := &postRepoMock{
		GetByIDFunc: func(ctx context.Context, id int64) (*domain.Post, error) { return post, nil },
	}
	svc := newTestService(comments, posts, nil, nil)

	_, err := svc.CreateComment(context.Background(), readerActor, CreateCommentInput{
		PostID:   5,
		Content:  "hi",
		ParentID: &parentID,
	})
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreateComment_NoEventWhenTxFails(t *testing.T) {
	t.Parallel()

	post := publishedTestPost(5)
	comments := &commentRepoMock{
		CreateFunc: func(ctx context.Context, c *domain.Comment) (*domain.Comment, error) {
			return nil, errors.New("insert failed")
		},
	}
	posts := &postRepoMock{
		GetByIDFunc: func(ctx context.Context, id int64) (*domain.Post, error) { return post, nil },
	}
	bus := &eventBusMock{}
	svc := newTestService(comments, posts, nil, bus)

	_, err := svc.CreateComment(context.Background(), readerActor, CreateCommentInput{
		PostID:  5,
		Content: "hi",
	})
	require.Error(t, err)
	assert.Empty(t, bus.Events())
}

// ---------------------------------------------------------------------------
// DeleteComment
// ---------------------------------------------------------------------------

func TestDeleteComment_ByOwner(t *testing.T) {
	t.Parallel()

	post := publishedTestPost(5)
	var deleted []int64
	var savedPost *domain.Post

	comments := &commentRepoMock{
		GetByIDFunc: func(ctx context.Context, id int64) (*domain.Comment, error) {
			return &domain.Comment{ID: id, PostID: 5, UserID: 200}, nil
		},
		DeleteFunc: func(ctx context.Context, id int64) error {
			deleted = append(deleted, id)
			return nil
		},
		CountByPostIDFunc: func(ctx context.Context, postID int64) (int, error) { return 0, nil },
	}
	posts := &postRepoMock{
		GetByIDFunc: func(ctx context.Context, id int64) (*domain.Post, error) { return post, nil },
		UpdateFunc: func(ctx context.Context, p *domain.Post) error {
			savedPost = p
			return nil
		},
	}
	svc := newTestService(comments, posts, nil, nil)

	err := svc.DeleteComment(context.Background(), readerActor, 10)
	require.NoError(t, err)

	assert.Equal(t, []int64{10}, deleted)
	require.NotNil(t, savedPost)
	assert.Equal(t, 0, savedPost.CommentCount)
}

func TestDeleteComment_ByAdmin(t *testing.T) {
	t.Parallel()

	post := publishedTestPost(5)
	comments := &commentRepoMock{
		GetByIDFunc: func(ctx context.Context, id int64) (*domain.Comment, error) {
			return &domain.Comment{ID: id, PostID: 5, UserID: 200}, nil
		},
		DeleteFunc:        func(ctx context.Context, id int64) error { return nil },
		CountByPostIDFunc: func(ctx context.Context, postID int64) (int, error) { return 0, nil },
	}
	posts := &postRepoMock{
		GetByIDFunc: func(ctx context.Context, id int64) (*domain.Post, error) { return post, nil },
		UpdateFunc:  func(ctx context.Context, p *domain.Post) error { return nil },
	}
	svc := newTestService(comments, posts, nil, nil)

	err := svc.DeleteComment(context.Background(), adminActor, 10)
	require.NoError(t, err)
}

func TestDeleteComment_ByStranger(t *testing.T) {
	t.Parallel()

	comments := &commentRepoMock{
		GetByIDFunc: func(ctx context.Context, id int64) (*domain.Comment, error) {
			return &domain.Comment{ID: id, PostID: 5, UserID: 100}, nil
		},
	}
	svc := newTestService(comments, &postRepoMock{}, nil, nil)

	err := svc.DeleteComment(context.Background(), readerActor, 10)
	require.ErrorIs(t, err, domain.ErrForbidden)
}

func TestDeleteComment_NotFound(t *testing.T) {
	t.Parallel()

	comments := &commentRepoMock{
		GetByIDFunc: func(ctx context.Context, id int64) (*domain.Comment, error) {
			return nil, domain.ErrNotFound
		},
	}
	svc := newTestService(comments, &postRepoMock{}, nil, nil)

	err := svc.DeleteComment(context.Background(), readerActor, 404)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteComment_Unauthenticated(t *testing.T) {
	t.Parallel()

	svc := newTestService(&commentRepoMock{}, &postRepoMock{}, nil, nil)

	err := svc.DeleteComment(context.Background(), domain.Anonymous(), 10)
	require.ErrorIs(t, err, domain.ErrUnauthenticated)
}

// ---------------------------------------------------------------------------
// ListComments
// ---------------------------------------------------------------------------

func TestListComments_Success(t *testing.T) {
	t.Parallel()

	post := publishedTestPost(5)
	comments := &commentRepoMock{
		ListByPostIDFunc: func(ctx context.Context, postID int64, limit, offset int) ([]*domain.Comment, error) {
			assert.Equal(t, defaultPageSize, limit)
			return []*domain.Comment{{ID: 1, PostID: postID}}, nil
		},
		CountByPostIDFunc: func(ctx context.Context, postID int64) (int, error) { return 1, nil },
	}
	posts := &postRepoMock{
		GetByIDFunc: func(ctx context.Context, id int64) (*domain.Post, error) { return post, nil },
	}
	svc := newTestService(comments, posts, nil, nil)

	list, total, err := svc.ListComments(context.Background(), 5, 0, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, 1, total)
}

func TestListComments_MissingPost(t *testing.T) {
	t.Parallel()

	posts := &postRepoMock{
		GetByIDFunc: func(ctx context.Context, id int64) (*domain.Post, error) {
			return nil, domain.ErrNotFound
		},
	}
	svc := newTestService(&commentRepoMock{}, posts, nil, nil)

	_, _, err := svc.ListComments(context.Background(), 404, 0, 0)
	require.ErrorIs(t, err, domain.ErrNotFound)
}
