package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/heartmarshall/blog-backend/internal/domain"
	"github.com/heartmarshall/blog-backend/internal/service/post"
	"github.com/heartmarshall/blog-backend/pkg/ctxutil"
)

// postService defines the minimal interface needed by PostHandler.
type postService interface {
	CreatePost(ctx context.Context, actor domain.Identity, input post.CreatePostInput) (*domain.Post, error)
	UpdatePost(ctx context.Context, actor domain.Identity, input post.UpdatePostInput) (*domain.Post, error)
	PublishPost(ctx context.Context, actor domain.Identity, postID int64) (*domain.Post, error)
	UnpublishPost(ctx context.Context, actor domain.Identity, postID int64) (*domain.Post, error)
	GetPost(ctx context.Context, actor domain.Identity, postID int64) (*domain.Post, error)
	ViewPost(ctx context.Context, actor domain.Identity, slug string) (*domain.Post, error)
	ListPosts(ctx context.Context, actor domain.Identity, input post.ListPostsInput) ([]*domain.Post, int, error)
	LikePost(ctx context.Context, actor domain.Identity, postID int64) error
	UnlikePost(ctx context.Context, actor domain.Identity, postID int64) error
}

// PostHandler serves post REST endpoints.
type PostHandler struct {
	svc postService
	log *slog.Logger
}

// NewPostHandler creates a PostHandler.
func NewPostHandler(svc postService, logger *slog.Logger) *PostHandler {
	return &PostHandler{svc: svc, log: logger.With("handler", "post")}
}

type postRequest struct {
	Title      string   `json:"title"`
	Slug       string   `json:"slug"`
	Content    string   `json:"content"`
	Summary    *string  `json:"summary,omitempty"`
	CoverImage *string  `json:"coverImage,omitempty"`
	Category   *string  `json:"category,omitempty"`
	Tags       []string `json:"tags,omitempty"`
}

type postResponse struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	Slug         string     `json:"slug"`
	Content      string     `json:"content"`
	Summary      *string    `json:"summary,omitempty"`
	CoverImage   *string    `json:"coverImage,omitempty"`
	Category     *string    `json:"category,omitempty"`
	Tags         []string   `json:"tags"`
	Published    bool       `json:"published"`
	ViewCount    int        `json:"viewCount"`
	LikeCount    int        `json:"likeCount"`
	CommentCount int        `json:"commentCount"`
	AuthorID     int64      `json:"authorId"`
	PublishedAt  *time.Time `json:"publishedAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

type postListResponse struct {
	Posts []postResponse `json:"posts"`
	Total int            `json:"total"`
}

// Create handles POST /posts.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req postRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.svc.CreatePost(r.Context(), ctxutil.IdentityFromCtx(r.Context()), post.CreatePostInput{
		Title:      req.Title,
		Slug:       req.Slug,
		Content:    req.Content,
		Summary:    req.Summary,
		CoverImage: req.CoverImage,
		Category:   req.Category,
		Tags:       req.Tags,
	})
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toPostResponse(p))
}

// Update handles PUT /posts/{postID}.
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "postID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	var req postRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.svc.UpdatePost(r.Context(), ctxutil.IdentityFromCtx(r.Context()), post.UpdatePostInput{
		PostID:     postID,
		Title:      req.Title,
		Slug:       req.Slug,
		Content:    req.Content,
		Summary:    req.Summary,
		CoverImage: req.CoverImage,
		Category:   req.Category,
		Tags:       req.Tags,
	})
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toPostResponse(p))
}

// Publish handles POST /posts/{postID}/publish.
func (h *PostHandler) Publish(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "postID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	p, err := h.svc.PublishPost(r.Context(), ctxutil.IdentityFromCtx(r.Context()), postID)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toPostResponse(p))
}

// Unpublish handles POST /posts/{postID}/unpublish.
func (h *PostHandler) Unpublish(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "postID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	p, err := h.svc.UnpublishPost(r.Context(), ctxutil.IdentityFromCtx(r.Context()), postID)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toPostResponse(p))
}

// Like handles POST /posts/{postID}/like.
func (h *PostHandler) Like(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "postID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	if err := h.svc.LikePost(r.Context(), ctxutil.IdentityFromCtx(r.Context()), postID); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Unlike handles DELETE /posts/{postID}/like.
func (h *PostHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "postID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	if err := h.svc.UnlikePost(r.Context(), ctxutil.IdentityFromCtx(r.Context()), postID); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Get handles GET /posts/{postID}.
func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "postID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	p, err := h.svc.GetPost(r.Context(), ctxutil.IdentityFromCtx(r.Context()), postID)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toPostResponse(p))
}

// GetBySlug handles GET /posts/slug/{slug} and counts the view.
func (h *PostHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		writeError(w, http.StatusBadRequest, "invalid slug")
		return
	}

	p, err := h.svc.ViewPost(r.Context(), ctxutil.IdentityFromCtx(r.Context()), slug)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toPostResponse(p))
}

// List handles GET /posts.
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	input := post.ListPostsInput{
		Limit:  queryInt(q.Get("limit")),
		Offset: queryInt(q.Get("offset")),
	}
	if v := q.Get("category"); v != "" {
		input.Category = &v
	}
	if v := q.Get("tag"); v != "" {
		input.Tag = &v
	}

	posts, total, err := h.svc.ListPosts(r.Context(), ctxutil.IdentityFromCtx(r.Context()), input)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	resp := postListResponse{Posts: make([]postResponse, 0, len(posts)), Total: total}
	for _, p := range posts {
		resp.Posts = append(resp.Posts, toPostResponse(p))
	}

	writeJSON(w, http.StatusOK, resp)
}

func toPostResponse(p *domain.Post) postResponse {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return postResponse{
		ID:           p.ID,
		Title:        p.Title,
		Slug:         p.Slug,
		Content:      p.Content,
		Summary:      p.Summary,
		CoverImage:   p.CoverImage,
		Category:     p.Category,
		Tags:         tags,
		Published:    p.Published,
		ViewCount:    p.ViewCount,
		LikeCount:    p.LikeCount,
		CommentCount: p.CommentCount,
		AuthorID:     p.AuthorID,
		PublishedAt:  p.PublishedAt,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// pathID parses a positive int64 chi URL parameter.
func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}

// queryInt parses an optional integer query parameter; bad or missing
// values become 0 and fall back to server-side defaults.
func queryInt(s string) int {
	v, _ := strconv.Atoi(s)
	return v
}
