package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/blog-backend/internal/domain"
	"github.com/heartmarshall/blog-backend/internal/service/comment"
	"github.com/heartmarshall/blog-backend/pkg/ctxutil"
)

// commentService defines the minimal interface needed by CommentHandler.
type commentService interface {
	CreateComment(ctx context.Context, actor domain.Identity, input comment.CreateCommentInput) (*domain.Comment, error)
	DeleteComment(ctx context.Context, actor domain.Identity, commentID int64) error
	ListComments(ctx context.Context, postID int64, limit, offset int) ([]*domain.Comment, int, error)
}

// CommentHandler serves comment REST endpoints.
type CommentHandler struct {
	svc commentService
	log *slog.Logger
}

// NewCommentHandler creates a CommentHandler.
func NewCommentHandler(svc commentService, logger *slog.Logger) *CommentHandler {
	return &CommentHandler{svc: svc, log: logger.With("handler", "comment")}
}

type createCommentRequest struct {
	Content  string `json:"content"`
	ParentID *int64 `json:"parentCommentId,omitempty"`
}

type commentResponse struct {
	ID         int64     `json:"id"`
	PostID     int64     `json:"postId"`
	UserID     int64     `json:"userId"`
	AuthorName string    `json:"authorName"`
	Content    string    `json:"content"`
	ParentID   *int64    `json:"parentCommentId,omitempty"`
	LikeCount  int       `json:"likeCount"`
	CreatedAt  time.Time `json:"createdAt"`
}

type commentListResponse struct {
	Comments []commentResponse `json:"comments"`
	Total    int               `json:"total"`
}

// Create handles POST /posts/{postID}/comments.
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "postID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	var req createCommentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.svc.CreateComment(r.Context(), ctxutil.IdentityFromCtx(r.Context()), comment.CreateCommentInput{
		PostID:   postID,
		Content:  req.Content,
		ParentID: req.ParentID,
	})
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toCommentResponse(c))
}

// Delete handles DELETE /comments/{commentID}.
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	commentID, err := pathID(r, "commentID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid comment id")
		return
	}

	if err := h.svc.DeleteComment(r.Context(), ctxutil.IdentityFromCtx(r.Context()), commentID); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// List handles GET /posts/{postID}/comments.
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "postID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	q := r.URL.Query()
	comments, total, err := h.svc.ListComments(r.Context(), postID, queryInt(q.Get("limit")), queryInt(q.Get("offset")))
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	resp := commentListResponse{Comments: make([]commentResponse, 0, len(comments)), Total: total}
	for _, c := range comments {
		resp.Comments = append(resp.Comments, toCommentResponse(c))
	}

	writeJSON(w, http.StatusOK, resp)
}

func toCommentResponse(c *domain.Comment) commentResponse {
	return commentResponse{
		ID:         c.ID,
		PostID:     c.PostID,
		UserID:     c.UserID,
		AuthorName: c.AuthorName,
		Content:    c.Content,
		ParentID:   c.ParentID,
		LikeCount:  c.LikeCount,
		CreatedAt:  c.CreatedAt,
	}
}
