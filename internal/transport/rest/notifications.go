package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/blog-backend/internal/domain"
	"github.com/heartmarshall/blog-backend/pkg/ctxutil"
)

// notificationService defines the minimal interface needed by NotificationHandler.
type notificationService interface {
	ListNotifications(ctx context.Context, actor domain.Identity, limit, offset int) ([]*domain.Notification, error)
	CountUnread(ctx context.Context, actor domain.Identity) (int, error)
	MarkAsRead(ctx context.Context, actor domain.Identity, notificationID int64) error
	MarkAllAsRead(ctx context.Context, actor domain.Identity) (int, error)
}

// NotificationHandler serves notification REST endpoints.
type NotificationHandler struct {
	svc notificationService
	log *slog.Logger
}

// NewNotificationHandler creates a NotificationHandler.
func NewNotificationHandler(svc notificationService, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{svc: svc, log: logger.With("handler", "notification")}
}

type notificationResponse struct {
	ID               int64     `json:"id"`
	SenderID         *int64    `json:"senderId,omitempty"`
	Type             string    `json:"type"`
	Content          string    `json:"content"`
	RelatedPostID    int64     `json:"relatedPostId"`
	RelatedCommentID int64     `json:"relatedCommentId"`
	Read             bool      `json:"read"`
	CreatedAt        time.Time `json:"createdAt"`
}

// List handles GET /notifications.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	list, err := h.svc.ListNotifications(r.Context(), ctxutil.IdentityFromCtx(r.Context()),
		queryInt(q.Get("limit")), queryInt(q.Get("offset")))
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	resp := make([]notificationResponse, 0, len(list))
	for _, n := range list {
		resp = append(resp, notificationResponse{
			ID:               n.ID,
			SenderID:         n.SenderID,
			Type:             string(n.Type),
			Content:          n.Content,
			RelatedPostID:    n.RelatedPostID,
			RelatedCommentID: n.RelatedCommentID,
			Read:             n.Read,
			CreatedAt:        n.CreatedAt,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{"notifications": resp})
}

// UnreadCount handles GET /notifications/unread-count.
func (h *NotificationHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.svc.CountUnread(r.Context(), ctxutil.IdentityFromCtx(r.Context()))
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"unreadCount": count})
}

// MarkRead handles POST /notifications/{notificationID}/read.
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	notificationID, err := pathID(r, "notificationID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid notification id")
		return
	}

	if err := h.svc.MarkAsRead(r.Context(), ctxutil.IdentityFromCtx(r.Context()), notificationID); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// MarkAllRead handles POST /notifications/read-all.
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	count, err := h.svc.MarkAllAsRead(r.Context(), ctxutil.IdentityFromCtx(r.Context()))
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"marked": count})
}
