package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/heartmarshall/blog-backend/internal/config"
	"github.com/heartmarshall/blog-backend/internal/transport/middleware"
)

// RouterDeps bundles everything the HTTP router needs.
type RouterDeps struct {
	Auth          *AuthHandler
	Posts         *PostHandler
	Comments      *CommentHandler
	Notifications *NotificationHandler
	Health        *HealthHandler

	AuthMiddleware middleware.Middleware
	Logger         middleware.Middleware
	Recovery       middleware.Middleware
	RateLimiter    *middleware.RateLimiter
	Limits         config.RateLimitConfig
	CORS           config.CORSConfig
}

// NewRouter builds the HTTP routing table.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	// A group limit of zero disables limiting for that group.
	limit := func(perMinute int) middleware.Middleware {
		if perMinute <= 0 {
			return func(next http.Handler) http.Handler { return next }
		}
		return deps.RateLimiter.Limit(perMinute)
	}

	r.Use(middleware.RequestID)
	r.Use(deps.Recovery)
	r.Use(middleware.CORS(deps.CORS))
	r.Use(deps.AuthMiddleware)
	r.Use(deps.Logger)

	r.Get("/health", deps.Health.Health)
	r.Get("/health/live", deps.Health.Live)
	r.Get("/health/ready", deps.Health.Ready)

	// Credential and token endpoints are rate limited per IP.
	r.Group(func(r chi.Router) {
		r.Use(limit(deps.Limits.AuthPerMinute))
		r.Post("/auth/register", deps.Auth.Register)
		r.Post("/auth/login", deps.Auth.Login)
		r.Post("/auth/refresh", deps.Auth.Refresh)
	})
	r.Post("/auth/logout", deps.Auth.Logout)

	r.Route("/posts", func(r chi.Router) {
		r.Get("/", deps.Posts.List)
		r.Post("/", deps.Posts.Create)
		r.Get("/slug/{slug}", deps.Posts.GetBySlug)

		r.Route("/{postID}", func(r chi.Router) {
			r.Get("/", deps.Posts.Get)
			r.Put("/", deps.Posts.Update)
			r.Post("/publish", deps.Posts.Publish)
			r.Post("/unpublish", deps.Posts.Unpublish)
			r.Post("/like", deps.Posts.Like)
			r.Delete("/like", deps.Posts.Unlike)

			r.Get("/comments", deps.Comments.List)
			r.With(limit(deps.Limits.CommentsPerMinute)).Post("/comments", deps.Comments.Create)
		})
	})

	r.Delete("/comments/{commentID}", deps.Comments.Delete)

	r.Route("/notifications", func(r chi.Router) {
		r.Get("/", deps.Notifications.List)
		r.Get("/unread-count", deps.Notifications.UnreadCount)
		r.Post("/read-all", deps.Notifications.MarkAllRead)
		r.Post("/{notificationID}/read", deps.Notifications.MarkRead)
	})

	return r
}
