package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/blog-backend/internal/adapter/postgres"
	commentrepo "github.com/heartmarshall/blog-backend/internal/adapter/postgres/comment"
	notificationrepo "github.com/heartmarshall/blog-backend/internal/adapter/postgres/notification"
	postrepo "github.com/heartmarshall/blog-backend/internal/adapter/postgres/post"
	tokenrepo "github.com/heartmarshall/blog-backend/internal/adapter/postgres/token"
	userrepo "github.com/heartmarshall/blog-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/blog-backend/internal/auth"
	"github.com/heartmarshall/blog-backend/internal/config"
	"github.com/heartmarshall/blog-backend/internal/domain"
	"github.com/heartmarshall/blog-backend/internal/event"
	authsvc "github.com/heartmarshall/blog-backend/internal/service/auth"
	commentsvc "github.com/heartmarshall/blog-backend/internal/service/comment"
	notificationsvc "github.com/heartmarshall/blog-backend/internal/service/notification"
	postsvc "github.com/heartmarshall/blog-backend/internal/service/post"
	"github.com/heartmarshall/blog-backend/internal/transport/middleware"
	"github.com/heartmarshall/blog-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects to
// the database, applies migrations, wires services and the event
// dispatcher, and serves HTTP until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	if err := applyMigrations(ctx, cfg.Database.DSN); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	txManager := postgres.NewTxManager(pool)

	posts := postrepo.New(pool)
	comments := commentrepo.New(pool)
	notifications := notificationrepo.New(pool)
	users := userrepo.New(pool)
	tokens := tokenrepo.New(pool)

	dispatcher := event.NewDispatcher(logger, cfg.Events.QueueSize, cfg.Events.Workers)
	defer dispatcher.Close()

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	postService := postsvc.NewService(logger, posts, users, dispatcher, cfg.Admin)
	commentService := commentsvc.NewService(logger, comments, posts, users, txManager, dispatcher, cfg.Admin)
	notificationService := notificationsvc.NewService(logger, notifications, comments, posts)
	authService := authsvc.NewService(logger, users, tokens, jwtManager, cfg.Auth)

	dispatcher.Subscribe(domain.EventKindCommentCreated, notificationService)
	// Detached from the signal context so queued events drain on shutdown
	// instead of being abandoned mid-delivery.
	dispatcher.Start(context.WithoutCancel(ctx))

	rateLimiter := middleware.NewRateLimiter(cfg.Limits.CleanupInterval)
	defer rateLimiter.Stop()

	router := rest.NewRouter(rest.RouterDeps{
		Auth:          rest.NewAuthHandler(authService, logger),
		Posts:         rest.NewPostHandler(postService, logger),
		Comments:      rest.NewCommentHandler(commentService, logger),
		Notifications: rest.NewNotificationHandler(notificationService, logger),
		Health:        rest.NewHealthHandler(pool, BuildVersion()),

		AuthMiddleware: middleware.Auth(jwtManager),
		Logger:         middleware.Logger(logger),
		Recovery:       middleware.Recovery(logger),
		RateLimiter:    rateLimiter,
		Limits:         cfg.Limits,
		CORS:           cfg.CORS,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	// Let in-flight events drain before the pool closes.
	dispatcher.Close()

	logger.Info("shutdown complete")

	return nil
}
