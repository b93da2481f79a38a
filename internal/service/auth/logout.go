package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/blog-backend/internal/domain"
)

// Logout revokes all refresh tokens of the acting user. Access tokens
// already issued stay valid until they expire.
func (s *Service) Logout(ctx context.Context, actor domain.Identity) error {
	if !actor.Authenticated {
		return domain.ErrUnauthenticated
	}

	if err := s.tokens.RevokeAllByUser(ctx, actor.UserID); err != nil {
		return fmt.Errorf("auth.Logout: %w", err)
	}

	s.log.InfoContext(ctx, "user logged out", slog.Int64("user_id", actor.UserID))

	return nil
}

// CleanupExpiredTokens removes expired and revoked refresh tokens.
// Returns the number of tokens deleted. Maintenance operation.
func (s *Service) CleanupExpiredTokens(ctx context.Context) (int, error) {
	count, err := s.tokens.DeleteExpired(ctx)
	if err != nil {
		return 0, fmt.Errorf("auth.CleanupExpiredTokens: %w", err)
	}

	if count > 0 {
		s.log.InfoContext(ctx, "cleaned up expired tokens", slog.Int("count", count))
	}

	return count, nil
}
