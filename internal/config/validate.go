package config

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("auth.bcrypt_cost must be between %d and %d (got %d)",
			bcrypt.MinCost, bcrypt.MaxCost, c.Auth.BcryptCost)
	}

	if c.Auth.RefreshTokenTTL <= c.Auth.AccessTokenTTL {
		return fmt.Errorf("auth.refresh_token_ttl must exceed access_token_ttl (got %s <= %s)",
			c.Auth.RefreshTokenTTL, c.Auth.AccessTokenTTL)
	}

	if c.Admin.Username == "" && c.Admin.ExternalID == "" {
		return fmt.Errorf("admin: at least one of username or external_id must be set")
	}

	if c.Events.QueueSize <= 0 {
		return fmt.Errorf("events.queue_size must be > 0 (got %d)", c.Events.QueueSize)
	}
	if c.Events.Workers <= 0 {
		return fmt.Errorf("events.workers must be > 0 (got %d)", c.Events.Workers)
	}

	if c.Limits.AuthPerMinute < 0 || c.Limits.CommentsPerMinute < 0 {
		return fmt.Errorf("limits: per-minute values must be >= 0")
	}
	if c.Limits.CleanupInterval <= 0 {
		return fmt.Errorf("limits.cleanup_interval must be > 0 (got %s)", c.Limits.CleanupInterval)
	}

	if c.Blog.DefaultPageSize <= 0 {
		return fmt.Errorf("blog.default_page_size must be > 0 (got %d)", c.Blog.DefaultPageSize)
	}
	if c.Blog.MaxPageSize < c.Blog.DefaultPageSize {
		return fmt.Errorf("blog.max_page_size must be >= default_page_size (got %d < %d)",
			c.Blog.MaxPageSize, c.Blog.DefaultPageSize)
	}

	return nil
}
