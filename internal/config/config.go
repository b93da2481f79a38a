// Package config defines application configuration loaded from YAML and ENV.
package config

import (
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig    `yaml:"server"`
	Database DatabaseConfig  `yaml:"database"`
	Auth     AuthConfig      `yaml:"auth"`
	Admin    AdminConfig     `yaml:"admin"`
	Events   EventsConfig    `yaml:"events"`
	Blog     BlogConfig      `yaml:"blog"`
	Limits   RateLimitConfig `yaml:"limits"`
	CORS     CORSConfig      `yaml:"cors"`
	Log      LogConfig       `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// AuthConfig holds authentication settings.
type AuthConfig struct {
	JWTSecret       string        `yaml:"jwt_secret"        env:"AUTH_JWT_SECRET"        env-required:"true"`
	JWTIssuer       string        `yaml:"jwt_issuer"        env:"AUTH_JWT_ISSUER"        env-default:"blog-backend"`
	AccessTokenTTL  time.Duration `yaml:"access_token_ttl"  env:"AUTH_ACCESS_TOKEN_TTL"  env-default:"24h"`
	RefreshTokenTTL time.Duration `yaml:"refresh_token_ttl" env:"AUTH_REFRESH_TOKEN_TTL" env-default:"720h"`
	BcryptCost      int           `yaml:"bcrypt_cost"       env:"AUTH_BCRYPT_COST"       env-default:"10"`
}

// AdminConfig identifies the site administrator. A user is the admin when
// either the username matches (case-insensitive) or the external account ID
// matches exactly.
type AdminConfig struct {
	Username   string `yaml:"username"    env:"ADMIN_USERNAME"`
	ExternalID string `yaml:"external_id" env:"ADMIN_EXTERNAL_ID"`
}

// IsAdminUsername reports whether the username belongs to the admin.
// Comparison is case-insensitive; an empty configured username matches nobody.
func (a AdminConfig) IsAdminUsername(username string) bool {
	return a.Username != "" && strings.EqualFold(a.Username, username)
}

// IsAdminExternalID reports whether the external account ID belongs to the
// admin. Comparison is exact; an empty configured ID matches nobody.
func (a AdminConfig) IsAdminExternalID(externalID string) bool {
	return a.ExternalID != "" && a.ExternalID == externalID
}

// EventsConfig holds in-process event dispatcher settings.
type EventsConfig struct {
	QueueSize int `yaml:"queue_size" env:"EVENTS_QUEUE_SIZE" env-default:"256"`
	Workers   int `yaml:"workers"    env:"EVENTS_WORKERS"    env-default:"2"`
}

// BlogConfig holds blog content settings.
type BlogConfig struct {
	DefaultPageSize int `yaml:"default_page_size" env:"BLOG_DEFAULT_PAGE_SIZE" env-default:"20"`
	MaxPageSize     int `yaml:"max_page_size"     env:"BLOG_MAX_PAGE_SIZE"     env-default:"100"`
}

// RateLimitConfig holds per-IP request limits for the abuse-prone
// endpoints. Zero disables the corresponding group.
type RateLimitConfig struct {
	AuthPerMinute     int           `yaml:"auth_per_minute"     env:"LIMITS_AUTH_PER_MINUTE"     env-default:"10"`
	CommentsPerMinute int           `yaml:"comments_per_minute" env:"LIMITS_COMMENTS_PER_MINUTE" env-default:"30"`
	CleanupInterval   time.Duration `yaml:"cleanup_interval"    env:"LIMITS_CLEANUP_INTERVAL"    env-default:"1m"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PATCH,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
