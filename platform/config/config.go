// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// JWTConfig provides bearer token validation settings for middleware.
type JWTConfig interface {
	GetJWTAccessSecret() string
}

// TokenIssuerConfig provides settings for minting development tokens.
type TokenIssuerConfig interface {
	JWTConfig
	GetAccessTokenTTL() time.Duration
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
	GetRateLimitPerMinute() int
}

// MinIOConfig provides settings for payment receipt storage.
type MinIOConfig interface {
	GetMinIOEndpoint() string
	GetMinIOAccessKey() string
	GetMinIOSecretKey() string
	GetMinIOUseSSL() bool
	GetMinIOMaxFileSize() int64
	GetMinioBucketReceipts() string
	IsMinIOEnabled() bool
}

// SchedulerConfig provides settings for the follow-up reminder queue.
type SchedulerConfig interface {
	GetRedisURL() string
	GetRedisTLSInsecure() bool
	GetAsynqQueueName() string
	GetAsynqConcurrency() int
	GetReminderHour() int
}

// CacheConfig provides settings for the dashboard cache.
type CacheConfig interface {
	GetRedisURL() string
	GetDashboardCacheTTL() time.Duration
}

// LeadsConfig provides settings for the lead query and import paths.
type LeadsConfig interface {
	GetLeadsPageSize() int
	GetImportMaxRows() int
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                string
	HTTPAddr           string
	DatabaseURL        string
	MigrationsEnabled  bool
	JWTAccessSecret    string
	AccessTokenTTL     time.Duration
	CORSAllowAll       bool
	CORSOrigins        []string
	CORSAllowCreds     bool
	RateLimitPerMinute int
	MinIOEndpoint      string
	MinIOAccessKey     string
	MinIOSecretKey     string
	MinIOUseSSL        bool
	MinIOMaxFileSize   int64
	MinioBucketReceipt string
	RedisURL           string
	RedisTLSInsecure   bool
	AsynqQueueName     string
	AsynqConcurrency   int
	ReminderHour       int
	DashboardCacheTTL  time.Duration
	LeadsPageSize      int
	ImportMaxRows      int
}

// =============================================================================
// Interface Implementations
// =============================================================================

// DatabaseConfig implementation
func (c *Config) GetDatabaseURL() string { return c.DatabaseURL }

// JWTConfig implementation
func (c *Config) GetJWTAccessSecret() string       { return c.JWTAccessSecret }
func (c *Config) GetAccessTokenTTL() time.Duration { return c.AccessTokenTTL }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string        { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool      { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string   { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool    { return c.CORSAllowCreds }
func (c *Config) GetRateLimitPerMinute() int { return c.RateLimitPerMinute }

// MinIOConfig implementation
func (c *Config) GetMinIOEndpoint() string       { return c.MinIOEndpoint }
func (c *Config) GetMinIOAccessKey() string      { return c.MinIOAccessKey }
func (c *Config) GetMinIOSecretKey() string      { return c.MinIOSecretKey }
func (c *Config) GetMinIOUseSSL() bool           { return c.MinIOUseSSL }
func (c *Config) GetMinIOMaxFileSize() int64     { return c.MinIOMaxFileSize }
func (c *Config) GetMinioBucketReceipts() string { return c.MinioBucketReceipt }
func (c *Config) IsMinIOEnabled() bool           { return c.MinIOEndpoint != "" }

// SchedulerConfig implementation
func (c *Config) GetRedisURL() string       { return c.RedisURL }
func (c *Config) GetRedisTLSInsecure() bool { return c.RedisTLSInsecure }
func (c *Config) GetAsynqQueueName() string { return c.AsynqQueueName }
func (c *Config) GetAsynqConcurrency() int  { return c.AsynqConcurrency }
func (c *Config) GetReminderHour() int      { return c.ReminderHour }

// CacheConfig implementation
func (c *Config) GetDashboardCacheTTL() time.Duration { return c.DashboardCacheTTL }

// LeadsConfig implementation
func (c *Config) GetLeadsPageSize() int { return c.LeadsPageSize }
func (c *Config) GetImportMaxRows() int { return c.ImportMaxRows }

// Load reads configuration from environment variables, after loading an
// optional .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds the configuration from the current process environment.
func FromEnv() (*Config, error) {
	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:                getEnv("APP_ENV", "development"),
		HTTPAddr:           getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		MigrationsEnabled:  !strings.EqualFold(getEnv("MIGRATIONS_ENABLED", "true"), "false"),
		JWTAccessSecret:    getEnv("JWT_ACCESS_SECRET", ""),
		AccessTokenTTL:     mustDuration(getEnv("JWT_ACCESS_TTL", "12h")),
		CORSAllowAll:       corsAllowAll,
		CORSOrigins:        corsOrigins,
		CORSAllowCreds:     strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),
		RateLimitPerMinute: mustInt(getEnv("RATE_LIMIT_PER_MINUTE", "600")),
		MinIOEndpoint:      getEnv("MINIO_ENDPOINT", ""),
		MinIOAccessKey:     getEnv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey:     getEnv("MINIO_SECRET_KEY", ""),
		MinIOUseSSL:        strings.EqualFold(getEnv("MINIO_USE_SSL", "false"), "true"),
		MinIOMaxFileSize:   mustInt64(getEnv("MINIO_MAX_FILE_SIZE", "10485760")),
		MinioBucketReceipt: getEnv("MINIO_BUCKET_RECEIPTS", "payment-receipts"),
		RedisURL:           getEnv("REDIS_URL", ""),
		RedisTLSInsecure:   strings.EqualFold(getEnv("REDIS_TLS_INSECURE", "false"), "true"),
		AsynqQueueName:     getEnv("ASYNQ_QUEUE", "default"),
		AsynqConcurrency:   mustInt(getEnv("ASYNQ_CONCURRENCY", "5")),
		ReminderHour:       mustInt(getEnv("FOLLOW_UP_REMINDER_HOUR", "9")),
		DashboardCacheTTL:  mustDuration(getEnv("DASHBOARD_CACHE_TTL", "5m")),
		LeadsPageSize:      mustInt(getEnv("LEADS_PAGE_SIZE", "20")),
		ImportMaxRows:      mustInt(getEnv("IMPORT_MAX_ROWS", "5000")),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTAccessSecret == "" {
		return nil, fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}
	if cfg.LeadsPageSize < 1 {
		return nil, fmt.Errorf("LEADS_PAGE_SIZE must be positive")
	}
	if cfg.ReminderHour < 0 || cfg.ReminderHour > 23 {
		return nil, fmt.Errorf("FOLLOW_UP_REMINDER_HOUR must be between 0 and 23")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	result, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0
	}
	return result
}

func mustInt64(value string) int64 {
	result, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
