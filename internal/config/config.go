// Package config provides centralized configuration management for the
// merge tool. It loads configuration from environment variables with
// sensible defaults and validates all settings on startup to fail fast on
// misconfiguration.
package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server   ServerConfig
	Upload   UploadConfig
	Merge    MergeConfig
	Rate     RateLimitConfig
	Security SecurityConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading the request body (default: 30s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"30s"`

	// WriteTimeout is the maximum duration for writing the response (default: 60s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"60s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`
}

// Addr returns the host:port string the server binds to.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// UploadConfig holds limits for the web upload handler.
type UploadConfig struct {
	// MaxTotalSize is the combined size limit for all files in one merge
	// request, in bytes (default: 200MB)
	MaxTotalSize int64 `env:"UPLOAD_MAX_TOTAL_SIZE" default:"209715200"`

	// MaxFiles is the maximum number of files per merge request (default: 50)
	MaxFiles int `env:"UPLOAD_MAX_FILES" default:"50"`

	// PreviewRows is how many merged rows the web response previews (default: 200)
	PreviewRows int `env:"UPLOAD_PREVIEW_ROWS" default:"200"`

	// ResultTTL is how long a merge result stays downloadable (default: 15m)
	ResultTTL time.Duration `env:"UPLOAD_RESULT_TTL" default:"15m"`
}

// MergeConfig holds the default merge options presented by the web form.
// Requests may override every value.
type MergeConfig struct {
	// Mode is the default merge mode: fast or smart (default: fast)
	Mode string `env:"MERGE_MODE" default:"fast"`

	// How is the default smart-mode strategy: union, intersection, or strict (default: union)
	How string `env:"MERGE_HOW" default:"union"`

	// Delimiter is the default delimiter token (default: auto)
	Delimiter string `env:"MERGE_DELIMITER" default:"auto"`

	// Encoding is the default encoding token (default: utf-8-sig)
	Encoding string `env:"MERGE_ENCODING" default:"utf-8-sig"`

	// AddSourceColumn controls the _source_file default for the web form (default: true)
	AddSourceColumn bool `env:"MERGE_ADD_SOURCE_COLUMN" default:"true"`

	// Dedupe controls the duplicate-removal default, smart mode only (default: false)
	Dedupe bool `env:"MERGE_DEDUPE" default:"false"`
}

// RateLimitConfig holds rate limiting settings per time window.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the default rate limit per IP (default: 100)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"100"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// RequireAPIKey gates /api routes behind an X-API-Key header (default: false)
	RequireAPIKey bool `env:"REQUIRE_API_KEY" default:"false"`

	// APIKeys is a comma-separated list of accepted API keys
	APIKeys []string `env:"API_KEYS"`

	// EnableCSP enables Content-Security-Policy headers (default: true)
	EnableCSP bool `env:"SECURITY_ENABLE_CSP" default:"true"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log output format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Validate checks that the configuration is valid.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errs []string

	// Server validation
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("SERVER_PORT (%d) must be 1-65535", c.Server.Port))
	}
	if c.Server.ReadTimeout < 0 {
		errs = append(errs, "SERVER_READ_TIMEOUT must be non-negative")
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, "SERVER_SHUTDOWN_TIMEOUT must be positive")
	}

	// Upload validation
	if c.Upload.MaxTotalSize <= 0 {
		errs = append(errs, "UPLOAD_MAX_TOTAL_SIZE must be positive")
	}
	if c.Upload.MaxFiles <= 0 {
		errs = append(errs, "UPLOAD_MAX_FILES must be positive")
	}
	if c.Upload.PreviewRows < 0 {
		errs = append(errs, "UPLOAD_PREVIEW_ROWS must be non-negative")
	}
	if c.Upload.ResultTTL <= 0 {
		errs = append(errs, "UPLOAD_RESULT_TTL must be positive")
	}

	// Merge defaults validation
	validModes := map[string]bool{"fast": true, "smart": true}
	if !validModes[strings.ToLower(c.Merge.Mode)] {
		errs = append(errs, fmt.Sprintf("MERGE_MODE (%q) must be fast or smart", c.Merge.Mode))
	}
	validHows := map[string]bool{"union": true, "intersection": true, "strict": true}
	if !validHows[strings.ToLower(c.Merge.How)] {
		errs = append(errs, fmt.Sprintf("MERGE_HOW (%q) must be union, intersection, or strict", c.Merge.How))
	}

	// Rate limit validation
	if c.Rate.Enabled && c.Rate.RequestsPerMinute <= 0 {
		errs = append(errs, "RATE_LIMIT_REQUESTS_PER_MINUTE must be positive when rate limiting is enabled")
	}

	// Security validation
	if c.Security.RequireAPIKey && len(c.Security.APIKeys) == 0 {
		errs = append(errs, "REQUIRE_API_KEY is true but API_KEYS is empty; configure at least one API key or disable auth")
	}

	// Logging validation
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL (%q) must be one of: debug, info, warn, error", c.Logging.Level))
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT (%q) must be one of: text, json", c.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// String returns a safe string representation of the config for logging.
// API keys are masked.
func (c *Config) String() string {
	var b strings.Builder
	b.WriteString("Config{")
	b.WriteString(fmt.Sprintf("Server: {Host: %q, Port: %d}, ", c.Server.Host, c.Server.Port))
	b.WriteString(fmt.Sprintf("Upload: {MaxTotalSize: %d, MaxFiles: %d}, ", c.Upload.MaxTotalSize, c.Upload.MaxFiles))
	b.WriteString(fmt.Sprintf("Merge: {Mode: %q, How: %q, Delimiter: %q, Encoding: %q}, ",
		c.Merge.Mode, c.Merge.How, c.Merge.Delimiter, c.Merge.Encoding))
	b.WriteString(fmt.Sprintf("Rate: {Enabled: %v, RequestsPerMinute: %d}, ",
		c.Rate.Enabled, c.Rate.RequestsPerMinute))
	b.WriteString(fmt.Sprintf("Security: {RequireAPIKey: %v, APIKeys: [MASKED x%d]}, ",
		c.Security.RequireAPIKey, len(c.Security.APIKeys)))
	b.WriteString(fmt.Sprintf("Logging: {Level: %q, Format: %q}",
		c.Logging.Level, c.Logging.Format))
	b.WriteString("}")
	return b.String()
}
