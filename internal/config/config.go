// Package config provides centralized configuration management for the application.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import (
	"net"
	"strconv"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server   ServerConfig
	Analysis AnalysisConfig
	Rate     RateLimitConfig
	Security SecurityConfig
	CORS     CORSConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" envDefault:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" envDefault:"8080"`

	// ReadHeaderTimeout bounds reading the request headers (default: 10s).
	// The body is streamed into the analysis and is bounded by RequestTimeout.
	ReadHeaderTimeout time.Duration `env:"SERVER_READ_HEADER_TIMEOUT" envDefault:"10s"`

	// WriteTimeout runs from the end of the headers until the response is
	// written, so it must cover RequestTimeout (default: 6m)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"6m"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" envDefault:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 5m)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" envDefault:"5m"`
}

// AnalysisConfig holds CSV analysis settings.
type AnalysisConfig struct {
	// MaxFileSize is the maximum accepted upload body in bytes (default: 100MB)
	MaxFileSize int64 `env:"ANALYSIS_MAX_FILE_SIZE" envDefault:"104857600"`

	// MaxConcurrent is the maximum number of analyses running at once (default: 5)
	MaxConcurrent int `env:"ANALYSIS_MAX_CONCURRENT" envDefault:"5"`

	// MaxWaitTime is how long a request waits for an analysis slot (default: 30s)
	MaxWaitTime time.Duration `env:"ANALYSIS_MAX_WAIT_TIME" envDefault:"30s"`

	// Timeout bounds a single analysis (default: 5m)
	Timeout time.Duration `env:"ANALYSIS_TIMEOUT" envDefault:"5m"`
}

// RateLimitConfig holds rate limiting settings per time window.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" envDefault:"true"`

	// RequestsPerMinute is the default rate limit per IP (default: 100)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" envDefault:"100"`

	// AnalyzeLimit is requests per minute per IP for the analyze endpoint (default: 10)
	AnalyzeLimit int `env:"RATE_LIMIT_ANALYZE" envDefault:"10"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`
}

// CORSConfig holds cross-origin settings. The defaults allow every origin,
// which suits a browser dashboard served from another port in development.
type CORSConfig struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	AllowedMethods []string `env:"CORS_ALLOWED_METHODS" envSeparator:"," envDefault:"GET,POST,PUT,PATCH,DELETE,HEAD,OPTIONS"`
	AllowedHeaders []string `env:"CORS_ALLOWED_HEADERS" envSeparator:"," envDefault:"*"`

	// MaxAge is how long (seconds) browsers may cache preflight results (default: 300)
	MaxAge int `env:"CORS_MAX_AGE" envDefault:"300"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" envDefault:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" envDefault:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
