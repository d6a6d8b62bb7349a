package config

import (
	"crypto/tls"
	"fmt"
	"os"
	"strings"
	"time"
)

// Defaults applied when the configuration leaves a value unset.
const (
	DefaultAPIBaseURL      = "http://localhost:8000"
	DefaultServerHost      = "0.0.0.0"
	DefaultServerPort      = 8000
	DefaultShutdownTimeout = 10 * time.Second
	DefaultStoreDriver     = "sqlite3"
	DefaultStoreDSN        = "risks.db"
	DefaultExportFormat    = "csv"
)

// BaseHTTPConfig holds common HTTP client configuration settings.
type BaseHTTPConfig struct {
	RetryCount       int
	RetryWaitTime    time.Duration
	RetryMaxWaitTime time.Duration
	Timeout          time.Duration
	TLSClientConfig  *tls.Config
	Proxy            string
}

// RestyHTTPClientConfig holds additional configuration settings for the resty http client.
type RestyHTTPClientConfig struct {
	BaseHTTPConfig
	Debug bool
}

// DefaultHTTPConfig returns the base configuration applicable to all HTTP clients.
func DefaultHTTPConfig() BaseHTTPConfig {
	return BaseHTTPConfig{
		RetryCount:       3,
		RetryWaitTime:    1 * time.Second,
		RetryMaxWaitTime: 2 * time.Second,
		Timeout:          10 * time.Second,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
		Proxy: "",
	}
}

// DefaultRestyConfig returns the resty specific HTTP configuration.
func DefaultRestyConfig() RestyHTTPClientConfig {
	return RestyHTTPClientConfig{
		BaseHTTPConfig: DefaultHTTPConfig(),
		Debug:          false,
	}
}

// GetAPIBaseURL returns the risk API location: RISKREG_API_URL first, then the config file.
func GetAPIBaseURL(cfg *Config) string {
	if env := os.Getenv("RISKREG_API_URL"); env != "" {
		return strings.TrimRight(env, "/")
	}
	if cfg == nil {
		return DefaultAPIBaseURL
	}
	return strings.TrimRight(SetThen(cfg.API.BaseURL, DefaultAPIBaseURL), "/")
}

// GetServerAddress returns the host:port the API server listens on.
func GetServerAddress(cfg *Config) string {
	if cfg == nil {
		return fmt.Sprintf("%s:%d", DefaultServerHost, DefaultServerPort)
	}
	return fmt.Sprintf("%s:%d",
		SetThen(cfg.Server.Host, DefaultServerHost),
		SetThen(cfg.Server.Port, DefaultServerPort))
}

// GetAllowOrigins returns the CORS origins; every origin is allowed by default.
func GetAllowOrigins(cfg *Config) []string {
	if cfg == nil || len(cfg.Server.AllowOrigins) == 0 {
		return []string{"*"}
	}
	return cfg.Server.AllowOrigins
}

// GetShutdownTimeout returns the graceful shutdown timeout of the server.
func GetShutdownTimeout(cfg *Config) time.Duration {
	if cfg == nil {
		return DefaultShutdownTimeout
	}
	return SetThen(cfg.Server.ShutdownTimeout, DefaultShutdownTimeout)
}

// IsMetricsEnabled reports whether the server exposes /metrics. Enabled by default.
func IsMetricsEnabled(cfg *Config) bool {
	if cfg == nil {
		return true
	}
	return GetBoolValue(cfg, "Server.EnableMetrics", true)
}

// GetStore returns the store driver and DSN with defaults applied.
func GetStore(cfg *Config) (string, string) {
	if cfg == nil {
		return DefaultStoreDriver, DefaultStoreDSN
	}
	driver := SetThen(cfg.Store.Driver, DefaultStoreDriver)
	dsn := cfg.Store.DSN
	if dsn == "" && driver == DefaultStoreDriver {
		dsn = DefaultStoreDSN
	}
	return driver, dsn
}

// GetExportFormat returns the default export format.
func GetExportFormat(cfg *Config) string {
	if cfg == nil {
		return DefaultExportFormat
	}
	return SetThen(cfg.Export.Format, DefaultExportFormat)
}
