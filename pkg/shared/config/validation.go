package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

var (
	supportedStoreDrivers  = []string{"memory", "sqlite3", "postgres"}
	supportedExportFormats = []string{"csv", "json", "sarif"}
)

// ValidateConfig checks if the global configurations have valid values.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("YAML global config: configuration object is nil")
	}
	if err := ValidateHTTPConfig(&cfg.HTTPClient); err != nil {
		return fmt.Errorf("YAML global config: http_client directive is invalid: %w", err)
	}
	if err := ValidateAPIConfig(&cfg.API); err != nil {
		return fmt.Errorf("YAML global config: api directive is invalid: %w", err)
	}
	if err := ValidateServerConfig(&cfg.Server); err != nil {
		return fmt.Errorf("YAML global config: server directive is invalid: %w", err)
	}
	if err := ValidateStoreConfig(&cfg.Store); err != nil {
		return fmt.Errorf("YAML global config: store directive is invalid: %w", err)
	}
	if err := ValidateExportConfig(&cfg.Export); err != nil {
		return fmt.Errorf("YAML global config: export directive is invalid: %w", err)
	}
	return nil
}

// ValidateHTTPConfig checks if the HTTP configurations have valid values.
func ValidateHTTPConfig(httpConfig *HTTPClient) error {
	if httpConfig == nil {
		return fmt.Errorf("HTTP configuration is nil")
	}
	if httpConfig.RetryCount < 0 || httpConfig.RetryCount > 20 {
		return fmt.Errorf("retry_count must be between 0 and 20: %d", httpConfig.RetryCount)
	}

	durations := map[string]time.Duration{
		"RetryMaxWaitTime": httpConfig.RetryMaxWaitTime,
		"RetryWaitTime":    httpConfig.RetryWaitTime,
		"Timeout":          httpConfig.Timeout,
	}
	for name, duration := range durations {
		if err := validateDuration(duration, name, 100*time.Second); err != nil {
			return err
		}
	}

	if err := validateProxy(&httpConfig.Proxy); err != nil {
		return err
	}

	return nil
}

// ValidateAPIConfig checks that the API base URL, when set, is an absolute http(s) URL.
func ValidateAPIConfig(apiConfig *API) error {
	if apiConfig == nil {
		return fmt.Errorf("API configuration is nil")
	}
	if apiConfig.BaseURL == "" {
		return nil
	}
	u, err := url.ParseRequestURI(apiConfig.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base_url must use http or https, got %q", u.Scheme)
	}
	return nil
}

// ValidateServerConfig checks the listener and shutdown settings.
func ValidateServerConfig(serverConfig *Server) error {
	if serverConfig == nil {
		return fmt.Errorf("server configuration is nil")
	}
	if serverConfig.Port != 0 {
		if err := validatePort(serverConfig.Port); err != nil {
			return err
		}
	}
	return validateDuration(serverConfig.ShutdownTimeout, "shutdown_timeout", 5*time.Minute)
}

// ValidateStoreConfig checks that the store driver is supported.
func ValidateStoreConfig(storeConfig *Store) error {
	if storeConfig == nil {
		return fmt.Errorf("store configuration is nil")
	}
	if storeConfig.Driver == "" {
		return nil
	}
	if !contains(supportedStoreDrivers, storeConfig.Driver) {
		return fmt.Errorf("unsupported driver %q, expected one of: %s", storeConfig.Driver, strings.Join(supportedStoreDrivers, ", "))
	}
	if storeConfig.Driver == "postgres" && storeConfig.DSN == "" {
		return fmt.Errorf("dsn is required for the postgres driver")
	}
	return nil
}

// ValidateExportConfig checks the default export format.
func ValidateExportConfig(exportConfig *Export) error {
	if exportConfig == nil {
		return fmt.Errorf("export configuration is nil")
	}
	if exportConfig.Format != "" && !contains(supportedExportFormats, strings.ToLower(exportConfig.Format)) {
		return fmt.Errorf("unsupported format %q, expected one of: %s", exportConfig.Format, strings.Join(supportedExportFormats, ", "))
	}
	return nil
}

// validateDuration checks that a time.Duration is valid and within a specified maximum duration.
func validateDuration(d time.Duration, name string, max time.Duration) error {
	if d < 0 {
		return fmt.Errorf("invalid duration for %q: %v cannot be negative", name, d)
	}
	if d > max {
		return fmt.Errorf("%q duration is too long: %v exceeds maximum of %v", name, d, max)
	}
	return nil
}

// validateProxy checks if the given Proxy settings are valid.
func validateProxy(proxy *Proxy) error {
	if proxy == nil {
		return fmt.Errorf("proxy configuration is nil")
	}

	// If host or port is not set, skip further validation
	if proxy.Host == "" || proxy.Port == 0 {
		return nil
	}

	if err := validateHost(&proxy.Host); err != nil {
		return err
	}

	return validatePort(proxy.Port)
}

// validateHost ensures the host includes a scheme, adding "http" if missing.
func validateHost(host *string) error {
	if host == nil {
		return fmt.Errorf("host string pointer is nil")
	}

	if !strings.Contains(*host, "://") {
		*host = "http://" + *host
	}
	*host = strings.TrimRight(*host, "/")

	if _, err := url.Parse(*host); err != nil {
		return fmt.Errorf("invalid host URL: %w", err)
	}

	return nil
}

// validatePort checks if the port is valid.
func validatePort(port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", port)
	}
	return nil
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
