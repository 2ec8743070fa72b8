package config

import (
	"fmt"
	"strings"
)

// validateConfig validates the loaded configuration values
func validateConfig(config *Config) error {
	if err := validateServerConfig(&config.Server); err != nil {
		return fmt.Errorf("server config validation failed: %w", err)
	}

	if err := validateDatabaseConfig(&config.Database); err != nil {
		return fmt.Errorf("database config validation failed: %w", err)
	}

	if err := validateHTTPConfig(&config.HTTP); err != nil {
		return fmt.Errorf("HTTP config validation failed: %w", err)
	}

	if err := validateSyncConfig(&config.Sync); err != nil {
		return fmt.Errorf("sync config validation failed: %w", err)
	}

	if err := validateLoggingConfig(&config.Logging); err != nil {
		return fmt.Errorf("logging config validation failed: %w", err)
	}

	return nil
}

func validateServerConfig(cfg *ServerConfig) error {
	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", cfg.Port)
	}
	if cfg.ReadTimeout <= 0 || cfg.WriteTimeout <= 0 {
		return fmt.Errorf("server timeouts must be positive")
	}
	return nil
}

func validateDatabaseConfig(cfg *DatabaseConfig) error {
	if cfg.URL == "" {
		return fmt.Errorf("database URL must not be empty")
	}
	if cfg.MaxConnections < 1 {
		return fmt.Errorf("max connections must be at least 1, got %d", cfg.MaxConnections)
	}
	return nil
}

func validateHTTPConfig(cfg *HTTPConfig) error {
	if cfg.FetchTimeout <= 0 {
		return fmt.Errorf("fetch timeout must be positive, got %v", cfg.FetchTimeout)
	}
	if cfg.MaxRetries < 1 {
		return fmt.Errorf("max retries must be at least 1, got %d", cfg.MaxRetries)
	}
	if cfg.RetryBaseDelay <= 0 {
		return fmt.Errorf("retry base delay must be positive, got %v", cfg.RetryBaseDelay)
	}
	if cfg.UserAgent == "" {
		return fmt.Errorf("user agent must not be empty")
	}
	return nil
}

func validateSyncConfig(cfg *SyncConfig) error {
	if cfg.RefreshInterval <= 0 {
		return fmt.Errorf("refresh interval must be positive, got %v", cfg.RefreshInterval)
	}
	if cfg.BatchSize < 1 {
		return fmt.Errorf("batch size must be at least 1, got %d", cfg.BatchSize)
	}
	if cfg.MaxItems < 1 {
		return fmt.Errorf("max items must be at least 1, got %d", cfg.MaxItems)
	}
	if cfg.DescriptionMax < 1 {
		return fmt.Errorf("description max must be at least 1, got %d", cfg.DescriptionMax)
	}
	if cfg.AdminFeedCap < 1 {
		return fmt.Errorf("admin feed cap must be at least 1, got %d", cfg.AdminFeedCap)
	}
	if cfg.RunTimeout <= 0 {
		return fmt.Errorf("run timeout must be positive, got %v", cfg.RunTimeout)
	}
	return nil
}

func validateLoggingConfig(cfg *LoggingConfig) error {
	switch strings.ToLower(cfg.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", cfg.Level)
	}

	switch strings.ToLower(cfg.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("invalid log format: %s", cfg.Format)
	}

	return nil
}
