package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ServerConfig holds configuration for the Baraza server.
type ServerConfig struct {
	Addr      string `yaml:"addr"`       // Listen address (default ":8080")
	LogLevel  string `yaml:"log_level"`  // Log level: debug, info, warn, error
	LogFormat string `yaml:"log_format"` // Log format: text, json
	DBPath    string `yaml:"db_path"`    // SQLite database path (default ~/.baraza/baraza.db, ":memory:" for testing)

	// PlatformURL is the remote platform API base URL.
	PlatformURL string `yaml:"platform_url"`
	// SecureCookies enables the Secure flag on session cookies (HTTPS).
	SecureCookies bool `yaml:"secure_cookies"`
	// SessionTTL is the server session lifetime. Set via flag, not YAML.
	SessionTTL time.Duration `yaml:"-"`

	// RedisAddr enables the dashboard summary cache when non-empty.
	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`

	// S3Bucket enables document upload when non-empty.
	S3Bucket string `yaml:"s3_bucket"`
	S3Region string `yaml:"s3_region"`
}

// DefaultServerConfig returns sensible defaults.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:       ":8080",
		LogLevel:   "info",
		LogFormat:  "text",
		SessionTTL: 24 * time.Hour,
	}
}

// LoadServerConfig overlays a YAML config file (optional) and environment
// variables on the defaults. Precedence: env > file > defaults.
func LoadServerConfig(path string) (ServerConfig, error) {
	cfg := DefaultServerConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv overrides fields from BARAZA_* environment variables.
func (c *ServerConfig) applyEnv() {
	if v := os.Getenv("BARAZA_ADDR"); v != "" {
		c.Addr = v
	}
	if v := os.Getenv("BARAZA_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("BARAZA_LOG_FORMAT"); v != "" {
		c.LogFormat = v
	}
	if v := os.Getenv("BARAZA_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("BARAZA_PLATFORM_URL"); v != "" {
		c.PlatformURL = v
	}
	if v := os.Getenv("BARAZA_REDIS_ADDR"); v != "" {
		c.RedisAddr = v
	}
	if v := os.Getenv("BARAZA_REDIS_PASSWORD"); v != "" {
		c.RedisPassword = v
	}
	if v := os.Getenv("BARAZA_S3_BUCKET"); v != "" {
		c.S3Bucket = v
	}
	if v := os.Getenv("BARAZA_S3_REGION"); v != "" {
		c.S3Region = v
	}
}
