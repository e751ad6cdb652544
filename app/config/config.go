// Package config loads the server configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the settings of the server and its command line tools.
type Config struct {
	// Server
	Addr            string
	BaseURL         string
	ShutdownTimeout time.Duration
	LogLevel        string

	// Storage
	DBPath string

	// Mail
	MailFrom     string
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string

	// Admin
	AdminTokenHash string

	// Search
	SearchCacheSize int
}

// Load reads the configuration from the environment. Variables found in the
// given .env files (".env" when none are given) fill in unset values; a
// missing file is not an error.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	cfg := &Config{
		Addr:           getEnv("BLOG_ADDR", ":8080"),
		BaseURL:        getEnv("BLOG_BASE_URL", "http://localhost:8080"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		DBPath:         getEnv("BLOG_DB_PATH", "data/blog"),
		MailFrom:       getEnv("BLOG_MAIL_FROM", "noreply@localhost"),
		SMTPHost:       getEnv("SMTP_HOST", ""),
		SMTPUsername:   getEnv("SMTP_USERNAME", ""),
		SMTPPassword:   getEnv("SMTP_PASSWORD", ""),
		AdminTokenHash: getEnv("BLOG_ADMIN_TOKEN_HASH", ""),
	}

	var err error
	if cfg.SMTPPort, err = getEnvInt("SMTP_PORT", 25); err != nil {
		return nil, err
	}
	if cfg.SearchCacheSize, err = getEnvInt("BLOG_SEARCH_CACHE_SIZE", 128); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = getEnvDuration("BLOG_SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MailEnabled reports whether an SMTP relay is configured.
func (c *Config) MailEnabled() bool {
	return c.SMTPHost != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return n, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return d, nil
}
