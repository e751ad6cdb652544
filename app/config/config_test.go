package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("BLOG_ADDR", ":9090")
	t.Setenv("BLOG_DB_PATH", "/tmp/blog")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_PORT", "587")
	t.Setenv("BLOG_SEARCH_CACHE_SIZE", "16")
	t.Setenv("BLOG_SHUTDOWN_TIMEOUT", "3s")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "/tmp/blog", cfg.DBPath)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.Equal(t, 16, cfg.SearchCacheSize)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	assert.True(t, cfg.MailEnabled())
}

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"BLOG_ADDR", "SMTP_HOST", "SMTP_PORT", "BLOG_SHUTDOWN_TIMEOUT", "BLOG_SEARCH_CACHE_SIZE"} {
		t.Setenv(key, "")
	}

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 25, cfg.SMTPPort)
	assert.Equal(t, 128, cfg.SearchCacheSize)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.MailEnabled())
}

func TestLoadConfigFromEnvFile(t *testing.T) {
	// godotenv never overrides a variable that is already set, even to "".
	t.Setenv("BLOG_MAIL_FROM", "")
	require.NoError(t, os.Unsetenv("BLOG_MAIL_FROM"))
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("BLOG_MAIL_FROM=blog@example.com\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "blog@example.com", cfg.MailFrom)
}

func TestLoadConfigRejectsMalformedValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{key: "SMTP_PORT", value: "twenty-five"},
		{key: "BLOG_SEARCH_CACHE_SIZE", value: "big"},
		{key: "BLOG_SHUTDOWN_TIMEOUT", value: "soon"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
			assert.ErrorContains(t, err, tt.key)
		})
	}
}
