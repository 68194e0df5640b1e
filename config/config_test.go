package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// Helper to run a test against an empty environment. t.Setenv registers the
// restore, Unsetenv clears the value for the duration of the test.
func clearEnv(t *testing.T, keys ...string) {
	for _, key := range keys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	// Arrange
	clearEnv(t, "PORT", "MX_BASE_URL", "MX_BEARER_TOKEN", "MX_API_KEY", "MX_TIMEOUT",
		"MX_CODE_VALUE_BASE64", "JOURNAL_DB_PATH", "AUTH_USER", "AUTH_PASS", "LOG_LEVEL")

	// Act
	cfg := LoadConfig()

	// Assert
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "https://api.getmaintainx.com/v1", cfg.BaseURL)
	assert.Empty(t, cfg.BearerToken)
	assert.Empty(t, cfg.APIKey)
	assert.Equal(t, 15*time.Second, cfg.Timeout)
	assert.False(t, cfg.CodeValueBase64)
	assert.Equal(t, "mxlabel.db", cfg.JournalDBPath)
	assert.Empty(t, cfg.AuthUser)
	assert.Empty(t, cfg.AuthPass)
	assert.Equal(t, "INFO", cfg.LogLevel)
}

func TestLoadConfig_Overrides(t *testing.T) {
	// Arrange
	t.Setenv("PORT", "9090")
	t.Setenv("MX_BASE_URL", "https://maintx.test/api")
	t.Setenv("MX_BEARER_TOKEN", "token-123")
	t.Setenv("MX_API_KEY", "key-456")
	t.Setenv("MX_TIMEOUT", "30")
	t.Setenv("MX_CODE_VALUE_BASE64", "true")
	t.Setenv("JOURNAL_DB_PATH", "events.db")
	t.Setenv("AUTH_USER", "operator")
	t.Setenv("AUTH_PASS", "secret")
	t.Setenv("LOG_LEVEL", "DEBUG")

	// Act
	cfg := LoadConfig()

	// Assert
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "https://maintx.test/api", cfg.BaseURL)
	assert.Equal(t, "token-123", cfg.BearerToken)
	assert.Equal(t, "key-456", cfg.APIKey)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.True(t, cfg.CodeValueBase64)
	assert.Equal(t, "events.db", cfg.JournalDBPath)
	assert.Equal(t, "operator", cfg.AuthUser)
	assert.Equal(t, "secret", cfg.AuthPass)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
}

func TestValidate_MissingBearerToken(t *testing.T) {
	// Arrange
	cfg := Config{APIKey: "key-456"}

	// Act
	err := cfg.Validate()

	// Assert
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "MX_BEARER_TOKEN")
}

func TestValidate_MissingAPIKey(t *testing.T) {
	// Arrange
	cfg := Config{BearerToken: "token-123"}

	// Act
	err := cfg.Validate()

	// Assert
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "MX_API_KEY")
}

func TestValidate_Success(t *testing.T) {
	// Arrange
	cfg := Config{BearerToken: "token-123", APIKey: "key-456"}

	// Act
	err := cfg.Validate()

	// Assert
	assert.NoError(t, err)
}
