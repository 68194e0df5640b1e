package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port            int
	BaseURL         string
	BearerToken     string
	APIKey          string
	Timeout         time.Duration
	CodeValueBase64 bool
	JournalDBPath   string
	AuthUser        string
	AuthPass        string
	LogLevel        string
}

func LoadConfig() Config {
	port, _ := strconv.Atoi(getEnv("PORT", "8080"))
	timeoutSec, _ := strconv.Atoi(getEnv("MX_TIMEOUT", "15"))
	codeValueBase64, _ := strconv.ParseBool(getEnv("MX_CODE_VALUE_BASE64", "false"))

	return Config{
		Port:            port,
		BaseURL:         getEnv("MX_BASE_URL", "https://api.getmaintainx.com/v1"),
		BearerToken:     getEnv("MX_BEARER_TOKEN", ""),
		APIKey:          getEnv("MX_API_KEY", ""),
		Timeout:         time.Duration(timeoutSec) * time.Second,
		CodeValueBase64: codeValueBase64,
		JournalDBPath:   getEnv("JOURNAL_DB_PATH", "mxlabel.db"),
		AuthUser:        getEnv("AUTH_USER", ""),
		AuthPass:        getEnv("AUTH_PASS", ""),
		LogLevel:        getEnv("LOG_LEVEL", "INFO"),
	}
}

// Validate checks the startup preconditions. Both MaintainX credentials must
// be present before the server accepts requests.
func (c Config) Validate() error {
	if c.BearerToken == "" {
		return fmt.Errorf("missing MaintainX credential: MX_BEARER_TOKEN")
	}
	if c.APIKey == "" {
		return fmt.Errorf("missing MaintainX credential: MX_API_KEY")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
