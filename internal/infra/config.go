package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"higgsfield-mcp/internal/infra/credentials"
)

const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv             string
	LogLevel           string
	APIKey             string
	Secret             string
	BaseURL            string
	RequestTimeout     time.Duration
	Transport          string
	Port               string
	AuthToken          string
	CORSAllowedOrigins []string
	RateLimitPerMin    int
	TrustProxyHeaders  bool
	HTTPReadTimeout    time.Duration
	HTTPWriteTimeout   time.Duration
	HTTPIdleTimeout    time.Duration
}

// Overrides carries command-line values. Blank fields leave the environment
// value in place.
type Overrides struct {
	APIKey    string
	Secret    string
	BaseURL   string
	Transport string
	Port      string
	LogLevel  string
}

// LoadConfig loads configuration from environment variables, applies flag
// overrides and defaults, and fails when provider credentials are absent.
func LoadConfig(ov Overrides) (*Config, error) {
	cfg := &Config{
		AppEnv:             getEnv("APP_ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", ""),
		BaseURL:            getEnv("HF_BASE_URL", "https://platform.higgsfield.ai"),
		RequestTimeout:     time.Second * time.Duration(getEnvInt("HF_REQUEST_TIMEOUT_SECONDS", 30)),
		Transport:          getEnv("MCP_TRANSPORT", TransportStdio),
		Port:               getEnv("PORT", "8080"),
		AuthToken:          os.Getenv("MCP_AUTH_TOKEN"),
		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS"),
		RateLimitPerMin:    getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
		TrustProxyHeaders:  getEnvBool("TRUST_PROXY_HEADERS", false),
		HTTPReadTimeout:    time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout:   time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 60)),
		HTTPIdleTimeout:    time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
	}

	if v := strings.TrimSpace(ov.BaseURL); v != "" {
		cfg.BaseURL = v
	}
	if v := strings.TrimSpace(ov.Transport); v != "" {
		cfg.Transport = v
	}
	if v := strings.TrimSpace(ov.Port); v != "" {
		cfg.Port = v
	}
	if v := strings.TrimSpace(ov.LogLevel); v != "" {
		cfg.LogLevel = v
	}
	cfg.Transport = strings.ToLower(cfg.Transport)

	if cfg.Transport != TransportStdio && cfg.Transport != TransportHTTP {
		return nil, fmt.Errorf("MCP_TRANSPORT must be %q or %q, got %q", TransportStdio, TransportHTTP, cfg.Transport)
	}

	creds, err := credentials.Resolve(credentials.Credentials{APIKey: ov.APIKey, Secret: ov.Secret})
	if err != nil {
		return nil, err
	}
	cfg.APIKey = creds.APIKey
	cfg.Secret = creds.Secret

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
