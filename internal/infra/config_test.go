package infra

import (
	"errors"
	"testing"
	"time"

	"higgsfield-mcp/internal/domain"
)

func setCredentials(t *testing.T) {
	t.Helper()
	t.Setenv("HF_API_KEY", "test-key")
	t.Setenv("HF_SECRET", "test-secret")
}

func TestLoadConfigDefaults(t *testing.T) {
	setCredentials(t)
	t.Setenv("HF_BASE_URL", "")
	t.Setenv("MCP_TRANSPORT", "")
	t.Setenv("PORT", "")
	t.Setenv("HF_REQUEST_TIMEOUT_SECONDS", "")

	cfg, err := LoadConfig(Overrides{})
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.BaseURL != "https://platform.higgsfield.ai" {
		t.Fatalf("BaseURL mismatch: got %q", cfg.BaseURL)
	}
	if cfg.Transport != TransportStdio {
		t.Fatalf("Transport mismatch: got %q want %q", cfg.Transport, TransportStdio)
	}
	if cfg.Port != "8080" {
		t.Fatalf("Port mismatch: got %q", cfg.Port)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Fatalf("RequestTimeout mismatch: got %s", cfg.RequestTimeout)
	}
	if cfg.APIKey != "test-key" || cfg.Secret != "test-secret" {
		t.Fatalf("credentials not loaded: %q %q", cfg.APIKey, cfg.Secret)
	}
}

func TestLoadConfigMissingCredentials(t *testing.T) {
	t.Setenv("HF_API_KEY", "")
	t.Setenv("HF_SECRET", "")

	cfg, err := LoadConfig(Overrides{})
	if !errors.Is(err, domain.ErrMissingCredentials) {
		t.Fatalf("err = %v, want ErrMissingCredentials", err)
	}
	if cfg != nil {
		t.Fatalf("expected nil config on error")
	}
}

func TestLoadConfigFlagCredentials(t *testing.T) {
	t.Setenv("HF_API_KEY", "")
	t.Setenv("HF_SECRET", "")

	cfg, err := LoadConfig(Overrides{APIKey: "flag-key", Secret: "flag-secret"})
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.APIKey != "flag-key" || cfg.Secret != "flag-secret" {
		t.Fatalf("flag credentials not applied: %q %q", cfg.APIKey, cfg.Secret)
	}
}

func TestLoadConfigOverridesEnv(t *testing.T) {
	setCredentials(t)
	t.Setenv("MCP_TRANSPORT", "stdio")
	t.Setenv("PORT", "9000")

	cfg, err := LoadConfig(Overrides{Transport: "HTTP", Port: "1919", BaseURL: "http://localhost:4010"})
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Transport != TransportHTTP {
		t.Fatalf("Transport mismatch: got %q", cfg.Transport)
	}
	if cfg.Port != "1919" {
		t.Fatalf("Port mismatch: got %q", cfg.Port)
	}
	if cfg.BaseURL != "http://localhost:4010" {
		t.Fatalf("BaseURL mismatch: got %q", cfg.BaseURL)
	}
}

func TestLoadConfigRejectsUnknownTransport(t *testing.T) {
	setCredentials(t)
	t.Setenv("MCP_TRANSPORT", "sse")

	if _, err := LoadConfig(Overrides{}); err == nil {
		t.Fatalf("expected error for unsupported transport")
	}
}

func TestLoadConfigCORSOrigins(t *testing.T) {
	setCredentials(t)
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example.com, ,https://b.example.com ")

	cfg, err := LoadConfig(Overrides{})
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	expected := []string{"https://a.example.com", "https://b.example.com"}
	if len(cfg.CORSAllowedOrigins) != len(expected) {
		t.Fatalf("CORSAllowedOrigins mismatch: got %#v want %#v", cfg.CORSAllowedOrigins, expected)
	}
	for i, origin := range expected {
		if cfg.CORSAllowedOrigins[i] != origin {
			t.Fatalf("CORSAllowedOrigins[%d] = %q, want %q", i, cfg.CORSAllowedOrigins[i], origin)
		}
	}
}

func TestLoadConfigTrustProxyHeaders(t *testing.T) {
	setCredentials(t)
	t.Setenv("TRUST_PROXY_HEADERS", "")

	cfg, err := LoadConfig(Overrides{})
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.TrustProxyHeaders {
		t.Fatalf("proxy headers must not be trusted by default")
	}

	t.Setenv("TRUST_PROXY_HEADERS", "true")
	cfg, err = LoadConfig(Overrides{})
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if !cfg.TrustProxyHeaders {
		t.Fatalf("TRUST_PROXY_HEADERS=true was not applied")
	}
}
