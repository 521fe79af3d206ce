package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "ENV", "LOG_LEVEL", "REDIS_ADDR", "SESSION_TTL", "SLOT_FETCH_DELAY",
		"CORS_ALLOWED_ORIGINS", "EMAIL_PROVIDER", "PRACTITIONER_NAME", "OTEL_ENABLED",
	} {
		t.Setenv(key, "")
	}
	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Fatalf("expected default env, got %s", cfg.Env)
	}
	if cfg.RedisAddr != "" {
		t.Fatalf("expected in-memory store by default, got redis addr %q", cfg.RedisAddr)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Fatalf("expected default session ttl, got %s", cfg.SessionTTL)
	}
	if cfg.SlotFetchDelay != 800*time.Millisecond {
		t.Fatalf("expected default slot delay, got %s", cfg.SlotFetchDelay)
	}
	if cfg.EmailProvider != "stub" {
		t.Fatalf("expected stub email provider, got %s", cfg.EmailProvider)
	}
	if cfg.PractitionerName != "Dr. Kiran S. Sawekar" {
		t.Fatalf("unexpected practitioner default %q", cfg.PractitionerName)
	}
	if len(cfg.CORSAllowedOrigins) != 0 {
		t.Fatalf("expected no CORS origins, got %v", cfg.CORSAllowedOrigins)
	}
	if cfg.OTelEnabled {
		t.Fatalf("expected tracing disabled by default")
	}
	if cfg.IsProduction() {
		t.Fatalf("development must not report production")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("REDIS_TLS", "true")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("SLOT_FETCH_DELAY", "0s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("RATE_LIMIT_BURST", "5")
	t.Setenv("EMAIL_PROVIDER", " SendGrid ")
	t.Setenv("OTEL_SAMPLING_RATIO", "0.25")
	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("expected override port, got %s", cfg.Port)
	}
	if !cfg.IsProduction() {
		t.Fatalf("expected production env")
	}
	if cfg.RedisAddr != "redis:6379" || !cfg.RedisTLS {
		t.Fatalf("expected redis overrides, got %q tls=%v", cfg.RedisAddr, cfg.RedisTLS)
	}
	if cfg.SessionTTL != 2*time.Hour {
		t.Fatalf("expected ttl override, got %s", cfg.SessionTTL)
	}
	if cfg.SlotFetchDelay != 0 {
		t.Fatalf("expected zero slot delay, got %s", cfg.SlotFetchDelay)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected CORS origins %v", cfg.CORSAllowedOrigins)
	}
	if cfg.RateLimitRPS != 2.5 || cfg.RateLimitBurst != 5 {
		t.Fatalf("unexpected rate limit %v/%d", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
	if cfg.EmailProvider != "sendgrid" {
		t.Fatalf("expected normalized email provider, got %q", cfg.EmailProvider)
	}
	if cfg.OTelSampleRatio != 0.25 {
		t.Fatalf("expected sampling ratio override, got %v", cfg.OTelSampleRatio)
	}
}

func TestInvalidValuesFallBack(t *testing.T) {
	t.Setenv("SESSION_TTL", "forever")
	t.Setenv("RATE_LIMIT_BURST", "many")
	t.Setenv("COOKIE_SECURE", "maybe")
	cfg := Load()
	if cfg.SessionTTL != 24*time.Hour {
		t.Fatalf("expected fallback ttl, got %s", cfg.SessionTTL)
	}
	if cfg.RateLimitBurst != 30 {
		t.Fatalf("expected fallback burst, got %d", cfg.RateLimitBurst)
	}
	if cfg.CookieSecure {
		t.Fatalf("expected fallback cookie secure false")
	}
}
