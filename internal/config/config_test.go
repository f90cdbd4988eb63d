package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := defaults()

	if cfg.AccessTokenTTL >= cfg.RefreshTokenTTL {
		t.Errorf("default refresh TTL should exceed access TTL, got access=%v refresh=%v",
			cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	}
	if len(cfg.PublicRoutes) == 0 {
		t.Errorf("expected default public routes")
	}
	if len(cfg.AdminRoutes) == 0 {
		t.Errorf("expected default admin routes")
	}
}

func TestApplyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	content := `{
		"address": "0.0.0.0:9090",
		"database_dsn": "postgres://localhost/staffhub",
		"access_token_ttl": "5m",
		"refresh_token_ttl": "48h",
		"public_routes": ["/api/v1/healthcheck"]
	}`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg := defaults()
	if err := applyFile(cfg, path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Addr != "0.0.0.0:9090" {
		t.Errorf("expected address from file, got %q", cfg.Addr)
	}
	if cfg.AccessTokenTTL != 5*time.Minute {
		t.Errorf("expected access TTL 5m, got %v", cfg.AccessTokenTTL)
	}
	if cfg.RefreshTokenTTL != 48*time.Hour {
		t.Errorf("expected refresh TTL 48h, got %v", cfg.RefreshTokenTTL)
	}
	if len(cfg.PublicRoutes) != 1 || cfg.PublicRoutes[0] != "/api/v1/healthcheck" {
		t.Errorf("expected public routes from file, got %v", cfg.PublicRoutes)
	}
}

func TestApplyFileMissingIsIgnored(t *testing.T) {
	cfg := defaults()
	if err := applyFile(cfg, filepath.Join(t.TempDir(), "absent.json")); err != nil {
		t.Fatalf("missing config file must not error, got: %v", err)
	}
}

func TestApplyFileMalformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	if err := applyFile(defaults(), path); err == nil {
		t.Errorf("expected error for malformed config file")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", "127.0.0.1:7777")
	t.Setenv("ACCESS_TOKEN_TTL", "90s")

	cfg := defaults()
	if err := applyEnv(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Addr != "127.0.0.1:7777" {
		t.Errorf("expected address from env, got %q", cfg.Addr)
	}
	if cfg.AccessTokenTTL != 90*time.Second {
		t.Errorf("expected access TTL 90s, got %v", cfg.AccessTokenTTL)
	}
}

func TestApplyEnvBadDuration(t *testing.T) {
	t.Setenv("REFRESH_TOKEN_TTL", "soon")
	if err := applyEnv(defaults()); err == nil {
		t.Errorf("expected error for unparseable duration")
	}
}
