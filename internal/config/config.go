// Package config provides configuration for the application, built
// from defaults, an optional JSON file, command-line flags, and
// environment variables. The resulting struct is constructed once at
// startup and passed by injection; nothing in this package is mutated
// afterwards.
package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"
)

// Config holds the runtime settings for the server.
type Config struct {
	// Addr is the server's listening address (ip:port).
	Addr string `json:"address"`

	// DatabaseDSN is the PostgreSQL connection string.
	DatabaseDSN string `json:"database_dsn"`

	// PrivateKeyPath and PublicKeyPath locate the PEM-encoded RSA
	// keypair used to sign and verify tokens.
	PrivateKeyPath string `json:"private_key_path"`
	PublicKeyPath  string `json:"public_key_path"`

	// AccessTokenTTL and RefreshTokenTTL are the token lifetimes. They
	// are independent; either ordering can be configured.
	AccessTokenTTL  time.Duration `json:"-"`
	RefreshTokenTTL time.Duration `json:"-"`

	// PublicRoutes lists paths reachable without a token.
	PublicRoutes []string `json:"public_routes"`

	// AdminRoutes lists route templates restricted to staff users. An
	// entry may carry a "METHOD " prefix to restrict a single method.
	AdminRoutes []string `json:"admin_routes"`

	// MediaRoot is the directory avatars are stored under.
	MediaRoot string `json:"media_root"`

	// BaseURL prefixes generated entity links.
	BaseURL string `json:"base_url"`

	// LogLevel selects the zap logging level.
	LogLevel string `json:"log_level"`
}

// jsonDurations mirrors the duration fields as strings ("15m", "24h")
// for the JSON overlay.
type jsonDurations struct {
	AccessTokenTTL  string `json:"access_token_ttl"`
	RefreshTokenTTL string `json:"refresh_token_ttl"`
}

func defaults() *Config {
	return &Config{
		Addr:            "localhost:8080",
		DatabaseDSN:     "",
		PrivateKeyPath:  "certs/jwt-private.pem",
		PublicKeyPath:   "certs/jwt-public.pem",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
		PublicRoutes: []string{
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
			"/api/v1/healthcheck",
			"/api/v1/media/{file}",
		},
		AdminRoutes: []string{
			"GET /api/v1/users",
			"POST /api/v1/users",
			"PUT /api/v1/users/{username}",
			"DELETE /api/v1/users/{username}",
			"POST /api/v1/subdivisions",
			"PUT /api/v1/subdivisions/{subdivisionID}",
			"POST /api/v1/subdivisions/{subdivisionID}/projects",
			"PUT /api/v1/subdivisions/{subdivisionID}/projects/{projectID}",
		},
		MediaRoot: "media",
		BaseURL:   "http://localhost:8080/api/v1",
		LogLevel:  "info",
	}
}

// Parse builds the configuration: defaults, then the JSON file (if
// present), then command-line flags, then environment variables.
func Parse() (*Config, error) {
	cfg := defaults()

	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	configPath := fs.String("c", "config.json", "path to config file")
	fs.StringVar(&cfg.Addr, "a", cfg.Addr, "run on ip:port server")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "db address")
	fs.StringVar(&cfg.PrivateKeyPath, "private-key", cfg.PrivateKeyPath, "path to RSA private key (PEM)")
	fs.StringVar(&cfg.PublicKeyPath, "public-key", cfg.PublicKeyPath, "path to RSA public key (PEM)")
	fs.DurationVar(&cfg.AccessTokenTTL, "access-ttl", cfg.AccessTokenTTL, "access token lifetime")
	fs.DurationVar(&cfg.RefreshTokenTTL, "refresh-ttl", cfg.RefreshTokenTTL, "refresh token lifetime")
	fs.StringVar(&cfg.MediaRoot, "media-root", cfg.MediaRoot, "directory for uploaded avatars")
	fs.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "base URL for generated links")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "logging level")

	if err := fs.Parse(os.Args[1:]); err != nil {
		return nil, err
	}

	if p := os.Getenv("CONFIG"); p != "" {
		*configPath = p
	}
	if err := applyFile(cfg, *configPath); err != nil {
		return nil, err
	}

	// Re-apply flags so they win over the file.
	if err := fs.Parse(os.Args[1:]); err != nil {
		return nil, err
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyFile overlays values from a JSON config file. A missing file is
// not an error; a malformed one is.
func applyFile(cfg *Config, path string) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	var durations jsonDurations
	if err := json.Unmarshal(data, &durations); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	if durations.AccessTokenTTL != "" {
		if cfg.AccessTokenTTL, err = time.ParseDuration(durations.AccessTokenTTL); err != nil {
			return fmt.Errorf("parse access_token_ttl: %w", err)
		}
	}
	if durations.RefreshTokenTTL != "" {
		if cfg.RefreshTokenTTL, err = time.ParseDuration(durations.RefreshTokenTTL); err != nil {
			return fmt.Errorf("parse refresh_token_ttl: %w", err)
		}
	}
	return nil
}

// applyEnv overlays environment variables, which take precedence over
// both the file and flags.
func applyEnv(cfg *Config) error {
	if v := os.Getenv("SERVER_ADDRESS"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		cfg.DatabaseDSN = v
	}
	if v := os.Getenv("JWT_PRIVATE_KEY_PATH"); v != "" {
		cfg.PrivateKeyPath = v
	}
	if v := os.Getenv("JWT_PUBLIC_KEY_PATH"); v != "" {
		cfg.PublicKeyPath = v
	}
	if v := os.Getenv("ACCESS_TOKEN_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse ACCESS_TOKEN_TTL: %w", err)
		}
		cfg.AccessTokenTTL = ttl
	}
	if v := os.Getenv("REFRESH_TOKEN_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse REFRESH_TOKEN_TTL: %w", err)
		}
		cfg.RefreshTokenTTL = ttl
	}
	if v := os.Getenv("MEDIA_ROOT"); v != "" {
		cfg.MediaRoot = v
	}
	if v := os.Getenv("BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	return nil
}
