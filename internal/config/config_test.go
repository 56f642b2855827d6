package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

var envKeys = []string{
	"PORT", "ADDR", "DATABASE_URL", "JWT_SECRET", "TOKEN_TTL",
	"ALLOWED_ORIGINS", "LOG_LEVEL", "LOG_FORMAT", "LOGIN_RATE_LIMIT", "LOGIN_BURST",
}

// clearEnv unsets every key Load reads; t.Setenv restores them afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("", "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Addr != DefaultAddr {
		t.Errorf("Addr = %q, want %q", cfg.Addr, DefaultAddr)
	}
	if cfg.TokenTTL != DefaultTokenTTL {
		t.Errorf("TokenTTL = %v, want %v", cfg.TokenTTL, DefaultTokenTTL)
	}
	if len(cfg.AllowedOrigins) == 0 {
		t.Error("AllowedOrigins is empty")
	}
}

func TestLoadPrecedence(t *testing.T) {
	clearEnv(t)

	yamlPath := writeFile(t, "journal.yaml", `
addr: ":7000"
database_url: sqlite:from-yaml.db
jwt_secret: yaml-secret-0123456789
token_ttl: 24h
log_level: warn
`)
	envPath := writeFile(t, ".env", "DATABASE_URL=sqlite:from-dotenv.db\nLOG_LEVEL=debug\n")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load(yamlPath, envPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"yaml addr", cfg.Addr, ":7000"},
		{"yaml secret", cfg.JWTSecret, "yaml-secret-0123456789"},
		{"yaml ttl", cfg.TokenTTL, 24 * time.Hour},
		{"dotenv over yaml", cfg.DatabaseURL, "sqlite:from-dotenv.db"},
		{"environment over dotenv", cfg.LogLevel, "error"},
		{"origins list", len(cfg.AllowedOrigins), 2},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestLoadPortAndAddr(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8081")

	cfg, err := Load("", "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Addr != ":8081" {
		t.Errorf("Addr = %q, want :8081", cfg.Addr)
	}

	t.Setenv("ADDR", "127.0.0.1:9000")
	cfg, err = Load("", "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Addr != "127.0.0.1:9000" {
		t.Errorf("Addr = %q, want ADDR to win", cfg.Addr)
	}
}

func TestLoadMissingEnvFileIsFine(t *testing.T) {
	clearEnv(t)

	if _, err := Load("", filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
}

func TestLoadBadValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"token ttl", "TOKEN_TTL", "a week"},
		{"rate limit", "LOGIN_RATE_LIMIT", "fast"},
		{"burst", "LOGIN_BURST", "1.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			if _, err := Load("", ""); err == nil {
				t.Errorf("Load() with %s=%q expected error", tt.key, tt.value)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := Default()
		cfg.DatabaseURL = "sqlite::memory:"
		cfg.JWTSecret = "0123456789abcdef"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"valid", func(*Config) {}, nil},
		{"missing database", func(c *Config) { c.DatabaseURL = "" }, ErrMissingDatabaseURL},
		{"missing secret", func(c *Config) { c.JWTSecret = "" }, ErrMissingSecret},
		{"short secret", func(c *Config) { c.JWTSecret = "short" }, ErrWeakSecret},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
