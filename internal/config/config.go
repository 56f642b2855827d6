// Package config loads server configuration from defaults, an optional YAML
// file, a .env file and the process environment, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultAddr is the default listen address.
	DefaultAddr = ":5000"

	// DefaultTokenTTL is how long issued bearer tokens stay valid.
	DefaultTokenTTL = 7 * 24 * time.Hour

	// MinSecretLength is the shortest accepted JWT signing secret.
	MinSecretLength = 16
)

var (
	// ErrMissingDatabaseURL is returned when DATABASE_URL is not set.
	ErrMissingDatabaseURL = errors.New("missing DATABASE_URL")

	// ErrMissingSecret is returned when JWT_SECRET is not set.
	ErrMissingSecret = errors.New("missing JWT_SECRET")

	// ErrWeakSecret is returned when JWT_SECRET is shorter than MinSecretLength.
	ErrWeakSecret = fmt.Errorf("JWT_SECRET must be at least %d bytes", MinSecretLength)
)

// Config holds server configuration.
type Config struct {
	Addr           string        `yaml:"addr"`
	DatabaseURL    string        `yaml:"database_url"`
	JWTSecret      string        `yaml:"jwt_secret"`
	TokenTTL       time.Duration `yaml:"token_ttl"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
	LogLevel       string        `yaml:"log_level"`
	LogFormat      string        `yaml:"log_format"`

	// LoginRateLimit is the sustained rate of login and register attempts
	// allowed per client IP, in requests per second.
	LoginRateLimit float64 `yaml:"login_rate_limit"`
	LoginBurst     int     `yaml:"login_burst"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Addr:     DefaultAddr,
		TokenTTL: DefaultTokenTTL,
		AllowedOrigins: []string{
			"http://localhost:3000",
			"http://localhost:5173",
		},
		LogLevel:       "info",
		LogFormat:      "text",
		LoginRateLimit: 0.2,
		LoginBurst:     5,
	}
}

// Load builds the configuration. yamlPath may be empty; envFile may name a
// missing file.
func Load(yamlPath, envFile string) (*Config, error) {
	cfg := Default()

	if yamlPath != "" {
		data, err := os.ReadFile(yamlPath)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if envFile != "" {
		// Variables already present in the environment win over the file.
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if port := os.Getenv("PORT"); port != "" {
		c.Addr = ":" + port
	}
	setString(&c.Addr, "ADDR")
	setString(&c.DatabaseURL, "DATABASE_URL")
	setString(&c.JWTSecret, "JWT_SECRET")
	setString(&c.LogLevel, "LOG_LEVEL")
	setString(&c.LogFormat, "LOG_FORMAT")

	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		c.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("TOKEN_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parsing TOKEN_TTL: %w", err)
		}
		c.TokenTTL = d
	}
	if v := os.Getenv("LOGIN_RATE_LIMIT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("parsing LOGIN_RATE_LIMIT: %w", err)
		}
		c.LoginRateLimit = f
	}
	if v := os.Getenv("LOGIN_BURST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing LOGIN_BURST: %w", err)
		}
		c.LoginBurst = n
	}
	return nil
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return ErrMissingDatabaseURL
	}
	if c.JWTSecret == "" {
		return ErrMissingSecret
	}
	if len(c.JWTSecret) < MinSecretLength {
		return ErrWeakSecret
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("token TTL must be positive, got %s", c.TokenTTL)
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
