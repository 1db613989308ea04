package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Environment names accepted in APP_ENV.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	AppEnv string

	// Content store location. In production documents are fetched from the
	// raw-content host of a GitHub repository; in development they are read
	// from a local data directory.
	ContentOwner  string
	ContentRepo   string
	ContentBranch string
	DataPath      string

	// Fetch behavior.
	RevalidateInterval time.Duration
	FetchTimeout       time.Duration
	CacheSize          int
	DefaultLocale      string

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	revalidate, err := parseDuration("REVALIDATE_INTERVAL", "1h")
	if err != nil {
		return nil, err
	}
	fetchTimeout, err := parseDuration("FETCH_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	cacheSize, err := parsePositiveInt("CACHE_SIZE", 256)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		AppEnv: envOrDefault("APP_ENV", EnvDevelopment),

		ContentOwner:  envOrDefault("CONTENT_OWNER", "climatewatch-kr"),
		ContentRepo:   envOrDefault("CONTENT_REPO", "climate-data"),
		ContentBranch: envOrDefault("CONTENT_BRANCH", "main"),
		DataPath:      envOrDefault("DATA_PATH", "/data"),

		RevalidateInterval: revalidate,
		FetchTimeout:       fetchTimeout,
		CacheSize:          cacheSize,
		DefaultLocale:      envOrDefault("DEFAULT_LOCALE", "ko"),

		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
	}

	if cfg.AppEnv != EnvDevelopment && cfg.AppEnv != EnvProduction {
		return nil, fmt.Errorf("invalid APP_ENV %q", cfg.AppEnv)
	}
	if cfg.AppEnv == EnvProduction {
		if cfg.ContentOwner == "" || cfg.ContentRepo == "" || cfg.ContentBranch == "" {
			return nil, errors.New("CONTENT_OWNER, CONTENT_REPO, and CONTENT_BRANCH are required in production")
		}
	}
	if cfg.DefaultLocale == "" {
		return nil, errors.New("DEFAULT_LOCALE must not be empty")
	}

	return cfg, nil
}

// Production reports whether the service runs against the remote content
// host rather than a local data directory.
func (c *Config) Production() bool {
	return c.AppEnv == EnvProduction
}

// BaseURL returns the content root documents are resolved against. Pure
// value computation; the choice is made once at startup.
func (c *Config) BaseURL() string {
	if c.Production() {
		return fmt.Sprintf("https://raw.githubusercontent.com/%s/%s/%s/data",
			c.ContentOwner, c.ContentRepo, c.ContentBranch)
	}
	return c.DataPath
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key, fallback string) (time.Duration, error) {
	s := envOrDefault(key, fallback)
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s %q", key, s)
	}
	return d, nil
}

func parsePositiveInt(key string, fallback int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s %q", key, s)
	}
	return n, nil
}
