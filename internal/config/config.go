package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Environment variables with this prefix override file values;
// "__" separates nesting levels: MEETUP__GOOGLE__API_KEY -> google.api_key.
const envPrefix = "MEETUP__"

// Config represents the complete server configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Log      LogConfig      `koanf:"log"`
	Google   GoogleConfig   `koanf:"google"`
	DB       DBConfig       `koanf:"db"`
	Redis    RedisConfig    `koanf:"redis"`
	Cache    CacheConfig    `koanf:"cache"`
	Scoring  ScoringConfig  `koanf:"scoring"`
	Sessions SessionsConfig `koanf:"sessions"`
}

type ServerConfig struct {
	Port              int           `koanf:"port"`
	ReadHeaderTimeout time.Duration `koanf:"read_header_timeout"`
	ReadTimeout       time.Duration `koanf:"read_timeout"`
	WriteTimeout      time.Duration `koanf:"write_timeout"`
	IdleTimeout       time.Duration `koanf:"idle_timeout"`
}

type LogConfig struct {
	Level       string `koanf:"level"`
	Development bool   `koanf:"development"`
}

// GoogleConfig holds Google Maps Platform settings.
type GoogleConfig struct {
	APIKey            string        `koanf:"api_key"`
	BaseURL           string        `koanf:"base_url"`
	RequestsPerSecond int           `koanf:"requests_per_second"`
	Timeout           time.Duration `koanf:"timeout"`
}

// DBConfig selects the store for meetup history and the geocode cache.
type DBConfig struct {
	Driver string `koanf:"driver"`
	Path   string `koanf:"path"`
	URL    string `koanf:"url"`
}

// Redis backs the travel-duration cache; an empty URL disables it.
type RedisConfig struct {
	URL string        `koanf:"url"`
	TTL time.Duration `koanf:"ttl"`
}

type CacheConfig struct {
	DetailsSize int           `koanf:"details_size"`
	DetailsTTL  time.Duration `koanf:"details_ttl"`
}

// ScoringConfig controls the per-candidate enrich+score fan-out.
type ScoringConfig struct {
	Policy         string `koanf:"policy"`
	MaxConcurrency int    `koanf:"max_concurrency"`
}

type SessionsConfig struct {
	MaxSessions int `koanf:"max_sessions"`
}

const (
	PolicyStrict = "strict"
	PolicySkip   = "skip"
)

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"server.port":                8080,
		"server.read_header_timeout": 5 * time.Second,
		"server.read_timeout":        10 * time.Second,
		"server.write_timeout":       60 * time.Second,
		"server.idle_timeout":        60 * time.Second,
		"log.level":                  "info",
		"log.development":            false,
		"google.requests_per_second": 10,
		"google.timeout":             10 * time.Second,
		"db.driver":                  "sqlite",
		"db.path":                    "data/meetup.db",
		"redis.ttl":                  15 * time.Minute,
		"cache.details_size":         1024,
		"cache.details_ttl":          6 * time.Hour,
		"scoring.policy":             PolicyStrict,
		"scoring.max_concurrency":    8,
		"sessions.max_sessions":      1000,
	}
}

// Load layers defaults, the optional YAML file at path and MEETUP__ environment
// variables, in that order, and validates the result.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("load config: defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config: file %q: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load config: env: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: unmarshal: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "__", ".")
}

func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Google.APIKey) == "" {
		errs = append(errs, errors.New("google.api_key is required"))
	}
	if c.Google.RequestsPerSecond < 1 {
		errs = append(errs, errors.New("google.requests_per_second must be positive"))
	}

	switch c.DB.Driver {
	case "sqlite":
		if c.DB.Path == "" {
			errs = append(errs, errors.New("db.path is required for sqlite"))
		}
	case "postgres":
		if c.DB.URL == "" {
			errs = append(errs, errors.New("db.url is required for postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("db.driver must be sqlite or postgres, got %q", c.DB.Driver))
	}

	if c.Scoring.Policy != PolicyStrict && c.Scoring.Policy != PolicySkip {
		errs = append(errs, fmt.Errorf("scoring.policy must be %q or %q, got %q", PolicyStrict, PolicySkip, c.Scoring.Policy))
	}
	if c.Scoring.MaxConcurrency < 1 {
		errs = append(errs, errors.New("scoring.max_concurrency must be positive"))
	}
	if c.Sessions.MaxSessions < 1 {
		errs = append(errs, errors.New("sessions.max_sessions must be positive"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// Get returns the environment variable key, or fallback when unset.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
