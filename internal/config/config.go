package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	Log        LogConfig
	API        APIConfig
	Search     SearchConfig
	Cache      CacheConfig
	Onboarding OnboardingConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port           int
	GinMode        string   // debug, release, test
	AllowedOrigins []string // CORS origins for JSON API consumers
	RateLimit      float64  // autocomplete API requests per second per IP
	RateBurst      int
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// APIConfig describes the Horoscopus backend the web client talks to
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// SearchConfig selects and tunes the location search providers
type SearchConfig struct {
	Providers     []string // ordered: api, nominatim
	NominatimURL  string
	UserAgent     string
	DefaultLimit  int
	MinQueryLen   int
	NominatimRate float64 // requests per second
}

// CacheConfig holds autocomplete cache configuration
type CacheConfig struct {
	Backend  string // memory, redis
	TTL      time.Duration
	RedisURL string
}

// OnboardingConfig holds onboarding form configuration
type OnboardingConfig struct {
	SubmitMode  string // stub, api
	SubmitDelay time.Duration
	SessionTTL  time.Duration
}

// Load reads configuration from .env, config file and environment variables
func Load() (*Config, error) {
	// A missing .env is fine, the process environment still applies
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()

	// Set config file name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("$HOME/.horoscopus")

	setDefaults(v)

	// Read from environment variables
	v.SetEnvPrefix("HOROSCOPUS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file doesn't exist, we have defaults
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Unmarshal into config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.ginmode", "release")
	v.SetDefault("server.allowedorigins", []string{"http://localhost:3000"})
	v.SetDefault("server.ratelimit", 10.0)
	v.SetDefault("server.rateburst", 20)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("api.baseurl", "http://localhost:8000/api/v1")
	v.SetDefault("api.timeout", 10*time.Second)
	v.SetDefault("search.providers", []string{"api"})
	v.SetDefault("search.nominatimurl", "https://nominatim.openstreetmap.org/search")
	v.SetDefault("search.useragent", "Horoscopus/0.1 (+https://horoscopus.app)")
	v.SetDefault("search.defaultlimit", 6)
	v.SetDefault("search.minquerylen", 3)
	v.SetDefault("search.nominatimrate", 1.0)
	v.SetDefault("cache.backend", "memory")
	v.SetDefault("cache.ttl", 60*time.Second)
	v.SetDefault("cache.redisurl", "redis://localhost:6379/0")
	v.SetDefault("onboarding.submitmode", "stub")
	v.SetDefault("onboarding.submitdelay", 1200*time.Millisecond)
	v.SetDefault("onboarding.sessionttl", 30*time.Minute)
}

// Validate checks values viper cannot enforce on its own
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("unknown cache backend %q", c.Cache.Backend)
	}
	switch c.Onboarding.SubmitMode {
	case "stub", "api":
	default:
		return fmt.Errorf("unknown onboarding submit mode %q", c.Onboarding.SubmitMode)
	}
	if len(c.Search.Providers) == 0 {
		return errors.New("at least one search provider is required")
	}
	for _, p := range c.Search.Providers {
		if p != "api" && p != "nominatim" {
			return fmt.Errorf("unknown search provider %q", p)
		}
	}
	if c.Search.MinQueryLen < 1 {
		return fmt.Errorf("search.minQueryLen must be positive, got %d", c.Search.MinQueryLen)
	}
	return nil
}

// GetServerAddr returns the server address in the format ":port"
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// NewLogger creates a new slog.Logger based on the configuration
func (c *Config) NewLogger() *slog.Logger {
	// Parse log level
	var level slog.Level
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Choose handler based on format
	var handler slog.Handler
	switch strings.ToLower(c.Log.Format) {
	case "json":
		handler = slog.NewJSONHandler(os.Stdout, opts)
	default: // "text" or anything else
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
