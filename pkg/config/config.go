// ABOUTME: Configuration management backed by viper with file and environment variable support
// ABOUTME: Defines configuration structures for server, caches, fetching, logging and categories

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. FEEDMERGE_SERVER_PORT
const EnvPrefix = "FEEDMERGE"

// Config holds all application configuration
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig `mapstructure:"server"`

	// Cache configures the source document cache
	Cache CacheConfig `mapstructure:"cache"`

	// Fetch configures upstream feed retrieval
	Fetch FetchConfig `mapstructure:"fetch"`

	// Render configures the rendered response cache
	Render RenderConfig `mapstructure:"render"`

	// Warmer configures background cache warming
	Warmer WarmerConfig `mapstructure:"warmer"`

	// RateLimit configures per-client request limiting
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`

	// Log configures the structured logger
	Log LogConfig `mapstructure:"log"`

	// Categories maps category names to their ordered source URLs
	Categories map[string][]string `mapstructure:"categories"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string `mapstructure:"port"`

	// PublicURL is the externally visible base URL used in feed links
	PublicURL string `mapstructure:"public_url"`

	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// CacheConfig holds source cache configuration
type CacheConfig struct {
	// TTL is how long a fetched source document is considered fresh
	TTL time.Duration `mapstructure:"ttl"`
}

// FetchConfig holds upstream fetch configuration
type FetchConfig struct {
	// Timeout bounds a single source fetch
	Timeout time.Duration `mapstructure:"timeout"`

	// MaxConcurrency limits concurrent source fetches per category request
	MaxConcurrency int `mapstructure:"max_concurrency"`

	// UserAgent is sent with every upstream request
	UserAgent string `mapstructure:"user_agent"`
}

// RenderConfig holds rendered response cache configuration
type RenderConfig struct {
	// CacheType specifies the backend (memory/redis/none)
	CacheType string `mapstructure:"cache_type"`

	// TTL is how long a rendered document is reused
	TTL time.Duration `mapstructure:"ttl"`

	// Redis contains Redis-specific configuration
	Redis RedisConfig `mapstructure:"redis"`
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string `mapstructure:"address"`

	// Password is the Redis authentication password
	Password string `mapstructure:"password"`

	// DB is the Redis database number
	DB int `mapstructure:"db"`
}

// WarmerConfig holds cache warmer configuration
type WarmerConfig struct {
	// Interval between warm cycles; zero disables warming
	Interval time.Duration `mapstructure:"interval"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	// RequestsPerMinute allowed per client; zero disables limiting
	RequestsPerMinute int `mapstructure:"requests_per_minute"`
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from defaults, an optional file and the environment.
// An empty path searches for config.{toml,yaml,json} in the working directory
// and /etc/feedmerge; a missing file is not an error in that case.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/feedmerge")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if cfg.Categories == nil {
		cfg.Categories = map[string][]string{}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// setDefaults configures default values
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8000")
	v.SetDefault("server.public_url", "http://localhost:8000")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 60*time.Second)

	v.SetDefault("cache.ttl", 15*time.Minute)

	v.SetDefault("fetch.timeout", 10*time.Second)
	v.SetDefault("fetch.max_concurrency", 8)
	v.SetDefault("fetch.user_agent", "feedmerge/1.0")

	v.SetDefault("render.cache_type", "memory")
	v.SetDefault("render.ttl", 30*time.Second)
	v.SetDefault("render.redis.address", "localhost:6379")
	v.SetDefault("render.redis.password", "")
	v.SetDefault("render.redis.db", 0)

	v.SetDefault("warmer.interval", time.Duration(0))

	v.SetDefault("rate_limit.requests_per_minute", 120)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Validate checks if the configuration is valid.
// Category URLs are validated separately when the categories are built.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	if c.Server.PublicURL == "" {
		return errors.New("public url cannot be empty")
	}

	if c.Cache.TTL < 0 {
		return errors.New("cache ttl cannot be negative")
	}

	if c.Fetch.Timeout < 0 {
		return errors.New("fetch timeout cannot be negative")
	}

	if c.Fetch.MaxConcurrency < 0 {
		return errors.New("fetch max concurrency cannot be negative")
	}

	switch c.Render.CacheType {
	case "memory", "none":
	case "redis":
		if c.Render.Redis.Address == "" {
			return errors.New("redis address cannot be empty when using redis cache")
		}
	default:
		return fmt.Errorf("render cache type must be 'memory', 'redis' or 'none', got %q", c.Render.CacheType)
	}

	if c.RateLimit.RequestsPerMinute < 0 {
		return errors.New("requests per minute cannot be negative")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Log.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Log.Level)
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[c.Log.Format] {
		return fmt.Errorf("invalid log format: %s (must be text or json)", c.Log.Format)
	}

	return nil
}
