// Package config loads service configuration from an optional YAML or JSON
// file, a .env file, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/jonathan/resume-analyzer/internal/feedback"
)

// EnvPrefix prefixes every environment override, e.g. RESUME_ANALYZER_SERVER_PORT.
const EnvPrefix = "RESUME_ANALYZER"

// Config is the full service configuration.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Classifier ClassifierConfig `mapstructure:"classifier"`
	Vocabulary VocabularyConfig `mapstructure:"vocabulary"`
	Feedback   feedback.Options `mapstructure:"feedback"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit"`
	Log        LogConfig        `mapstructure:"log"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
	MaxUploadBytes  int64         `mapstructure:"max_upload_bytes"`
}

// DatabaseConfig selects the Postgres store. An empty URL means in-memory.
type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

// RedisConfig enables the classifier cache. An empty Addr disables it.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// ClassifierConfig configures the remote skill classifier. An empty APIKey
// disables it and every extraction uses the vocabulary.
type ClassifierConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	Tier    string        `mapstructure:"tier"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// VocabularyConfig points at an optional YAML vocabulary file.
type VocabularyConfig struct {
	File string `mapstructure:"file"`
}

// RateLimitConfig configures per-client request limits.
type RateLimitConfig struct {
	Enabled       bool            `mapstructure:"enabled"`
	DefaultLimit  int             `mapstructure:"default_limit"`
	DefaultWindow time.Duration   `mapstructure:"default_window"`
	Whitelist     []string        `mapstructure:"whitelist"`
	Blacklist     []string        `mapstructure:"blacklist"`
	Endpoints     []EndpointLimit `mapstructure:"endpoints"`
}

// EndpointLimit overrides the default limit for one route.
type EndpointLimit struct {
	Method string        `mapstructure:"method"`
	Path   string        `mapstructure:"path"`
	Limit  int           `mapstructure:"limit"`
	Window time.Duration `mapstructure:"window"`
	Burst  int           `mapstructure:"burst"`
}

// LogConfig selects the log format and level.
type LogConfig struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			CORSOrigins:     []string{"http://localhost:4200"},
			MaxUploadBytes:  5 << 20,
		},
		Redis: RedisConfig{
			TTL: 24 * time.Hour,
		},
		Classifier: ClassifierConfig{
			Tier:    "lite",
			Timeout: 10 * time.Second,
		},
		Feedback: feedback.DefaultOptions(),
		RateLimit: RateLimitConfig{
			Enabled:       true,
			DefaultLimit:  100,
			DefaultWindow: time.Minute,
			Endpoints: []EndpointLimit{
				{Method: "POST", Path: "/api/analysis", Limit: 10, Window: time.Minute, Burst: 2},
				{Method: "POST", Path: "/api/resumes/upload", Limit: 20, Window: time.Minute, Burst: 5},
			},
		},
	}
}

// conventional names accepted alongside the prefixed ones
var envAliases = map[string]string{
	"classifier.api_key": "GEMINI_API_KEY",
	"database.url":       "DATABASE_URL",
	"redis.addr":         "REDIS_ADDR",
	"server.port":        "PORT",
}

// Load reads configuration. path may be empty. A .env file in the working
// directory is loaded first and never overrides variables already set.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v, Defaults())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, alias := range envAliases {
		prefixed := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, alias); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", alias, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	err := v.Unmarshal(&cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)))
	if err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults registers every key so environment overrides are seen by
// Unmarshal even when no file sets them.
func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", d.Server.WriteTimeout)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)
	v.SetDefault("server.cors_origins", d.Server.CORSOrigins)
	v.SetDefault("server.max_upload_bytes", d.Server.MaxUploadBytes)
	v.SetDefault("database.url", "")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", d.Redis.TTL)
	v.SetDefault("classifier.api_key", "")
	v.SetDefault("classifier.tier", d.Classifier.Tier)
	v.SetDefault("classifier.model", "")
	v.SetDefault("classifier.timeout", d.Classifier.Timeout)
	v.SetDefault("vocabulary.file", "")
	v.SetDefault("feedback.strengths", d.Feedback.Strengths)
	v.SetDefault("feedback.weaknesses", d.Feedback.Weaknesses)
	v.SetDefault("feedback.recommendations", d.Feedback.Recommendations)
	v.SetDefault("rate_limit.enabled", d.RateLimit.Enabled)
	v.SetDefault("rate_limit.default_limit", d.RateLimit.DefaultLimit)
	v.SetDefault("rate_limit.default_window", d.RateLimit.DefaultWindow)
	v.SetDefault("rate_limit.whitelist", []string{})
	v.SetDefault("rate_limit.blacklist", []string{})
	v.SetDefault("log.json", false)
	v.SetDefault("log.debug", false)
}

// applyDefaults fills zero values left by a partial config file.
func (c *Config) applyDefaults() {
	d := Defaults()
	if c.Server.Port == 0 {
		c.Server.Port = d.Server.Port
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = d.Server.ReadTimeout
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = d.Server.WriteTimeout
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = d.Server.ShutdownTimeout
	}
	if len(c.Server.CORSOrigins) == 0 {
		c.Server.CORSOrigins = d.Server.CORSOrigins
	}
	if c.Server.MaxUploadBytes == 0 {
		c.Server.MaxUploadBytes = d.Server.MaxUploadBytes
	}
	if c.Redis.TTL == 0 {
		c.Redis.TTL = d.Redis.TTL
	}
	if c.Classifier.Tier == "" {
		c.Classifier.Tier = d.Classifier.Tier
	}
	if c.Classifier.Timeout == 0 {
		c.Classifier.Timeout = d.Classifier.Timeout
	}
	if c.RateLimit.DefaultWindow == 0 {
		c.RateLimit.DefaultWindow = d.RateLimit.DefaultWindow
	}
	if c.RateLimit.Endpoints == nil {
		c.RateLimit.Endpoints = d.RateLimit.Endpoints
	}
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config error: 'server.port' must be between 1 and 65535")
	}
	if c.Server.MaxUploadBytes < 0 {
		return fmt.Errorf("config error: 'server.max_upload_bytes' must be non-negative")
	}
	if c.Classifier.Timeout < 0 {
		return fmt.Errorf("config error: 'classifier.timeout' must be positive")
	}
	switch c.Classifier.Tier {
	case "lite", "standard", "advanced":
	default:
		return fmt.Errorf("config error: 'classifier.tier' must be one of lite, standard, advanced")
	}
	if c.Redis.TTL < 0 {
		return fmt.Errorf("config error: 'redis.ttl' must be non-negative")
	}
	if c.Feedback.Strengths < 0 || c.Feedback.Weaknesses < 0 || c.Feedback.Recommendations < 0 {
		return fmt.Errorf("config error: 'feedback' sizes must be non-negative")
	}
	if c.RateLimit.DefaultLimit < 0 {
		return fmt.Errorf("config error: 'rate_limit.default_limit' must be non-negative")
	}
	for _, ep := range c.RateLimit.Endpoints {
		if ep.Path == "" || ep.Limit < 0 || ep.Window < 0 || ep.Burst < 0 {
			return fmt.Errorf("config error: invalid rate limit for %s %s", ep.Method, ep.Path)
		}
	}
	if c.Vocabulary.File != "" {
		if _, err := os.Stat(c.Vocabulary.File); os.IsNotExist(err) {
			return fmt.Errorf("config error: vocabulary file not found: %s", c.Vocabulary.File)
		}
	}
	return nil
}
