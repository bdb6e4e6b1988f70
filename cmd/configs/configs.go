package configs

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"juntell/careers-gateway/gateway/middleware/ratelimiter"
)

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

type Config struct {
	ServerPort  string `mapstructure:"SERVER_PORT"`
	Environment string `mapstructure:"ENVIRONMENT"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`
	LogFormat   string `mapstructure:"LOG_FORMAT"`

	RateLimiterMaxRequests     int    `mapstructure:"RATE_LIMITER_MAX_REQUESTS"`
	RateLimiterWindow          string `mapstructure:"RATE_LIMITER_WINDOW"`
	RateLimiterCleanupInterval string `mapstructure:"RATE_LIMITER_CLEANUP_INTERVAL"`
	RateLimiterBackend         string `mapstructure:"RATE_LIMITER_BACKEND"`
	RateLimiterRedisAddr       string `mapstructure:"RATE_LIMITER_REDIS_ADDR"`
	RateLimiterRedisPrefix     string `mapstructure:"RATE_LIMITER_REDIS_PREFIX"`

	DatabaseURL string `mapstructure:"DATABASE_URL"`

	AWSRegion          string `mapstructure:"AWS_REGION"`
	AWSAccessKeyID     string `mapstructure:"AWS_ACCESS_KEY_ID"`
	AWSSecretAccessKey string `mapstructure:"AWS_SECRET_ACCESS_KEY"`
	AWSS3BucketName    string `mapstructure:"AWS_S3_BUCKET_NAME"`

	AdminToken         string `mapstructure:"ADMIN_TOKEN"`
	CORSAllowedOrigins string `mapstructure:"CORS_ALLOWED_ORIGINS"`
}

var defaults = map[string]any{
	"SERVER_PORT":                   "8080",
	"ENVIRONMENT":                   "development",
	"LOG_LEVEL":                     "info",
	"LOG_FORMAT":                    "",
	"RATE_LIMITER_MAX_REQUESTS":     ratelimiter.DefaultPolicy.MaxRequests,
	"RATE_LIMITER_WINDOW":           ratelimiter.DefaultPolicy.Window.String(),
	"RATE_LIMITER_CLEANUP_INTERVAL": ratelimiter.DefaultCleanupInterval.String(),
	"RATE_LIMITER_BACKEND":          BackendMemory,
	"RATE_LIMITER_REDIS_ADDR":       "localhost:6379",
	"RATE_LIMITER_REDIS_PREFIX":     ratelimiter.DefaultRedisPrefix,
	"DATABASE_URL":                  "",
	"AWS_REGION":                    "",
	"AWS_ACCESS_KEY_ID":             "",
	"AWS_SECRET_ACCESS_KEY":         "",
	"AWS_S3_BUCKET_NAME":            "",
	"ADMIN_TOKEN":                   "",
	"CORS_ALLOWED_ORIGINS":          "",
}

// LoadConfig reads path/.env when present and lets the environment
// override every key.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(filepath.Join(path, ".env"))
	v.SetConfigType("env")
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	if c.RateLimiterMaxRequests <= 0 {
		return fmt.Errorf("RATE_LIMITER_MAX_REQUESTS must be positive, got %d", c.RateLimiterMaxRequests)
	}
	if _, err := parseDuration("RATE_LIMITER_WINDOW", c.RateLimiterWindow); err != nil {
		return err
	}
	if _, err := parseDuration("RATE_LIMITER_CLEANUP_INTERVAL", c.RateLimiterCleanupInterval); err != nil {
		return err
	}
	switch c.RateLimiterBackend {
	case BackendMemory, BackendRedis:
	default:
		return fmt.Errorf("RATE_LIMITER_BACKEND must be %q or %q, got %q", BackendMemory, BackendRedis, c.RateLimiterBackend)
	}
	return nil
}

func (c *Config) Policy() ratelimiter.Policy {
	window, _ := parseDuration("RATE_LIMITER_WINDOW", c.RateLimiterWindow)
	return ratelimiter.Policy{MaxRequests: c.RateLimiterMaxRequests, Window: window}
}

func (c *Config) CleanupInterval() time.Duration {
	interval, _ := parseDuration("RATE_LIMITER_CLEANUP_INTERVAL", c.RateLimiterCleanupInterval)
	return interval
}

func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(c.CORSAllowedOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

func parseDuration(key, value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s: %q. Valid time units are \"ns\", \"us\" (or \"µs\"), \"ms\", \"s\", \"m\", \"h\"", key, value)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, value)
	}
	return d, nil
}
