// Package config loads carfinder settings from defaults, an optional
// config file, a .env file, CARFINDER_* environment variables and command
// line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/catalog"
	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/dal"
	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/wishlist"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const EnvPrefix = "CARFINDER"

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	Page      PageConfig      `mapstructure:"page"`
	Wishlist  WishlistConfig  `mapstructure:"wishlist"`
	Redis     RedisConfig     `mapstructure:"redis"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Address         string        `mapstructure:"address"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type CatalogConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type PageConfig struct {
	Size int `mapstructure:"size"`
}

type WishlistConfig struct {
	Store string `mapstructure:"store"` // file, sqlite or redis
	Path  string `mapstructure:"path"`
	DSN   string `mapstructure:"dsn"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// RateLimitConfig limits API requests per client IP. RPS 0 disables it.
type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or console
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.shutdown_timeout", "10s")

	v.SetDefault("catalog.url", catalog.DefaultURL)
	v.SetDefault("catalog.timeout", "0s")

	v.SetDefault("page.size", dal.DefaultPageSize)

	v.SetDefault("wishlist.store", wishlist.StoreFile)
	v.SetDefault("wishlist.path", ".carfinder")
	v.SetDefault("wishlist.dsn", "carfinder.db")

	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.db", 0)

	v.SetDefault("ratelimit.rps", 2)
	v.SetDefault("ratelimit.burst", 4)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// Load reads the configuration. path may name a config file; when empty,
// config.yaml is looked up in the working directory and is optional.
// flags, when not nil, override every other source; flag names use the
// dotted keys, e.g. --catalog.url.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, err
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that would make the service misbehave.
func (c *Config) Validate() error {
	if c.Catalog.URL == "" {
		return errors.New("catalog.url must be set")
	}
	if c.Page.Size < 1 {
		return fmt.Errorf("page.size must be a positive number: %d", c.Page.Size)
	}
	switch c.Wishlist.Store {
	case wishlist.StoreFile, wishlist.StoreSQLite, wishlist.StoreRedis:
	default:
		return fmt.Errorf("wishlist.store must be one of file, sqlite, redis: %q", c.Wishlist.Store)
	}
	if c.RateLimit.RPS < 0 {
		return fmt.Errorf("ratelimit.rps must not be negative: %v", c.RateLimit.RPS)
	}
	if c.RateLimit.RPS > 0 && c.RateLimit.Burst < 1 {
		return fmt.Errorf("ratelimit.burst must be a positive number: %d", c.RateLimit.Burst)
	}
	return nil
}

// StoreConfig maps the wishlist settings to the store options.
func (c *Config) StoreConfig() wishlist.StoreConfig {
	sc := wishlist.StoreConfig{
		Kind: c.Wishlist.Store,
		Path: c.Wishlist.Path,
		DSN:  c.Wishlist.DSN,
	}
	sc.Redis.Addr = c.Redis.Address
	sc.Redis.Password = c.Redis.Password
	sc.Redis.DB = c.Redis.DB
	return sc
}
