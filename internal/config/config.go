// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type RedisConfig struct {
	URL      string        `yaml:"url"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"` // usage cache entry lifetime
}

// GuardConfig bounds every remote call. Interactive reads use the short
// timeout, writes the longer one.
type GuardConfig struct {
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

type WebConfig struct {
	Port       int           `yaml:"port"`
	AuthSecret string        `yaml:"auth_secret"`
	SessionTTL time.Duration `yaml:"session_ttl"`
	AdminKey   string        `yaml:"admin_key"` // bearer key for reset endpoint
}

type Config struct {
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Guard    GuardConfig    `yaml:"guard"`
	Web      WebConfig      `yaml:"web"`

	Runtime RuntimeConfig `yaml:"-"`
}

func LoadConfig(path string, dev bool) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	// defaults
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Guard.ReadTimeout <= 0 {
		cfg.Guard.ReadTimeout = 3 * time.Second
	}
	if cfg.Guard.WriteTimeout <= 0 {
		cfg.Guard.WriteTimeout = 5 * time.Second
	}
	if cfg.Redis.TTL <= 0 {
		cfg.Redis.TTL = 48 * time.Hour
	}
	if cfg.Web.Port <= 0 {
		cfg.Web.Port = 8080
	}
	if cfg.Web.SessionTTL <= 0 {
		cfg.Web.SessionTTL = 24 * time.Hour
	}

	// Minimal validation
	if cfg.Database.URL == "" {
		return nil, errors.New("database.url is required")
	}
	if cfg.Redis.URL == "" {
		return nil, errors.New("redis.url is required")
	}
	if cfg.Web.AuthSecret == "" {
		return nil, errors.New("web.auth_secret is required")
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}
