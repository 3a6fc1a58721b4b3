// Package config loads tablekit configuration from a file and the
// environment via viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/tablekit/tablekit/debounce"
	"github.com/tablekit/tablekit/logger"
	"github.com/tablekit/tablekit/params"
)

// Mongo is the document database connection configuration.
type Mongo struct {
	URI      string `json:"uri" yaml:"uri"`
	Database string `json:"database" yaml:"database"`
}

// Redis is the optional page cache configuration. An empty Addr disables
// caching.
type Redis struct {
	Addr     string        `json:"addr" yaml:"addr"`
	Password string        `json:"password" yaml:"password"`
	DB       int           `json:"db" yaml:"db"`
	TTL      time.Duration `json:"ttl" yaml:"ttl"`
}

// Config represents the configuration implementation.
type Config struct {
	AppName          string         `json:"app_name" yaml:"app_name"`
	Host             string         `json:"host" yaml:"host"`
	Port             int            `json:"port" yaml:"port"`
	DefaultPageSize  int            `json:"default_page_size" yaml:"default_page_size"`
	MaxPageSize      int            `json:"max_page_size" yaml:"max_page_size"`
	DebounceInterval time.Duration  `json:"debounce_interval" yaml:"debounce_interval"`
	Mongo            *Mongo         `json:"mongo" yaml:"mongo"`
	Redis            *Redis         `json:"redis" yaml:"redis"`
	Logger           *logger.Config `json:"logger" yaml:"logger"`
}

// Load reads the configuration from the given file path, falling back to
// defaults and TABLEKIT_* environment variables when the path is empty.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("tablekit")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error loading config: %w", err)
		}
	}

	cfg := &Config{
		AppName:          v.GetString("app_name"),
		Host:             v.GetString("host"),
		Port:             v.GetInt("port"),
		DefaultPageSize:  v.GetInt("default_page_size"),
		MaxPageSize:      v.GetInt("max_page_size"),
		DebounceInterval: v.GetDuration("debounce_interval"),
		Mongo: &Mongo{
			URI:      v.GetString("mongo.uri"),
			Database: v.GetString("mongo.database"),
		},
		Redis: &Redis{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
			TTL:      v.GetDuration("redis.ttl"),
		},
		Logger: &logger.Config{
			Level:  v.GetString("logger.level"),
			Format: v.GetString("logger.format"),
			Output: v.GetString("logger.output"),
		},
	}

	cfg.normalize()
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_name", "tablekit")
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("port", 8080)
	v.SetDefault("default_page_size", params.DefaultPageSize)
	v.SetDefault("max_page_size", 100)
	v.SetDefault("debounce_interval", debounce.DefaultInterval)
	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "tablekit")
	v.SetDefault("redis.ttl", time.Minute)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.output", "stdout")
}

// normalize corrects out-of-range values instead of rejecting them, the
// same permissive policy query parsing follows.
func (c *Config) normalize() {
	if c.DefaultPageSize < 1 {
		c.DefaultPageSize = params.DefaultPageSize
	}
	if c.MaxPageSize < c.DefaultPageSize {
		c.MaxPageSize = c.DefaultPageSize
	}
	if c.DebounceInterval <= 0 {
		c.DebounceInterval = debounce.DefaultInterval
	}
}

// Address is the host:port the demo server binds to.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
