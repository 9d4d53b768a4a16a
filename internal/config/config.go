// Package config loads the relay's settings from the environment.
package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	env "github.com/Netflix/go-env"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the relay.
type Config struct {
	Env      string `env:"ENV,default=development"`
	Host     string `env:"HOST"`
	Port     int    `env:"PORT,default=8080"`
	LogLevel string `env:"LOG_LEVEL,default=info"`

	// Per-connection outbound queue; a full queue drops events for that connection.
	SendBufferSize int   `env:"SEND_BUFFER_SIZE,default=256"`
	MaxMessageSize int64 `env:"MAX_MESSAGE_SIZE,default=8192"`

	// Redis event mirror, disabled when RedisAddr is empty.
	RedisAddr          string `env:"REDIS_ADDR"`
	RedisPassword      string `env:"REDIS_PASSWORD"`
	RedisDB            int    `env:"REDIS_DB,default=0"`
	RedisChannelPrefix string `env:"REDIS_CHANNEL_PREFIX,default=chatrelay"`
	MirrorBufferSize   int    `env:"MIRROR_BUFFER_SIZE,default=1024"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`
}

// Load reads a .env file if present, then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values the relay cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Port < 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT out of range: %d", c.Port))
	}
	if c.SendBufferSize <= 0 {
		errs = append(errs, fmt.Errorf("SEND_BUFFER_SIZE must be positive, got %d", c.SendBufferSize))
	}
	if c.MaxMessageSize <= 0 {
		errs = append(errs, fmt.Errorf("MAX_MESSAGE_SIZE must be positive, got %d", c.MaxMessageSize))
	}
	if c.MirrorBufferSize <= 0 {
		errs = append(errs, fmt.Errorf("MIRROR_BUFFER_SIZE must be positive, got %d", c.MirrorBufferSize))
	}
	return errors.Join(errs...)
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// MirrorEnabled reports whether a Redis address was configured.
func (c *Config) MirrorEnabled() bool {
	return c.RedisAddr != ""
}
