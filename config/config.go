// Package config loads envyctl settings from an optional config file
// and environment variables, with validated defaults.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config stores the runtime settings of the client and demo binary.
// Values are read by viper from a config file or environment variables
// prefixed with ENVY_.
type Config struct {
	// Device address
	// Host is empty until configured; callers decide whether that is
	// fatal.
	Host string `mapstructure:"HOST"`
	Port int    `mapstructure:"PORT" validate:"gt=0,lte=65535"`

	// Timeouts, in milliseconds
	ConnectTimeoutMs int `mapstructure:"CONNECT_TIMEOUT_MS" validate:"gt=0"`
	CommandTimeoutMs int `mapstructure:"COMMAND_TIMEOUT_MS" validate:"gt=0"`
	ReadTimeoutMs    int `mapstructure:"READ_TIMEOUT_MS" validate:"gt=0"`

	// Heartbeat supervision
	HeartbeatIntervalMs int `mapstructure:"HEARTBEAT_INTERVAL_MS" validate:"gt=0"`
	LivenessTimeoutMs   int `mapstructure:"LIVENESS_TIMEOUT_MS" validate:"gt=0"`

	// Reconnect backoff
	ReconnectInitialBackoffMs int     `mapstructure:"RECONNECT_INITIAL_BACKOFF_MS" validate:"gt=0"`
	ReconnectMaxBackoffMs     int     `mapstructure:"RECONNECT_MAX_BACKOFF_MS" validate:"gt=0"`
	ReconnectJitter           float64 `mapstructure:"RECONNECT_JITTER" validate:"gte=0,lte=1"`
	DisableAutoReconnect      bool    `mapstructure:"DISABLE_AUTO_RECONNECT"`

	// Framing
	MaxLineLength int `mapstructure:"MAX_LINE_LENGTH" validate:"gte=256"`

	// Logging
	LogLevel string `mapstructure:"LOG_LEVEL" validate:"oneof=debug info warn error"`
}

// Duration helpers for the millisecond-valued fields.

func (c *Config) ConnectTimeout() time.Duration { return msec(c.ConnectTimeoutMs) }
func (c *Config) CommandTimeout() time.Duration { return msec(c.CommandTimeoutMs) }
func (c *Config) ReadTimeout() time.Duration    { return msec(c.ReadTimeoutMs) }

func (c *Config) HeartbeatInterval() time.Duration { return msec(c.HeartbeatIntervalMs) }
func (c *Config) LivenessTimeout() time.Duration   { return msec(c.LivenessTimeoutMs) }

func (c *Config) ReconnectInitialBackoff() time.Duration { return msec(c.ReconnectInitialBackoffMs) }
func (c *Config) ReconnectMaxBackoff() time.Duration     { return msec(c.ReconnectMaxBackoffMs) }

func msec(n int) time.Duration { return time.Duration(n) * time.Millisecond }

// Load reads configuration from an optional envy.yaml in path plus
// ENVY_-prefixed environment variables, then validates it.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("HOST", "")
	v.SetDefault("PORT", 44077)
	v.SetDefault("CONNECT_TIMEOUT_MS", 3000)
	v.SetDefault("COMMAND_TIMEOUT_MS", 2000)
	v.SetDefault("READ_TIMEOUT_MS", 5000)
	v.SetDefault("HEARTBEAT_INTERVAL_MS", 10000)
	v.SetDefault("LIVENESS_TIMEOUT_MS", 30000)
	v.SetDefault("RECONNECT_INITIAL_BACKOFF_MS", 1000)
	v.SetDefault("RECONNECT_MAX_BACKOFF_MS", 30000)
	v.SetDefault("RECONNECT_JITTER", 0.2)
	v.SetDefault("DISABLE_AUTO_RECONNECT", false)
	v.SetDefault("MAX_LINE_LENGTH", 8192)
	v.SetDefault("LOG_LEVEL", "info")

	if path != "" {
		v.AddConfigPath(path)
		v.SetConfigName("envy")
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	v.SetEnvPrefix("ENVY")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	if cfg.ReconnectMaxBackoffMs < cfg.ReconnectInitialBackoffMs {
		return nil, fmt.Errorf("validate config: RECONNECT_MAX_BACKOFF_MS %d below RECONNECT_INITIAL_BACKOFF_MS %d",
			cfg.ReconnectMaxBackoffMs, cfg.ReconnectInitialBackoffMs)
	}
	return &cfg, nil
}
