package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Generator GeneratorConfig `mapstructure:"generator"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// ServerConfig holds HTTP listener configuration
type ServerConfig struct {
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// GeneratorConfig holds synthesis configuration
type GeneratorConfig struct {
	Seed            int64    `mapstructure:"seed"` // 0 = seed from the clock
	IntervalMinutes float64  `mapstructure:"interval_minutes"`
	DefaultHours    int      `mapstructure:"default_hours"`
	MaxHours        int      `mapstructure:"max_hours"`
	Services        []string `mapstructure:"services"` // empty = built-in fleet
}

// TelegramConfig holds Telegram chat-ops configuration
type TelegramConfig struct {
	BotToken          string        `mapstructure:"bot_token"`
	ChatID            string        `mapstructure:"chat_id"`
	Enabled           bool          `mapstructure:"enabled"`
	MaxRetries        int           `mapstructure:"max_retries"`
	RetryDelayBase    time.Duration `mapstructure:"retry_delay_base"`
	DigestInterval    time.Duration `mapstructure:"digest_interval"` // 0 = no periodic digest
	DigestScenario    string        `mapstructure:"digest_scenario"`
	DigestService     string        `mapstructure:"digest_service"`
	DigestEnvironment string        `mapstructure:"digest_environment"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables. An empty path skips
// the file and uses defaults plus environment.
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	// SYNTHTEL_SERVER_PORT overrides server.port
	v.SetEnvPrefix("SYNTHTEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults configures default values for all configuration options
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "60s")

	v.SetDefault("generator.seed", 0)
	v.SetDefault("generator.interval_minutes", 5.0)
	v.SetDefault("generator.default_hours", 24)
	v.SetDefault("generator.max_hours", 168)
	v.SetDefault("generator.services", []string{})

	v.SetDefault("telegram.bot_token", "")
	v.SetDefault("telegram.chat_id", "")
	v.SetDefault("telegram.enabled", false)
	v.SetDefault("telegram.max_retries", 3)
	v.SetDefault("telegram.retry_delay_base", "1s")
	v.SetDefault("telegram.digest_interval", "0s")
	v.SetDefault("telegram.digest_scenario", "cpu_spike")
	v.SetDefault("telegram.digest_service", "payment-api")
	v.SetDefault("telegram.digest_environment", "prod")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// Validate checks that all configuration values are valid
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server.read_timeout and server.write_timeout must be positive")
	}

	if c.Generator.IntervalMinutes <= 0 || c.Generator.IntervalMinutes > 60 {
		return fmt.Errorf("generator.interval_minutes must be in (0, 60]")
	}
	if c.Generator.MaxHours < 1 {
		return fmt.Errorf("generator.max_hours must be at least 1")
	}
	if c.Generator.DefaultHours < 1 || c.Generator.DefaultHours > c.Generator.MaxHours {
		return fmt.Errorf("generator.default_hours must be between 1 and generator.max_hours")
	}
	for _, s := range c.Generator.Services {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("generator.services must not contain empty names")
		}
	}

	if c.Telegram.Enabled {
		if c.Telegram.BotToken == "" {
			return fmt.Errorf("telegram.bot_token is required when telegram is enabled")
		}
		if c.Telegram.ChatID == "" {
			return fmt.Errorf("telegram.chat_id is required when telegram is enabled")
		}
		if c.Telegram.DigestInterval < 0 {
			return fmt.Errorf("telegram.digest_interval must not be negative")
		}
		if c.Telegram.DigestInterval > 0 && c.Telegram.DigestInterval < time.Minute {
			return fmt.Errorf("telegram.digest_interval must be at least 1 minute")
		}
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be one of: json, text")
	}

	return nil
}
