// Package config handles application configuration via environment variables.
// It uses kelseyhightower/envconfig for parsing and provides sensible defaults.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Telegram TelegramConfig
	Database DatabaseConfig
	Server   ServerConfig
	Log      LogConfig
	Game     GameConfig
}

// TelegramConfig holds bot settings. An empty token disables the bot.
type TelegramConfig struct {
	Token string `envconfig:"TELEGRAM_APITOKEN"`
	Debug bool   `envconfig:"TELEGRAM_DEBUG" default:"false"`
}

// DatabaseConfig holds the postgres connection used for saved rosters.
// An empty URI disables them.
type DatabaseConfig struct {
	URI string `envconfig:"POSTGRES_URI"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Enabled bool   `envconfig:"HTTP_ENABLED" default:"true"`
	Host    string `envconfig:"HTTP_HOST" default:"0.0.0.0"`
	Port    int    `envconfig:"HTTP_PORT" default:"8080"`

	ReadTimeout     time.Duration `envconfig:"HTTP_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"HTTP_WRITE_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"HTTP_SHUTDOWN_TIMEOUT" default:"30s"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	// Level is the log level: debug, info, warn, error (default: info)
	Level string `envconfig:"LOG_LEVEL" default:"info"`

	// Format is the log format: json, text, plain (default: json)
	Format string `envconfig:"LOG_FORMAT" default:"json"`
}

// GameConfig holds table rules shared by every session.
type GameConfig struct {
	// Premium unlocks the extended roles
	Premium bool `envconfig:"GAME_PREMIUM" default:"false"`

	// DayDuration is the discussion time before voting starts
	DayDuration time.Duration `envconfig:"GAME_DAY_DURATION" default:"3m"`

	// VoteResultDuration is how long the tally stays on screen
	VoteResultDuration time.Duration `envconfig:"GAME_VOTE_RESULT_DURATION" default:"15s"`
}

// Addr returns the server address in host:port format.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config

	sections := []struct {
		name string
		spec any
	}{
		{"telegram", &cfg.Telegram},
		{"database", &cfg.Database},
		{"server", &cfg.Server},
		{"log", &cfg.Log},
		{"game", &cfg.Game},
	}
	for _, section := range sections {
		if err := envconfig.Process("", section.spec); err != nil {
			return nil, fmt.Errorf("failed to load %s config: %w", section.name, err)
		}
	}

	return &cfg, nil
}
