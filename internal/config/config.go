package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/mcoot/turnherald/internal/services/blackout"
	"github.com/mcoot/turnherald/internal/services/reminder"
)

// Config is the process configuration, loaded once at startup and treated
// as an immutable snapshot thereafter
type Config struct {
	Host string `env:"HOST"`
	Port int    `env:"PORT" envDefault:"8080"`

	// StorageType selects the storage backend ("memory" or "redis")
	StorageType string `env:"STORAGE_TYPE" envDefault:"memory"`
	RedisURL    string `env:"REDIS_URL"`

	DiscordWebhookURL string `env:"DISCORD_WEBHOOK_URL"`

	// UserMapping is inline JSON mapping upstream player names to chat
	// user ids; UserMappingFile points at a JSON file with the same shape
	// and takes precedence when set
	UserMapping     string `env:"USER_MAPPING"`
	UserMappingFile string `env:"USER_MAPPING_FILE"`

	BlackoutEnabled   bool `env:"BLACKOUT_ENABLED" envDefault:"true"`
	BlackoutStartHour int  `env:"BLACKOUT_START_HOUR" envDefault:"0"`
	BlackoutEndHour   int  `env:"BLACKOUT_END_HOUR" envDefault:"7"`
	BlackoutGMTOffset int  `env:"BLACKOUT_GMT_OFFSET" envDefault:"-5"`

	ReminderThresholdHours float64       `env:"REMINDER_THRESHOLD_HOURS" envDefault:"2"`
	ReminderInterval       time.Duration `env:"REMINDER_INTERVAL" envDefault:"15m"`
}

// Load reads configuration from the environment, with an optional .env
// file for local development
func Load() (*Config, error) {
	// Missing .env is the normal case outside local development
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.BlackoutStartHour < 0 || c.BlackoutStartHour > 23 {
		return fmt.Errorf("BLACKOUT_START_HOUR must be 0-23, got %d", c.BlackoutStartHour)
	}
	if c.BlackoutEndHour < 0 || c.BlackoutEndHour > 23 {
		return fmt.Errorf("BLACKOUT_END_HOUR must be 0-23, got %d", c.BlackoutEndHour)
	}
	if c.ReminderThresholdHours <= 0 {
		return fmt.Errorf("REMINDER_THRESHOLD_HOURS must be positive, got %v", c.ReminderThresholdHours)
	}
	if c.ReminderInterval <= 0 {
		return fmt.Errorf("REMINDER_INTERVAL must be positive, got %v", c.ReminderInterval)
	}
	return nil
}

// Blackout returns the blackout window configuration
func (c *Config) Blackout() blackout.Config {
	return blackout.Config{
		Enabled:   c.BlackoutEnabled,
		StartHour: c.BlackoutStartHour,
		EndHour:   c.BlackoutEndHour,
		GMTOffset: c.BlackoutGMTOffset,
	}
}

// Reminder returns the reminder timing configuration
func (c *Config) Reminder() reminder.Config {
	return reminder.Config{
		ThresholdHours: c.ReminderThresholdHours,
		Interval:       c.ReminderInterval,
	}
}

// Mapping loads the player identity mapping table. An empty configuration
// yields an empty mapping, not an error.
func (c *Config) Mapping() (map[string]string, error) {
	raw := c.UserMapping
	if c.UserMappingFile != "" {
		data, err := os.ReadFile(c.UserMappingFile)
		if err != nil {
			return nil, fmt.Errorf("read mapping file: %w", err)
		}
		raw = string(data)
	}

	if raw == "" {
		return map[string]string{}, nil
	}

	mapping := map[string]string{}
	if err := json.Unmarshal([]byte(raw), &mapping); err != nil {
		return nil, fmt.Errorf("parse user mapping: %w", err)
	}
	return mapping, nil
}
