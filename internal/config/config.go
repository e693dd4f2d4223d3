package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Global singleton for components constructed outside the wire graph
var globalConfig *Config

// Config holds all environment backed configuration for studio-server.
type Config struct {
	// HTTP Server
	HTTPPort    int    `env:"HTTP_PORT" envDefault:"8080"`
	MetricsPort int    `env:"METRICS_PORT" envDefault:"9091"`
	DatabaseURL string `env:"DATABASE_URL,notEmpty"`

	// Admin auth. The dashboard is protected by a single static bearer value.
	AdminToken string `env:"ADMIN_TOKEN,notEmpty"`

	// Booking
	BookingSlots        []string `env:"BOOKING_SLOTS" envSeparator:"," envDefault:"8:30 AM,8:45 AM,9:00 AM,9:30 AM,10:00 AM,10:30 AM,11:00 AM,1:00 PM,1:30 PM,2:00 PM,2:30 PM,3:00 PM,3:30 PM,4:00 PM"`
	BookingTimezone     string   `env:"BOOKING_TIMEZONE" envDefault:"UTC"`
	DefaultDurationMins int      `env:"DEFAULT_APPOINTMENT_DURATION_MINUTES" envDefault:"30"`

	// Outbound notification relay (email sends are proxied through it)
	NotifyRelayURL string        `env:"NOTIFY_RELAY_URL"`
	NotifyFrom     string        `env:"NOTIFY_FROM" envDefault:"studio@notifications.local"`
	NotifyTo       string        `env:"NOTIFY_TO"`
	NotifyTimeout  time.Duration `env:"NOTIFY_TIMEOUT" envDefault:"5s"`

	// Observability / Logging
	ServiceName string `env:"SERVICE_NAME" envDefault:"studio-server"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"console"`

	// Features
	AutoMigrate bool `env:"AUTO_MIGRATE" envDefault:"true"`
}

// Load parses environment variables into Config and performs minimal validation.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if strings.TrimSpace(cfg.AdminToken) == "" {
		return nil, errors.New("ADMIN_TOKEN must not be blank")
	}

	if len(cfg.BookingSlots) == 0 {
		return nil, errors.New("BOOKING_SLOTS must contain at least one slot")
	}
	for _, slot := range cfg.BookingSlots {
		if _, err := time.Parse("3:04 PM", strings.TrimSpace(slot)); err != nil {
			return nil, fmt.Errorf("invalid booking slot %q: %w", slot, err)
		}
	}

	if _, err := time.LoadLocation(cfg.BookingTimezone); err != nil {
		return nil, fmt.Errorf("invalid BOOKING_TIMEZONE: %w", err)
	}

	globalConfig = cfg
	return cfg, nil
}

// GetGlobal returns the last successfully loaded configuration.
func GetGlobal() *Config {
	return globalConfig
}

// Location resolves the configured booking timezone. Load has already
// validated it, so failures fall back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.BookingTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
