package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Config represents service configuration loaded from YAML/env.
type Config struct {
	HTTP struct {
		Port string `yaml:"port" env:"HTTP_PORT"`
	} `yaml:"http"`
	Database struct {
		DSN           string `yaml:"dsn" env:"POSTGRES_DSN"`
		MigrationsDir string `yaml:"migrationsDir" env:"MIGRATIONS_DIR"`
	} `yaml:"database"`
	Redis struct {
		Addr     string `yaml:"addr" env:"REDIS_ADDR"`
		Password string `yaml:"password" env:"REDIS_PASSWORD"`
	} `yaml:"redis"`
	Session struct {
		TTLMinutes  int `yaml:"ttlMinutes" env:"SESSION_TTL_MINUTES"`
		IdleMinutes int `yaml:"idleMinutes" env:"SESSION_IDLE_MINUTES"`
	} `yaml:"session"`
	Booking struct {
		MaxDurationMinutes int `yaml:"maxDurationMinutes" env:"BOOKING_MAX_DURATION_MINUTES"`
	} `yaml:"booking"`
}

// Load reads configuration and applies defaults.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.HTTP.Port = "8080"
	cfg.Database.MigrationsDir = "migrations"
	cfg.Session.TTLMinutes = 360
	cfg.Session.IdleMinutes = 360
	cfg.Booking.MaxDurationMinutes = 24 * 60

	if err := loadInto(cfg); err != nil {
		return nil, err
	}

	if cfg.Database.DSN == "" {
		return nil, errors.New("config: database DSN is required")
	}
	if cfg.Session.TTLMinutes <= 0 {
		cfg.Session.TTLMinutes = 360
	}
	if cfg.Session.IdleMinutes <= 0 {
		cfg.Session.IdleMinutes = 360
	}
	if cfg.Booking.MaxDurationMinutes <= 0 {
		cfg.Booking.MaxDurationMinutes = 24 * 60
	}

	return cfg, nil
}

// HTTPAddress ensures we always return a host:port formatted string.
func (c *Config) HTTPAddress() string {
	port := strings.TrimSpace(c.HTTP.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}

// SessionTTL is the absolute lifetime of issued sessions.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.Session.TTLMinutes) * time.Minute
}

// IdleTimeout is the edge-layer inactivity window, distinct from SessionTTL.
func (c *Config) IdleTimeout() time.Duration {
	return time.Duration(c.Session.IdleMinutes) * time.Minute
}

// MaxBookingDuration bounds a single reservation.
func (c *Config) MaxBookingDuration() time.Duration {
	return time.Duration(c.Booking.MaxDurationMinutes) * time.Minute
}
