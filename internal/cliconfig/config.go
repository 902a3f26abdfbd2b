package cliconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/bft-labs/kanban/internal/domain"
)

// Store backends.
const (
	StoreFile   = "file"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

// Config holds CLI configuration for kanban.
type Config struct {
	Store    string
	StateDir string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string

	StoreKey   string
	IDScheme   string
	Reorder    string
	StrictLoad bool

	Listen        string
	LogLevel      string
	SaveTimeout   time.Duration
	DebounceDelay time.Duration
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Store:         StoreFile,
		StateDir:      "", // Derived from the home directory during Validate
		RedisPrefix:   "kanban:",
		StoreKey:      "lists",
		IDScheme:      "counter",
		Reorder:       string(domain.ReorderAppend),
		Listen:        ":8080",
		LogLevel:      "info",
		SaveTimeout:   5 * time.Second,
		DebounceDelay: 100 * time.Millisecond,
		RedisPassword: os.Getenv("KANBAN_REDIS_PASSWORD"),
	}
}

// DefaultStateDir returns ~/.kanban/data, or "" if the home directory is unknown.
func DefaultStateDir() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".kanban", "data")
	}
	return ""
}

// Validate checks the configuration for errors and sets derived defaults.
func (c *Config) Validate() error {
	switch c.Store {
	case StoreFile:
		if c.StateDir == "" {
			c.StateDir = DefaultStateDir()
		}
		if c.StateDir == "" {
			return fmt.Errorf("%w: state-dir is required for the file store", domain.ErrInvalidConfig)
		}
	case StoreRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("%w: redis-addr is required for the redis store", domain.ErrInvalidConfig)
		}
	case StoreMemory:
	default:
		return fmt.Errorf("%w: unknown store %q (want file, redis or memory)", domain.ErrInvalidConfig, c.Store)
	}

	if c.StoreKey == "" {
		c.StoreKey = "lists"
	}
	if c.IDScheme != "counter" && c.IDScheme != "uuid" {
		return fmt.Errorf("%w: unknown id-scheme %q", domain.ErrInvalidConfig, c.IDScheme)
	}
	if !domain.ReorderPolicy(c.Reorder).Valid() {
		return fmt.Errorf("%w: unknown reorder policy %q", domain.ErrInvalidConfig, c.Reorder)
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		return fmt.Errorf("%w: log-level: %v", domain.ErrInvalidConfig, err)
	}
	if c.SaveTimeout <= 0 {
		return fmt.Errorf("%w: save timeout must be positive", domain.ErrInvalidConfig)
	}
	if c.DebounceDelay <= 0 {
		return fmt.Errorf("%w: debounce must be positive", domain.ErrInvalidConfig)
	}

	return nil
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if non-negative and flag not changed.
func (s *configSetter) setInt(flag string, value *int, dst *int) {
	if value == nil || *value < 0 || s.changed[flag] {
		return
	}
	*dst = *value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses a string to int and sets the destination if valid.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i < 0 {
		return nil
	}
	*dst = i
	return nil
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
