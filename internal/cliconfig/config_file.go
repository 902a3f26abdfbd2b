package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	Store         string `toml:"store"`
	StateDir      string `toml:"state_dir"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       *int   `toml:"redis_db"`
	RedisPrefix   string `toml:"redis_prefix"`
	StoreKey      string `toml:"store_key"`
	IDScheme      string `toml:"id_scheme"`
	Reorder       string `toml:"reorder"`
	StrictLoad    *bool  `toml:"strict_load"`
	Listen        string `toml:"listen"`
	LogLevel      string `toml:"log_level"`
	SaveTimeout   string `toml:"save_timeout"`
	DebounceDelay string `toml:"debounce"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns ~/.kanban/config.toml, or "" if the home
// directory is not accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".kanban", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("store", fc.Store, &cfg.Store)
	s.setString("state-dir", fc.StateDir, &cfg.StateDir)
	s.setString("redis-addr", fc.RedisAddr, &cfg.RedisAddr)
	s.setString("redis-password", fc.RedisPassword, &cfg.RedisPassword)
	s.setString("redis-prefix", fc.RedisPrefix, &cfg.RedisPrefix)
	s.setString("store-key", fc.StoreKey, &cfg.StoreKey)
	s.setString("id-scheme", fc.IDScheme, &cfg.IDScheme)
	s.setString("reorder", fc.Reorder, &cfg.Reorder)
	s.setString("listen", fc.Listen, &cfg.Listen)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)

	s.setInt("redis-db", fc.RedisDB, &cfg.RedisDB)
	s.setBool("strict-load", fc.StrictLoad, &cfg.StrictLoad)

	if err := s.setDuration("save-timeout", fc.SaveTimeout, &cfg.SaveTimeout); err != nil {
		return err
	}
	if err := s.setDuration("debounce", fc.DebounceDelay, &cfg.DebounceDelay); err != nil {
		return err
	}

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
