package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (KANBAN_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("store", os.Getenv("KANBAN_STORE"), &cfg.Store)
	s.setString("state-dir", os.Getenv("KANBAN_STATE_DIR"), &cfg.StateDir)
	s.setString("redis-addr", os.Getenv("KANBAN_REDIS_ADDR"), &cfg.RedisAddr)
	s.setString("redis-password", os.Getenv("KANBAN_REDIS_PASSWORD"), &cfg.RedisPassword)
	s.setString("redis-prefix", os.Getenv("KANBAN_REDIS_PREFIX"), &cfg.RedisPrefix)
	s.setString("store-key", os.Getenv("KANBAN_STORE_KEY"), &cfg.StoreKey)
	s.setString("id-scheme", os.Getenv("KANBAN_ID_SCHEME"), &cfg.IDScheme)
	s.setString("reorder", os.Getenv("KANBAN_REORDER"), &cfg.Reorder)
	s.setString("listen", os.Getenv("KANBAN_LISTEN"), &cfg.Listen)
	s.setString("log-level", os.Getenv("KANBAN_LOG_LEVEL"), &cfg.LogLevel)

	if err := s.setIntFromString("redis-db", os.Getenv("KANBAN_REDIS_DB"), &cfg.RedisDB); err != nil {
		return err
	}
	if err := s.setDuration("save-timeout", os.Getenv("KANBAN_SAVE_TIMEOUT"), &cfg.SaveTimeout); err != nil {
		return err
	}
	if err := s.setDuration("debounce", os.Getenv("KANBAN_DEBOUNCE"), &cfg.DebounceDelay); err != nil {
		return err
	}

	s.setBoolFromString("strict-load", os.Getenv("KANBAN_STRICT_LOAD"), &cfg.StrictLoad)

	return nil
}
