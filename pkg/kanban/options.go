package kanban

import (
	"time"

	"github.com/bft-labs/kanban/pkg/log"
)

// Option configures optional behavior of a Kanban session.
type Option func(*options)

type options struct {
	store         Store
	logger        Logger
	now           func() time.Time
	statusHandler StatusHandler
	plugins       []Plugin
}

func defaultOptions() options {
	return options{
		logger: log.NewNoopLogger(),
		now:    time.Now,
	}
}

// WithStore sets where the board is persisted.
// If not provided, an in-memory store is used.
func WithStore(store Store) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithLogger sets a custom logger.
// If not provided, a no-op logger is used.
func WithLogger(logger Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithClock sets the clock used to stamp the default board and new lists.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithStatusHandler registers a callback for session status changes.
func WithStatusHandler(h StatusHandler) Option {
	return func(o *options) {
		o.statusHandler = h
	}
}

// WithPlugin registers a plugin to be initialized on Start.
// Plugins are initialized in registration order and shut down in reverse.
func WithPlugin(plugin Plugin) Option {
	return func(o *options) {
		o.plugins = append(o.plugins, plugin)
	}
}
