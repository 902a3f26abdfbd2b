package kanban

import "context"

// Plugin is an optional component started with a session.
type Plugin interface {
	// Name returns the plugin identifier used in logs.
	Name() string

	// Initialize is called by Start, in registration order. ctx is cancelled
	// by Stop.
	Initialize(ctx context.Context, cfg PluginConfig) error

	// Shutdown is called by Stop, in reverse registration order.
	Shutdown(ctx context.Context) error
}

// PluginConfig is what a plugin gets to work with.
type PluginConfig struct {
	// StoreKey is the key the list snapshot is persisted under.
	StoreKey string

	// StorePath is the file backing StoreKey. Empty unless the store is a PathStore.
	StorePath string

	Logger Logger

	// LoadLists reads the persisted lists. found is false when nothing
	// has been saved yet.
	LoadLists func(ctx context.Context) (lists []List, found bool, err error)

	// State returns the live board.
	State func() Board
}
