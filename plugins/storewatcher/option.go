package storewatcher

import "github.com/bft-labs/kanban/pkg/kanban"

// WithStoreWatcher returns a kanban Option that registers a store watcher.
//
// Usage:
//
//	k, err := kanban.New(ctx, cfg,
//	    kanban.WithStore(kanban.NewFileStore(dir)),
//	    storewatcher.WithStoreWatcher(storewatcher.Config{
//	        DebounceDelay: 100 * time.Millisecond,
//	        OnChange:      func(lists []kanban.List) { ... },
//	    }),
//	)
func WithStoreWatcher(cfg Config) kanban.Option {
	return kanban.WithPlugin(New(cfg))
}
