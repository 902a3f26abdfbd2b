// Package storewatcher reports edits made to a file-backed board store by
// other processes. It watches the snapshot file and, after changes settle,
// reloads the persisted lists and hands them to a callback.
package storewatcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/kanban/pkg/kanban"
	"github.com/bft-labs/kanban/pkg/log"
)

// ErrNoCallback is returned by Initialize when Config.OnChange is nil.
var ErrNoCallback = errors.New("storewatcher: OnChange is required")

// Plugin watches the file behind the session's store key.
type Plugin struct {
	mu sync.Mutex

	debounceDelay time.Duration
	onChange      func([]kanban.List)

	path      string
	loadLists func(context.Context) ([]kanban.List, bool, error)
	logger    kanban.Logger
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	debounce  *time.Timer
}

// Config holds configuration options for the store watcher.
type Config struct {
	// DebounceDelay is how long to wait after the last change before reloading.
	// Default: 100 milliseconds
	DebounceDelay time.Duration

	// OnChange receives the reloaded lists.
	OnChange func(lists []kanban.List)
}

// DefaultConfig returns a Config with the default debounce and no callback.
func DefaultConfig() Config {
	return Config{DebounceDelay: 100 * time.Millisecond}
}

// New creates a store watcher.
func New(cfg Config) *Plugin {
	if cfg.DebounceDelay <= 0 {
		cfg.DebounceDelay = 100 * time.Millisecond
	}
	return &Plugin{
		debounceDelay: cfg.DebounceDelay,
		onChange:      cfg.OnChange,
	}
}

// Name returns the plugin identifier.
func (p *Plugin) Name() string {
	return "storewatcher"
}

// Initialize starts watching. It is a no-op for stores that are not file backed.
func (p *Plugin) Initialize(ctx context.Context, cfg kanban.PluginConfig) error {
	if p.onChange == nil {
		return ErrNoCallback
	}

	p.mu.Lock()
	p.path = cfg.StorePath
	p.loadLists = cfg.LoadLists
	p.logger = cfg.Logger
	p.mu.Unlock()

	if p.logger == nil {
		p.logger = log.NewNoopLogger()
	}
	if p.path == "" {
		p.logger.Warn("store watcher disabled: store is not file backed")
		return nil
	}

	dir := filepath.Dir(p.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return err
	}

	watchCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	p.logger.Info("store watcher started", log.String("path", p.path))

	p.wg.Add(1)
	go p.watchLoop(watchCtx, watcher)
	return nil
}

// Shutdown stops the watcher and any pending reload.
func (p *Plugin) Shutdown(ctx context.Context) error {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()

	p.mu.Lock()
	if p.debounce != nil {
		p.debounce.Stop()
	}
	p.mu.Unlock()
	return nil
}

func (p *Plugin) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	defer p.wg.Done()
	defer watcher.Close()

	name := filepath.Base(p.path)
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			p.debounceReload(ctx)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			p.logger.Error("store watcher error", log.Err(err))
		}
	}
}

func (p *Plugin) debounceReload(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.debounce != nil {
		p.debounce.Stop()
	}
	p.debounce = time.AfterFunc(p.debounceDelay, func() {
		p.reload(ctx)
	})
}

func (p *Plugin) reload(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	lists, found, err := p.loadLists(ctx)
	if err != nil {
		p.logger.Warn("store watcher: reload failed", log.Err(err))
		return
	}
	if !found {
		return
	}
	p.logger.Debug("store changed", log.Int("lists", len(lists)))
	p.onChange(lists)
}

var _ kanban.Plugin = (*Plugin)(nil)
