package kanban

import (
	"context"
	"sync"

	"github.com/bft-labs/kanban/internal/adapters/memory"
	"github.com/bft-labs/kanban/internal/app"
	"github.com/bft-labs/kanban/internal/domain"
	"github.com/bft-labs/kanban/internal/ports"
)

// Kanban is a live board session: an engine seeded from the store, plus the
// plugins that run alongside it. Use New() to load a board, Dispatch() to
// change it, and Start()/Stop() to run plugins.
type Kanban struct {
	config    Config
	engine    *app.Engine
	gateway   *app.Gateway
	store     Store
	lifecycle *app.Lifecycle
	logger    ports.Logger
	plugins   []Plugin

	mu sync.Mutex
}

// New loads the board from the configured store and returns a session ready
// for Dispatch. The session is created in StatusClosed; call Start() to run
// plugins. Returns an error if configuration is invalid or the store cannot
// be read.
func New(ctx context.Context, cfg Config, opts ...Option) (*Kanban, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.store == nil {
		o.store = memory.NewStore()
	}

	gateway := app.NewGateway(o.store, app.GatewayConfig{
		Key:        cfg.StoreKey,
		StrictLoad: cfg.StrictLoad,
		Now:        o.now,
	}, o.logger)

	initial, err := gateway.Load(ctx)
	if err != nil {
		return nil, err
	}

	engine := app.NewEngine(initial, gateway, app.EngineConfig{
		Rules: domain.Rules{
			Now:     o.now,
			ListID:  cfg.listIDFunc(),
			Reorder: cfg.Reorder,
		},
		SaveTimeout: cfg.SaveTimeout,
	}, o.logger)

	o.logger.Info("board loaded",
		ports.String("key", gateway.Key()),
		ports.Int("lists", len(initial.Lists)))

	return &Kanban{
		config:    cfg,
		engine:    engine,
		gateway:   gateway,
		store:     o.store,
		lifecycle: app.NewLifecycle(o.logger, statusObserver{handler: o.statusHandler}),
		logger:    o.logger,
		plugins:   o.plugins,
	}, nil
}

// Dispatch applies a to the board and returns the new snapshot. List and
// item changes are written to the store before Dispatch returns; a failed
// write is logged and the in-memory board still advances.
// Dispatch panics if a is not one of the action types of this package.
func (k *Kanban) Dispatch(a Action) Board {
	return k.engine.Dispatch(a)
}

// State returns the current board snapshot.
func (k *Kanban) State() Board {
	return k.engine.State()
}

// Subscribe registers fn to receive every snapshot produced by Dispatch.
// The returned func unsubscribes.
func (k *Kanban) Subscribe(fn func(Board)) func() {
	return k.engine.Subscribe(fn)
}

// Config returns the effective configuration.
func (k *Kanban) Config() Config {
	return k.config
}

// Start initializes plugins. The provided context bounds their lifetime.
// Returns ErrAlreadyOpen if already started.
func (k *Kanban) Start(ctx context.Context) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if !k.lifecycle.CanOpen() {
		return domain.ErrAlreadyOpen
	}
	if err := k.lifecycle.TransitionTo(app.StatusOpening, "Start() called"); err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	k.lifecycle.SetCancel(cancel)

	pluginCfg := k.pluginConfig()
	for _, p := range k.plugins {
		if err := p.Initialize(runCtx, pluginCfg); err != nil {
			k.logger.Error("plugin initialization failed",
				ports.String("plugin", p.Name()),
				ports.Err(err))
			cancel()
			_ = k.lifecycle.TransitionTo(app.StatusFailed, "plugin init failed: "+p.Name())
			return err
		}
		k.logger.Info("plugin initialized", ports.String("plugin", p.Name()))
	}

	return k.lifecycle.TransitionTo(app.StatusOpen, "plugins ready")
}

// Stop shuts plugins down in reverse order. Returns ErrNotOpen if not
// started, or ErrShutdownTimeout if plugins did not stop in time.
func (k *Kanban) Stop() error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if !k.lifecycle.CanClose() {
		return domain.ErrNotOpen
	}
	if err := k.lifecycle.TransitionTo(app.StatusClosing, "Stop() called"); err != nil {
		return err
	}
	k.lifecycle.Cancel()

	plugins := k.plugins
	k.lifecycle.Go(func() {
		ctx := context.Background()
		for i := len(plugins) - 1; i >= 0; i-- {
			p := plugins[i]
			if err := p.Shutdown(ctx); err != nil {
				k.logger.Error("plugin shutdown failed",
					ports.String("plugin", p.Name()),
					ports.Err(err))
			} else {
				k.logger.Info("plugin shutdown complete", ports.String("plugin", p.Name()))
			}
		}
	})

	if err := k.lifecycle.WaitWithTimeout(app.ShutdownTimeout); err != nil {
		_ = k.lifecycle.TransitionTo(app.StatusFailed, "shutdown timeout")
		return err
	}
	return k.lifecycle.TransitionTo(app.StatusClosed, "graceful shutdown")
}

// Status returns the current lifecycle status.
func (k *Kanban) Status() Status {
	return Status(k.lifecycle.Status())
}

func (k *Kanban) pluginConfig() PluginConfig {
	cfg := PluginConfig{
		StoreKey:  k.gateway.Key(),
		Logger:    k.logger,
		LoadLists: k.gateway.LoadLists,
		State:     k.engine.State,
	}
	if ps, ok := k.store.(PathStore); ok {
		cfg.StorePath = ps.Path(k.gateway.Key())
	}
	return cfg
}
