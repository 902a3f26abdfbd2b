package app

import (
	"context"
	"sync"
	"time"

	"github.com/bft-labs/kanban/internal/domain"
	"github.com/bft-labs/kanban/internal/ports"
)

// DefaultSaveTimeout bounds a single persistence write.
const DefaultSaveTimeout = 5 * time.Second

// Saver persists the list sequence. *Gateway satisfies it.
type Saver interface {
	Save(ctx context.Context, lists []domain.List) error
}

// Listener receives the snapshot produced by every dispatch.
type Listener func(domain.Board)

// EngineConfig configures an Engine.
type EngineConfig struct {
	Rules       domain.Rules
	SaveTimeout time.Duration
}

// Engine holds the authoritative board and applies actions to it.
// It is safe for concurrent use; dispatches are applied one at a time.
type Engine struct {
	mu          sync.Mutex
	state       domain.Board
	saver       Saver
	rules       domain.Rules
	saveTimeout time.Duration
	logger      ports.Logger

	lmu       sync.RWMutex
	listeners map[int]Listener
	nextID    int
}

// NewEngine creates an Engine seeded with initial.
func NewEngine(initial domain.Board, saver Saver, cfg EngineConfig, logger ports.Logger) *Engine {
	if cfg.SaveTimeout <= 0 {
		cfg.SaveTimeout = DefaultSaveTimeout
	}
	return &Engine{
		state:       initial,
		saver:       saver,
		rules:       cfg.Rules,
		saveTimeout: cfg.SaveTimeout,
		logger:      logger,
		listeners:   make(map[int]Listener),
	}
}

// Reduce computes the board following b under a. When list or item data
// changed, the new lists are written through the saver before returning.
// Save failures are logged; the new snapshot is returned regardless.
// It panics on an action outside the known set.
func (e *Engine) Reduce(b domain.Board, a domain.Action) domain.Board {
	next, changed := domain.Transition(b, a, e.rules)
	if !changed {
		if domain.Mutates(a) {
			e.logger.Debug("action matched nothing", ports.String("action", domain.TypeOf(a)))
		}
		return next
	}

	ctx, cancel := context.WithTimeout(context.Background(), e.saveTimeout)
	defer cancel()
	start := time.Now()
	if err := e.saver.Save(ctx, next.Lists); err != nil {
		e.logger.Error("persist lists failed",
			ports.String("action", domain.TypeOf(a)),
			ports.Err(err))
	} else {
		e.logger.Debug("persisted lists",
			ports.String("action", domain.TypeOf(a)),
			ports.Int("lists", len(next.Lists)),
			ports.Duration("took", time.Since(start)))
	}
	return next
}

// Dispatch applies a to the held board and returns the new snapshot.
// Subscribers are notified after the engine lock is released, so a
// listener may dispatch again.
func (e *Engine) Dispatch(a domain.Action) domain.Board {
	next := e.apply(a)
	e.notify(next)
	return next
}

func (e *Engine) apply(a domain.Action) domain.Board {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = e.Reduce(e.state, a)
	return e.state
}

// State returns the current snapshot.
func (e *Engine) State() domain.Board {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Subscribe registers fn for future snapshots. The returned func removes it.
func (e *Engine) Subscribe(fn Listener) func() {
	e.lmu.Lock()
	id := e.nextID
	e.nextID++
	e.listeners[id] = fn
	e.lmu.Unlock()

	return func() {
		e.lmu.Lock()
		delete(e.listeners, id)
		e.lmu.Unlock()
	}
}

func (e *Engine) notify(b domain.Board) {
	e.lmu.RLock()
	fns := make([]Listener, 0, len(e.listeners))
	for _, fn := range e.listeners {
		fns = append(fns, fn)
	}
	e.lmu.RUnlock()

	for _, fn := range fns {
		fn(b)
	}
}
