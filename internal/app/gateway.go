package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bft-labs/kanban/internal/domain"
	"github.com/bft-labs/kanban/internal/ports"
)

// DefaultStoreKey is the key the list snapshot lives under.
const DefaultStoreKey = "lists"

// GatewayConfig configures a Gateway.
type GatewayConfig struct {
	// Key is the store key. Empty means DefaultStoreKey.
	Key string

	// StrictLoad makes Load fail on an undecodable snapshot instead of
	// falling back to the default board.
	StrictLoad bool

	// Now stamps the default board. Nil means time.Now.
	Now func() time.Time
}

// Gateway loads and saves the list sequence in an opaque string store.
type Gateway struct {
	store  ports.Store
	key    string
	strict bool
	now    func() time.Time
	logger ports.Logger
}

// NewGateway creates a Gateway over store.
func NewGateway(store ports.Store, cfg GatewayConfig, logger ports.Logger) *Gateway {
	if cfg.Key == "" {
		cfg.Key = DefaultStoreKey
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Gateway{
		store:  store,
		key:    cfg.Key,
		strict: cfg.StrictLoad,
		now:    cfg.Now,
		logger: logger,
	}
}

// Key returns the store key in use.
func (g *Gateway) Key() string {
	return g.key
}

// Load returns the seed board. Persisted lists, when present, replace the
// default board's lists; every other board field comes from the default.
// Store read failures are returned. A corrupt snapshot falls back to the
// default board unless StrictLoad is set.
func (g *Gateway) Load(ctx context.Context) (domain.Board, error) {
	board := domain.DefaultBoard(g.now())

	lists, found, err := g.LoadLists(ctx)
	if err != nil {
		if g.strict || !isCorrupt(err) {
			return domain.Board{}, err
		}
		g.logger.Warn("persisted lists unreadable, using default board",
			ports.String("key", g.key),
			ports.Err(err))
		return board, nil
	}
	if !found {
		g.logger.Debug("no persisted lists, using default board", ports.String("key", g.key))
		return board, nil
	}

	board.Lists = lists
	g.logger.Debug("loaded persisted lists",
		ports.String("key", g.key),
		ports.Int("lists", len(lists)))
	return board, nil
}

// LoadLists reads and decodes the persisted sequence without applying defaults.
// Decode failures wrap domain.ErrCorruptSnapshot.
func (g *Gateway) LoadLists(ctx context.Context) ([]domain.List, bool, error) {
	raw, found, err := g.store.Get(ctx, g.key)
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", g.key, err)
	}
	if !found {
		return nil, false, nil
	}
	lists, err := DecodeLists(raw)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %s: %v", domain.ErrCorruptSnapshot, g.key, err)
	}
	return lists, true, nil
}

// Save overwrites the persisted sequence with lists.
func (g *Gateway) Save(ctx context.Context, lists []domain.List) error {
	raw, err := EncodeLists(lists)
	if err != nil {
		return fmt.Errorf("encode lists: %w", err)
	}
	if err := g.store.Set(ctx, g.key, raw); err != nil {
		return fmt.Errorf("write %s: %w", g.key, err)
	}
	return nil
}

func isCorrupt(err error) bool {
	return errors.Is(err, domain.ErrCorruptSnapshot)
}
