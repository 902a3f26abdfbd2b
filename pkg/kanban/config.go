package kanban

import (
	"fmt"
	"time"

	"github.com/bft-labs/kanban/internal/app"
	"github.com/bft-labs/kanban/internal/domain"
)

// IDScheme selects how new list ids are generated.
type IDScheme string

const (
	// IDCounter names a new list after the list count plus one ("1", "2", ...).
	// Ids can repeat once lists have been removed.
	IDCounter IDScheme = "counter"

	// IDRandom names a new list with a random UUID.
	IDRandom IDScheme = "uuid"
)

// Reorder policies for updated lists and items.
const (
	ReorderAppend  = domain.ReorderAppend
	ReorderInPlace = domain.ReorderInPlace
)

// ReorderPolicy decides where an updated list or item lands.
type ReorderPolicy = domain.ReorderPolicy

// Config holds the settings of a board session.
type Config struct {
	// StoreKey is the key the list snapshot is persisted under.
	// Default: "lists"
	StoreKey string

	// IDScheme selects list id generation.
	// Default: IDCounter
	IDScheme IDScheme

	// Reorder selects where updated lists and items are placed.
	// Default: ReorderAppend
	Reorder ReorderPolicy

	// StrictLoad makes New fail on an undecodable snapshot instead of
	// starting from the default board.
	StrictLoad bool

	// SaveTimeout bounds each store write.
	// Default: 5 seconds
	SaveTimeout time.Duration
}

// SetDefaults fills zero fields with their defaults.
func (c *Config) SetDefaults() {
	if c.StoreKey == "" {
		c.StoreKey = app.DefaultStoreKey
	}
	if c.IDScheme == "" {
		c.IDScheme = IDCounter
	}
	if c.Reorder == "" {
		c.Reorder = ReorderAppend
	}
	if c.SaveTimeout <= 0 {
		c.SaveTimeout = app.DefaultSaveTimeout
	}
}

// Validate reports the first invalid setting, wrapped in domain.ErrInvalidConfig.
func (c Config) Validate() error {
	switch c.IDScheme {
	case IDCounter, IDRandom:
	default:
		return fmt.Errorf("%w: unknown id scheme %q", domain.ErrInvalidConfig, c.IDScheme)
	}
	if !c.Reorder.Valid() {
		return fmt.Errorf("%w: unknown reorder policy %q", domain.ErrInvalidConfig, c.Reorder)
	}
	if c.StoreKey == "" {
		return fmt.Errorf("%w: store key is empty", domain.ErrInvalidConfig)
	}
	if c.SaveTimeout <= 0 {
		return fmt.Errorf("%w: save timeout must be positive", domain.ErrInvalidConfig)
	}
	return nil
}

func (c Config) listIDFunc() domain.ListIDFunc {
	if c.IDScheme == IDRandom {
		return domain.RandomListID
	}
	return domain.CounterListID
}
