package kanban

import (
	"github.com/redis/go-redis/v9"

	"github.com/bft-labs/kanban/internal/adapters/fs"
	"github.com/bft-labs/kanban/internal/adapters/memory"
	"github.com/bft-labs/kanban/internal/adapters/redisstore"
	"github.com/bft-labs/kanban/internal/app"
	"github.com/bft-labs/kanban/internal/domain"
	"github.com/bft-labs/kanban/internal/ports"
	"github.com/bft-labs/kanban/pkg/log"
)

// Board model.
type (
	Board          = domain.Board
	List           = domain.List
	Item           = domain.Item
	DropArea       = domain.DropArea
	ClickedItem    = domain.ClickedItem
	ItemDragTarget = domain.ItemDragTarget
	Timestamp      = domain.Timestamp
)

// Actions accepted by Dispatch.
type (
	Action            = domain.Action
	AddList           = domain.AddList
	RemoveList        = domain.RemoveList
	UpdateList        = domain.UpdateList
	UpdateItem        = domain.UpdateItem
	SetDragging       = domain.SetDragging
	SetClickedItem    = domain.SetClickedItem
	SetItemDragTarget = domain.SetItemDragTarget
	ListPatch         = domain.ListPatch
	ItemPatch         = domain.ItemPatch
)

// Optional is a patch field; see [Some].
type Optional[T any] = domain.Optional[T]

// Some returns a set patch field holding v.
func Some[T any](v T) Optional[T] {
	return domain.Some(v)
}

// DecodeAction parses a {"type": ..., "payload": ...} envelope.
func DecodeAction(data []byte) (Action, error) {
	return app.DecodeAction(data)
}

// Store is the string key-value store the board is persisted in.
type Store = ports.Store

// PathStore is a Store that keeps each key in a file.
type PathStore = ports.PathStore

// Logger is the structured logging interface.
type Logger = log.Logger

// NewMemoryStore returns a Store that lives in process memory.
func NewMemoryStore() Store {
	return memory.NewStore()
}

// NewFileStore returns a Store that writes each key to dir/<key>.json.
func NewFileStore(dir string) PathStore {
	return fs.NewStore(dir)
}

// NewRedisStore returns a Store backed by client. Keys are prefixed with prefix.
func NewRedisStore(client *redis.Client, prefix string) Store {
	return redisstore.NewStore(client, prefix)
}
