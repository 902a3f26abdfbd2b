// Package kanban provides an embeddable kanban board session.
//
// A session holds one board: an ordered sequence of lists, each holding an
// ordered sequence of items, plus transient drag and selection state. The
// board changes only through actions passed to [Kanban.Dispatch]. List and
// item changes are written to a [Store] as a single JSON snapshot; drag and
// selection state is never persisted.
//
// # Basic Usage
//
//	k, err := kanban.New(ctx, kanban.Config{},
//	    kanban.WithStore(kanban.NewFileStore("/var/lib/kanban")),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	board := k.Dispatch(kanban.AddList{Title: "Backlog"})
//	board = k.Dispatch(kanban.UpdateList{
//	    ID:    board.Lists[0].ID,
//	    Patch: kanban.ListPatch{Archived: kanban.Some(true)},
//	})
//
// Actions naming a list or item that does not exist leave the board as it
// was and write nothing.
//
// # Stores
//
// [NewMemoryStore], [NewFileStore], and [NewRedisStore] cover the built-in
// backends. Any type with Get and Set can be passed to [WithStore].
//
// # Plugins
//
// Plugins run between [Kanban.Start] and [Kanban.Stop]:
//
//	import "github.com/bft-labs/kanban/plugins/storewatcher"
//
//	k, err := kanban.New(ctx, cfg,
//	    kanban.WithStore(store),
//	    storewatcher.WithStoreWatcher(storewatcher.Config{OnChange: reload}),
//	)
//	if err := k.Start(ctx); err != nil { ... }
//	defer k.Stop()
package kanban
