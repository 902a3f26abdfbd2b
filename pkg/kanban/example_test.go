package kanban_test

import (
	"context"
	"fmt"

	"github.com/bft-labs/kanban/pkg/kanban"
)

func Example() {
	ctx := context.Background()
	k, err := kanban.New(ctx, kanban.Config{}, kanban.WithStore(kanban.NewMemoryStore()))
	if err != nil {
		fmt.Println(err)
		return
	}

	board := k.Dispatch(kanban.AddList{Title: "Done"})
	for _, l := range board.Lists {
		fmt.Println(l.ID, l.Title, len(l.Items))
	}
	// Output:
	// 1 List 1 3
	// 2 List 2 2
	// 3 Done 0
}

func ExampleKanban_Dispatch_update() {
	k, _ := kanban.New(context.Background(), kanban.Config{Reorder: kanban.ReorderInPlace})

	board := k.Dispatch(kanban.UpdateList{
		ID:    "2",
		Patch: kanban.ListPatch{Title: kanban.Some("Doing")},
	})
	fmt.Println(board.Lists[1].Title)

	// Unknown ids leave the board alone.
	same := k.Dispatch(kanban.RemoveList{ID: "missing"})
	fmt.Println(len(same.Lists))
	// Output:
	// Doing
	// 2
}
