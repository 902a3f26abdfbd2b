package domain

import (
	"fmt"
	"time"
)

// ReorderPolicy decides where an updated list or item lands in its sequence.
type ReorderPolicy string

const (
	// ReorderAppend removes the entity and re-appends it at the end.
	ReorderAppend ReorderPolicy = "append"

	// ReorderInPlace keeps the entity at its current position.
	ReorderInPlace ReorderPolicy = "in-place"
)

// Valid reports whether p is a known policy.
func (p ReorderPolicy) Valid() bool {
	return p == ReorderAppend || p == ReorderInPlace
}

// Rules supplies the non-deterministic inputs of a transition.
type Rules struct {
	// Now stamps newly created lists.
	Now func() time.Time

	// ListID names newly created lists.
	ListID ListIDFunc

	// Reorder places updated lists and items.
	Reorder ReorderPolicy
}

// DefaultRules uses the wall clock, counter list ids, and append reordering.
func DefaultRules() Rules {
	return Rules{
		Now:     time.Now,
		ListID:  CounterListID,
		Reorder: ReorderAppend,
	}
}

func (r Rules) withDefaults() Rules {
	if r.Now == nil {
		r.Now = time.Now
	}
	if r.ListID == nil {
		r.ListID = CounterListID
	}
	if r.Reorder == "" {
		r.Reorder = ReorderAppend
	}
	return r
}

// Transition computes the board that follows b under a.
// changed is true only when list or item data differs, i.e. when the
// result must be persisted. References to absent ids return b unchanged.
// An action outside the known set panics.
func Transition(b Board, a Action, r Rules) (next Board, changed bool) {
	r = r.withDefaults()

	switch act := a.(type) {
	case AddList:
		lists := make([]List, 0, len(b.Lists)+1)
		lists = append(lists, b.Lists...)
		lists = append(lists, List{
			ID:      r.ListID(b.Lists),
			Title:   act.Title,
			Items:   []Item{},
			Order:   len(b.Lists),
			Created: NewTimestamp(r.Now()),
		})
		b.Lists = lists
		return b, true

	case RemoveList:
		_, idx, ok := b.FindList(act.ID)
		if !ok {
			return b, false
		}
		b.Lists = removeAt(b.Lists, idx)
		return b, true

	case UpdateList:
		list, idx, ok := b.FindList(act.ID)
		if !ok {
			return b, false
		}
		b.Lists = place(b.Lists, idx, act.Patch.Apply(list), r.Reorder)
		return b, true

	case UpdateItem:
		item, li, ii, ok := b.FindItem(act.ID)
		if !ok {
			return b, false
		}
		lists := make([]List, len(b.Lists))
		copy(lists, b.Lists)
		lists[li].Items = place(lists[li].Items, ii, act.Patch.Apply(item), r.Reorder)
		b.Lists = lists
		return b, true

	case SetDragging:
		b.Dragging = act.Dragging
		return b, false

	case SetClickedItem:
		b.ClickedItem = act.Item
		return b, false

	case SetItemDragTarget:
		b.ItemDragTarget = act.Target
		return b, false

	default:
		panic(fmt.Errorf("%w: %T", ErrUnhandledAction, a))
	}
}

// removeAt returns a new slice without element i.
func removeAt[T any](s []T, i int) []T {
	out := make([]T, 0, len(s)-1)
	out = append(out, s[:i]...)
	return append(out, s[i+1:]...)
}

// place returns a new slice where element i is replaced by v, either at the
// same position or moved to the end.
func place[T any](s []T, i int, v T, policy ReorderPolicy) []T {
	if policy == ReorderInPlace {
		out := make([]T, len(s))
		copy(out, s)
		out[i] = v
		return out
	}
	return append(removeAt(s, i), v)
}
