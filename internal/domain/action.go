package domain

import "encoding/json"

// Action is a named request to transition the board.
// The set of actions is closed: only types in this package implement it.
type Action interface {
	actionType() string
}

// AddList appends a new, empty list.
type AddList struct {
	Title string `json:"title"`
}

// RemoveList drops the list with the given id.
type RemoveList struct {
	ID string `json:"id"`
}

// UpdateList merges Patch over the list with the given id.
type UpdateList struct {
	ID    string `json:"id"`
	Patch ListPatch
}

// UpdateItem merges Patch over the item with the given id, wherever it lives.
type UpdateItem struct {
	ID    string `json:"id"`
	Patch ItemPatch
}

// SetDragging toggles the drag-in-progress flag.
type SetDragging struct {
	Dragging bool `json:"dragging"`
}

// SetClickedItem replaces the current selection. Nil clears it.
type SetClickedItem struct {
	Item *ClickedItem
}

// SetItemDragTarget replaces the current drop target. Nil clears it.
type SetItemDragTarget struct {
	Target *ItemDragTarget
}

// Wire tags for each action.
const (
	TypeAddList           = "ADD_LIST"
	TypeRemoveList        = "REMOVE_LIST"
	TypeUpdateList        = "UPDATE_LIST"
	TypeUpdateItem        = "UPDATE_ITEM"
	TypeSetDragging       = "SET_DRAGGING"
	TypeSetClickedItem    = "SET_CLICKED_ITEM"
	TypeSetItemDragTarget = "SET_ITEM_DRAG_TARGET"
)

func (AddList) actionType() string           { return TypeAddList }
func (RemoveList) actionType() string        { return TypeRemoveList }
func (UpdateList) actionType() string        { return TypeUpdateList }
func (UpdateItem) actionType() string        { return TypeUpdateItem }
func (SetDragging) actionType() string       { return TypeSetDragging }
func (SetClickedItem) actionType() string    { return TypeSetClickedItem }
func (SetItemDragTarget) actionType() string { return TypeSetItemDragTarget }

// TypeOf returns the wire tag of an action.
func TypeOf(a Action) string {
	return a.actionType()
}

// Mutates reports whether the action may change list or item data.
// Transient UI actions return false and are never persisted.
func Mutates(a Action) bool {
	switch a.(type) {
	case AddList, RemoveList, UpdateList, UpdateItem:
		return true
	default:
		return false
	}
}

// Optional is a patch field. Set distinguishes "absent" from an explicit
// zero value (including JSON null).
type Optional[T any] struct {
	Set   bool
	Value T
}

// Some returns a set Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}

// UnmarshalJSON marks the field as set. It only runs when the key is present.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		var zero T
		o.Value = zero
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

// ListPatch lists the fields an UpdateList may change. The id is not patchable.
type ListPatch struct {
	Title    Optional[string]    `json:"title"`
	Items    Optional[[]Item]    `json:"items"`
	DropArea Optional[*DropArea] `json:"dropArea"`
	Order    Optional[int]       `json:"order"`
	Archived Optional[bool]      `json:"archived"`
	Created  Optional[Timestamp] `json:"created"`
}

// Apply returns l with every set field overwritten.
func (p ListPatch) Apply(l List) List {
	if p.Title.Set {
		l.Title = p.Title.Value
	}
	if p.Items.Set {
		l.Items = p.Items.Value
	}
	if p.DropArea.Set {
		l.DropArea = p.DropArea.Value
	}
	if p.Order.Set {
		l.Order = p.Order.Value
	}
	if p.Archived.Set {
		l.Archived = p.Archived.Value
	}
	if p.Created.Set {
		l.Created = p.Created.Value
	}
	return l
}

// ItemPatch lists the fields an UpdateItem may change. The id is not patchable.
type ItemPatch struct {
	Title       Optional[string]    `json:"title"`
	Description Optional[string]    `json:"description"`
	Archived    Optional[bool]      `json:"archived"`
	Created     Optional[Timestamp] `json:"created"`
	Order       Optional[int]       `json:"order"`
}

// Apply returns it with every set field overwritten.
func (p ItemPatch) Apply(it Item) Item {
	if p.Title.Set {
		it.Title = p.Title.Value
	}
	if p.Description.Set {
		it.Description = p.Description.Value
	}
	if p.Archived.Set {
		it.Archived = p.Archived.Value
	}
	if p.Created.Set {
		it.Created = p.Created.Value
	}
	if p.Order.Set {
		it.Order = p.Order.Value
	}
	return it
}
