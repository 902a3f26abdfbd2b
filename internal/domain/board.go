package domain

import (
	"fmt"
	"strconv"
	"time"
)

// Board is the root aggregate. Exactly one Board is live per session.
// Lists order is the authoritative render order.
type Board struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	Lists          []List          `json:"lists"`
	ClickedItem    *ClickedItem    `json:"clickedItem"`
	Dragging       bool            `json:"dragging"`
	ItemDragTarget *ItemDragTarget `json:"itemDragTarget"`
}

// List is an ordered column of items. ID is unique across the board.
type List struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Items    []Item    `json:"items"`
	DropArea *DropArea `json:"dropArea"`
	Order    int       `json:"order"`
	Archived bool      `json:"archived"`
	Created  Timestamp `json:"created"`
}

// Item is a single card. ID is unique across all lists.
type Item struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Archived    bool      `json:"archived"`
	Created     Timestamp `json:"created"`
	Order       int       `json:"order"`
}

// DropArea describes the on-screen drop zone of a list.
// The engine stores it verbatim and never interprets it.
type DropArea struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ClickedItem is the current selection. It refers to an item by id and
// does not own it.
type ClickedItem struct {
	ItemID     string `json:"itemId"`
	ListID     string `json:"listId"`
	Index      int    `json:"index"`
	DialogOpen bool   `json:"dialogOpen"`
}

// ItemDragTarget is the drop location under an active item drag.
type ItemDragTarget struct {
	ListID string `json:"listId"`
	Index  int    `json:"index"`
}

// FindList returns the list with the given id and its position.
func (b Board) FindList(id string) (List, int, bool) {
	for i, l := range b.Lists {
		if l.ID == id {
			return l, i, true
		}
	}
	return List{}, -1, false
}

// FindItem searches every list for the item with the given id.
// It returns the item, the index of its list, and its index inside that list.
func (b Board) FindItem(id string) (Item, int, int, bool) {
	for li, l := range b.Lists {
		for ii, it := range l.Items {
			if it.ID == id {
				return it, li, ii, true
			}
		}
	}
	return Item{}, -1, -1, false
}

// TimestampLayout is the persisted form of a timestamp: ISO-8601 in UTC with
// millisecond precision, the same shape a browser Date serializes to.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Timestamp is a creation time that round-trips through TimestampLayout.
type Timestamp struct {
	time.Time
}

// NewTimestamp normalizes t to UTC at millisecond precision.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC().Truncate(time.Millisecond)}
}

// MarshalJSON encodes the timestamp as a quoted ISO-8601 string, or null when zero.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(strconv.Quote(t.UTC().Format(TimestampLayout))), nil
}

// UnmarshalJSON re-hydrates a persisted ISO-8601 string into a time value.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		t.Time = time.Time{}
		return nil
	}
	unquoted, err := strconv.Unquote(s)
	if err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	parsed, err := time.Parse(time.RFC3339Nano, unquoted)
	if err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	t.Time = parsed.UTC()
	return nil
}
