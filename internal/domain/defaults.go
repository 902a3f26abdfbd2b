package domain

import "time"

// DefaultBoard returns the seed board used when nothing has been persisted.
// Item and board ids are fresh on every call.
func DefaultBoard(now time.Time) Board {
	created := NewTimestamp(now)
	item := func(title, desc string, order int) Item {
		return Item{
			ID:          NewID(),
			Title:       title,
			Description: desc,
			Created:     created,
			Order:       order,
		}
	}
	return Board{
		ID:    NewID(),
		Title: "Board 1",
		Lists: []List{
			{
				ID:    "1",
				Title: "List 1",
				Items: []Item{
					item("Item 1", "Description 1", 0),
					item("Item 2", "Description 2", 1),
					item("Item 3", "Description 3", 2),
				},
				Order:   0,
				Created: created,
			},
			{
				ID:    "2",
				Title: "List 2",
				Items: []Item{
					item("Item 4", "Description 4", 1),
					item("Item 5", "Description 5", 0),
				},
				Order:   1,
				Created: created,
			},
		},
	}
}
