package domain

import (
	"strconv"

	"github.com/google/uuid"
)

// ListIDFunc produces the id for a list about to be appended to lists.
type ListIDFunc func(lists []List) string

// CounterListID derives the id from the current list count plus one.
// Ids can repeat after a removal followed by an add.
func CounterListID(lists []List) string {
	return strconv.Itoa(len(lists) + 1)
}

// RandomListID returns a fresh UUID regardless of the current lists.
func RandomListID(_ []List) string {
	return NewID()
}

// NewID returns a globally unique random id.
func NewID() string {
	return uuid.NewString()
}
