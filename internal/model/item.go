package model

import "time"

// Item is the domain model for a todo entry.
// Only Completed ever changes after creation.
type Item struct {
	ID        string `json:"id"`
	Date      int64  `json:"date"` // creation time, epoch milliseconds
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// State is the two-valued lifecycle of an item.
type State int

const (
	StateOpen State = iota
	StateDone
)

func (s State) String() string {
	if s == StateDone {
		return "done"
	}
	return "open"
}

// NewItem builds an open item created at the given instant.
func NewItem(id, title string, at time.Time) Item {
	return Item{
		ID:    id,
		Date:  at.UnixMilli(),
		Title: title,
	}
}

func (it Item) State() State {
	if it.Completed {
		return StateDone
	}
	return StateOpen
}
