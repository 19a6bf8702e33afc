package store

import (
	"encoding/json"
	"fmt"

	"github.com/Makepad-fr/tada/internal/model"
)

// Key is the session entry holding the list snapshot. Namespaced so it
// cannot collide with anything else kept in the same session.
const Key = "__my_todo_manager_todos__"

// Encode serializes the whole list as a compact JSON array.
// The empty list encodes as [] rather than null.
func Encode(l model.List) ([]byte, error) {
	if l == nil {
		l = model.List{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return b, nil
}

// Decode parses a snapshot. Only JSON well-formedness is checked.
func Decode(b []byte) (model.List, error) {
	var l model.List
	if err := json.Unmarshal(b, &l); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if l == nil {
		l = model.List{}
	}
	return l, nil
}
