package model

// List is the ordered todo list. Insertion order is display order.
//
// The transition methods never modify the receiver; each returns a fresh
// backing array so earlier snapshots stay valid.
type List []Item

// Add appends it to the end of the list.
func (l List) Add(it Item) List {
	out := make(List, 0, len(l)+1)
	out = append(out, l...)
	return append(out, it)
}

// Remove drops every item whose id matches. Unknown ids leave the content unchanged.
func (l List) Remove(id string) List {
	out := make(List, 0, len(l))
	for _, it := range l {
		if it.ID != id {
			out = append(out, it)
		}
	}
	return out
}

// Toggle flips Completed on the matching item.
func (l List) Toggle(id string) List {
	out := make(List, len(l))
	copy(out, l)
	for i := range out {
		if out[i].ID == id {
			out[i].Completed = !out[i].Completed
		}
	}
	return out
}

func (l List) Find(id string) (Item, bool) {
	for _, it := range l {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

func (l List) Has(id string) bool {
	_, ok := l.Find(id)
	return ok
}

// Stats counts done and pending items.
func (l List) Stats() (done, pending int) {
	for _, it := range l {
		if it.State() == StateDone {
			done++
		} else {
			pending++
		}
	}
	return
}

// Clone returns a copy that shares no memory with l. A nil list clones to an empty one.
func (l List) Clone() List {
	out := make(List, len(l))
	copy(out, l)
	return out
}
