package model

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample(n int) List {
	var l List
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		l = l.Add(NewItem(fmt.Sprintf("id-%d", i), fmt.Sprintf("task %d", i), base.Add(time.Duration(i)*time.Minute)))
	}
	return l
}

func TestNewItem(t *testing.T) {
	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	it := NewItem("abc", "Buy milk", at)

	assert.Equal(t, "abc", it.ID)
	assert.Equal(t, "Buy milk", it.Title)
	assert.Equal(t, at.UnixMilli(), it.Date)
	assert.False(t, it.Completed)
	assert.Equal(t, StateOpen, it.State())
}

func TestAddAppendsWithoutTouchingReceiver(t *testing.T) {
	for _, n := range []int{0, 1, 5} {
		t.Run(fmt.Sprintf("len=%d", n), func(t *testing.T) {
			l := sample(n)
			before := append(List(nil), l...)

			got := l.Add(NewItem("fresh", "new", time.Now()))

			require.Len(t, got, n+1)
			last := got[len(got)-1]
			assert.Equal(t, "new", last.Title)
			assert.False(t, last.Completed)
			assert.False(t, l.Has("fresh"))
			assert.Equal(t, before, l)
		})
	}
}

func TestAddDoesNotShareBackingArray(t *testing.T) {
	l := make(List, 1, 4)
	l[0] = NewItem("a", "a", time.Now())

	x := l.Add(NewItem("x", "x", time.Now()))
	y := l.Add(NewItem("y", "y", time.Now()))

	assert.Equal(t, "x", x[1].ID)
	assert.Equal(t, "y", y[1].ID)
}

func TestRemove(t *testing.T) {
	l := sample(3)

	got := l.Remove("id-1")
	require.Len(t, got, 2)
	assert.False(t, got.Has("id-1"))
	assert.Equal(t, []string{"id-0", "id-2"}, []string{got[0].ID, got[1].ID})
	assert.Len(t, l, 3)

	assert.Equal(t, l, l.Remove("missing"))
}

func TestToggle(t *testing.T) {
	l := sample(3)

	once := l.Toggle("id-2")
	assert.True(t, once[2].Completed)
	assert.Equal(t, StateDone, once[2].State())
	assert.False(t, l[2].Completed, "receiver must not change")
	assert.Equal(t, l[2].Title, once[2].Title)
	assert.Equal(t, l[2].Date, once[2].Date)

	assert.Equal(t, l, once.Toggle("id-2"))
	assert.Equal(t, l, l.Toggle("missing"))
}

func TestStats(t *testing.T) {
	l := sample(4).Toggle("id-0").Toggle("id-3")
	done, pending := l.Stats()
	assert.Equal(t, 2, done)
	assert.Equal(t, 2, pending)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "open", StateOpen.String())
	assert.Equal(t, "done", StateDone.String())
}
