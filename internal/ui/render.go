package ui

import (
	"fmt"
	"time"

	"github.com/Makepad-fr/tada/internal/model"
)

// Placeholder is shown in place of rows when the list is empty.
const Placeholder = "No todos yet..."

// DefaultDateLayout renders creation dates as 2024/05/04.
const DefaultDateLayout = "2006/01/02"

const maxTitle = 80

// FormatDate renders an epoch-milliseconds timestamp in local time.
func FormatDate(ms int64, layout string) string {
	if layout == "" {
		layout = DefaultDateLayout
	}
	return time.UnixMilli(ms).Format(layout)
}

// ToggleGlyph is the control shown next to an item: ✓ completes, ↺ reopens.
func ToggleGlyph(it model.Item) string {
	if it.State() == model.StateDone {
		return "↺"
	}
	return "✓"
}

// Box is the checkbox for an item, styled.
func Box(it model.Item) string {
	t := Current()
	if it.State() == model.StateDone {
		return t.Success.Render(t.BoxChecked)
	}
	return t.Muted.Render(t.BoxUnchecked)
}

// Title returns the item title, struck through when completed.
func Title(it model.Item) string {
	if it.State() == model.StateDone {
		return Current().Done.Render(it.Title)
	}
	return it.Title
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// Row renders one item as "NN. date box title". index is 0-based.
func Row(index int, it model.Item, layout string) string {
	t := Current()
	shown := it
	shown.Title = truncate(it.Title, maxTitle)
	return fmt.Sprintf("%s %s %s %s",
		t.Muted.Render(fmt.Sprintf("%2d.", index+1)),
		t.Muted.Render(FormatDate(it.Date, layout)),
		Box(it),
		Title(shown),
	)
}

// Rows renders the list in insertion order, or the placeholder.
func Rows(items model.List, layout string) []string {
	if len(items) == 0 {
		return []string{Current().Muted.Render(Placeholder)}
	}
	out := make([]string, 0, len(items))
	for i, it := range items {
		out = append(out, Row(i, it, layout))
	}
	return out
}

// Header summarizes the list: counts plus a progress bar.
func Header(items model.List) []string {
	t := Current()
	d, p := items.Stats()
	return []string{
		fmt.Sprintf("%s  %s %d  %s %d  %s %d",
			t.Title.Render("Todo Manager"),
			t.Success.Render("✔"), d,
			t.Pending.Render("•"), p,
			t.Accent.Render("Total"), len(items),
		),
		t.Muted.Render(ProgressBar(d, d+p, 28)),
	}
}

// ListLines is the full panel body used by `tada ls`.
func ListLines(items model.List, layout string) []string {
	lines := Header(items)
	lines = append(lines, "")
	lines = append(lines, Rows(items, layout)...)
	lines = append(lines, "")
	lines = append(lines, Current().Muted.Render("Tip: add with `tada add \"Buy milk\"`"))
	return lines
}
