// Package tui is the interactive todo view.
//
// The model holds no list state of its own: every gesture goes to the store,
// which persists, and the list is then redrawn from store.Items().
package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/store"
	"github.com/Makepad-fr/tada/internal/ui"
)

// listItem adapts model.Item to bubbles/list.Item
type listItem struct {
	item model.Item
}

func (i listItem) Title() string       { return i.item.Title }
func (i listItem) Description() string { return "" }
func (i listItem) FilterValue() string { return i.item.Title }

// Single-line rows: cursor, date, checkbox, title.
type itemDelegate struct {
	layout string
}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	t := ui.Current()
	prefix := "  "
	if index == m.Index() {
		prefix = t.Selected.Render(">") + " "
	}
	fmt.Fprintf(w, "%s%s %s %s %s",
		prefix,
		t.Muted.Render(ui.FormatDate(it.item.Date, d.layout)),
		ui.Box(it.item),
		ui.Title(it.item),
		t.Muted.Render(ui.ToggleGlyph(it.item)),
	)
}

type keyMap struct {
	Add, Toggle, Remove, Quit, Submit, Cancel key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Add:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Toggle: key.NewBinding(key.WithKeys(" ", "space", "x"), key.WithHelp("space", "done/reopen")),
		Remove: key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "remove")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Submit: key.NewBinding(key.WithKeys("enter")),
		Cancel: key.NewBinding(key.WithKeys("esc")),
	}
}

// Model implements tea.Model over a store.
type Model struct {
	store  *store.Store
	list   list.Model
	input  textinput.Model
	keys   keyMap
	layout string

	adding bool
	err    error // last persistence failure, shown under the list

	width, height int
}

// New builds the view. layout is the date layout for rows.
func New(s *store.Store, layout string) Model {
	keys := newKeyMap()

	l := list.New(nil, itemDelegate{layout: layout}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = ui.Current().Title
	l.Styles.HelpStyle = ui.Current().Muted
	l.Styles.PaginationStyle = ui.Current().Muted
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("todo", "todos")
	extra := func() []key.Binding { return []key.Binding{keys.Add, keys.Toggle, keys.Remove} }
	l.AdditionalShortHelpKeys = extra
	l.AdditionalFullHelpKeys = extra

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Your todo..."

	m := Model{
		store:  s,
		list:   l,
		input:  ti,
		keys:   keys,
		layout: layout,
	}
	m.resize(80, 24)
	m.sync()
	return m
}

// Run starts the program in the alternate screen and blocks until quit.
func Run(s *store.Store, layout string) error {
	_, err := tea.NewProgram(New(s, layout), tea.WithAltScreen()).Run()
	return err
}

// sync redraws the list from the store.
func (m *Model) sync() tea.Cmd {
	items := m.store.Items()
	li := make([]list.Item, 0, len(items))
	for _, it := range items {
		li = append(li, listItem{it})
	}
	m.list.Title = ui.Header(items)[0]
	return m.list.SetItems(li)
}

func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	listHeight := h - 4
	if m.adding {
		listHeight -= 4
	}
	m.list.SetSize(w-4, listHeight)
}

func (m Model) selected() (model.Item, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	return it.item, ok
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.resize(ws.Width, ws.Height)
		return m, nil
	}
	if m.adding {
		return m.updateAdding(msg)
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(kmsg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(kmsg, m.keys.Add):
		m.adding = true
		m.input.SetValue("")
		m.resize(m.width, m.height)
		cmd := m.input.Focus()
		return m, cmd
	case key.Matches(kmsg, m.keys.Toggle):
		if it, ok := m.selected(); ok {
			_, m.err = m.store.Toggle(it.ID)
			cmd := m.sync()
			return m, cmd
		}
		return m, nil
	case key.Matches(kmsg, m.keys.Remove):
		if it, ok := m.selected(); ok {
			_, m.err = m.store.Remove(it.ID)
			cmd := m.sync()
			return m, cmd
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateAdding(msg tea.Msg) (tea.Model, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(kmsg, m.keys.Submit):
			_, added, err := m.store.Add(m.input.Value())
			if !added {
				return m, nil
			}
			m.err = err
			m.closeInput()
			cmd := m.sync()
			m.list.Select(len(m.list.Items()) - 1)
			return m, cmd
		case key.Matches(kmsg, m.keys.Cancel):
			m.closeInput()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) closeInput() {
	m.adding = false
	m.input.SetValue("")
	m.input.Blur()
	m.resize(m.width, m.height)
}

func (m Model) View() string {
	t := ui.Current()
	var content string
	if m.store.Len() == 0 {
		content = m.list.Title + "\n\n" + t.Muted.Render(ui.Placeholder) + "\n\n" +
			t.Muted.Render("a add • q quit")
	} else {
		content = m.list.View()
	}

	if m.adding {
		bar := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.BorderColor).Padding(0, 1)
		content += "\n" + bar.Render("Add todo\n"+m.input.View())
	}
	if m.err != nil {
		content += "\n" + t.Error.Render("✖ "+m.err.Error())
	}
	return ui.PanelString(content)
}
