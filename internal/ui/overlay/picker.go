package overlay

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// PickerItem is one selectable row in a Picker.
type PickerItem struct {
	Key   string
	Label string
	Value any
}

// Picker is a generic single-select list overlay, used for choosing a
// status or an assignee.
type Picker struct {
	title  string
	items  []PickerItem
	cursor int
	styles *Styles
}

// NewPicker creates a picker over the given items.
func NewPicker(title string, items []PickerItem) *Picker {
	return &Picker{
		title:  title,
		items:  items,
		styles: New(),
	}
}

// Init initializes the picker
func (p *Picker) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (p *Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			return p, func() tea.Msg { return CloseOverlayMsg{} }

		case "up", "k":
			if p.cursor > 0 {
				p.cursor--
			}
			return p, nil

		case "down", "j":
			if p.cursor < len(p.items)-1 {
				p.cursor++
			}
			return p, nil

		case "enter":
			if len(p.items) == 0 {
				return p, nil
			}
			item := p.items[p.cursor]
			return p, func() tea.Msg {
				return SelectionMsg{Key: item.Key, Value: item.Value}
			}
		}
	}

	return p, nil
}

// View renders the picker
func (p *Picker) View() string {
	var b strings.Builder

	if len(p.items) == 0 {
		b.WriteString(p.styles.MenuItemDisabled.Render("Nothing to choose from"))
	}

	for i, item := range p.items {
		style := p.styles.MenuItem
		marker := "  "
		if i == p.cursor {
			style = p.styles.MenuItemActive
			marker = "> "
		}
		b.WriteString(style.Render(marker + item.Label))
		b.WriteString("\n")
	}

	b.WriteString(p.styles.Footer.Render("↑↓/jk: Move • Enter: Select • Esc: Cancel"))

	return b.String()
}

// Title returns the picker title
func (p *Picker) Title() string {
	return p.title
}

// Size returns the picker dimensions
func (p *Picker) Size() (width, height int) {
	w := len(p.title)
	for _, item := range p.items {
		if len(item.Label)+2 > w {
			w = len(item.Label) + 2
		}
	}
	if w < 36 {
		w = 36
	}
	return w + 6, len(p.items) + 5
}
