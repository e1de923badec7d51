package overlay

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/melia/internal/domain"
)

// TaskSubmittedMsg is emitted when the edit form is submitted. The
// overlay stays open; the app closes it once the save succeeds.
type TaskSubmittedMsg struct {
	Form domain.Form
}

// EditTask is the create/edit form for a task card.
type EditTask struct {
	subject     textinput.Model
	description textarea.Model
	statuses    []domain.TaskStatus
	members     []domain.Member
	statusIdx   int // index into statuses, -1 = none selected
	memberIdx   int // index into members, -1 = unassigned
	focusIndex  int
	isNew       bool
	fieldError  string
	styles      *Styles
}

const (
	focusSubject = iota
	focusDescription
	focusStatus
	focusAssignee
	focusSubmit
	fieldCount
)

// NewEditTask creates the form pre-filled from an existing form value.
// members must already be in display order (current user first).
func NewEditTask(form domain.Form, statuses []domain.TaskStatus, members []domain.Member, isNew bool) *EditTask {
	ti := textinput.New()
	ti.Placeholder = "Subject..."
	ti.SetValue(form.Subject)
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 60

	ta := textarea.New()
	ta.Placeholder = "Description (optional)..."
	ta.SetValue(form.Description)
	ta.CharLimit = 4000
	ta.SetWidth(60)
	ta.SetHeight(5)

	e := &EditTask{
		subject:     ti,
		description: ta,
		statuses:    statuses,
		members:     members,
		statusIdx:   -1,
		memberIdx:   -1,
		isNew:       isNew,
		styles:      New(),
	}

	for i, st := range statuses {
		if st.ID == form.Status {
			e.statusIdx = i
		}
	}
	if form.AssignedTo != nil {
		for i, m := range members {
			if m.UserID() == *form.AssignedTo {
				e.memberIdx = i
			}
		}
	}
	return e
}

// Init initializes the overlay
func (e *EditTask) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (e *EditTask) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return e, func() tea.Msg { return CloseOverlayMsg{} }

		case "ctrl+s":
			return e, e.submit()

		case "tab", "shift+tab":
			if msg.String() == "tab" {
				e.focusIndex = (e.focusIndex + 1) % fieldCount
			} else {
				e.focusIndex = (e.focusIndex - 1 + fieldCount) % fieldCount
			}

			if e.focusIndex == focusSubject {
				e.subject.Focus()
				e.description.Blur()
			} else if e.focusIndex == focusDescription {
				e.subject.Blur()
				e.description.Focus()
			} else {
				e.subject.Blur()
				e.description.Blur()
			}
			return e, nil

		case "enter":
			if e.focusIndex == focusSubmit {
				return e, e.submit()
			}
		}

		// Cycle selections with h/l or arrows when focused
		if e.focusIndex == focusStatus {
			switch msg.String() {
			case "left", "h":
				if e.statusIdx > -1 {
					e.statusIdx--
				}
				return e, nil
			case "right", "l", " ":
				if e.statusIdx < len(e.statuses)-1 {
					e.statusIdx++
				}
				return e, nil
			}
		}
		if e.focusIndex == focusAssignee {
			switch msg.String() {
			case "left", "h":
				if e.memberIdx > -1 {
					e.memberIdx--
				}
				return e, nil
			case "right", "l", " ":
				if e.memberIdx < len(e.members)-1 {
					e.memberIdx++
				}
				return e, nil
			}
		}
	}

	var cmd tea.Cmd
	if e.focusIndex == focusSubject {
		e.subject, cmd = e.subject.Update(msg)
		cmds = append(cmds, cmd)
	} else if e.focusIndex == focusDescription {
		e.description, cmd = e.description.Update(msg)
		cmds = append(cmds, cmd)
	}

	return e, tea.Batch(cmds...)
}

// Form returns the current form value.
func (e *EditTask) Form() domain.Form {
	f := domain.Form{
		Subject:     e.subject.Value(),
		Description: e.description.Value(),
	}
	if e.statusIdx >= 0 && e.statusIdx < len(e.statuses) {
		f.Status = e.statuses[e.statusIdx].ID
	}
	if e.memberIdx >= 0 && e.memberIdx < len(e.members) {
		id := e.members[e.memberIdx].UserID()
		f.AssignedTo = &id
	}
	return f
}

// submit validates locally and emits the form without closing; a save
// that fails remotely must leave the user editing their input.
func (e *EditTask) submit() tea.Cmd {
	form := e.Form()
	if strings.TrimSpace(form.Subject) == "" {
		e.fieldError = "Subject is required"
		return nil
	}
	e.fieldError = ""
	return func() tea.Msg {
		return TaskSubmittedMsg{Form: form}
	}
}

// View renders the form
func (e *EditTask) View() string {
	var b strings.Builder

	e.renderLabel(&b, "Subject:", focusSubject)
	b.WriteString("  ")
	b.WriteString(e.subject.View())
	b.WriteString("\n\n")

	e.renderLabel(&b, "Description:", focusDescription)
	b.WriteString("\n")
	b.WriteString(e.description.View())
	b.WriteString("\n\n")

	e.renderLabel(&b, "Status:", focusStatus)
	b.WriteString("  ")
	b.WriteString(e.renderStatusChoice())
	b.WriteString("\n\n")

	e.renderLabel(&b, "Assignee:", focusAssignee)
	b.WriteString("  ")
	b.WriteString(e.renderAssigneeChoice())
	b.WriteString("\n\n")

	b.WriteString(e.styles.Separator.Render(strings.Repeat("─", 60)))
	b.WriteString("\n\n")

	submitStyle := e.styles.MenuItem
	if e.focusIndex == focusSubmit {
		submitStyle = e.styles.MenuItemActive
	}
	label := "[ Save Task ]"
	if e.isNew {
		label = "[ Create Task ]"
	}
	b.WriteString(submitStyle.Render(label))
	b.WriteString("\n")

	if e.fieldError != "" {
		b.WriteString("\n")
		b.WriteString(e.styles.MenuKey.Render(e.fieldError))
		b.WriteString("\n")
	}

	hints := []string{
		e.styles.MenuKey.Render("Tab") + " " + e.styles.Footer.Render("Switch fields"),
		e.styles.MenuKey.Render("Ctrl+S") + " " + e.styles.Footer.Render("Save"),
		e.styles.MenuKey.Render("Esc") + " " + e.styles.Footer.Render("Cancel"),
	}
	b.WriteString(e.styles.Footer.Render(strings.Join(hints, " • ")))

	return b.String()
}

func (e *EditTask) renderLabel(b *strings.Builder, label string, field int) {
	if e.focusIndex == field {
		b.WriteString(e.styles.MenuItemActive.Render(label))
	} else {
		b.WriteString(e.styles.MenuItem.Render(label))
	}
}

func (e *EditTask) renderStatusChoice() string {
	if e.statusIdx < 0 || e.statusIdx >= len(e.statuses) {
		return e.styles.MenuItemDisabled.Render("‹ none ›")
	}
	return e.styles.MenuItemActive.Render("‹ " + e.statuses[e.statusIdx].Name + " ›")
}

func (e *EditTask) renderAssigneeChoice() string {
	if e.memberIdx < 0 || e.memberIdx >= len(e.members) {
		return e.styles.MenuItemDisabled.Render("‹ unassigned ›")
	}
	return e.styles.MenuItemActive.Render("‹ " + e.members[e.memberIdx].DisplayName() + " ›")
}

// Title returns the overlay title
func (e *EditTask) Title() string {
	if e.isNew {
		return "New Task"
	}
	return "Edit Task"
}

// Size returns the overlay dimensions
func (e *EditTask) Size() (width, height int) {
	return 70, 22
}
