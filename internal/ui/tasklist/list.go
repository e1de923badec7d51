// Package tasklist renders the task view: persisted tasks followed by
// pending-new-task cards, with a movable cursor.
package tasklist

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/melia/internal/domain"
	"github.com/riordanpawley/melia/internal/ui/styles"
)

// Row is one list entry: either a persisted task or a draft card.
type Row struct {
	Task  *domain.Task
	Draft *domain.Draft
}

// IsDraft reports whether the row is a pending-new-task card.
func (r Row) IsDraft() bool {
	return r.Draft != nil
}

// List is the task list component.
type List struct {
	rows     []Row
	statuses []domain.TaskStatus
	members  []domain.Member
	cursor   int
	width    int
	styles   *styles.Styles
}

// New creates an empty list.
func New(s *styles.Styles) *List {
	return &List{styles: s, width: 80}
}

// SetWidth sets the rendering width.
func (l *List) SetWidth(width int) {
	l.width = width
}

// SetItems rebuilds the rows from the loaded board. Persisted tasks come
// first, draft cards after, and the cursor is clamped into range.
func (l *List) SetItems(tasks []domain.Task, drafts []domain.Draft, statuses []domain.TaskStatus, members []domain.Member) {
	rows := make([]Row, 0, len(tasks)+len(drafts))
	for i := range tasks {
		rows = append(rows, Row{Task: &tasks[i]})
	}
	for i := range drafts {
		rows = append(rows, Row{Draft: &drafts[i]})
	}
	l.rows = rows
	l.statuses = statuses
	l.members = members
	if l.cursor >= len(rows) {
		l.cursor = len(rows) - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
}

// Len returns the number of rows.
func (l *List) Len() int {
	return len(l.rows)
}

// MoveUp moves the cursor one row up.
func (l *List) MoveUp() {
	if l.cursor > 0 {
		l.cursor--
	}
}

// MoveDown moves the cursor one row down.
func (l *List) MoveDown() {
	if l.cursor < len(l.rows)-1 {
		l.cursor++
	}
}

// Selected returns the row under the cursor.
func (l *List) Selected() (Row, bool) {
	if l.cursor < 0 || l.cursor >= len(l.rows) {
		return Row{}, false
	}
	return l.rows[l.cursor], true
}

// View renders the list.
func (l *List) View() string {
	if len(l.rows) == 0 {
		return l.styles.ListItem.Render("No tasks. Press n to add one.")
	}

	cardWidth := l.width - 4
	if cardWidth > 76 {
		cardWidth = 76
	}

	rendered := make([]string, 0, len(l.rows))
	for i, row := range l.rows {
		style := l.styles.Card
		if i == l.cursor {
			style = l.styles.CardActive
		} else if row.IsDraft() {
			style = l.styles.CardDraft
		}
		rendered = append(rendered, style.Width(cardWidth).Render(l.renderRow(row)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rendered...)
}

func (l *List) renderRow(row Row) string {
	if row.IsDraft() {
		return l.renderDraft(*row.Draft)
	}
	return l.renderTask(*row.Task)
}

func (l *List) renderTask(t domain.Task) string {
	ref := l.styles.TaskRef.Render("#" + strconv.Itoa(t.Ref))
	subject := l.styles.TaskTitle.Render(t.Subject)

	line := ref + " " + subject

	if status, ok := domain.StatusByID(l.statuses, t.Status); ok {
		line += "  " + l.styles.StatusBadge(status.Color).Render(status.Name)
	}

	if t.AssignedTo != nil {
		if m, ok := domain.MemberByUserID(l.members, *t.AssignedTo); ok {
			line += "  " + l.styles.Assignee.Render("@"+m.DisplayName())
		}
	}

	return line
}

func (l *List) renderDraft(d domain.Draft) string {
	subject := d.Subject
	if subject == "" {
		subject = "(untitled)"
	}
	line := l.styles.TaskRef.Render("NEW") + " " + l.styles.TaskTitle.Render(subject)

	if status, ok := domain.StatusByID(l.statuses, d.Status); ok {
		line += "  " + l.styles.StatusBadge(status.Color).Render(status.Name)
	}
	if d.AssignedTo != nil {
		if m, ok := domain.MemberByUserID(l.members, *d.AssignedTo); ok {
			line += "  " + l.styles.Assignee.Render("@"+m.DisplayName())
		}
	}
	return line
}
