package overlay

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/riordanpawley/melia/internal/domain"
)

const detailWidth = 76

// TaskDetail is a read-only overlay showing a task's full record with
// the description rendered as markdown.
type TaskDetail struct {
	task     domain.Task
	status   string
	assignee string
	styles   *Styles
	rendered string
}

// NewTaskDetail creates a detail overlay for the given task. status and
// assignee are the resolved display names (both may be empty).
func NewTaskDetail(task domain.Task, status, assignee string) *TaskDetail {
	return &TaskDetail{
		task:     task,
		status:   status,
		assignee: assignee,
		styles:   New(),
		rendered: renderMarkdown(task.Description),
	}
}

// renderMarkdown renders the description through glamour, falling back
// to the raw text when rendering fails.
func renderMarkdown(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(detailWidth-6),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

// Init initializes the overlay
func (d *TaskDetail) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (d *TaskDetail) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q", "enter":
			return d, func() tea.Msg { return CloseOverlayMsg{} }
		}
	}
	return d, nil
}

// View renders the overlay
func (d *TaskDetail) View() string {
	var b strings.Builder

	b.WriteString(d.styles.MenuKey.Render("#" + strconv.Itoa(d.task.Ref)))
	b.WriteString(" ")
	b.WriteString(d.styles.Title.Render(d.task.Subject))
	b.WriteString("\n")

	if d.status != "" {
		b.WriteString(d.styles.MenuItem.Render("Status:   " + d.status))
		b.WriteString("\n")
	}
	assignee := d.assignee
	if assignee == "" {
		assignee = "Unassigned"
	}
	b.WriteString(d.styles.MenuItem.Render("Assignee: " + assignee))
	b.WriteString("\n")

	if d.rendered != "" {
		b.WriteString(d.styles.Separator.Render(strings.Repeat("─", detailWidth-6)))
		b.WriteString("\n")
		b.WriteString(d.rendered)
		b.WriteString("\n")
	}

	b.WriteString(d.styles.Footer.Render("Esc: Close"))

	return b.String()
}

// Title returns the overlay title
func (d *TaskDetail) Title() string {
	return "Task"
}

// Size returns the overlay dimensions
func (d *TaskDetail) Size() (width, height int) {
	lines := 6 + len(strings.Split(d.rendered, "\n"))
	return detailWidth, lines
}
