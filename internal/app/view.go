package app

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/melia/internal/ui/statusbar"
	"github.com/riordanpawley/melia/internal/ui/styles"
	"github.com/riordanpawley/melia/internal/ui/toast"
)

// View renders the current state as a string
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if m.loading {
		return m.renderLoading()
	}

	var mainView string
	switch m.screen {
	case screenProjects:
		mainView = m.renderProjects()
	case screenStories:
		mainView = m.renderStories()
	case screenTasks:
		mainView = m.list.View()
	}

	sb := statusbar.New(m.contextLabel(), m.width, m.styles).
		WithCounts(len(m.st.Tasks()), len(m.st.Drafts())).
		WithOnline(m.isOnline).
		WithHints(m.hints())
	if m.busyCount > 0 {
		mainView = lipgloss.JoinVertical(lipgloss.Left,
			m.styles.Busy.Render(m.spinner.View()+" working..."), mainView)
	}

	view := lipgloss.JoinVertical(lipgloss.Left, mainView, sb.Render())

	if !m.overlayStack.IsEmpty() {
		view = m.composeOverlay(view)
	}

	if len(m.toasts) > 0 {
		toastView := toast.New(m.styles).Render(m.toasts, m.width)
		if toastView != "" {
			view = lipgloss.JoinVertical(lipgloss.Left, view, toastView)
		}
	}

	return view
}

func (m *Model) renderProjects() string {
	var b strings.Builder
	b.WriteString(m.styles.ListHeader.Render("Projects"))
	b.WriteString("\n")

	if len(m.projects) == 0 {
		b.WriteString(m.styles.ListItem.Render("No projects."))
		return b.String()
	}

	for i, p := range m.projects {
		style := m.styles.ListItem
		marker := "  "
		if i == m.cursor {
			style = m.styles.ListSelected
			marker = "> "
		}
		label := marker + p.Name
		if m.favorite[p.ID] {
			label += " " + m.styles.Favorite.Render("★")
		}
		b.WriteString(style.Render(label))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) renderStories() string {
	var b strings.Builder
	if p := m.st.Project(); p != nil {
		b.WriteString(m.styles.ListHeader.Render(p.Name + " / Stories"))
	} else {
		b.WriteString(m.styles.ListHeader.Render("Stories"))
	}
	b.WriteString("\n")

	rows := []string{"All project tasks"}
	for _, story := range m.stories {
		rows = append(rows, "#"+strconv.Itoa(story.Ref)+" "+story.Subject)
	}

	for i, label := range rows {
		style := m.styles.ListItem
		marker := "  "
		if i == m.cursor {
			style = m.styles.ListSelected
			marker = "> "
		}
		b.WriteString(style.Render(marker + label))
		b.WriteString("\n")
	}

	if len(m.epics) > 0 {
		b.WriteString("\n")
		b.WriteString(m.styles.ListHeader.Render("Epics"))
		b.WriteString("\n")
		for _, e := range m.epics {
			dot := lipgloss.NewStyle().Foreground(styles.StatusColor(e.Color)).Render("●")
			b.WriteString(m.styles.ListItem.Render("  " + dot + " #" + strconv.Itoa(e.Ref) + " " + e.Subject))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// contextLabel names the active scope for the status bar.
func (m *Model) contextLabel() string {
	switch m.screen {
	case screenProjects:
		return "Projects"
	case screenStories:
		if p := m.st.Project(); p != nil {
			return p.Name
		}
		return "Stories"
	default:
		label := "Tasks"
		if p := m.st.Project(); p != nil {
			label = p.Name
		}
		if story := m.st.Story(); story != nil {
			label += " / #" + strconv.Itoa(story.Ref)
		}
		return label
	}
}

func (m *Model) hints() string {
	switch m.screen {
	case screenProjects:
		return "enter open · f favorite · r reload · q quit"
	case screenStories:
		return "enter open · esc back"
	default:
		return "n new · e edit · d delete · a assign all · s status all · S save all"
	}
}

// composeOverlay stacks the active overlay centered over the base view.
func (m *Model) composeOverlay(base string) string {
	current := m.overlayStack.Current()
	overlayView := current.View()

	if title := current.Title(); title != "" {
		overlayView = lipgloss.JoinVertical(lipgloss.Left,
			m.styles.OverlayTitle.Render(title), overlayView)
	}

	overlayWidth, overlayHeight := current.Size()
	overlayView = m.styles.Overlay.
		Width(overlayWidth).
		Height(overlayHeight).
		Render(overlayView)

	centered := lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, overlayView)
	base = lipgloss.Place(m.width, m.height, lipgloss.Left, lipgloss.Top, base)
	return lipgloss.JoinVertical(lipgloss.Left, base, centered)
}

func (m *Model) renderLoading() string {
	content := lipgloss.JoinVertical(
		lipgloss.Center,
		m.spinner.View(),
		"Loading...",
	)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		content,
	)
}
