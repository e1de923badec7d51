// Package statusbar renders the single-line bar at the bottom of the
// TUI: current context (project/story), task counts, connectivity and
// keybinding hints.
package statusbar

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/melia/internal/ui/styles"
)

// StatusBar represents the status bar at the bottom of the TUI
type StatusBar struct {
	context string
	tasks   int
	drafts  int
	online  bool
	hints   string
	width   int
	styles  *styles.Styles
}

// New creates a new StatusBar
func New(context string, width int, s *styles.Styles) StatusBar {
	return StatusBar{
		context: context,
		online:  true,
		width:   width,
		styles:  s,
	}
}

// WithCounts sets the persisted task and pending-new-task counts.
func (sb StatusBar) WithCounts(tasks, drafts int) StatusBar {
	sb.tasks = tasks
	sb.drafts = drafts
	return sb
}

// WithOnline sets the connectivity indicator.
func (sb StatusBar) WithOnline(online bool) StatusBar {
	sb.online = online
	return sb
}

// WithHints sets the keybinding hint text.
func (sb StatusBar) WithHints(hints string) StatusBar {
	sb.hints = hints
	return sb
}

// Render renders the status bar as a string
func (sb StatusBar) Render() string {
	badge := sb.styles.StatusContext.Render(" " + sb.context + " ")

	parts := []string{badge}
	separator := sb.styles.StatusHint.Render(" │ ")

	if sb.tasks > 0 || sb.drafts > 0 {
		counts := strconv.Itoa(sb.tasks) + " tasks"
		if sb.drafts > 0 {
			counts += " · " + strconv.Itoa(sb.drafts) + " new"
		}
		parts = append(parts, separator, sb.styles.StatusHint.Render(counts))
	}

	if sb.hints != "" {
		parts = append(parts, separator, sb.styles.StatusHint.Render(sb.hints))
	}

	if sb.online {
		parts = append(parts, separator, sb.styles.StatusOnline.Render("online"))
	} else {
		parts = append(parts, separator, sb.styles.StatusOffline.Render("OFFLINE"))
	}

	content := lipgloss.JoinHorizontal(lipgloss.Left, parts...)
	return sb.styles.StatusBar.Width(sb.width).Render(content)
}
