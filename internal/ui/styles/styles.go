package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles holds all the UI styles
type Styles struct {
	// Lists (projects, stories, tasks)
	List         lipgloss.Style
	ListHeader   lipgloss.Style
	ListItem     lipgloss.Style
	ListSelected lipgloss.Style

	// Task cards
	Card       lipgloss.Style
	CardActive lipgloss.Style
	CardDraft  lipgloss.Style
	TaskRef    lipgloss.Style
	TaskTitle  lipgloss.Style
	Assignee   lipgloss.Style
	Favorite   lipgloss.Style

	// StatusBadge renders a status name in the server-provided color
	StatusBadge func(colorHex string) lipgloss.Style

	// Status bar
	StatusBar     lipgloss.Style
	StatusContext lipgloss.Style
	StatusHint    lipgloss.Style
	StatusOnline  lipgloss.Style
	StatusOffline lipgloss.Style

	// Overlays
	Overlay        lipgloss.Style
	OverlayTitle   lipgloss.Style
	MenuItem       lipgloss.Style
	MenuItemActive lipgloss.Style
	MenuKey        lipgloss.Style
	Separator      lipgloss.Style

	// Edit form
	FieldLabel        lipgloss.Style
	FieldLabelFocused lipgloss.Style
	FieldError        lipgloss.Style

	// Toasts
	ToastInfo    lipgloss.Style
	ToastSuccess lipgloss.Style
	ToastWarning lipgloss.Style
	ToastError   lipgloss.Style

	// Busy indicator
	Busy lipgloss.Style
}

// New creates a new Styles instance with Catppuccin Macchiato theme
func New() *Styles {
	return &Styles{
		List: lipgloss.NewStyle().
			Padding(0, 1),

		ListHeader: lipgloss.NewStyle().
			Foreground(Subtext0).
			Bold(true).
			Padding(0, 1).
			MarginBottom(1),

		ListItem: lipgloss.NewStyle().
			Foreground(Text).
			Padding(0, 1),

		ListSelected: lipgloss.NewStyle().
			Foreground(Blue).
			Bold(true).
			Padding(0, 1),

		Card: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Surface1).
			Padding(0, 1).
			MarginBottom(1),

		CardActive: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Lavender).
			Padding(0, 1).
			MarginBottom(1),

		CardDraft: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Peach).
			Padding(0, 1).
			MarginBottom(1),

		TaskRef: lipgloss.NewStyle().
			Foreground(Overlay1).
			Bold(true),

		TaskTitle: lipgloss.NewStyle().
			Foreground(Text),

		Assignee: lipgloss.NewStyle().
			Foreground(Teal),

		Favorite: lipgloss.NewStyle().
			Foreground(Yellow),

		StatusBadge: func(colorHex string) lipgloss.Style {
			return lipgloss.NewStyle().
				Foreground(StatusColor(colorHex)).
				Bold(true)
		},

		StatusBar: lipgloss.NewStyle().
			Background(Surface0).
			Foreground(Subtext0).
			Padding(0, 1),

		StatusContext: lipgloss.NewStyle().
			Background(Blue).
			Foreground(Base).
			Bold(true).
			Padding(0, 1),

		StatusHint: lipgloss.NewStyle().
			Foreground(Overlay1),

		StatusOnline: lipgloss.NewStyle().
			Foreground(Green),

		StatusOffline: lipgloss.NewStyle().
			Foreground(Red).
			Bold(true),

		Overlay: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Surface2).
			Background(Base).
			Padding(1, 2),

		OverlayTitle: lipgloss.NewStyle().
			Foreground(Text).
			Bold(true).
			MarginBottom(1),

		MenuItem: lipgloss.NewStyle().
			Foreground(Text),

		MenuItemActive: lipgloss.NewStyle().
			Foreground(Blue).
			Bold(true),

		MenuKey: lipgloss.NewStyle().
			Foreground(Yellow).
			Bold(true),

		Separator: lipgloss.NewStyle().
			Foreground(Surface1),

		FieldLabel: lipgloss.NewStyle().
			Foreground(Teal).
			Width(12).
			Align(lipgloss.Right),

		FieldLabelFocused: lipgloss.NewStyle().
			Foreground(Blue).
			Bold(true),

		FieldError: lipgloss.NewStyle().
			Foreground(Red),

		ToastInfo: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Blue).
			Foreground(Blue).
			Padding(0, 1),

		ToastSuccess: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Green).
			Foreground(Green).
			Padding(0, 1),

		ToastWarning: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Yellow).
			Foreground(Yellow).
			Padding(0, 1),

		ToastError: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Red).
			Foreground(Red).
			Padding(0, 1),

		Busy: lipgloss.NewStyle().
			Foreground(Blue),
	}
}
