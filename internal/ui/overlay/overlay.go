// Package overlay provides the modal layer: a stack of centered
// dialogs (confirm, picker, task detail, task editor) composed over
// the main view.
package overlay

import tea "github.com/charmbracelet/bubbletea"

// Overlay is a modal component. Title and Size feed the chrome drawn
// around it.
type Overlay interface {
	tea.Model
	Title() string
	Size() (width, height int)
}

// CloseOverlayMsg asks the stack to dismiss the top overlay.
type CloseOverlayMsg struct{}

// SelectionMsg carries the user's choice out of an overlay. Key names
// the choice, Value carries its payload.
type SelectionMsg struct {
	Key   string
	Value any
}
