package overlay

import tea "github.com/charmbracelet/bubbletea"

// Stack holds the open overlays, topmost last. Only the top overlay
// receives input.
type Stack struct {
	overlays []Overlay
}

func NewStack() *Stack {
	return &Stack{}
}

// Push opens an overlay on top and returns its Init command.
func (s *Stack) Push(o Overlay) tea.Cmd {
	s.overlays = append(s.overlays, o)
	return o.Init()
}

// Pop dismisses and returns the top overlay, nil when empty.
func (s *Stack) Pop() Overlay {
	if len(s.overlays) == 0 {
		return nil
	}
	top := s.overlays[len(s.overlays)-1]
	s.overlays = s.overlays[:len(s.overlays)-1]
	return top
}

// Current returns the top overlay without removing it, nil when empty.
func (s *Stack) Current() Overlay {
	if len(s.overlays) == 0 {
		return nil
	}
	return s.overlays[len(s.overlays)-1]
}

func (s *Stack) IsEmpty() bool {
	return len(s.overlays) == 0
}

// Clear drops every open overlay.
func (s *Stack) Clear() {
	s.overlays = nil
}

// Update forwards msg to the top overlay. A CloseOverlayMsg pops it
// instead.
func (s *Stack) Update(msg tea.Msg) tea.Cmd {
	if s.IsEmpty() {
		return nil
	}

	if _, ok := msg.(CloseOverlayMsg); ok {
		s.Pop()
		return nil
	}

	next, cmd := s.Current().Update(msg)
	if o, ok := next.(Overlay); ok {
		s.overlays[len(s.overlays)-1] = o
	}
	return cmd
}
