package app

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/melia/internal/state"
	"github.com/riordanpawley/melia/internal/types"
)

// Bridge hands messages from background service goroutines to the
// running program. The program is created after the model, so the
// bridge starts disconnected and is attached once Run has it.
type Bridge struct {
	mu sync.Mutex
	p  *tea.Program
}

// NewBridge creates a disconnected bridge.
func NewBridge() *Bridge {
	return &Bridge{}
}

// SetProgram attaches the running program.
func (b *Bridge) SetProgram(p *tea.Program) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.p = p
}

// Send forwards a message to the program. Messages sent before the
// program is attached are dropped.
func (b *Bridge) Send(msg tea.Msg) {
	b.mu.Lock()
	p := b.p
	b.mu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

// notifier surfaces service notifications as toasts.
type notifier struct {
	bridge *Bridge
}

func (n *notifier) Notify(message string, level types.ToastLevel) {
	n.bridge.Send(notifyMsg{message: message, level: level})
}

// busyIndicator tracks nested busy sections around service calls.
type busyIndicator struct {
	bridge *Bridge
}

func (b *busyIndicator) ShowBusy() {
	b.bridge.Send(busyMsg{delta: 1})
}

func (b *busyIndicator) HideBusy() {
	b.bridge.Send(busyMsg{delta: -1})
}

// confirmer blocks a service goroutine on a confirmation overlay. The
// answer channel is buffered so the UI never blocks answering.
type confirmer struct {
	bridge *Bridge
}

func (c *confirmer) Confirm(ctx context.Context, title, message string) (bool, error) {
	answer := make(chan bool, 1)
	c.bridge.Send(confirmRequestMsg{title: title, message: message, answer: answer})
	select {
	case ok := <-answer:
		return ok, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

// boardReloader refetches the task list and tells the UI to rebuild its
// rows from state.
type boardReloader struct {
	st     *state.Store
	gw     state.BoardGateway
	bridge *Bridge
}

func (r *boardReloader) ReloadTasks(ctx context.Context) error {
	if err := r.st.ReloadTasks(ctx, r.gw); err != nil {
		return err
	}
	r.bridge.Send(tasksReloadedMsg{})
	return nil
}
