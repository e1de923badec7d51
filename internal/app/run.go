package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the program, attaches the service bridge and the network
// monitor, and blocks until the UI exits.
func Run(m *Model) error {
	program := tea.NewProgram(m, tea.WithAltScreen())
	m.bridge.SetProgram(program)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	interval := time.Duration(m.cfg.Network.CheckInterval) * time.Second
	if interval <= 0 {
		interval = time.Minute
	}
	go m.network.StartMonitoring(ctx, program, interval)

	_, err := program.Run()
	return err
}
