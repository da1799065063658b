package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"tasklist/tui"
)

// runInteractive starts the full-screen TUI over the session's store.
func runInteractive(s *session) error {
	model := tui.NewModel(s.svc)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	s.logger.Debug("tui exited", "tasks", len(s.svc.Tasks()))
	return nil
}
