package cli

import (
	tea "github.com/charmbracelet/bubbletea"
)

// runTUI starts the full-screen interface on the alternate screen.
func runTUI(app *App) error {
	p := tea.NewProgram(newAppModel(app), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
