package tui

import (
	"memberbook/internal/roster"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive terminal client and blocks until it exits.
func Run(ctrl *roster.Controller) error {
	applyColorProfilePreference()
	applyThemePreference()

	p := tea.NewProgram(newAppModel(ctrl), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
