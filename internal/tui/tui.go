package tui

import (
	"str8ts-cli/internal/board"
	"str8ts-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

func Run(st store.Store, saveName string, b *board.Board) error {
	applyColorProfilePreference()
	applyThemePreference()

	m := newAppModel(st, saveName, b)
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}
