package cli

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/keiki-saito/habit100-app/internal/tui"
)

type BoardCmd struct{}

// Run opens the interactive challenge board.
func (c *BoardCmd) Run(ctx *Context) error {
	p := tea.NewProgram(tui.NewModel(ctx.Repo), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
