package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"cripes/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	// Perform automatic snapshot on dashboard startup
	ctx.PerformAutomaticSnapshot()

	p := tea.NewProgram(tui.NewModel(ctx.DB, ctx.Tracker, ctx.Ledger, ctx.Scheduler), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
	return nil
}
