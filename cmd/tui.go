package cmd

import (
	"fmt"

	"github.com/theirongolddev/zenfin/internal/config"
	"github.com/theirongolddev/zenfin/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive TUI dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	// Force TrueColor profile so all background styling produces ANSI codes
	lipgloss.SetColorProfile(termenv.TrueColor)

	s, closeFn, err := openStore()
	if err != nil {
		return err
	}
	defer closeFn()

	app := tui.NewApp(tui.Options{
		Store:           s,
		Adviser:         newAdviser(cfg),
		Days:            flagDays,
		RecentCount:     cfg.General.RecentCount,
		MinTransactions: cfg.Advice.MinTransactions,
		NeedSetup:       !config.Exists(),
		Reconfigure: func(c config.Config) tui.Adviser {
			cfg = c
			return newAdviser(c)
		},
	})
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
