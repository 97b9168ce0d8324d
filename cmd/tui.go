package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"healthscore/internal/config"
	"healthscore/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the terminal dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd.Context())
	},
}

func runTUI(ctx context.Context) error {
	// Logs go to a file while the alternate screen is active
	dir, err := config.GetConfigDir()
	if err != nil {
		return err
	}

	d, err := setup(filepath.Join(dir, "healthscore.log"))
	if err != nil {
		return err
	}
	defer d.Close()

	app := tui.NewApp(d.svc, d.cfg.User.ID, tui.NewUnits(d.cfg.Display))
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
