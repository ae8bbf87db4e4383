// Package cmd implements the moodr CLI commands using Cobra.
package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sadopc/moodr/internal/config"
	"github.com/sadopc/moodr/internal/store"
	"github.com/sadopc/moodr/internal/tui"
)

var flagDB string

var rootCmd = &cobra.Command{
	Use:   "moodr",
	Short: "A mood journal for your terminal",
	Long: `moodr keeps one mood and one diary note per calendar day in a local
SQLite database, and shows them as a month calendar, a year-in-pixels
board and mood statistics.

Run it without arguments to open the journal UI. The export, import and
list subcommands work on the same database without the UI.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runUI,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "Path to the journal database (default: user config dir)")
}

func runUI(cmd *cobra.Command, args []string) error {
	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	p := tea.NewProgram(tui.NewApp(s), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

// openStore resolves the database location and opens it. The --db flag wins
// over the config file and MOODR_DB environment, which win over the default
// path under the user config dir.
func openStore() (*store.Store, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	path := flagDB
	if path == "" {
		if path, err = cfg.ResolveDBPath(); err != nil {
			return nil, nil, err
		}
	}

	s, err := store.New(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	return s, cfg, nil
}
