package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sadopc/moodr/internal/journal"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Merge a text journal into the database",
	Long: `Import reads a journal in the text export format and merges it into the
database. Days already present are overwritten by imported days with the
same date; blocks that do not parse are skipped silently.`,
	Example: `  moodr import journal.txt
  moodr import ~/moodr-journal-2026-08-25.txt --db ./moodr.db`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	locale, _ := s.GetSetting("locale")
	entries, err := journal.ImportWithLocale(string(data), journal.NormalizeLocale(locale))
	if err != nil {
		return err
	}

	stored, err := s.ReplaceEntries(entries)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "✓ Imported %d entries from %s\n", stored, args[0])
	return nil
}
