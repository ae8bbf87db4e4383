package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sadopc/moodr/internal/export"
	"github.com/sadopc/moodr/internal/journal"
	"github.com/sadopc/moodr/internal/store"
	"github.com/sadopc/moodr/internal/timeutil"
)

var flagFormat string

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write the journal to a file or stdout",
	Long: `Export writes the journal in one of three formats.

The text format is the journal's own interchange form: one block per day,
an emoji date header followed by the diary text, readable back by
"moodr import". It goes to stdout unless a file is given. CSV and JSON
are data dumps for spreadsheets and scripts; without a file argument they
land in the export directory under a date-stamped name.`,
	Example: `  moodr export
  moodr export journal.txt
  moodr export --format csv moods.csv
  moodr export --format json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&flagFormat, "format", "txt", "Output format: txt, csv or json")
}

func runExport(cmd *cobra.Command, args []string) error {
	s, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	entries, err := s.ListEntries(store.EntryFilter{})
	if err != nil {
		return err
	}

	var path string
	if len(args) == 1 {
		path = args[0]
	}

	switch flagFormat {
	case "txt":
		return exportText(s, entries, path)
	case "csv", "json":
		labels, err := s.MoodLabels()
		if err != nil {
			return err
		}
		if path == "" {
			path = stampedPath(cfg.ResolveExportDir(), flagFormat)
		}
		if flagFormat == "csv" {
			err = export.ToCSV(entries, labels, path)
		} else {
			err = export.ToJSON(entries, labels, path)
		}
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format %q (want txt, csv or json)", flagFormat)
	}

	fmt.Fprintf(os.Stdout, "✓ Written: %s\n", path)
	return nil
}

// exportText prints the journal document to stdout, or writes it to path
// when one was given. With nothing to export the sentinel message is printed
// and no file is touched.
func exportText(s *store.Store, entries []store.Entry, path string) error {
	locale, _ := s.GetSetting("locale")
	doc := journal.ExportWithLocale(entries, journal.NormalizeLocale(locale))

	if path == "" || doc == journal.NoEntriesMessage {
		fmt.Fprintln(os.Stdout, doc)
		return nil
	}
	if err := os.WriteFile(path, []byte(doc+"\n"), 0o644); err != nil {
		return fmt.Errorf("write journal: %w", err)
	}
	fmt.Fprintf(os.Stdout, "✓ Written: %s\n", path)
	return nil
}

func stampedPath(dir, ext string) string {
	name := fmt.Sprintf("moodr-export-%s.%s", timeutil.FormatISO(timeutil.Today()), ext)
	return filepath.Join(dir, name)
}
