package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/sadopc/moodr/internal/mood"
	"github.com/sadopc/moodr/internal/store"
	"github.com/sadopc/moodr/internal/tagtext"
)

var (
	flagLimit int
	flagMood  string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print journal entries as a table",
	Example: `  moodr list
  moodr list --limit 10
  moodr list --mood blue`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().IntVar(&flagLimit, "limit", 0, "Show at most N entries (0 = all)")
	listCmd.Flags().StringVar(&flagMood, "mood", "", "Show only this mood (name, e.g. blue)")
}

// moodPalette maps each mood to the nearest basic terminal color. Hex colors
// from settings stay in the UI; plain command output sticks to the 16-color
// set so it survives any terminal.
var moodPalette = map[mood.Mood]*color.Color{
	mood.Grey:   color.New(color.Faint),
	mood.Red:    color.New(color.FgRed),
	mood.Orange: color.New(color.FgYellow),
	mood.Yellow: color.New(color.FgHiYellow),
	mood.Green:  color.New(color.FgGreen),
	mood.Blue:   color.New(color.FgBlue),
	mood.Purple: color.New(color.FgMagenta),
}

func runList(cmd *cobra.Command, args []string) error {
	filter := store.EntryFilter{Limit: flagLimit}
	if flagMood != "" {
		m, ok := mood.FromName(flagMood)
		if !ok {
			return fmt.Errorf("unknown mood %q", flagMood)
		}
		filter.Mood = &m
	}

	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	entries, err := s.ListEntries(filter)
	if err != nil {
		return err
	}
	labels, err := s.MoodLabels()
	if err != nil {
		return err
	}

	title := color.New(color.Bold, color.Underline)
	switch len(entries) {
	case 1:
		_, _ = title.Println("1 entry")
	default:
		_, _ = title.Printf("%d entries\n", len(entries))
	}

	if len(entries) == 0 {
		faint := color.New(color.Faint, color.Italic)
		_, _ = faint.Println(" none")
		return nil
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60

	for _, e := range entries {
		c := moodPalette[e.Mood]
		tbl.AddRow(e.Date, e.Mood.Emoji(), c.Sprint(labels[e.Mood]), diaryPreview(e.Diary))
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
	return nil
}

// diaryPreview flattens the diary to its first line of plain text.
func diaryPreview(diary string) string {
	text := strings.TrimSpace(tagtext.Strip(diary))
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i] + "…"
	}
	return text
}
