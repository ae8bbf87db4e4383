package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/sadopc/moodr/internal/mood"
	"github.com/sadopc/moodr/internal/store"
	"github.com/sadopc/moodr/internal/tagtext"
)

// ToCSV writes entries as CSV in the order given. labels supplies per-mood
// display words; moods missing from it fall back to the built-in label.
func ToCSV(entries []store.Entry, labels map[mood.Mood]string, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"Date", "Mood", "Label", "Diary", "Text"}); err != nil {
		return err
	}

	for _, e := range entries {
		row := []string{
			e.Date,
			e.Mood.String(),
			moodLabel(e.Mood, labels),
			e.Diary,
			tagtext.Strip(e.Diary),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func moodLabel(m mood.Mood, labels map[mood.Mood]string) string {
	if l, ok := labels[m]; ok && l != "" {
		return l
	}
	return m.Label()
}
