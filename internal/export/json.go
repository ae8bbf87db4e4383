package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/moodr/internal/mood"
	"github.com/sadopc/moodr/internal/store"
	"github.com/sadopc/moodr/internal/tagtext"
)

type jsonExport struct {
	ExportedAt string      `json:"exported_at"`
	Count      int         `json:"count"`
	Entries    []jsonEntry `json:"entries"`
}

type jsonEntry struct {
	Date  string `json:"date"`
	Mood  string `json:"mood"`
	Emoji string `json:"emoji"`
	Label string `json:"label"`
	Diary string `json:"diary,omitempty"`
	Text  string `json:"text,omitempty"`
}

func ToJSON(entries []store.Entry, labels map[mood.Mood]string, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(entries),
	}

	for _, e := range entries {
		export.Entries = append(export.Entries, jsonEntry{
			Date:  e.Date,
			Mood:  e.Mood.String(),
			Emoji: e.Mood.Emoji(),
			Label: moodLabel(e.Mood, labels),
			Diary: e.Diary,
			Text:  tagtext.Strip(e.Diary),
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
