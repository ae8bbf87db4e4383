// Package journal implements the plain-text codec for the whole mood
// journal: one block per entry, an emoji date header line followed by the
// tagged diary body, blocks separated by blank lines. The same format is
// read back by Import, tolerating minor header variance and foreign-locale
// month names.
package journal

import (
	"errors"
	"sort"
	"strings"

	"github.com/goodsign/monday"

	"github.com/sadopc/moodr/internal/store"
	"github.com/sadopc/moodr/internal/tagtext"
)

var (
	// ErrEmptyInput means Import was handed empty or whitespace-only text.
	ErrEmptyInput = errors.New("file is empty or contains no valid data")

	// ErrNoValidEntries means Import scanned the whole input without
	// recovering a single usable entry.
	ErrNoValidEntries = errors.New("no valid journal entries found")
)

// NoEntriesMessage is the document Export produces when there is nothing to
// export. It is a sentinel value, not an error: callers that write files
// should check for it and skip the write.
const NoEntriesMessage = "No entries to export."

const headerLayout = "January 2 2006, Monday"

// Export serializes entries with English month and weekday names.
func Export(entries []store.Entry) string {
	return ExportWithLocale(entries, monday.LocaleEnUS)
}

// ExportWithLocale serializes the journal to its text form: valid entries
// only, most recent first, one block per entry. Month and weekday names in
// the header follow the given display locale.
func ExportWithLocale(entries []store.Entry, locale monday.Locale) string {
	var valid []store.Entry
	for _, e := range entries {
		if e.Valid() {
			valid = append(valid, e)
		}
	}
	// ISO dates sort lexicographically, newest first on >.
	sort.Slice(valid, func(i, j int) bool { return valid[i].Date > valid[j].Date })

	var blocks []string
	for _, e := range valid {
		t := e.Time()
		if t.IsZero() {
			continue
		}
		header := e.Mood.Emoji() + " " + strings.ToUpper(monday.Format(t, headerLayout, locale))
		if diary := tagtext.Clean(e.Diary); diary != "" {
			blocks = append(blocks, header+"\n"+diary)
		} else {
			blocks = append(blocks, header)
		}
	}
	if len(blocks) == 0 {
		return NoEntriesMessage
	}
	return strings.Join(blocks, "\n\n")
}

// NormalizeLocale maps a configured locale name to a locale monday knows,
// falling back to en_US for anything unrecognized.
func NormalizeLocale(name string) monday.Locale {
	want := monday.Locale(name)
	for _, loc := range monday.ListLocales() {
		if loc == want {
			return loc
		}
	}
	return monday.LocaleEnUS
}
