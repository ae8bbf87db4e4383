package store

import (
	"strings"
	"time"

	"github.com/sadopc/moodr/internal/mood"
	"github.com/sadopc/moodr/internal/tagtext"
	"github.com/sadopc/moodr/internal/timeutil"
)

// Entry is one journal record: at most one per calendar day.
type Entry struct {
	Date      string // canonical YYYY-MM-DD, unique
	Mood      mood.Mood
	Diary     string // canonical tagged text
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Valid reports whether the entry carries information worth keeping: a set
// mood, or diary text that is more than tags and whitespace. Invalid entries
// are pruned on save and skipped on import and export.
func (e Entry) Valid() bool {
	return e.Mood.IsSet() || strings.TrimSpace(tagtext.Strip(e.Diary)) != ""
}

// Time parses the entry date. Stored dates are always canonical, so a parse
// failure yields the zero time.
func (e Entry) Time() time.Time {
	t, _ := timeutil.ParseISO(e.Date)
	return t
}

type Setting struct {
	Key   string
	Value string
}

// EntryFilter is used to filter journal entries in queries. From and To are
// inclusive ISO dates; empty strings leave that bound open.
type EntryFilter struct {
	From  string
	To    string
	Mood  *mood.Mood
	Limit int
}

// MoodCount is one row of the per-mood aggregation used by the stats view.
type MoodCount struct {
	Mood  mood.Mood
	Count int
}
