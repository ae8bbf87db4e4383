package journal

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/goodsign/monday"

	"github.com/sadopc/moodr/internal/mood"
	"github.com/sadopc/moodr/internal/store"
	"github.com/sadopc/moodr/internal/tagtext"
	"github.com/sadopc/moodr/internal/timeutil"
)

// A header line is exactly: one known mood emoji, a month word, a day, a
// 4-digit year, a comma, a weekday word. The weekday is validated for shape
// only; its value is rediscovered from the date.
var headerRe = regexp.MustCompile(buildHeaderPattern())

func buildHeaderPattern() string {
	emojis := make([]string, 0, 7)
	for _, m := range mood.All() {
		emojis = append(emojis, regexp.QuoteMeta(m.Emoji()))
	}
	return `^(` + strings.Join(emojis, "|") + `)\s+(\p{L}+)\s+(\d{1,2})\s+(\d{4})\s*,\s*(\p{L}+)\s*$`
}

// block accumulates one header line plus the body lines that follow it.
type block struct {
	mood       mood.Mood
	monthToken string
	day        int
	year       int
	body       []string
}

// Import parses journal text back into entries, sweeping every known locale
// for month-name fallback.
func Import(text string) ([]store.Entry, error) {
	return ImportWithLocale(text, monday.LocaleEnUS)
}

// ImportWithLocale parses journal text back into entries. Blocks with an
// unresolvable month name, an impossible calendar date, or no content at all
// are skipped silently; the error cases are an empty input and an input that
// yields zero entries. Duplicate dates are all returned in file order; merge
// policy belongs to the caller.
//
// Month names resolve against English first, then the preferred locale,
// then every locale monday knows.
func ImportWithLocale(text string, preferred monday.Locale) ([]store.Entry, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}

	var entries []store.Entry
	var cur *block

	flush := func() {
		if cur == nil {
			return
		}
		if e, ok := resolveBlock(cur, preferred); ok {
			entries = append(entries, e)
		}
		cur = nil
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSuffix(raw, "\r")
		if m := headerRe.FindStringSubmatch(line); m != nil {
			flush()
			day, _ := strconv.Atoi(m[3])
			year, _ := strconv.Atoi(m[4])
			em, _ := mood.FromEmoji(m[1])
			cur = &block{mood: em, monthToken: m[2], day: day, year: year}
			continue
		}
		// Body lines, including blank ones, belong to the open block.
		// Text before the first header has no date and is dropped.
		if cur != nil {
			cur.body = append(cur.body, line)
		}
	}
	flush()

	if len(entries) == 0 {
		return nil, ErrNoValidEntries
	}
	return entries, nil
}

func resolveBlock(b *block, preferred monday.Locale) (store.Entry, bool) {
	month, ok := resolveMonth(b.monthToken, preferred)
	if !ok {
		return store.Entry{}, false
	}
	if !timeutil.ValidYMD(b.year, month, b.day) {
		return store.Entry{}, false
	}

	diary := tagtext.Clean(strings.TrimSpace(strings.Join(b.body, "\n")))
	e := store.Entry{
		Date:  timeutil.FormatISO(timeutil.Date(b.year, month, b.day)),
		Mood:  b.mood,
		Diary: diary,
	}
	return e, e.Valid()
}

// resolveMonth maps a month word to its time.Month: exact case-insensitive
// English first, then localized long month names.
func resolveMonth(token string, preferred monday.Locale) (time.Month, bool) {
	for m := time.January; m <= time.December; m++ {
		if strings.EqualFold(m.String(), token) {
			return m, true
		}
	}

	locales := make([]monday.Locale, 0, 1+len(monday.ListLocales()))
	locales = append(locales, preferred)
	for _, loc := range monday.ListLocales() {
		if loc != preferred {
			locales = append(locales, loc)
		}
	}
	for _, loc := range locales {
		if m, ok := monthInLocale(token, loc); ok {
			return m, true
		}
	}
	return 0, false
}

// monthInLocale tries a single locale's long month names. Headers are
// uppercased on export and the name tables are not, so the token is retried
// in its original, lowercased and title-cased spellings.
func monthInLocale(token string, loc monday.Locale) (time.Month, bool) {
	for _, candidate := range []string{token, strings.ToLower(token), titleCase(token)} {
		if t, err := monday.ParseInLocation("January", candidate, time.UTC, loc); err == nil {
			return t.Month(), true
		}
	}
	return 0, false
}

func titleCase(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
