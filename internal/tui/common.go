package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/sadopc/moodr/internal/mood"
	"github.com/sadopc/moodr/internal/tagtext"
)

// viewState represents the currently active view.
type viewState int

const (
	viewCalendar viewState = iota
	viewYear
	viewStats
	viewSettings
)

var viewNames = []string{"Calendar", "Year", "Stats", "Settings"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type openEditorMsg struct {
	date string
}

type editorSavedMsg struct {
	date   string
	pruned bool
}

type editorClosedMsg struct{}

type entryDeletedMsg struct {
	date string
}

type exportDoneMsg struct {
	path string
}

type importDoneMsg struct {
	count int
	path  string
}

type wipeDoneMsg struct {
	count int64
}

// --- Helpers ---

// renderTagged converts tagged diary text into styled terminal output,
// word-wrapped to the given width. Width 0 disables wrapping.
func renderTagged(s string, width int) string {
	var sb strings.Builder
	for _, seg := range tagtext.Segments(tagtext.Tokenize(s)) {
		st := lipgloss.NewStyle().
			Bold(seg.Styles.Has(tagtext.Bold)).
			Italic(seg.Styles.Has(tagtext.Italic)).
			Underline(seg.Styles.Has(tagtext.Underline))
		sb.WriteString(st.Render(seg.Text))
	}
	if width <= 0 {
		return sb.String()
	}
	return wordwrap.String(sb.String(), width)
}

// moodColor returns the configured color for a mood, falling back to the
// built-in palette.
func moodColor(m mood.Mood, colors map[mood.Mood]string) string {
	if c, ok := colors[m]; ok && c != "" {
		return c
	}
	return m.Color()
}

// moodName returns the configured label for a mood, falling back to the
// built-in one.
func moodName(m mood.Mood, labels map[mood.Mood]string) string {
	if l, ok := labels[m]; ok && l != "" {
		return l
	}
	return m.Label()
}

func moodDot(m mood.Mood, colors map[mood.Mood]string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(moodColor(m, colors))).Render("●")
}
