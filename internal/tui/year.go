package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/moodr/internal/mood"
	"github.com/sadopc/moodr/internal/store"
	"github.com/sadopc/moodr/internal/tagtext"
	"github.com/sadopc/moodr/internal/timeutil"
)

// dayRuler marks day-of-month columns above the pixel grid. One character
// per day, 31 wide.
const dayRuler = "1   5    10   15   20   25   30"

type yearModel struct {
	store  *store.Store
	width  int
	height int

	year    int
	entries map[string]store.Entry
	counts  []store.MoodCount
	labels  map[mood.Mood]string
	colors  map[mood.Mood]string
}

func newYearModel(s *store.Store) yearModel {
	return yearModel{
		store: s,
		year:  timeutil.Today().Year(),
	}
}

func (y *yearModel) setSize(w, h int) {
	y.width = w
	y.height = h
}

type yearDataMsg struct {
	entries map[string]store.Entry
	counts  []store.MoodCount
	labels  map[mood.Mood]string
	colors  map[mood.Mood]string
}

func (y yearModel) refresh() tea.Cmd {
	return func() tea.Msg {
		from := fmt.Sprintf("%04d-01-01", y.year)
		to := fmt.Sprintf("%04d-12-31", y.year)

		list, _ := y.store.ListEntries(store.EntryFilter{From: from, To: to})
		entries := make(map[string]store.Entry, len(list))
		for _, e := range list {
			entries[e.Date] = e
		}

		counts, _ := y.store.MoodCounts(from, to)
		labels, _ := y.store.MoodLabels()
		colors, _ := y.store.MoodColors()
		return yearDataMsg{entries: entries, counts: counts, labels: labels, colors: colors}
	}
}

func (y yearModel) update(msg tea.Msg) (yearModel, tea.Cmd) {
	switch msg := msg.(type) {
	case yearDataMsg:
		y.entries = msg.entries
		y.counts = msg.counts
		y.labels = msg.labels
		y.colors = msg.colors
		return y, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left), key.Matches(msg, keys.PrevMonth):
			y.year--
			return y, y.refresh()
		case key.Matches(msg, keys.Right), key.Matches(msg, keys.NextMonth):
			y.year++
			return y, y.refresh()
		case key.Matches(msg, keys.Today):
			y.year = timeutil.Today().Year()
			return y, y.refresh()
		}
	}
	return y, nil
}

func (y yearModel) view() string {
	w := y.width - 4

	title := titleStyle.Render(fmt.Sprintf("%d in pixels", y.year))

	var lines []string
	lines = append(lines, "     "+mutedStyle.Render(dayRuler))
	for m := time.January; m <= time.December; m++ {
		lines = append(lines, y.monthRow(m))
	}
	grid := strings.Join(lines, "\n")

	summary := y.renderSummary()
	nav := mutedStyle.Render("  ←/→ [/]: year  t: today")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, "", grid, "", summary, "", nav),
	)
}

func (y yearModel) monthRow(m time.Month) string {
	var cells strings.Builder
	for day := 1; day <= 31; day++ {
		cells.WriteString(y.dayCell(m, day))
	}
	return fmt.Sprintf("%-4s %s", m.String()[:3], cells.String())
}

// dayCell renders one pixel: a full-color block for days with a diary, a
// dimmed block for mood-only days, a dot for empty days.
func (y yearModel) dayCell(m time.Month, day int) string {
	if day > timeutil.DaysIn(y.year, m) {
		return " "
	}
	date := fmt.Sprintf("%04d-%02d-%02d", y.year, int(m), day)
	e, ok := y.entries[date]
	if !ok {
		return mutedStyle.Render("·")
	}
	hex := moodColor(e.Mood, y.colors)
	if tagtext.Strip(e.Diary) == "" {
		hex = dimmed(hex, 0.45)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("█")
}

func (y yearModel) renderSummary() string {
	if len(y.counts) == 0 {
		return mutedStyle.Render("  No entries this year")
	}

	total := 0
	var items []string
	for _, c := range y.counts {
		total += c.Count
		items = append(items, fmt.Sprintf("%s %s ×%d", moodDot(c.Mood, y.colors), moodName(c.Mood, y.labels), c.Count))
	}
	return "  " + highlightStyle.Render(fmt.Sprintf("%d days logged", total)) + "   " + strings.Join(items, "  ")
}
