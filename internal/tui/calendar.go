package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/goodsign/monday"
	"github.com/sadopc/moodr/internal/journal"
	"github.com/sadopc/moodr/internal/mood"
	"github.com/sadopc/moodr/internal/store"
	"github.com/sadopc/moodr/internal/tagtext"
	"github.com/sadopc/moodr/internal/timeutil"
)

type calendarModel struct {
	store  *store.Store
	width  int
	height int

	year     int
	month    time.Month
	selected int // day of month

	entries   map[int]store.Entry
	weekStart time.Weekday
	labels    map[mood.Mood]string
	colors    map[mood.Mood]string
	locale    monday.Locale
}

func newCalendarModel(s *store.Store) calendarModel {
	today := timeutil.Today()
	return calendarModel{
		store:    s,
		year:     today.Year(),
		month:    today.Month(),
		selected: today.Day(),
		locale:   monday.LocaleEnUS,
	}
}

func (c calendarModel) Init() tea.Cmd {
	return c.refresh()
}

func (c *calendarModel) setSize(w, h int) {
	c.width = w
	c.height = h
}

type calendarDataMsg struct {
	entries   map[int]store.Entry
	weekStart time.Weekday
	labels    map[mood.Mood]string
	colors    map[mood.Mood]string
	locale    monday.Locale
}

func (c calendarModel) refresh() tea.Cmd {
	return func() tea.Msg {
		entries, _ := c.store.MonthEntries(c.year, c.month)
		labels, _ := c.store.MoodLabels()
		colors, _ := c.store.MoodColors()
		name, _ := c.store.GetSetting("locale")
		return calendarDataMsg{
			entries:   entries,
			weekStart: c.store.WeekStart(),
			labels:    labels,
			colors:    colors,
			locale:    journal.NormalizeLocale(name),
		}
	}
}

func (c calendarModel) update(msg tea.Msg) (calendarModel, tea.Cmd) {
	switch msg := msg.(type) {
	case calendarDataMsg:
		c.entries = msg.entries
		c.weekStart = msg.weekStart
		c.labels = msg.labels
		c.colors = msg.colors
		c.locale = msg.locale
		return c, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			if c.selected > 1 {
				c.selected--
			}
		case key.Matches(msg, keys.Right):
			if c.selected < timeutil.DaysIn(c.year, c.month) {
				c.selected++
			}
		case key.Matches(msg, keys.Up):
			if c.selected > 7 {
				c.selected -= 7
			}
		case key.Matches(msg, keys.Down):
			if c.selected+7 <= timeutil.DaysIn(c.year, c.month) {
				c.selected += 7
			}
		case key.Matches(msg, keys.PrevMonth):
			return c.shiftMonth(-1)
		case key.Matches(msg, keys.NextMonth):
			return c.shiftMonth(1)
		case key.Matches(msg, keys.Today):
			today := timeutil.Today()
			c.year, c.month, c.selected = today.Year(), today.Month(), today.Day()
			return c, c.refresh()
		case key.Matches(msg, keys.Enter):
			if timeutil.IsFuture(timeutil.Date(c.year, c.month, c.selected)) {
				return c, func() tea.Msg {
					return statusMsg{text: "Cannot journal a future day", isError: true}
				}
			}
			date := c.selectedDate()
			return c, func() tea.Msg { return openEditorMsg{date: date} }
		case key.Matches(msg, keys.Delete):
			if _, ok := c.entries[c.selected]; !ok {
				return c, nil
			}
			date := c.selectedDate()
			return c, func() tea.Msg {
				if err := c.store.DeleteEntry(date); err != nil {
					return statusMsg{text: fmt.Sprintf("Delete error: %v", err), isError: true}
				}
				return entryDeletedMsg{date: date}
			}
		}
	}
	return c, nil
}

func (c calendarModel) shiftMonth(delta int) (calendarModel, tea.Cmd) {
	t := timeutil.Date(c.year, c.month, 1).AddDate(0, delta, 0)
	c.year, c.month = t.Year(), t.Month()
	if days := timeutil.DaysIn(c.year, c.month); c.selected > days {
		c.selected = days
	}
	return c, c.refresh()
}

func (c calendarModel) selectedDate() string {
	return fmt.Sprintf("%04d-%02d-%02d", c.year, int(c.month), c.selected)
}

func (c calendarModel) view() string {
	if c.width < 20 {
		return "Terminal too small"
	}

	grid := activePanelStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(c.monthTitle()),
		"",
		c.renderGrid(),
	))
	left := lipgloss.JoinVertical(lipgloss.Left, grid, c.renderLegend())

	hint := mutedStyle.Render("  enter: edit  d: clear  t: today  [/]: month")

	previewWidth := c.width - lipgloss.Width(left) - 6
	if previewWidth >= 30 {
		main := lipgloss.JoinHorizontal(lipgloss.Top, left, " ", c.renderPreview(previewWidth))
		return lipgloss.JoinVertical(lipgloss.Left, main, hint)
	}
	return lipgloss.JoinVertical(lipgloss.Left, left, c.renderPreview(c.width-4), hint)
}

func (c calendarModel) monthTitle() string {
	first := timeutil.Date(c.year, c.month, 1)
	return monday.Format(first, "January 2006", c.locale)
}

func (c calendarModel) renderGrid() string {
	first := timeutil.Date(c.year, c.month, 1)
	offset := leadingBlanks(first.Weekday(), c.weekStart)
	days := timeutil.DaysIn(c.year, c.month)
	today := timeutil.Today()

	lines := []string{mutedStyle.Render(weekdayHeader(c.weekStart))}

	rows := (offset + days + 6) / 7
	for row := 0; row < rows; row++ {
		var cells []string
		for col := 0; col < 7; col++ {
			day := row*7 + col - offset + 1
			if day < 1 || day > days {
				cells = append(cells, "  ")
				continue
			}
			cells = append(cells, c.renderDay(day, today))
		}
		lines = append(lines, strings.Join(cells, " "))
	}
	return strings.Join(lines, "\n")
}

func (c calendarModel) renderDay(day int, today time.Time) string {
	date := timeutil.Date(c.year, c.month, day)

	style := normalItemStyle
	if e, ok := c.entries[day]; ok {
		style = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(moodColor(e.Mood, c.colors)))
	} else if timeutil.IsFuture(date) {
		style = mutedStyle
	}
	if sameDay(date, today) {
		style = style.Underline(true)
	}
	if day == c.selected {
		style = style.Reverse(true)
	}
	return style.Render(fmt.Sprintf("%2d", day))
}

func (c calendarModel) renderLegend() string {
	var items []string
	for _, m := range mood.All() {
		items = append(items, fmt.Sprintf("%s %s", moodDot(m, c.colors), moodName(m, c.labels)))
	}
	return " " + mutedStyle.Render(strings.Join(items, "  "))
}

func (c calendarModel) renderPreview(w int) string {
	date := c.selectedDate()
	e, ok := c.entries[c.selected]
	if !ok {
		hint := "Press enter to journal this day"
		if timeutil.IsFuture(timeutil.Date(c.year, c.month, c.selected)) {
			hint = "This day has not happened yet"
		}
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			subtitleStyle.Render(c.prettyDate(date)),
			"",
			mutedStyle.Render(hint),
		))
	}

	badge := lipgloss.NewStyle().
		Foreground(lipgloss.Color(moodColor(e.Mood, c.colors))).
		Render(moodName(e.Mood, c.labels))
	header := fmt.Sprintf("%s %s  %s", e.Mood.Emoji(), titleStyle.Render(c.prettyDate(date)), badge)

	rows := []string{header}
	if tagtext.Strip(e.Diary) != "" {
		rows = append(rows, "", renderTagged(e.Diary, w-6))
	}
	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (c calendarModel) prettyDate(date string) string {
	t, err := timeutil.ParseISO(date)
	if err != nil {
		return date
	}
	return monday.Format(t, "Monday, January 2 2006", c.locale)
}

// leadingBlanks returns how many empty cells precede day 1 in the grid for
// the configured first day of the week.
func leadingBlanks(first, weekStart time.Weekday) int {
	return (int(first) - int(weekStart) + 7) % 7
}

func weekdayHeader(weekStart time.Weekday) string {
	names := [7]string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}
	cells := make([]string, 7)
	for i := range cells {
		cells[i] = names[(int(weekStart)+i)%7]
	}
	return strings.Join(cells, " ")
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
