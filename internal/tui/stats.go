package tui

import (
	"fmt"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/moodr/internal/mood"
	"github.com/sadopc/moodr/internal/store"
	"github.com/sadopc/moodr/internal/timeutil"
)

type statsRange int

const (
	statsMonth statsRange = iota
	statsYear
	statsAll
)

type statsModel struct {
	store  *store.Store
	width  int
	height int

	mode   statsRange
	offset int // months or years back from now (0 = current)

	counts  []store.MoodCount
	labels  map[mood.Mood]string
	colors  map[mood.Mood]string
	total   int
	current int
	longest int

	chart barchart.Model
}

func newStatsModel(s *store.Store) statsModel {
	return statsModel{
		store: s,
		chart: barchart.New(60, 10),
	}
}

func (s *statsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type statsDataMsg struct {
	counts  []store.MoodCount
	labels  map[mood.Mood]string
	colors  map[mood.Mood]string
	current int
	longest int
}

func (s statsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		from, to := s.dateRange()
		counts, _ := s.store.MoodCounts(from, to)
		labels, _ := s.store.MoodLabels()
		colors, _ := s.store.MoodColors()
		dates, _ := s.store.EntryDates()
		current, longest := streaks(dates, timeutil.Today())
		return statsDataMsg{
			counts:  counts,
			labels:  labels,
			colors:  colors,
			current: current,
			longest: longest,
		}
	}
}

// dateRange returns the inclusive ISO bounds for the current mode and
// offset. All-time leaves both sides open.
func (s statsModel) dateRange() (string, string) {
	today := timeutil.Today()
	switch s.mode {
	case statsMonth:
		first := timeutil.Date(today.Year(), today.Month(), 1).AddDate(0, -s.offset, 0)
		last := first.AddDate(0, 1, -1)
		return timeutil.FormatISO(first), timeutil.FormatISO(last)
	case statsYear:
		year := today.Year() - s.offset
		return fmt.Sprintf("%04d-01-01", year), fmt.Sprintf("%04d-12-31", year)
	default:
		return "", ""
	}
}

func (s statsModel) update(msg tea.Msg) (statsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case statsDataMsg:
		s.counts = msg.counts
		s.labels = msg.labels
		s.colors = msg.colors
		s.current = msg.current
		s.longest = msg.longest
		s.total = 0
		for _, c := range s.counts {
			s.total += c.Count
		}
		s.buildChart()
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			if s.mode != statsAll {
				s.offset++
			}
			return s, s.refresh()
		case key.Matches(msg, keys.Right):
			if s.offset > 0 {
				s.offset--
			}
			return s, s.refresh()
		case key.Matches(msg, keys.Tab):
			s.mode = (s.mode + 1) % 3
			s.offset = 0
			return s, s.refresh()
		}
	}
	return s, nil
}

func (s *statsModel) buildChart() {
	chartWidth := s.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 10
	if s.height > 30 {
		chartHeight = 14
	}

	s.chart = barchart.New(chartWidth, chartHeight)

	byMood := make(map[mood.Mood]int, len(s.counts))
	for _, c := range s.counts {
		byMood[c.Mood] = c.Count
	}

	var bars []barchart.BarData
	for _, m := range mood.All() {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(moodColor(m, s.colors)))
		bars = append(bars, barchart.BarData{
			Label: m.Emoji(),
			Values: []barchart.BarValue{{
				Name:  moodName(m, s.labels),
				Value: float64(byMood[m]),
				Style: style,
			}},
		})
	}

	s.chart.PushAll(bars)
	s.chart.Draw()
}

func (s statsModel) view() string {
	w := s.width - 4

	monthTab := inactiveTabStyle.Render("Month")
	yearTab := inactiveTabStyle.Render("Year")
	allTab := inactiveTabStyle.Render("All time")
	switch s.mode {
	case statsMonth:
		monthTab = activeTabStyle.Render("Month")
	case statsYear:
		yearTab = activeTabStyle.Render("Year")
	default:
		allTab = activeTabStyle.Render("All time")
	}
	modeTabs := lipgloss.JoinHorizontal(lipgloss.Bottom, monthTab, yearTab, allTab)

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Stats"), "  ", modeTabs, "  ", mutedStyle.Render(s.rangeLabel()),
	)

	chartView := s.chart.View()
	summary := s.renderSummary()
	nav := mutedStyle.Render("  ←/→: navigate  tab: switch range")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, "", chartView, "", summary, "", nav),
	)
}

func (s statsModel) rangeLabel() string {
	switch s.mode {
	case statsMonth:
		from, _ := s.dateRange()
		t, err := timeutil.ParseISO(from)
		if err != nil {
			return from
		}
		return t.Format("January 2006")
	case statsYear:
		from, _ := s.dateRange()
		return from[:4]
	default:
		return "all time"
	}
}

func (s statsModel) renderSummary() string {
	if s.total == 0 {
		return mutedStyle.Render("  No entries in this range")
	}

	top, n := topMood(s.counts)
	rows := []string{
		fmt.Sprintf("  %s %d", mutedStyle.Render("Entries:"), s.total),
		fmt.Sprintf("  %s %s %s (%d)", mutedStyle.Render("Top mood:"), top.Emoji(), moodName(top, s.labels), n),
		fmt.Sprintf("  %s %s", mutedStyle.Render("Current streak:"), formatStreak(s.current)),
		fmt.Sprintf("  %s %s", mutedStyle.Render("Longest streak:"), formatStreak(s.longest)),
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func formatStreak(days int) string {
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}

// topMood returns the most frequent mood in the counts, preferring the
// first on ties.
func topMood(counts []store.MoodCount) (mood.Mood, int) {
	best := mood.Grey
	n := 0
	for _, c := range counts {
		if c.Count > n {
			best, n = c.Mood, c.Count
		}
	}
	return best, n
}

// streaks computes the running and longest consecutive-day runs over sorted
// ISO dates. The running streak must reach today or yesterday to count.
func streaks(dates []string, today time.Time) (current, longest int) {
	var days []time.Time
	for _, d := range dates {
		t, err := timeutil.ParseISO(d)
		if err != nil {
			continue
		}
		days = append(days, t)
	}
	if len(days) == 0 {
		return 0, 0
	}

	run := 1
	longest = 1
	for i := 1; i < len(days); i++ {
		if nextDay(days[i-1], days[i]) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	last := days[len(days)-1]
	if !sameDay(last, today) && !nextDay(last, today) {
		return 0, longest
	}
	current = 1
	for i := len(days) - 1; i > 0; i-- {
		if !nextDay(days[i-1], days[i]) {
			break
		}
		current++
	}
	return current, longest
}

// nextDay reports whether b is the calendar day after a.
func nextDay(a, b time.Time) bool {
	n := a.AddDate(0, 0, 1)
	return sameDay(n, b)
}
