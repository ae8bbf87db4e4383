package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/goodsign/monday"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/sadopc/moodr/internal/mood"
	"github.com/sadopc/moodr/internal/store"
)

type settingsModel struct {
	store  *store.Store
	width  int
	height int

	settings   []store.Setting
	formActive bool
	form       *huh.Form
	formType   string // "edit", "wipe"

	// Form values as pointers (survive value copies)
	weekStart   *string
	locale      *string
	accent      *string
	labelVals   map[mood.Mood]*string
	colorVals   map[mood.Mood]*string
	confirmWipe *bool
}

func newSettingsModel(s *store.Store) settingsModel {
	ws, loc, acc := "", "", ""
	wipe := false

	labelVals := make(map[mood.Mood]*string, len(mood.All()))
	colorVals := make(map[mood.Mood]*string, len(mood.All()))
	for _, m := range mood.All() {
		lv, cv := "", ""
		labelVals[m] = &lv
		colorVals[m] = &cv
	}

	return settingsModel{
		store:       s,
		weekStart:   &ws,
		locale:      &loc,
		accent:      &acc,
		labelVals:   labelVals,
		colorVals:   colorVals,
		confirmWipe: &wipe,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type settingsDataMsg struct {
	settings []store.Setting
}

func (s settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		settings, _ := s.store.GetAllSettings()
		return settingsDataMsg{settings: settings}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		s.settings = msg.settings
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter):
			return s.showEditForm()
		case key.Matches(msg, keys.Delete):
			return s.showWipeForm()
		}
	}
	return s, nil
}

func (s settingsModel) showEditForm() (settingsModel, tea.Cmd) {
	// Load current values
	*s.weekStart = s.getVal("week_start", "monday")
	*s.locale = s.getVal("locale", "en_US")
	*s.accent = s.getVal("accent_color", string(colorPrimary))

	labels, _ := s.store.MoodLabels()
	colors, _ := s.store.MoodColors()
	for _, m := range mood.All() {
		*s.labelVals[m] = moodName(m, labels)
		*s.colorVals[m] = moodColor(m, colors)
	}

	localeOptions := make([]huh.Option[string], 0, len(monday.ListLocales()))
	for _, loc := range monday.ListLocales() {
		localeOptions = append(localeOptions, huh.NewOption(string(loc), string(loc)))
	}

	var labelFields []huh.Field
	var colorFields []huh.Field
	for _, m := range mood.All() {
		labelFields = append(labelFields,
			huh.NewInput().Title(m.Emoji()+" label").Value(s.labelVals[m]))
		colorFields = append(colorFields,
			huh.NewInput().Title(m.Emoji()+" color").Validate(validHex).Value(s.colorVals[m]))
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Week starts on").
				Options(
					huh.NewOption("Monday", "monday"),
					huh.NewOption("Sunday", "sunday"),
				).Value(s.weekStart),
			huh.NewSelect[string]().Title("Journal locale").
				Options(localeOptions...).Value(s.locale),
			huh.NewInput().Title("Accent color").Validate(validHex).Value(s.accent),
		).Title("General"),
		huh.NewGroup(labelFields...).Title("Mood labels"),
		huh.NewGroup(colorFields...).Title("Mood colors"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formType = "edit"
	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) showWipeForm() (settingsModel, tea.Cmd) {
	*s.confirmWipe = false

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Delete every journal entry?").
				Description("This cannot be undone.").
				Affirmative("Delete").
				Negative("Keep").
				Value(s.confirmWipe),
		),
	).WithShowHelp(true)

	s.formType = "wipe"
	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		switch s.formType {
		case "wipe":
			if !*s.confirmWipe {
				return s, nil
			}
			return s, func() tea.Msg {
				count, err := s.store.DeleteAll()
				if err != nil {
					return statusMsg{text: fmt.Sprintf("Delete error: %v", err), isError: true}
				}
				return wipeDoneMsg{count: count}
			}
		default:
			s.saveSettings()
			return s, s.refresh()
		}
	}

	return s, cmd
}

func (s settingsModel) saveSettings() {
	s.store.SetSetting("week_start", *s.weekStart)
	s.store.SetSetting("locale", *s.locale)
	s.store.SetSetting("accent_color", *s.accent)
	applyAccent(*s.accent)

	for _, m := range mood.All() {
		if v := strings.TrimSpace(*s.labelVals[m]); v != "" {
			s.store.SetMoodLabel(m, v)
		}
		if v := strings.TrimSpace(*s.colorVals[m]); v != "" {
			s.store.SetMoodColor(m, v)
		}
	}
}

func (s settingsModel) getVal(k, fallback string) string {
	v, err := s.store.GetSetting(k)
	if err != nil {
		return fallback
	}
	return v
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Settings")
		if s.formType == "wipe" {
			title = titleStyle.Render("Delete All Data")
		}
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	title := titleStyle.Render("Settings")
	hint := mutedStyle.Render("enter: edit  d: delete all data")

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for _, setting := range s.settings {
		label := lipgloss.NewStyle().Width(24).Render(setting.Key)
		value := highlightStyle.Render(formatSettingValue(setting.Key, setting.Value))
		rows = append(rows, fmt.Sprintf("  %s %s", label, value))
	}

	rows = append(rows, "")
	rows = append(rows, hint)

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func formatSettingValue(k, v string) string {
	if k == "accent_color" || strings.HasPrefix(k, "mood_color_") {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(v)).Render("●")
		return v + " " + dot
	}
	return v
}

func validHex(s string) error {
	if _, err := colorful.Hex(s); err != nil {
		return fmt.Errorf("use #RRGGBB form")
	}
	return nil
}
