package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/goodsign/monday"
	"github.com/sadopc/moodr/internal/export"
	"github.com/sadopc/moodr/internal/journal"
	"github.com/sadopc/moodr/internal/store"
)

// App is the root Bubble Tea model.
type App struct {
	store  *store.Store
	width  int
	height int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int
	importing     bool
	editorActive  bool

	calendar calendarModel
	year     yearModel
	stats    statsModel
	settings settingsModel
	editor   editorModel

	importInput textinput.Model
	help        help.Model
	status      string
	statusErr   bool
}

func NewApp(s *store.Store) App {
	h := help.New()
	h.ShowAll = false

	ti := textinput.New()
	ti.Placeholder = "~/journal.txt"
	ti.CharLimit = 256
	ti.Width = 48

	if accent, err := s.GetSetting("accent_color"); err == nil {
		applyAccent(accent)
	}

	return App{
		store:       s,
		activeView:  viewCalendar,
		calendar:    newCalendarModel(s),
		year:        newYearModel(s),
		stats:       newStatsModel(s),
		settings:    newSettingsModel(s),
		importInput: ti,
		help:        h,
	}
}

func (a App) Init() tea.Cmd {
	return a.calendar.Init()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.calendar.setSize(a.width, contentHeight)
		a.year.setSize(a.width, contentHeight)
		a.stats.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		a.editor.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		// Overlays capture input first.
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}
		if a.importing {
			return a.updateImportPrompt(msg)
		}
		if a.editorActive {
			var cmd tea.Cmd
			a.editor, cmd = a.editor.update(msg)
			return a, cmd
		}
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Import):
			a.importing = true
			a.importInput.SetValue("")
			return a, a.importInput.Focus()
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewCalendar
			return a, a.calendar.refresh()
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewYear
			return a, a.year.refresh()
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewStats
			return a, a.stats.refresh()
		case key.Matches(msg, keys.Tab4):
			a.activeView = viewSettings
			return a, a.settings.refresh()
		case key.Matches(msg, keys.Tab):
			if a.activeView == viewStats {
				// Stats uses tab to switch its range.
				return a.updateActiveView(msg)
			}
			a.activeView = (a.activeView + 1) % 4
			return a, a.refreshCurrentView()
		}

	case statusMsg:
		a.status = msg.text
		a.statusErr = msg.isError
		return a, nil

	case openEditorMsg:
		existing, _ := a.store.GetEntry(msg.date)
		labels, _ := a.store.MoodLabels()
		colors, _ := a.store.MoodColors()
		a.editor = newEditorModel(a.store, msg.date, existing, labels, colors)
		a.editor.setSize(a.width, a.height-4)
		a.editorActive = true
		return a, a.editor.Init()

	case editorSavedMsg:
		a.editorActive = false
		if msg.pruned {
			a.status = "Cleared " + msg.date + " (empty entry)"
		} else {
			a.status = "Saved " + msg.date
		}
		a.statusErr = false
		return a, a.calendar.refresh()

	case editorClosedMsg:
		a.editorActive = false
		return a, nil

	case entryDeletedMsg:
		a.status = "Cleared " + msg.date
		a.statusErr = false
		return a, a.calendar.refresh()

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.statusErr = false
		a.exportPicking = false
		return a, nil

	case importDoneMsg:
		a.status = fmt.Sprintf("Imported %d entries from %s", msg.count, msg.path)
		a.statusErr = false
		return a, a.refreshCurrentView()

	case wipeDoneMsg:
		a.status = fmt.Sprintf("Deleted %d entries", msg.count)
		a.statusErr = false
		return a, a.refreshCurrentView()
	}

	return a.updateActiveView(msg)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewCalendar:
		a.calendar, cmd = a.calendar.update(msg)
	case viewYear:
		a.year, cmd = a.year.update(msg)
	case viewStats:
		a.stats, cmd = a.stats.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	return a.activeView == viewSettings && a.settings.formActive
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewCalendar:
		return a.calendar.refresh()
	case viewYear:
		return a.year.refresh()
	case viewStats:
		return a.stats.refresh()
	case viewSettings:
		return a.settings.refresh()
	}
	return nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewCalendar:
		content = a.calendar.view()
	case viewYear:
		content = a.year.view()
	case viewStats:
		content = a.stats.view()
	case viewSettings:
		content = a.settings.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	// Overlays replace the tab content
	if a.exportPicking {
		content = a.renderExportPicker()
	}
	if a.importing {
		content = a.renderImportPrompt()
	}
	if a.editorActive {
		content = a.editor.view()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("moodr")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		if a.statusErr {
			status = errorStyle.Render(" " + a.status)
		} else {
			status = mutedStyle.Render(" " + a.status)
		}
	}

	left := footerStyle.Render(helpView)

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(status) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, status)
}

var exportFormats = []string{"Text journal", "CSV", "JSON"}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Format")
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range exportFormats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(exportFormats)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) renderImportPrompt() string {
	rows := []string{
		titleStyle.Render("Import Journal"),
		"",
		"Path to a journal text file:",
		a.importInput.View(),
		"",
		mutedStyle.Render("  enter: import  esc: cancel"),
	}
	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateImportPrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.importing = false
		a.importInput.Blur()
		return a, nil
	case "enter":
		path := strings.TrimSpace(a.importInput.Value())
		a.importing = false
		a.importInput.Blur()
		if path == "" {
			return a, nil
		}
		return a, a.doImport(path)
	}
	var cmd tea.Cmd
	a.importInput, cmd = a.importInput.Update(msg)
	return a, cmd
}

func (a App) locale() monday.Locale {
	name, _ := a.store.GetSetting("locale")
	return journal.NormalizeLocale(name)
}

func (a App) doExport(format int) tea.Cmd {
	return func() tea.Msg {
		entries, err := a.store.ListEntries(store.EntryFilter{})
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}

		home, _ := os.UserHomeDir()
		dateStr := time.Now().Format("2006-01-02")

		var path string
		switch format {
		case 0:
			valid := 0
			for _, e := range entries {
				if e.Valid() {
					valid++
				}
			}
			if valid == 0 {
				return statusMsg{text: journal.NoEntriesMessage, isError: true}
			}
			path = filepath.Join(home, fmt.Sprintf("moodr-journal-%s.txt", dateStr))
			if err := export.ToText(entries, a.locale(), path); err != nil {
				return statusMsg{text: fmt.Sprintf("Text error: %v", err), isError: true}
			}
		case 1:
			labels, _ := a.store.MoodLabels()
			path = filepath.Join(home, fmt.Sprintf("moodr-export-%s.csv", dateStr))
			if err := export.ToCSV(entries, labels, path); err != nil {
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
		default:
			labels, _ := a.store.MoodLabels()
			path = filepath.Join(home, fmt.Sprintf("moodr-export-%s.json", dateStr))
			if err := export.ToJSON(entries, labels, path); err != nil {
				return statusMsg{text: fmt.Sprintf("JSON error: %v", err), isError: true}
			}
		}

		return exportDoneMsg{path: path}
	}
}

func (a App) doImport(path string) tea.Cmd {
	return func() tea.Msg {
		if strings.HasPrefix(path, "~/") {
			if home, err := os.UserHomeDir(); err == nil {
				path = filepath.Join(home, path[2:])
			}
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Import error: %v", err), isError: true}
		}
		entries, err := journal.ImportWithLocale(string(data), a.locale())
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Import error: %v", err), isError: true}
		}
		count, err := a.store.ReplaceEntries(entries)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Import error: %v", err), isError: true}
		}
		return importDoneMsg{count: count, path: path}
	}
}
