package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/moodr/internal/mood"
	"github.com/sadopc/moodr/internal/store"
	"github.com/sadopc/moodr/internal/tagtext"
	"github.com/sadopc/moodr/internal/timeutil"
)

type editorModel struct {
	store  *store.Store
	width  int
	height int

	date   string
	mood   mood.Mood
	text   textarea.Model
	labels map[mood.Mood]string
	colors map[mood.Mood]string
}

func newEditorModel(s *store.Store, date string, existing *store.Entry, labels, colors map[mood.Mood]string) editorModel {
	ta := textarea.New()
	ta.Placeholder = "How was this day?"
	ta.CharLimit = 0
	ta.ShowLineNumbers = false
	ta.SetHeight(8)
	ta.Focus()

	m := mood.Grey
	if existing != nil {
		m = existing.Mood
		ta.SetValue(existing.Diary)
	}

	return editorModel{
		store:  s,
		date:   date,
		mood:   m,
		text:   ta,
		labels: labels,
		colors: colors,
	}
}

func (e editorModel) Init() tea.Cmd {
	return textarea.Blink
}

func (e *editorModel) setSize(w, h int) {
	e.width = w
	e.height = h
	e.text.SetWidth(max(20, w-10))
}

func (e editorModel) update(msg tea.Msg) (editorModel, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "esc":
			return e, func() tea.Msg { return editorClosedMsg{} }
		case "ctrl+s":
			return e, e.save()
		case "alt+b":
			return e.toggleStyle(tagtext.Bold), nil
		case "alt+i":
			return e.toggleStyle(tagtext.Italic), nil
		case "alt+u":
			return e.toggleStyle(tagtext.Underline), nil
		case "ctrl+up":
			e.mood = cycleMood(e.mood, 1)
			return e, nil
		case "ctrl+down":
			e.mood = cycleMood(e.mood, -1)
			return e, nil
		}
	}
	var cmd tea.Cmd
	e.text, cmd = e.text.Update(msg)
	return e, cmd
}

// toggleStyle inserts an open or close tag at the cursor, depending on
// whether the style is active there.
func (e editorModel) toggleStyle(st tagtext.Style) editorModel {
	if tagtext.ActiveAt(e.text.Value(), e.cursorOffset()).Has(st) {
		e.text.InsertString(st.CloseTag())
	} else {
		e.text.InsertString(st.OpenTag())
	}
	return e
}

// cursorOffset returns the byte offset of the cursor within the textarea
// value.
func (e editorModel) cursorOffset() int {
	lines := strings.Split(e.text.Value(), "\n")
	row := e.text.Line()
	if row > len(lines)-1 {
		row = len(lines) - 1
	}

	off := 0
	for i := 0; i < row; i++ {
		off += len(lines[i]) + 1
	}

	info := e.text.LineInfo()
	col := info.StartColumn + info.ColumnOffset
	runes := []rune(lines[row])
	if col > len(runes) {
		col = len(runes)
	}
	return off + len(string(runes[:col]))
}

func (e editorModel) save() tea.Cmd {
	date, m, diary := e.date, e.mood, e.text.Value()
	return func() tea.Msg {
		entry, err := e.store.SaveEntry(date, m, diary)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Save error: %v", err), isError: true}
		}
		return editorSavedMsg{date: date, pruned: entry == nil}
	}
}

func cycleMood(m mood.Mood, delta int) mood.Mood {
	all := mood.All()
	n := len(all)
	return all[((int(m)+delta)%n+n)%n]
}

func (e editorModel) view() string {
	w := e.width - 4
	if w < 24 {
		w = 24
	}

	title := titleStyle.Render("Journal " + e.prettyDate())

	rows := []string{
		title,
		"",
		e.renderMoodRow(),
		"",
		e.text.View(),
		e.renderStyleRow(),
	}

	if preview := tagtext.Clean(e.text.Value()); tagtext.Strip(preview) != "" {
		rows = append(rows,
			"",
			subtitleStyle.Render("Preview"),
			renderTagged(preview, w-6),
		)
	}

	rows = append(rows,
		"",
		mutedStyle.Render("  ctrl+s: save  esc: cancel  alt+b/i/u: style  ctrl+↑/↓: mood"),
	)

	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (e editorModel) renderMoodRow() string {
	var cells []string
	for _, m := range mood.All() {
		if m == e.mood {
			cells = append(cells, selectedItemStyle.Render("["+m.Emoji()+"]"))
		} else {
			cells = append(cells, " "+m.Emoji()+" ")
		}
	}
	label := lipgloss.NewStyle().
		Foreground(lipgloss.Color(moodColor(e.mood, e.colors))).
		Render(moodName(e.mood, e.labels))
	return strings.Join(cells, "") + "  " + label
}

// renderStyleRow lights up the formats active at the cursor, so the writer
// can see what an alt+b/i/u press would toggle.
func (e editorModel) renderStyleRow() string {
	active := tagtext.ActiveAt(e.text.Value(), e.cursorOffset())
	var cells []string
	for _, st := range tagtext.Styles() {
		letter := strings.ToUpper(st.String())
		if active.Has(st) {
			cells = append(cells, highlightStyle.Render(letter))
		} else {
			cells = append(cells, mutedStyle.Render(letter))
		}
	}
	return "  " + strings.Join(cells, " ")
}

func (e editorModel) prettyDate() string {
	t, err := timeutil.ParseISO(e.date)
	if err != nil {
		return e.date
	}
	return t.Format("Monday, January 2 2006")
}
