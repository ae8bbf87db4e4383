package mood

// Mood is one of the seven mood colors a day can be marked with. Grey is the
// zero value and means "not set".
type Mood int

const (
	Grey Mood = iota
	Red
	Orange
	Yellow
	Green
	Blue
	Purple
)

type info struct {
	Name  string
	Emoji string
	Label string
	Color string // default hex, overridable per user settings
}

var table = [...]info{
	Grey:   {Name: "grey", Emoji: "⚪", Label: "neutral", Color: "#9e9e9e"},
	Red:    {Name: "red", Emoji: "🔴", Label: "awful", Color: "#e53935"},
	Orange: {Name: "orange", Emoji: "🟠", Label: "bad", Color: "#fb8c00"},
	Yellow: {Name: "yellow", Emoji: "🟡", Label: "okay", Color: "#fdd835"},
	Green:  {Name: "green", Emoji: "🟢", Label: "good", Color: "#43a047"},
	Blue:   {Name: "blue", Emoji: "🔵", Label: "great", Color: "#1e88e5"},
	Purple: {Name: "purple", Emoji: "🟣", Label: "amazing", Color: "#8e24aa"},
}

// All returns the moods in canonical order, grey first.
func All() []Mood {
	out := make([]Mood, len(table))
	for i := range table {
		out[i] = Mood(i)
	}
	return out
}

func (m Mood) valid() bool {
	return m >= Grey && m <= Purple
}

func (m Mood) String() string {
	if !m.valid() {
		return table[Grey].Name
	}
	return table[m].Name
}

func (m Mood) Emoji() string {
	if !m.valid() {
		return table[Grey].Emoji
	}
	return table[m].Emoji
}

// Label returns the built-in display word for the mood. User overrides live
// in the settings table, not here.
func (m Mood) Label() string {
	if !m.valid() {
		return table[Grey].Label
	}
	return table[m].Label
}

func (m Mood) Color() string {
	if !m.valid() {
		return table[Grey].Color
	}
	return table[m].Color
}

// IsSet reports whether the mood carries information, i.e. is not grey.
func (m Mood) IsSet() bool {
	return m.valid() && m != Grey
}

// FromName maps a stored mood name back to its Mood. Unknown names report
// false so callers can decide between erroring and defaulting to grey.
func FromName(name string) (Mood, bool) {
	for i := range table {
		if table[i].Name == name {
			return Mood(i), true
		}
	}
	return Grey, false
}

// FromEmoji maps one of the seven circle emoji to its Mood.
func FromEmoji(e string) (Mood, bool) {
	for i := range table {
		if table[i].Emoji == e {
			return Mood(i), true
		}
	}
	return Grey, false
}
