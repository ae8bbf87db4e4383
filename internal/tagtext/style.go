package tagtext

// Style is one of the three inline formatting kinds a diary string can carry.
type Style int

const (
	Bold Style = iota
	Italic
	Underline
)

var styleLetters = [...]string{"b", "i", "u"}

func (s Style) String() string {
	if s < Bold || s > Underline {
		return "?"
	}
	return styleLetters[s]
}

// OpenTag returns the literal opening marker, e.g. "<b>".
func (s Style) OpenTag() string {
	return "<" + s.String() + ">"
}

// CloseTag returns the literal closing marker, e.g. "</b>".
func (s Style) CloseTag() string {
	return "</" + s.String() + ">"
}

// Styles returns all styles in canonical priority order: bold, italic,
// underline. Canonical output opens tags in this order and closes them in
// the reverse, so nested spans serialize properly nested.
func Styles() []Style {
	return []Style{Bold, Italic, Underline}
}

// StyleSet is a set over the three styles. The zero value is the empty set
// and sets compare with ==.
type StyleSet uint8

func (s Style) bit() StyleSet {
	return 1 << uint(s)
}

func (ss StyleSet) Has(s Style) bool {
	return ss&s.bit() != 0
}

func (ss StyleSet) With(s Style) StyleSet {
	return ss | s.bit()
}

func (ss StyleSet) Without(s Style) StyleSet {
	return ss &^ s.bit()
}

func (ss StyleSet) IsEmpty() bool {
	return ss == 0
}

func (ss StyleSet) String() string {
	out := ""
	for _, s := range Styles() {
		if ss.Has(s) {
			out += s.String()
		}
	}
	return out
}
