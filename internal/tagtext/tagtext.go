// Package tagtext implements the inline formatting model for diary text:
// literal <b>, <i> and <u> markers embedded in otherwise plain strings.
// Marker streams coming out of an editor may be arbitrarily ordered and
// redundant; Normalize collapses them into one canonical minimal form that
// round-trips through Tokenize without changing rendered meaning.
package tagtext

import "strings"

// EventKind discriminates the three marker stream event variants.
type EventKind int

const (
	TextEvent EventKind = iota
	OpenEvent
	CloseEvent
)

// Event is one element of a marker stream: a literal text run or an
// open/close marker for a single style.
type Event struct {
	Kind  EventKind
	Text  string // TextEvent only
	Style Style  // OpenEvent and CloseEvent only
}

func Text(s string) Event { return Event{Kind: TextEvent, Text: s} }
func Open(s Style) Event  { return Event{Kind: OpenEvent, Style: s} }
func Close(s Style) Event { return Event{Kind: CloseEvent, Style: s} }

// Segment is a maximal run of text over which the active style set does not
// change. Text is never empty in segments produced by this package.
type Segment struct {
	Text   string
	Styles StyleSet
}

// matchTag reports whether s begins with one of the six literal markers.
// Matching is exact and case sensitive; anything else, including unknown
// tags like <x>, is plain text.
func matchTag(s string) (st Style, closing bool, width int, ok bool) {
	rest := s[1:] // caller guarantees s[0] == '<'
	if strings.HasPrefix(rest, "/") {
		closing = true
		rest = rest[1:]
	}
	if len(rest) < 2 || rest[1] != '>' {
		return 0, false, 0, false
	}
	switch rest[0] {
	case 'b':
		st = Bold
	case 'i':
		st = Italic
	case 'u':
		st = Underline
	default:
		return 0, false, 0, false
	}
	width = 3
	if closing {
		width = 4
	}
	return st, closing, width, true
}

// Tokenize splits a tagged string into its marker stream. Every byte of the
// input is accounted for: marker substrings become Open/Close events and
// everything else becomes Text events, so rendering the stream back out
// reproduces the input exactly.
func Tokenize(s string) []Event {
	var events []Event
	var buf strings.Builder
	flush := func() {
		if buf.Len() > 0 {
			events = append(events, Text(buf.String()))
			buf.Reset()
		}
	}
	for i := 0; i < len(s); {
		if s[i] == '<' {
			if st, closing, width, ok := matchTag(s[i:]); ok {
				flush()
				if closing {
					events = append(events, Close(st))
				} else {
					events = append(events, Open(st))
				}
				i += width
				continue
			}
		}
		buf.WriteByte(s[i])
		i++
	}
	flush()
	return events
}

// removeFromTop removes the occurrence of st nearest the top of the stack.
// Absent styles are a no-op: unmatched closes are silently absorbed.
func removeFromTop(stack []Style, st Style) []Style {
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] == st {
			return append(stack[:i], stack[i+1:]...)
		}
	}
	return stack
}

func activeSet(stack []Style) StyleSet {
	var set StyleSet
	for _, st := range stack {
		set = set.With(st)
	}
	return set
}

// Segments replays a marker stream against the active-style stack and cuts
// the text wherever the active set changes. Duplicate opens stay on the
// stack until individually closed, so a style opened twice needs two closes
// before it turns off. Adjacent equal-state runs merge and empty text is
// dropped.
func Segments(events []Event) []Segment {
	var segs []Segment
	var stack []Style
	for _, ev := range events {
		switch ev.Kind {
		case OpenEvent:
			stack = append(stack, ev.Style)
		case CloseEvent:
			stack = removeFromTop(stack, ev.Style)
		case TextEvent:
			if ev.Text == "" {
				continue
			}
			set := activeSet(stack)
			if n := len(segs); n > 0 && segs[n-1].Styles == set {
				segs[n-1].Text += ev.Text
			} else {
				segs = append(segs, Segment{Text: ev.Text, Styles: set})
			}
		}
	}
	return segs
}

// Normalize converts a marker stream into its canonical tagged string. At
// each segment boundary departed styles close before entered styles open;
// opens are emitted in priority order and closes in reverse priority, and
// any styles still active at the end of the stream are closed.
func Normalize(events []Event) string {
	segs := Segments(events)
	var sb strings.Builder
	var prev StyleSet
	styles := Styles()
	for _, seg := range segs {
		for i := len(styles) - 1; i >= 0; i-- {
			if st := styles[i]; prev.Has(st) && !seg.Styles.Has(st) {
				sb.WriteString(st.CloseTag())
			}
		}
		for _, st := range styles {
			if seg.Styles.Has(st) && !prev.Has(st) {
				sb.WriteString(st.OpenTag())
			}
		}
		sb.WriteString(seg.Text)
		prev = seg.Styles
	}
	for i := len(styles) - 1; i >= 0; i-- {
		if prev.Has(styles[i]) {
			sb.WriteString(styles[i].CloseTag())
		}
	}
	return sb.String()
}

// Clean canonicalizes a tagged string in place: Normalize(Tokenize(s)).
func Clean(s string) string {
	return Normalize(Tokenize(s))
}

// Strip returns the plain text of a tagged string with all markers removed.
func Strip(s string) string {
	var sb strings.Builder
	for _, seg := range Segments(Tokenize(s)) {
		sb.WriteString(seg.Text)
	}
	return sb.String()
}

// ActiveAt returns the style set in effect for text inserted at byte offset
// off of the raw tagged string. Markers that begin before the offset are
// applied in full. Out-of-range offsets clamp to the string bounds.
func ActiveAt(s string, off int) StyleSet {
	if off < 0 {
		off = 0
	}
	if off > len(s) {
		off = len(s)
	}
	var stack []Style
	for i := 0; i < off; {
		if s[i] == '<' {
			if st, closing, width, ok := matchTag(s[i:]); ok {
				if closing {
					stack = removeFromTop(stack, st)
				} else {
					stack = append(stack, st)
				}
				i += width
				continue
			}
		}
		i++
	}
	return activeSet(stack)
}
