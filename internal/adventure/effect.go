package adventure

// Effect is a reusable block of narrative text, keyed by (adventure,
// EffectID). An effect may chain to a following effect in one of two modes;
// at most one of Next and NextInline is non-zero.
type Effect struct {
	AdventureID int64
	EffectID    int
	Text        string
	// Style is a display hint derived from the legacy DOS color code, empty
	// for plain text.
	Style string
	// Next is the id of the effect shown after this one with a paragraph
	// break, zero for none.
	Next int
	// NextInline is the id of the effect appended with no paragraph break,
	// zero for none.
	NextInline int
}

// Effect display styles.
const (
	StyleEmphasis = "emphasis"
	StyleSuccess  = "success"
	StyleWarning  = "warning"
	StyleSpecial  = "special"
)

// StyleFromColorCode maps a legacy DOS text-attribute code embedded in EDX
// effect text to a display style. Unknown codes map to plain text.
func StyleFromColorCode(code byte) string {
	switch code {
	case 10: // light green
		return StyleSuccess
	case 12: // light red
		return StyleWarning
	case 14: // yellow
		return StyleEmphasis
	case 15: // bright white
		return StyleSpecial
	}
	return ""
}
