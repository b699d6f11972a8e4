package typing

// KeyKind classifies a keyboard event.
type KeyKind int

// Key kinds.
const (
	KeyOther KeyKind = iota
	KeyChar
	KeyEnter
	KeyEscape
	KeyBackspace
)

// Key is a keyboard event as seen by a Session.
type Key struct {
	Kind KeyKind
	// Text is the typed text of a KeyChar event. Function keys type their
	// number, so Text may be longer than one rune.
	Text string
}

// Char returns a KeyChar event for r.
func Char(r rune) Key {
	return Key{Kind: KeyChar, Text: string(r)}
}
