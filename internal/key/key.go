// Package key maps raw keyboard codes to logical typewriter keys.
package key

import "strings"

// Kind discriminates the logical key union.
type Kind int

const (
	KindChar Kind = iota
	KindSpace
	KindBackspace
	KindEnter
)

// Key is a decoded logical key. Rune is meaningful only for KindChar.
type Key struct {
	Kind Kind
	Rune rune
}

// Token returns the textual form fed into the command buffer: the literal
// character for printable keys, the key name for control keys.
func (k Key) Token() string {
	switch k.Kind {
	case KindSpace:
		return "space"
	case KindBackspace:
		return "backspace"
	case KindEnter:
		return "enter"
	default:
		return string(k.Rune)
	}
}

// shiftedDigits maps the digit row to its shifted punctuation.
var shiftedDigits = map[rune]rune{
	'1': '!', '2': '@', '3': '#', '4': '$', '5': '%',
	'6': '^', '7': '&', '8': '*', '9': '(', '0': ')',
}

var punctuation = map[string]rune{
	"KEY_COMMA":      ',',
	"KEY_DOT":        '.',
	"KEY_SLASH":      '/',
	"KEY_APOSTROPHE": '\'',
	"KEY_MINUS":      '-',
	"KEY_EQUAL":      '=',
	"KEY_LEFTBRACE":  '[',
	"KEY_RIGHTBRACE": ']',
	"KEY_BACKSLASH":  '\\',
}

// Decode converts an evdev-style key code name plus the current shift state
// into a logical key. Unknown codes decode to nothing; that is not an error.
func Decode(code string, shift bool) (Key, bool) {
	switch code {
	case "KEY_SPACE":
		return Key{Kind: KindSpace}, true
	case "KEY_BACKSPACE":
		return Key{Kind: KindBackspace}, true
	case "KEY_ENTER":
		return Key{Kind: KindEnter}, true
	case "KEY_SEMICOLON":
		if shift {
			return Key{Kind: KindChar, Rune: ':'}, true
		}
		return Key{Kind: KindChar, Rune: ';'}, true
	}

	if r, ok := punctuation[code]; ok {
		return Key{Kind: KindChar, Rune: r}, true
	}

	// Single-character codes cover the letter and digit rows (KEY_A, KEY_7).
	if name, ok := strings.CutPrefix(code, "KEY_"); ok && len(name) == 1 {
		r := rune(name[0])
		switch {
		case r >= 'A' && r <= 'Z':
			if shift {
				return Key{Kind: KindChar, Rune: r}, true
			}
			return Key{Kind: KindChar, Rune: r + ('a' - 'A')}, true
		case r >= '0' && r <= '9':
			if shift {
				return Key{Kind: KindChar, Rune: shiftedDigits[r]}, true
			}
			return Key{Kind: KindChar, Rune: r}, true
		}
	}

	return Key{}, false
}

// IsShift reports whether the code names a shift modifier.
func IsShift(code string) bool {
	return code == "KEY_LEFTSHIFT" || code == "KEY_RIGHTSHIFT"
}
