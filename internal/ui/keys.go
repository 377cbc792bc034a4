package ui

import "fmt"

// keystroke is a terminal rune expressed as the raw key transitions the
// hardware keyboard would have produced for it.
type keystroke struct {
	code  string
	shift bool
}

var punctuationCodes = map[rune]keystroke{
	';':  {code: "KEY_SEMICOLON"},
	':':  {code: "KEY_SEMICOLON", shift: true},
	',':  {code: "KEY_COMMA"},
	'.':  {code: "KEY_DOT"},
	'/':  {code: "KEY_SLASH"},
	'\'': {code: "KEY_APOSTROPHE"},
	'-':  {code: "KEY_MINUS"},
	'=':  {code: "KEY_EQUAL"},
	'[':  {code: "KEY_LEFTBRACE"},
	']':  {code: "KEY_RIGHTBRACE"},
	'\\': {code: "KEY_BACKSLASH"},
}

var shiftedDigitCodes = map[rune]rune{
	'!': '1', '@': '2', '#': '3', '$': '4', '%': '5',
	'^': '6', '&': '7', '*': '8', '(': '9', ')': '0',
}

// strokeFor maps a typed rune to its raw keystroke. Runes with no key on
// the typewriter map to nothing.
func strokeFor(r rune) (keystroke, bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return keystroke{code: fmt.Sprintf("KEY_%c", r-('a'-'A'))}, true
	case r >= 'A' && r <= 'Z':
		return keystroke{code: fmt.Sprintf("KEY_%c", r), shift: true}, true
	case r >= '0' && r <= '9':
		return keystroke{code: fmt.Sprintf("KEY_%c", r)}, true
	}
	if d, ok := shiftedDigitCodes[r]; ok {
		return keystroke{code: fmt.Sprintf("KEY_%c", d), shift: true}, true
	}
	if ks, ok := punctuationCodes[r]; ok {
		return ks, true
	}
	return keystroke{}, false
}
