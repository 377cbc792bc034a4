package key

import "testing"

func TestDecodeLetters(t *testing.T) {
	k, ok := Decode("KEY_A", false)
	if !ok {
		t.Fatalf("expected KEY_A to decode")
	}
	if k.Kind != KindChar || k.Rune != 'a' {
		t.Fatalf("expected 'a', got %q", k.Rune)
	}

	k, ok = Decode("KEY_A", true)
	if !ok {
		t.Fatalf("expected shifted KEY_A to decode")
	}
	if k.Rune != 'A' {
		t.Fatalf("expected 'A', got %q", k.Rune)
	}
}

func TestDecodeDigits(t *testing.T) {
	cases := []struct {
		code    string
		shift   bool
		want    rune
	}{
		{"KEY_1", false, '1'},
		{"KEY_1", true, '!'},
		{"KEY_0", true, ')'},
		{"KEY_9", true, '('},
	}
	for _, tc := range cases {
		k, ok := Decode(tc.code, tc.shift)
		if !ok {
			t.Fatalf("expected %s (shift=%v) to decode", tc.code, tc.shift)
		}
		if k.Rune != tc.want {
			t.Fatalf("%s shift=%v: expected %q, got %q", tc.code, tc.shift, tc.want, k.Rune)
		}
	}
}

func TestDecodeControlTokens(t *testing.T) {
	cases := []struct {
		code string
		kind Kind
		tok  string
	}{
		{"KEY_SPACE", KindSpace, "space"},
		{"KEY_BACKSPACE", KindBackspace, "backspace"},
		{"KEY_ENTER", KindEnter, "enter"},
	}
	for _, tc := range cases {
		k, ok := Decode(tc.code, false)
		if !ok {
			t.Fatalf("expected %s to decode", tc.code)
		}
		if k.Kind != tc.kind {
			t.Fatalf("%s: expected kind %d, got %d", tc.code, tc.kind, k.Kind)
		}
		if k.Token() != tc.tok {
			t.Fatalf("%s: expected token %q, got %q", tc.code, tc.tok, k.Token())
		}
	}
}

func TestDecodeSemicolon(t *testing.T) {
	k, _ := Decode("KEY_SEMICOLON", false)
	if k.Rune != ';' {
		t.Fatalf("expected ';', got %q", k.Rune)
	}
	k, _ = Decode("KEY_SEMICOLON", true)
	if k.Rune != ':' {
		t.Fatalf("expected ':', got %q", k.Rune)
	}
}

func TestDecodeUnknownYieldsNothing(t *testing.T) {
	for _, code := range []string{"KEY_F1", "KEY_ESC", "KEY_LEFTCTRL", "KEY_TAB", "garbage"} {
		if _, ok := Decode(code, false); ok {
			t.Fatalf("expected %s to decode to nothing", code)
		}
	}
}

func TestShiftKeysAreModifiersNotCharacters(t *testing.T) {
	for _, code := range []string{"KEY_LEFTSHIFT", "KEY_RIGHTSHIFT"} {
		if !IsShift(code) {
			t.Fatalf("expected %s to be a shift modifier", code)
		}
		if _, ok := Decode(code, false); ok {
			t.Fatalf("expected %s to produce no character", code)
		}
	}
}
