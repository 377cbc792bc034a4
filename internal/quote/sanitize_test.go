package quote

import "testing"

func TestCleanStripsMarkup(t *testing.T) {
	got := Clean("It was <br/>almost midnight<br> already.")
	want := "It was almost midnight already."
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestCleanStripsStandaloneTimestamps(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"The clock read 00:00:00 and the house was silent.", "The clock read and the house was silent."},
		{"12:37 AM and still no word.", "and still no word."},
		{"He waited. 11:59PM It never came.", "He waited. It never came."},
		{"the 10:08 to Paddington", "the 10:08 to Paddington"},
	}
	for _, tc := range cases {
		if got := Clean(tc.in); got != tc.want {
			t.Fatalf("Clean(%q): expected %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestCleanCollapsesWhitespace(t *testing.T) {
	got := Clean("  too   many\t\tspaces \n here  ")
	want := "too many spaces here"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestCleanIsIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"plain text already clean",
		"It was <br/>almost midnight<br> 00:00:00 now.",
		"  12:37 AM   spaced <b>out</b>  ",
		"edge 1:02:03 2:03:04 case",
		"ends with 11:59 PM",
	}
	for _, in := range inputs {
		once := Clean(in)
		twice := Clean(once)
		if once != twice {
			t.Fatalf("Clean not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}
