package machine

import (
	"context"
	"math/rand"
	"strings"
	"testing"
)

func TestMatchesClockCommandTable(t *testing.T) {
	cases := []struct {
		buf  string
		want bool
	}{
		{";clock", true},
		{"x;clock", true},
		{";;clock", true},
		{"", false},
		{";clo", false},
		{"clock", false},
		{";clockx", false},
		{";CLOCK", false},
		{"; clock", false},
		{"clock;", false},
	}
	for _, tc := range cases {
		if got := matchesClockCommand([]rune(tc.buf)); got != tc.want {
			t.Fatalf("matchesClockCommand(%q) = %v, want %v", tc.buf, got, tc.want)
		}
	}
}

// firesAt is the reference model: the index after which the last six
// characters typed equal ";clock", or -1 when that never happens.
func firesAt(s string) int {
	window := ""
	for i, r := range s {
		window += string(r)
		if len(window) > commandBufferCap {
			window = window[len(window)-commandBufferCap:]
		}
		if window == clockCommand {
			return i
		}
	}
	return -1
}

// typeUntilFired types s character by character and reports the index at
// which the machine switched to clock mode, or -1 if it never did.
func typeUntilFired(m *Machine, s string) int {
	ctx := context.Background()
	for i, r := range s {
		m.HandleKey(ctx, charKey(r))
		if m.Mode() == ModeClock {
			return i
		}
	}
	return -1
}

// The command fires if and only if the most recent six characters typed are
// exactly ";clock". Checked against a sliding-window model over random input
// with and without planted suffixes.
func TestCommandFiresExactlyOnTrueSuffix(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	alphabet := []rune("abcdefghijklmnopqrstuvwxyz;.")

	randomText := func(n int) string {
		var b strings.Builder
		for i := 0; i < n; i++ {
			b.WriteRune(alphabet[rng.Intn(len(alphabet))])
		}
		return b.String()
	}

	check := func(text string) {
		t.Helper()
		m := newTestMachine(&fakeScreen{}, &fakeSource{})
		m.HandleKey(context.Background(), charKey('x')) // enter typewriter mode
		if got, want := typeUntilFired(m, text), firesAt(text); got != want {
			t.Fatalf("input %q: fired at %d, reference model says %d", text, got, want)
		}
	}

	for i := 0; i < 100; i++ {
		check(randomText(rng.Intn(40)))                          // usually never fires
		check(randomText(rng.Intn(20)) + ";clock")               // planted suffix
		check(randomText(rng.Intn(20)) + ";clock" + randomText(3)) // buried occurrence still fires mid-stream
		check(randomText(rng.Intn(20)) + ";cloc" + "kx")          // broken tail
	}
}
