package machine

import (
	"strings"

	"github.com/quietpress/typewriter-clock/internal/key"
)

// clockCommand switches back to clock mode when it forms the tail of the
// command buffer.
const clockCommand = ";clock"

const commandBufferCap = 6

// pushCommand feeds a key into the trailing command window. Printable keys
// contribute their character; control keys contribute their token name,
// which is what breaks a half-typed command when space or enter intervenes.
func (m *Machine) pushCommand(k key.Key) {
	m.command = append(m.command, []rune(k.Token())...)
	if len(m.command) > commandBufferCap {
		m.command = m.command[len(m.command)-commandBufferCap:]
	}
}

// matchesClockCommand is a strict suffix match: ";;clock" fires, "clockx"
// does not, and a window shorter than the command never fires.
func matchesClockCommand(buf []rune) bool {
	return strings.HasSuffix(string(buf), clockCommand)
}
