package ui

import (
	"fmt"
	"image"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// shades maps luminance to character density, light to dark.
const shades = " .:-=+*#%@"

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("249")).Background(lipgloss.Color("236"))
	frameStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240"))
)

type frameMsg struct {
	frame *image.Gray
}

type clearMsg struct{}

type model struct {
	sim *Sim
	vp  viewport.Model

	frame  *image.Gray
	frames int
	width  int
	height int
	ready  bool
}

func newModel(s *Sim) *model {
	return &model{sim: s}
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.vp = viewport.New(msg.Width, msg.Height-1)
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = msg.Height - 1
		}
		m.refresh()
		return m, nil

	case frameMsg:
		m.frame = msg.frame
		m.frames++
		m.refresh()
		m.vp.GotoBottom()
		return m, nil

	case clearMsg:
		m.frame = nil
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	case tea.KeySpace:
		m.sim.pushStroke(keystroke{code: "KEY_SPACE"})
	case tea.KeyBackspace:
		m.sim.pushStroke(keystroke{code: "KEY_BACKSPACE"})
	case tea.KeyEnter:
		m.sim.pushStroke(keystroke{code: "KEY_ENTER"})
	case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown:
		var cmd tea.Cmd
		m.vp, cmd = m.vp.Update(msg)
		return m, cmd
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			if ks, ok := strokeFor(r); ok {
				m.sim.pushStroke(ks)
			}
		}
	}
	return m, nil
}

func (m *model) refresh() {
	if !m.ready {
		return
	}
	if m.frame == nil {
		m.vp.SetContent(frameStyle.Render("(no frame yet)"))
		return
	}
	cols := m.vp.Width - 2 // border
	if cols < 10 {
		cols = 10
	}
	m.vp.SetContent(frameStyle.Render(frameArt(m.frame, cols)))
}

func (m *model) View() string {
	if !m.ready {
		return "starting simulator..."
	}
	status := fmt.Sprintf(" %dx%d panel · %d frames · type to write, esc to quit ",
		m.sim.width, m.sim.height, m.frames)
	status = ansi.Truncate(statusStyle.Width(m.width).Render(status), m.width, "…")
	return m.vp.View() + "\n" + status
}

// frameArt downsamples a grayscale frame into character art cols columns
// wide. Cells sample two pixels of height per pixel of width to offset the
// roughly 2:1 aspect of terminal cells.
func frameArt(img *image.Gray, cols int) string {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return ""
	}
	stepX := (b.Dx() + cols - 1) / cols
	if stepX < 1 {
		stepX = 1
	}
	stepY := stepX * 2

	var sb strings.Builder
	for y := b.Min.Y; y < b.Max.Y; y += stepY {
		for x := b.Min.X; x < b.Max.X; x += stepX {
			sb.WriteByte(shadeAt(img, x, y, stepX, stepY))
		}
		sb.WriteByte('\n')
	}
	return strings.TrimRight(sb.String(), "\n")
}

// shadeAt averages the cell's pixels and picks the matching density rune.
func shadeAt(img *image.Gray, x0, y0, w, h int) byte {
	b := img.Bounds()
	var sum, n int
	for y := y0; y < y0+h && y < b.Max.Y; y++ {
		for x := x0; x < x0+w && x < b.Max.X; x++ {
			sum += int(img.GrayAt(x, y).Y)
			n++
		}
	}
	if n == 0 {
		return shades[0]
	}
	// Dark pixels are ink: invert so 0 (black) maps to the densest rune.
	idx := (255 - sum/n) * (len(shades) - 1) / 255
	return shades[idx]
}
