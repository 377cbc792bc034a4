// Package layout word-wraps text and positions it on the page.
package layout

import (
	"math"
	"strings"
)

// ColumnWidth is the page width in characters, sized for the panel at the
// default font.
const ColumnWidth = 45

// StartYOffset is where a fresh typewriter page begins, in pixels from the
// canvas top.
const StartYOffset = 150

// FixedXOffset is the horizontal anchor for both modes.
const FixedXOffset = 150

// Wrap greedily breaks text into lines of at most width characters. Words
// are never split; a word longer than width stands on its own line and is
// allowed to stick out. Newlines in the input are hard breaks.
func Wrap(text string, width int) []string {
	if width <= 0 {
		width = ColumnWidth
	}
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		lines = append(lines, wrapParagraph(para, width)...)
	}
	return lines
}

func wrapParagraph(para string, width int) []string {
	words := strings.Fields(para)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	line := words[0]
	for _, word := range words[1:] {
		if len(line)+1+len(word) <= width {
			line += " " + word
			continue
		}
		lines = append(lines, line)
		line = word
	}
	return append(lines, line)
}

// Scroll returns the next vertical offset for the typewriter page: each
// render climbs the anchor upward in proportion to the accumulated text.
// There is no lower bound; a very long session can push the page off the top
// of the canvas. The hardware build behaves the same way, so this is kept
// rather than clamped.
func Scroll(current, textLen int) int {
	return current - int(math.Floor(float64(textLen)*0.007))
}

// BottomAnchor positions a text block of the given height so its bottom edge
// sits margin pixels above the canvas bottom. The result is negative when
// the block is taller than the canvas, which clips the oldest content off
// the top.
func BottomAnchor(textHeight, canvasHeight, margin int) int {
	return canvasHeight - textHeight - margin
}
