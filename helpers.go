package cmdprompt

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// displayWidth returns the number of terminal cells s occupies.
func displayWidth(s string) int {
	return runewidth.StringWidth(s)
}

// padRight pads s with spaces up to width cells. Longer strings are returned as is.
func padRight(s string, width int) string {
	if pad := width - displayWidth(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}

// clamp limits v to [lo, hi]. If hi < lo, lo wins.
func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// isPrintable reports whether r is inserted into the buffer as text.
func isPrintable(r rune) bool {
	return r >= 32 && r != 127
}
