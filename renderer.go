package cmdprompt

import (
	"fmt"
	"io"
	"strings"
)

// ANSI control sequences used by the renderer.
const (
	clearLine   = "\x1b[2K" // Erase the whole current line
	clearToEnd  = "\x1b[K"  // Erase from the cursor to the end of the line
	clearScreen = "\x1b[2J" // Erase the whole screen
)

// renderer handles all screen output of the editor.
//
// Every operation positions the cursor absolutely before drawing and moves it
// back to the editing position afterwards, so the terminal cursor always sits
// where the buffer column says it is. Each operation is assembled in memory and
// written with a single Write call.
type renderer struct {
	output      io.Writer    // Target output writer (the screen)
	colorScheme *ColorScheme // Color configuration for themed rendering
	prefix      string       // Prompt prefix drawn before the input
	overlayRows int          // Rows below the input line drawn by the last overlay
}

// newRenderer creates a new renderer with the given output and color scheme.
func newRenderer(output io.Writer, colorScheme *ColorScheme, prefix string) *renderer {
	return &renderer{
		output:      output,
		colorScheme: colorScheme,
		prefix:      prefix,
	}
}

// prefixWidth is the number of columns taken by the prompt prefix.
func (r *renderer) prefixWidth() int {
	return displayWidth(r.prefix)
}

// absColumn converts a 1-based buffer column into an absolute terminal column.
// Wide characters left of the column count with their cell width.
func (r *renderer) absColumn(buffer []rune, column int) int {
	column = clamp(column, 1, len(buffer)+1)
	return r.prefixWidth() + displayWidth(string(buffer[:column-1])) + 1
}

func goTo(b *strings.Builder, col, row int) {
	fmt.Fprintf(b, "\x1b[%d;%dH", max(row, 1), max(col, 1))
}

func (r *renderer) flush(b *strings.Builder) error {
	if b.Len() == 0 {
		return nil
	}
	_, err := io.WriteString(r.output, b.String())
	return err
}

func (r *renderer) writePrefixTo(b *strings.Builder) {
	b.WriteString(r.colorScheme.Prefix.ToANSI())
	b.WriteString(r.prefix)
	b.WriteString(Reset())
}

func (r *renderer) writeInputTo(b *strings.Builder, text []rune) {
	if len(text) == 0 {
		return
	}
	b.WriteString(r.colorScheme.Input.ToANSI())
	b.WriteString(string(text))
	b.WriteString(Reset())
}

// writePrefix draws the prompt prefix at the current cursor position.
func (r *renderer) writePrefix() error {
	var b strings.Builder
	r.writePrefixTo(&b)
	return r.flush(&b)
}

// newLine moves to the start of the next line, scrolling if needed.
func (r *renderer) newLine() error {
	_, err := io.WriteString(r.output, "\r\n")
	return err
}

// moveTo places the cursor at a buffer column on row.
func (r *renderer) moveTo(row int, buffer []rune, column int) error {
	var b strings.Builder
	goTo(&b, r.absColumn(buffer, column), row)
	return r.flush(&b)
}

// repaintLine clears row and draws prefix and buffer, then places the cursor at column.
func (r *renderer) repaintLine(row int, buffer []rune, column int) error {
	var b strings.Builder
	goTo(&b, 1, row)
	b.WriteString(clearLine)
	r.writePrefixTo(&b)
	r.writeInputTo(&b, buffer)
	goTo(&b, r.absColumn(buffer, column), row)
	return r.flush(&b)
}

// redrawTail redraws the buffer from column from onwards and places the cursor at column.
// Used after an insertion: the cells left of from are unchanged.
func (r *renderer) redrawTail(row, from int, buffer []rune, column int) error {
	var b strings.Builder
	goTo(&b, r.absColumn(buffer, from), row)
	r.writeInputTo(&b, buffer[from-1:])
	goTo(&b, r.absColumn(buffer, column), row)
	return r.flush(&b)
}

// shiftTail redraws the buffer from column from onwards and erases the rest of
// the row, then places the cursor at column. Used after a deletion.
func (r *renderer) shiftTail(row, from int, buffer []rune, column int) error {
	var b strings.Builder
	goTo(&b, r.absColumn(buffer, from), row)
	r.writeInputTo(&b, buffer[from-1:])
	b.WriteString(clearToEnd)
	goTo(&b, r.absColumn(buffer, column), row)
	return r.flush(&b)
}

// clearOverlay erases the rows drawn by the last overlay below row and
// returns the cursor to (col, row).
func (r *renderer) clearOverlay(row, col int) error {
	if r.overlayRows == 0 {
		return nil
	}
	var b strings.Builder
	for i := 1; i <= r.overlayRows; i++ {
		goTo(&b, 1, row+i)
		b.WriteString(clearLine)
	}
	goTo(&b, col, row)
	r.overlayRows = 0
	return r.flush(&b)
}

// clearScreen erases the screen and draws the line on the first row.
func (r *renderer) clearScreen(buffer []rune, column int) error {
	r.overlayRows = 0
	var b strings.Builder
	b.WriteString(clearScreen)
	goTo(&b, 1, 1)
	r.writePrefixTo(&b)
	r.writeInputTo(&b, buffer)
	goTo(&b, r.absColumn(buffer, column), 1)
	return r.flush(&b)
}

// drawOverlay draws the suggestion overlay described by layout.
//
// row and col are the cursor position before drawing, height and width the
// terminal size. The previous overlay is erased first; then, if the layout
// needs it, the screen is scrolled by writing line feeds on the bottom row.
// Entries start at col, shifted left when they would not fit. The cursor ends
// up at (col, layout.anchorRow).
func (r *renderer) drawOverlay(layout overlayLayout, row, col, width, height int) error {
	if err := r.clearOverlay(row, col); err != nil {
		return err
	}

	var b strings.Builder
	if layout.scroll > 0 {
		goTo(&b, 1, height)
		b.WriteString(strings.Repeat("\n", layout.scroll))
	}

	rowWidth := 1 + layout.triggerPad + 2 + layout.describePad
	start := col
	if start+rowWidth-1 > width {
		start = max(width-rowWidth+1, 1)
	}

	normalTrigger := r.colorScheme.Trigger.ToANSI()
	normalDescription := r.colorScheme.Description.ToANSI()
	for i, s := range layout.visible {
		goTo(&b, start, layout.anchorRow+1+i)
		b.WriteString(clearLine)
		triggerColor, descriptionColor := normalTrigger, normalDescription
		if i == layout.highlight {
			triggerColor, descriptionColor = normalDescription, normalTrigger
		}
		b.WriteString(triggerColor)
		b.WriteString(" ")
		b.WriteString(padRight(s.Trigger, layout.triggerPad))
		b.WriteString(descriptionColor)
		b.WriteString("  ")
		b.WriteString(padRight(s.Description, layout.describePad))
		b.WriteString(Reset())
	}
	goTo(&b, col, layout.anchorRow)

	r.overlayRows = len(layout.visible)
	return r.flush(&b)
}
