package cmdprompt

import (
	"bytes"
	"io"
	"strconv"
	"strings"
)

// mockTerminal implements screen for testing and development.
//
// Input is a pre-configured rune sequence. Output is kept verbatim and also
// interpreted as a tiny VT100: cursor positioning, carriage return, line feed
// with scrolling at the bottom row, line and screen erase, and printable
// characters. SGR color sequences are ignored. This lets tests assert what
// the screen shows and where the cursor ends up, without a real terminal.
type mockTerminal struct {
	input        []rune // Pre-configured input sequence for testing
	inputPos     int    // Current position in the input sequence
	rawMode      bool   // Track raw mode state for test verification
	terminalSize [2]int // Fixed terminal dimensions [width, height]
	closed       bool

	output   bytes.Buffer // Everything written, verbatim
	cells    [][]rune     // Emulated screen contents, cells[row-1][col-1]
	col, row int          // Emulated 1-based cursor position
	scrolled int          // Lines scrolled off the top
	escape   []rune       // Partial escape sequence carried between writes

	cursorQueries int   // Number of CursorPosition calls
	cursorErr     error // Returned by CursorPosition when set
	writeErr      error // Returned by Write when set
}

func newMockTerminal(input string) *mockTerminal {
	return newMockTerminalSize(input, 80, 24)
}

func newMockTerminalSize(input string, width, height int) *mockTerminal {
	m := &mockTerminal{
		input:        []rune(input),
		terminalSize: [2]int{width, height},
		col:          1,
		row:          1,
	}
	m.cells = make([][]rune, height)
	for i := range m.cells {
		m.cells[i] = blankRow(width)
	}
	return m
}

func blankRow(width int) []rune {
	return []rune(strings.Repeat(" ", width))
}

func (m *mockTerminal) SetRaw() error {
	m.rawMode = true
	return nil
}

func (m *mockTerminal) Restore() error {
	m.rawMode = false
	return nil
}

func (m *mockTerminal) Size() (width, height int, err error) {
	return m.terminalSize[0], m.terminalSize[1], nil
}

func (m *mockTerminal) ReadRune() (rune, int, error) {
	if m.inputPos >= len(m.input) {
		return 0, 0, io.EOF
	}
	r := m.input[m.inputPos]
	m.inputPos++
	return r, 1, nil
}

func (m *mockTerminal) Close() error {
	m.closed = true
	return nil
}

func (m *mockTerminal) CursorPosition() (col, row int, err error) {
	m.cursorQueries++
	if m.cursorErr != nil {
		return 0, 0, m.cursorErr
	}
	return m.col, m.row, nil
}

// moveCursor places the emulated cursor at (col, row) clamped to the screen.
func (m *mockTerminal) moveCursor(col, row int) {
	m.col = clamp(col, 1, m.terminalSize[0])
	m.row = clamp(row, 1, m.terminalSize[1])
}

func (m *mockTerminal) Write(p []byte) (int, error) {
	if m.writeErr != nil {
		return 0, m.writeErr
	}
	m.output.Write(p)
	for _, r := range string(p) {
		m.interpret(r)
	}
	return len(p), nil
}

func (m *mockTerminal) interpret(r rune) {
	if len(m.escape) > 0 {
		m.escape = append(m.escape, r)
		if len(m.escape) == 2 {
			if r != '[' {
				m.escape = nil // Not a CSI sequence, ignore it
			}
			return
		}
		if r >= '@' && r <= '~' {
			m.applyCSI(string(m.escape[2:len(m.escape)-1]), r)
			m.escape = nil
		}
		return
	}

	switch r {
	case '\x1b':
		m.escape = []rune{r}
	case '\r':
		m.col = 1
	case '\n':
		m.lineFeed()
	case '\a', '\b':
	default:
		width := m.terminalSize[0]
		if m.col > width {
			m.col = 1
			m.lineFeed()
		}
		m.cells[m.row-1][m.col-1] = r
		m.col++
	}
}

func (m *mockTerminal) lineFeed() {
	if m.row < m.terminalSize[1] {
		m.row++
		return
	}
	m.cells = append(m.cells[1:], blankRow(m.terminalSize[0]))
	m.scrolled++
}

func (m *mockTerminal) applyCSI(params string, final rune) {
	args := strings.Split(params, ";")
	arg := func(i, def int) int {
		if i >= len(args) || args[i] == "" {
			return def
		}
		n, err := strconv.Atoi(args[i])
		if err != nil {
			return def
		}
		return n
	}

	switch final {
	case 'H':
		m.moveCursor(arg(1, 1), arg(0, 1))
	case 'A':
		m.moveCursor(m.col, m.row-arg(0, 1))
	case 'B':
		m.moveCursor(m.col, m.row+arg(0, 1))
	case 'C':
		m.moveCursor(m.col+arg(0, 1), m.row)
	case 'D':
		m.moveCursor(m.col-arg(0, 1), m.row)
	case 'K':
		if arg(0, 0) == 2 {
			m.cells[m.row-1] = blankRow(m.terminalSize[0])
			return
		}
		for c := m.col; c <= m.terminalSize[0]; c++ {
			m.cells[m.row-1][c-1] = ' '
		}
	case 'J':
		if arg(0, 0) == 2 {
			for i := range m.cells {
				m.cells[i] = blankRow(m.terminalSize[0])
			}
			return
		}
		for c := m.col; c <= m.terminalSize[0]; c++ {
			m.cells[m.row-1][c-1] = ' '
		}
		for i := m.row; i < len(m.cells); i++ {
			m.cells[i] = blankRow(m.terminalSize[0])
		}
	}
}

// line returns the visible text of a 1-based row without trailing blanks.
func (m *mockTerminal) line(row int) string {
	if row < 1 || row > len(m.cells) {
		return ""
	}
	return strings.TrimRight(string(m.cells[row-1]), " ")
}
