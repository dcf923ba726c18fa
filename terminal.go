package cmdprompt

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-tty"
	"golang.org/x/term"
)

// errCursorReport is returned when the terminal does not answer a cursor
// position request with a "ESC [ row ; col R" report in time.
var errCursorReport = errors.New("no valid cursor position report")

var errReadTimeout = errors.New("read timed out")

// cursorReportTimeout bounds the wait for the answer to a cursor position request.
const cursorReportTimeout = 100 * time.Millisecond

// screen abstracts terminal operations for testability and cross-platform compatibility.
//
// It is the only way the editor talks to the terminal: raw byte output,
// absolute cursor queries, size queries, raw mode switching and rune input.
//
// Implementations:
//   - realTerminal: go-tty input, golang.org/x/term raw mode, colorable output
//   - mockTerminal: scripted input and an emulated cursor for tests
type screen interface {
	Write(p []byte) (int, error)               // Write raw bytes, flushed immediately
	CursorPosition() (col, row int, err error) // Absolute 1-based cursor position
	Size() (width, height int, err error)      // Terminal dimensions with safe fallbacks
	SetRaw() error                             // Enter raw mode for immediate key processing
	Restore() error                            // Restore original terminal settings
	ReadRune() (rune, int, error)              // Read a single character from input
	Close() error                              // Clean up resources and prevent fd leaks
}

// realTerminal implements screen using external libraries for production use.
//
//   - Double-close protection: the closed flag prevents Windows panics on double Close()
//   - Safe size fallbacks: returns 80x24 if terminal size detection fails
//   - Color support: go-colorable processes ANSI escape sequences on Windows
//   - Cursor queries: DSR ("ESC [6n") answered on the input stream; keys typed
//     while waiting for the report are kept and returned by later ReadRune calls.
//     A terminal that does not answer within reportTimeout fails the query.
//
// Input is read by one goroutine that hands runes over a channel, so a cursor
// query can stop waiting without abandoning a read in progress.
type realTerminal struct {
	tty           *tty.TTY      // TTY handle from go-tty for cross-platform input
	input         runeSource    // Rune input (the tty)
	output        io.Writer     // Color-capable output writer (colorable on Windows, stdout elsewhere)
	closed        bool          // Track if terminal is already closed
	stdinFd       int           // File descriptor for stdin for raw mode management
	originalState *term.State   // Original terminal state to restore on exit
	pending       []rune        // Input read while waiting for a cursor report
	reportTimeout time.Duration // Wait limit for a cursor report

	readerOnce sync.Once
	reads      chan readResult
	done       chan struct{}
	readErr    error // Sticky once the input has failed
}

// runeSource is the input half of a tty.
type runeSource interface {
	ReadRune() (rune, error)
}

type readResult struct {
	r   rune
	err error
}

// newRealTerminal opens the controlling terminal.
func newRealTerminal() (*realTerminal, error) {
	t, err := tty.Open()
	if err != nil {
		return nil, err
	}

	var output io.Writer = os.Stdout
	if runtime.GOOS == "windows" {
		output = colorable.NewColorableStdout()
	}

	terminal := newInputTerminal(t, output, cursorReportTimeout)
	terminal.tty = t
	terminal.stdinFd = int(os.Stdin.Fd())
	return terminal, nil
}

// newInputTerminal builds a terminal reading from input and writing to output.
func newInputTerminal(input runeSource, output io.Writer, reportTimeout time.Duration) *realTerminal {
	return &realTerminal{
		input:         input,
		output:        output,
		stdinFd:       -1,
		reportTimeout: reportTimeout,
		reads:         make(chan readResult),
		done:          make(chan struct{}),
	}
}

// readLoop forwards input runes until the input fails or the terminal is closed.
func (t *realTerminal) readLoop() {
	for {
		r, err := t.input.ReadRune()
		select {
		case t.reads <- readResult{r: r, err: err}:
		case <-t.done:
			return
		}
		if err != nil {
			return
		}
	}
}

// nextRune waits for the next input rune. A nil timeout waits forever;
// errReadTimeout is returned when timeout fires first.
func (t *realTerminal) nextRune(timeout <-chan time.Time) (rune, error) {
	if t.readErr != nil {
		return 0, t.readErr
	}
	t.readerOnce.Do(func() {
		go t.readLoop()
	})
	select {
	case res := <-t.reads:
		if res.err != nil {
			t.readErr = res.err
		}
		return res.r, res.err
	case <-timeout:
		return 0, errReadTimeout
	case <-t.done:
		return 0, io.EOF
	}
}

func (t *realTerminal) Write(p []byte) (int, error) {
	return t.output.Write(p)
}

func (t *realTerminal) SetRaw() error {
	if t.stdinFd < 0 {
		return nil
	}
	// Always capture current terminal state before entering raw mode
	if term.IsTerminal(t.stdinFd) {
		state, err := term.GetState(t.stdinFd)
		if err != nil {
			return err
		}
		t.originalState = state

		if _, err := term.MakeRaw(t.stdinFd); err != nil {
			return err
		}
	}
	return nil
}

func (t *realTerminal) Restore() error {
	if t.originalState != nil && t.stdinFd >= 0 && term.IsTerminal(t.stdinFd) {
		err := term.Restore(t.stdinFd, t.originalState)
		// Reset the state so that SetRaw can capture a fresh baseline next time
		t.originalState = nil
		return err
	}
	return nil
}

func (t *realTerminal) Size() (width, height int, err error) {
	if t.tty != nil {
		var w, h int
		w, h, err = t.tty.Size()
		if err == nil && w > 0 && h > 0 {
			return w, h, nil
		}
	}
	// go-tty may fail where the output descriptor still knows its size.
	if fd, ok := t.output.(interface{ Fd() uintptr }); ok {
		if w, h, err := term.GetSize(int(fd.Fd())); err == nil && w > 0 && h > 0 {
			return w, h, nil
		}
	}
	// Safe fallback to prevent divide by zero and negative layout math
	return 80, 24, err
}

// CursorPosition asks the terminal for the cursor position and parses the
// "ESC [ row ; col R" answer.
func (t *realTerminal) CursorPosition() (col, row int, err error) {
	if _, err := t.Write([]byte("\x1b[6n")); err != nil {
		return 0, 0, err
	}

	const (
		free = iota
		sawEsc
		sawBracket
	)
	state := free
	var report []rune
	deadline := time.After(t.reportTimeout)
	for {
		r, err := t.nextRune(deadline)
		if errors.Is(err, errReadTimeout) {
			// Keep whatever part of a key sequence already arrived.
			switch state {
			case sawEsc:
				t.pending = append(t.pending, '\x1b')
			case sawBracket:
				t.pending = append(t.pending, '\x1b', '[')
				t.pending = append(t.pending, report...)
			}
			return 0, 0, fmt.Errorf("%w: no answer within %s", errCursorReport, t.reportTimeout)
		}
		if err != nil {
			return 0, 0, err
		}
		switch state {
		case free:
			if r == '\x1b' {
				state = sawEsc
				continue
			}
			t.pending = append(t.pending, r)
		case sawEsc:
			if r == '[' {
				state = sawBracket
				report = report[:0]
				continue
			}
			t.pending = append(t.pending, '\x1b', r)
			state = free
		case sawBracket:
			if r == 'R' {
				return parseCursorReport(string(report))
			}
			if (r >= '0' && r <= '9') || r == ';' {
				report = append(report, r)
				continue
			}
			// Some other escape sequence (a key press) arrived first.
			t.pending = append(t.pending, '\x1b', '[')
			t.pending = append(t.pending, report...)
			t.pending = append(t.pending, r)
			state = free
		}
	}
}

// parseCursorReport parses the "row;col" body of a cursor position report.
func parseCursorReport(body string) (col, row int, err error) {
	rowText, colText, ok := strings.Cut(body, ";")
	if ok {
		row, err = strconv.Atoi(rowText)
		if err == nil {
			col, err = strconv.Atoi(colText)
		}
		if err == nil && row >= 1 && col >= 1 {
			return col, row, nil
		}
	}
	return 0, 0, fmt.Errorf("%w: %q", errCursorReport, body)
}

func (t *realTerminal) ReadRune() (rune, int, error) {
	if len(t.pending) > 0 {
		r := t.pending[0]
		t.pending = t.pending[1:]
		return r, 1, nil
	}
	r, err := t.nextRune(nil)
	if err != nil {
		return 0, 0, err
	}
	// Return size as 1 for single rune (compatible with io.RuneReader)
	return r, 1, nil
}

func (t *realTerminal) Close() error {
	// Prevent double-close which causes panic on Windows
	if t.closed {
		return nil
	}
	t.closed = true
	close(t.done)
	if t.tty != nil {
		return t.tty.Close()
	}
	return nil
}
