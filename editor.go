package cmdprompt

import (
	"fmt"
	"slices"
	"strings"
)

// session is the state of one read cycle: everything between printing the
// prefix and returning a confirmed line.
//
// column is 1-based and always within [1, len(buffer)+1]; selection is 0 for
// "nothing selected" or a 1-based index into filtered. row is the terminal row
// of the input line as last reported by the screen.
type session struct {
	screen   screen
	renderer *renderer
	catalog  *Catalog
	history  *History
	nav      historyCursor

	buffer    []rune
	column    int
	row       int
	selection int
	filtered  []Suggestion

	maxSuggestions int
	refreshOnMove  bool
}

// sessionOptions carries the per-prompt settings a session needs.
type sessionOptions struct {
	maxSuggestions int
	refreshOnMove  bool
}

func newSession(sc screen, r *renderer, catalog *Catalog, history *History, opts sessionOptions) *session {
	return &session{
		screen:         sc,
		renderer:       r,
		catalog:        catalog,
		history:        history,
		nav:            newHistoryCursor(history),
		buffer:         []rune{},
		column:         1,
		filtered:       catalog.Filter(""),
		maxSuggestions: opts.maxSuggestions,
		refreshOnMove:  opts.refreshOnMove,
	}
}

// start prints the prefix at the beginning of a fresh line.
func (s *session) start() error {
	col, _, err := s.screen.CursorPosition()
	if err != nil {
		return fmt.Errorf("failed to query cursor position: %w", err)
	}
	if col != 1 {
		if err := s.renderer.newLine(); err != nil {
			return err
		}
	}
	if err := s.renderer.writePrefix(); err != nil {
		return err
	}
	return s.locate()
}

// locate refreshes the row of the input line from the screen.
func (s *session) locate() error {
	_, row, err := s.screen.CursorPosition()
	if err != nil {
		return fmt.Errorf("failed to query cursor position: %w", err)
	}
	s.row = row
	return nil
}

// text returns the current buffer content.
func (s *session) text() string {
	return string(s.buffer)
}

// setBuffer replaces the buffer and moves the cursor to its end.
func (s *session) setBuffer(text []rune) {
	s.buffer = text
	s.column = len(s.buffer) + 1
}

// handle applies one key event.
// It returns the confirmed line and done=true when the read cycle is over.
func (s *session) handle(key Key) (line string, done bool, err error) {
	if key.Action == ActionNone {
		return "", false, nil
	}
	if err := s.locate(); err != nil {
		return "", false, err
	}

	switch key.Action {
	case ActionInsert:
		if key.Rune == ' ' && s.selection != 0 {
			err = s.acceptSelection()
		} else {
			err = s.insertRune(key.Rune)
		}
	case ActionDeleteBackward:
		err = s.deleteBackward()
	case ActionDeleteForward:
		err = s.deleteForward()
	case ActionMoveLeft:
		err = s.moveLeft()
	case ActionMoveRight:
		err = s.moveRight()
	case ActionMoveHome:
		err = s.moveHome()
	case ActionMoveEnd:
		err = s.moveEnd()
	case ActionHistoryPrev:
		err = s.navigatePrev()
	case ActionHistoryNext:
		err = s.navigateNext()
	case ActionCycleForward:
		err = s.cycleForward()
	case ActionCycleBackward:
		err = s.cycleBackward()
	case ActionKillToCursor:
		err = s.killToCursor()
	case ActionClearScreen:
		err = s.clearScreen()
	case ActionInterrupt:
		if err := s.renderer.clearOverlay(s.row, s.renderer.absColumn(s.buffer, s.column)); err != nil {
			return "", false, err
		}
		return "", true, ErrInterrupted
	case ActionConfirm:
		return s.confirm()
	}
	return "", false, err
}

// insertRune inserts r at the cursor and redraws the tail of the line.
func (s *session) insertRune(r rune) error {
	from := s.column
	s.buffer = slices.Insert(s.buffer, from-1, r)
	s.column++
	if err := s.renderer.redrawTail(s.row, from, s.buffer, s.column); err != nil {
		return err
	}
	return s.refilter()
}

// deleteBackward removes the character left of the cursor.
func (s *session) deleteBackward() error {
	if s.column <= 1 {
		return nil
	}
	s.buffer = slices.Delete(s.buffer, s.column-2, s.column-1)
	s.column--
	if err := s.renderer.shiftTail(s.row, s.column, s.buffer, s.column); err != nil {
		return err
	}
	return s.refilter()
}

// deleteForward removes the character under the cursor.
func (s *session) deleteForward() error {
	if s.column > len(s.buffer) {
		return nil
	}
	s.buffer = slices.Delete(s.buffer, s.column-1, s.column)
	// From column 1 the shifted tail is the whole line, so no separate repaint.
	if err := s.renderer.shiftTail(s.row, s.column, s.buffer, s.column); err != nil {
		return err
	}
	return s.refilter()
}

func (s *session) moveLeft() error {
	if s.column <= 1 {
		return nil
	}
	s.column--
	return s.moved()
}

func (s *session) moveRight() error {
	if s.column > len(s.buffer) {
		return nil
	}
	s.column++
	return s.moved()
}

func (s *session) moveHome() error {
	s.column = 1
	return s.moved()
}

func (s *session) moveEnd() error {
	s.column = len(s.buffer) + 1
	return s.moved()
}

// moved places the terminal cursor after a pure cursor movement. The overlay
// is left as drawn unless the refresh-on-move policy is enabled.
func (s *session) moved() error {
	if err := s.renderer.moveTo(s.row, s.buffer, s.column); err != nil {
		return err
	}
	if s.refreshOnMove {
		return s.renderOverlay()
	}
	return nil
}

// killToCursor removes everything left of the cursor.
func (s *session) killToCursor() error {
	s.buffer = append([]rune{}, s.buffer[s.column-1:]...)
	s.column = 1
	if err := s.renderer.repaintLine(s.row, s.buffer, s.column); err != nil {
		return err
	}
	return s.refilter()
}

func (s *session) navigatePrev() error {
	text, ok := s.nav.prev(s.buffer)
	if !ok {
		return nil
	}
	return s.replaceFromHistory(text)
}

func (s *session) navigateNext() error {
	text, ok := s.nav.next()
	if !ok {
		return nil
	}
	return s.replaceFromHistory(text)
}

// replaceFromHistory swaps in a history entry. The overlay is closed since the
// selection no longer refers to the same filtered list.
func (s *session) replaceFromHistory(text []rune) error {
	s.setBuffer(text)
	s.selection = 0
	s.filtered = s.catalog.Filter(s.text())
	if err := s.renderer.clearOverlay(s.row, 1); err != nil {
		return err
	}
	return s.renderer.repaintLine(s.row, s.buffer, s.column)
}

func (s *session) cycleForward() error {
	if s.selection >= len(s.filtered) {
		return nil
	}
	s.selection++
	return s.renderOverlay()
}

func (s *session) cycleBackward() error {
	if s.selection <= 0 {
		return nil
	}
	s.selection--
	return s.renderOverlay()
}

// acceptSelection replaces the buffer with the selected trigger and a space.
func (s *session) acceptSelection() error {
	trigger := s.filtered[s.selection-1].Trigger
	s.setBuffer([]rune(trigger + " "))
	s.selection = 0
	s.filtered = s.catalog.Filter(s.text())
	if err := s.renderer.clearOverlay(s.row, 1); err != nil {
		return err
	}
	return s.renderer.repaintLine(s.row, s.buffer, s.column)
}

func (s *session) clearScreen() error {
	s.row = 1
	return s.renderer.clearScreen(s.buffer, s.column)
}

// confirm finishes the line.
//
// A selected suggestion wins over the typed text. A blank line starts a new
// prompt line and keeps the cycle going; anything else is trimmed, recorded in
// the history and returned.
func (s *session) confirm() (string, bool, error) {
	if s.selection > 0 && s.selection <= len(s.filtered) {
		s.setBuffer([]rune(s.filtered[s.selection-1].Trigger))
	}
	s.selection = 0

	if err := s.renderer.clearOverlay(s.row, 1); err != nil {
		return "", false, err
	}

	line := strings.TrimSpace(s.text())
	if line == "" {
		s.setBuffer([]rune{})
		s.filtered = s.catalog.Filter("")
		if err := s.renderer.newLine(); err != nil {
			return "", false, err
		}
		if err := s.renderer.writePrefix(); err != nil {
			return "", false, err
		}
		return "", false, s.locate()
	}

	if err := s.renderer.repaintLine(s.row, s.buffer, s.column); err != nil {
		return "", false, err
	}
	if err := s.renderer.newLine(); err != nil {
		return "", false, err
	}
	s.history.AppendIfChanged(line)
	return line, true, nil
}

// refilter recomputes the filtered list after the buffer changed and redraws the overlay.
func (s *session) refilter() error {
	s.selection = 0
	s.filtered = s.catalog.Filter(s.text())
	return s.renderOverlay()
}

// renderOverlay draws the overlay for the current filtered list and selection.
// With nothing to show, the old overlay is erased and the bare line repainted.
func (s *session) renderOverlay() error {
	col := s.renderer.absColumn(s.buffer, s.column)
	if len(s.filtered) == 0 {
		if err := s.renderer.clearOverlay(s.row, col); err != nil {
			return err
		}
		return s.renderer.repaintLine(s.row, s.buffer, s.column)
	}

	// A screen may report an error together with usable fallback dimensions.
	width, height, err := s.screen.Size()
	if err != nil && (width <= 0 || height <= 0) {
		return fmt.Errorf("failed to get terminal size: %w", err)
	}
	layout := layoutOverlay(s.filtered, s.selection, s.row, height, s.maxSuggestions)
	if err := s.renderer.drawOverlay(layout, s.row, col, width, height); err != nil {
		return err
	}
	s.row = layout.anchorRow
	return nil
}
