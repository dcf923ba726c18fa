package cmdprompt

// KeyAction represents the action to perform when a key is pressed
type KeyAction int

// Key action constants define the actions that can be performed when keys are pressed.
// Printable characters that are not bound to anything are inserted as text.
const (
	ActionNone KeyAction = iota
	ActionConfirm
	ActionDeleteBackward
	ActionDeleteForward
	ActionMoveLeft
	ActionMoveRight
	ActionHistoryPrev
	ActionHistoryNext
	ActionMoveHome
	ActionMoveEnd
	ActionCycleForward
	ActionCycleBackward
	ActionKillToCursor
	ActionClearScreen
	ActionInterrupt
	ActionInsert
)

var actionNames = map[KeyAction]string{
	ActionNone:           "none",
	ActionConfirm:        "confirm",
	ActionDeleteBackward: "delete-backward",
	ActionDeleteForward:  "delete-forward",
	ActionMoveLeft:       "move-left",
	ActionMoveRight:      "move-right",
	ActionHistoryPrev:    "history-prev",
	ActionHistoryNext:    "history-next",
	ActionMoveHome:       "move-home",
	ActionMoveEnd:        "move-end",
	ActionCycleForward:   "cycle-forward",
	ActionCycleBackward:  "cycle-backward",
	ActionKillToCursor:   "kill-to-cursor",
	ActionClearScreen:    "clear-screen",
	ActionInterrupt:      "interrupt",
	ActionInsert:         "insert",
}

func (a KeyAction) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// Key is one decoded key event.
type Key struct {
	Action KeyAction
	Rune   rune // The typed character for ActionInsert
}

// KeyMap holds the key binding configuration
type KeyMap struct {
	bindings  map[rune]KeyAction
	sequences map[string]KeyAction
}

// NewDefaultKeyMap creates the default key bindings for the prompt.
//
// Default key bindings:
//   - Enter/Return: Confirm the line
//   - Tab / Shift+Tab: Select the next / previous suggestion
//   - Backspace: Delete character backwards
//   - Delete: Delete character forwards
//   - Left/Right: Move the cursor
//   - Up/Down: Navigate history
//   - Home/End, Ctrl+A/Ctrl+E: Move to line beginning/end
//   - Ctrl+U: Delete everything left of the cursor
//   - Ctrl+L: Clear the screen
//
// Ctrl+C is not bound. Bind it to ActionInterrupt to make Run return ErrInterrupted:
//
//	keyMap := cmdprompt.NewDefaultKeyMap()
//	keyMap.Bind('\x03', cmdprompt.ActionInterrupt)
func NewDefaultKeyMap() *KeyMap {
	km := &KeyMap{
		bindings:  make(map[rune]KeyAction),
		sequences: make(map[string]KeyAction),
	}

	km.bindings['\r'] = ActionConfirm
	km.bindings['\n'] = ActionConfirm
	km.bindings['\t'] = ActionCycleForward
	km.bindings['\x7f'] = ActionDeleteBackward // Backspace
	km.bindings['\b'] = ActionDeleteBackward   // Ctrl+H
	km.bindings['\x01'] = ActionMoveHome       // Ctrl+A
	km.bindings['\x05'] = ActionMoveEnd        // Ctrl+E
	km.bindings['\x15'] = ActionKillToCursor   // Ctrl+U
	km.bindings['\x0C'] = ActionClearScreen    // Ctrl+L

	// Escape sequences
	km.sequences["[A"] = ActionHistoryPrev
	km.sequences["[B"] = ActionHistoryNext
	km.sequences["[C"] = ActionMoveRight
	km.sequences["[D"] = ActionMoveLeft
	km.sequences["[H"] = ActionMoveHome
	km.sequences["[F"] = ActionMoveEnd
	km.sequences["OH"] = ActionMoveHome
	km.sequences["OF"] = ActionMoveEnd
	km.sequences["[1~"] = ActionMoveHome
	km.sequences["[4~"] = ActionMoveEnd
	km.sequences["[3~"] = ActionDeleteForward
	km.sequences["[Z"] = ActionCycleBackward // Shift+Tab

	return km
}

// Bind adds or updates a key binding for a single character.
func (km *KeyMap) Bind(key rune, action KeyAction) {
	km.bindings[key] = action
}

// BindSequence adds or updates an escape sequence binding.
// The sequence should not include the initial ESC character.
//
// Example:
//
//	keyMap := cmdprompt.NewDefaultKeyMap()
//	// Bind Page Up (ESC + [5~) to history navigation
//	keyMap.BindSequence("[5~", cmdprompt.ActionHistoryPrev)
func (km *KeyMap) BindSequence(seq string, action KeyAction) {
	km.sequences[seq] = action
}

// GetAction returns the action for a key, or ActionNone if not bound
func (km *KeyMap) GetAction(key rune) KeyAction {
	if km == nil || km.bindings == nil {
		return ActionNone
	}
	if action, exists := km.bindings[key]; exists {
		return action
	}
	return ActionNone
}

// GetSequenceAction returns the action for an escape sequence, or ActionNone if not bound
func (km *KeyMap) GetSequenceAction(seq string) KeyAction {
	if km == nil || km.sequences == nil {
		return ActionNone
	}
	if action, exists := km.sequences[seq]; exists {
		return action
	}
	return ActionNone
}

// runeReader is the input half of a screen.
type runeReader interface {
	ReadRune() (rune, int, error)
}

// keyReader turns the raw rune stream into Key events.
type keyReader struct {
	in     runeReader
	keyMap *KeyMap
}

// next blocks until one key event has been decoded.
// Unbound control characters and sequences decode to ActionNone.
func (k *keyReader) next() (Key, error) {
	r, _, err := k.in.ReadRune()
	if err != nil {
		return Key{}, err
	}

	if r == '\x1b' {
		seq, err := k.readEscapeSequence()
		if err != nil {
			return Key{}, err
		}
		return Key{Action: k.keyMap.GetSequenceAction(seq)}, nil
	}

	if action := k.keyMap.GetAction(r); action != ActionNone {
		return Key{Action: action, Rune: r}, nil
	}
	if isPrintable(r) {
		return Key{Action: ActionInsert, Rune: r}, nil
	}
	return Key{Action: ActionNone, Rune: r}, nil
}

// readEscapeSequence reads what follows ESC.
//
// CSI sequences ("[" parameters final) end at the first byte in '@'..'~';
// SS3 sequences ("O" x) are always two runes long.
func (k *keyReader) readEscapeSequence() (string, error) {
	first, _, err := k.in.ReadRune()
	if err != nil {
		return "", err
	}
	seq := []rune{first}

	switch first {
	case 'O':
		r, _, err := k.in.ReadRune()
		if err != nil {
			return "", err
		}
		return string(append(seq, r)), nil
	case '[':
		for range 16 { // Limit to prevent runaway reads on garbage input
			r, _, err := k.in.ReadRune()
			if err != nil {
				return "", err
			}
			seq = append(seq, r)
			if r >= '@' && r <= '~' {
				break
			}
		}
		return string(seq), nil
	default:
		// Alt+key and a lone ESC are not bound by default.
		return string(seq), nil
	}
}
