package cmdprompt

// History is the process-lifetime log of confirmed lines.
//
// Entries are only ever appended. A line equal to the most recent entry is not
// stored again, but the same line may appear more than once when something else
// was entered in between:
//
//	h := cmdprompt.NewHistory()
//	h.AppendIfChanged("ls")
//	h.AppendIfChanged("ls")   // ignored
//	h.AppendIfChanged("pwd")
//	h.AppendIfChanged("ls")   // stored, history is now [ls pwd ls]
type History struct {
	enabled bool
	entries []string
}

// NewHistory creates an empty, enabled history.
func NewHistory() *History {
	return &History{
		enabled: true,
		entries: make([]string, 0),
	}
}

// IsEnabled returns whether confirmed lines are recorded.
func (h *History) IsEnabled() bool {
	return h.enabled
}

// AppendIfChanged appends line unless it equals the last entry.
// It reports whether the line was stored.
func (h *History) AppendIfChanged(line string) bool {
	if !h.enabled {
		return false
	}
	if n := len(h.entries); n > 0 && h.entries[n-1] == line {
		return false
	}
	h.entries = append(h.entries, line)
	return true
}

// Len returns the number of stored entries.
func (h *History) Len() int {
	return len(h.entries)
}

// At returns the entry at index i, or "" when i is out of range.
func (h *History) At(i int) string {
	if i < 0 || i >= len(h.entries) {
		return ""
	}
	return h.entries[i]
}

// Entries returns a copy of the stored entries, oldest first.
func (h *History) Entries() []string {
	return append([]string{}, h.entries...)
}

// historyCursor is the per-session position in the history.
//
// index == Len() is the blank slot that holds whatever the user was typing
// before navigation started (the draft).
type historyCursor struct {
	history *History
	index   int
	draft   []rune
}

func newHistoryCursor(h *History) historyCursor {
	return historyCursor{history: h, index: h.Len()}
}

// prev moves one entry back and returns its text.
func (c *historyCursor) prev(current []rune) ([]rune, bool) {
	if c.index <= 0 {
		return nil, false
	}
	if c.index == c.history.Len() {
		c.draft = append([]rune{}, current...)
	}
	c.index--
	return []rune(c.history.At(c.index)), true
}

// next moves one entry forward; stepping past the newest entry restores the draft.
func (c *historyCursor) next() ([]rune, bool) {
	n := c.history.Len()
	if n == 0 || c.index >= n {
		return nil, false
	}
	c.index++
	if c.index == n {
		return append([]rune{}, c.draft...), true
	}
	return []rune(c.history.At(c.index)), true
}
