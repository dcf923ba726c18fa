package cmdprompt

import (
	"sort"
	"strings"
)

// Suggestion is one catalog entry shown in the overlay.
type Suggestion struct {
	Trigger     string // The command name or special character that invokes it
	Description string // Description of the suggestion
}

// Catalog is the set of suggestions, kept sorted by trigger.
//
// The catalog is filled before the prompt starts reading and is not modified
// while a line is being edited.
type Catalog struct {
	entries []Suggestion
}

// NewCatalog creates a catalog from the given entries.
func NewCatalog(entries ...Suggestion) *Catalog {
	c := &Catalog{}
	for _, e := range entries {
		c.Add(e.Trigger, e.Description)
	}
	return c
}

// Add inserts an entry, keeping the catalog sorted by trigger (and by description for equal triggers).
func (c *Catalog) Add(trigger, description string) {
	entry := Suggestion{Trigger: trigger, Description: description}
	i := sort.Search(len(c.entries), func(i int) bool {
		return !lessSuggestion(c.entries[i], entry)
	})
	c.entries = append(c.entries, Suggestion{})
	copy(c.entries[i+1:], c.entries[i:])
	c.entries[i] = entry
}

func lessSuggestion(a, b Suggestion) bool {
	if a.Trigger != b.Trigger {
		return a.Trigger < b.Trigger
	}
	return a.Description < b.Description
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// Entries returns a copy of all entries in order.
func (c *Catalog) Entries() []Suggestion {
	if c == nil {
		return nil
	}
	return append([]Suggestion{}, c.entries...)
}

// Filter returns the entries whose trigger starts with input.
// An empty input matches the whole catalog.
func (c *Catalog) Filter(input string) []Suggestion {
	if c == nil {
		return nil
	}
	if input == "" {
		return c.Entries()
	}
	filtered := make([]Suggestion, 0, len(c.entries))
	for _, e := range c.entries {
		if strings.HasPrefix(e.Trigger, input) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// overlayLayout is the geometry of one overlay render.
type overlayLayout struct {
	anchorRow   int          // Row of the input line after any scrolling
	scroll      int          // Lines the screen has to scroll before drawing
	offset      int          // Index of the first visible entry
	visible     []Suggestion // Entries drawn, top to bottom
	highlight   int          // Index into visible of the selected entry, -1 for none
	triggerPad  int          // Trigger cell width
	describePad int          // Description cell width
}

// layoutOverlay computes which entries are drawn where.
//
// selection is 1-based (0 = nothing selected). The overlay needs one row per
// visible entry below the input line plus one spare row; when that does not
// fit under row, the screen scrolls by the overflow and the anchor moves up.
// At most maxRows entries are shown (0 = no limit besides the screen height);
// the window slides so that the selection is always visible.
func layoutOverlay(filtered []Suggestion, selection, row, height, maxRows int) overlayLayout {
	layout := overlayLayout{anchorRow: row, highlight: -1}
	if len(filtered) == 0 || height < 3 {
		return layout
	}

	rows := len(filtered)
	if maxRows > 0 && rows > maxRows {
		rows = maxRows
	}
	if rows > height-2 {
		rows = height - 2
	}

	if selection > rows {
		layout.offset = selection - rows
	}
	layout.visible = filtered[layout.offset : layout.offset+rows]
	if selection > 0 {
		layout.highlight = selection - 1 - layout.offset
	}

	if overflow := row + rows + 1 - height; overflow > 0 {
		layout.scroll = overflow
		layout.anchorRow = row - overflow
	}

	for _, s := range filtered {
		layout.triggerPad = max(layout.triggerPad, displayWidth(s.Trigger))
		layout.describePad = max(layout.describePad, displayWidth(s.Description))
	}
	layout.triggerPad += 2
	layout.describePad += 2
	return layout
}
