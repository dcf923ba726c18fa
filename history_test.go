package cmdprompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHistory(t *testing.T) {
	t.Parallel()

	h := NewHistory()
	assert.True(t, h.IsEnabled(), "Expected history to be enabled by default")
	assert.Equal(t, 0, h.Len())
	assert.Empty(t, h.Entries())
}

func TestHistoryAppendIfChanged(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		lines []string
		want  []string
	}{
		{
			name:  "repeated line is stored once",
			lines: []string{"a", "a"},
			want:  []string{"a"},
		},
		{
			name:  "dedup is adjacency only",
			lines: []string{"a", "b", "a"},
			want:  []string{"a", "b", "a"},
		},
		{
			name:  "longer run",
			lines: []string{"ls", "ls", "pwd", "pwd", "pwd", "ls"},
			want:  []string{"ls", "pwd", "ls"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := NewHistory()
			for _, line := range tt.lines {
				h.AppendIfChanged(line)
			}
			assert.Equal(t, tt.want, h.Entries())
			assert.Equal(t, len(tt.want), h.Len())
		})
	}
}

func TestHistoryNoAdjacentDuplicates(t *testing.T) {
	t.Parallel()

	h := NewHistory()
	for _, line := range []string{"x", "y", "y", "x", "x", "z", "z", "x"} {
		h.AppendIfChanged(line)
	}

	entries := h.Entries()
	for i := 1; i < len(entries); i++ {
		assert.NotEqual(t, entries[i-1], entries[i], "adjacent entries at %d", i)
	}
}

func TestHistoryAppendReportsStored(t *testing.T) {
	t.Parallel()

	h := NewHistory()
	assert.True(t, h.AppendIfChanged("a"))
	assert.False(t, h.AppendIfChanged("a"))
	assert.True(t, h.AppendIfChanged("b"))
}

func TestHistoryDisabled(t *testing.T) {
	t.Parallel()

	h := &History{enabled: false}
	assert.False(t, h.AppendIfChanged("a"))
	assert.Equal(t, 0, h.Len())
}

func TestHistoryAt(t *testing.T) {
	t.Parallel()

	h := NewHistory()
	h.AppendIfChanged("first")
	h.AppendIfChanged("second")

	assert.Equal(t, "first", h.At(0))
	assert.Equal(t, "second", h.At(1))
	assert.Empty(t, h.At(-1))
	assert.Empty(t, h.At(2))
}

func TestHistoryEntriesIsCopy(t *testing.T) {
	t.Parallel()

	h := NewHistory()
	h.AppendIfChanged("a")
	entries := h.Entries()
	entries[0] = "changed"
	assert.Equal(t, "a", h.At(0))
}

func TestHistoryCursor(t *testing.T) {
	t.Parallel()

	t.Run("empty history does nothing", func(t *testing.T) {
		t.Parallel()

		c := newHistoryCursor(NewHistory())
		_, ok := c.prev([]rune("draft"))
		assert.False(t, ok)
		_, ok = c.next()
		assert.False(t, ok)
	})

	t.Run("prev walks back and stops at the oldest entry", func(t *testing.T) {
		t.Parallel()

		h := NewHistory()
		h.AppendIfChanged("one")
		h.AppendIfChanged("two")
		c := newHistoryCursor(h)

		text, ok := c.prev(nil)
		require.True(t, ok)
		assert.Equal(t, "two", string(text))

		text, ok = c.prev(text)
		require.True(t, ok)
		assert.Equal(t, "one", string(text))

		_, ok = c.prev(text)
		assert.False(t, ok)
	})

	t.Run("next at the draft slot does nothing", func(t *testing.T) {
		t.Parallel()

		h := NewHistory()
		h.AppendIfChanged("one")
		c := newHistoryCursor(h)
		_, ok := c.next()
		assert.False(t, ok)
	})

	t.Run("prev then next restores the draft", func(t *testing.T) {
		t.Parallel()

		h := NewHistory()
		h.AppendIfChanged("one")
		h.AppendIfChanged("two")
		c := newHistoryCursor(h)

		_, ok := c.prev([]rune("typing"))
		require.True(t, ok)
		text, ok := c.next()
		require.True(t, ok)
		assert.Equal(t, "typing", string(text))
	})

	t.Run("round trip through several entries", func(t *testing.T) {
		t.Parallel()

		h := NewHistory()
		for _, line := range []string{"a", "b", "c"} {
			h.AppendIfChanged(line)
		}
		c := newHistoryCursor(h)

		text := []rune("draft")
		for range 3 {
			var ok bool
			text, ok = c.prev(text)
			require.True(t, ok)
		}
		assert.Equal(t, "a", string(text))

		text, _ = c.prev(text) // already at the oldest entry
		assert.Nil(t, text)

		for _, want := range []string{"b", "c", "draft"} {
			next, ok := c.next()
			require.True(t, ok)
			assert.Equal(t, want, string(next))
		}
	})
}
