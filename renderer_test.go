package cmdprompt

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRenderer(t *testing.T) {
	t.Parallel()

	var output bytes.Buffer
	r := newRenderer(&output, ThemeDark, ">>> ")

	require.NotNil(t, r)
	assert.Equal(t, &output, r.output)
	assert.Equal(t, ThemeDark, r.colorScheme)
	assert.Equal(t, 4, r.prefixWidth())
	assert.Equal(t, 0, r.overlayRows)
}

func TestRendererAbsColumn(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
		buffer string
		column int
		want   int
	}{
		{name: "empty buffer", prefix: "$ ", buffer: "", column: 1, want: 3},
		{name: "end of ascii text", prefix: "$ ", buffer: "abc", column: 4, want: 6},
		{name: "middle of ascii text", prefix: "$ ", buffer: "abc", column: 2, want: 4},
		{name: "no prefix", prefix: "", buffer: "ab", column: 1, want: 1},
		{name: "wide characters", prefix: "$ ", buffer: "日本語", column: 3, want: 7},
		{name: "wide prefix", prefix: "日> ", buffer: "a", column: 2, want: 6},
		{name: "column past the end is clamped", prefix: "$ ", buffer: "ab", column: 9, want: 5},
		{name: "column before the start is clamped", prefix: "$ ", buffer: "ab", column: 0, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := newRenderer(&bytes.Buffer{}, ThemeDefault, tt.prefix)
			assert.Equal(t, tt.want, r.absColumn([]rune(tt.buffer), tt.column))
		})
	}
}

func TestRendererRepaintLine(t *testing.T) {
	t.Parallel()

	var output bytes.Buffer
	r := newRenderer(&output, ThemeDefault, "$ ")
	require.NoError(t, r.repaintLine(3, []rune("hello"), 2))

	want := "\x1b[3;1H" + clearLine +
		ThemeDefault.Prefix.ToANSI() + "$ " + Reset() +
		ThemeDefault.Input.ToANSI() + "hello" + Reset() +
		"\x1b[3;4H"
	assert.Equal(t, want, output.String())
}

func TestRendererRepaintEmptyLine(t *testing.T) {
	t.Parallel()

	mock := newMockTerminal("")
	r := newRenderer(mock, ThemeDefault, "> ")
	require.NoError(t, r.repaintLine(1, nil, 1))

	assert.Equal(t, ">", mock.line(1))
	assert.Equal(t, 3, mock.col)
	assert.NotContains(t, mock.output.String(), ThemeDefault.Input.ToANSI(), "no input colors for an empty buffer")
}

func TestRendererShiftTail(t *testing.T) {
	t.Parallel()

	mock := newMockTerminal("")
	r := newRenderer(mock, ThemeDefault, "$ ")
	require.NoError(t, r.repaintLine(1, []rune("hello"), 6))

	require.NoError(t, r.shiftTail(1, 2, []rune("hllo"), 2))
	assert.Equal(t, "$ hllo", mock.line(1))
	assert.Equal(t, 4, mock.col)
	assert.Equal(t, 1, mock.row)
}

func TestRendererRedrawTail(t *testing.T) {
	t.Parallel()

	mock := newMockTerminal("")
	r := newRenderer(mock, ThemeDefault, "$ ")
	require.NoError(t, r.repaintLine(1, []rune("hllo"), 2))

	require.NoError(t, r.redrawTail(1, 2, []rune("hello"), 3))
	assert.Equal(t, "$ hello", mock.line(1))
	assert.Equal(t, 5, mock.col)
}

func TestRendererClearOverlay(t *testing.T) {
	t.Parallel()

	mock := newMockTerminal("")
	r := newRenderer(mock, ThemeDefault, "$ ")

	layout := layoutOverlay([]Suggestion{{Trigger: "a", Description: "b"}, {Trigger: "c", Description: "d"}}, 0, 1, 24, 10)
	require.NoError(t, r.drawOverlay(layout, 1, 3, 80, 24))
	assert.Equal(t, 2, r.overlayRows)
	assert.NotEmpty(t, mock.line(2))
	assert.NotEmpty(t, mock.line(3))

	require.NoError(t, r.clearOverlay(1, 3))
	assert.Equal(t, 0, r.overlayRows)
	assert.Empty(t, mock.line(2))
	assert.Empty(t, mock.line(3))
	assert.Equal(t, 3, mock.col)
	assert.Equal(t, 1, mock.row)

	before := mock.output.Len()
	require.NoError(t, r.clearOverlay(1, 3))
	assert.Equal(t, before, mock.output.Len(), "nothing to clear writes nothing")
}

func TestRendererDrawOverlayReplacesPrevious(t *testing.T) {
	t.Parallel()

	mock := newMockTerminal("")
	r := newRenderer(mock, ThemeDefault, "$ ")

	three := layoutOverlay(numbered(3), 0, 1, 24, 10)
	require.NoError(t, r.drawOverlay(three, 1, 3, 80, 24))
	assert.NotEmpty(t, mock.line(4))

	one := layoutOverlay(numbered(1), 0, 1, 24, 10)
	require.NoError(t, r.drawOverlay(one, 1, 3, 80, 24))
	assert.Contains(t, mock.line(2), "a")
	assert.Empty(t, mock.line(3))
	assert.Empty(t, mock.line(4))
	assert.Equal(t, 1, r.overlayRows)
}

func TestRendererClearScreen(t *testing.T) {
	t.Parallel()

	mock := newMockTerminal("")
	r := newRenderer(mock, ThemeDefault, "$ ")
	_, err := mock.Write([]byte("\x1b[10;1Hnoise"))
	require.NoError(t, err)
	r.overlayRows = 2

	require.NoError(t, r.clearScreen([]rune("ab"), 2))
	assert.Empty(t, mock.line(10))
	assert.Equal(t, "$ ab", mock.line(1))
	assert.Equal(t, 4, mock.col)
	assert.Equal(t, 1, mock.row)
	assert.Equal(t, 0, r.overlayRows)
}

func TestRendererWriteError(t *testing.T) {
	t.Parallel()

	mock := newMockTerminal("")
	mock.writeErr = errors.New("broken pipe")
	r := newRenderer(mock, ThemeDefault, "$ ")

	assert.Error(t, r.writePrefix())
	assert.Error(t, r.newLine())
	assert.Error(t, r.repaintLine(1, []rune("a"), 1))
}
