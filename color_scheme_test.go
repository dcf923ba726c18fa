package cmdprompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColorToANSI(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		color Color
		want  string
	}{
		{name: "black", color: Color{}, want: "\x1b[38;2;0;0;0m"},
		{name: "rgb", color: Color{R: 1, G: 2, B: 3}, want: "\x1b[38;2;1;2;3m"},
		{name: "bold", color: Color{R: 255, G: 255, B: 255, Bold: true}, want: "\x1b[1;38;2;255;255;255m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.color.ToANSI())
		})
	}
}

func TestColorToANSIBackground(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "\x1b[48;2;0;205;205m", Color{R: 0, G: 205, B: 205}.ToANSIBackground())
	assert.Equal(t, "\x1b[48;2;9;9;9m", Color{R: 9, G: 9, B: 9, Bold: true}.ToANSIBackground(), "bold does not apply to backgrounds")
}

func TestColorPairToANSI(t *testing.T) {
	t.Parallel()

	pair := ColorPair{Fg: Color{R: 255, G: 255, B: 255}, Bg: Color{R: 85, G: 85, B: 255}}
	assert.Equal(t, "\x1b[38;2;255;255;255m\x1b[48;2;85;85;255m", pair.ToANSI())
}

func TestThemes(t *testing.T) {
	t.Parallel()

	themes := []*ColorScheme{ThemeDefault, ThemeDark, ThemeLight, ThemeSolarizedDark, ThemeAccessible, ThemeDracula}
	seen := make(map[string]bool)
	for _, theme := range themes {
		assert.NotEmpty(t, theme.Name)
		assert.False(t, seen[theme.Name], "duplicate theme name %q", theme.Name)
		seen[theme.Name] = true
		assert.NotEqual(t, theme.Trigger, theme.Description, "%s: highlighted rows swap the pairs, so they must differ", theme.Name)
	}
}

func TestReset(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "\x1b[0m", Reset())
}
