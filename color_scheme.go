package cmdprompt

import (
	"fmt"
	"strings"
)

// ColorScheme defines the color configuration for the prompt and its suggestion overlay.
//
// The overlay draws every entry in two cells: the trigger cell and the
// description cell. The highlighted entry swaps the two color pairs, so the
// selected trigger is drawn in the description colors and vice versa.
type ColorScheme struct {
	Name        string    `json:"name"`
	Prefix      Color     `json:"prefix"`
	Input       Color     `json:"input"`
	Trigger     ColorPair `json:"trigger"`
	Description ColorPair `json:"description"`
}

// ColorPair is a foreground/background combination.
type ColorPair struct {
	Fg Color `json:"fg"`
	Bg Color `json:"bg"`
}

// Color represents an RGB color with optional formatting.
type Color struct {
	R    uint8 `json:"r"`
	G    uint8 `json:"g"`
	B    uint8 `json:"b"`
	Bold bool  `json:"bold"`
}

// ThemeDefault is white on light blue triggers next to black on cyan descriptions.
var ThemeDefault = &ColorScheme{
	Name:   "default",
	Prefix: Color{R: 0, G: 255, B: 0, Bold: true},
	Input:  Color{R: 255, G: 255, B: 255},
	Trigger: ColorPair{
		Fg: Color{R: 255, G: 255, B: 255},
		Bg: Color{R: 85, G: 85, B: 255},
	},
	Description: ColorPair{
		Fg: Color{R: 0, G: 0, B: 0},
		Bg: Color{R: 0, G: 205, B: 205},
	},
}

// ThemeDark is a dark theme with light blue prefix and off-white text
var ThemeDark = &ColorScheme{
	Name:   "Dark",
	Prefix: Color{R: 102, G: 217, B: 239, Bold: true},
	Input:  Color{R: 248, G: 248, B: 242},
	Trigger: ColorPair{
		Fg: Color{R: 189, G: 147, B: 249},
		Bg: Color{R: 40, G: 42, B: 54},
	},
	Description: ColorPair{
		Fg: Color{R: 248, G: 248, B: 242},
		Bg: Color{R: 68, G: 71, B: 90},
	},
}

// ThemeLight is a light theme with blue prefix and dark gray text
var ThemeLight = &ColorScheme{
	Name:   "Light",
	Prefix: Color{R: 0, G: 119, B: 187, Bold: true},
	Input:  Color{R: 36, G: 41, B: 46},
	Trigger: ColorPair{
		Fg: Color{R: 36, G: 41, B: 46},
		Bg: Color{R: 225, G: 228, B: 232},
	},
	Description: ColorPair{
		Fg: Color{R: 88, G: 96, B: 105},
		Bg: Color{R: 246, G: 248, B: 250},
	},
}

// ThemeSolarizedDark is the Solarized Dark color scheme
var ThemeSolarizedDark = &ColorScheme{
	Name:   "Solarized Dark",
	Prefix: Color{R: 133, G: 153, B: 0, Bold: true},
	Input:  Color{R: 147, G: 161, B: 161},
	Trigger: ColorPair{
		Fg: Color{R: 253, G: 246, B: 227},
		Bg: Color{R: 38, G: 139, B: 210},
	},
	Description: ColorPair{
		Fg: Color{R: 131, G: 148, B: 150},
		Bg: Color{R: 7, G: 54, B: 66},
	},
}

// ThemeAccessible is a colorblind-safe theme with high contrast
var ThemeAccessible = &ColorScheme{
	Name:   "Accessible",
	Prefix: Color{R: 0, G: 114, B: 178, Bold: true},
	Input:  Color{R: 255, G: 255, B: 255},
	Trigger: ColorPair{
		Fg: Color{R: 0, G: 0, B: 0},
		Bg: Color{R: 230, G: 159, B: 0},
	},
	Description: ColorPair{
		Fg: Color{R: 255, G: 255, B: 255},
		Bg: Color{R: 0, G: 114, B: 178},
	},
}

// ThemeDracula is the Dracula color scheme
var ThemeDracula = &ColorScheme{
	Name:   "Dracula",
	Prefix: Color{R: 255, G: 121, B: 198, Bold: true},
	Input:  Color{R: 248, G: 248, B: 242},
	Trigger: ColorPair{
		Fg: Color{R: 40, G: 42, B: 54},
		Bg: Color{R: 139, G: 233, B: 253},
	},
	Description: ColorPair{
		Fg: Color{R: 248, G: 248, B: 242},
		Bg: Color{R: 98, G: 114, B: 164},
	},
}

// ToANSI converts a Color to a foreground ANSI escape sequence.
func (c Color) ToANSI() string {
	return c.sgr(38)
}

// ToANSIBackground converts a Color to a background ANSI escape sequence.
// Bold only applies to foreground text and is ignored here.
func (c Color) ToANSIBackground() string {
	return Color{R: c.R, G: c.G, B: c.B}.sgr(48)
}

func (c Color) sgr(layer int) string {
	var codes []string

	// Bold formatting comes first
	if c.Bold {
		codes = append(codes, "1")
	}

	// RGB color (true color support)
	codes = append(codes, fmt.Sprintf("%d;2;%d;%d;%d", layer, c.R, c.G, c.B))

	return fmt.Sprintf("\x1b[%sm", strings.Join(codes, ";"))
}

// ToANSI returns the foreground and background sequences of the pair.
func (p ColorPair) ToANSI() string {
	return p.Fg.ToANSI() + p.Bg.ToANSIBackground()
}

// Reset returns the ANSI reset sequence.
func Reset() string {
	return "\x1b[0m"
}
