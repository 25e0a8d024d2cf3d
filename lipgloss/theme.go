// Package lipgloss provides theme implementations using the Lipgloss styling library.
package lipgloss

import (
	"fmt"

	"github.com/fwojciec/redline"
)

// Compile-time interface verification.
var _ redline.Theme = (*Theme)(nil)

// Theme names accepted by ThemeByName.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Theme implements redline.Theme with Lipgloss-compatible colors.
type Theme struct {
	styles redline.Styles
}

// Styles returns the color styles for this theme.
func (t *Theme) Styles() redline.Styles {
	return t.styles
}

// DefaultTheme returns the default theme (dark background optimized).
func DefaultTheme() *Theme {
	return DarkTheme()
}

// ThemeByName returns the named theme. An empty name selects the default.
func ThemeByName(name string) (*Theme, error) {
	switch name {
	case "", ThemeDark:
		return DarkTheme(), nil
	case ThemeLight:
		return LightTheme(), nil
	}
	return nil, fmt.Errorf("unknown theme %q", name)
}

// DarkTheme returns a theme optimized for dark terminal backgrounds.
// Annotation backgrounds are dark enough for the text on top to stay readable.
func DarkTheme() *Theme {
	return &Theme{
		styles: redline.Styles{
			Text: redline.ColorPair{Foreground: "#cdd6f4"},
			Risk: redline.ColorPair{
				Foreground: "#f38ba8", // Red
				Background: "#3f0001",
			},
			Ambiguous: redline.ColorPair{
				Foreground: "#f9e2af", // Yellow
				Background: "#3a3000",
			},
			Missing: redline.ColorPair{
				Foreground: "#89b4fa", // Blue
				Background: "#0b2447",
			},
			Focused: redline.ColorPair{
				Foreground: "#1e1e2e", // Dark text on bright background
				Background: "#f5c2e7",
			},
			Popover: redline.ColorPair{
				Foreground: "#cdd6f4",
				Background: "#313244", // Dark surface
			},
			Header: redline.ColorPair{Foreground: "#cba6f7"},
			Muted:  redline.ColorPair{Foreground: "#6c7086"},

			Same:    redline.ColorPair{Foreground: "#a6adc8"},
			Changed: redline.ColorPair{Foreground: "#f9e2af", Background: "#2a2500"},
			Added:   redline.ColorPair{Foreground: "#a6e3a1", Background: "#004000"},
			Removed: redline.ColorPair{Foreground: "#f38ba8", Background: "#3f0001"},
			ChangedHighlight: redline.ColorPair{
				Foreground: "#1e1e2e",
				Background: "#f9e2af",
			},
			Note: redline.ColorPair{Foreground: "#fab387"}, // Peach
		},
	}
}

// LightTheme returns a theme optimized for light terminal backgrounds.
func LightTheme() *Theme {
	return &Theme{
		styles: redline.Styles{
			Text: redline.ColorPair{Foreground: "#4c4f69"},
			Risk: redline.ColorPair{
				Foreground: "#d20f39", // Red
				Background: "#f4d4d4",
			},
			Ambiguous: redline.ColorPair{
				Foreground: "#8a5a00", // Dark amber, yellow is unreadable on white
				Background: "#faf0c8",
			},
			Missing: redline.ColorPair{
				Foreground: "#1e66f5", // Blue
				Background: "#dce6fa",
			},
			Focused: redline.ColorPair{
				Foreground: "#ffffff", // White text on dark background
				Background: "#8839ef",
			},
			Popover: redline.ColorPair{
				Foreground: "#4c4f69",
				Background: "#e6e9ef", // Light surface
			},
			Header: redline.ColorPair{Foreground: "#8839ef"},
			Muted:  redline.ColorPair{Foreground: "#9ca0b0"},

			Same:    redline.ColorPair{Foreground: "#6c6f85"},
			Changed: redline.ColorPair{Foreground: "#8a5a00", Background: "#faf0c8"},
			Added:   redline.ColorPair{Foreground: "#40a02b", Background: "#d4f4d4"},
			Removed: redline.ColorPair{Foreground: "#d20f39", Background: "#f4d4d4"},
			ChangedHighlight: redline.ColorPair{
				Foreground: "#ffffff",
				Background: "#df8e1d",
			},
			Note: redline.ColorPair{Foreground: "#fe640b"},
		},
	}
}
