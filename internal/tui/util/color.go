package util

import (
	"os"

	"github.com/charmbracelet/lipgloss"

	"mdsplit/internal/tui/state"
)

// NoColor returns true if color output should be disabled.
func NoColor(explicit bool) bool {
	if explicit {
		return true
	}
	return os.Getenv("NO_COLOR") != ""
}

// Palette defines a small set of colors used across widgets.
type Palette struct {
	Primary   lipgloss.Color
	Success   lipgloss.Color
	Danger    lipgloss.Color
	Warning   lipgloss.Color
	Muted     lipgloss.Color
	MutedDark lipgloss.Color
	Text      lipgloss.Color
}

// DefaultPalette returns the dark-background palette.
func DefaultPalette() Palette {
	return Palette{
		Primary:   lipgloss.Color("#3D6DFF"),
		Success:   lipgloss.Color("#2AA876"),
		Danger:    lipgloss.Color("#D9534F"),
		Warning:   lipgloss.Color("#F0AD4E"),
		Muted:     lipgloss.Color("#6C757D"),
		MutedDark: lipgloss.Color("#5A5A5A"),
		Text:      lipgloss.Color("#FFFFFF"),
	}
}

// LightPalette returns colors readable on a light background.
func LightPalette() Palette {
	return Palette{
		Primary:   lipgloss.Color("#1F4FD1"),
		Success:   lipgloss.Color("#1E7A55"),
		Danger:    lipgloss.Color("#B02A26"),
		Warning:   lipgloss.Color("#A86A0C"),
		Muted:     lipgloss.Color("#8A939B"),
		MutedDark: lipgloss.Color("#495057"),
		Text:      lipgloss.Color("#FFFFFF"),
	}
}

// PaletteFor returns the palette matching a preview theme.
func PaletteFor(theme string) Palette {
	if theme == state.ThemeLight {
		return LightPalette()
	}
	return DefaultPalette()
}
