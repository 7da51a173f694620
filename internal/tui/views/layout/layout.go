// Package layout composes pane and overlay blocks into the screen body.
package layout

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"mdsplit/internal/tui/state"
	help "mdsplit/internal/tui/widgets/helpoverlay"
)

var boxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 2)

// Panes joins two equally tall blocks with a one-column separator. The
// separator uses active when the right pane has focus.
func Panes(left, right string, height int, rightFocused bool, active, idle lipgloss.Style) string {
	style := idle
	if rightFocused {
		style = active
	}
	sep := style.Render(strings.TrimSuffix(strings.Repeat("│\n", max(1, height)), "\n"))
	return lipgloss.JoinHorizontal(lipgloss.Top, left, sep, right)
}

// Overlay centers content in a bordered box filling width x height.
func Overlay(content string, width, height int) string {
	box := boxStyle.Render(strings.TrimRight(content, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

// Help renders the key help overlay for the body area.
func Help(s state.UIState, height int) string {
	return Overlay(help.NewHelpOverlay().View(s), s.Width, height)
}
