package layout

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"mdsplit/internal/tui/state"
)

func TestPanes(t *testing.T) {
	out := ansi.Strip(Panes("ab\ncd", "xy\nzw", 2, false, lipgloss.NewStyle(), lipgloss.NewStyle()))
	assert.Equal(t, "ab│xy\ncd│zw", out)
}

func TestHelpFillsBody(t *testing.T) {
	out := Help(state.UIState{Width: 80}, 40)
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 40)
	assert.Contains(t, ansi.Strip(out), "Help (Focus: EDITOR")
	for _, l := range lines {
		assert.LessOrEqual(t, ansi.StringWidth(l), 80)
	}
}
