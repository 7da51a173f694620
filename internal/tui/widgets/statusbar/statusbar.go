package statusbar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"mdsplit/internal/tui/state"
	"mdsplit/internal/tui/util"
)

type StatusBar struct{}

func NewStatusBar() StatusBar { return StatusBar{} }

// View composes a one-line status reflecting key UI state, truncated to width.
// chips is the pre-rendered tag chip string.
func (StatusBar) View(s state.UIState, chips string, width int) string {
	name := s.FileName
	if name == "" {
		name = "[untitled]"
	}
	sync := "Sync: Off"
	if s.SyncScroll {
		sync = "Sync: On"
	}
	wrap := "Wrap: Off"
	if s.Wrap {
		wrap = "Wrap: On"
	}
	pos := fmt.Sprintf("Ln %d, Col %d", s.CursorRow+1, s.CursorCol+1)

	parts := []string{"[" + s.Focus.String() + "]", name, s.Layout.String(), s.Theme, sync, wrap, pos}
	if s.Searching {
		parts = append(parts, "/"+s.Query)
	}
	// Notices go before the chips so truncation eats the chips first.
	if s.Notice != "" {
		notice := s.Notice
		if s.NoticeErr && !util.NoColor(false) {
			notice = lipgloss.NewStyle().Foreground(util.PaletteFor(s.Theme).Danger).Bold(true).Render(notice)
		}
		parts = append(parts, notice)
	}
	if chips != "" {
		parts = append(parts, chips)
	}
	line := strings.Join(parts, "  ")
	if width > 0 {
		line = ansi.Truncate(line, width, "…")
	}
	return line
}
