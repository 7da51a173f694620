package helpoverlay

import (
	"fmt"
	"strings"

	"mdsplit/internal/tui/state"
)

type HelpOverlay struct{}

func NewHelpOverlay() HelpOverlay { return HelpOverlay{} }

// View returns grouped keys help with the current focus and sync state.
func (HelpOverlay) View(s state.UIState) string {
	sync := "off"
	if s.SyncScroll {
		sync = "on"
	}
	sections := []struct {
		title string
		keys  []string
	}{
		{"Navigation", []string{"←/↑/↓/→: move cursor", "Home/End: line edges", "PgUp/PgDn, wheel: scroll pane", "Tab: switch pane"}},
		{"File", []string{"Ctrl+O: open", "Ctrl+S: save", "Ctrl+E: export HTML", "Alt+C: copy to clipboard"}},
		{"View", []string{"Alt+V: split/editor/preview", "Ctrl+T: dark/light theme", "Alt+W: wrap on/off", "Ctrl+Y: sync scroll on/off"}},
		{"Diff (Ctrl+D)", []string{"v: unified/side-by-side", "←/→: scroll saved", "Shift+←/→: scroll current", "Esc: close"}},
		{"Other", []string{"Ctrl+F: find, Enter: next match", "F1: toggle help", "Ctrl+Q: quit"}},
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Help (Focus: %s, Sync: %s)\n", s.Focus, sync)
	for _, sec := range sections {
		fmt.Fprintf(&b, "\n%s:\n", sec.title)
		for _, k := range sec.keys {
			fmt.Fprintf(&b, "  %s\n", k)
		}
	}
	return b.String()
}
