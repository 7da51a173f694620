package tagchips

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"mdsplit/internal/tui/state"
	"mdsplit/internal/tui/util"
)

// View renders document tags in a stable order using colored chips when
// possible and ASCII fallbacks when color is disabled or not desired.
func View(tags []state.Tag, pal util.Palette, noColor bool) string {
	if len(tags) == 0 {
		return ""
	}
	noColor = util.NoColor(noColor)

	parts := make([]string, 0, len(tags))
	for _, t := range tags {
		parts = append(parts, renderChip(t, pal, noColor))
	}
	return strings.Join(parts, " ")
}

func renderChip(t state.Tag, pal util.Palette, noColor bool) string {
	label := chipLabel(t)
	if noColor {
		return fmt.Sprintf("[%s]", label)
	}
	return chipStyle(t, pal).Render(label)
}

func chipLabel(t state.Tag) string {
	switch t.Kind {
	case state.MODIFIED:
		return "Modified"
	case state.WORDS:
		return fmt.Sprintf("%d words", t.Value)
	case state.LINES:
		return fmt.Sprintf("%d lines", t.Value)
	case state.CHARS:
		return fmt.Sprintf("%d chars", t.Value)
	case state.READ_MIN:
		return fmt.Sprintf("%d min read", t.Value)
	default:
		return "Tag"
	}
}

func chipStyle(t state.Tag, pal util.Palette) lipgloss.Style {
	base := lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(pal.Text)
	switch t.Kind {
	case state.MODIFIED:
		return base.Background(pal.Warning)
	case state.WORDS:
		return base.Background(pal.Primary)
	case state.LINES:
		return base.Background(pal.Success)
	case state.CHARS:
		return base.Background(pal.Muted)
	default:
		return base.Background(pal.MutedDark)
	}
}
