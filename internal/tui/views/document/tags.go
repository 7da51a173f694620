package document

import (
	doc "mdsplit/internal/document"
	"mdsplit/internal/tui/util"
	chips "mdsplit/internal/tui/widgets/tagchips"
)

// RenderTags is a thin adapter from document stats to the TagChips widget.
func RenderTags(st doc.Stats, modified bool, theme string, noColor bool) string {
	return chips.View(util.ComputeTags(st, modified), util.PaletteFor(theme), noColor)
}
