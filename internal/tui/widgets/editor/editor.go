package editor

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"mdsplit/internal/tui/state"
	"mdsplit/internal/tui/util"
)

type Editor struct{}

func NewEditor() Editor { return Editor{} }

// Layout is a rendered buffer plus the mapping from buffer rows to the
// visual lines they occupy.
type Layout struct {
	Content    string
	CursorLine int   // visual line holding the cursor
	RowStarts  []int // first visual line of each buffer row
}

// RowAt returns the buffer row that owns visual line.
func (l Layout) RowAt(line int) int {
	i := sort.Search(len(l.RowStarts), func(i int) bool { return l.RowStarts[i] > line })
	return max(0, i-1)
}

// GutterWidth is the width of the line-number column for n lines.
func GutterWidth(n int) int {
	return len(strconv.Itoa(max(1, n))) + 1
}

// View renders lines with a line-number gutter into width cells. With
// s.Wrap, long lines continue on the next visual line; without it the
// window starts at s.EditorHScroll.
func (Editor) View(s state.UIState, lines []string, width int) Layout {
	pal := util.PaletteFor(s.Theme)
	gutterStyle := lipgloss.NewStyle().Foreground(pal.Muted)
	cursorStyle := lipgloss.NewStyle().Reverse(true)
	if s.Focus != state.EDITOR {
		cursorStyle = lipgloss.NewStyle().Underline(true)
	}

	gw := GutterWidth(len(lines))
	tw := max(1, width-gw)

	var b strings.Builder
	out := Layout{RowStarts: make([]int, len(lines))}
	visual := 0
	for row, line := range lines {
		out.RowStarts[row] = visual
		runes := []rune(strings.ReplaceAll(line, "\t", " "))

		for i, chunk := range chunks(s, runes, row, tw) {
			if visual > 0 {
				b.WriteByte('\n')
			}
			if i == 0 {
				b.WriteString(gutterStyle.Render(fmt.Sprintf("%*d ", gw-1, row+1)))
			} else {
				b.WriteString(strings.Repeat(" ", gw))
			}
			if row == s.CursorRow && s.CursorCol >= chunk.start && s.CursorCol < chunk.start+tw {
				out.CursorLine = visual
				p := s.CursorCol - chunk.start
				b.WriteString(withCursor(chunk.text, p, cursorStyle))
			} else {
				b.WriteString(string(chunk.text))
			}
			visual++
		}
	}
	out.Content = b.String()
	return out
}

type chunk struct {
	start int // rune offset into the line
	text  []rune
}

func chunks(s state.UIState, runes []rune, row, tw int) []chunk {
	if !s.Wrap {
		start := min(s.EditorHScroll, len(runes))
		end := min(start+tw, len(runes))
		return []chunk{{start: s.EditorHScroll, text: runes[start:end]}}
	}
	var out []chunk
	for start := 0; start < len(runes); start += tw {
		out = append(out, chunk{start: start, text: runes[start:min(start+tw, len(runes))]})
	}
	// The cursor sits after the last rune of a line that fills its last chunk.
	if len(out) == 0 || (row == s.CursorRow && s.CursorCol == len(runes) && len(runes)%tw == 0) {
		out = append(out, chunk{start: len(runes)})
	}
	return out
}

func withCursor(text []rune, p int, style lipgloss.Style) string {
	if p >= len(text) {
		return string(text) + strings.Repeat(" ", p-len(text)) + style.Render(" ")
	}
	return string(text[:p]) + style.Render(string(text[p])) + string(text[p+1:])
}
