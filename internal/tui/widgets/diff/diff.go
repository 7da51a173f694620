package diff

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	dmp "github.com/sergi/go-diff/diffmatchpatch"

	"mdsplit/internal/tui/state"
)

var (
	diffDelLine = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "203"})
	diffAddLine = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "114"})
	diffDelChar = diffDelLine.Underline(true)
	diffAddChar = diffAddLine.Underline(true)
	faint       = lipgloss.NewStyle().Faint(true)
	headerStyle = lipgloss.NewStyle().Bold(true)
)

type DiffView struct{}

func NewDiffView() DiffView { return DiffView{} }

// View renders the difference between the last saved text and the buffer.
// Unified prefixes lines with +/- and highlights changed characters;
// SideBySide aligns the two versions in columns with a vertical separator.
func (DiffView) View(s state.UIState, saved, current string) string {
	rows := diffRows(saved, current)
	if s.DiffView == state.SideBySide {
		return sideBySide(rows, s)
	}
	return unified(rows)
}

type rowKind int

const (
	rowEqual rowKind = iota
	rowChanged
	rowDeleted
	rowInserted
)

type row struct {
	kind        rowKind
	left, right string
}

// diffRows aligns saved and current line by line. A deletion directly
// followed by an insertion is paired into changed rows.
func diffRows(saved, current string) []row {
	d := dmp.New()
	a, b, lines := d.DiffLinesToChars(terminate(saved), terminate(current))
	diffs := d.DiffCharsToLines(d.DiffMain(a, b, false), lines)

	var rows []row
	for i := 0; i < len(diffs); i++ {
		df := diffs[i]
		switch df.Type {
		case dmp.DiffEqual:
			for _, l := range splitLines(df.Text) {
				rows = append(rows, row{kind: rowEqual, left: l, right: l})
			}
		case dmp.DiffDelete:
			del := splitLines(df.Text)
			var ins []string
			if i+1 < len(diffs) && diffs[i+1].Type == dmp.DiffInsert {
				ins = splitLines(diffs[i+1].Text)
				i++
			}
			n := min(len(del), len(ins))
			for j := 0; j < n; j++ {
				rows = append(rows, row{kind: rowChanged, left: del[j], right: ins[j]})
			}
			for _, l := range del[n:] {
				rows = append(rows, row{kind: rowDeleted, left: l})
			}
			for _, l := range ins[n:] {
				rows = append(rows, row{kind: rowInserted, right: l})
			}
		case dmp.DiffInsert:
			for _, l := range splitLines(df.Text) {
				rows = append(rows, row{kind: rowInserted, right: l})
			}
		}
	}
	return rows
}

func terminate(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

func changed(rows []row) bool {
	for _, r := range rows {
		if r.kind != rowEqual {
			return true
		}
	}
	return false
}

func unified(rows []row) string {
	var sb strings.Builder
	sb.WriteString(headerStyle.Render("SAVED vs CURRENT (Unified)") + "\n")
	if !changed(rows) {
		sb.WriteString("No changes\n")
		return sb.String()
	}
	for _, r := range rows {
		switch r.kind {
		case rowEqual:
			sb.WriteString("  " + faint.Render(r.left) + "\n")
		case rowDeleted:
			sb.WriteString(diffDelLine.Render("- "+r.left) + "\n")
		case rowInserted:
			sb.WriteString(diffAddLine.Render("+ "+r.right) + "\n")
		case rowChanged:
			d := dmp.New()
			diffs := d.DiffMain(r.left, r.right, false)
			diffs = d.DiffCleanupSemantic(diffs)

			sb.WriteString(diffDelLine.Render("- "))
			for _, df := range diffs {
				switch df.Type {
				case dmp.DiffDelete:
					sb.WriteString(diffDelChar.Render(df.Text))
				case dmp.DiffEqual:
					sb.WriteString(diffDelLine.Render(df.Text))
				}
			}
			sb.WriteString("\n")

			sb.WriteString(diffAddLine.Render("+ "))
			for _, df := range diffs {
				switch df.Type {
				case dmp.DiffInsert:
					sb.WriteString(diffAddChar.Render(df.Text))
				case dmp.DiffEqual:
					sb.WriteString(diffAddLine.Render(df.Text))
				}
			}
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func sideBySide(rows []row, s state.UIState) string {
	const sep = " │ "
	colWidth := 40
	if s.Width > 0 {
		colWidth = max(10, (s.Width-len([]rune(sep)))/2)
	}
	textWidth := colWidth - 2 // marker

	var sb strings.Builder
	sb.WriteString(pad(headerStyle.Render("SAVED"), colWidth) + sep + headerStyle.Render("CURRENT") + "\n")
	if !changed(rows) {
		sb.WriteString("No changes\n")
		return sb.String()
	}
	for _, r := range rows {
		l := clip(r.left, textWidth, s.ScrollHLeft)
		rt := clip(r.right, textWidth, s.ScrollHRight)
		var left, right string
		switch r.kind {
		case rowEqual:
			left, right = faint.Render("  "+l), faint.Render("  "+rt)
		case rowChanged:
			left, right = diffDelLine.Render("- "+l), diffAddLine.Render("+ "+rt)
		case rowDeleted:
			left = diffDelLine.Render("- " + l)
		case rowInserted:
			right = diffAddLine.Render("+ " + rt)
		}
		fmt.Fprintf(&sb, "%s%s%s\n", pad(left, colWidth), sep, right)
	}
	return sb.String()
}

func clip(s string, width int, start int) string {
	runes := []rune(s)
	if start < 0 {
		start = 0
	}
	if start >= len(runes) {
		return ""
	}
	end := min(start+width, len(runes))
	return string(runes[start:end])
}

func pad(s string, width int) string {
	if w := ansi.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
