// Package document holds the markdown source buffer and the file and
// clipboard actions performed on it.
package document

import "strings"

// Buffer is the editable markdown source. The cursor is addressed in runes.
type Buffer struct {
	lines    [][]rune
	row, col int
	saved    string
}

// NewBuffer returns a buffer holding text, marked as saved.
func NewBuffer(text string) *Buffer {
	b := &Buffer{}
	b.Load(text)
	return b
}

// Load replaces the contents and marks them saved.
func (b *Buffer) Load(text string) {
	b.SetText(text)
	b.saved = b.Text()
}

// SetText replaces the contents and moves the cursor to the start.
func (b *Buffer) SetText(text string) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	parts := strings.Split(text, "\n")
	b.lines = make([][]rune, len(parts))
	for i, p := range parts {
		b.lines[i] = []rune(p)
	}
	b.row, b.col = 0, 0
}

// Text returns the contents joined with newlines.
func (b *Buffer) Text() string {
	var sb strings.Builder
	for i, l := range b.lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(l))
	}
	return sb.String()
}

// Lines returns a copy of every line.
func (b *Buffer) Lines() []string {
	out := make([]string, len(b.lines))
	for i, l := range b.lines {
		out[i] = string(l)
	}
	return out
}

func (b *Buffer) LineCount() int { return len(b.lines) }

// Cursor returns the zero-based row and rune column.
func (b *Buffer) Cursor() (row, col int) { return b.row, b.col }

// SetCursor moves the cursor, clamping to the buffer.
func (b *Buffer) SetCursor(row, col int) {
	row = max(0, min(row, len(b.lines)-1))
	b.row = row
	b.col = max(0, min(col, len(b.lines[row])))
}

// Modified reports whether the text differs from the last saved mark.
func (b *Buffer) Modified() bool { return b.Text() != b.saved }

// MarkSaved records the current text as saved.
func (b *Buffer) MarkSaved() { b.saved = b.Text() }

// Saved returns the text as of the last saved mark.
func (b *Buffer) Saved() string { return b.saved }

// InsertRunes inserts at the cursor. Newlines split the line.
func (b *Buffer) InsertRunes(rs []rune) {
	for _, r := range rs {
		switch r {
		case '\r':
			continue
		case '\n':
			b.InsertNewline()
		default:
			line := b.lines[b.row]
			next := make([]rune, 0, len(line)+1)
			next = append(next, line[:b.col]...)
			next = append(next, r)
			next = append(next, line[b.col:]...)
			b.lines[b.row] = next
			b.col++
		}
	}
}

// InsertNewline splits the current line at the cursor.
func (b *Buffer) InsertNewline() {
	line := b.lines[b.row]
	head := append([]rune(nil), line[:b.col]...)
	tail := append([]rune(nil), line[b.col:]...)

	lines := make([][]rune, 0, len(b.lines)+1)
	lines = append(lines, b.lines[:b.row]...)
	lines = append(lines, head, tail)
	lines = append(lines, b.lines[b.row+1:]...)
	b.lines = lines
	b.row++
	b.col = 0
}

// Backspace removes the rune before the cursor, joining lines at column 0.
func (b *Buffer) Backspace() {
	if b.col > 0 {
		line := b.lines[b.row]
		b.lines[b.row] = append(line[:b.col-1:b.col-1], line[b.col:]...)
		b.col--
		return
	}
	if b.row == 0 {
		return
	}
	prev := b.lines[b.row-1]
	b.col = len(prev)
	b.lines[b.row-1] = append(prev[:len(prev):len(prev)], b.lines[b.row]...)
	b.lines = append(b.lines[:b.row], b.lines[b.row+1:]...)
	b.row--
}

// Delete removes the rune under the cursor, joining lines at end of line.
func (b *Buffer) Delete() {
	line := b.lines[b.row]
	if b.col < len(line) {
		b.lines[b.row] = append(line[:b.col:b.col], line[b.col+1:]...)
		return
	}
	if b.row == len(b.lines)-1 {
		return
	}
	b.lines[b.row] = append(line[:len(line):len(line)], b.lines[b.row+1]...)
	b.lines = append(b.lines[:b.row+1], b.lines[b.row+2:]...)
}

func (b *Buffer) MoveLeft() {
	switch {
	case b.col > 0:
		b.col--
	case b.row > 0:
		b.row--
		b.col = len(b.lines[b.row])
	}
}

func (b *Buffer) MoveRight() {
	switch {
	case b.col < len(b.lines[b.row]):
		b.col++
	case b.row < len(b.lines)-1:
		b.row++
		b.col = 0
	}
}

func (b *Buffer) MoveUp() {
	if b.row > 0 {
		b.SetCursor(b.row-1, b.col)
	}
}

func (b *Buffer) MoveDown() {
	if b.row < len(b.lines)-1 {
		b.SetCursor(b.row+1, b.col)
	}
}

func (b *Buffer) Home() { b.col = 0 }

func (b *Buffer) End() { b.col = len(b.lines[b.row]) }
