package document

import (
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// Find returns the first case-insensitive match of query that starts after
// the cursor, wrapping to the top of the buffer. Positions are in runes.
func (b *Buffer) Find(query string) (row, col int, ok bool) {
	q := []rune(strings.ToLower(query))
	if len(q) == 0 {
		return 0, 0, false
	}
	n := len(b.lines)
	for i := 0; i <= n; i++ {
		r := (b.row + i) % n
		from := 0
		if i == 0 {
			from = b.col + 1
		}
		if c := indexFold(b.lines[r], q, from); c >= 0 {
			if i == n && c > b.col {
				break
			}
			return r, c, true
		}
	}
	return 0, 0, false
}

// MatchCount returns how many times query occurs, ignoring case.
func (b *Buffer) MatchCount(query string) int {
	q := []rune(strings.ToLower(query))
	if len(q) == 0 {
		return 0
	}
	count := 0
	for _, l := range b.lines {
		for c := indexFold(l, q, 0); c >= 0; c = indexFold(l, q, c+1) {
			count++
		}
	}
	return count
}

func indexFold(line, lowerQuery []rune, from int) int {
	for c := max(0, from); c+len(lowerQuery) <= len(line); c++ {
		match := true
		for j, qr := range lowerQuery {
			if unicode.ToLower(line[c+j]) != qr {
				match = false
				break
			}
		}
		if match {
			return c
		}
	}
	return -1
}

// ExpandPath resolves a leading ~/ and environment variables, then makes p absolute.
func ExpandPath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return p
	}
	if strings.HasPrefix(p, "~/") {
		if h, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(h, p[2:])
		}
	}
	p = os.ExpandEnv(p)
	if !filepath.IsAbs(p) {
		if abs, err := filepath.Abs(p); err == nil {
			p = abs
		}
	}
	return p
}
