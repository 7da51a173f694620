// Package render turns markdown into terminal output (glamour) and into
// sanitized HTML pages (goldmark).
package render

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/x/ansi"
)

// Terminal theme names accepted by Terminal.Render.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
	ThemeNoTTY = "notty"
)

type termKey struct {
	theme string
	width int
}

// Terminal renders markdown with glamour. Renderers are cached per theme
// since building one parses the whole style sheet; the cache only holds the
// current wrap width and is dropped when it changes.
type Terminal struct {
	mu    sync.Mutex
	width int
	cache map[termKey]*glamour.TermRenderer
}

func NewTerminal() *Terminal {
	return &Terminal{cache: map[termKey]*glamour.TermRenderer{}}
}

// Render renders src. A width of 0 disables word wrapping. Unknown themes
// fall back to dark.
func (t *Terminal) Render(src, theme string, width int) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	r, err := t.renderer(theme, width)
	if err != nil {
		return "", err
	}
	return r.Render(src)
}

func (t *Terminal) renderer(theme string, width int) (*glamour.TermRenderer, error) {
	switch theme {
	case ThemeDark, ThemeLight, ThemeNoTTY:
	default:
		theme = ThemeDark
	}
	if width < 0 {
		width = 0
	}
	if width != t.width {
		clear(t.cache)
		t.width = width
	}
	key := termKey{theme: theme, width: width}
	if r, ok := t.cache[key]; ok {
		return r, nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(theme),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	t.cache[key] = r
	return r, nil
}

// Clip truncates every line of s to width cells, keeping ANSI sequences intact.
func Clip(s string, width int) string {
	if width <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = ansi.Truncate(l, width, "")
	}
	return strings.Join(lines, "\n")
}
