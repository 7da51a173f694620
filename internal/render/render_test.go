package render

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = "# Title\n\nSome *text* with $x^2$ math.\n\n" +
	"```go\nfunc main() {}\n```\n\n" +
	"| a | b |\n|---|---|\n| 1 | 2 |\n\n" +
	"- [x] done\n\n" +
	"<script>alert(1)</script>\n"

func TestHTMLRender(t *testing.T) {
	h := NewHTML("")
	out, err := h.Render([]byte(sample))
	require.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, `<h1 id="title">Title</h1>`)
	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, `class="chroma"`)
	assert.Contains(t, html, "math inline")
	assert.Contains(t, html, `type="checkbox"`)
	assert.NotContains(t, html, "<script>")
}

func TestHTMLPage(t *testing.T) {
	h := NewHTML("monokai")

	css, err := h.CSS()
	require.NoError(t, err)
	assert.Contains(t, css, ".chroma")

	page, err := h.Document("notes.md", []byte("# Hi"), true)
	require.NoError(t, err)
	s := string(page)
	assert.True(t, strings.HasPrefix(s, "<!DOCTYPE html>"))
	assert.Contains(t, s, "<title>notes.md</title>")
	assert.Contains(t, s, "mathjax")
	assert.Contains(t, s, `"/ws"`)

	static, err := h.Document("notes.md", []byte("# Hi"), false)
	require.NoError(t, err)
	assert.NotContains(t, string(static), "WebSocket")
}

func TestTerminalRender(t *testing.T) {
	term := NewTerminal()

	out, err := term.Render("# Hello\n\nworld", ThemeNoTTY, 40)
	require.NoError(t, err)
	plain := ansi.Strip(out)
	assert.Contains(t, plain, "Hello")
	assert.Contains(t, plain, "world")

	_, err = term.Render("x", "no-such-theme", 40)
	require.NoError(t, err)
	assert.Len(t, term.cache, 2)

	_, err = term.Render("y", ThemeNoTTY, 40)
	require.NoError(t, err)
	assert.Len(t, term.cache, 2, "renderer reused for same theme and width")
}

func TestTerminalCacheFollowsWidth(t *testing.T) {
	term := NewTerminal()
	for _, w := range []int{40, 41, 42, 80, 120} {
		_, err := term.Render("x", ThemeDark, w)
		require.NoError(t, err)
	}
	assert.Len(t, term.cache, 1, "resizing does not accumulate renderers")

	_, err := term.Render("x", ThemeLight, 120)
	require.NoError(t, err)
	assert.Len(t, term.cache, 2)

	_, err = term.Render("x", ThemeLight, 60)
	require.NoError(t, err)
	assert.Len(t, term.cache, 1)
}

func TestClip(t *testing.T) {
	styled := "\x1b[1mabcdefgh\x1b[0m\nxy"
	out := Clip(styled, 4)
	lines := strings.Split(ansi.Strip(out), "\n")
	assert.Equal(t, []string{"abcd", "xy"}, lines)
	assert.Equal(t, styled, Clip(styled, 0))
}
