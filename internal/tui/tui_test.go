package tui

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mdsplit/internal/config"
	"mdsplit/internal/document"
	"mdsplit/internal/scrollsync"
	"mdsplit/internal/tui/state"
)

type fakeClipboard struct {
	text string
	err  error
}

func (f *fakeClipboard) WriteAll(text string) error {
	if f.err != nil {
		return f.err
	}
	f.text = text
	return nil
}

func newTestModel(t *testing.T, clip document.Clipboard) (*Model, string) {
	t.Helper()
	t.Setenv("NO_COLOR", "")
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.ScrollSync.ReleaseDelay = time.Millisecond
	cfg.Files.SaveDir = dir

	m := New(Options{
		Config:    &cfg,
		Files:     document.NewFiles(cfg.Files.Accept, dir, "draft"),
		Clipboard: clip,
		Logger:    zerolog.Nop(),
	})
	t.Cleanup(m.Close)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m, dir
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func listDoc(n int) string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("- item %d", i+1)
	}
	return strings.Join(lines, "\n")
}

func waitIdle(t *testing.T, m *Model) {
	t.Helper()
	require.Eventually(t, func() bool { return m.sync.State() == scrollsync.Idle }, time.Second, time.Millisecond)
}

func press(m *Model, msg tea.KeyMsg) tea.Cmd {
	_, cmd := m.Update(msg)
	return cmd
}

func typeText(m *Model, s string) {
	for _, r := range s {
		press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func expectedOffset(src, dst scrollsync.Surface) int {
	f := scrollsync.Fraction(src.ScrollOffset(), src.ViewportExtent(), src.ContentExtent())
	return int(math.Round(scrollsync.TargetOffset(f, dst.ViewportExtent(), dst.ContentExtent())))
}

func TestOpenMarkdownFile(t *testing.T) {
	m, dir := newTestModel(t, &fakeClipboard{})
	path := writeFile(t, dir, "notes.md", "# Hi")

	m.open(path)

	assert.Equal(t, "# Hi", m.buf.Text())
	assert.Equal(t, "Loaded notes.md", m.state.Notice)
	assert.False(t, m.state.NoticeErr)
	assert.Equal(t, "notes.md", m.state.FileName)
	assert.Contains(t, ansi.Strip(m.View()), "Loaded notes.md")
	assert.Contains(t, ansi.Strip(m.previewVP.View()), "Hi")
}

func TestOpenUnsupportedFileKeepsBuffer(t *testing.T) {
	m, dir := newTestModel(t, &fakeClipboard{})
	m.open(writeFile(t, dir, "notes.md", "# Hi"))
	png := writeFile(t, dir, "photo.png", "\x89PNG\r\n\x1a\n")

	m.open(png)

	assert.Equal(t, "# Hi", m.buf.Text())
	assert.Equal(t, "Unsupported file type: photo.png", m.state.Notice)
	assert.True(t, m.state.NoticeErr)
	assert.Equal(t, "notes.md", m.state.FileName)
}

func TestInitialPathMissingStartsNewFile(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	path := filepath.Join(dir, "fresh.md")

	m := New(Options{Config: &cfg, Path: path, Clipboard: &fakeClipboard{}, Logger: zerolog.Nop()})
	defer m.Close()

	assert.Equal(t, "", m.buf.Text())
	assert.Equal(t, "fresh.md", m.state.FileName)
	assert.Equal(t, "New file fresh.md", m.state.Notice)
}

func TestTypingUpdatesBufferAndStatus(t *testing.T) {
	m, _ := newTestModel(t, &fakeClipboard{})

	typeText(m, "# Title")
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	typeText(m, "hello")
	press(m, tea.KeyMsg{Type: tea.KeyBackspace})
	press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}, Alt: true})

	assert.Equal(t, "# Title\nhell", m.buf.Text())
	assert.True(t, m.state.Modified)
	assert.Equal(t, 1, m.state.CursorRow)
	assert.Equal(t, 4, m.state.CursorCol)

	view := ansi.Strip(m.View())
	assert.Contains(t, view, "Modified")
	assert.Contains(t, view, "Ln 2, Col 5")
	assert.Contains(t, ansi.Strip(m.previewVP.View()), "Title")
}

func TestPageDownSynchronizesPreview(t *testing.T) {
	m, dir := newTestModel(t, &fakeClipboard{})
	m.open(writeFile(t, dir, "long.md", listDoc(200)))
	waitIdle(t, m)

	press(m, tea.KeyMsg{Type: tea.KeyPgDown})

	editor := viewportSurface{vp: &m.editorVP}
	preview := viewportSurface{vp: &m.previewVP}
	assert.Equal(t, m.editorVP.Height, m.editorVP.YOffset)
	assert.Greater(t, m.previewVP.YOffset, 0)
	assert.Equal(t, expectedOffset(editor, preview), m.previewVP.YOffset)
	assert.Equal(t, m.editorVP.YOffset, m.state.CursorRow, "cursor follows the page")
}

func TestWheelOverPreviewSynchronizesEditor(t *testing.T) {
	m, dir := newTestModel(t, &fakeClipboard{})
	m.open(writeFile(t, dir, "long.md", listDoc(200)))
	waitIdle(t, m)

	m.Update(tea.MouseMsg{X: 80, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})

	assert.Equal(t, wheelLines, m.previewVP.YOffset)
	editor := viewportSurface{vp: &m.editorVP}
	preview := viewportSurface{vp: &m.previewVP}
	assert.Equal(t, expectedOffset(preview, editor), m.editorVP.YOffset)
}

func TestSuppressedPassSchedulesResync(t *testing.T) {
	m, dir := newTestModel(t, &fakeClipboard{})
	m.open(writeFile(t, dir, "long.md", listDoc(200)))
	m.sync.Close()
	m.sync = scrollsync.New(scrollsync.WithReleaseDelay(time.Hour))
	m.attachSurfaces()

	assert.Nil(t, press(m, tea.KeyMsg{Type: tea.KeyPgDown}))
	assert.NotNil(t, press(m, tea.KeyMsg{Type: tea.KeyPgDown}), "swallowed pass is retried")
	assert.True(t, m.resyncPending)
	assert.Nil(t, press(m, tea.KeyMsg{Type: tea.KeyPgDown}), "only one retry is queued")
}

func TestEditorOnlyDetachesPreview(t *testing.T) {
	m, dir := newTestModel(t, &fakeClipboard{})
	m.open(writeFile(t, dir, "long.md", listDoc(200)))
	waitIdle(t, m)

	press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'v'}, Alt: true})
	require.Equal(t, state.EditorOnly, m.state.Layout)
	waitIdle(t, m)

	press(m, tea.KeyMsg{Type: tea.KeyPgDown})
	assert.Greater(t, m.editorVP.YOffset, 0)
	assert.Equal(t, 0, m.previewVP.YOffset)
}

func TestSyncToggleOff(t *testing.T) {
	m, dir := newTestModel(t, &fakeClipboard{})
	m.open(writeFile(t, dir, "long.md", listDoc(200)))
	waitIdle(t, m)

	press(m, tea.KeyMsg{Type: tea.KeyCtrlY})
	assert.False(t, m.state.SyncScroll)
	assert.Equal(t, "Sync scroll: Off", m.state.Notice)

	press(m, tea.KeyMsg{Type: tea.KeyPgDown})
	assert.Greater(t, m.editorVP.YOffset, 0)
	assert.Equal(t, 0, m.previewVP.YOffset)
}

func TestNarrowTerminalFallsBackToEditor(t *testing.T) {
	m, _ := newTestModel(t, &fakeClipboard{})
	m.Update(tea.WindowSizeMsg{Width: 40, Height: 20})

	assert.Equal(t, state.EditorOnly, m.state.Layout)
	assert.Equal(t, 40, m.editorVP.Width)
	assert.Contains(t, m.state.Notice, "Narrow width")
}

func TestSaveWritesInPlace(t *testing.T) {
	m, dir := newTestModel(t, &fakeClipboard{})
	path := writeFile(t, dir, "notes.md", "# Hi")
	m.open(path)
	typeText(m, "!")

	press(m, tea.KeyMsg{Type: tea.KeyCtrlS})

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "!# Hi", string(data))
	assert.Equal(t, "Saved notes.md", m.state.Notice)
	assert.False(t, m.buf.Modified())
}

func TestSaveUntitledUsesTimestampedName(t *testing.T) {
	m, dir := newTestModel(t, &fakeClipboard{})
	typeText(m, "draft")

	press(m, tea.KeyMsg{Type: tea.KeyCtrlS})

	matches, err := filepath.Glob(filepath.Join(dir, "draft-*.md"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, filepath.Base(matches[0]), m.state.FileName)
}

func TestSaveFailureIsNotice(t *testing.T) {
	m, dir := newTestModel(t, &fakeClipboard{})
	blocker := writeFile(t, dir, "blocker", "x")
	m.files.Dir = filepath.Join(blocker, "sub")
	typeText(m, "text")

	press(m, tea.KeyMsg{Type: tea.KeyCtrlS})

	assert.True(t, m.state.NoticeErr)
	assert.True(t, strings.HasPrefix(m.state.Notice, "Save failed: "))
	assert.True(t, m.buf.Modified())
}

func TestExportHTML(t *testing.T) {
	m, dir := newTestModel(t, &fakeClipboard{})
	typeText(m, "# Export me")

	press(m, tea.KeyMsg{Type: tea.KeyCtrlE})

	matches, err := filepath.Glob(filepath.Join(dir, "draft-*.html"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "Export me</h1>")
	assert.True(t, strings.HasPrefix(m.state.Notice, "Exported "))
}

func TestCopyToClipboard(t *testing.T) {
	clip := &fakeClipboard{}
	m, _ := newTestModel(t, clip)
	typeText(m, "abc")

	press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}, Alt: true})
	assert.Equal(t, "abc", clip.text)
	assert.Equal(t, "Copied 3 chars to clipboard", m.state.Notice)

	clip.err = errors.New("no xclip")
	press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}, Alt: true})
	assert.Equal(t, "Clipboard unavailable", m.state.Notice)
	assert.True(t, m.state.NoticeErr)
}

func TestQuitGuardsUnsavedChanges(t *testing.T) {
	m, _ := newTestModel(t, &fakeClipboard{})
	typeText(m, "x")

	assert.Nil(t, press(m, tea.KeyMsg{Type: tea.KeyCtrlQ}))
	assert.Contains(t, m.state.Notice, "Unsaved changes")

	cmd := press(m, tea.KeyMsg{Type: tea.KeyCtrlQ})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestFind(t *testing.T) {
	m, _ := newTestModel(t, &fakeClipboard{})
	m.buf.Load("alpha\nbeta\ngamma beta")
	m.textChanged()

	press(m, tea.KeyMsg{Type: tea.KeyCtrlF})
	typeText(m, "beta")
	assert.Contains(t, ansi.Strip(m.View()), "/beta")
	press(m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, m.state.Searching)
	assert.Equal(t, 1, m.state.CursorRow)
	assert.Equal(t, 0, m.state.CursorCol)
	assert.Equal(t, `2 matches for "beta"`, m.state.Notice)

	press(m, tea.KeyMsg{Type: tea.KeyF3})
	assert.Equal(t, 2, m.state.CursorRow)
	assert.Equal(t, 6, m.state.CursorCol)
	assert.Equal(t, "alpha\nbeta\ngamma beta", m.buf.Text(), "typing in the prompt does not edit")
}

func TestDiffOverlay(t *testing.T) {
	m, dir := newTestModel(t, &fakeClipboard{})
	m.open(writeFile(t, dir, "notes.md", "a\nb"))
	press(m, tea.KeyMsg{Type: tea.KeyEnd})
	typeText(m, "!")

	press(m, tea.KeyMsg{Type: tea.KeyCtrlD})
	require.True(t, m.state.ShowDiff)
	view := ansi.Strip(m.View())
	assert.Contains(t, view, "- a")
	assert.Contains(t, view, "+ a!")

	press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'v'}})
	assert.Equal(t, state.SideBySide, m.state.DiffView)
	assert.Equal(t, "a\nb", m.buf.Saved(), "diff keys do not edit")

	press(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.state.ShowDiff)
}

func TestHelpOverlay(t *testing.T) {
	m, _ := newTestModel(t, &fakeClipboard{})
	press(m, tea.KeyMsg{Type: tea.KeyF1})
	assert.Contains(t, ansi.Strip(m.View()), "Ctrl+Y: sync scroll on/off")
	press(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.state.ShowHelp)
}

func TestViewHeight(t *testing.T) {
	m, _ := newTestModel(t, &fakeClipboard{})
	lines := strings.Split(m.View(), "\n")
	assert.Len(t, lines, 30)
}

func TestAllowedTypes(t *testing.T) {
	got := allowedTypes([]string{"*.md", "**/*.rmd", "README", "*.[mM]d"})
	assert.Equal(t, []string{".md", ".MD"}, got)
}
