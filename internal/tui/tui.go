// Package tui is the split-pane editor: a plain-text editor on the left and
// a rendered preview on the right, scrolled together by a scrollsync.Synchronizer.
package tui

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"mdsplit/internal/config"
	"mdsplit/internal/document"
	"mdsplit/internal/render"
	"mdsplit/internal/scrollsync"
	"mdsplit/internal/tui/state"
	"mdsplit/internal/tui/util"
	docview "mdsplit/internal/tui/views/document"
	"mdsplit/internal/tui/views/layout"
	"mdsplit/internal/tui/widgets/diff"
	"mdsplit/internal/tui/widgets/editor"
	"mdsplit/internal/tui/widgets/statusbar"
)

// wheelLines is how far one mouse wheel notch scrolls a pane.
const wheelLines = 3

// Options wires the editor to its collaborators.
type Options struct {
	Config    *config.Config
	Path      string // optional file to open at start
	Terminal  *render.Terminal
	HTML      *render.HTML
	Files     *document.Files
	Clipboard document.Clipboard
	Logger    zerolog.Logger
}

// Run starts the editor in the alternate screen and blocks until it quits.
func Run(opts Options) error {
	m := New(opts)
	defer m.Close()
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

// ===== Model =====

type resyncMsg struct{}

type previewKey struct {
	version int
	theme   string
	wrap    int
	width   int
}

// Model is the bubbletea model. It is used by pointer so the viewports
// handed to the synchronizer stay at a fixed address.
type Model struct {
	cfg   *config.Config
	log   zerolog.Logger
	term  *render.Terminal
	html  *render.HTML
	files *document.Files
	clip  document.Clipboard

	buf     *document.Buffer
	path    string
	version int
	stats   document.Stats

	state   state.UIState
	keys    keyMap
	noColor bool

	editorVP  viewport.Model
	previewVP viewport.Model
	diffVP    viewport.Model
	layout    editor.Layout
	preview   previewKey

	sync          *scrollsync.Synchronizer
	resyncPending bool
	resyncSource  scrollsync.SurfaceID

	picker    filepicker.Model
	picking   bool
	quitArmed bool

	editorW editor.Editor
	statusW statusbar.StatusBar
	diffW   diff.DiffView
}

// New builds the model and opens opts.Path when set.
func New(opts Options) *Model {
	cfg := opts.Config
	if cfg == nil {
		d := config.DefaultConfig()
		cfg = &d
	}
	if opts.Terminal == nil {
		opts.Terminal = render.NewTerminal()
	}
	if opts.HTML == nil {
		opts.HTML = render.NewHTML(cfg.Preview.CodeTheme)
	}
	if opts.Files == nil {
		opts.Files = document.NewFiles(cfg.Files.Accept, cfg.Files.SaveDir, cfg.Files.NamePrefix)
	}
	if opts.Clipboard == nil {
		opts.Clipboard = document.SystemClipboard{}
	}

	m := &Model{
		cfg:       cfg,
		log:       opts.Logger.With().Str("cmp", "tui").Logger(),
		term:      opts.Terminal,
		html:      opts.HTML,
		files:     opts.Files,
		clip:      opts.Clipboard,
		buf:       document.NewBuffer(""),
		keys:      defaultKeyMap(),
		noColor:   util.NoColor(false),
		editorVP:  viewport.New(0, 0),
		previewVP: viewport.New(0, 0),
		diffVP:    viewport.New(0, 0),
		sync:      scrollsync.New(scrollsync.WithReleaseDelay(cfg.ScrollSync.ReleaseDelay)),
		editorW:   editor.NewEditor(),
		statusW:   statusbar.NewStatusBar(),
		diffW:     diff.NewDiffView(),
		state: state.UIState{
			Layout:     layoutFromConfig(cfg.View),
			Theme:      cfg.Theme,
			Wrap:       cfg.Wrap,
			SyncScroll: cfg.SyncScroll,
			MinCol:     cfg.MinColumn,
		},
	}
	if m.state.Layout == state.PreviewOnly {
		m.state.Focus = state.PREVIEW
	}
	m.attachSurfaces()
	m.textChanged()

	if opts.Path != "" {
		m.openInitial(opts.Path)
	}
	return m
}

func layoutFromConfig(view string) state.Layout {
	switch view {
	case config.ViewEditor:
		return state.EditorOnly
	case config.ViewPreview:
		return state.PreviewOnly
	default:
		return state.Split
	}
}

// Close stops the synchronizer's pending release.
func (m *Model) Close() { m.sync.Close() }

func (m *Model) Init() tea.Cmd {
	return tea.SetWindowTitle("mdsplit")
}

// Update handles all TUI interactions.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.state = state.Resize(m.state, msg.Width, msg.Height)
		m.resize()
		if m.picking {
			var cmd tea.Cmd
			m.picker, cmd = m.picker.Update(m.pickerSize())
			return m, cmd
		}
		return m, m.syncFrom(m.focusedSurface())

	case resyncMsg:
		m.resyncPending = false
		return m, m.syncFrom(m.resyncSource)
	}

	if m.picking {
		return m.updatePicker(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m, m.handleMouse(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		if m.buf.Modified() && !m.quitArmed {
			m.quitArmed = true
			m.state = state.SetError(m.state, "Unsaved changes: press ctrl+q again to quit")
			return m, nil
		}
		return m, tea.Quit
	}
	m.quitArmed = false

	switch {
	case m.state.Searching:
		return m, m.handleSearchKey(msg)
	case m.state.ShowDiff:
		m.handleDiffKey(msg)
		return m, nil
	case m.state.ShowHelp:
		if key.Matches(msg, m.keys.Help, m.keys.Close) {
			m.state = state.ToggleHelp(m.state)
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.CycleView):
		m.state = state.CycleLayout(m.state)
		m.resize()
		return m, m.syncFrom(m.focusedSurface())
	case key.Matches(msg, m.keys.Focus):
		m.state = state.ToggleFocus(m.state)
		m.refreshEditor()
		return m, nil
	case key.Matches(msg, m.keys.Theme):
		m.state = state.ToggleTheme(m.state)
		m.refreshEditor()
		m.renderPreview()
		return m, m.syncFrom(scrollsync.Editor)
	case key.Matches(msg, m.keys.SyncScroll):
		m.state = state.ToggleSyncScroll(m.state)
		return m, m.syncFrom(m.focusedSurface())
	case key.Matches(msg, m.keys.Wrap):
		m.state = state.ToggleWrap(m.state)
		m.refreshEditor()
		m.renderPreview()
		return m, m.syncFrom(m.focusedSurface())
	case key.Matches(msg, m.keys.Help):
		m.state = state.ToggleHelp(m.state)
		return m, nil
	case key.Matches(msg, m.keys.Diff):
		m.state = state.ToggleDiff(m.state)
		m.diffVP.GotoTop()
		m.renderDiff()
		return m, nil
	case key.Matches(msg, m.keys.Save):
		m.save()
		return m, nil
	case key.Matches(msg, m.keys.Export):
		m.export()
		return m, nil
	case key.Matches(msg, m.keys.Copy):
		m.copy()
		return m, nil
	case key.Matches(msg, m.keys.Open):
		return m, m.openPicker()
	case key.Matches(msg, m.keys.Find):
		m.state = state.StartSearch(m.state)
		return m, nil
	case key.Matches(msg, m.keys.FindNext):
		return m, m.findNext()
	}

	if m.state.Focus == state.PREVIEW {
		return m, m.handlePreviewKey(msg)
	}
	return m, m.handleEditorKey(msg)
}

func (m *Model) handleEditorKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.PageDown):
		return m.scrollEditor(m.editorVP.Height)
	case key.Matches(msg, m.keys.PageUp):
		return m.scrollEditor(-m.editorVP.Height)
	}

	edited := true
	switch msg.Type {
	case tea.KeyRunes:
		if msg.Alt {
			return nil
		}
		m.buf.InsertRunes(msg.Runes)
	case tea.KeySpace:
		m.buf.InsertRunes([]rune{' '})
	case tea.KeyEnter:
		m.buf.InsertNewline()
	case tea.KeyBackspace, tea.KeyCtrlH:
		m.buf.Backspace()
	case tea.KeyDelete:
		m.buf.Delete()
	case tea.KeyLeft:
		m.buf.MoveLeft()
		edited = false
	case tea.KeyRight:
		m.buf.MoveRight()
		edited = false
	case tea.KeyUp:
		m.buf.MoveUp()
		edited = false
	case tea.KeyDown:
		m.buf.MoveDown()
		edited = false
	case tea.KeyHome:
		m.buf.Home()
		edited = false
	case tea.KeyEnd:
		m.buf.End()
		edited = false
	default:
		return nil
	}

	if edited {
		m.textChanged()
	} else {
		m.refreshEditor()
	}
	return m.syncFrom(scrollsync.Editor)
}

func (m *Model) handlePreviewKey(msg tea.KeyMsg) tea.Cmd {
	vp := &m.previewVP
	switch {
	case key.Matches(msg, m.keys.PageDown):
		scrollBy(vp, vp.Height)
	case key.Matches(msg, m.keys.PageUp):
		scrollBy(vp, -vp.Height)
	default:
		switch msg.Type {
		case tea.KeyDown:
			scrollBy(vp, 1)
		case tea.KeyUp:
			scrollBy(vp, -1)
		case tea.KeyHome:
			vp.GotoTop()
		case tea.KeyEnd:
			vp.GotoBottom()
		default:
			return nil
		}
	}
	return m.syncFrom(scrollsync.Preview)
}

func (m *Model) handleDiffKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Diff, m.keys.Close):
		m.state = state.ToggleDiff(m.state)
		return
	case key.Matches(msg, m.keys.DiffMode):
		m.state = state.ToggleView(m.state)
	case key.Matches(msg, m.keys.DiffLeft):
		m.state = state.ScrollLeft(m.state, false, true)
	case key.Matches(msg, m.keys.DiffRight):
		m.state = state.ScrollRight(m.state, false, true)
	case key.Matches(msg, m.keys.DiffLeftOther):
		m.state = state.ScrollLeft(m.state, false, false)
	case key.Matches(msg, m.keys.DiffRightOther):
		m.state = state.ScrollRight(m.state, false, false)
	case key.Matches(msg, m.keys.PageDown):
		scrollBy(&m.diffVP, m.diffVP.Height)
		return
	case key.Matches(msg, m.keys.PageUp):
		scrollBy(&m.diffVP, -m.diffVP.Height)
		return
	case msg.Type == tea.KeyDown:
		scrollBy(&m.diffVP, 1)
		return
	case msg.Type == tea.KeyUp:
		scrollBy(&m.diffVP, -1)
		return
	default:
		return
	}
	m.renderDiff()
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.state = state.EndSearch(m.state, true)
	case tea.KeyEnter:
		m.state = state.EndSearch(m.state, false)
		return m.findNext()
	case tea.KeyBackspace, tea.KeyCtrlH:
		m.state = state.SearchBackspace(m.state)
	case tea.KeySpace:
		m.state = state.SearchInput(m.state, []rune{' '})
	case tea.KeyRunes:
		m.state = state.SearchInput(m.state, msg.Runes)
	}
	return nil
}

// findNext moves the cursor to the next match of the last query.
func (m *Model) findNext() tea.Cmd {
	q := m.state.Query
	if q == "" {
		return nil
	}
	row, col, ok := m.buf.Find(q)
	if !ok {
		m.state = state.SetError(m.state, fmt.Sprintf("Not found: %s", q))
		return nil
	}
	m.buf.SetCursor(row, col)
	m.state = state.SetNotice(m.state, fmt.Sprintf("%d matches for %q", m.buf.MatchCount(q), q))
	m.refreshEditor()
	return m.syncFrom(scrollsync.Editor)
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress || m.state.ShowHelp {
		return nil
	}
	delta := 0
	switch msg.Button {
	case tea.MouseButtonWheelDown:
		delta = wheelLines
	case tea.MouseButtonWheelUp:
		delta = -wheelLines
	default:
		return nil
	}

	if m.state.ShowDiff {
		scrollBy(&m.diffVP, delta)
		return nil
	}

	if msg.Y >= m.bodyHeight() {
		return nil
	}
	switch m.paneAt(msg.X) {
	case scrollsync.Editor:
		return m.scrollEditor(delta)
	case scrollsync.Preview:
		scrollBy(&m.previewVP, delta)
		return m.syncFrom(scrollsync.Preview)
	}
	return nil
}

// paneAt returns the pane under column x, or -1 for the separator.
func (m *Model) paneAt(x int) scrollsync.SurfaceID {
	switch m.state.Layout {
	case state.EditorOnly:
		return scrollsync.Editor
	case state.PreviewOnly:
		return scrollsync.Preview
	}
	switch {
	case x < m.editorVP.Width:
		return scrollsync.Editor
	case x > m.editorVP.Width:
		return scrollsync.Preview
	default:
		return -1
	}
}

// scrollEditor scrolls the editor by delta lines and pulls the cursor along
// so the next refresh does not snap the view back.
func (m *Model) scrollEditor(delta int) tea.Cmd {
	scrollBy(&m.editorVP, delta)

	top := m.editorVP.YOffset
	bottom := top + m.editorVP.Height - 1
	_, col := m.buf.Cursor()
	if m.state.Wrap {
		col = 0
	}
	switch {
	case m.layout.CursorLine < top:
		r := m.layout.RowAt(top)
		if m.layout.RowStarts[r] < top && r+1 < len(m.layout.RowStarts) {
			r++
		}
		m.buf.SetCursor(r, col)
	case m.layout.CursorLine > bottom:
		m.buf.SetCursor(m.layout.RowAt(bottom), col)
	default:
		return m.syncFrom(scrollsync.Editor)
	}
	m.refreshEditor()
	return m.syncFrom(scrollsync.Editor)
}

// scrollBy moves vp by n lines; the viewport clamps to its content.
func scrollBy(vp *viewport.Model, n int) {
	vp.SetYOffset(vp.YOffset + n)
}

// syncFrom aligns the other pane with source. A pass swallowed by the lock
// is retried once the lock has been released.
func (m *Model) syncFrom(source scrollsync.SurfaceID) tea.Cmd {
	if !m.state.SyncScroll || (source != scrollsync.Editor && source != scrollsync.Preview) {
		return nil
	}
	_, before := m.sync.Stats()
	m.sync.Synchronize(source)
	if _, after := m.sync.Stats(); after == before {
		return nil
	}
	m.resyncSource = source
	if m.resyncPending {
		return nil
	}
	m.resyncPending = true
	return tea.Tick(m.sync.ReleaseDelay()+time.Millisecond, func(time.Time) tea.Msg { return resyncMsg{} })
}

func (m *Model) focusedSurface() scrollsync.SurfaceID {
	if m.state.Focus == state.PREVIEW {
		return scrollsync.Preview
	}
	return scrollsync.Editor
}

// attachSurfaces mounts only the panes that are on screen.
func (m *Model) attachSurfaces() {
	if m.state.Layout.ShowsEditor() {
		m.sync.Attach(scrollsync.Editor, viewportSurface{vp: &m.editorVP})
	} else {
		m.sync.Detach(scrollsync.Editor)
	}
	if m.state.Layout.ShowsPreview() {
		m.sync.Attach(scrollsync.Preview, viewportSurface{vp: &m.previewVP})
	} else {
		m.sync.Detach(scrollsync.Preview)
	}
}

func (m *Model) bodyHeight() int {
	return max(1, m.state.Height-1)
}

func (m *Model) resize() {
	h := m.bodyHeight()
	w := m.state.Width
	switch m.state.Layout {
	case state.Split:
		m.editorVP.Width = (w - 1) / 2
		m.previewVP.Width = w - 1 - m.editorVP.Width
	case state.EditorOnly:
		m.editorVP.Width = w
		m.previewVP.Width = w
	case state.PreviewOnly:
		m.editorVP.Width = w
		m.previewVP.Width = w
	}
	m.editorVP.Height = h
	m.previewVP.Height = h
	m.diffVP.Width = w
	m.diffVP.Height = h

	m.attachSurfaces()
	m.refreshEditor()
	m.renderPreview()
	m.renderDiff()
}

// textChanged refreshes everything derived from the buffer text.
func (m *Model) textChanged() {
	m.version++
	m.stats = document.ComputeStats(m.buf.Text())
	m.state.Modified = m.buf.Modified()
	m.refreshEditor()
	m.renderPreview()
}

// refreshEditor re-renders the editor pane and keeps the cursor on screen.
func (m *Model) refreshEditor() {
	m.state.CursorRow, m.state.CursorCol = m.buf.Cursor()
	width := m.editorVP.Width
	m.state = state.EnsureColumnVisible(m.state, width-editor.GutterWidth(m.buf.LineCount()))
	m.layout = m.editorW.View(m.state, m.buf.Lines(), width)
	m.editorVP.SetContent(m.layout.Content)

	line := m.layout.CursorLine
	switch {
	case line < m.editorVP.YOffset:
		m.editorVP.SetYOffset(line)
	case m.editorVP.Height > 0 && line >= m.editorVP.YOffset+m.editorVP.Height:
		m.editorVP.SetYOffset(line - m.editorVP.Height + 1)
	}
}

func (m *Model) previewTheme() string {
	if m.noColor {
		return render.ThemeNoTTY
	}
	return m.state.Theme
}

// renderPreview re-renders markdown when the text, theme or width changed.
// Render errors fall back to the raw source.
func (m *Model) renderPreview() {
	width := m.previewVP.Width
	if width <= 0 {
		return
	}
	k := previewKey{version: m.version, theme: m.previewTheme(), width: width}
	if m.state.Wrap {
		k.wrap = width
	}
	if k == m.preview {
		return
	}
	m.preview = k

	text := m.buf.Text()
	out, err := m.term.Render(text, k.theme, k.wrap)
	if err != nil {
		m.log.Debug().Err(err).Msg("render preview")
		out = text
	}
	m.previewVP.SetContent(render.Clip(strings.TrimRight(out, "\n"), width))
}

func (m *Model) renderDiff() {
	if !m.state.ShowDiff {
		return
	}
	m.diffVP.SetContent(m.diffW.View(m.state, m.buf.Saved(), m.buf.Text()))
}

// ===== File actions =====

// openInitial loads the command-line file. A missing file with a markdown
// name starts an empty document that saves to that path.
func (m *Model) openInitial(path string) {
	_, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) && m.files.Accepts(path) {
		m.path = path
		m.state.FileName = filepath.Base(path)
		m.state = state.SetNotice(m.state, "New file "+m.state.FileName)
		return
	}
	m.open(path)
}

// open replaces the buffer with the file at path. On failure the buffer is
// left untouched and the error becomes a notice.
func (m *Model) open(path string) {
	name := filepath.Base(path)
	text, err := m.files.Load(path)
	if err != nil {
		m.log.Warn().Err(err).Str("file", path).Msg("open failed")
		if errors.Is(err, document.ErrUnsupportedFileType) {
			m.state = state.SetError(m.state, "Unsupported file type: "+name)
		} else {
			m.state = state.SetError(m.state, "Open failed: "+err.Error())
		}
		return
	}

	m.buf.Load(text)
	m.path = path
	m.state.FileName = name
	m.editorVP.GotoTop()
	m.previewVP.GotoTop()
	m.textChanged()
	m.state = state.SetNotice(m.state, "Loaded "+name)
	m.log.Info().Str("file", path).Int("lines", m.buf.LineCount()).Msg("loaded")
}

// save writes in place when the document has a path, otherwise to a new
// timestamped file which then becomes the document's path.
func (m *Model) save() {
	text := m.buf.Text()
	path := m.path
	var err error
	if path != "" {
		err = m.files.SaveAs(path, []byte(text))
	} else {
		path, err = m.files.Save(text)
	}
	if err != nil {
		m.log.Error().Err(err).Str("file", path).Msg("save failed")
		m.state = state.SetError(m.state, "Save failed: "+cause(err, document.ErrDownload))
		return
	}

	m.buf.MarkSaved()
	m.path = path
	m.state.FileName = filepath.Base(path)
	m.state.Modified = false
	m.renderDiff()
	m.state = state.SetNotice(m.state, "Saved "+m.state.FileName)
	m.log.Info().Str("file", path).Msg("saved")
}

func (m *Model) export() {
	title := m.state.FileName
	if title == "" {
		title = "mdsplit"
	}
	page, err := m.html.Document(title, []byte(m.buf.Text()), false)
	if err != nil {
		m.log.Error().Err(err).Msg("render html")
		m.state = state.SetError(m.state, "Export failed: "+err.Error())
		return
	}
	path, err := m.files.Export(".html", page)
	if err != nil {
		m.log.Error().Err(err).Msg("export failed")
		m.state = state.SetError(m.state, "Export failed: "+cause(err, document.ErrDownload))
		return
	}
	m.state = state.SetNotice(m.state, "Exported "+filepath.Base(path))
	m.log.Info().Str("file", path).Msg("exported")
}

func (m *Model) copy() {
	if err := document.Copy(m.clip, m.buf.Text()); err != nil {
		m.log.Warn().Err(err).Msg("copy failed")
		m.state = state.SetError(m.state, "Clipboard unavailable")
		return
	}
	m.state = state.SetNotice(m.state, fmt.Sprintf("Copied %d chars to clipboard", m.stats.Chars))
}

// cause strips the sentinel prefix from a wrapped error message.
func cause(err, sentinel error) string {
	return strings.TrimPrefix(err.Error(), sentinel.Error()+": ")
}

// ===== File picker =====

func (m *Model) openPicker() tea.Cmd {
	fp := filepicker.New()
	fp.AllowedTypes = allowedTypes(m.files.Accept)
	fp.CurrentDirectory = "."
	if m.path != "" {
		fp.CurrentDirectory = filepath.Dir(m.path)
	} else if wd, err := os.Getwd(); err == nil {
		fp.CurrentDirectory = wd
	}
	m.picker = fp
	m.picking = true

	var sizeCmd tea.Cmd
	m.picker, sizeCmd = m.picker.Update(m.pickerSize())
	return tea.Batch(m.picker.Init(), sizeCmd)
}

func (m *Model) pickerSize() tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: m.state.Width, Height: m.bodyHeight()}
}

func (m *Model) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(k, m.keys.Close, m.keys.Open):
			m.picking = false
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.picking = false
		m.open(path)
		return m, tea.Batch(cmd, m.syncFrom(scrollsync.Editor))
	}
	if ok, path := m.picker.DidSelectDisabledFile(msg); ok {
		m.state = state.SetError(m.state, "Unsupported file type: "+filepath.Base(path))
	}
	return m, cmd
}

// allowedTypes turns "*.ext" patterns into the suffix list the picker
// filters on. Other patterns are still enforced when the file loads.
func allowedTypes(accept []string) []string {
	var out []string
	for _, p := range accept {
		if !strings.HasPrefix(p, "*.") || strings.ContainsAny(p[1:], "*?[{") {
			continue
		}
		ext := p[1:]
		out = append(out, strings.ToLower(ext), strings.ToUpper(ext))
	}
	return out
}

// ===== Views =====

var titleStyle = lipgloss.NewStyle().Bold(true)

func (m *Model) View() string {
	if m.state.Width == 0 {
		return ""
	}
	h := m.bodyHeight()

	var body string
	switch {
	case m.picking:
		body = titleStyle.Render("Open file") + "  (enter: open, esc: cancel)\n" + m.picker.View()
	case m.state.ShowHelp:
		body = layout.Help(m.state, h)
	case m.state.ShowDiff:
		body = m.diffVP.View()
	default:
		body = m.viewPanes(h)
	}

	chips := docview.RenderTags(m.stats, m.buf.Modified(), m.state.Theme, m.noColor)
	return fitHeight(body, h) + "\n" + m.statusW.View(m.state, chips, m.state.Width)
}

func (m *Model) viewPanes(h int) string {
	switch m.state.Layout {
	case state.EditorOnly:
		return m.editorVP.View()
	case state.PreviewOnly:
		return m.previewVP.View()
	}
	pal := util.PaletteFor(m.state.Theme)
	active := lipgloss.NewStyle().Foreground(pal.Primary)
	idle := lipgloss.NewStyle().Foreground(pal.MutedDark)
	return layout.Panes(m.editorVP.View(), m.previewVP.View(), h, m.state.Focus == state.PREVIEW, active, idle)
}

// fitHeight pads or cuts s to exactly h lines.
func fitHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > h {
		lines = lines[:h]
	}
	for len(lines) < h {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
