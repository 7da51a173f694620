package state

// Focus names the pane that receives editing and scroll keys.
type Focus int

const (
	EDITOR Focus = iota
	PREVIEW
)

func (f Focus) String() string {
	if f == PREVIEW {
		return "PREVIEW"
	}
	return "EDITOR"
}

// Layout controls which panes are on screen.
type Layout int

const (
	Split Layout = iota
	EditorOnly
	PreviewOnly
)

func (l Layout) String() string {
	switch l {
	case EditorOnly:
		return "Editor"
	case PreviewOnly:
		return "Preview"
	default:
		return "Split"
	}
}

// ShowsEditor reports whether the editor pane is visible.
func (l Layout) ShowsEditor() bool { return l != PreviewOnly }

// ShowsPreview reports whether the preview pane is visible.
func (l Layout) ShowsPreview() bool { return l != EditorOnly }

// DiffMode controls how the saved-vs-current diff is rendered.
type DiffMode int

const (
	Unified DiffMode = iota
	SideBySide
)

// Theme names shared with the preview renderer.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// UIState holds cross-widget UI state used by the status bar, panes and overlays.
type UIState struct {
	// Focus & layout
	Focus      Focus
	Layout     Layout
	Theme      string
	Wrap       bool
	SyncScroll bool

	// Size & scrolling
	Width         int
	Height        int
	MinCol        int
	EditorHScroll int // first visible rune column when wrap is off

	// Overlays
	ShowHelp     bool
	ShowDiff     bool
	DiffView     DiffMode
	ScrollHLeft  int // diff saved column
	ScrollHRight int // diff current column

	// Search prompt
	Searching bool
	Query     string

	// Document
	FileName  string
	Modified  bool
	CursorRow int
	CursorCol int

	// Notices and ephemeral messages
	Notice    string
	NoticeErr bool
}
